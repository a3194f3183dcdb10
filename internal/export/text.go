// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/pdiddy/statement-tools/pkg/types"
)

// textPreview is the number of transactions listed in the text summary.
const textPreview = 10

// Money formats d in US dollars, for example "$1,234.56" or "-$89.99".
func Money(d decimal.Decimal) string {
	cents := d.Round(2).Shift(2).IntPart()
	return money.New(cents, money.USD).Display()
}

func moneyOrBlank(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return Money(*d)
}

func orNone(s *string) string {
	if s == nil {
		return "(none)"
	}
	return *s
}

// Text writes a human-readable summary followed by the first transactions.
func Text(w io.Writer, record types.StatementRecord) error {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	line := strings.Repeat("-", 60)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "EXTRACTED BANK STATEMENT DATA")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "\nBank:           %s\n", orNone(record.BankName))
	fmt.Fprintf(&b, "Account Holder: %s\n", orNone(record.AccountHolder))
	fmt.Fprintf(&b, "Account Number: %s\n", orNone(record.AccountNumber))

	if p := record.StatementPeriod; p.From != nil || p.To != nil {
		fmt.Fprintf(&b, "\nStatement Period: %s to %s\n", orNone(p.From), orNone(p.To))
	}

	fmt.Fprintln(&b, "\nSummary:")
	totals := []struct {
		label string
		value *decimal.Decimal
	}{
		{"Opening Balance", record.Summary.OpeningBalance},
		{"Closing Balance", record.Summary.ClosingBalance},
		{"Total Credits", record.Summary.TotalCredits},
		{"Total Debits", record.Summary.TotalDebits},
	}
	for _, t := range totals {
		if t.value != nil {
			fmt.Fprintf(&b, "   %-16s %s\n", t.label+":", Money(*t.value))
		}
	}

	if n := len(record.Transactions); n > 0 {
		fmt.Fprintf(&b, "\nTransactions (%d found):\n", n)
		fmt.Fprintln(&b, line)
		fmt.Fprintf(&b, "%-12s %-35s %10s %10s\n", "Date", "Description", "Amount", "Balance")
		fmt.Fprintln(&b, line)
		for _, t := range record.Transactions[:min(n, textPreview)] {
			date := str(t.Date)
			if len(date) > 10 {
				date = date[:10]
			}
			desc := []rune(str(t.Description))
			if len(desc) > 33 {
				desc = desc[:33]
			}
			fmt.Fprintf(&b, "%-12s %-35s %10s %10s\n", date, string(desc), moneyOrBlank(t.Amount), moneyOrBlank(t.Balance))
		}
		if n > textPreview {
			fmt.Fprintf(&b, "... and %d more transactions\n", n-textPreview)
		}
	}
	fmt.Fprintln(&b, "\n"+rule)

	_, err := io.WriteString(w, b.String())
	return err
}

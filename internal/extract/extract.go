// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns the raw text and table grids of a bank statement into
// a structured StatementRecord using ordered regular expressions and column
// header matching. Every routine is a pure function of its input: a field that
// cannot be recognized is left nil and never reported as an error.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/statement-tools/pkg/types"
)

// knownBanks matches bank names printed in statement headers. The matched
// name is reported upper-cased.
var knownBanks = regexp.MustCompile(`(?i)\b(CHASE|Wells Fargo|Bank of America|Citibank|Capital One|TD Bank|PNC)\b`)

// holderPatterns are tried in order; the first match wins. A name is letters
// and blanks on one line, so digits, punctuation and line breaks end it.
var holderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Account Holder:\s*([A-Za-z][A-Za-z \t]*)`),
	regexp.MustCompile(`(?i)Name:\s*([A-Za-z][A-Za-z \t]*)`),
	regexp.MustCompile(`(?i)Customer:\s*([A-Za-z][A-Za-z \t]*)`),
}

// accountPatterns match masked account numbers such as "****4521".
var accountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Account Number:\s*(\*+\d+)`),
	regexp.MustCompile(`(?i)Account No:\s*(\*+\d+)`),
	regexp.MustCompile(`(?i)Acct#:?\s*(\*+\d+)`),
}

// periodPattern matches "January 1, 2024 - January 31, 2024" with a hyphen
// or en-dash separator and optional commas.
var periodPattern = regexp.MustCompile(`([A-Za-z]+\s+\d{1,2},?\s+\d{4})\s*[-–]\s*([A-Za-z]+\s+\d{1,2},?\s+\d{4})`)

// summaryPattern builds the totals pattern: the label, anything up to an
// optional dollar sign, then the amount.
func summaryPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `[^$]*\$?([\d,]+\.?\d*)`)
}

var (
	openingPattern = summaryPattern("Opening Balance")
	closingPattern = summaryPattern("Closing Balance")
	creditsPattern = summaryPattern("Total Credits")
	debitsPattern  = summaryPattern("Total Debits")
)

// Extract builds a StatementRecord from the concatenated page text and the
// table grids found on all pages, in page order.
func Extract(text string, tables []types.Grid) types.StatementRecord {
	record := types.StatementRecord{
		BankName:        BankName(text),
		AccountHolder:   AccountHolder(text),
		AccountNumber:   AccountNumber(text),
		StatementPeriod: StatementPeriod(text),
		Summary:         Summary(text),
		Transactions:    []types.Transaction{},
	}
	if grid, ok := FindTransactionTable(tables); ok {
		record.Transactions = ParseTransactions(grid)
	}
	return record
}

// BankName reads the bank from the first non-empty line. A known bank name
// anywhere on that line wins; otherwise the line's first word is used.
func BankName(text string) *string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	first, _, _ := strings.Cut(trimmed, "\n")
	first = strings.TrimSpace(first)

	if m := knownBanks.FindStringSubmatch(first); m != nil {
		return ptr(strings.ToUpper(m[1]))
	}
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return nil
	}
	return ptr(fields[0])
}

// AccountHolder returns the first holder name found, trimmed.
func AccountHolder(text string) *string {
	for _, re := range holderPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return ptr(strings.TrimSpace(m[1]))
		}
	}
	return nil
}

// AccountNumber returns the first masked account number found, verbatim.
func AccountNumber(text string) *string {
	for _, re := range accountPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return ptr(m[1])
		}
	}
	return nil
}

// StatementPeriod finds the first date range in text. Both endpoints are
// nil when no range is present.
func StatementPeriod(text string) types.Period {
	m := periodPattern.FindStringSubmatch(text)
	if m == nil {
		return types.Period{}
	}
	from, _ := NormalizeDate(m[1])
	to, _ := NormalizeDate(m[2])
	return types.Period{From: ptr(from), To: ptr(to)}
}

// Summary reads the opening and closing balances and the credit and debit
// totals. Each total is looked up independently.
func Summary(text string) types.Summary {
	return types.Summary{
		OpeningBalance: matchAmount(openingPattern, text),
		ClosingBalance: matchAmount(closingPattern, text),
		TotalCredits:   matchAmount(creditsPattern, text),
		TotalDebits:    matchAmount(debitsPattern, text),
	}
}

func matchAmount(re *regexp.Regexp, text string) *decimal.Decimal {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return parseDecimal(m[1])
}

func ptr[T any](v T) *T {
	return &v
}

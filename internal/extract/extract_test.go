// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/statement-tools/pkg/types"
)

const sampleText = `CHASE BANK
Account Statement
Account Holder: John Doe
Account Number: ****4521
Statement Period: January 1, 2024 - January 31, 2024
Address: 123 Main Street, New York, NY 10001
Account Summary
Opening Balance (Jan 1, 2024) $9,000.00
Total Credits $4,500.00
Total Debits $1,089.99
Closing Balance (Jan 31, 2024) $12,410.01
Transaction Details`

// assertAmount checks a decimal pointer against its string form.
func assertAmount(t *testing.T, want string, got *decimal.Decimal) {
	t.Helper()
	if want == "" {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.Truef(t, decimal.RequireFromString(want).Equal(*got), "want %s, got %s", want, got.String())
}

func assertString(t *testing.T, want string, got *string) {
	t.Helper()
	if want == "" {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestBankName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"known bank wins over first token", "Wells Fargo Statement\nAccount", "WELLS FARGO"},
		{"known bank upper-cased", "Chase Bank\nAccount Statement", "CHASE"},
		{"known bank mid-line", "Statement from Bank of America", "BANK OF AMERICA"},
		{"first token fallback", "Acme Credit Union\nStatement", "Acme"},
		{"word boundary", "Purchase Ledger Bank", "Purchase"},
		{"leading blank lines skipped", "\n\n   PNC  \nmore", "PNC"},
		{"empty text", "", ""},
		{"whitespace only", "  \n\t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertString(t, tt.want, BankName(tt.text))
		})
	}
}

func TestAccountHolder(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"trailing newline trimmed", "Account Holder: Jane Q Public\n", "Jane Q Public"},
		{"stops at line end", "Account Holder: John Doe\nAccount Number: ****4521", "John Doe"},
		{"case insensitive", "ACCOUNT HOLDER: mary smith", "mary smith"},
		{"priority order", "Name: Bob Jones\nAccount Holder: Alice Smith", "Alice Smith"},
		{"name fallback", "Name: Bob Jones\n", "Bob Jones"},
		{"digits end the name", "Customer: ACME 42 LLC", "ACME"},
		{"value on next line", "Account Holder:\nJohn Doe\n", "John Doe"},
		{"no match", "Statement for account 1234", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertString(t, tt.want, AccountHolder(tt.text))
		})
	}
}

func TestAccountNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"account number", "Account Number: ****4521", "****4521"},
		{"account no", "account no: **7892 checking", "**7892"},
		{"acct hash with colon", "Acct#: ***123", "***123"},
		{"acct hash without colon", "Acct# *99", "*99"},
		{"unmasked ignored", "Account Number: 4521", ""},
		{"priority order", "Acct# *11\nAccount Number: ****22", "****22"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertString(t, tt.want, AccountNumber(tt.text))
		})
	}
}

func TestStatementPeriod(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		from, to string
	}{
		{"hyphen", "Statement Period: January 1, 2024 - January 31, 2024", "2024-01-01", "2024-01-31"},
		{"en dash abbreviated", "Period Jan 1 2024 – Feb 1 2024", "2024-01-01", "2024-02-01"},
		{"unknown month passes through", "Foo 1, 2024 - Bar 2, 2024", "Foo 1, 2024", "Bar 2, 2024"},
		{"no range", "Statement Period: this month", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatementPeriod(tt.text)
			assertString(t, tt.from, got.From)
			assertString(t, tt.to, got.To)
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		parsed bool
	}{
		{"January 5, 2024", "2024-01-05", true},
		{"january 5 2024", "2024-01-05", true},
		{"Jan 5, 2024", "2024-01-05", true},
		{"Sep 30 2023", "2023-09-30", true},
		{"01/05/2024", "2024-01-05", true},
		{"1/5/2024", "2024-01-05", true},
		{"  March  3,  2024 ", "2024-03-03", true},
		{"Q1 2024", "Q1 2024", false},
		{"February 30, 2024", "February 30, 2024", false},
		{"13/01/2024", "13/01/2024", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, parsed := NormalizeDate(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.parsed, parsed)
		})
	}
}

func TestSummary(t *testing.T) {
	got := Summary(sampleText)
	assertAmount(t, "9000.00", got.OpeningBalance)
	assertAmount(t, "12410.01", got.ClosingBalance)
	assertAmount(t, "4500.00", got.TotalCredits)
	assertAmount(t, "1089.99", got.TotalDebits)
}

func TestSummaryFields(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"parenthesized date before amount", "Opening Balance (Jan 1, 2024) $9,000.00", "9000.00"},
		{"amount on next line", "opening balance\n$1,000.00", "1000.00"},
		{"no dollar sign", "Opening Balance: $250\nother", "250"},
		{"no fraction", "Opening Balance $1,234", "1234"},
		{"separators only", "Opening Balance , ,", ""},
		{"absent", "Closing Balance $5.00", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAmount(t, tt.want, Summary(tt.text).OpeningBalance)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		kind types.TransactionKind
	}{
		{"-$89.99", "-89.99", types.KindDebit},
		{"$1,000.00", "1000.00", types.KindCredit},
		{"($45.00)", "-45.00", types.KindDebit},
		{"(45.00)", "45.00", types.KindCredit},
		{"  12 ", "12", types.KindCredit},
		{"-0.50", "-0.50", types.KindDebit},
		{"", "", ""},
		{"n/a", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			amount, kind := ParseAmount(tt.in)
			assertAmount(t, tt.want, amount)
			if tt.kind == "" {
				assert.Nil(t, kind)
				return
			}
			require.NotNil(t, kind)
			assert.Equal(t, tt.kind, *kind)
		})
	}
}

func TestParseBalance(t *testing.T) {
	assertAmount(t, "12500.00", ParseBalance("$12,500.00"))
	assertAmount(t, "50.00", ParseBalance("-$50.00"))
	assertAmount(t, "", ParseBalance(""))
	assertAmount(t, "", ParseBalance("--"))
}

// grid builds a table from string rows; every cell is present.
func grid(rows ...[]string) types.Grid {
	g := make(types.Grid, len(rows))
	for i, row := range rows {
		g[i] = make([]*string, len(row))
		for j := range row {
			g[i][j] = &row[j]
		}
	}
	return g
}

func TestMapColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   ColumnMap
	}{
		{
			name:   "plain headers",
			header: []string{"Date", "Description", "Amount", "Balance"},
			want:   ColumnMap{FieldDate: 0, FieldDescription: 1, FieldAmount: 2, FieldBalance: 3},
		},
		{
			name:   "substring headers",
			header: []string{"Posting Date", "Transaction Description", "Debit Amount", "Running Balance"},
			want:   ColumnMap{FieldDate: 0, FieldDescription: 1, FieldAmount: 2, FieldBalance: 3},
		},
		{
			name:   "rule order within a cell",
			header: []string{"Balance Date", "Memo"},
			want:   ColumnMap{FieldDate: 0},
		},
		{
			name:   "rightmost duplicate wins",
			header: []string{"Date", "Value Date", "Amount"},
			want:   ColumnMap{FieldDate: 1, FieldAmount: 2},
		},
		{
			name:   "no matches",
			header: []string{"Item", "Qty"},
			want:   ColumnMap{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapColumns(grid(tt.header)[0]))
		})
	}
}

func TestFindTransactionTable(t *testing.T) {
	summary := grid([]string{"Item", "Qty"}, []string{"Pens", "3"})
	headerOnly := grid([]string{"Date", "Amount"})
	first := grid([]string{"Date", "Amount"}, []string{"01/05/2024", "$1.00"})
	second := grid([]string{"Date", "Description"}, []string{"02/05/2024", "Later"})

	got, ok := FindTransactionTable([]types.Grid{summary, headerOnly, first, second})
	require.True(t, ok)
	assert.Equal(t, first, got)

	_, ok = FindTransactionTable([]types.Grid{summary, headerOnly})
	assert.False(t, ok)

	_, ok = FindTransactionTable(nil)
	assert.False(t, ok)
}

func TestParseTransactions(t *testing.T) {
	g := grid(
		[]string{"Date", "Description", "Amount", "Balance"},
		[]string{"01/05/2024", "Direct Deposit - ABC Corp Payroll", "$3,500.00", "$12,500.00"},
		[]string{"", "", "", ""},
		[]string{"01/08/2024", "Amazon.com Purchase", "-$89.99", "$12,410.01"},
		[]string{"", "", "$5.00", "$1.00"},
		[]string{"Q1 2024", "", "", ""},
	)
	txns := ParseTransactions(g)
	require.Len(t, txns, 3)

	assertString(t, "2024-01-05", txns[0].Date)
	assertString(t, "Direct Deposit - ABC Corp Payroll", txns[0].Description)
	assertAmount(t, "3500.00", txns[0].Amount)
	assertAmount(t, "12500.00", txns[0].Balance)
	require.NotNil(t, txns[0].Type)
	assert.Equal(t, types.KindCredit, *txns[0].Type)

	assertAmount(t, "-89.99", txns[1].Amount)
	require.NotNil(t, txns[1].Type)
	assert.Equal(t, types.KindDebit, *txns[1].Type)

	// Unparseable dates are kept verbatim.
	assertString(t, "Q1 2024", txns[2].Date)
	assert.Nil(t, txns[2].Description)
	assert.Nil(t, txns[2].Amount)
	assert.Nil(t, txns[2].Type)
}

func TestParseTransactionsBlankRowsOnly(t *testing.T) {
	g := grid(
		[]string{"Date", "Description", "Amount", "Balance"},
		[]string{"", "", "", ""},
	)
	g = append(g, []*string{nil, nil, nil, nil}, []*string{})
	assert.Empty(t, ParseTransactions(g))
}

func TestParseTransactionsWithoutBalanceColumn(t *testing.T) {
	g := grid(
		[]string{"Date", "Description", "Amount"},
		[]string{"01/05/2024", "Coffee", "-$4.50"},
		[]string{"01/06/2024", "Refund", "$4.50"},
	)
	txns := ParseTransactions(g)
	require.Len(t, txns, 2)
	for _, txn := range txns {
		assert.Nil(t, txn.Balance)
		assert.NotNil(t, txn.Date)
		assert.NotNil(t, txn.Description)
		assert.NotNil(t, txn.Amount)
	}
}

func TestParseTransactionsShortRows(t *testing.T) {
	g := grid(
		[]string{"Date", "Description", "Amount", "Balance"},
		[]string{"01/05/2024", "Coffee"},
	)
	g = append(g, []*string{nil, ptr("Fee"), nil})
	txns := ParseTransactions(g)
	require.Len(t, txns, 2)
	assert.Nil(t, txns[0].Amount)
	assert.Nil(t, txns[0].Balance)
	assert.Nil(t, txns[1].Date)
	assertString(t, "Fee", txns[1].Description)
}

func TestExtract(t *testing.T) {
	tables := []types.Grid{
		grid(
			[]string{"Date", "Description", "Amount", "Balance"},
			[]string{"01/05/2024", "Direct Deposit - ABC Corp Payroll", "$3,500.00", "$12,500.00"},
			[]string{"01/08/2024", "Amazon.com Purchase", "-$89.99", "$12,410.01"},
		),
	}
	record := Extract(sampleText, tables)

	assertString(t, "CHASE", record.BankName)
	assertString(t, "John Doe", record.AccountHolder)
	assertString(t, "****4521", record.AccountNumber)
	assertString(t, "2024-01-01", record.StatementPeriod.From)
	assertString(t, "2024-01-31", record.StatementPeriod.To)
	assertAmount(t, "9000.00", record.Summary.OpeningBalance)
	assert.Len(t, record.Transactions, 2)
}

func TestExtractEmptyInput(t *testing.T) {
	record := Extract("", nil)
	assert.Nil(t, record.BankName)
	assert.Nil(t, record.AccountHolder)
	assert.Nil(t, record.AccountNumber)
	assert.Nil(t, record.StatementPeriod.From)
	assert.Nil(t, record.Summary.OpeningBalance)
	assert.NotNil(t, record.Transactions)
	assert.Empty(t, record.Transactions)
}

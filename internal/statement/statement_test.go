// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package statement

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/statement-tools/internal/content"
	"github.com/pdiddy/statement-tools/internal/encryption"
	"github.com/pdiddy/statement-tools/internal/generate"
	"github.com/pdiddy/statement-tools/pkg/types"
)

func sp(s string) *string { return &s }

// fakeProvider returns a fixed document, or err, for any input.
type fakeProvider struct {
	doc   *content.Document
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Extract(data []byte) (*content.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func statementDoc() *content.Document {
	return content.NewDocument([]content.Page{{
		Number: 1,
		Text: "WELLS FARGO\nAccount Holder: Jane Roe\nAccount Number: ****1234\n" +
			"Statement Period: 02/01/2024 - 02/29/2024\nOpening Balance: $1,000.00\nClosing Balance: $950.00",
		Tables: []types.Grid{{
			{sp("Posting Date"), sp("Transaction Description"), sp("Amount"), sp("Balance")},
			{sp("02/03/2024"), sp("Coffee"), sp("-$50.00"), sp("$950.00")},
		}},
	}})
}

func plainBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, generate.Render(&buf, generate.TestBank()))
	return buf.Bytes()
}

func TestProcess(t *testing.T) {
	provider := &fakeProvider{doc: statementDoc()}
	p := &Processor{Provider: provider}

	res, err := p.Process(plainBytes(t))
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 1, res.PageCount)

	rec := res.Record
	require.NotNil(t, rec.BankName)
	assert.Equal(t, "WELLS FARGO", *rec.BankName)
	require.NotNil(t, rec.AccountNumber)
	assert.Equal(t, "****1234", *rec.AccountNumber)
	require.Len(t, rec.Transactions, 1)
	assert.Equal(t, "-50", rec.Transactions[0].Amount.String())

	assert.Equal(t, map[string]string{
		"date":        "Posting Date",
		"description": "Transaction Description",
		"amount":      "Amount",
		"balance":     "Balance",
	}, res.Columns)
}

func TestProcessWithoutTable(t *testing.T) {
	doc := content.NewDocument([]content.Page{{Number: 1, Text: "CHASE BANK"}})
	p := &Processor{Provider: &fakeProvider{doc: doc}}

	res, err := p.Process(plainBytes(t))
	require.NoError(t, err)
	assert.Empty(t, res.Columns)
	assert.Empty(t, res.Record.Transactions)
	assert.InDelta(t, 0.1, Completeness(res.Record), 1e-9)
}

func TestProcessProviderFailure(t *testing.T) {
	boom := errors.New("boom")
	p := &Processor{Provider: &fakeProvider{err: boom}}

	_, err := p.Process(plainBytes(t))
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.False(t, f.NeedsPassword)
	assert.Contains(t, f.Message, "fake backend")
	assert.ErrorIs(t, err, boom)
}

func TestProcessEncrypted(t *testing.T) {
	data, err := generate.EncryptedSample("test123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     error
	}{
		{name: "no password", password: "", want: encryption.ErrPasswordRequired},
		{name: "wrong password", password: "nope", want: encryption.ErrIncorrectPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{doc: statementDoc()}
			p := &Processor{Provider: provider, Password: tt.password}
			_, err := p.Process(data)

			var f *Failure
			require.ErrorAs(t, err, &f)
			assert.True(t, f.NeedsPassword)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, provider.calls, "content is not read without a working password")
		})
	}

	provider := &fakeProvider{doc: statementDoc()}
	p := &Processor{Provider: provider, Password: "test123"}
	_, err = p.Process(data)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
}

func TestProcessRenderedDemo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, generate.Render(&buf, generate.Demo()))

	p := &Processor{Provider: content.NewPDFProvider()}
	res, err := p.Process(buf.Bytes())
	require.NoError(t, err)

	rec := res.Record
	require.NotNil(t, rec.BankName)
	assert.Equal(t, "CHASE", *rec.BankName)
	require.NotNil(t, rec.AccountNumber)
	assert.Equal(t, "****4521", *rec.AccountNumber)
	require.NotNil(t, rec.AccountHolder)
	assert.Equal(t, "John Doe", *rec.AccountHolder)

	require.NotNil(t, rec.StatementPeriod.From)
	require.NotNil(t, rec.StatementPeriod.To)
	assert.Equal(t, "2024-01-01", *rec.StatementPeriod.From)
	assert.Equal(t, "2024-01-31", *rec.StatementPeriod.To)

	for name, tc := range map[string]struct {
		got  *decimal.Decimal
		want string
	}{
		"opening": {rec.Summary.OpeningBalance, "9000.00"},
		"closing": {rec.Summary.ClosingBalance, "12410.01"},
		"credits": {rec.Summary.TotalCredits, "4500.00"},
		"debits":  {rec.Summary.TotalDebits, "1089.99"},
	} {
		require.NotNil(t, tc.got, name)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(*tc.got), "%s: got %s", name, tc.got)
	}

	require.Len(t, rec.Transactions, 12)

	first := rec.Transactions[0]
	require.NotNil(t, first.Description)
	assert.Equal(t, "Direct Deposit - ABC Corp Payroll", *first.Description)
	require.NotNil(t, first.Amount)
	assert.Equal(t, "3500", first.Amount.String())
	require.NotNil(t, first.Type)
	assert.Equal(t, types.KindCredit, *first.Type)
}

func TestProcessFileMissing(t *testing.T) {
	p := &Processor{Provider: &fakeProvider{doc: statementDoc()}}
	_, err := p.ProcessFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type recorder struct{ names []string }

func (r *recorder) Record(name string, _ *Result) error {
	r.names = append(r.names, name)
	return nil
}

func TestProcessBatch(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")

	good := filepath.Join(in, "feb.pdf")
	require.NoError(t, os.WriteFile(good, plainBytes(t), 0o644))
	done := filepath.Join(in, "jan.pdf")
	require.NoError(t, os.WriteFile(done, plainBytes(t), 0o644))
	require.NoError(t, os.MkdirAll(out, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "jan.json"), []byte("{}"), 0o644))
	missing := filepath.Join(in, "mar.pdf")

	rec := &recorder{}
	p := &Processor{Provider: &fakeProvider{doc: statementDoc()}}
	var log bytes.Buffer
	result := p.ProcessBatch([]string{good, done, missing},
		BatchOptions{OutputDir: out, Format: types.FormatJSON, Recorder: rec}, &log)

	assert.Equal(t, BatchResult{Extracted: 1, Skipped: 1, Failed: 1}, result)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())
	assert.Equal(t, []string{"feb.pdf"}, rec.names)

	text := log.String()
	assert.Contains(t, text, "extracted: feb.pdf")
	assert.Contains(t, text, "skipped: jan.pdf (already exists)")
	assert.Contains(t, text, "failed:  mar.pdf")
	assert.Contains(t, text, "Batch summary: 1 extracted, 1 skipped, 1 failed (total: 3)")

	written, err := os.ReadFile(filepath.Join(out, "feb.json"))
	require.NoError(t, err)
	assert.Contains(t, string(written), `"bank_name": "WELLS FARGO"`)
}

func TestProcessBatchForce(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	path := filepath.Join(in, "jan.pdf")
	require.NoError(t, os.WriteFile(path, plainBytes(t), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(out, "jan.csv"), []byte("old"), 0o644))

	p := &Processor{Provider: &fakeProvider{doc: statementDoc()}}
	result := p.ProcessBatch([]string{path},
		BatchOptions{OutputDir: out, Format: types.FormatCSV, Force: true}, &bytes.Buffer{})
	assert.Equal(t, BatchResult{Extracted: 1}, result)
	assert.False(t, result.HasFailures())

	written, err := os.ReadFile(filepath.Join(out, "jan.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "date,description,amount,balance,type")
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "jan.yaml"), OutputPath("/in/jan.pdf", "out", types.FormatYAML))
	assert.Equal(t, filepath.Join("out", "jan.txt"), OutputPath("jan.PDF", "out", types.FormatText))
}

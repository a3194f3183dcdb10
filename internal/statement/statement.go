// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package statement runs the document pipeline: it unlocks an encrypted
// statement, reads its content with a content provider and hands text and
// tables to the field extractor.
package statement

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/statement-tools/internal/content"
	"github.com/pdiddy/statement-tools/internal/encryption"
	"github.com/pdiddy/statement-tools/internal/extract"
	"github.com/pdiddy/statement-tools/pkg/types"
)

// Failure is a document-level failure. Fields that could not be found are
// not failures; they are nil in the record.
type Failure struct {
	// Message is safe to show to the user.
	Message string
	// NeedsPassword is set when a (different) password would let the
	// document open.
	NeedsPassword bool
	Err           error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return f.Message + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// Result is one processed statement.
type Result struct {
	Record types.StatementRecord
	// Columns maps each recognized transaction field to the header text it
	// was read from.
	Columns map[string]string
	// PageCount is the number of pages read.
	PageCount int
}

// Processor extracts statements from PDF bytes.
type Processor struct {
	Provider content.Provider
	// Password unlocks encrypted documents. Empty means none supplied.
	Password string
}

// Process decrypts data when needed, reads its content and extracts the
// statement fields.
func (p *Processor) Process(data []byte) (*Result, error) {
	plain, err := encryption.Decrypt(data, p.Password)
	if err != nil {
		return nil, &Failure{
			Message:       encryption.Message(err),
			NeedsPassword: errors.Is(err, encryption.ErrPasswordRequired) || errors.Is(err, encryption.ErrIncorrectPassword),
			Err:           err,
		}
	}

	doc, err := p.Provider.Extract(plain)
	if err != nil {
		return nil, &Failure{
			Message: fmt.Sprintf("Failed to read PDF content with %s backend", p.Provider.Name()),
			Err:     err,
		}
	}

	tables := doc.Tables()
	res := &Result{
		Record:    extract.Extract(doc.FullText, tables),
		Columns:   map[string]string{},
		PageCount: doc.PageCount,
	}
	if grid, ok := extract.FindTransactionTable(tables); ok {
		for field, col := range extract.MapColumns(grid[0]) {
			if h := grid[0][col]; h != nil {
				res.Columns[string(field)] = strings.TrimSpace(*h)
			}
		}
	}
	return res, nil
}

// ProcessFile reads and processes the PDF at path.
func (p *Processor) ProcessFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return p.Process(data)
}

// Completeness is the fraction of the statement's header and summary
// fields that were recognized, in [0, 1].
func Completeness(r types.StatementRecord) float64 {
	fields := []bool{
		r.BankName != nil,
		r.AccountHolder != nil,
		r.AccountNumber != nil,
		r.StatementPeriod.From != nil,
		r.StatementPeriod.To != nil,
		r.Summary.OpeningBalance != nil,
		r.Summary.ClosingBalance != nil,
		r.Summary.TotalCredits != nil,
		r.Summary.TotalDebits != nil,
		len(r.Transactions) > 0,
	}
	found := 0
	for _, ok := range fields {
		if ok {
			found++
		}
	}
	return float64(found) / float64(len(fields))
}

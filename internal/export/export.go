// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes StatementRecords as JSON, YAML, CSV, XLSX or a
// human-readable summary. Absent values stay visible: JSON and YAML emit
// null, tabular formats leave the cell empty.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/statement-tools/pkg/types"
)

// Write encodes record in the given format.
func Write(w io.Writer, format types.OutputFormat, record types.StatementRecord) error {
	switch format {
	case "", types.FormatJSON:
		return JSON(w, record)
	case types.FormatYAML:
		return YAML(w, record)
	case types.FormatCSV:
		return CSV(w, record.Transactions)
	case types.FormatXLSX:
		return XLSX(w, record)
	case types.FormatText:
		return Text(w, record)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// amount is a decimal rendered as a bare number that keeps its scale, so
// 9000.00 stays 9000.00 rather than 9000.
type amount string

func newAmount(d *decimal.Decimal) *amount {
	if d == nil {
		return nil
	}
	s := d.String()
	if exp := d.Exponent(); exp < 0 {
		s = d.StringFixed(-exp)
	}
	a := amount(s)
	return &a
}

func (a *amount) decimal() (*decimal.Decimal, error) {
	if a == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(string(*a))
	if err != nil {
		return nil, fmt.Errorf("parsing amount %q: %w", string(*a), err)
	}
	return &d, nil
}

func (a amount) MarshalJSON() ([]byte, error) { return []byte(a), nil }

func (a *amount) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("amount must be a number: %w", err)
	}
	*a = amount(n.String())
	return nil
}

func (a amount) MarshalYAML() (interface{}, error) {
	tag := "!!int"
	if strings.ContainsAny(string(a), ".eE") {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(a)}, nil
}

type summaryDoc struct {
	OpeningBalance *amount `json:"opening_balance" yaml:"opening_balance"`
	ClosingBalance *amount `json:"closing_balance" yaml:"closing_balance"`
	TotalCredits   *amount `json:"total_credits" yaml:"total_credits"`
	TotalDebits    *amount `json:"total_debits" yaml:"total_debits"`
}

type transactionDoc struct {
	Date        *string                `json:"date" yaml:"date"`
	Description *string                `json:"description" yaml:"description"`
	Amount      *amount                `json:"amount" yaml:"amount"`
	Balance     *amount                `json:"balance" yaml:"balance"`
	Type        *types.TransactionKind `json:"type" yaml:"type"`
}

// recordDoc is the wire shape shared by JSON and YAML.
type recordDoc struct {
	BankName        *string          `json:"bank_name" yaml:"bank_name"`
	AccountHolder   *string          `json:"account_holder" yaml:"account_holder"`
	AccountNumber   *string          `json:"account_number" yaml:"account_number"`
	StatementPeriod types.Period     `json:"statement_period" yaml:"statement_period"`
	Summary         summaryDoc       `json:"summary" yaml:"summary"`
	Transactions    []transactionDoc `json:"transactions" yaml:"transactions"`
}

func toDoc(r types.StatementRecord) recordDoc {
	doc := recordDoc{
		BankName:        r.BankName,
		AccountHolder:   r.AccountHolder,
		AccountNumber:   r.AccountNumber,
		StatementPeriod: r.StatementPeriod,
		Summary: summaryDoc{
			OpeningBalance: newAmount(r.Summary.OpeningBalance),
			ClosingBalance: newAmount(r.Summary.ClosingBalance),
			TotalCredits:   newAmount(r.Summary.TotalCredits),
			TotalDebits:    newAmount(r.Summary.TotalDebits),
		},
		Transactions: make([]transactionDoc, len(r.Transactions)),
	}
	for i, t := range r.Transactions {
		doc.Transactions[i] = transactionDoc{
			Date:        t.Date,
			Description: t.Description,
			Amount:      newAmount(t.Amount),
			Balance:     newAmount(t.Balance),
			Type:        t.Type,
		}
	}
	return doc
}

func fromDoc(doc recordDoc) (types.StatementRecord, error) {
	r := types.StatementRecord{
		BankName:        doc.BankName,
		AccountHolder:   doc.AccountHolder,
		AccountNumber:   doc.AccountNumber,
		StatementPeriod: doc.StatementPeriod,
		Transactions:    make([]types.Transaction, len(doc.Transactions)),
	}
	var err error
	fields := []struct {
		dst **decimal.Decimal
		src *amount
	}{
		{&r.Summary.OpeningBalance, doc.Summary.OpeningBalance},
		{&r.Summary.ClosingBalance, doc.Summary.ClosingBalance},
		{&r.Summary.TotalCredits, doc.Summary.TotalCredits},
		{&r.Summary.TotalDebits, doc.Summary.TotalDebits},
	}
	for _, f := range fields {
		if *f.dst, err = f.src.decimal(); err != nil {
			return types.StatementRecord{}, err
		}
	}
	for i, t := range doc.Transactions {
		txn := types.Transaction{Date: t.Date, Description: t.Description, Type: t.Type}
		if txn.Amount, err = t.Amount.decimal(); err != nil {
			return types.StatementRecord{}, fmt.Errorf("transaction %d: %w", i, err)
		}
		if txn.Balance, err = t.Balance.decimal(); err != nil {
			return types.StatementRecord{}, fmt.Errorf("transaction %d: %w", i, err)
		}
		r.Transactions[i] = txn
	}
	return r, nil
}

// JSON writes record as indented JSON.
func JSON(w io.Writer, record types.StatementRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(toDoc(record)); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ParseJSON reads a record written by JSON.
func ParseJSON(r io.Reader) (types.StatementRecord, error) {
	var doc recordDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return types.StatementRecord{}, fmt.Errorf("decoding JSON: %w", err)
	}
	return fromDoc(doc)
}

// YAML writes record with the same keys as JSON.
func YAML(w io.Writer, record types.StatementRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDoc(record)); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "github.com/shopspring/decimal"

// TransactionKind classifies a transaction as money in or money out.
type TransactionKind string

const (
	KindCredit TransactionKind = "credit"
	KindDebit  TransactionKind = "debit"
)

// Grid is one table recovered from a document page. The first row is the
// header. A nil cell marks a position where the extractor found no cell.
type Grid [][]*string

// Period is the statement period. Each endpoint is an ISO date
// (YYYY-MM-DD), the raw text when it could not be parsed, or nil.
type Period struct {
	From *string `json:"from" yaml:"from"`
	To   *string `json:"to" yaml:"to"`
}

// Summary holds the account totals printed on a statement.
type Summary struct {
	OpeningBalance *decimal.Decimal `json:"opening_balance" yaml:"opening_balance"`
	ClosingBalance *decimal.Decimal `json:"closing_balance" yaml:"closing_balance"`
	TotalCredits   *decimal.Decimal `json:"total_credits" yaml:"total_credits"`
	TotalDebits    *decimal.Decimal `json:"total_debits" yaml:"total_debits"`
}

// Transaction is one line item of a statement.
type Transaction struct {
	// Date is normalized to YYYY-MM-DD when recognized, raw text otherwise.
	Date *string `json:"date" yaml:"date"`

	Description *string `json:"description" yaml:"description"`

	// Amount is signed: negative for debits, positive for credits.
	Amount *decimal.Decimal `json:"amount" yaml:"amount"`

	// Balance is the running balance printed next to the transaction.
	Balance *decimal.Decimal `json:"balance" yaml:"balance"`

	Type *TransactionKind `json:"type" yaml:"type"`
}

// StatementRecord is everything recovered from one statement document.
// Absent values are nil and serialize as explicit nulls.
type StatementRecord struct {
	BankName        *string       `json:"bank_name" yaml:"bank_name"`
	AccountHolder   *string       `json:"account_holder" yaml:"account_holder"`
	AccountNumber   *string       `json:"account_number" yaml:"account_number"`
	StatementPeriod Period        `json:"statement_period" yaml:"statement_period"`
	Summary         Summary       `json:"summary" yaml:"summary"`
	Transactions    []Transaction `json:"transactions" yaml:"transactions"`
}

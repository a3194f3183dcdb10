// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package templates

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pdiddy/statement-tools/pkg/types"
)

// Template records how a bank's statements were read: the patterns that
// matched and which table header fed each transaction field.
type Template struct {
	ID            string
	BankName      string
	AccountType   string
	Patterns      map[string]string
	ColumnMapping map[string]string
	TimesUsed     int
	SuccessRate   float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Save inserts the template for t.BankName or, when one exists, replaces
// its patterns and mapping, bumps its use count and folds successRate into
// the running average.
func (s *Store) Save(ctx context.Context, t Template, successRate float64) (Template, error) {
	patterns, err := json.Marshal(nonNil(t.Patterns))
	if err != nil {
		return Template{}, fmt.Errorf("encoding patterns: %w", err)
	}
	mapping, err := json.Marshal(nonNil(t.ColumnMapping))
	if err != nil {
		return Template{}, fmt.Errorf("encoding column mapping: %w", err)
	}
	now := s.timestamp()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO BankTemplate
			(id, bankName, accountType, patterns, columnMapping, timesUsed, successRate, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?, ?)
		ON CONFLICT(bankName) DO UPDATE SET
			accountType   = excluded.accountType,
			patterns      = excluded.patterns,
			columnMapping = excluded.columnMapping,
			successRate   = (BankTemplate.successRate * BankTemplate.timesUsed + excluded.successRate)
			                / (BankTemplate.timesUsed + 1),
			timesUsed     = BankTemplate.timesUsed + 1,
			updatedAt     = excluded.updatedAt`,
		newID(), t.BankName, nullString(t.AccountType), string(patterns), string(mapping), successRate, now, now)
	if err != nil {
		return Template{}, fmt.Errorf("saving template %s: %w", t.BankName, err)
	}
	return s.Get(ctx, t.BankName)
}

// Get returns the template saved for bankName.
func (s *Store) Get(ctx context.Context, bankName string) (Template, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, bankName, accountType, patterns, columnMapping, timesUsed, successRate, createdAt, updatedAt
		FROM BankTemplate WHERE bankName = ?`, bankName)
	t, err := scanTemplate(row)
	if err != nil {
		return Template{}, fmt.Errorf("loading template %s: %w", bankName, err)
	}
	return t, nil
}

// List returns all templates ordered by bank name.
func (s *Store) List(ctx context.Context) ([]Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, bankName, accountType, patterns, columnMapping, timesUsed, successRate, createdAt, updatedAt
		FROM BankTemplate ORDER BY bankName`)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(sc scanner) (Template, error) {
	var (
		t                  Template
		accountType        sql.NullString
		patterns, mapping  string
		createdAt, updated string
	)
	if err := sc.Scan(&t.ID, &t.BankName, &accountType, &patterns, &mapping,
		&t.TimesUsed, &t.SuccessRate, &createdAt, &updated); err != nil {
		return Template{}, err
	}
	t.AccountType = accountType.String
	if err := json.Unmarshal([]byte(patterns), &t.Patterns); err != nil {
		return Template{}, fmt.Errorf("decoding patterns of %s: %w", t.BankName, err)
	}
	if err := json.Unmarshal([]byte(mapping), &t.ColumnMapping); err != nil {
		return Template{}, fmt.Errorf("decoding column mapping of %s: %w", t.BankName, err)
	}
	t.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	t.UpdatedAt, _ = time.Parse(timeLayout, updated)
	return t, nil
}

// RecordStatement stores an extracted statement and its transactions and
// returns the new statement ID.
func (s *Store) RecordStatement(ctx context.Context, fileName string, rec types.StatementRecord) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id := newID()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO BankStatement
			(id, fileName, bankName, accountHolder, accountNumber, periodFrom, periodTo, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, fileName, rec.BankName, rec.AccountHolder, rec.AccountNumber,
		rec.StatementPeriod.From, rec.StatementPeriod.To, s.timestamp())
	if err != nil {
		return "", fmt.Errorf("inserting statement %s: %w", fileName, err)
	}

	for i, t := range rec.Transactions {
		var amount, balance, kind *string
		if t.Amount != nil {
			v := t.Amount.String()
			amount = &v
		}
		if t.Balance != nil {
			v := t.Balance.String()
			balance = &v
		}
		if t.Type != nil {
			v := string(*t.Type)
			kind = &v
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO "Transaction" (id, statementId, date, description, amount, balance, type)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			newID(), id, t.Date, t.Description, amount, balance, kind)
		if err != nil {
			return "", fmt.Errorf("inserting transaction %d of %s: %w", i, fileName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing statement %s: %w", fileName, err)
	}
	return id, nil
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

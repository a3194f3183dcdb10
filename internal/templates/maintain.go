// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package templates

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
)

// Inspect prints every table with its row count, then each saved template
// with its patterns and column mapping. JSON that does not decode is shown
// raw.
func (s *Store) Inspect(ctx context.Context, w io.Writer) error {
	counts, err := s.TableCounts(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "=== DATABASE TABLES ===")
	for _, c := range counts {
		fmt.Fprintf(w, "  %s: %d rows\n", c.Table, c.Rows)
	}

	fmt.Fprintln(w, "\n=== SAVED BANK TEMPLATES ===")
	ok, err := s.hasTable(ctx, tableTemplates)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "  (no BankTemplate table)")
		return nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, bankName, accountType, timesUsed, successRate, createdAt, updatedAt, patterns, columnMapping
		FROM BankTemplate ORDER BY bankName`)
	if err != nil {
		return fmt.Errorf("reading templates: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var (
			id, bank, created, updated, patterns, mapping string
			accountType                                   sql.NullString
			timesUsed                                     int
			successRate                                   float64
		)
		if err := rows.Scan(&id, &bank, &accountType, &timesUsed, &successRate,
			&created, &updated, &patterns, &mapping); err != nil {
			return fmt.Errorf("scanning template: %w", err)
		}
		n++

		acct := "N/A"
		if accountType.Valid && accountType.String != "" {
			acct = accountType.String
		}
		fmt.Fprintf(w, "\n--- Template: %s ---\n", bank)
		fmt.Fprintf(w, "  ID:           %s\n", id)
		fmt.Fprintf(w, "  Bank Name:    %s\n", bank)
		fmt.Fprintf(w, "  Account Type: %s\n", acct)
		fmt.Fprintf(w, "  Times Used:   %d\n", timesUsed)
		fmt.Fprintf(w, "  Success Rate: %g\n", successRate)
		fmt.Fprintf(w, "  Created:      %s\n", created)
		fmt.Fprintf(w, "  Updated:      %s\n", updated)
		printJSONObject(w, "Patterns", patterns)
		printJSONObject(w, "Column Mapping", mapping)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading templates: %w", err)
	}
	if n == 0 {
		fmt.Fprintln(w, "  (no templates saved yet)")
	}
	return nil
}

// printJSONObject prints the keys of a JSON object in sorted order, one per
// line, or the raw text when it is not an object.
func printJSONObject(w io.Writer, label, raw string) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		fmt.Fprintf(w, "  %s (raw): %s\n", label, raw)
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "    %s: %s\n", k, jsonValue(obj[k]))
	}
}

// jsonValue renders strings unquoted and everything else compactly.
func jsonValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// PurgeSummary reports what a purge removed and kept.
type PurgeSummary struct {
	Deleted       []TableCount
	TemplatesKept int
}

// DeletedRows returns the total number of rows removed.
func (p PurgeSummary) DeletedRows() int {
	n := 0
	for _, c := range p.Deleted {
		n += c.Rows
	}
	return n
}

// Purge deletes all statement data in one transaction. Tables that do not
// exist are skipped; BankTemplate rows are counted and kept.
func (s *Store) Purge(ctx context.Context, w io.Writer) (PurgeSummary, error) {
	names, err := s.tableNames(ctx)
	if err != nil {
		return PurgeSummary{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PurgeSummary{}, fmt.Errorf("beginning purge: %w", err)
	}
	defer tx.Rollback()

	var summary PurgeSummary
	for _, table := range userTables {
		if !slices.Contains(names, table) {
			continue
		}
		n, err := countRows(ctx, tx, table)
		if err != nil {
			return PurgeSummary{}, err
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %q`, table)); err != nil {
			return PurgeSummary{}, fmt.Errorf("purging %s: %w", table, err)
		}
		summary.Deleted = append(summary.Deleted, TableCount{Table: table, Rows: n})
	}
	if slices.Contains(names, tableTemplates) {
		if summary.TemplatesKept, err = countRows(ctx, tx, tableTemplates); err != nil {
			return PurgeSummary{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return PurgeSummary{}, fmt.Errorf("committing purge: %w", err)
	}

	for _, c := range summary.Deleted {
		fmt.Fprintf(w, "  Purged %s: %d rows deleted\n", c.Table, c.Rows)
	}
	if slices.Contains(names, tableTemplates) {
		fmt.Fprintf(w, "  Preserved BankTemplate: %d templates kept\n", summary.TemplatesKept)
	}
	return summary, nil
}

// PurgePaths purges each database in paths. Missing files are reported and
// skipped; other failures are collected and do not stop the remaining paths.
func PurgePaths(ctx context.Context, paths []string, w io.Writer) error {
	var errs []error
	for _, path := range paths {
		fmt.Fprintf(w, "Purging %s\n", path)
		s, err := OpenExisting(path)
		if errors.Is(err, ErrNotFound) {
			fmt.Fprintf(w, "  Skipped (not found): %s\n", path)
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		_, err = s.Purge(ctx, w)
		s.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("purging %s: %w", path, err))
			continue
		}
		fmt.Fprintf(w, "  Done: %s\n", path)
	}
	return errors.Join(errs...)
}

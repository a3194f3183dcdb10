// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/statement-tools/pkg/types"
)

// Field is a logical transaction column.
type Field string

const (
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldBalance     Field = "balance"
)

// headerRules are checked in this order against each header cell. The token
// is matched as a substring of the lower-cased cell.
var headerRules = []struct {
	token string
	field Field
}{
	{"date", FieldDate},
	{"description", FieldDescription},
	{"amount", FieldAmount},
	{"balance", FieldBalance},
}

// ColumnMap maps a logical field to its column index. Fields without a
// matching header are absent from the map.
type ColumnMap map[Field]int

// FindTransactionTable returns the first grid that has a header and at least
// one data row, and whose header names a transaction column. Later grids are
// not consulted.
func FindTransactionTable(tables []types.Grid) (types.Grid, bool) {
	for _, grid := range tables {
		if len(grid) < 2 {
			continue
		}
		if len(MapColumns(grid[0])) > 0 {
			return grid, true
		}
	}
	return nil, false
}

// MapColumns assigns header columns to fields. For each cell the first
// matching rule wins; when several cells match the same field the rightmost
// one is kept.
func MapColumns(header []*string) ColumnMap {
	cols := ColumnMap{}
	for i, cell := range header {
		h := strings.ToLower(strings.TrimSpace(deref(cell)))
		if h == "" {
			continue
		}
		for _, rule := range headerRules {
			if strings.Contains(h, rule.token) {
				cols[rule.field] = i
				break
			}
		}
	}
	return cols
}

// ParseTransactions converts the data rows of a transaction grid. Blank rows
// are skipped, and a row is kept only when it has a date or a description.
func ParseTransactions(grid types.Grid) []types.Transaction {
	txns := []types.Transaction{}
	if len(grid) < 2 {
		return txns
	}
	cols := MapColumns(grid[0])

	for _, row := range grid[1:] {
		if blankRow(row) {
			continue
		}

		var txn types.Transaction
		if i, ok := cols[FieldDate]; ok {
			raw := strings.TrimSpace(cellAt(row, i))
			if date, _ := NormalizeDate(raw); date != "" {
				txn.Date = ptr(date)
			}
		}
		if i, ok := cols[FieldDescription]; ok {
			if desc := strings.TrimSpace(cellAt(row, i)); desc != "" {
				txn.Description = ptr(desc)
			}
		}
		if i, ok := cols[FieldAmount]; ok {
			txn.Amount, txn.Type = ParseAmount(cellAt(row, i))
		}
		if i, ok := cols[FieldBalance]; ok {
			txn.Balance = ParseBalance(cellAt(row, i))
		}

		if txn.Date != nil || txn.Description != nil {
			txns = append(txns, txn)
		}
	}
	return txns
}

func blankRow(row []*string) bool {
	for _, cell := range row {
		if strings.TrimSpace(deref(cell)) != "" {
			return false
		}
	}
	return true
}

// cellAt tolerates rows shorter than the header.
func cellAt(row []*string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return deref(row[i])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

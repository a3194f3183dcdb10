// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/statement-tools/pkg/types"
)

const (
	sheetSummary      = "Summary"
	sheetTransactions = "Transactions"
)

// csvRow is one transaction as written to CSV. Absent values are empty.
type csvRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Amount      string `csv:"amount"`
	Balance     string `csv:"balance"`
	Type        string `csv:"type"`
}

// CSV writes one row per transaction under a fixed header.
func CSV(w io.Writer, txns []types.Transaction) error {
	rows := make([]*csvRow, len(txns))
	for i, t := range txns {
		row := &csvRow{
			Date:        str(t.Date),
			Description: str(t.Description),
			Amount:      decimalText(t.Amount),
			Balance:     decimalText(t.Balance),
		}
		if t.Type != nil {
			row.Type = string(*t.Type)
		}
		rows[i] = row
	}
	if len(rows) == 0 {
		_, err := io.WriteString(w, "date,description,amount,balance,type\n")
		return err
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("encoding CSV: %w", err)
	}
	return nil
}

// XLSX writes a workbook with a Summary sheet of account details and totals
// and a Transactions sheet.
func XLSX(w io.Writer, record types.StatementRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetTransactions); err != nil {
		return fmt.Errorf("creating transactions sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Bank", str(record.BankName)},
		{"Account Holder", str(record.AccountHolder)},
		{"Account Number", str(record.AccountNumber)},
		{"Period From", str(record.StatementPeriod.From)},
		{"Period To", str(record.StatementPeriod.To)},
		{"Opening Balance", cellNumber(record.Summary.OpeningBalance)},
		{"Closing Balance", cellNumber(record.Summary.ClosingBalance)},
		{"Total Credits", cellNumber(record.Summary.TotalCredits)},
		{"Total Debits", cellNumber(record.Summary.TotalDebits)},
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return err
	}

	rows := [][]interface{}{{"Date", "Description", "Amount", "Balance", "Type"}}
	for _, t := range record.Transactions {
		kind := ""
		if t.Type != nil {
			kind = string(*t.Type)
		}
		rows = append(rows, []interface{}{
			str(t.Date), str(t.Description), cellNumber(t.Amount), cellNumber(t.Balance), kind,
		})
	}
	if err := writeRows(f, sheetTransactions, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// cellNumber returns a float for present amounts and nil for absent ones,
// which excelize leaves as an empty cell.
func cellNumber(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.InexactFloat64()
}

func decimalText(d *decimal.Decimal) string {
	if a := newAmount(d); a != nil {
		return string(*a)
	}
	return ""
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/pdiddy/statement-tools/internal/export"
)

const (
	fontFamily = "Helvetica"
	margin     = 15.0
	rowHeight  = 6.5
	periodDate = "January 2, 2006"
	rowDate    = "01/02/2006"
	labelDate  = "Jan 2, 2006"
)

// columns of the transaction table, in millimetres.
var (
	tableHeader = []string{"Date", "Description", "Amount", "Balance"}
	tableWidths = []float64{30.5, 76.2, 25.4, 25.4}
	tableAlign  = []string{"L", "L", "R", "R"}
)

// Render writes stmt as a one-column Letter-size PDF. Summary figures are
// free text; the transaction table is ruled so readers can recover its grid.
func Render(w io.Writer, stmt Statement) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-margin)
		pdf.SetFont(fontFamily, "", 9)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(0, 10, stmt.BankName, "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 14)
	pdf.CellFormat(0, 8, "Account Statement", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont(fontFamily, "", 10)
	for _, info := range []string{
		"Account Holder: " + stmt.AccountHolder,
		"Account Number: " + stmt.AccountNumber,
		fmt.Sprintf("Statement Period: %s - %s", stmt.From.Format(periodDate), stmt.To.Format(periodDate)),
		"Address: " + stmt.Address,
	} {
		pdf.CellFormat(0, 6, info, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	heading(pdf, "Account Summary")
	opening, closing := "Opening Balance", "Closing Balance"
	if stmt.DatedBalances {
		opening += " (" + stmt.From.Format(labelDate) + ")"
		closing += " (" + stmt.To.Format(labelDate) + ")"
	}
	for _, s := range []struct {
		label string
		value decimal.Decimal
	}{
		{opening, stmt.Opening},
		{"Total Credits", stmt.TotalCredits},
		{"Total Debits", stmt.TotalDebits},
		{closing, stmt.Closing},
	} {
		pdf.CellFormat(101.6, rowHeight, s.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50.8, rowHeight, export.Money(s.value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	heading(pdf, "Transaction Details")
	tableHead(pdf)

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFont(fontFamily, "", 9)
	for i, t := range stmt.Transactions {
		if pdf.GetY()+rowHeight > pageHeight-2*margin {
			pdf.AddPage()
			tableHead(pdf)
			pdf.SetFont(fontFamily, "", 9)
		}
		shade := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		cells := []string{
			t.Date.Format(rowDate),
			t.Description,
			export.Money(t.Amount),
			export.Money(t.Balance),
		}
		for c, text := range cells {
			pdf.CellFormat(tableWidths[c], rowHeight, text, "1", 0, tableAlign[c], shade, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering statement PDF: %w", err)
	}
	return nil
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
}

// tableHead draws the shaded header row of the transaction table.
func tableHead(pdf *fpdf.Fpdf) {
	pdf.SetFont(fontFamily, "B", 9)
	pdf.SetFillColor(31, 78, 121)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(128, 128, 128)
	for c, h := range tableHeader {
		pdf.CellFormat(tableWidths[c], rowHeight, h, "1", 0, tableAlign[c], true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

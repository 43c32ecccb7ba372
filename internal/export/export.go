// Package export writes wizard summaries as XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/portfolio-mgmt/pms-wizard/internal/domain"
	"github.com/portfolio-mgmt/pms-wizard/internal/format"
)

// Sheet names
const (
	SheetLines   = "Budget Lines"
	SheetSummary = "Summary"
)

// LineHeaders is the header row of the budget lines sheet
var LineHeaders = []interface{}{
	"Services Component", "Line", "Description", "Need By", "CAN",
	"Amount", "Fee Rate", "Fee", "Total", "Status", "Saved",
}

var summaryHeaders = []interface{}{"Services Component", "Subtotal", "Fees", "Total", "% of Total"}

// Filename returns the download name of a wizard export
func Filename(w domain.WizardDTO) string {
	return fmt.Sprintf("agreement-%d-budget-lines.xlsx", w.AgreementID)
}

// WriteSummary writes the wizard's lines, one row per item grouped by
// services component, and a per-group summary sheet.
func WriteSummary(out io.Writer, w domain.WizardDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetLines); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 7})
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(SheetLines, "A1", &LineHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	row := 2
	for _, g := range w.Groups {
		for i, item := range g.Items {
			can := ""
			if item.CAN != nil {
				can = item.CAN.Number
			}
			saved := "No"
			if item.IsPersisted() {
				saved = "Yes"
			}
			fee := item.Fee()
			values := []interface{}{
				g.Name,
				i + 1,
				item.Description,
				format.DateNeeded(item.DateNeeded),
				can,
				item.Amount.InexactFloat64(),
				item.ProcShopFeePercentage.InexactFloat64(),
				fee.InexactFloat64(),
				item.Amount.Add(fee).InexactFloat64(),
				string(item.Status),
				saved,
			}
			if err := setRow(f, SheetLines, row, values); err != nil {
				return err
			}
			row++
		}
	}
	totals := []interface{}{
		"Total", nil, nil, nil, nil,
		w.Totals.Subtotal.InexactFloat64(), nil,
		w.Totals.Fees.InexactFloat64(),
		w.Totals.Total.InexactFloat64(),
	}
	if err := setRow(f, SheetLines, row, totals); err != nil {
		return err
	}
	if err := styleRange(f, SheetLines, "F2", cell(9, row), money); err != nil {
		return err
	}
	if err := styleRange(f, SheetLines, "A1", cell(len(LineHeaders), 1), bold); err != nil {
		return err
	}
	if err := styleRange(f, SheetLines, cell(1, row), cell(len(LineHeaders), row), bold); err != nil {
		return err
	}
	_ = f.SetColWidth(SheetLines, "A", "A", 22)
	_ = f.SetColWidth(SheetLines, "C", "C", 40)

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetSummary, "A1", &summaryHeaders); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for i, g := range w.Groups {
		values := []interface{}{
			g.Name,
			g.Totals.Subtotal.InexactFloat64(),
			g.Totals.Fees.InexactFloat64(),
			g.Totals.Total.InexactFloat64(),
			g.PercentOfTotal,
		}
		if err := setRow(f, SheetSummary, i+2, values); err != nil {
			return err
		}
	}
	if len(w.Groups) > 0 {
		if err := styleRange(f, SheetSummary, "B2", cell(4, len(w.Groups)+1), money); err != nil {
			return err
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}

func styleRange(f *excelize.File, sheet, from, to string, style int) error {
	if err := f.SetCellStyle(sheet, from, to, style); err != nil {
		return fmt.Errorf("failed to style %s!%s:%s: %w", sheet, from, to, err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

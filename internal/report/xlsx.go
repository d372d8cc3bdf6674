package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "summary"
	ledgerSheet  = "ledger"
)

// RenderSummaryXLSX writes a fee summary as a workbook, one row per reading
func RenderSummaryXLSX(s *Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", fmt.Sprintf("Unit %d", s.UnitNumber))
	_ = f.SetCellValue(summarySheet, "A2", fmt.Sprintf("%d, months %d-%d", s.Year, s.FromMonth, s.ToMonth))

	for i, c := range summaryColumns {
		ref, _ := excelize.CoordinatesToCellName(i+1, 4)
		_ = f.SetCellValue(summarySheet, ref, c.title)
	}
	for r, b := range s.Breakdowns {
		row := r + 5
		for i, c := range summaryColumns {
			ref, _ := excelize.CoordinatesToCellName(i+1, row)
			if i == 0 {
				_ = f.SetCellValue(summarySheet, ref, c.value(b))
				continue
			}
			// numbers stay numeric so the sheet can be summed
			v, _ := parseFixed(c.value(b))
			_ = f.SetCellValue(summarySheet, ref, v)
		}
	}

	last := len(s.Breakdowns) + 6
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", last), "Total")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("L%d", last), s.Total.InexactFloat64())
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", last+1), "Balance")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("L%d", last+1), s.Balance.InexactFloat64())

	return write(f)
}

// RenderLedgerXLSX writes ledger entries in the order given
func RenderLedgerXLSX(title string, entries []*domain.LedgerEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(ledgerSheet, "A1", title)
	header := []interface{}{"Date", "Unit", "Title", "Type", "Amount", "Balance", "Counterparty", "Description"}
	if err := f.SetSheetRow(ledgerSheet, "A3", &header); err != nil {
		return nil, err
	}
	for i, e := range entries {
		var unit interface{}
		if e.UnitNumber != nil {
			unit = *e.UnitNumber
		}
		row := []interface{}{
			e.Date.Format(time.DateOnly),
			unit,
			e.Title,
			string(e.Type),
			e.Amount.InexactFloat64(),
			e.Balance.InexactFloat64(),
			deref(e.Counterparty),
			deref(e.Description),
		}
		ref, _ := excelize.CoordinatesToCellName(1, i+4)
		if err := f.SetSheetRow(ledgerSheet, ref, &row); err != nil {
			return nil, err
		}
	}
	return write(f)
}

func write(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

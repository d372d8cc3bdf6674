// Package importer reads meter readings from the association's spreadsheet.
//
// The active sheet holds one column group per reading date. Row 1 carries
// the dates (blank cells are ignored, so merged headers work). Every later
// row starts with a unit number followed by a cold/hot counter pair for
// each date, in header order.
package importer

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/util"
	"github.com/xuri/excelize/v2"
)

// maxErrors caps how many cell problems are reported for one file
const maxErrors = 20

var dateLayouts = []string{
	time.DateOnly,
	"02.01.2006",
	"02/01/2006",
	"2006/01/02",
}

// Row is one parsed counter pair
type Row struct {
	UnitNumber  int32
	ReadingDate time.Time
	ColdCounter int64
	HotCounter  int64
}

// ParseReadings parses a workbook into rows sorted by unit then date.
// Problems are returned as a *domain.ValidationError naming the cells.
func ParseReadings(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewValidationError("file", "file is not a readable xlsx workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(grid) < 2 {
		return nil, domain.NewValidationError("file", "sheet needs a header row of dates and at least one unit row")
	}

	verr := &domain.ValidationError{}
	dates := parseHeader(grid[0], verr)
	if len(dates) == 0 && len(verr.Fields) == 0 {
		verr.Add("file", "header row has no reading dates")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var rows []Row
	for i, cells := range grid[1:] {
		line := i + 2
		if len(cells) == 0 || strings.TrimSpace(cells[0]) == "" {
			continue
		}
		unit, err := parseInt(cells[0])
		if err != nil || unit <= 0 || unit > math.MaxInt32 {
			addCapped(verr, cellName(1, line), "unit number must be a positive integer")
			continue
		}

		for j, date := range dates {
			coldCol, hotCol := 1+2*j, 2+2*j
			cold, hot := cell(cells, coldCol), cell(cells, hotCol)
			if cold == "" && hot == "" {
				continue
			}
			coldValue, err := parseInt(cold)
			if err != nil || coldValue < 0 {
				addCapped(verr, cellName(coldCol+1, line), "cold counter must be a non-negative integer")
				continue
			}
			hotValue, err := parseInt(hot)
			if err != nil || hotValue < 0 {
				addCapped(verr, cellName(hotCol+1, line), "hot counter must be a non-negative integer")
				continue
			}
			rows = append(rows, Row{
				UnitNumber:  int32(unit),
				ReadingDate: date,
				ColdCounter: coldValue,
				HotCounter:  hotValue,
			})
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.NewValidationError("file", "sheet contains no readings")
	}

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].UnitNumber != rows[b].UnitNumber {
			return rows[a].UnitNumber < rows[b].UnitNumber
		}
		return rows[a].ReadingDate.Before(rows[b].ReadingDate)
	})
	return rows, nil
}

func parseHeader(header []string, verr *domain.ValidationError) []time.Time {
	var dates []time.Time
	for col := 1; col < len(header); col++ {
		raw := strings.TrimSpace(header[col])
		if raw == "" {
			continue
		}
		date, err := parseDate(raw)
		if err != nil {
			addCapped(verr, cellName(col+1, 1), "header cell is not a date")
			continue
		}
		dates = append(dates, date)
	}
	return dates
}

// parseDate accepts an Excel serial date or a written date
func parseDate(raw string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}
		return util.DateOnly(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

// parseInt accepts integers written as floats ("120" or "120.0")
func parseInt(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	return int64(f), nil
}

func cell(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", row, col)
	}
	return name
}

func addCapped(verr *domain.ValidationError, field, msg string) {
	if len(verr.Fields) < maxErrors {
		verr.Add(field, msg)
	}
}

// Package report renders fee summaries and ledgers as PDF and XLSX.
package report

import (
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary is a unit's fees over a window of months together with its
// current ledger balance
type Summary struct {
	UnitNumber    int32                  `json:"unitNumber"`
	AccountNumber string                 `json:"accountNumber"`
	Year          int                    `json:"year"`
	FromMonth     int                    `json:"fromMonth"`
	ToMonth       int                    `json:"toMonth"`
	Breakdowns    []*domain.FeeBreakdown `json:"breakdowns"`
	Total         decimal.Decimal        `json:"total"`
	Balance       decimal.Decimal        `json:"balance"`
	GeneratedAt   time.Time              `json:"generatedAt"`
}

// SumTotals adds up the totals of every breakdown
func SumTotals(breakdowns []*domain.FeeBreakdown) decimal.Decimal {
	total := decimal.Zero
	for _, b := range breakdowns {
		total = total.Add(b.Total)
	}
	return total
}

type column struct {
	title string
	width float64
	value func(b *domain.FeeBreakdown) string
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// summaryColumns is shared by the PDF and XLSX renderers
var summaryColumns = []column{
	{"Date", 22, func(b *domain.FeeBreakdown) string { return b.ReadingDate.Format(time.DateOnly) }},
	{"Cold m3", 16, func(b *domain.FeeBreakdown) string { return decimal.NewFromInt(b.Usage.ColdUsed).String() }},
	{"Hot m3", 16, func(b *domain.FeeBreakdown) string { return decimal.NewFromInt(b.Usage.HotUsed).String() }},
	{"Cold water", 22, func(b *domain.FeeBreakdown) string { return money(b.ColdWaterCost) }},
	{"Hot water", 22, func(b *domain.FeeBreakdown) string { return money(b.HotWaterCost) }},
	{"Maintenance", 24, func(b *domain.FeeBreakdown) string { return money(b.MaintenanceCost) }},
	{"Repair fund", 22, func(b *domain.FeeBreakdown) string { return money(b.RepairFundCost) }},
	{"Heating", 20, func(b *domain.FeeBreakdown) string { return money(b.CentralHeatingCost) }},
	{"Garbage", 20, func(b *domain.FeeBreakdown) string { return money(b.NetGarbageCost()) }},
	{"Parking", 18, func(b *domain.FeeBreakdown) string { return money(b.ParkingCost) }},
	{"Surcharge", 20, func(b *domain.FeeBreakdown) string { return money(b.HeatingSurcharge) }},
	{"Total", 24, func(b *domain.FeeBreakdown) string { return money(b.Total) }},
}

func parseFixed(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

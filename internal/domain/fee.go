package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WaterUsage is consumption derived from consecutive readings
type WaterUsage struct {
	ColdUsed    int64 `json:"coldUsed"`
	HotUsed     int64 `json:"hotUsed"`
	ColdCounter int64 `json:"coldCounter"`
	HotCounter  int64 `json:"hotCounter"`
}

// FeeBreakdown is the itemized charge for one unit and one reading period.
// All costs are rounded to cents; Total is the sum of the rounded items.
type FeeBreakdown struct {
	UnitNumber     int32           `json:"unitNumber"`
	ReadingID      int64           `json:"readingId"`
	ReadingDate    time.Time       `json:"readingDate"`
	TariffPeriodID int32           `json:"tariffPeriodId"`
	Tenants        int32           `json:"tenants"`
	ParkingCards   int32           `json:"parkingCards"`
	Area           decimal.Decimal `json:"area"`

	Usage WaterUsage `json:"usage"`

	HotWaterRate       decimal.Decimal `json:"hotWaterRate"`
	ColdWaterRate      decimal.Decimal `json:"coldWaterRate"`
	MaintenanceRate    decimal.Decimal `json:"maintenanceRate"`
	RepairFundRate     decimal.Decimal `json:"repairFundRate"`
	CentralHeatingRate decimal.Decimal `json:"centralHeatingRate"`
	GarbageRate        decimal.Decimal `json:"garbageRate"`
	ParkingRate        decimal.Decimal `json:"parkingRate"`

	HotWaterCost       decimal.Decimal `json:"hotWaterCost"`
	ColdWaterCost      decimal.Decimal `json:"coldWaterCost"`
	MaintenanceCost    decimal.Decimal `json:"maintenanceCost"`
	RepairFundCost     decimal.Decimal `json:"repairFundCost"`
	CentralHeatingCost decimal.Decimal `json:"centralHeatingCost"`
	GarbageCost        decimal.Decimal `json:"garbageCost"`
	FamilyDiscount     decimal.Decimal `json:"familyDiscount"`
	ParkingCost        decimal.Decimal `json:"parkingCost"`
	HeatingSurcharge   decimal.Decimal `json:"heatingSurcharge"`
	Total              decimal.Decimal `json:"total"`
}

// NetGarbageCost is the garbage cost after the family discount
func (f *FeeBreakdown) NetGarbageCost() decimal.Decimal {
	return f.GarbageCost.Sub(f.FamilyDiscount)
}

// SumItems adds every itemized cost. It is what Total must equal.
func (f *FeeBreakdown) SumItems() decimal.Decimal {
	return f.HotWaterCost.
		Add(f.ColdWaterCost).
		Add(f.MaintenanceCost).
		Add(f.RepairFundCost).
		Add(f.CentralHeatingCost).
		Add(f.NetGarbageCost()).
		Add(f.ParkingCost).
		Add(f.HeatingSurcharge)
}

package service

import (
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/lock"
	"github.com/dafibh/condo/condo-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func int32Ptr(n int32) *int32 {
	return &n
}

func strPtr(s string) *string {
	return &s
}

// fixture wires every service to in-memory repositories
type fixture struct {
	units      *testutil.MockUnitRepository
	readings   *testutil.MockMeterReadingRepository
	tariffs    *testutil.MockTariffRepository
	occupancy  *testutil.MockOccupancyRepository
	surcharges *testutil.MockSurchargeRepository
	ledger     *testutil.MockLedgerRepository
	users      *testutil.MockUserRepository
	locker     *lock.KeyedMutex

	fee        *FeeService
	ledgerSvc  *LedgerService
	settlement *SettlementService
}

func newFixture() *fixture {
	f := &fixture{
		units:      testutil.NewMockUnitRepository(),
		readings:   testutil.NewMockMeterReadingRepository(),
		tariffs:    testutil.NewMockTariffRepository(),
		occupancy:  testutil.NewMockOccupancyRepository(),
		surcharges: testutil.NewMockSurchargeRepository(),
		ledger:     testutil.NewMockLedgerRepository(),
		users:      testutil.NewMockUserRepository(),
		locker:     lock.NewKeyedMutex(),
	}
	f.fee = NewFeeService(f.units, f.readings, f.tariffs, f.occupancy, f.surcharges)
	f.ledgerSvc = NewLedgerService(f.ledger, f.units, f.locker)
	f.settlement = NewSettlementService(f.units, f.fee, f.ledgerSvc, f.locker, 2)
	return f
}

// seedUnit15 adds unit 15 (50 m2, two occupants) and a tariff effective
// from 2024-01-01 with cold water 15 and hot water 20 per m3
func (f *fixture) seedUnit15() {
	f.units.AddUnit(&domain.Unit{Number: 15, Area: dec("50"), AccountNumber: "PL15"})
	f.tariffs.AddTariff(&domain.TariffPeriod{
		ID:             1,
		EffectiveDate:  date(2024, 1, 1),
		MaintenanceFee: dec("2"),
		RepairFund:     dec("1"),
		CentralHeating: dec("3"),
		HotWater:       dec("20"),
		ColdWater:      dec("15"),
		Garbage:        dec("10"),
		ParkingFee:     dec("25"),
	})
	f.occupancy.AddOccupancy(&domain.Occupancy{ID: 1, UnitNumber: 15, StartDate: date(2023, 1, 1), Occupants: 2})
}

func (f *fixture) addReading(unit int32, d time.Time, cold, hot int64) *domain.MeterReading {
	r := &domain.MeterReading{UnitNumber: unit, ReadingDate: d, ColdCounter: cold, HotCounter: hot}
	f.readings.AddReading(r)
	return r
}

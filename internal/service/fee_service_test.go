package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFeeService_Calculate_WaterCosts(t *testing.T) {
	f := newFixture()
	f.seedUnit15()
	f.addReading(15, date(2024, 2, 1), 100, 50)
	latest := f.addReading(15, date(2024, 3, 1), 140, 70)

	b, err := f.fee.Calculate(context.Background(), 15, nil)
	require.NoError(t, err)

	assert.Equal(t, latest.ID, b.ReadingID)
	assert.Equal(t, int32(1), b.TariffPeriodID)
	assert.Equal(t, int64(40), b.Usage.ColdUsed)
	assert.Equal(t, int64(20), b.Usage.HotUsed)
	assert.Equal(t, "600.00", b.ColdWaterCost.StringFixed(2))
	assert.Equal(t, "400.00", b.HotWaterCost.StringFixed(2))
	assert.Equal(t, "100.00", b.MaintenanceCost.StringFixed(2))
	assert.Equal(t, "50.00", b.RepairFundCost.StringFixed(2))
	assert.Equal(t, "150.00", b.CentralHeatingCost.StringFixed(2))
	assert.Equal(t, "20.00", b.GarbageCost.StringFixed(2))
	assert.True(t, b.ParkingCost.IsZero())
	assert.True(t, b.HeatingSurcharge.IsZero())
	assert.Equal(t, "1320.00", b.Total.StringFixed(2))
}

func TestFeeService_Calculate_TotalIsSumOfItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedUnit15()
	f.addReading(15, date(2024, 2, 1), 100, 50)
	f.addReading(15, date(2024, 3, 1), 140, 70)

	_, err := f.surcharges.CreateParkingCard(ctx, &domain.ParkingCard{UnitNumber: 15, StartDate: date(2024, 1, 1), Cards: 2})
	require.NoError(t, err)
	_, err = f.surcharges.CreateFamilyDiscount(ctx, &domain.FamilyDiscount{UnitNumber: 15, StartDate: date(2024, 1, 1), Amount: dec("7.50")})
	require.NoError(t, err)
	_, err = f.surcharges.CreateHeating(ctx, &domain.HeatingSurcharge{UnitNumber: 15, StartDate: date(2024, 1, 1), EndDate: date(2024, 5, 31), Total: dec("1200")})
	require.NoError(t, err)

	b, err := f.fee.Calculate(ctx, 15, nil)
	require.NoError(t, err)

	assert.Equal(t, "50.00", b.ParkingCost.StringFixed(2))
	assert.Equal(t, "7.50", b.FamilyDiscount.StringFixed(2))
	assert.Equal(t, "12.50", b.NetGarbageCost().StringFixed(2))
	assert.Equal(t, "240.00", b.HeatingSurcharge.StringFixed(2))

	want := b.HotWaterCost.
		Add(b.ColdWaterCost).
		Add(b.MaintenanceCost).
		Add(b.RepairFundCost).
		Add(b.CentralHeatingCost).
		Add(b.GarbageCost).
		Sub(b.FamilyDiscount).
		Add(b.ParkingCost).
		Add(b.HeatingSurcharge)
	assert.True(t, want.Equal(b.Total), "total %s, items %s", b.Total, want)
	assert.Equal(t, "1602.50", b.Total.StringFixed(2))
}

func TestFeeService_Calculate_HotMeterReplacement(t *testing.T) {
	f := newFixture()
	f.seedUnit15()
	f.addReading(15, date(2024, 1, 1), 100, 60)
	f.addReading(15, date(2024, 2, 1), 120, 80)
	f.readings.AddReading(&domain.MeterReading{UnitNumber: 15, ReadingDate: date(2024, 3, 1), ColdCounter: 130, HotCounter: 5, NewHotMeter: true})

	b, err := f.fee.Calculate(context.Background(), 15, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(25), b.Usage.HotUsed)
	assert.Equal(t, int64(10), b.Usage.ColdUsed)
	assert.Equal(t, "500.00", b.HotWaterCost.StringFixed(2))
}

func TestFeeService_Calculate_ChosenReading(t *testing.T) {
	f := newFixture()
	f.seedUnit15()
	f.addReading(15, date(2024, 1, 1), 100, 50)
	middle := f.addReading(15, date(2024, 2, 1), 110, 55)
	f.addReading(15, date(2024, 3, 1), 200, 90)

	b, err := f.fee.Calculate(context.Background(), 15, &middle.ID)
	require.NoError(t, err)
	assert.Equal(t, middle.ID, b.ReadingID)
	assert.Equal(t, int64(10), b.Usage.ColdUsed)
	assert.Equal(t, int64(5), b.Usage.HotUsed)
}

func TestFeeService_Calculate_ReadingOfOtherUnit(t *testing.T) {
	f := newFixture()
	f.seedUnit15()
	f.units.AddUnit(&domain.Unit{Number: 16, Area: dec("40")})
	other := f.addReading(16, date(2024, 3, 1), 10, 10)

	_, err := f.fee.Calculate(context.Background(), 15, &other.ID)
	assert.ErrorIs(t, err, domain.ErrReadingNotFound)
}

func TestFeeService_Calculate_MissingPrerequisites(t *testing.T) {
	t.Run("no readings", func(t *testing.T) {
		f := newFixture()
		f.seedUnit15()
		_, err := f.fee.Calculate(context.Background(), 15, nil)
		assert.ErrorIs(t, err, domain.ErrInsufficientHistory)
	})

	t.Run("single reading", func(t *testing.T) {
		f := newFixture()
		f.seedUnit15()
		f.addReading(15, date(2024, 3, 1), 140, 70)
		_, err := f.fee.Calculate(context.Background(), 15, nil)
		assert.ErrorIs(t, err, domain.ErrInsufficientHistory)
	})

	t.Run("reading before first tariff", func(t *testing.T) {
		f := newFixture()
		f.seedUnit15()
		f.addReading(15, date(2023, 11, 1), 100, 50)
		f.addReading(15, date(2023, 12, 1), 140, 70)
		_, err := f.fee.Calculate(context.Background(), 15, nil)
		assert.ErrorIs(t, err, domain.ErrNoTariffAvailable)
	})

	t.Run("no occupancy recorded", func(t *testing.T) {
		f := newFixture()
		f.seedUnit15()
		f.units.AddUnit(&domain.Unit{Number: 16, Area: dec("40")})
		f.addReading(16, date(2024, 2, 1), 100, 50)
		f.addReading(16, date(2024, 3, 1), 140, 70)
		_, err := f.fee.Calculate(context.Background(), 16, nil)
		assert.ErrorIs(t, err, domain.ErrNoOccupancyRecorded)
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := newFixture()
		_, err := f.fee.Calculate(context.Background(), 99, nil)
		assert.ErrorIs(t, err, domain.ErrUnitNotFound)
	})
}

func TestFeeService_Calculate_LatestTariffAndOccupancyWin(t *testing.T) {
	f := newFixture()
	f.seedUnit15()
	f.tariffs.AddTariff(&domain.TariffPeriod{
		ID:            2,
		EffectiveDate: date(2024, 3, 1),
		HotWater:      dec("30"),
		ColdWater:     dec("15"),
		Garbage:       dec("10"),
	})
	f.occupancy.AddOccupancy(&domain.Occupancy{ID: 2, UnitNumber: 15, StartDate: date(2024, 2, 15), Occupants: 4})
	f.addReading(15, date(2024, 2, 1), 100, 50)
	f.addReading(15, date(2024, 3, 1), 140, 70)

	b, err := f.fee.Calculate(context.Background(), 15, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), b.TariffPeriodID)
	assert.Equal(t, "600.00", b.HotWaterCost.StringFixed(2))
	assert.Equal(t, int32(4), b.Tenants)
	assert.Equal(t, "40.00", b.GarbageCost.StringFixed(2))
}

func TestFeeService_HeatingInstallments(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedUnit15()
	_, err := f.surcharges.CreateHeating(ctx, &domain.HeatingSurcharge{UnitNumber: 15, StartDate: date(2024, 1, 1), EndDate: date(2024, 5, 31), Total: dec("1200")})
	require.NoError(t, err)

	f.addReading(15, date(2023, 12, 1), 0, 0)
	for m := 1; m <= 6; m++ {
		f.addReading(15, date(2024, time.Month(m), 1), int64(m), int64(m))
	}

	breakdowns, err := f.fee.CalculateYear(ctx, 15, 2024, 1, 12)
	require.NoError(t, err)
	require.Len(t, breakdowns, 6)

	total := dec("0")
	for i, b := range breakdowns {
		if i < 5 {
			assert.Equal(t, "240.00", b.HeatingSurcharge.StringFixed(2), "month %d", i+1)
		} else {
			assert.True(t, b.HeatingSurcharge.IsZero(), "surcharge ends in May")
		}
		total = total.Add(b.HeatingSurcharge)
	}
	assert.Equal(t, "1200.00", total.StringFixed(2))
}

func TestFeeService_CalculateRange_SkipsMissingHistory(t *testing.T) {
	f := newFixture()
	f.seedUnit15()
	f.addReading(15, date(2024, 1, 1), 100, 50)
	f.addReading(15, date(2024, 2, 1), 110, 55)
	f.addReading(15, date(2024, 3, 1), 125, 60)

	breakdowns, err := f.fee.CalculateRange(context.Background(), 15, date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)
	require.Len(t, breakdowns, 2)
	assert.Equal(t, date(2024, 2, 1), breakdowns[0].ReadingDate)
	assert.Equal(t, date(2024, 3, 1), breakdowns[1].ReadingDate)
	assert.Equal(t, int64(15), breakdowns[1].Usage.ColdUsed)
}

func TestFeeService_CalculateYear_InvalidMonths(t *testing.T) {
	f := newFixture()
	f.seedUnit15()
	for _, months := range [][2]int{{0, 5}, {3, 13}, {6, 2}} {
		_, err := f.fee.CalculateYear(context.Background(), 15, 2024, months[0], months[1])
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestBuildFeeBreakdown_RoundsEachItem(t *testing.T) {
	unit := &domain.Unit{Number: 1, Area: dec("33.333")}
	reading := &domain.MeterReading{ID: 1, ReadingDate: date(2024, 3, 1)}
	tariff := &domain.TariffPeriod{ID: 1, MaintenanceFee: dec("1.111"), RepairFund: dec("0.333")}

	b := BuildFeeBreakdown(unit, reading, &domain.WaterUsage{}, tariff, 0, 0, dec("0"), nil)
	assert.Equal(t, "37.03", b.MaintenanceCost.String())
	assert.Equal(t, "11.1", b.RepairFundCost.String())
	assert.True(t, b.Total.Equal(b.SumItems()))
	assert.Equal(t, "48.13", b.Total.StringFixed(2))
}

func TestFeeService_Calculate_SurchargeLookupErrors(t *testing.T) {
	errDB := errors.New("connection reset")
	readingDate := date(2024, 3, 1)

	tests := []struct {
		name   string
		expect func(m *surchargeLookupMock)
		unused []string
	}{
		{
			name: "parking card lookup fails",
			expect: func(m *surchargeLookupMock) {
				m.On("GetParkingCardEffectiveAt", mock.Anything, int32(15), readingDate).Return(nil, errDB).Once()
			},
			unused: []string{"GetFamilyDiscountEffectiveAt", "ListHeatingActiveAt"},
		},
		{
			name: "family discount lookup fails",
			expect: func(m *surchargeLookupMock) {
				m.On("GetParkingCardEffectiveAt", mock.Anything, int32(15), readingDate).Return(nil, nil).Once()
				m.On("GetFamilyDiscountEffectiveAt", mock.Anything, int32(15), readingDate).Return(nil, errDB).Once()
			},
			unused: []string{"ListHeatingActiveAt"},
		},
		{
			name: "heating lookup fails",
			expect: func(m *surchargeLookupMock) {
				m.On("GetParkingCardEffectiveAt", mock.Anything, int32(15), readingDate).Return(nil, nil).Once()
				m.On("GetFamilyDiscountEffectiveAt", mock.Anything, int32(15), readingDate).Return(nil, nil).Once()
				m.On("ListHeatingActiveAt", mock.Anything, int32(15), readingDate).Return(nil, errDB).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seedUnit15()
			f.addReading(15, date(2024, 2, 1), 100, 50)
			f.addReading(15, readingDate, 140, 70)

			surcharges := &surchargeLookupMock{}
			tt.expect(surcharges)
			svc := NewFeeService(f.units, f.readings, f.tariffs, f.occupancy, surcharges)

			b, err := svc.Calculate(context.Background(), 15, nil)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, errDB)
			assert.NotErrorIs(t, err, domain.ErrInsufficientHistory)

			surcharges.AssertExpectations(t)
			for _, method := range tt.unused {
				surcharges.AssertNotCalled(t, method, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestFeeService_Calculate_UsesSurchargesAtReadingDate(t *testing.T) {
	f := newFixture()
	f.seedUnit15()
	f.addReading(15, date(2024, 2, 1), 100, 50)
	f.addReading(15, date(2024, 3, 1), 140, 70)

	surcharges := &surchargeLookupMock{}
	surcharges.On("GetParkingCardEffectiveAt", mock.Anything, int32(15), date(2024, 3, 1)).
		Return(&domain.ParkingCard{UnitNumber: 15, Cards: 1}, nil).Once()
	surcharges.On("GetFamilyDiscountEffectiveAt", mock.Anything, int32(15), date(2024, 3, 1)).
		Return(&domain.FamilyDiscount{UnitNumber: 15, Amount: dec("5")}, nil).Once()
	surcharges.On("ListHeatingActiveAt", mock.Anything, int32(15), date(2024, 3, 1)).
		Return([]*domain.HeatingSurcharge{}, nil).Once()
	svc := NewFeeService(f.units, f.readings, f.tariffs, f.occupancy, surcharges)

	b, err := svc.Calculate(context.Background(), 15, nil)
	require.NoError(t, err)
	assert.Equal(t, "25.00", b.ParkingCost.StringFixed(2))
	assert.Equal(t, "5.00", b.FamilyDiscount.StringFixed(2))
	assert.Equal(t, "1340.00", b.Total.StringFixed(2))
	surcharges.AssertExpectations(t)
}

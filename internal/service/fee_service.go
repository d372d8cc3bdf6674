package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/metrics"
	"github.com/dafibh/condo/condo-backend/internal/util"
	"github.com/shopspring/decimal"
)

// FeeService is the fee engine. It only reads state.
type FeeService struct {
	unitRepo      domain.UnitRepository
	readingRepo   domain.MeterReadingRepository
	tariffRepo    domain.TariffRepository
	occupancyRepo domain.OccupancyRepository
	surchargeRepo domain.SurchargeRepository
}

// NewFeeService creates a new FeeService
func NewFeeService(
	unitRepo domain.UnitRepository,
	readingRepo domain.MeterReadingRepository,
	tariffRepo domain.TariffRepository,
	occupancyRepo domain.OccupancyRepository,
	surchargeRepo domain.SurchargeRepository,
) *FeeService {
	return &FeeService{
		unitRepo:      unitRepo,
		readingRepo:   readingRepo,
		tariffRepo:    tariffRepo,
		occupancyRepo: occupancyRepo,
		surchargeRepo: surchargeRepo,
	}
}

// Calculate itemizes the charge of a unit as of a reading. A nil readingID
// means the unit's latest reading.
func (s *FeeService) Calculate(ctx context.Context, unitNumber int32, readingID *int64) (*domain.FeeBreakdown, error) {
	start := time.Now()
	breakdown, err := s.calculate(ctx, unitNumber, readingID)
	metrics.ObserveFeeCalculation(metrics.Result(err), time.Since(start))
	return breakdown, err
}

func (s *FeeService) calculate(ctx context.Context, unitNumber int32, readingID *int64) (*domain.FeeBreakdown, error) {
	unit, err := s.unitRepo.GetByNumber(ctx, unitNumber)
	if err != nil {
		return nil, err
	}

	var reference *domain.MeterReading
	if readingID != nil {
		reference, err = s.readingRepo.GetByID(ctx, *readingID)
		if err != nil {
			return nil, err
		}
		if reference.UnitNumber != unitNumber {
			return nil, domain.ErrReadingNotFound
		}
	} else {
		reference, err = s.readingRepo.GetLatestByUnit(ctx, unitNumber)
		if errors.Is(err, domain.ErrReadingNotFound) {
			return nil, fmt.Errorf("%w: unit %d has no readings", domain.ErrInsufficientHistory, unitNumber)
		}
		if err != nil {
			return nil, err
		}
	}

	history, err := s.readingRepo.ListByUnitUpTo(ctx, unitNumber, reference.ReadingDate, reference.ID, minReadingHistoryReplacement)
	if err != nil {
		return nil, err
	}

	return s.calculateFor(ctx, unit, history)
}

// calculateFor resolves tariff, occupancy and surcharges at the date of
// history[0] and builds the breakdown
func (s *FeeService) calculateFor(ctx context.Context, unit *domain.Unit, history []*domain.MeterReading) (*domain.FeeBreakdown, error) {
	usage, err := CalculateWaterUsage(history)
	if err != nil {
		return nil, fmt.Errorf("unit %d: %w", unit.Number, err)
	}
	reading := history[0]
	date := reading.ReadingDate

	tariff, err := s.tariffRepo.GetEffectiveAt(ctx, date)
	if errors.Is(err, domain.ErrTariffNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoTariffAvailable, date.Format(time.DateOnly))
	}
	if err != nil {
		return nil, err
	}

	occupancy, err := s.occupancyRepo.GetEffectiveAt(ctx, unit.Number, date)
	if errors.Is(err, domain.ErrOccupancyNotFound) {
		return nil, fmt.Errorf("%w: unit %d before %s", domain.ErrNoOccupancyRecorded, unit.Number, date.Format(time.DateOnly))
	}
	if err != nil {
		return nil, err
	}

	parking, err := s.surchargeRepo.GetParkingCardEffectiveAt(ctx, unit.Number, date)
	if err != nil {
		return nil, err
	}
	family, err := s.surchargeRepo.GetFamilyDiscountEffectiveAt(ctx, unit.Number, date)
	if err != nil {
		return nil, err
	}
	heating, err := s.surchargeRepo.ListHeatingActiveAt(ctx, unit.Number, date)
	if err != nil {
		return nil, err
	}

	var cards int32
	if parking != nil {
		cards = parking.Cards
	}
	discount := decimal.Zero
	if family != nil {
		discount = family.Amount
	}

	return BuildFeeBreakdown(unit, reading, usage, tariff, occupancy.Occupants, cards, discount, heating), nil
}

// BuildFeeBreakdown prices usage and surcharges against a tariff. Every item
// is rounded to cents before summing.
func BuildFeeBreakdown(
	unit *domain.Unit,
	reading *domain.MeterReading,
	usage *domain.WaterUsage,
	tariff *domain.TariffPeriod,
	tenants int32,
	parkingCards int32,
	familyDiscount decimal.Decimal,
	heating []*domain.HeatingSurcharge,
) *domain.FeeBreakdown {
	b := &domain.FeeBreakdown{
		UnitNumber:     unit.Number,
		ReadingID:      reading.ID,
		ReadingDate:    reading.ReadingDate,
		TariffPeriodID: tariff.ID,
		Tenants:        tenants,
		ParkingCards:   parkingCards,
		Area:           unit.Area,
		Usage:          *usage,

		HotWaterRate:       tariff.HotWater,
		ColdWaterRate:      tariff.ColdWater,
		MaintenanceRate:    tariff.MaintenanceFee,
		RepairFundRate:     tariff.RepairFund,
		CentralHeatingRate: tariff.CentralHeating,
		GarbageRate:        tariff.Garbage,
		ParkingRate:        tariff.ParkingFee,
	}

	b.HotWaterCost = decimal.NewFromInt(usage.HotUsed).Mul(tariff.HotWater).Round(2)
	b.ColdWaterCost = decimal.NewFromInt(usage.ColdUsed).Mul(tariff.ColdWater).Round(2)
	b.MaintenanceCost = unit.Area.Mul(tariff.MaintenanceFee).Round(2)
	b.RepairFundCost = unit.Area.Mul(tariff.RepairFund).Round(2)
	b.CentralHeatingCost = unit.Area.Mul(tariff.CentralHeating).Round(2)
	b.GarbageCost = decimal.NewFromInt(int64(tenants)).Mul(tariff.Garbage).Round(2)
	b.FamilyDiscount = familyDiscount.Round(2)
	b.ParkingCost = decimal.NewFromInt(int64(parkingCards)).Mul(tariff.ParkingFee).Round(2)

	installments := decimal.Zero
	for _, h := range heating {
		installments = installments.Add(h.InstallmentAt(reading.ReadingDate))
	}
	b.HeatingSurcharge = installments.Round(2)

	b.Total = b.SumItems()
	return b
}

// CalculateRange returns one breakdown per reading of the unit dated within
// [from, to]. Readings without enough prior history are skipped; any other
// failure aborts.
func (s *FeeService) CalculateRange(ctx context.Context, unitNumber int32, from, to time.Time) ([]*domain.FeeBreakdown, error) {
	unit, err := s.unitRepo.GetByNumber(ctx, unitNumber)
	if err != nil {
		return nil, err
	}

	window, err := s.readingRepo.ListByUnitUpTo(ctx, unitNumber, to, math.MaxInt64, 0)
	if err != nil {
		return nil, err
	}
	from = util.DateOnly(from)

	// window is newest first; walk oldest first so the summary reads chronologically
	var out []*domain.FeeBreakdown
	for i := len(window) - 1; i >= 0; i-- {
		reading := window[i]
		if util.DateOnly(reading.ReadingDate).Before(from) {
			continue
		}
		end := i + minReadingHistoryReplacement
		if end > len(window) {
			end = len(window)
		}
		breakdown, err := s.calculateFor(ctx, unit, window[i:end])
		if errors.Is(err, domain.ErrInsufficientHistory) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, breakdown)
	}
	return out, nil
}

// CalculateYear is CalculateRange over months [fromMonth, toMonth] of year
func (s *FeeService) CalculateYear(ctx context.Context, unitNumber int32, year, fromMonth, toMonth int) ([]*domain.FeeBreakdown, error) {
	if fromMonth < 1 || fromMonth > 12 || toMonth < 1 || toMonth > 12 || fromMonth > toMonth {
		return nil, domain.NewValidationError("month", "month range must be within 1..12 and ordered")
	}
	return s.CalculateRange(ctx, unitNumber,
		util.MonthStart(year, time.Month(fromMonth)),
		util.MonthEnd(year, time.Month(toMonth)))
}

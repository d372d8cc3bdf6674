package service

import (
	"context"
	"errors"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/util"
	"github.com/dafibh/condo/condo-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// TariffService manages the versioned price table
type TariffService struct {
	tariffRepo     domain.TariffRepository
	eventPublisher websocket.EventPublisher
}

// NewTariffService creates a new TariffService
func NewTariffService(tariffRepo domain.TariffRepository) *TariffService {
	return &TariffService{tariffRepo: tariffRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TariffService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// TariffInput holds the rates of a new tariff period
type TariffInput struct {
	EffectiveDate  time.Time
	MaintenanceFee decimal.Decimal
	RepairFund     decimal.Decimal
	CentralHeating decimal.Decimal
	HotWater       decimal.Decimal
	ColdWater      decimal.Decimal
	Garbage        decimal.Decimal
	ParkingFee     decimal.Decimal
}

func validateTariff(in *TariffInput) error {
	verr := &domain.ValidationError{}
	if in.EffectiveDate.IsZero() {
		verr.Add("effectiveDate", "effective date is required")
	}
	rates := []struct {
		field string
		value decimal.Decimal
	}{
		{"maintenanceFee", in.MaintenanceFee},
		{"repairFund", in.RepairFund},
		{"centralHeating", in.CentralHeating},
		{"hotWater", in.HotWater},
		{"coldWater", in.ColdWater},
		{"garbage", in.Garbage},
		{"parkingFee", in.ParkingFee},
	}
	for _, r := range rates {
		if r.value.IsNegative() {
			verr.Add(r.field, "rate must not be negative")
		}
	}
	return verr.OrNil()
}

// CreateTariff adds a tariff period
func (s *TariffService) CreateTariff(ctx context.Context, in TariffInput) (*domain.TariffPeriod, error) {
	if err := validateTariff(&in); err != nil {
		return nil, err
	}
	tariff, err := s.tariffRepo.Create(ctx, &domain.TariffPeriod{
		EffectiveDate:  util.DateOnly(in.EffectiveDate),
		MaintenanceFee: in.MaintenanceFee,
		RepairFund:     in.RepairFund,
		CentralHeating: in.CentralHeating,
		HotWater:       in.HotWater,
		ColdWater:      in.ColdWater,
		Garbage:        in.Garbage,
		ParkingFee:     in.ParkingFee,
	})
	if err != nil {
		return nil, err
	}
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.AdminChannel, websocket.TariffCreated(tariff))
	}
	return tariff, nil
}

// Defaults pre-fills a new tariff form with the latest rates and today's
// date. With no tariff yet, every rate is zero.
func (s *TariffService) Defaults(ctx context.Context) (*TariffInput, error) {
	today := util.DateOnly(time.Now())
	latest, err := s.tariffRepo.GetLatest(ctx)
	if errors.Is(err, domain.ErrTariffNotFound) {
		return &TariffInput{EffectiveDate: today}, nil
	}
	if err != nil {
		return nil, err
	}
	return &TariffInput{
		EffectiveDate:  today,
		MaintenanceFee: latest.MaintenanceFee,
		RepairFund:     latest.RepairFund,
		CentralHeating: latest.CentralHeating,
		HotWater:       latest.HotWater,
		ColdWater:      latest.ColdWater,
		Garbage:        latest.Garbage,
		ParkingFee:     latest.ParkingFee,
	}, nil
}

// GetTariff returns one tariff period
func (s *TariffService) GetTariff(ctx context.Context, id int32) (*domain.TariffPeriod, error) {
	return s.tariffRepo.GetByID(ctx, id)
}

// GetLatest returns the period with the greatest effective date
func (s *TariffService) GetLatest(ctx context.Context) (*domain.TariffPeriod, error) {
	return s.tariffRepo.GetLatest(ctx)
}

// History returns one page of tariff periods, newest first
func (s *TariffService) History(ctx context.Context, page, pageSize int32) (*domain.PaginatedTariffs, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}
	return s.tariffRepo.List(ctx, page, pageSize)
}

// DeleteTariff removes a period that no billed entry references
func (s *TariffService) DeleteTariff(ctx context.Context, id int32) error {
	if err := s.tariffRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.AdminChannel, websocket.TariffDeleted(map[string]int32{"id": id}))
	}
	return nil
}

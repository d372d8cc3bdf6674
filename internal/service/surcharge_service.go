package service

import (
	"context"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/util"
	"github.com/shopspring/decimal"
)

// SurchargeService manages heating surcharges, parking cards and family discounts
type SurchargeService struct {
	surchargeRepo domain.SurchargeRepository
	unitRepo      domain.UnitRepository
}

// NewSurchargeService creates a new SurchargeService
func NewSurchargeService(surchargeRepo domain.SurchargeRepository, unitRepo domain.UnitRepository) *SurchargeService {
	return &SurchargeService{surchargeRepo: surchargeRepo, unitRepo: unitRepo}
}

// HeatingInput is a heating surcharge to amortize
type HeatingInput struct {
	UnitNumber int32
	StartDate  time.Time
	EndDate    time.Time
	Total      decimal.Decimal
}

// ParkingCardInput sets a unit's card count from a date
type ParkingCardInput struct {
	UnitNumber int32
	StartDate  time.Time
	Cards      int32
}

// FamilyDiscountInput sets a unit's monthly garbage deduction from a date
type FamilyDiscountInput struct {
	UnitNumber int32
	StartDate  time.Time
	Amount     decimal.Decimal
}

func (s *SurchargeService) requireUnit(ctx context.Context, unitNumber int32) error {
	_, err := s.unitRepo.GetByNumber(ctx, unitNumber)
	return err
}

func (s *SurchargeService) heatingFromInput(in HeatingInput) (*domain.HeatingSurcharge, error) {
	h := &domain.HeatingSurcharge{
		UnitNumber: in.UnitNumber,
		StartDate:  util.DateOnly(in.StartDate),
		EndDate:    util.DateOnly(in.EndDate),
		Total:      in.Total,
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

// CreateHeating registers a heating surcharge
func (s *SurchargeService) CreateHeating(ctx context.Context, in HeatingInput) (*domain.HeatingSurcharge, error) {
	h, err := s.heatingFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.requireUnit(ctx, in.UnitNumber); err != nil {
		return nil, err
	}
	return s.surchargeRepo.CreateHeating(ctx, h)
}

// UpdateHeating corrects a heating surcharge
func (s *SurchargeService) UpdateHeating(ctx context.Context, id int32, in HeatingInput) (*domain.HeatingSurcharge, error) {
	if _, err := s.surchargeRepo.GetHeating(ctx, id); err != nil {
		return nil, err
	}
	h, err := s.heatingFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.requireUnit(ctx, in.UnitNumber); err != nil {
		return nil, err
	}
	h.ID = id
	return s.surchargeRepo.UpdateHeating(ctx, h)
}

// GetHeating returns one heating surcharge
func (s *SurchargeService) GetHeating(ctx context.Context, id int32) (*domain.HeatingSurcharge, error) {
	return s.surchargeRepo.GetHeating(ctx, id)
}

// ListHeating returns heating surcharges matching filters
func (s *SurchargeService) ListHeating(ctx context.Context, filters domain.PeriodFilters) ([]*domain.HeatingSurcharge, error) {
	return s.surchargeRepo.ListHeating(ctx, filters)
}

func validateParkingCard(in ParkingCardInput) error {
	verr := &domain.ValidationError{}
	if in.StartDate.IsZero() {
		verr.Add("startDate", "start date is required")
	}
	if in.Cards < 0 {
		verr.Add("cards", "card count must not be negative")
	}
	return verr.OrNil()
}

// CreateParkingCard registers a unit's card count
func (s *SurchargeService) CreateParkingCard(ctx context.Context, in ParkingCardInput) (*domain.ParkingCard, error) {
	if err := validateParkingCard(in); err != nil {
		return nil, err
	}
	if err := s.requireUnit(ctx, in.UnitNumber); err != nil {
		return nil, err
	}
	return s.surchargeRepo.CreateParkingCard(ctx, &domain.ParkingCard{
		UnitNumber: in.UnitNumber,
		StartDate:  util.DateOnly(in.StartDate),
		Cards:      in.Cards,
	})
}

// UpdateParkingCard corrects a parking card row
func (s *SurchargeService) UpdateParkingCard(ctx context.Context, id int32, in ParkingCardInput) (*domain.ParkingCard, error) {
	if _, err := s.surchargeRepo.GetParkingCard(ctx, id); err != nil {
		return nil, err
	}
	if err := validateParkingCard(in); err != nil {
		return nil, err
	}
	if err := s.requireUnit(ctx, in.UnitNumber); err != nil {
		return nil, err
	}
	return s.surchargeRepo.UpdateParkingCard(ctx, &domain.ParkingCard{
		ID:         id,
		UnitNumber: in.UnitNumber,
		StartDate:  util.DateOnly(in.StartDate),
		Cards:      in.Cards,
	})
}

// ListParkingCards returns parking card rows matching filters
func (s *SurchargeService) ListParkingCards(ctx context.Context, filters domain.PeriodFilters) ([]*domain.ParkingCard, error) {
	return s.surchargeRepo.ListParkingCards(ctx, filters)
}

func validateFamilyDiscount(in FamilyDiscountInput) error {
	verr := &domain.ValidationError{}
	if in.StartDate.IsZero() {
		verr.Add("startDate", "start date is required")
	}
	if in.Amount.IsNegative() {
		verr.Add("amount", "discount must not be negative")
	}
	return verr.OrNil()
}

// CreateFamilyDiscount registers a unit's family discount
func (s *SurchargeService) CreateFamilyDiscount(ctx context.Context, in FamilyDiscountInput) (*domain.FamilyDiscount, error) {
	if err := validateFamilyDiscount(in); err != nil {
		return nil, err
	}
	if err := s.requireUnit(ctx, in.UnitNumber); err != nil {
		return nil, err
	}
	return s.surchargeRepo.CreateFamilyDiscount(ctx, &domain.FamilyDiscount{
		UnitNumber: in.UnitNumber,
		StartDate:  util.DateOnly(in.StartDate),
		Amount:     in.Amount,
	})
}

// UpdateFamilyDiscount corrects a family discount row
func (s *SurchargeService) UpdateFamilyDiscount(ctx context.Context, id int32, in FamilyDiscountInput) (*domain.FamilyDiscount, error) {
	if _, err := s.surchargeRepo.GetFamilyDiscount(ctx, id); err != nil {
		return nil, err
	}
	if err := validateFamilyDiscount(in); err != nil {
		return nil, err
	}
	if err := s.requireUnit(ctx, in.UnitNumber); err != nil {
		return nil, err
	}
	return s.surchargeRepo.UpdateFamilyDiscount(ctx, &domain.FamilyDiscount{
		ID:         id,
		UnitNumber: in.UnitNumber,
		StartDate:  util.DateOnly(in.StartDate),
		Amount:     in.Amount,
	})
}

// ListFamilyDiscounts returns family discount rows matching filters
func (s *SurchargeService) ListFamilyDiscounts(ctx context.Context, filters domain.PeriodFilters) ([]*domain.FamilyDiscount, error) {
	return s.surchargeRepo.ListFamilyDiscounts(ctx, filters)
}

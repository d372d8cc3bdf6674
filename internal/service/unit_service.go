package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// UnitService manages the unit registry
type UnitService struct {
	unitRepo      domain.UnitRepository
	ledgerService *LedgerService
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo domain.UnitRepository, ledgerService *LedgerService) *UnitService {
	return &UnitService{unitRepo: unitRepo, ledgerService: ledgerService}
}

// UnitInput holds the editable fields of a unit
type UnitInput struct {
	Number        int32
	Area          decimal.Decimal
	AccountNumber string
}

func validateUnit(in *UnitInput, checkNumber bool) error {
	verr := &domain.ValidationError{}
	if checkNumber && in.Number <= 0 {
		verr.Add("number", "unit number must be positive")
	}
	if !in.Area.IsPositive() {
		verr.Add("area", "area must be greater than zero")
	}
	in.AccountNumber = strings.TrimSpace(in.AccountNumber)
	if in.AccountNumber == "" {
		verr.Add("accountNumber", "account number is required")
	} else if len(in.AccountNumber) > domain.MaxAccountNumberLength {
		verr.Add("accountNumber", fmt.Sprintf("account number must be at most %d characters", domain.MaxAccountNumberLength))
	}
	return verr.OrNil()
}

// CreateUnit registers a unit and opens its ledger with a zero balance
func (s *UnitService) CreateUnit(ctx context.Context, in UnitInput) (*domain.Unit, error) {
	if err := validateUnit(&in, true); err != nil {
		return nil, err
	}
	unit, err := s.unitRepo.Create(ctx, &domain.Unit{
		Number:        in.Number,
		Area:          in.Area,
		AccountNumber: in.AccountNumber,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.ledgerService.OpenUnit(ctx, unit.Number, time.Now()); err != nil {
		log.Error().Err(err).Int32("unit", unit.Number).Msg("Failed to open unit ledger")
		return unit, fmt.Errorf("unit %d created but opening balance failed: %w", unit.Number, err)
	}
	log.Info().Int32("unit", unit.Number).Msg("Unit registered")
	return unit, nil
}

// GetUnit returns one unit
func (s *UnitService) GetUnit(ctx context.Context, number int32) (*domain.Unit, error) {
	return s.unitRepo.GetByNumber(ctx, number)
}

// ListUnits returns every unit ordered by number
func (s *UnitService) ListUnits(ctx context.Context) ([]*domain.Unit, error) {
	return s.unitRepo.List(ctx)
}

// UpdateUnit changes area and account number; the number is immutable
func (s *UnitService) UpdateUnit(ctx context.Context, number int32, in UnitInput) (*domain.Unit, error) {
	if err := validateUnit(&in, false); err != nil {
		return nil, err
	}
	return s.unitRepo.Update(ctx, number, in.Area, in.AccountNumber)
}

// DeleteUnit removes a unit. It fails with ErrReferentialConflict while
// readings, entries or users still refer to it.
func (s *UnitService) DeleteUnit(ctx context.Context, number int32) error {
	return s.unitRepo.Delete(ctx, number)
}

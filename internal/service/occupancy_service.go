package service

import (
	"context"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/util"
)

// OccupancyService records how many people live in each unit over time
type OccupancyService struct {
	occupancyRepo domain.OccupancyRepository
	unitRepo      domain.UnitRepository
}

// NewOccupancyService creates a new OccupancyService
func NewOccupancyService(occupancyRepo domain.OccupancyRepository, unitRepo domain.UnitRepository) *OccupancyService {
	return &OccupancyService{occupancyRepo: occupancyRepo, unitRepo: unitRepo}
}

// OccupancyInput is a new or corrected occupancy row
type OccupancyInput struct {
	UnitNumber int32
	StartDate  time.Time
	Occupants  int32
}

func (s *OccupancyService) validate(ctx context.Context, in OccupancyInput) error {
	verr := &domain.ValidationError{}
	if in.StartDate.IsZero() {
		verr.Add("startDate", "start date is required")
	}
	if in.Occupants < 0 {
		verr.Add("occupants", "occupants must not be negative")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	_, err := s.unitRepo.GetByNumber(ctx, in.UnitNumber)
	return err
}

// CreateOccupancy adds a row that applies from its start date onwards
func (s *OccupancyService) CreateOccupancy(ctx context.Context, in OccupancyInput) (*domain.Occupancy, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	return s.occupancyRepo.Create(ctx, &domain.Occupancy{
		UnitNumber: in.UnitNumber,
		StartDate:  util.DateOnly(in.StartDate),
		Occupants:  in.Occupants,
	})
}

// UpdateOccupancy corrects a row
func (s *OccupancyService) UpdateOccupancy(ctx context.Context, id int32, in OccupancyInput) (*domain.Occupancy, error) {
	if _, err := s.occupancyRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	return s.occupancyRepo.Update(ctx, &domain.Occupancy{
		ID:         id,
		UnitNumber: in.UnitNumber,
		StartDate:  util.DateOnly(in.StartDate),
		Occupants:  in.Occupants,
	})
}

// GetOccupancy returns one row
func (s *OccupancyService) GetOccupancy(ctx context.Context, id int32) (*domain.Occupancy, error) {
	return s.occupancyRepo.GetByID(ctx, id)
}

// ListOccupancies returns rows matching filters
func (s *OccupancyService) ListOccupancies(ctx context.Context, filters domain.PeriodFilters) ([]*domain.Occupancy, error) {
	return s.occupancyRepo.List(ctx, filters)
}

// LatestPerUnit returns every unit's newest row
func (s *OccupancyService) LatestPerUnit(ctx context.Context) ([]*domain.Occupancy, error) {
	return s.occupancyRepo.ListLatestPerUnit(ctx)
}

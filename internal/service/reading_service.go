package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/util"
	"github.com/dafibh/condo/condo-backend/internal/websocket"
)

// ReadingService records and lists meter readings
type ReadingService struct {
	readingRepo    domain.MeterReadingRepository
	unitRepo       domain.UnitRepository
	eventPublisher websocket.EventPublisher
}

// NewReadingService creates a new ReadingService
func NewReadingService(readingRepo domain.MeterReadingRepository, unitRepo domain.UnitRepository) *ReadingService {
	return &ReadingService{readingRepo: readingRepo, unitRepo: unitRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ReadingService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// ReadingInput is a submitted meter reading
type ReadingInput struct {
	UnitNumber   int32
	ReadingDate  time.Time
	HotCounter   int64
	ColdCounter  int64
	NewHotMeter  bool
	NewColdMeter bool
}

// validate checks the counters against the reading that precedes this one.
// A counter may only go down when its meter is flagged as replaced.
func (s *ReadingService) validate(ctx context.Context, in *ReadingInput, excludeID int64) error {
	verr := &domain.ValidationError{}
	if in.ReadingDate.IsZero() {
		verr.Add("readingDate", "reading date is required")
	}
	if in.HotCounter < 0 {
		verr.Add("hotCounter", "counter must not be negative")
	}
	if in.ColdCounter < 0 {
		verr.Add("coldCounter", "counter must not be negative")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	if _, err := s.unitRepo.GetByNumber(ctx, in.UnitNumber); err != nil {
		return err
	}

	previous, err := s.previousReading(ctx, in.UnitNumber, in.ReadingDate, excludeID)
	if err != nil || previous == nil {
		return err
	}
	if !in.NewHotMeter && in.HotCounter < previous.HotCounter {
		verr.Add("hotCounter", "counter is lower than the previous reading; mark the meter as replaced")
	}
	if !in.NewColdMeter && in.ColdCounter < previous.ColdCounter {
		verr.Add("coldCounter", "counter is lower than the previous reading; mark the meter as replaced")
	}
	return verr.OrNil()
}

func (s *ReadingService) previousReading(ctx context.Context, unitNumber int32, date time.Time, excludeID int64) (*domain.MeterReading, error) {
	history, err := s.readingRepo.ListByUnitUpTo(ctx, unitNumber, date, math.MaxInt64, 2)
	if err != nil {
		return nil, err
	}
	for _, r := range history {
		if r.ID != excludeID {
			return r, nil
		}
	}
	return nil, nil
}

// CreateReading stores a new reading
func (s *ReadingService) CreateReading(ctx context.Context, in ReadingInput) (*domain.MeterReading, error) {
	if err := s.validate(ctx, &in, 0); err != nil {
		return nil, err
	}
	reading, err := s.readingRepo.Create(ctx, &domain.MeterReading{
		UnitNumber:   in.UnitNumber,
		ReadingDate:  util.DateOnly(in.ReadingDate),
		HotCounter:   in.HotCounter,
		ColdCounter:  in.ColdCounter,
		NewHotMeter:  in.NewHotMeter,
		NewColdMeter: in.NewColdMeter,
	})
	if err != nil {
		return nil, err
	}
	websocket.PublishToUnit(s.eventPublisher, reading.UnitNumber, websocket.ReadingCreated(reading))
	return reading, nil
}

// UpdateReading corrects a reading. Its unit cannot change.
func (s *ReadingService) UpdateReading(ctx context.Context, id int64, in ReadingInput) (*domain.MeterReading, error) {
	existing, err := s.readingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.UnitNumber = existing.UnitNumber
	if err := s.validate(ctx, &in, id); err != nil {
		return nil, err
	}
	reading, err := s.readingRepo.Update(ctx, &domain.MeterReading{
		ID:           id,
		UnitNumber:   existing.UnitNumber,
		ReadingDate:  util.DateOnly(in.ReadingDate),
		HotCounter:   in.HotCounter,
		ColdCounter:  in.ColdCounter,
		NewHotMeter:  in.NewHotMeter,
		NewColdMeter: in.NewColdMeter,
	})
	if err != nil {
		return nil, err
	}
	websocket.PublishToUnit(s.eventPublisher, reading.UnitNumber, websocket.ReadingUpdated(reading))
	return reading, nil
}

// GetReading returns one reading
func (s *ReadingService) GetReading(ctx context.Context, id int64) (*domain.MeterReading, error) {
	return s.readingRepo.GetByID(ctx, id)
}

// ListReadings returns readings matching filters
func (s *ReadingService) ListReadings(ctx context.Context, filters domain.MeterReadingFilters) ([]*domain.MeterReading, error) {
	return s.readingRepo.List(ctx, filters)
}

// LatestPerUnit returns the newest reading of every unit that has one
func (s *ReadingService) LatestPerUnit(ctx context.Context) ([]*domain.MeterReading, error) {
	units, err := s.unitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.MeterReading, 0, len(units))
	for _, u := range units {
		r, err := s.readingRepo.GetLatestByUnit(ctx, u.Number)
		if errors.Is(err, domain.ErrReadingNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Years lists the years that have readings, newest first
func (s *ReadingService) Years(ctx context.Context) ([]int, error) {
	return s.readingRepo.ListYears(ctx)
}

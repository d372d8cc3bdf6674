package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/importer"
	"github.com/dafibh/condo/condo-backend/internal/metrics"
	"github.com/dafibh/condo/condo-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// ImportResult summarizes a finished reading import
type ImportResult struct {
	Imported int     `json:"imported"`
	Units    []int32 `json:"units"`
}

// ImportService loads meter readings from spreadsheets
type ImportService struct {
	readingRepo    domain.MeterReadingRepository
	unitRepo       domain.UnitRepository
	eventPublisher websocket.EventPublisher
}

// NewImportService creates a new ImportService
func NewImportService(readingRepo domain.MeterReadingRepository, unitRepo domain.UnitRepository) *ImportService {
	return &ImportService{readingRepo: readingRepo, unitRepo: unitRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ImportService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// ImportReadings parses an .xlsx grid and stores every reading in one batch.
// Nothing is stored when any cell or unit is invalid.
func (s *ImportService) ImportReadings(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return nil, domain.NewValidationError("file", "only .xlsx files are accepted")
	}

	rows, err := importer.ParseReadings(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.NewValidationError("file", "the file contains no readings")
	}

	units := make(map[int32]struct{})
	for _, row := range rows {
		units[row.UnitNumber] = struct{}{}
	}
	numbers := make([]int32, 0, len(units))
	for n := range units {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })

	verr := &domain.ValidationError{}
	for _, n := range numbers {
		if _, err := s.unitRepo.GetByNumber(ctx, n); err != nil {
			if errors.Is(err, domain.ErrUnitNotFound) {
				verr.Add("unit", fmt.Sprintf("unit %d does not exist", n))
				continue
			}
			return nil, err
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	readings := make([]*domain.MeterReading, 0, len(rows))
	for _, row := range rows {
		readings = append(readings, &domain.MeterReading{
			UnitNumber:  row.UnitNumber,
			ReadingDate: row.ReadingDate,
			HotCounter:  row.HotCounter,
			ColdCounter: row.ColdCounter,
		})
	}

	created, err := s.readingRepo.CreateBatch(ctx, readings)
	if err != nil {
		return nil, fmt.Errorf("store imported readings: %w", err)
	}
	metrics.AddReadingsImported(created)

	result := &ImportResult{Imported: created, Units: numbers}
	log.Info().Int("readings", created).Int("units", len(numbers)).Str("file", filename).Msg("Meter readings imported")

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.AdminChannel, websocket.ReadingsImported(result))
	}
	return result, nil
}

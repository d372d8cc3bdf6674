package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/lock"
	"github.com/dafibh/condo/condo-backend/internal/metrics"
	"github.com/dafibh/condo/condo-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	settlementLockKey = "settlement:run"
	settlementLockTTL = 15 * time.Minute

	// DefaultSettlementWorkers bounds how many units are billed at once
	DefaultSettlementWorkers = 4
)

// SettlementService runs the monthly billing: one fee calculation and one
// unit ledger entry per unit
type SettlementService struct {
	unitRepo       domain.UnitRepository
	feeService     *FeeService
	ledgerService  *LedgerService
	locker         lock.Locker
	workers        int
	eventPublisher websocket.EventPublisher
	logger         zerolog.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(unitRepo domain.UnitRepository, feeService *FeeService, ledgerService *LedgerService, locker lock.Locker, workers int) *SettlementService {
	if workers < 1 {
		workers = DefaultSettlementWorkers
	}
	return &SettlementService{
		unitRepo:      unitRepo,
		feeService:    feeService,
		ledgerService: ledgerService,
		locker:        locker,
		workers:       workers,
		logger:        log.With().Str("component", "settlement").Logger(),
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *SettlementService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// Preview calculates what a run would bill one unit without appending anything
func (s *SettlementService) Preview(ctx context.Context, unitNumber int32) (*domain.FeeBreakdown, error) {
	return s.feeService.Calculate(ctx, unitNumber, nil)
}

// Settle bills every unit for its latest reading. A unit that fails is
// reported in the result and does not stop the others. A unit whose latest
// reading is already billed is skipped. Only one run may be in progress
// at a time.
func (s *SettlementService) Settle(ctx context.Context, input domain.SettleInput) (*domain.SettlementResult, error) {
	if err := validateSettleInput(&input); err != nil {
		return nil, err
	}

	// Fail fast instead of queueing behind a running settlement
	obtainCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	lease, err := s.locker.Obtain(obtainCtx, settlementLockKey, settlementLockTTL)
	if err != nil {
		metrics.ObserveSettlementRun(metrics.ResultBusy, 0, 0, 0)
		if errors.Is(err, lock.ErrNotObtained) {
			return nil, domain.ErrSettlementRunning
		}
		return nil, err
	}
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to release settlement lock")
		}
	}()

	units, err := s.unitRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.SettlementResult{
		RunID:       uuid.New(),
		Date:        input.Date,
		TotalAmount: decimal.Zero,
		Units:       make([]*domain.UnitSettlementResult, len(units)),
		StartedAt:   time.Now().UTC(),
	}
	runLog := s.logger.With().Str("run_id", result.RunID.String()).Logger()
	runLog.Info().Int("units", len(units)).Time("date", input.Date).Msg("Settlement run started")

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, unit := range units {
		g.Go(func() error {
			result.Units[i] = s.settleUnit(ctx, result.RunID, unit.Number, input)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range result.Units {
		switch r.Status {
		case domain.UnitSettled:
			result.Succeeded++
			result.TotalAmount = result.TotalAmount.Add(*r.Amount)
		case domain.UnitSkipped:
			result.Skipped++
		default:
			result.Failed++
			runLog.Warn().Int32("unit", r.UnitNumber).Str("reason", r.Error).Msg("Unit not settled")
		}
	}
	result.FinishedAt = time.Now().UTC()

	duration := result.FinishedAt.Sub(result.StartedAt)
	metrics.ObserveSettlementRun(metrics.ResultSuccess, result.Succeeded, result.Failed, duration)
	runLog.Info().
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Str("total", result.TotalAmount.StringFixed(2)).
		Dur("duration", duration).
		Msg("Settlement run finished")

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.AdminChannel, websocket.SettlementCompleted(map[string]interface{}{
			"runId":     result.RunID,
			"succeeded": result.Succeeded,
			"failed":    result.Failed,
			"skipped":   result.Skipped,
			"total":     result.TotalAmount.StringFixed(2),
		}))
	}

	return result, nil
}

func (s *SettlementService) settleUnit(ctx context.Context, runID uuid.UUID, unitNumber int32, input domain.SettleInput) *domain.UnitSettlementResult {
	out := &domain.UnitSettlementResult{UnitNumber: unitNumber, Status: domain.UnitFailed}

	fee, err := s.feeService.Calculate(ctx, unitNumber, nil)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	readingID := fee.ReadingID
	out.ReadingID = &readingID

	charged, err := s.ledgerService.ReadingCharged(ctx, unitNumber, readingID)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	if charged {
		out.Status = domain.UnitSkipped
		return out
	}

	tariffID := fee.TariffPeriodID
	entry, err := s.ledgerService.Append(ctx, AppendInput{
		Scope:           domain.ScopeUnit,
		UnitNumber:      &unitNumber,
		Date:            input.Date,
		Title:           input.Title,
		Amount:          fee.Total,
		Type:            input.Type,
		TariffPeriodID:  &tariffID,
		SettlementRunID: &runID,
		ReadingID:       &readingID,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		out.Status = domain.UnitSkipped
		return out
	}
	if err != nil {
		out.Error = err.Error()
		return out
	}

	out.Status = domain.UnitSettled
	out.EntryID = &entry.ID
	out.Amount = &entry.Amount
	out.Balance = &entry.Balance
	return out
}

func validateSettleInput(input *domain.SettleInput) error {
	verr := &domain.ValidationError{}
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		verr.Add("title", "title is required")
	} else if len(input.Title) > domain.MaxTitleLength {
		verr.Add("title", fmt.Sprintf("title must be at most %d characters", domain.MaxTitleLength))
	}
	if input.Date.IsZero() {
		verr.Add("date", "date is required")
	}
	if !input.Type.Valid() {
		verr.Add("type", "unknown transaction type")
	}
	return verr.OrNil()
}

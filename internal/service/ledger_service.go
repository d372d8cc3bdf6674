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
	"github.com/dafibh/condo/condo-backend/internal/util"
	"github.com/dafibh/condo/condo-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const appendLockTTL = 30 * time.Second

// AppendInput is a new ledger entry before its balance is known
type AppendInput struct {
	Scope           domain.LedgerScope
	UnitNumber      *int32
	Date            time.Time
	Title           string
	Amount          decimal.Decimal
	Type            domain.TransactionType
	Counterparty    *string
	Description     *string
	TariffPeriodID  *int32
	SettlementRunID *uuid.UUID
	ReadingID       *int64
	// MirrorToAssociation also appends a copy to the association ledger
	MirrorToAssociation bool
}

// UnitBalance is the current position of one unit
type UnitBalance struct {
	UnitNumber    int32           `json:"unitNumber"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	LastEntryDate *time.Time      `json:"lastEntryDate,omitempty"`
}

// LedgerService owns the running-balance chains
type LedgerService struct {
	ledgerRepo     domain.LedgerRepository
	unitRepo       domain.UnitRepository
	locker         lock.Locker
	eventPublisher websocket.EventPublisher
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo domain.LedgerRepository, unitRepo domain.UnitRepository, locker lock.Locker) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		unitRepo:   unitRepo,
		locker:     locker,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *LedgerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LedgerService) validate(ctx context.Context, in *AppendInput) error {
	verr := &domain.ValidationError{}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		verr.Add("title", "title is required")
	} else if len(in.Title) > domain.MaxTitleLength {
		verr.Add("title", fmt.Sprintf("title must be at most %d characters", domain.MaxTitleLength))
	}
	if in.Date.IsZero() {
		verr.Add("date", "date is required")
	}
	if !in.Type.Valid() {
		verr.Add("type", "unknown transaction type")
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		verr.Add("amount", "amount must not have more than 2 decimal places")
	}
	if in.Counterparty != nil && len(*in.Counterparty) > domain.MaxCounterpartyLength {
		verr.Add("counterparty", fmt.Sprintf("counterparty must be at most %d characters", domain.MaxCounterpartyLength))
	}

	switch in.Scope {
	case domain.ScopeUnit:
		if in.UnitNumber == nil {
			verr.Add("unitNumber", "unit number is required for unit entries")
		}
	case domain.ScopeAssociation:
		if in.UnitNumber != nil {
			verr.Add("unitNumber", "association entries are not bound to a unit")
		}
		if in.MirrorToAssociation {
			verr.Add("mirror", "only unit entries can be mirrored")
		}
	default:
		verr.Add("scope", "scope must be unit or association")
	}

	if err := verr.OrNil(); err != nil {
		return err
	}

	if in.Scope == domain.ScopeUnit {
		if _, err := s.unitRepo.GetByNumber(ctx, *in.UnitNumber); err != nil {
			return err
		}
	}
	return nil
}

// Append validates the input and adds it to its scope's chain. The scope
// lock is held for the whole read-latest, compute, write sequence.
func (s *LedgerService) Append(ctx context.Context, in AppendInput) (*domain.LedgerEntry, error) {
	if err := s.validate(ctx, &in); err != nil {
		metrics.IncLedgerAppend(string(in.Scope), metrics.ResultError)
		return nil, err
	}

	entry := &domain.LedgerEntry{
		Scope:           in.Scope,
		UnitNumber:      in.UnitNumber,
		Date:            util.DateOnly(in.Date),
		Title:           in.Title,
		Amount:          in.Amount,
		Type:            in.Type,
		Counterparty:    in.Counterparty,
		Description:     in.Description,
		TariffPeriodID:  in.TariffPeriodID,
		SettlementRunID: in.SettlementRunID,
		ReadingID:       in.ReadingID,
	}
	if in.MirrorToAssociation {
		return s.appendMirrored(ctx, entry)
	}
	return s.appendLocked(ctx, entry)
}

// obtainScope takes the append lock of the entry's chain. The returned
// release func must be called once the write is done.
func (s *LedgerService) obtainScope(ctx context.Context, entry *domain.LedgerEntry) (func(), error) {
	key := "ledger:" + entry.ScopeKey()
	lease, err := s.locker.Obtain(ctx, key, appendLockTTL)
	if err != nil {
		metrics.IncLedgerAppend(string(entry.Scope), metrics.ResultBusy)
		if errors.Is(err, lock.ErrNotObtained) {
			return nil, fmt.Errorf("%w: %s", domain.ErrScopeBusy, entry.ScopeKey())
		}
		return nil, err
	}
	return func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Str("lock_key", key).Msg("Failed to release ledger lock")
		}
	}, nil
}

func (s *LedgerService) appendLocked(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	release, err := s.obtainScope(ctx, entry)
	if err != nil {
		return nil, err
	}
	defer release()

	created, err := s.ledgerRepo.Append(ctx, entry)
	if err != nil {
		metrics.IncLedgerAppend(string(entry.Scope), metrics.ResultError)
		return nil, err
	}
	metrics.IncLedgerAppend(string(entry.Scope), metrics.ResultSuccess)
	s.publish(created)
	return created, nil
}

// appendMirrored writes a unit entry and its association copy in one
// repository transaction. The unit lock is always taken before the
// association lock; when either is busy nothing is written.
func (s *LedgerService) appendMirrored(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	releaseUnit, err := s.obtainScope(ctx, entry)
	if err != nil {
		return nil, err
	}
	defer releaseUnit()

	releaseAssoc, err := s.obtainScope(ctx, &domain.LedgerEntry{Scope: domain.ScopeAssociation})
	if err != nil {
		return nil, err
	}
	defer releaseAssoc()

	created, mirrored, err := s.ledgerRepo.AppendMirrored(ctx, entry)
	if err != nil {
		metrics.IncLedgerAppend(string(entry.Scope), metrics.ResultError)
		metrics.IncLedgerAppend(string(domain.ScopeAssociation), metrics.ResultError)
		return nil, err
	}
	metrics.IncLedgerAppend(string(entry.Scope), metrics.ResultSuccess)
	metrics.IncLedgerAppend(string(domain.ScopeAssociation), metrics.ResultSuccess)
	s.publish(created)
	s.publish(mirrored)
	return created, nil
}

func (s *LedgerService) publish(entry *domain.LedgerEntry) {
	channel := websocket.AdminChannel
	if entry.UnitNumber != nil {
		channel = *entry.UnitNumber
	}
	websocket.PublishToUnit(s.eventPublisher, channel, websocket.LedgerEntryCreated(entry))
}

// MirrorToAssociation copies a unit entry into the association ledger with
// the same date, title, amount and type
func (s *LedgerService) MirrorToAssociation(ctx context.Context, entryID int64) (*domain.LedgerEntry, error) {
	source, err := s.ledgerRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if source.Scope != domain.ScopeUnit {
		return nil, domain.NewValidationError("entryId", "only unit entries can be mirrored")
	}
	return s.appendLocked(ctx, domain.MirrorOf(source))
}

// AppendBatch validates every input before appending any of them, then
// appends in order. It stops at the first append failure and returns the
// entries created so far.
func (s *LedgerService) AppendBatch(ctx context.Context, inputs []AppendInput) ([]*domain.LedgerEntry, error) {
	if len(inputs) == 0 {
		return nil, domain.NewValidationError("entries", "at least one entry is required")
	}
	for i := range inputs {
		if err := s.validate(ctx, &inputs[i]); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	created := make([]*domain.LedgerEntry, 0, len(inputs))
	for _, in := range inputs {
		entry, err := s.Append(ctx, in)
		if err != nil {
			return created, err
		}
		created = append(created, entry)
	}
	return created, nil
}

// OpenUnit starts a unit's chain with a zero opening balance
func (s *LedgerService) OpenUnit(ctx context.Context, unitNumber int32, date time.Time) (*domain.LedgerEntry, error) {
	return s.Append(ctx, AppendInput{
		Scope:      domain.ScopeUnit,
		UnitNumber: &unitNumber,
		Date:       date,
		Title:      "Opening balance",
		Amount:     decimal.Zero,
		Type:       domain.TransactionOpeningBalance,
	})
}

// GetEntry returns one entry
func (s *LedgerService) GetEntry(ctx context.Context, id int64) (*domain.LedgerEntry, error) {
	return s.ledgerRepo.GetByID(ctx, id)
}

// List returns one page of entries, newest first
func (s *LedgerService) List(ctx context.Context, filters domain.LedgerFilters) (*domain.PaginatedLedgerEntries, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = domain.DefaultPageSize
	}
	if filters.PageSize > domain.MaxPageSize {
		filters.PageSize = domain.MaxPageSize
	}
	if filters.Scope == domain.ScopeAssociation {
		filters.UnitNumber = nil
	}
	return s.ledgerRepo.List(ctx, filters)
}

// Balance returns the current balance of a scope, zero when it has no entries
func (s *LedgerService) Balance(ctx context.Context, scope domain.LedgerScope, unitNumber *int32) (decimal.Decimal, error) {
	latest, err := s.ledgerRepo.GetLatest(ctx, scope, unitNumber)
	if errors.Is(err, domain.ErrLedgerEntryNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return latest.Balance, nil
}

// UnitBalances lists every unit with its current balance. With onlyDebtors
// set, units whose balance is not positive are left out.
func (s *LedgerService) UnitBalances(ctx context.Context, onlyDebtors bool) ([]*UnitBalance, error) {
	units, err := s.unitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := s.ledgerRepo.ListLatestPerUnit(ctx)
	if err != nil {
		return nil, err
	}

	byUnit := make(map[int32]*domain.LedgerEntry, len(latest))
	for _, e := range latest {
		if e.UnitNumber != nil {
			byUnit[*e.UnitNumber] = e
		}
	}

	out := make([]*UnitBalance, 0, len(units))
	for _, u := range units {
		b := &UnitBalance{UnitNumber: u.Number, AccountNumber: u.AccountNumber, Balance: decimal.Zero}
		if e, ok := byUnit[u.Number]; ok {
			b.Balance = e.Balance
			date := e.Date
			b.LastEntryDate = &date
		}
		if onlyDebtors && !b.Balance.IsPositive() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// VerifyChain recomputes a scope's balances and reports the first entry
// whose stored balance disagrees with the prefix sum
func (s *LedgerService) VerifyChain(ctx context.Context, scope domain.LedgerScope, unitNumber *int32) (*domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListScope(ctx, scope, unitNumber)
	if err != nil {
		return nil, err
	}
	var prev *domain.LedgerEntry
	for _, e := range entries {
		if !domain.ChainBalance(prev, e.Amount).Equal(e.Balance) {
			return e, nil
		}
		prev = e
	}
	return nil, nil
}

// ReadingCharged reports whether the unit was already billed for the reading
func (s *LedgerService) ReadingCharged(ctx context.Context, unitNumber int32, readingID int64) (bool, error) {
	return s.ledgerRepo.HasReadingCharge(ctx, unitNumber, readingID)
}

// Entries returns a whole scope, oldest first
func (s *LedgerService) Entries(ctx context.Context, scope domain.LedgerScope, unitNumber *int32) ([]*domain.LedgerEntry, error) {
	if scope == domain.ScopeAssociation {
		unitNumber = nil
	}
	return s.ledgerRepo.ListScope(ctx, scope, unitNumber)
}

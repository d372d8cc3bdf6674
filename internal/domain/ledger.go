package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LedgerScope string

const (
	ScopeUnit        LedgerScope = "unit"
	ScopeAssociation LedgerScope = "association"
)

type TransactionType string

const (
	TransactionOpeningBalance TransactionType = "opening_balance"
	TransactionBank           TransactionType = "bank"
	TransactionCompensation   TransactionType = "compensation"
	TransactionHeatingWater   TransactionType = "heating_water_settlement"
	TransactionCorrection     TransactionType = "correction"
)

// TransactionTypes lists the accepted tags in display order
var TransactionTypes = []TransactionType{
	TransactionOpeningBalance,
	TransactionBank,
	TransactionCompensation,
	TransactionHeatingWater,
	TransactionCorrection,
}

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	for _, known := range TransactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// LedgerEntry is one signed row of a running-balance chain. Positive amounts
// are charges owed to the association, negative amounts are payments.
type LedgerEntry struct {
	ID              int64           `json:"id"`
	Scope           LedgerScope     `json:"scope"`
	UnitNumber      *int32          `json:"unitNumber,omitempty"`
	Date            time.Time       `json:"date"`
	Title           string          `json:"title"`
	Amount          decimal.Decimal `json:"amount"`
	Type            TransactionType `json:"type"`
	Balance         decimal.Decimal `json:"balance"`
	Counterparty    *string         `json:"counterparty,omitempty"`
	Description     *string         `json:"description,omitempty"`
	TariffPeriodID  *int32          `json:"tariffPeriodId,omitempty"`
	SettlementRunID *uuid.UUID      `json:"settlementRunId,omitempty"`
	MirroredFromID  *int64          `json:"mirroredFromId,omitempty"`
	ReadingID       *int64          `json:"readingId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ScopeKey identifies the balance chain the entry belongs to
func (e *LedgerEntry) ScopeKey() string {
	return ScopeKeyFor(e.Scope, e.UnitNumber)
}

// ScopeKeyFor builds the chain key for a scope: "association" or "unit:<n>"
func ScopeKeyFor(scope LedgerScope, unitNumber *int32) string {
	if scope == ScopeUnit && unitNumber != nil {
		return fmt.Sprintf("unit:%d", *unitNumber)
	}
	return string(ScopeAssociation)
}

// MirrorOf builds the association copy of a unit entry. Balance is left for
// the repository to chain.
func MirrorOf(source *LedgerEntry) *LedgerEntry {
	sourceID := source.ID
	return &LedgerEntry{
		Scope:          ScopeAssociation,
		Date:           source.Date,
		Title:          source.Title,
		Amount:         source.Amount,
		Type:           source.Type,
		Counterparty:   source.Counterparty,
		Description:    source.Description,
		MirroredFromID: &sourceID,
	}
}

// ChainBalance computes the running balance of a new entry given the latest
// entry of its scope. A nil latest starts the chain from zero.
func ChainBalance(latest *LedgerEntry, amount decimal.Decimal) decimal.Decimal {
	if latest == nil {
		return amount
	}
	return latest.Balance.Add(amount)
}

// LedgerFilters narrows a ledger listing
type LedgerFilters struct {
	Scope      LedgerScope
	UnitNumber *int32
	StartDate  *time.Time
	EndDate    *time.Time
	Type       *TransactionType
	Page       int32
	PageSize   int32
}

// PaginatedLedgerEntries is one page of entries, newest first
type PaginatedLedgerEntries struct {
	Data       []*LedgerEntry `json:"data"`
	Page       int32          `json:"page"`
	PageSize   int32          `json:"pageSize"`
	TotalItems int64          `json:"totalItems"`
	TotalPages int32          `json:"totalPages"`
}

// LedgerRepository stores ledger entries.
//
// Append must read the scope's latest entry, set entry.Balance with
// ChainBalance and insert, all while holding an exclusive lock on the scope,
// so concurrent appends to one scope never fork the chain.
//
// AppendMirrored appends a unit entry and its MirrorOf copy atomically,
// locking the unit chain before the association chain.
//
// HasReadingCharge reports whether a settlement run already billed the
// unit for the reading.
type LedgerRepository interface {
	Append(ctx context.Context, entry *LedgerEntry) (*LedgerEntry, error)
	AppendMirrored(ctx context.Context, entry *LedgerEntry) (*LedgerEntry, *LedgerEntry, error)
	HasReadingCharge(ctx context.Context, unitNumber int32, readingID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*LedgerEntry, error)
	GetLatest(ctx context.Context, scope LedgerScope, unitNumber *int32) (*LedgerEntry, error)
	List(ctx context.Context, filters LedgerFilters) (*PaginatedLedgerEntries, error)
	ListLatestPerUnit(ctx context.Context) ([]*LedgerEntry, error)
	ListScope(ctx context.Context, scope LedgerScope, unitNumber *int32) ([]*LedgerEntry, error)
}

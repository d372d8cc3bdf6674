package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettleInput describes a billing run: one unit-scoped entry per unit
type SettleInput struct {
	Date  time.Time       `json:"date"`
	Title string          `json:"title"`
	Type  TransactionType `json:"type"`
}

type UnitSettlementStatus string

const (
	UnitSettled UnitSettlementStatus = "settled"
	UnitFailed  UnitSettlementStatus = "failed"
	// UnitSkipped means the unit's latest reading was billed by an earlier run
	UnitSkipped UnitSettlementStatus = "skipped"
)

// UnitSettlementResult is the outcome of billing one unit
type UnitSettlementResult struct {
	UnitNumber int32                `json:"unitNumber"`
	Status     UnitSettlementStatus `json:"status"`
	ReadingID  *int64               `json:"readingId,omitempty"`
	EntryID    *int64               `json:"entryId,omitempty"`
	Amount     *decimal.Decimal     `json:"amount,omitempty"`
	Balance    *decimal.Decimal     `json:"balance,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// SettlementResult summarizes a billing run. A failed unit does not stop
// the others; Units holds one result per unit ordered by unit number.
// Running a settlement again before new readings arrive skips every unit.
type SettlementResult struct {
	RunID       uuid.UUID               `json:"runId"`
	Date        time.Time               `json:"date"`
	Succeeded   int                     `json:"succeeded"`
	Failed      int                     `json:"failed"`
	Skipped     int                     `json:"skipped"`
	TotalAmount decimal.Decimal         `json:"totalAmount"`
	Units       []*UnitSettlementResult `json:"units"`
	StartedAt   time.Time               `json:"startedAt"`
	FinishedAt  time.Time               `json:"finishedAt"`
}

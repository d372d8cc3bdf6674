package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInternalError       = errors.New("internal error")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserInactive        = errors.New("user account is not active")
	ErrUnitNotFound        = errors.New("unit not found")
	ErrReadingNotFound     = errors.New("meter reading not found")
	ErrTariffNotFound      = errors.New("tariff period not found")
	ErrOccupancyNotFound   = errors.New("occupancy not found")
	ErrSurchargeNotFound   = errors.New("surcharge not found")
	ErrLedgerEntryNotFound = errors.New("ledger entry not found")
	ErrArticleNotFound     = errors.New("article not found")
	ErrScopeBusy           = errors.New("ledger scope is locked by another operation")
	ErrSettlementRunning   = errors.New("a settlement run is already in progress")
	ErrArchiveDisabled     = errors.New("report archive is not configured")
)

// Computation errors. They mean prerequisite data is missing and only an
// administrator can fix it.
var (
	ErrInsufficientHistory = errors.New("insufficient meter reading history")
	ErrNoTariffAvailable   = errors.New("no tariff period effective at reading date")
	ErrNoOccupancyRecorded = errors.New("no occupancy recorded before reading date")
)

// ErrReferentialConflict is returned when deleting a record that other rows still reference.
var ErrReferentialConflict = errors.New("record is referenced by dependent rows")

// ErrValidation is the sentinel every *ValidationError matches with errors.Is.
var ErrValidation = errors.New("validation failed")

// FieldError is a single field-level validation message
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level messages for malformed administrative input
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add appends a field message
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field messages were collected
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validation constants
const (
	MaxTitleLength         = 200
	MaxAccountNumberLength = 64
	MaxCounterpartyLength  = 200
)

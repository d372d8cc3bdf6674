package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://condo.app/errors/validation"
	ErrorTypeNotFound     = "https://condo.app/errors/not-found"
	ErrorTypeUnauthorized = "https://condo.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://condo.app/errors/forbidden"
	ErrorTypeConflict     = "https://condo.app/errors/conflict"
	ErrorTypeMissingData  = "https://condo.app/errors/missing-data"
	ErrorTypeUnavailable  = "https://condo.app/errors/unavailable"
	ErrorTypeInternal     = "https://condo.app/errors/internal"
)

func newProblem(c echo.Context, status int, errorType, title, detail string) ProblemDetails {
	return ProblemDetails{
		Type:     errorType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	}
}

func problem(c echo.Context, status int, errorType, title, detail string) error {
	return c.JSON(status, newProblem(c, status, errorType, title, detail))
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail)
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail)
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return problem(c, http.StatusForbidden, ErrorTypeForbidden, "Forbidden", detail)
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail)
}

var notFoundErrors = []error{
	domain.ErrNotFound,
	domain.ErrUserNotFound,
	domain.ErrUnitNotFound,
	domain.ErrReadingNotFound,
	domain.ErrTariffNotFound,
	domain.ErrOccupancyNotFound,
	domain.ErrSurchargeNotFound,
	domain.ErrLedgerEntryNotFound,
	domain.ErrArticleNotFound,
}

// handleServiceError maps domain errors to problem responses. action names
// the failed operation in the log line and the internal error detail.
func handleServiceError(c echo.Context, err error, action string) error {
	p := serviceProblem(c, err, action)
	return c.JSON(p.Status, p)
}

// serviceProblem builds the problem body for a service error without
// writing it
func serviceProblem(c echo.Context, err error, action string) ProblemDetails {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		fields := make([]ValidationError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, ValidationError{Field: f.Field, Message: f.Message})
		}
		p := newProblem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", "Validation failed")
		p.Errors = fields
		return p
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return newProblem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", target.Error())
		}
	}

	conflict := func(detail string) ProblemDetails {
		return newProblem(c, http.StatusConflict, ErrorTypeConflict, "Conflict", detail)
	}
	missing := func(detail string) ProblemDetails {
		return newProblem(c, http.StatusUnprocessableEntity, ErrorTypeMissingData, "Missing Billing Data", detail)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return newProblem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		return conflict("Resource already exists")
	case errors.Is(err, domain.ErrReferentialConflict):
		return conflict("Record is still referenced and cannot be removed")
	case errors.Is(err, domain.ErrScopeBusy):
		return conflict("Ledger is busy, retry shortly")
	case errors.Is(err, domain.ErrSettlementRunning):
		return conflict("A settlement run is already in progress")
	case errors.Is(err, domain.ErrInsufficientHistory):
		return missing("Not enough meter readings to compute usage; record an earlier reading first")
	case errors.Is(err, domain.ErrNoTariffAvailable):
		return missing("No tariff period is effective at the reading date; add a tariff first")
	case errors.Is(err, domain.ErrNoOccupancyRecorded):
		return missing("No occupancy is recorded before the reading date; record occupancy first")
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUserInactive):
		return newProblem(c, http.StatusForbidden, ErrorTypeForbidden, "Forbidden", "Access denied")
	case errors.Is(err, domain.ErrUnauthorized):
		return newProblem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", "Authentication required")
	case errors.Is(err, domain.ErrArchiveDisabled):
		return newProblem(c, http.StatusServiceUnavailable, ErrorTypeUnavailable, "Service Unavailable", "Report archive is not configured")
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Failed to " + action)
	return newProblem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", "Failed to "+action)
}

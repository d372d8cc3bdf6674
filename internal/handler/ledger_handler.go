package handler

import (
	"fmt"
	"net/http"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/middleware"
	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// LedgerHandler handles ledger requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// AppendEntryRequest is a manual ledger entry. Positive amounts are charges,
// negative amounts payments.
type AppendEntryRequest struct {
	Scope               string          `json:"scope" validate:"required,oneof=unit association"`
	UnitNumber          *int32          `json:"unitNumber" validate:"omitempty,gt=0"`
	Date                string          `json:"date" validate:"required,datetime=2006-01-02"`
	Title               string          `json:"title" validate:"required,max=200"`
	Amount              decimal.Decimal `json:"amount"`
	Type                string          `json:"type" validate:"required"`
	Counterparty        *string         `json:"counterparty" validate:"omitempty,max=255"`
	Description         *string         `json:"description"`
	MirrorToAssociation bool            `json:"mirrorToAssociation"`
}

// BatchAppendRequest appends several entries in order
type BatchAppendRequest struct {
	Entries []AppendEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

// BatchAppendProblem is returned when a batch stops part way. Created lists
// the entries that were written before the failure.
type BatchAppendProblem struct {
	ProblemDetails
	Created []LedgerEntryResponse `json:"created"`
}

// BalanceResponse is the current balance of one scope
type BalanceResponse struct {
	Scope      string `json:"scope"`
	UnitNumber *int32 `json:"unitNumber,omitempty"`
	Balance    string `json:"balance"`
}

// VerifyResponse reports the first entry whose stored balance is wrong
type VerifyResponse struct {
	Consistent bool                 `json:"consistent"`
	FirstBad   *LedgerEntryResponse `json:"firstBad,omitempty"`
}

func (r *AppendEntryRequest) input() (service.AppendInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return service.AppendInput{}, err
	}
	return service.AppendInput{
		Scope:               domain.LedgerScope(r.Scope),
		UnitNumber:          r.UnitNumber,
		Date:                date,
		Title:               r.Title,
		Amount:              r.Amount,
		Type:                domain.TransactionType(r.Type),
		Counterparty:        r.Counterparty,
		Description:         r.Description,
		MirrorToAssociation: r.MirrorToAssociation,
	}, nil
}

// Append handles POST /ledger/entries
// @Summary Append a ledger entry
// @Description The balance is the scope's previous balance plus the amount
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AppendEntryRequest true "Entry"
// @Success 201 {object} LedgerEntryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /ledger/entries [post]
func (h *LedgerHandler) Append(c echo.Context) error {
	var req AppendEntryRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in, err := req.input()
	if err != nil {
		return invalidParam(c, "date", "must be a date formatted 2006-01-02")
	}

	entry, err := h.ledgerService.Append(c.Request().Context(), in)
	if err != nil {
		return handleServiceError(c, err, "append ledger entry")
	}
	return c.JSON(http.StatusCreated, toLedgerEntryResponse(entry))
}

// AppendBatch handles POST /ledger/entries/batch
// @Summary Append several ledger entries
// @Description Every entry is validated before the first one is written. When
// @Description a later write fails the problem body lists the entries already written.
// @Tags ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BatchAppendRequest true "Entries"
// @Success 201 {array} LedgerEntryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} BatchAppendProblem
// @Failure 500 {object} BatchAppendProblem
// @Router /ledger/entries/batch [post]
func (h *LedgerHandler) AppendBatch(c echo.Context) error {
	var req BatchAppendRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	inputs := make([]service.AppendInput, 0, len(req.Entries))
	for i := range req.Entries {
		in, err := req.Entries[i].input()
		if err != nil {
			return invalidParam(c, "entries.date", "must be a date formatted 2006-01-02")
		}
		inputs = append(inputs, in)
	}

	created, err := h.ledgerService.AppendBatch(c.Request().Context(), inputs)
	if err != nil {
		p := serviceProblem(c, err, "append ledger entries")
		if len(created) > 0 {
			p.Detail = fmt.Sprintf("%s; %d of %d entries were written", p.Detail, len(created), len(inputs))
		}
		return c.JSON(p.Status, BatchAppendProblem{
			ProblemDetails: p,
			Created:        toLedgerEntryResponses(created),
		})
	}
	return c.JSON(http.StatusCreated, toLedgerEntryResponses(created))
}

// Mirror handles POST /ledger/entries/:id/mirror
// @Summary Copy a unit entry to the association ledger
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 201 {object} LedgerEntryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /ledger/entries/{id}/mirror [post]
func (h *LedgerHandler) Mirror(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	entry, err := h.ledgerService.MirrorToAssociation(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "mirror ledger entry")
	}
	return c.JSON(http.StatusCreated, toLedgerEntryResponse(entry))
}

// Get handles GET /ledger/entries/:id
func (h *LedgerHandler) Get(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	entry, err := h.ledgerService.GetEntry(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "get ledger entry")
	}
	if !canSeeEntry(middleware.GetPrincipal(c), entry) {
		return NewNotFoundError(c, domain.ErrLedgerEntryNotFound.Error())
	}
	return c.JSON(http.StatusOK, toLedgerEntryResponse(entry))
}

func canSeeEntry(p *domain.Principal, e *domain.LedgerEntry) bool {
	if p.IsAdmin() {
		return true
	}
	return e.Scope == domain.ScopeUnit && e.UnitNumber != nil && p.CanAccessUnit(*e.UnitNumber)
}

// ledgerScope reads scope and unit query parameters. Residents are pinned
// to their own unit ledger. ok is false once a problem response has been written.
func ledgerScope(c echo.Context) (scope domain.LedgerScope, unit *int32, ok bool, err error) {
	scope = domain.LedgerScope(c.QueryParam("scope"))
	if scope == "" {
		scope = domain.ScopeUnit
	}
	if scope != domain.ScopeUnit && scope != domain.ScopeAssociation {
		return "", nil, false, invalidParam(c, "scope", "must be unit or association")
	}
	unit, perr := queryInt32Ptr(c, "unit")
	if perr != nil {
		return "", nil, false, invalidParam(c, "unit", "must be a number")
	}

	if middleware.GetPrincipal(c).IsAdmin() {
		if scope == domain.ScopeAssociation {
			unit = nil
		}
		return scope, unit, true, nil
	}
	if scope == domain.ScopeAssociation {
		return "", nil, false, NewForbiddenError(c, "Association ledger is restricted to administrators")
	}
	own, ok, err := resolveUnit(c, unit)
	if !ok {
		return "", nil, false, err
	}
	return scope, &own, true, nil
}

// List handles GET /ledger/entries
// @Summary List ledger entries, newest first
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param scope query string false "unit or association"
// @Param unit query int false "Unit number"
// @Param from query string false "First date"
// @Param to query string false "Last date"
// @Param type query string false "Transaction type"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} LedgerPageResponse
// @Router /ledger/entries [get]
func (h *LedgerHandler) List(c echo.Context) error {
	scope, unit, ok, err := ledgerScope(c)
	if !ok {
		return err
	}

	from, err := parseOptionalDate(c.QueryParam("from"))
	if err != nil {
		return invalidParam(c, "from", "must be a date formatted 2006-01-02")
	}
	to, err := parseOptionalDate(c.QueryParam("to"))
	if err != nil {
		return invalidParam(c, "to", "must be a date formatted 2006-01-02")
	}
	var txType *domain.TransactionType
	if raw := c.QueryParam("type"); raw != "" {
		t := domain.TransactionType(raw)
		if !t.Valid() {
			return invalidParam(c, "type", "unknown transaction type")
		}
		txType = &t
	}
	page, err := queryIntDefault(c, "page", 1)
	if err != nil {
		return invalidParam(c, "page", "must be a number")
	}
	pageSize, err := queryIntDefault(c, "pageSize", 0)
	if err != nil {
		return invalidParam(c, "pageSize", "must be a number")
	}

	result, err := h.ledgerService.List(c.Request().Context(), domain.LedgerFilters{
		Scope:      scope,
		UnitNumber: unit,
		StartDate:  from,
		EndDate:    to,
		Type:       txType,
		Page:       int32(page),
		PageSize:   int32(pageSize),
	})
	if err != nil {
		return handleServiceError(c, err, "list ledger entries")
	}
	return c.JSON(http.StatusOK, LedgerPageResponse{
		Data:       toLedgerEntryResponses(result.Data),
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}

// Balance handles GET /ledger/balance
// @Summary Current balance of a ledger
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param scope query string false "unit or association"
// @Param unit query int false "Unit number"
// @Success 200 {object} BalanceResponse
// @Router /ledger/balance [get]
func (h *LedgerHandler) Balance(c echo.Context) error {
	scope, unit, ok, err := ledgerScope(c)
	if !ok {
		return err
	}
	if scope == domain.ScopeUnit && unit == nil {
		return invalidParam(c, "unit", "unit is required")
	}
	balance, err := h.ledgerService.Balance(c.Request().Context(), scope, unit)
	if err != nil {
		return handleServiceError(c, err, "get balance")
	}
	return c.JSON(http.StatusOK, BalanceResponse{
		Scope:      string(scope),
		UnitNumber: unit,
		Balance:    balance.StringFixed(2),
	})
}

// Balances handles GET /ledger/balances
// @Summary Balance of every unit
// @Tags ledger
// @Produce json
// @Security BearerAuth
// @Param onlyDebtors query bool false "Only units that owe money"
// @Success 200 {array} UnitBalanceResponse
// @Router /ledger/balances [get]
func (h *LedgerHandler) Balances(c echo.Context) error {
	onlyDebtors := c.QueryParam("onlyDebtors") == "true"
	balances, err := h.ledgerService.UnitBalances(c.Request().Context(), onlyDebtors)
	if err != nil {
		return handleServiceError(c, err, "list balances")
	}
	return c.JSON(http.StatusOK, toUnitBalanceResponses(balances))
}

// Verify handles GET /ledger/verify
func (h *LedgerHandler) Verify(c echo.Context) error {
	scope, unit, ok, err := ledgerScope(c)
	if !ok {
		return err
	}
	bad, err := h.ledgerService.VerifyChain(c.Request().Context(), scope, unit)
	if err != nil {
		return handleServiceError(c, err, "verify ledger")
	}
	resp := VerifyResponse{Consistent: bad == nil}
	if bad != nil {
		r := toLedgerEntryResponse(bad)
		resp.FirstBad = &r
	}
	return c.JSON(http.StatusOK, resp)
}

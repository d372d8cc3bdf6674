package handler

import (
	"net/http"

	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// UnitHandler handles the unit registry
type UnitHandler struct {
	unitService *service.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *service.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// UnitRequest creates or updates a unit. Number is ignored on update.
type UnitRequest struct {
	Number        int32           `json:"number"`
	Area          decimal.Decimal `json:"area"`
	AccountNumber string          `json:"accountNumber" validate:"required,max=64"`
}

// Create handles POST /units
// @Summary Register a unit
// @Description Creates the unit and opens its ledger with a zero opening balance
// @Tags units
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UnitRequest true "Unit"
// @Success 201 {object} UnitResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /units [post]
func (h *UnitHandler) Create(c echo.Context) error {
	var req UnitRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	unit, err := h.unitService.CreateUnit(c.Request().Context(), service.UnitInput{
		Number:        req.Number,
		Area:          req.Area,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		return handleServiceError(c, err, "create unit")
	}
	return c.JSON(http.StatusCreated, toUnitResponse(unit))
}

// List handles GET /units
// @Summary List units
// @Tags units
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UnitResponse
// @Router /units [get]
func (h *UnitHandler) List(c echo.Context) error {
	units, err := h.unitService.ListUnits(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "list units")
	}
	out := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, toUnitResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /units/:number
func (h *UnitHandler) Get(c echo.Context) error {
	number, err := pathInt32(c, "number")
	if err != nil {
		return invalidParam(c, "number", "must be a number")
	}
	unit, err := h.unitService.GetUnit(c.Request().Context(), number)
	if err != nil {
		return handleServiceError(c, err, "get unit")
	}
	return c.JSON(http.StatusOK, toUnitResponse(unit))
}

// Update handles PUT /units/:number
func (h *UnitHandler) Update(c echo.Context) error {
	number, err := pathInt32(c, "number")
	if err != nil {
		return invalidParam(c, "number", "must be a number")
	}

	var req UnitRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	unit, err := h.unitService.UpdateUnit(c.Request().Context(), number, service.UnitInput{
		Number:        number,
		Area:          req.Area,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		return handleServiceError(c, err, "update unit")
	}
	return c.JSON(http.StatusOK, toUnitResponse(unit))
}

// Delete handles DELETE /units/:number
// @Summary Delete a unit
// @Description Refused with 409 while readings, ledger entries or users reference the unit
// @Tags units
// @Security BearerAuth
// @Param number path int true "Unit number"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /units/{number} [delete]
func (h *UnitHandler) Delete(c echo.Context) error {
	number, err := pathInt32(c, "number")
	if err != nil {
		return invalidParam(c, "number", "must be a number")
	}
	if err := h.unitService.DeleteUnit(c.Request().Context(), number); err != nil {
		return handleServiceError(c, err, "delete unit")
	}
	return c.NoContent(http.StatusNoContent)
}

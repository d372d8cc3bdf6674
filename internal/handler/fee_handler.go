package handler

import (
	"net/http"

	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// FeeHandler handles fee calculation requests
type FeeHandler struct {
	feeService        *service.FeeService
	settlementService *service.SettlementService
}

// NewFeeHandler creates a new FeeHandler
func NewFeeHandler(feeService *service.FeeService, settlementService *service.SettlementService) *FeeHandler {
	return &FeeHandler{feeService: feeService, settlementService: settlementService}
}

// Calculate handles GET /fees
// @Summary Calculate the monthly fee of a unit
// @Description Uses the latest reading unless readingId names another one
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param unit query int false "Unit number, required for admins"
// @Param readingId query int false "Reading to bill"
// @Success 200 {object} FeeResponse
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /fees [get]
func (h *FeeHandler) Calculate(c echo.Context) error {
	requested, err := queryInt32Ptr(c, "unit")
	if err != nil {
		return invalidParam(c, "unit", "must be a number")
	}
	readingID, err := queryInt64Ptr(c, "readingId")
	if err != nil {
		return invalidParam(c, "readingId", "must be a number")
	}
	unit, ok, err := resolveUnit(c, requested)
	if !ok {
		return err
	}

	fee, err := h.feeService.Calculate(c.Request().Context(), unit, readingID)
	if err != nil {
		return handleServiceError(c, err, "calculate fee")
	}
	return c.JSON(http.StatusOK, toFeeResponse(fee))
}

// Preview handles GET /settlements/preview/:unit
// @Summary Show the charge a settlement run would post for a unit
// @Tags settlements
// @Produce json
// @Security BearerAuth
// @Param unit path int true "Unit number"
// @Success 200 {object} FeeResponse
// @Failure 422 {object} ProblemDetails
// @Router /settlements/preview/{unit} [get]
func (h *FeeHandler) Preview(c echo.Context) error {
	unit, err := pathInt32(c, "unit")
	if err != nil {
		return invalidParam(c, "unit", "must be a number")
	}
	fee, err := h.settlementService.Preview(c.Request().Context(), unit)
	if err != nil {
		return handleServiceError(c, err, "preview settlement")
	}
	return c.JSON(http.StatusOK, toFeeResponse(fee))
}

package handler

import (
	"net/http"

	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TariffHandler handles tariff period requests
type TariffHandler struct {
	tariffService *service.TariffService
}

// NewTariffHandler creates a new TariffHandler
func NewTariffHandler(tariffService *service.TariffService) *TariffHandler {
	return &TariffHandler{tariffService: tariffService}
}

// TariffRequest holds the rates of a new tariff period
type TariffRequest struct {
	EffectiveDate  string          `json:"effectiveDate" validate:"required,datetime=2006-01-02"`
	MaintenanceFee decimal.Decimal `json:"maintenanceFee"`
	RepairFund     decimal.Decimal `json:"repairFund"`
	CentralHeating decimal.Decimal `json:"centralHeating"`
	HotWater       decimal.Decimal `json:"hotWater"`
	ColdWater      decimal.Decimal `json:"coldWater"`
	Garbage        decimal.Decimal `json:"garbage"`
	ParkingFee     decimal.Decimal `json:"parkingFee"`
}

// Create handles POST /tariffs
// @Summary Add a tariff period
// @Tags tariffs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TariffRequest true "Tariff"
// @Success 201 {object} TariffResponse
// @Failure 400 {object} ProblemDetails
// @Router /tariffs [post]
func (h *TariffHandler) Create(c echo.Context) error {
	var req TariffRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	effective, err := parseDate(req.EffectiveDate)
	if err != nil {
		return invalidParam(c, "effectiveDate", "must be a date formatted 2006-01-02")
	}

	tariff, err := h.tariffService.CreateTariff(c.Request().Context(), service.TariffInput{
		EffectiveDate:  effective,
		MaintenanceFee: req.MaintenanceFee,
		RepairFund:     req.RepairFund,
		CentralHeating: req.CentralHeating,
		HotWater:       req.HotWater,
		ColdWater:      req.ColdWater,
		Garbage:        req.Garbage,
		ParkingFee:     req.ParkingFee,
	})
	if err != nil {
		return handleServiceError(c, err, "create tariff")
	}
	return c.JSON(http.StatusCreated, toTariffResponse(tariff))
}

// Defaults handles GET /tariffs/defaults
// @Summary Form defaults for a new tariff
// @Description Today's date and the latest period's rates
// @Tags tariffs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TariffResponse
// @Router /tariffs/defaults [get]
func (h *TariffHandler) Defaults(c echo.Context) error {
	in, err := h.tariffService.Defaults(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "load tariff defaults")
	}
	return c.JSON(http.StatusOK, TariffResponse{
		EffectiveDate:  formatDate(in.EffectiveDate),
		MaintenanceFee: in.MaintenanceFee.String(),
		RepairFund:     in.RepairFund.String(),
		CentralHeating: in.CentralHeating.String(),
		HotWater:       in.HotWater.String(),
		ColdWater:      in.ColdWater.String(),
		Garbage:        in.Garbage.String(),
		ParkingFee:     in.ParkingFee.String(),
	})
}

// Latest handles GET /tariffs/latest
func (h *TariffHandler) Latest(c echo.Context) error {
	tariff, err := h.tariffService.GetLatest(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "get latest tariff")
	}
	return c.JSON(http.StatusOK, toTariffResponse(tariff))
}

// Get handles GET /tariffs/:id
func (h *TariffHandler) Get(c echo.Context) error {
	id, err := pathInt32(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	tariff, err := h.tariffService.GetTariff(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "get tariff")
	}
	return c.JSON(http.StatusOK, toTariffResponse(tariff))
}

// History handles GET /tariffs
// @Summary Tariff history, newest first
// @Tags tariffs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} TariffHistoryResponse
// @Router /tariffs [get]
func (h *TariffHandler) History(c echo.Context) error {
	page, err := queryIntDefault(c, "page", 1)
	if err != nil {
		return invalidParam(c, "page", "must be a number")
	}
	pageSize, err := queryIntDefault(c, "pageSize", 0)
	if err != nil {
		return invalidParam(c, "pageSize", "must be a number")
	}

	result, err := h.tariffService.History(c.Request().Context(), int32(page), int32(pageSize))
	if err != nil {
		return handleServiceError(c, err, "list tariffs")
	}

	data := make([]TariffResponse, 0, len(result.Data))
	for _, t := range result.Data {
		data = append(data, toTariffResponse(t))
	}
	return c.JSON(http.StatusOK, TariffHistoryResponse{
		Data:       data,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}

// Delete handles DELETE /tariffs/:id
// @Summary Delete a tariff period
// @Description Refused with 409 once a billed ledger entry references it
// @Tags tariffs
// @Security BearerAuth
// @Param id path int true "Tariff ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /tariffs/{id} [delete]
func (h *TariffHandler) Delete(c echo.Context) error {
	id, err := pathInt32(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	if err := h.tariffService.DeleteTariff(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err, "delete tariff")
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// RegistryHandler handles the start-dated per-unit registers: occupancy,
// heating surcharges, parking cards and family discounts.
type RegistryHandler struct {
	occupancyService *service.OccupancyService
	surchargeService *service.SurchargeService
}

// NewRegistryHandler creates a new RegistryHandler
func NewRegistryHandler(occupancyService *service.OccupancyService, surchargeService *service.SurchargeService) *RegistryHandler {
	return &RegistryHandler{
		occupancyService: occupancyService,
		surchargeService: surchargeService,
	}
}

// OccupancyRequest records the number of occupants from a date
type OccupancyRequest struct {
	UnitNumber int32  `json:"unitNumber" validate:"gt=0"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	Occupants  int32  `json:"occupants" validate:"gte=0"`
}

// HeatingSurchargeRequest amortizes a heating settlement over a date range
type HeatingSurchargeRequest struct {
	UnitNumber int32           `json:"unitNumber" validate:"gt=0"`
	StartDate  string          `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate    string          `json:"endDate" validate:"required,datetime=2006-01-02"`
	Total      decimal.Decimal `json:"total"`
}

// ParkingCardRequest sets the card count from a date
type ParkingCardRequest struct {
	UnitNumber int32  `json:"unitNumber" validate:"gt=0"`
	StartDate  string `json:"startDate" validate:"required,datetime=2006-01-02"`
	Cards      int32  `json:"cards" validate:"gte=0"`
}

// FamilyDiscountRequest sets the monthly garbage deduction from a date
type FamilyDiscountRequest struct {
	UnitNumber int32           `json:"unitNumber" validate:"gt=0"`
	StartDate  string          `json:"startDate" validate:"required,datetime=2006-01-02"`
	Amount     decimal.Decimal `json:"amount"`
}

// startDate parses a validated date field. ok is false once a problem
// response has been written.
func startDate(c echo.Context, field, value string) (time.Time, bool, error) {
	t, err := parseDate(value)
	if err != nil {
		return time.Time{}, false, invalidParam(c, field, "must be a date formatted 2006-01-02")
	}
	return t, true, nil
}

// CreateOccupancy handles POST /occupancies
// @Summary Record occupancy
// @Tags registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OccupancyRequest true "Occupancy"
// @Success 201 {object} OccupancyResponse
// @Failure 400 {object} ProblemDetails
// @Router /occupancies [post]
func (h *RegistryHandler) CreateOccupancy(c echo.Context) error {
	var req OccupancyRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	start, ok, err := startDate(c, "startDate", req.StartDate)
	if !ok {
		return err
	}

	o, err := h.occupancyService.CreateOccupancy(c.Request().Context(), service.OccupancyInput{
		UnitNumber: req.UnitNumber,
		StartDate:  start,
		Occupants:  req.Occupants,
	})
	if err != nil {
		return handleServiceError(c, err, "create occupancy")
	}
	return c.JSON(http.StatusCreated, toOccupancyResponse(o))
}

// UpdateOccupancy handles PUT /occupancies/:id
func (h *RegistryHandler) UpdateOccupancy(c echo.Context) error {
	id, err := pathInt32(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	var req OccupancyRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	start, ok, err := startDate(c, "startDate", req.StartDate)
	if !ok {
		return err
	}

	o, err := h.occupancyService.UpdateOccupancy(c.Request().Context(), id, service.OccupancyInput{
		UnitNumber: req.UnitNumber,
		StartDate:  start,
		Occupants:  req.Occupants,
	})
	if err != nil {
		return handleServiceError(c, err, "update occupancy")
	}
	return c.JSON(http.StatusOK, toOccupancyResponse(o))
}

// ListOccupancies handles GET /occupancies
func (h *RegistryHandler) ListOccupancies(c echo.Context) error {
	filters, ok, err := periodFilters(c)
	if !ok {
		return err
	}
	rows, err := h.occupancyService.ListOccupancies(c.Request().Context(), filters)
	if err != nil {
		return handleServiceError(c, err, "list occupancies")
	}
	return c.JSON(http.StatusOK, toOccupancyResponses(rows))
}

// CurrentOccupancies handles GET /occupancies/current
func (h *RegistryHandler) CurrentOccupancies(c echo.Context) error {
	rows, err := h.occupancyService.LatestPerUnit(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "list current occupancies")
	}
	return c.JSON(http.StatusOK, toOccupancyResponses(rows))
}

func (h *RegistryHandler) heatingInput(c echo.Context) (service.HeatingInput, bool, error) {
	var req HeatingSurchargeRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return service.HeatingInput{}, false, err
	}
	start, ok, err := startDate(c, "startDate", req.StartDate)
	if !ok {
		return service.HeatingInput{}, false, err
	}
	end, ok, err := startDate(c, "endDate", req.EndDate)
	if !ok {
		return service.HeatingInput{}, false, err
	}
	return service.HeatingInput{
		UnitNumber: req.UnitNumber,
		StartDate:  start,
		EndDate:    end,
		Total:      req.Total,
	}, true, nil
}

// CreateHeating handles POST /surcharges/heating
// @Summary Add a heating surcharge
// @Description The total is billed in monthly installments; the final month absorbs the rounding remainder
// @Tags registry
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body HeatingSurchargeRequest true "Heating surcharge"
// @Success 201 {object} HeatingSurchargeResponse
// @Failure 400 {object} ProblemDetails
// @Router /surcharges/heating [post]
func (h *RegistryHandler) CreateHeating(c echo.Context) error {
	in, ok, err := h.heatingInput(c)
	if !ok {
		return err
	}
	s, err := h.surchargeService.CreateHeating(c.Request().Context(), in)
	if err != nil {
		return handleServiceError(c, err, "create heating surcharge")
	}
	return c.JSON(http.StatusCreated, toHeatingResponse(s))
}

// UpdateHeating handles PUT /surcharges/heating/:id
func (h *RegistryHandler) UpdateHeating(c echo.Context) error {
	id, err := pathInt32(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	in, ok, err := h.heatingInput(c)
	if !ok {
		return err
	}
	s, err := h.surchargeService.UpdateHeating(c.Request().Context(), id, in)
	if err != nil {
		return handleServiceError(c, err, "update heating surcharge")
	}
	return c.JSON(http.StatusOK, toHeatingResponse(s))
}

// GetHeating handles GET /surcharges/heating/:id
func (h *RegistryHandler) GetHeating(c echo.Context) error {
	id, err := pathInt32(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	s, err := h.surchargeService.GetHeating(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "get heating surcharge")
	}
	return c.JSON(http.StatusOK, toHeatingResponse(s))
}

// ListHeating handles GET /surcharges/heating
func (h *RegistryHandler) ListHeating(c echo.Context) error {
	filters, ok, err := periodFilters(c)
	if !ok {
		return err
	}
	rows, err := h.surchargeService.ListHeating(c.Request().Context(), filters)
	if err != nil {
		return handleServiceError(c, err, "list heating surcharges")
	}
	out := make([]HeatingSurchargeResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, toHeatingResponse(s))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) parkingInput(c echo.Context) (service.ParkingCardInput, bool, error) {
	var req ParkingCardRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return service.ParkingCardInput{}, false, err
	}
	start, ok, err := startDate(c, "startDate", req.StartDate)
	if !ok {
		return service.ParkingCardInput{}, false, err
	}
	return service.ParkingCardInput{UnitNumber: req.UnitNumber, StartDate: start, Cards: req.Cards}, true, nil
}

// CreateParkingCard handles POST /surcharges/parking
func (h *RegistryHandler) CreateParkingCard(c echo.Context) error {
	in, ok, err := h.parkingInput(c)
	if !ok {
		return err
	}
	card, err := h.surchargeService.CreateParkingCard(c.Request().Context(), in)
	if err != nil {
		return handleServiceError(c, err, "create parking card")
	}
	return c.JSON(http.StatusCreated, toParkingCardResponse(card))
}

// UpdateParkingCard handles PUT /surcharges/parking/:id
func (h *RegistryHandler) UpdateParkingCard(c echo.Context) error {
	id, err := pathInt32(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	in, ok, err := h.parkingInput(c)
	if !ok {
		return err
	}
	card, err := h.surchargeService.UpdateParkingCard(c.Request().Context(), id, in)
	if err != nil {
		return handleServiceError(c, err, "update parking card")
	}
	return c.JSON(http.StatusOK, toParkingCardResponse(card))
}

// ListParkingCards handles GET /surcharges/parking
func (h *RegistryHandler) ListParkingCards(c echo.Context) error {
	filters, ok, err := periodFilters(c)
	if !ok {
		return err
	}
	rows, err := h.surchargeService.ListParkingCards(c.Request().Context(), filters)
	if err != nil {
		return handleServiceError(c, err, "list parking cards")
	}
	out := make([]ParkingCardResponse, 0, len(rows))
	for _, card := range rows {
		out = append(out, toParkingCardResponse(card))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RegistryHandler) discountInput(c echo.Context) (service.FamilyDiscountInput, bool, error) {
	var req FamilyDiscountRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return service.FamilyDiscountInput{}, false, err
	}
	start, ok, err := startDate(c, "startDate", req.StartDate)
	if !ok {
		return service.FamilyDiscountInput{}, false, err
	}
	return service.FamilyDiscountInput{UnitNumber: req.UnitNumber, StartDate: start, Amount: req.Amount}, true, nil
}

// CreateFamilyDiscount handles POST /surcharges/family
func (h *RegistryHandler) CreateFamilyDiscount(c echo.Context) error {
	in, ok, err := h.discountInput(c)
	if !ok {
		return err
	}
	d, err := h.surchargeService.CreateFamilyDiscount(c.Request().Context(), in)
	if err != nil {
		return handleServiceError(c, err, "create family discount")
	}
	return c.JSON(http.StatusCreated, toFamilyDiscountResponse(d))
}

// UpdateFamilyDiscount handles PUT /surcharges/family/:id
func (h *RegistryHandler) UpdateFamilyDiscount(c echo.Context) error {
	id, err := pathInt32(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	in, ok, err := h.discountInput(c)
	if !ok {
		return err
	}
	d, err := h.surchargeService.UpdateFamilyDiscount(c.Request().Context(), id, in)
	if err != nil {
		return handleServiceError(c, err, "update family discount")
	}
	return c.JSON(http.StatusOK, toFamilyDiscountResponse(d))
}

// ListFamilyDiscounts handles GET /surcharges/family
func (h *RegistryHandler) ListFamilyDiscounts(c echo.Context) error {
	filters, ok, err := periodFilters(c)
	if !ok {
		return err
	}
	rows, err := h.surchargeService.ListFamilyDiscounts(c.Request().Context(), filters)
	if err != nil {
		return handleServiceError(c, err, "list family discounts")
	}
	out := make([]FamilyDiscountResponse, 0, len(rows))
	for _, d := range rows {
		out = append(out, toFamilyDiscountResponse(d))
	}
	return c.JSON(http.StatusOK, out)
}

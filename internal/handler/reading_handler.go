package handler

import (
	"net/http"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/middleware"
	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ReadingHandler handles meter reading requests
type ReadingHandler struct {
	readingService *service.ReadingService
}

// NewReadingHandler creates a new ReadingHandler
func NewReadingHandler(readingService *service.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

// ReadingRequest is a submitted meter reading. Residents may omit
// unitNumber; their own unit is used.
type ReadingRequest struct {
	UnitNumber   *int32 `json:"unitNumber" validate:"omitempty,gt=0"`
	ReadingDate  string `json:"readingDate" validate:"required,datetime=2006-01-02"`
	HotCounter   int64  `json:"hotCounter" validate:"gte=0"`
	ColdCounter  int64  `json:"coldCounter" validate:"gte=0"`
	NewHotMeter  bool   `json:"newHotMeter"`
	NewColdMeter bool   `json:"newColdMeter"`
}

func (r *ReadingRequest) input(unit int32) (service.ReadingInput, error) {
	date, err := parseDate(r.ReadingDate)
	if err != nil {
		return service.ReadingInput{}, err
	}
	return service.ReadingInput{
		UnitNumber:   unit,
		ReadingDate:  date,
		HotCounter:   r.HotCounter,
		ColdCounter:  r.ColdCounter,
		NewHotMeter:  r.NewHotMeter,
		NewColdMeter: r.NewColdMeter,
	}, nil
}

// Create handles POST /readings
// @Summary Submit a meter reading
// @Description Administrators submit for any unit, residents for their own
// @Tags readings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReadingRequest true "Reading"
// @Success 201 {object} ReadingResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Router /readings [post]
func (h *ReadingHandler) Create(c echo.Context) error {
	var req ReadingRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	unit, ok, err := resolveUnit(c, req.UnitNumber)
	if !ok {
		return err
	}

	in, err := req.input(unit)
	if err != nil {
		return invalidParam(c, "readingDate", "must be a date formatted 2006-01-02")
	}

	reading, err := h.readingService.CreateReading(c.Request().Context(), in)
	if err != nil {
		return handleServiceError(c, err, "create reading")
	}
	return c.JSON(http.StatusCreated, toReadingResponse(reading))
}

// Update handles PUT /readings/:id
func (h *ReadingHandler) Update(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}

	var req ReadingRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in, err := req.input(0)
	if err != nil {
		return invalidParam(c, "readingDate", "must be a date formatted 2006-01-02")
	}

	reading, err := h.readingService.UpdateReading(c.Request().Context(), id, in)
	if err != nil {
		return handleServiceError(c, err, "update reading")
	}
	return c.JSON(http.StatusOK, toReadingResponse(reading))
}

// Get handles GET /readings/:id
func (h *ReadingHandler) Get(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	reading, err := h.readingService.GetReading(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "get reading")
	}
	if !middleware.GetPrincipal(c).CanAccessUnit(reading.UnitNumber) {
		return NewNotFoundError(c, domain.ErrReadingNotFound.Error())
	}
	return c.JSON(http.StatusOK, toReadingResponse(reading))
}

// List handles GET /readings
// @Summary List readings
// @Description Filters by unit, year and month window. Residents only see their unit.
// @Tags readings
// @Produce json
// @Security BearerAuth
// @Param unit query int false "Unit number"
// @Param year query int false "Year"
// @Param fromMonth query int false "First month"
// @Param toMonth query int false "Last month"
// @Success 200 {array} ReadingResponse
// @Router /readings [get]
func (h *ReadingHandler) List(c echo.Context) error {
	unit, err := queryInt32Ptr(c, "unit")
	if err != nil {
		return invalidParam(c, "unit", "must be a number")
	}
	year, err := queryIntPtr(c, "year")
	if err != nil {
		return invalidParam(c, "year", "must be a number")
	}
	fromMonth, err := queryIntPtr(c, "fromMonth")
	if err != nil {
		return invalidParam(c, "fromMonth", "must be a number")
	}
	toMonth, err := queryIntPtr(c, "toMonth")
	if err != nil {
		return invalidParam(c, "toMonth", "must be a number")
	}

	p := middleware.GetPrincipal(c)
	if !p.IsAdmin() {
		own, ok, err := resolveUnit(c, unit)
		if !ok {
			return err
		}
		unit = &own
	}

	readings, err := h.readingService.ListReadings(c.Request().Context(), domain.MeterReadingFilters{
		UnitNumber: unit,
		Year:       year,
		FromMonth:  fromMonth,
		ToMonth:    toMonth,
	})
	if err != nil {
		return handleServiceError(c, err, "list readings")
	}
	return c.JSON(http.StatusOK, toReadingResponses(readings))
}

// Latest handles GET /readings/latest
func (h *ReadingHandler) Latest(c echo.Context) error {
	readings, err := h.readingService.LatestPerUnit(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "list latest readings")
	}
	return c.JSON(http.StatusOK, toReadingResponses(readings))
}

// Years handles GET /readings/years
// @Summary Years with readings
// @Tags readings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} int
// @Router /readings/years [get]
func (h *ReadingHandler) Years(c echo.Context) error {
	years, err := h.readingService.Years(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "list reading years")
	}
	if years == nil {
		years = []int{}
	}
	return c.JSON(http.StatusOK, years)
}

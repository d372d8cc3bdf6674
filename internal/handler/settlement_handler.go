package handler

import (
	"net/http"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SettlementHandler handles settlement HTTP requests
type SettlementHandler struct {
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
	}
}

// SettleRequest starts a settlement run over every unit
type SettleRequest struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Title string `json:"title" validate:"required,max=200"`
	Type  string `json:"type"`
}

// Create runs a settlement
// @Summary Run a settlement
// @Description Calculates the fee of every unit and posts it as a charge. Units that fail are reported and skipped.
// @Tags settlements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SettleRequest true "Settlement request"
// @Success 201 {object} SettlementResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /settlements [post]
func (h *SettlementHandler) Create(c echo.Context) error {
	var req SettleRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return invalidParam(c, "date", "must be a date formatted 2006-01-02")
	}
	txType := domain.TransactionType(req.Type)
	if txType == "" {
		txType = domain.TransactionHeatingWater
	}

	result, err := h.settlementService.Settle(c.Request().Context(), domain.SettleInput{
		Date:  date,
		Title: req.Title,
		Type:  txType,
	})
	if err != nil {
		return handleServiceError(c, err, "settle")
	}

	log.Info().
		Str("run_id", result.RunID.String()).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("Settlement run finished")

	return c.JSON(http.StatusCreated, toSettlementResponse(result))
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/report"
	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ReportHandler serves yearly summaries and ledger exports
type ReportHandler struct {
	reportService *service.ReportService
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: time.Now}
}

// SummaryResponse is a unit's fees over a range of months
type SummaryResponse struct {
	UnitNumber    int32         `json:"unitNumber"`
	AccountNumber string        `json:"accountNumber"`
	Year          int           `json:"year"`
	FromMonth     int           `json:"fromMonth"`
	ToMonth       int           `json:"toMonth"`
	Months        []FeeResponse `json:"months"`
	Total         string        `json:"total"`
	Balance       string        `json:"balance"`
	GeneratedAt   string        `json:"generatedAt"`
}

func toSummaryResponse(s *report.Summary) SummaryResponse {
	months := make([]FeeResponse, 0, len(s.Breakdowns))
	for _, b := range s.Breakdowns {
		months = append(months, toFeeResponse(b))
	}
	return SummaryResponse{
		UnitNumber:    s.UnitNumber,
		AccountNumber: s.AccountNumber,
		Year:          s.Year,
		FromMonth:     s.FromMonth,
		ToMonth:       s.ToMonth,
		Months:        months,
		Total:         s.Total.StringFixed(2),
		Balance:       s.Balance.StringFixed(2),
		GeneratedAt:   s.GeneratedAt.Format(time.RFC3339),
	}
}

type summaryQuery struct {
	unit      int32
	year      int
	fromMonth int
	toMonth   int
}

// summaryParams reads unit, year and month range. ok is false once a
// problem response has been written.
func (h *ReportHandler) summaryParams(c echo.Context) (q summaryQuery, ok bool, err error) {
	requested, perr := queryInt32Ptr(c, "unit")
	if perr != nil {
		return q, false, invalidParam(c, "unit", "must be a number")
	}
	unit, ok, err := resolveUnit(c, requested)
	if !ok {
		return q, false, err
	}
	q.unit = unit

	if q.year, perr = queryIntDefault(c, "year", h.now().Year()); perr != nil {
		return q, false, invalidParam(c, "year", "must be a number")
	}
	if q.fromMonth, perr = queryIntDefault(c, "fromMonth", 1); perr != nil {
		return q, false, invalidParam(c, "fromMonth", "must be a number")
	}
	if q.toMonth, perr = queryIntDefault(c, "toMonth", 12); perr != nil {
		return q, false, invalidParam(c, "toMonth", "must be a number")
	}
	return q, true, nil
}

// Summary handles GET /reports/summary
// @Summary Yearly fee summary of a unit
// @Description format=json (default), pdf or xlsx
// @Tags reports
// @Produce json
// @Produce application/pdf
// @Security BearerAuth
// @Param unit query int false "Unit number, required for admins"
// @Param year query int false "Year, defaults to the current year"
// @Param fromMonth query int false "First month"
// @Param toMonth query int false "Last month"
// @Param format query string false "json, pdf or xlsx"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	q, ok, err := h.summaryParams(c)
	if !ok {
		return err
	}
	ctx := c.Request().Context()

	switch format := c.QueryParam("format"); format {
	case "", "json":
		summary, err := h.reportService.Summary(ctx, q.unit, q.year, q.fromMonth, q.toMonth)
		if err != nil {
			return handleServiceError(c, err, "build summary")
		}
		return c.JSON(http.StatusOK, toSummaryResponse(summary))
	case service.FormatPDF:
		data, err := h.reportService.SummaryPDF(ctx, q.unit, q.year, q.fromMonth, q.toMonth)
		if err != nil {
			return handleServiceError(c, err, "render summary pdf")
		}
		return attachment(c, fmt.Sprintf("unit-%d-%d.pdf", q.unit, q.year), service.ContentTypePDF, data)
	case service.FormatXLSX:
		data, err := h.reportService.SummaryXLSX(ctx, q.unit, q.year, q.fromMonth, q.toMonth)
		if err != nil {
			return handleServiceError(c, err, "render summary xlsx")
		}
		return attachment(c, fmt.Sprintf("unit-%d-%d.xlsx", q.unit, q.year), service.ContentTypeXLSX, data)
	default:
		return invalidParam(c, "format", "must be json, pdf or xlsx")
	}
}

// Archive handles POST /reports/summary/archive
// @Summary Store a summary PDF and return a temporary download link
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param unit query int true "Unit number"
// @Param year query int false "Year"
// @Success 201 {object} service.ArchivedReport
// @Failure 503 {object} ProblemDetails
// @Router /reports/summary/archive [post]
func (h *ReportHandler) Archive(c echo.Context) error {
	q, ok, err := h.summaryParams(c)
	if !ok {
		return err
	}
	archived, err := h.reportService.ArchiveSummaryPDF(c.Request().Context(), q.unit, q.year, q.fromMonth, q.toMonth)
	if err != nil {
		return handleServiceError(c, err, "archive summary")
	}
	return c.JSON(http.StatusCreated, archived)
}

// LedgerExport handles GET /reports/ledger
// @Summary Export a whole ledger as a workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param scope query string false "unit or association"
// @Param unit query int false "Unit number"
// @Success 200 {file} binary
// @Router /reports/ledger [get]
func (h *ReportHandler) LedgerExport(c echo.Context) error {
	scope, unit, ok, err := ledgerScope(c)
	if !ok {
		return err
	}
	data, err := h.reportService.LedgerXLSX(c.Request().Context(), scope, unit)
	if err != nil {
		return handleServiceError(c, err, "export ledger")
	}
	name := "association-ledger.xlsx"
	if scope == domain.ScopeUnit && unit != nil {
		name = fmt.Sprintf("unit-%d-ledger.xlsx", *unit)
	}
	return attachment(c, name, service.ContentTypeXLSX, data)
}

func attachment(c echo.Context, filename, contentType string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, data)
}

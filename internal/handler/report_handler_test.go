package handler

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportEnv(t *testing.T) *testEnv {
	env := newTestEnv(t)
	env.seedUnit15()
	env.addReading(15, day(2024, 2, 1), 100, 50)
	env.addReading(15, day(2024, 3, 1), 140, 70)
	return env
}

func TestReportHandler_SummaryJSON(t *testing.T) {
	env := newReportEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/reports/summary?year=2024", residentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	summary := decode[SummaryResponse](t, rec)
	assert.Equal(t, int32(15), summary.UnitNumber)
	assert.Equal(t, "PL15", summary.AccountNumber)
	assert.Equal(t, 1, summary.FromMonth)
	assert.Equal(t, 12, summary.ToMonth)
	// February has no earlier reading and is left out
	require.Len(t, summary.Months, 1)
	assert.Equal(t, "2024-03-01", summary.Months[0].ReadingDate)
	assert.Equal(t, "1320.00", summary.Total)
	assert.Equal(t, "0.00", summary.Balance)
}

func TestReportHandler_SummaryPDF(t *testing.T) {
	env := newReportEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/reports/summary?unit=15&year=2024&format=pdf", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, service.ContentTypePDF, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "unit-15-2024.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestReportHandler_SummaryXLSX(t *testing.T) {
	env := newReportEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/reports/summary?unit=15&year=2024&format=xlsx", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, service.ContentTypeXLSX, rec.Header().Get(echo.HeaderContentType))
	// xlsx is a zip archive
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestReportHandler_BadParameters(t *testing.T) {
	env := newReportEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/reports/summary?unit=15&format=csv", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/reports/summary?unit=15&fromMonth=9&toMonth=3", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandler_ArchiveDisabled(t *testing.T) {
	env := newReportEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/reports/summary/archive?unit=15&year=2024", adminToken, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, ErrorTypeUnavailable, decode[ProblemDetails](t, rec).Type)
}

func TestReportHandler_LedgerExportIsAdminOnly(t *testing.T) {
	env := newReportEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/reports/ledger?unit=15", residentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/reports/ledger?unit=15", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "unit-15-ledger.xlsx")
}

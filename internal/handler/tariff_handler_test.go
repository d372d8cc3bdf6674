package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tariffRequest(effective string) TariffRequest {
	return TariffRequest{
		EffectiveDate:  effective,
		MaintenanceFee: decimal.RequireFromString("2.5"),
		RepairFund:     decimal.RequireFromString("1"),
		CentralHeating: decimal.RequireFromString("3"),
		HotWater:       decimal.RequireFromString("22"),
		ColdWater:      decimal.RequireFromString("16"),
		Garbage:        decimal.RequireFromString("11"),
		ParkingFee:     decimal.RequireFromString("30"),
	}
}

func TestTariffHandler_CreateAndLatest(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()

	rec := env.do(t, http.MethodPost, "/api/v1/tariffs", adminToken, tariffRequest("2024-07-01"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[TariffResponse](t, rec)
	assert.Equal(t, "2024-07-01", created.EffectiveDate)
	assert.Equal(t, "2.5", created.MaintenanceFee)

	rec = env.do(t, http.MethodGet, "/api/v1/tariffs/latest", residentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, created.ID, decode[TariffResponse](t, rec).ID)

	rec = env.do(t, http.MethodGet, "/api/v1/tariffs", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(2), decode[TariffHistoryResponse](t, rec).TotalItems)
}

func TestTariffHandler_Validation(t *testing.T) {
	env := newTestEnv(t)

	req := tariffRequest("2024-07-01")
	req.HotWater = decimal.RequireFromString("-1")
	rec := env.do(t, http.MethodPost, "/api/v1/tariffs", adminToken, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "hotWater", decode[ProblemDetails](t, rec).Errors[0].Field)

	rec = env.do(t, http.MethodPost, "/api/v1/tariffs", adminToken, tariffRequest(""))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "effectiveDate", decode[ProblemDetails](t, rec).Errors[0].Field)

	rec = env.do(t, http.MethodPost, "/api/v1/tariffs", residentToken, tariffRequest("2024-07-01"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTariffHandler_Delete(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()

	rec := env.do(t, http.MethodPost, "/api/v1/tariffs", adminToken, tariffRequest("2024-07-01"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[TariffResponse](t, rec)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/tariffs/%d", created.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/tariffs/%d", created.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// the seeded period is referenced by a billed entry
	env.tariffs.Referenced[1] = true
	rec = env.do(t, http.MethodDelete, "/api/v1/tariffs/1", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

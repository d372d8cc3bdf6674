package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitHandler_CreateOpensLedger(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/units", adminToken, map[string]interface{}{
		"number":        16,
		"area":          "40.5",
		"accountNumber": "PL16",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	unit := decode[UnitResponse](t, rec)
	assert.Equal(t, int32(16), unit.Number)
	assert.Equal(t, "40.50", unit.Area)

	rec = env.do(t, http.MethodGet, "/api/v1/ledger/entries?unit=16", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[LedgerPageResponse](t, rec)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "opening_balance", page.Data[0].Type)
	assert.Equal(t, "0.00", page.Data[0].Balance)
}

func TestUnitHandler_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/units", adminToken, map[string]interface{}{
		"number": 16,
		"area":   "40",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	problem := decode[ProblemDetails](t, rec)
	assert.Equal(t, ErrorTypeValidation, problem.Type)
	require.NotEmpty(t, problem.Errors)
	assert.Equal(t, "accountNumber", problem.Errors[0].Field)
}

func TestUnitHandler_GetUnknown(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/units/99", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/units/abc", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

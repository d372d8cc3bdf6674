package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingHandler_ResidentSubmitsForOwnUnit(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()

	rec := env.do(t, http.MethodPost, "/api/v1/readings", residentToken, map[string]interface{}{
		"readingDate": "2024-03-01",
		"coldCounter": 140,
		"hotCounter":  70,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	reading := decode[ReadingResponse](t, rec)
	assert.Equal(t, int32(15), reading.UnitNumber)
	assert.Equal(t, "2024-03-01", reading.ReadingDate)
}

func TestReadingHandler_ResidentCannotSubmitForOtherUnit(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()

	rec := env.do(t, http.MethodPost, "/api/v1/readings", residentToken, map[string]interface{}{
		"unitNumber":  16,
		"readingDate": "2024-03-01",
		"coldCounter": 1,
		"hotCounter":  1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReadingHandler_RejectsBadDate(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()

	rec := env.do(t, http.MethodPost, "/api/v1/readings", adminToken, map[string]interface{}{
		"unitNumber":  15,
		"readingDate": "01.03.2024",
		"coldCounter": 1,
		"hotCounter":  1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[ProblemDetails](t, rec)
	require.NotEmpty(t, problem.Errors)
	assert.Equal(t, "readingDate", problem.Errors[0].Field)
}

func TestReadingHandler_OtherUnitReadingIsHidden(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()
	other := env.addReading(16, day(2024, 3, 1), 10, 5)

	target := fmt.Sprintf("/api/v1/readings/%d", other.ID)
	rec := env.do(t, http.MethodGet, target, residentToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, target, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadingHandler_ListIsScopedForResidents(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()
	env.addReading(15, day(2024, 2, 1), 100, 50)
	env.addReading(16, day(2024, 2, 1), 10, 5)

	rec := env.do(t, http.MethodGet, "/api/v1/readings", residentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	readings := decode[[]ReadingResponse](t, rec)
	require.Len(t, readings, 1)
	assert.Equal(t, int32(15), readings[0].UnitNumber)

	rec = env.do(t, http.MethodGet, "/api/v1/readings", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]ReadingResponse](t, rec), 2)
}

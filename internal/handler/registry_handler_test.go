package handler

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryHandler_HeatingSchedule(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()

	rec := env.do(t, http.MethodPost, "/api/v1/surcharges/heating", adminToken, HeatingSurchargeRequest{
		UnitNumber: 15,
		StartDate:  "2024-01-01",
		EndDate:    "2024-03-31",
		Total:      decimal.RequireFromString("1000"),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	s := decode[HeatingSurchargeResponse](t, rec)
	assert.Equal(t, 3, s.Installments)
	assert.Equal(t, "333.33", s.MonthlyInstallment)
	assert.Equal(t, "333.34", s.LastInstallment)
	assert.Equal(t, "1000.00", s.Total)
}

func TestRegistryHandler_HeatingValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()

	tests := []struct {
		name  string
		req   HeatingSurchargeRequest
		code  int
		field string
	}{
		{
			name:  "end before start",
			req:   HeatingSurchargeRequest{UnitNumber: 15, StartDate: "2024-03-01", EndDate: "2024-01-31", Total: decimal.NewFromInt(100)},
			code:  http.StatusBadRequest,
			field: "endDate",
		},
		{
			name:  "zero total",
			req:   HeatingSurchargeRequest{UnitNumber: 15, StartDate: "2024-01-01", EndDate: "2024-01-31"},
			code:  http.StatusBadRequest,
			field: "total",
		},
		{
			name:  "malformed date",
			req:   HeatingSurchargeRequest{UnitNumber: 15, StartDate: "01.01.2024", EndDate: "2024-01-31", Total: decimal.NewFromInt(100)},
			code:  http.StatusBadRequest,
			field: "startDate",
		},
		{
			name: "unknown unit",
			req:  HeatingSurchargeRequest{UnitNumber: 99, StartDate: "2024-01-01", EndDate: "2024-01-31", Total: decimal.NewFromInt(100)},
			code: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/surcharges/heating", adminToken, tt.req)
			require.Equal(t, tt.code, rec.Code, rec.Body.String())
			if tt.field != "" {
				problem := decode[ProblemDetails](t, rec)
				require.NotEmpty(t, problem.Errors)
				assert.Equal(t, tt.field, problem.Errors[0].Field)
			}
		})
	}
}

func TestRegistryHandler_SurchargesReachTheFee(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()
	env.addReading(15, day(2024, 2, 1), 100, 50)
	env.addReading(15, day(2024, 3, 1), 140, 70)

	rec := env.do(t, http.MethodPost, "/api/v1/surcharges/heating", adminToken, HeatingSurchargeRequest{
		UnitNumber: 15, StartDate: "2024-01-01", EndDate: "2024-03-31", Total: decimal.NewFromInt(1000),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = env.do(t, http.MethodPost, "/api/v1/surcharges/parking", adminToken, ParkingCardRequest{
		UnitNumber: 15, StartDate: "2024-01-01", Cards: 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = env.do(t, http.MethodPost, "/api/v1/surcharges/family", adminToken, FamilyDiscountRequest{
		UnitNumber: 15, StartDate: "2024-01-01", Amount: decimal.NewFromInt(5),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/v1/fees", residentToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	fee := decode[FeeResponse](t, rec)
	assert.Equal(t, int32(2), fee.ParkingCards)
	assert.Equal(t, "50.00", fee.ParkingCost)
	assert.Equal(t, "5.00", fee.FamilyDiscount)
	// March is the final month of the schedule
	assert.Equal(t, "333.34", fee.HeatingSurcharge)
	assert.Equal(t, "1698.34", fee.Total)
}

func TestRegistryHandler_Occupancy(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit15()

	rec := env.do(t, http.MethodPost, "/api/v1/occupancies", adminToken, OccupancyRequest{
		UnitNumber: 15, StartDate: "2024-02-01", Occupants: 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[OccupancyResponse](t, rec)
	assert.Equal(t, int32(3), created.Occupants)
	assert.Equal(t, "2024-02-01", created.StartDate)

	rec = env.do(t, http.MethodGet, "/api/v1/occupancies?unit=15", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]OccupancyResponse](t, rec), 2)

	rec = env.do(t, http.MethodPost, "/api/v1/occupancies", adminToken, OccupancyRequest{
		UnitNumber: 15, StartDate: "2024-02-01", Occupants: -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/occupancies", residentToken, OccupancyRequest{
		UnitNumber: 15, StartDate: "2024-02-01", Occupants: 1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

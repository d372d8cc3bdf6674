package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/lock"
	"github.com/dafibh/condo/condo-backend/internal/middleware"
	"github.com/dafibh/condo/condo-backend/internal/report"
	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/dafibh/condo/condo-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	adminToken    = "admin"
	residentToken = "resident-15"
	pendingToken  = "pending"
	unlinkedToken = "resident-unlinked"
)

// subjectValidator accepts any token and uses it as the subject
type subjectValidator struct{}

func (subjectValidator) ValidateToken(ctx context.Context, token string) (interface{}, error) {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: token},
		CustomClaims:     &middleware.CustomClaims{Email: token + "@example.com"},
	}, nil
}

// testEnv serves the full router over in-memory repositories
type testEnv struct {
	e *echo.Echo

	users      *testutil.MockUserRepository
	units      *testutil.MockUnitRepository
	readings   *testutil.MockMeterReadingRepository
	tariffs    *testutil.MockTariffRepository
	occupancy  *testutil.MockOccupancyRepository
	surcharges *testutil.MockSurchargeRepository
	ledger     *testutil.MockLedgerRepository
	articles   *testutil.MockArticleRepository

	fee *service.FeeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:      testutil.NewMockUserRepository(),
		units:      testutil.NewMockUnitRepository(),
		readings:   testutil.NewMockMeterReadingRepository(),
		tariffs:    testutil.NewMockTariffRepository(),
		occupancy:  testutil.NewMockOccupancyRepository(),
		surcharges: testutil.NewMockSurchargeRepository(),
		ledger:     testutil.NewMockLedgerRepository(),
		articles:   testutil.NewMockArticleRepository(),
	}
	locker := lock.NewKeyedMutex()

	authService := service.NewAuthService(env.users, env.units)
	ledgerService := service.NewLedgerService(env.ledger, env.units, locker)
	env.fee = service.NewFeeService(env.units, env.readings, env.tariffs, env.occupancy, env.surcharges)
	settlementService := service.NewSettlementService(env.units, env.fee, ledgerService, locker, 2)
	reportService := service.NewReportService(env.fee, ledgerService, env.units, report.NewPDFRenderer("Test Association", nil), nil, time.Minute)

	env.e = echo.New()
	env.e.Validator = NewRequestValidator()

	limiter := middleware.NewRateLimiter(1000, 1000)
	t.Cleanup(limiter.Stop)

	RegisterRoutes(env.e, middleware.NewAuthMiddlewareWithValidator(subjectValidator{}, authService), limiter, Handlers{
		Auth:       NewAuthHandler(authService),
		Profile:    NewProfileHandler(authService),
		Unit:       NewUnitHandler(service.NewUnitService(env.units, ledgerService)),
		Reading:    NewReadingHandler(service.NewReadingService(env.readings, env.units)),
		Tariff:     NewTariffHandler(service.NewTariffService(env.tariffs)),
		Registry:   NewRegistryHandler(service.NewOccupancyService(env.occupancy, env.units), service.NewSurchargeService(env.surcharges, env.units)),
		Fee:        NewFeeHandler(env.fee, settlementService),
		Ledger:     NewLedgerHandler(ledgerService),
		Settlement: NewSettlementHandler(settlementService),
		Report:     NewReportHandler(reportService),
		Import:     NewImportHandler(service.NewImportService(env.readings, env.units)),
		Article:    NewArticleHandler(service.NewArticleService(env.articles)),
	})

	unit15 := int32(15)
	env.addUser(adminToken, true, true, nil)
	env.addUser(residentToken, false, true, &unit15)
	env.addUser(pendingToken, false, false, &unit15)
	env.addUser(unlinkedToken, false, true, nil)
	return env
}

func (env *testEnv) addUser(auth0ID string, staff, active bool, unit *int32) {
	_, _ = env.users.CreateOrGetByAuth0ID(context.Background(), &domain.User{
		Auth0ID:    auth0ID,
		Email:      auth0ID + "@example.com",
		IsStaff:    staff,
		IsActive:   active,
		UnitNumber: unit,
	})
}

// seedUnit15 mirrors the billing fixture used by the service tests: 50 m2,
// two occupants, cold water 15 and hot water 20 per m3
func (env *testEnv) seedUnit15() {
	env.units.AddUnit(&domain.Unit{Number: 15, Area: decimal.RequireFromString("50"), AccountNumber: "PL15"})
	env.tariffs.AddTariff(&domain.TariffPeriod{
		ID:             1,
		EffectiveDate:  day(2024, 1, 1),
		MaintenanceFee: decimal.RequireFromString("2"),
		RepairFund:     decimal.RequireFromString("1"),
		CentralHeating: decimal.RequireFromString("3"),
		HotWater:       decimal.RequireFromString("20"),
		ColdWater:      decimal.RequireFromString("15"),
		Garbage:        decimal.RequireFromString("10"),
		ParkingFee:     decimal.RequireFromString("25"),
	})
	env.occupancy.AddOccupancy(&domain.Occupancy{ID: 1, UnitNumber: 15, StartDate: day(2023, 1, 1), Occupants: 2})
}

func (env *testEnv) addReading(unit int32, d time.Time, cold, hot int64) *domain.MeterReading {
	r := &domain.MeterReading{UnitNumber: unit, ReadingDate: d, ColdCounter: cold, HotCounter: hot}
	env.readings.AddReading(r)
	return r
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// do sends a request through the router. token may be empty.
func (env *testEnv) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

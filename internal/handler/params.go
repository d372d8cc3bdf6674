package handler

import (
	"strconv"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func pathInt32(c echo.Context, name string) (int32, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func pathInt64(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func queryInt32Ptr(c echo.Context, name string) (*int32, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	n := int32(v)
	return &n, nil
}

func queryInt64Ptr(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func queryIntPtr(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// queryIntDefault returns def when the parameter is absent
func queryIntDefault(c echo.Context, name string, def int) (int, error) {
	v, err := queryIntPtr(c, name)
	if err != nil || v == nil {
		return def, err
	}
	return *v, nil
}

func invalidParam(c echo.Context, name, message string) error {
	return NewValidationError(c, "Invalid parameter", []ValidationError{{Field: name, Message: message}})
}

// periodFilters reads the unit and year filters shared by registry
// listings. ok is false once a problem response has been written.
func periodFilters(c echo.Context) (f domain.PeriodFilters, ok bool, err error) {
	unit, perr := queryInt32Ptr(c, "unit")
	if perr != nil {
		return f, false, invalidParam(c, "unit", "must be a number")
	}
	year, perr := queryIntPtr(c, "year")
	if perr != nil {
		return f, false, invalidParam(c, "year", "must be a number")
	}
	f.UnitNumber = unit
	f.Year = year
	return f, true, nil
}

// resolveUnit decides which unit a read request targets. Residents always
// get their own unit; admins must name one. ok is false once a problem
// response has been written.
func resolveUnit(c echo.Context, requested *int32) (unit int32, ok bool, err error) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		return 0, false, NewUnauthorizedError(c, "Authentication required")
	}
	if p.IsAdmin() {
		if requested == nil {
			return 0, false, invalidParam(c, "unit", "unit is required")
		}
		return *requested, true, nil
	}
	if p.UnitNumber == nil {
		return 0, false, NewForbiddenError(c, "Account is not linked to a unit")
	}
	if requested != nil && *requested != *p.UnitNumber {
		return 0, false, NewForbiddenError(c, "Access to this unit is not allowed")
	}
	return *p.UnitNumber, true, nil
}

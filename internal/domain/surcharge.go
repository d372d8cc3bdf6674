package domain

import (
	"context"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/util"
	"github.com/shopspring/decimal"
)

// HeatingSurcharge is a central-heating settlement amortized in monthly
// installments over [StartDate, EndDate], both inclusive at month granularity.
type HeatingSurcharge struct {
	ID         int32           `json:"id"`
	UnitNumber int32           `json:"unitNumber"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Installments is the number of calendar months the surcharge spans
func (s *HeatingSurcharge) Installments() int {
	return util.MonthsInclusive(s.StartDate, s.EndDate)
}

// MonthlyInstallment is the regular installment, truncated to cents so the
// last installment is never smaller than zero
func (s *HeatingSurcharge) MonthlyInstallment() decimal.Decimal {
	n := s.Installments()
	if n <= 0 {
		return decimal.Zero
	}
	return s.Total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
}

// LastInstallment absorbs the rounding remainder so the schedule sums to Total
func (s *HeatingSurcharge) LastInstallment() decimal.Decimal {
	n := s.Installments()
	if n <= 0 {
		return decimal.Zero
	}
	paid := s.MonthlyInstallment().Mul(decimal.NewFromInt(int64(n - 1)))
	return s.Total.Sub(paid)
}

// Schedule lists every installment in order
func (s *HeatingSurcharge) Schedule() []decimal.Decimal {
	n := s.Installments()
	if n <= 0 {
		return nil
	}
	out := make([]decimal.Decimal, 0, n)
	monthly := s.MonthlyInstallment()
	for i := 0; i < n-1; i++ {
		out = append(out, monthly)
	}
	return append(out, s.LastInstallment())
}

// ActiveAt reports whether date falls inside the surcharge range
func (s *HeatingSurcharge) ActiveAt(date time.Time) bool {
	d := util.DateOnly(date)
	return !d.Before(util.DateOnly(s.StartDate)) && !d.After(util.DateOnly(s.EndDate))
}

// InstallmentAt returns the amount billed for a reading taken on date.
// The calendar month of EndDate is billed the remainder installment.
func (s *HeatingSurcharge) InstallmentAt(date time.Time) decimal.Decimal {
	if !s.ActiveAt(date) {
		return decimal.Zero
	}
	if util.SameMonth(date, s.EndDate) {
		return s.LastInstallment()
	}
	return s.MonthlyInstallment()
}

// Validate checks the surcharge range and amount
func (s *HeatingSurcharge) Validate() error {
	verr := &ValidationError{}
	if s.StartDate.IsZero() {
		verr.Add("startDate", "start date is required")
	}
	if s.EndDate.IsZero() {
		verr.Add("endDate", "end date is required")
	}
	if !s.StartDate.IsZero() && !s.EndDate.IsZero() && util.DateOnly(s.EndDate).Before(util.DateOnly(s.StartDate)) {
		verr.Add("endDate", "end date must not be before start date")
	}
	if !s.Total.IsPositive() {
		verr.Add("total", "total must be greater than zero")
	} else if !s.Total.Equal(s.Total.Round(2)) {
		verr.Add("total", "total must not have more than 2 decimal places")
	}
	return verr.OrNil()
}

// ParkingCard sets the number of parking cards held by a unit from StartDate
// until a later row supersedes it.
type ParkingCard struct {
	ID         int32     `json:"id"`
	UnitNumber int32     `json:"unitNumber"`
	StartDate  time.Time `json:"startDate"`
	Cards      int32     `json:"cards"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FamilyDiscount is a fixed monthly deduction from the garbage cost, open
// ended until superseded.
type FamilyDiscount struct {
	ID         int32           `json:"id"`
	UnitNumber int32           `json:"unitNumber"`
	StartDate  time.Time       `json:"startDate"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// SurchargeRepository is the surcharge registry.
//
// The *EffectiveAt methods return nil without error when nothing applies.
type SurchargeRepository interface {
	CreateHeating(ctx context.Context, s *HeatingSurcharge) (*HeatingSurcharge, error)
	GetHeating(ctx context.Context, id int32) (*HeatingSurcharge, error)
	UpdateHeating(ctx context.Context, s *HeatingSurcharge) (*HeatingSurcharge, error)
	ListHeating(ctx context.Context, filters PeriodFilters) ([]*HeatingSurcharge, error)
	ListHeatingActiveAt(ctx context.Context, unitNumber int32, date time.Time) ([]*HeatingSurcharge, error)

	CreateParkingCard(ctx context.Context, c *ParkingCard) (*ParkingCard, error)
	GetParkingCard(ctx context.Context, id int32) (*ParkingCard, error)
	UpdateParkingCard(ctx context.Context, c *ParkingCard) (*ParkingCard, error)
	ListParkingCards(ctx context.Context, filters PeriodFilters) ([]*ParkingCard, error)
	GetParkingCardEffectiveAt(ctx context.Context, unitNumber int32, date time.Time) (*ParkingCard, error)

	CreateFamilyDiscount(ctx context.Context, d *FamilyDiscount) (*FamilyDiscount, error)
	GetFamilyDiscount(ctx context.Context, id int32) (*FamilyDiscount, error)
	UpdateFamilyDiscount(ctx context.Context, d *FamilyDiscount) (*FamilyDiscount, error)
	ListFamilyDiscounts(ctx context.Context, filters PeriodFilters) ([]*FamilyDiscount, error)
	GetFamilyDiscountEffectiveAt(ctx context.Context, unitNumber int32, date time.Time) (*FamilyDiscount, error)
}

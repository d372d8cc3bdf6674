package service

import (
	"context"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

// surchargeLookupMock records the surcharge lookups a fee calculation
// makes. Only the effective-at lookups are mocked; any other method panics
// on the nil embedded repository.
type surchargeLookupMock struct {
	domain.SurchargeRepository
	mock.Mock
}

func (m *surchargeLookupMock) GetParkingCardEffectiveAt(ctx context.Context, unitNumber int32, date time.Time) (*domain.ParkingCard, error) {
	args := m.Called(ctx, unitNumber, date)
	card, _ := args.Get(0).(*domain.ParkingCard)
	return card, args.Error(1)
}

func (m *surchargeLookupMock) GetFamilyDiscountEffectiveAt(ctx context.Context, unitNumber int32, date time.Time) (*domain.FamilyDiscount, error) {
	args := m.Called(ctx, unitNumber, date)
	discount, _ := args.Get(0).(*domain.FamilyDiscount)
	return discount, args.Error(1)
}

func (m *surchargeLookupMock) ListHeatingActiveAt(ctx context.Context, unitNumber int32, date time.Time) ([]*domain.HeatingSurcharge, error) {
	args := m.Called(ctx, unitNumber, date)
	heating, _ := args.Get(0).([]*domain.HeatingSurcharge)
	return heating, args.Error(1)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	events map[int32][]websocket.Event
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: make(map[int32][]websocket.Event)}
}

func (p *recordingPublisher) Publish(channel int32, event websocket.Event) {
	p.events[channel] = append(p.events[channel], event)
}

func settleInput() domain.SettleInput {
	return domain.SettleInput{Date: date(2024, 3, 10), Title: "Fees March 2024", Type: domain.TransactionHeatingWater}
}

func TestSettlementService_Settle_PerUnitResults(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedUnit15()
	f.units.AddUnit(&domain.Unit{Number: 16, Area: dec("40")})
	f.addReading(15, date(2024, 2, 1), 100, 50)
	f.addReading(15, date(2024, 3, 1), 140, 70)

	result, err := f.settlement.Settle(ctx, settleInput())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Units, 2)

	ok := result.Units[0]
	assert.Equal(t, int32(15), ok.UnitNumber)
	assert.Equal(t, domain.UnitSettled, ok.Status)
	require.NotNil(t, ok.Amount)
	assert.Equal(t, "1320.00", ok.Amount.StringFixed(2))
	assert.Equal(t, "1320.00", result.TotalAmount.StringFixed(2))

	failed := result.Units[1]
	assert.Equal(t, int32(16), failed.UnitNumber)
	assert.Equal(t, domain.UnitFailed, failed.Status)
	assert.Contains(t, failed.Error, domain.ErrInsufficientHistory.Error())

	entries, err := f.ledgerSvc.Entries(ctx, domain.ScopeUnit, int32Ptr(15))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Fees March 2024", entries[0].Title)
	require.NotNil(t, entries[0].SettlementRunID)
	assert.Equal(t, result.RunID, *entries[0].SettlementRunID)
	require.NotNil(t, entries[0].TariffPeriodID)
	assert.Equal(t, int32(1), *entries[0].TariffPeriodID)

	none, err := f.ledgerSvc.Entries(ctx, domain.ScopeUnit, int32Ptr(16))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSettlementService_Settle_ChargeMatchesPreview(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedUnit15()
	f.addReading(15, date(2024, 2, 1), 100, 50)
	f.addReading(15, date(2024, 3, 1), 140, 70)
	_, err := f.ledgerSvc.OpenUnit(ctx, 15, date(2024, 1, 1))
	require.NoError(t, err)

	preview, err := f.settlement.Preview(ctx, 15)
	require.NoError(t, err)
	assert.Empty(t, f.ledger.Entries[1:], "preview must not append")

	result, err := f.settlement.Settle(ctx, settleInput())
	require.NoError(t, err)
	require.Len(t, result.Units, 1)
	assert.True(t, preview.Total.Equal(*result.Units[0].Amount))
	assert.True(t, preview.Total.Equal(*result.Units[0].Balance))
}

func TestSettlementService_Settle_PublishesSummary(t *testing.T) {
	f := newFixture()
	f.seedUnit15()
	f.addReading(15, date(2024, 2, 1), 100, 50)
	f.addReading(15, date(2024, 3, 1), 140, 70)
	pub := newRecordingPublisher()
	f.settlement.SetEventPublisher(pub)

	_, err := f.settlement.Settle(context.Background(), settleInput())
	require.NoError(t, err)
	require.Len(t, pub.events[websocket.AdminChannel], 1)
	assert.Equal(t, "settlement.completed", pub.events[websocket.AdminChannel][0].Type)
}

func TestSettlementService_Settle_SkipsBilledReading(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedUnit15()
	f.addReading(15, date(2024, 2, 1), 100, 50)
	latest := f.addReading(15, date(2024, 3, 1), 140, 70)

	first, err := f.settlement.Settle(ctx, settleInput())
	require.NoError(t, err)
	require.Equal(t, 1, first.Succeeded)
	require.NotNil(t, first.Units[0].ReadingID)
	assert.Equal(t, latest.ID, *first.Units[0].ReadingID)

	second, err := f.settlement.Settle(ctx, settleInput())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Succeeded)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, 0, second.Failed)
	assert.Equal(t, domain.UnitSkipped, second.Units[0].Status)
	assert.True(t, second.TotalAmount.IsZero())

	entries, err := f.ledgerSvc.Entries(ctx, domain.ScopeUnit, int32Ptr(15))
	require.NoError(t, err)
	require.Len(t, entries, 1, "the reading is billed once")
	require.NotNil(t, entries[0].ReadingID)
	assert.Equal(t, latest.ID, *entries[0].ReadingID)

	f.addReading(15, date(2024, 4, 1), 150, 75)
	third, err := f.settlement.Settle(ctx, settleInput())
	require.NoError(t, err)
	assert.Equal(t, 1, third.Succeeded)
	assert.Equal(t, 0, third.Skipped)
}

func TestSettlementService_Settle_Validation(t *testing.T) {
	f := newFixture()
	in := settleInput()
	in.Title = ""
	in.Date = time.Time{}

	_, err := f.settlement.Settle(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSettlementService_Settle_AlreadyRunning(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedUnit15()

	lease, err := f.locker.Obtain(ctx, settlementLockKey, time.Minute)
	require.NoError(t, err)
	defer lease.Release(ctx)

	_, err = f.settlement.Settle(ctx, settleInput())
	assert.ErrorIs(t, err, domain.ErrSettlementRunning)
}

func TestSettlementService_Settle_RepositoryErrorFailsOnlyThatUnit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seedUnit15()
	f.units.AddUnit(&domain.Unit{Number: 16, Area: dec("40")})
	f.occupancy.AddOccupancy(&domain.Occupancy{ID: 2, UnitNumber: 16, StartDate: date(2023, 1, 1), Occupants: 1})
	for _, unit := range []int32{15, 16} {
		f.addReading(unit, date(2024, 2, 1), 100, 50)
		f.addReading(unit, date(2024, 3, 1), 110, 55)
	}

	surcharges := &surchargeLookupMock{}
	surcharges.On("GetParkingCardEffectiveAt", mock.Anything, int32(15), mock.Anything).Return(nil, nil).Once()
	surcharges.On("GetFamilyDiscountEffectiveAt", mock.Anything, int32(15), mock.Anything).Return(nil, nil).Once()
	surcharges.On("ListHeatingActiveAt", mock.Anything, int32(15), mock.Anything).Return(nil, nil).Once()
	surcharges.On("GetParkingCardEffectiveAt", mock.Anything, int32(16), mock.Anything).Return(nil, errors.New("statement timeout")).Once()

	fee := NewFeeService(f.units, f.readings, f.tariffs, f.occupancy, surcharges)
	settlement := NewSettlementService(f.units, fee, f.ledgerSvc, f.locker, 2)

	result, err := settlement.Settle(ctx, settleInput())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Units, 2)
	assert.Equal(t, domain.UnitSettled, result.Units[0].Status)
	assert.Equal(t, domain.UnitFailed, result.Units[1].Status)
	assert.Contains(t, result.Units[1].Error, "statement timeout")

	entries, err := f.ledgerSvc.Entries(ctx, domain.ScopeUnit, int32Ptr(16))
	require.NoError(t, err)
	assert.Empty(t, entries)
	surcharges.AssertExpectations(t)
	surcharges.AssertNotCalled(t, "GetFamilyDiscountEffectiveAt", mock.Anything, int32(16), mock.Anything)
}

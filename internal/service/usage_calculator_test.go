package service

import (
	"testing"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateWaterUsage(t *testing.T) {
	tests := []struct {
		name     string
		readings []*domain.MeterReading
		wantCold int64
		wantHot  int64
		wantErr  error
	}{
		{
			name: "plain difference",
			readings: []*domain.MeterReading{
				{ID: 2, ColdCounter: 140, HotCounter: 70},
				{ID: 1, ColdCounter: 100, HotCounter: 50},
			},
			wantCold: 40,
			wantHot:  20,
		},
		{
			name: "hot meter replaced",
			readings: []*domain.MeterReading{
				{ID: 3, ColdCounter: 130, HotCounter: 5, NewHotMeter: true},
				{ID: 2, ColdCounter: 120, HotCounter: 80},
				{ID: 1, ColdCounter: 100, HotCounter: 60},
			},
			wantCold: 10,
			wantHot:  25,
		},
		{
			name: "both meters replaced",
			readings: []*domain.MeterReading{
				{ID: 3, ColdCounter: 3, HotCounter: 2, NewHotMeter: true, NewColdMeter: true},
				{ID: 2, ColdCounter: 120, HotCounter: 80},
				{ID: 1, ColdCounter: 100, HotCounter: 60},
			},
			wantCold: 23,
			wantHot:  22,
		},
		{
			name:     "single reading",
			readings: []*domain.MeterReading{{ID: 1, ColdCounter: 10, HotCounter: 5}},
			wantErr:  domain.ErrInsufficientHistory,
		},
		{
			name: "replacement needs three readings",
			readings: []*domain.MeterReading{
				{ID: 2, ColdCounter: 1, HotCounter: 1, NewColdMeter: true},
				{ID: 1, ColdCounter: 100, HotCounter: 50},
			},
			wantErr: domain.ErrInsufficientHistory,
		},
		{
			name:    "no readings",
			wantErr: domain.ErrInsufficientHistory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage, err := CalculateWaterUsage(tt.readings)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCold, usage.ColdUsed)
			assert.Equal(t, tt.wantHot, usage.HotUsed)
			assert.Equal(t, tt.readings[0].ColdCounter, usage.ColdCounter)
			assert.Equal(t, tt.readings[0].HotCounter, usage.HotCounter)
		})
	}
}

package service

import (
	"fmt"

	"github.com/dafibh/condo/condo-backend/internal/domain"
)

const (
	minReadingHistory            = 2
	minReadingHistoryReplacement = 3
)

// CalculateWaterUsage derives consumption from a unit's readings ordered
// newest first. When a meter was replaced at the newest reading, the old
// meter's last interval (readings[1] - readings[2]) is added to the new
// counter's raw value. Cold and hot are handled independently.
func CalculateWaterUsage(readings []*domain.MeterReading) (*domain.WaterUsage, error) {
	if len(readings) < minReadingHistory {
		return nil, fmt.Errorf("%w: need %d readings, have %d", domain.ErrInsufficientHistory, minReadingHistory, len(readings))
	}

	current := readings[0]
	if current.HasReplacement() && len(readings) < minReadingHistoryReplacement {
		return nil, fmt.Errorf("%w: meter replaced at reading %d, need %d readings, have %d",
			domain.ErrInsufficientHistory, current.ID, minReadingHistoryReplacement, len(readings))
	}

	previous := readings[1]
	usage := &domain.WaterUsage{
		ColdCounter: current.ColdCounter,
		HotCounter:  current.HotCounter,
	}

	if current.NewColdMeter {
		usage.ColdUsed = current.ColdCounter + (previous.ColdCounter - readings[2].ColdCounter)
	} else {
		usage.ColdUsed = current.ColdCounter - previous.ColdCounter
	}

	if current.NewHotMeter {
		usage.HotUsed = current.HotCounter + (previous.HotCounter - readings[2].HotCounter)
	} else {
		usage.HotUsed = current.HotCounter - previous.HotCounter
	}

	return usage, nil
}

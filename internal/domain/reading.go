package domain

import (
	"context"
	"time"
)

// MeterReading is a snapshot of a unit's hot and cold water counters.
// NewHotMeter/NewColdMeter mark that the meter was physically replaced
// at this reading, so the counter restarted near zero.
type MeterReading struct {
	ID           int64     `json:"id"`
	UnitNumber   int32     `json:"unitNumber"`
	ReadingDate  time.Time `json:"readingDate"`
	HotCounter   int64     `json:"hotCounter"`
	ColdCounter  int64     `json:"coldCounter"`
	NewHotMeter  bool      `json:"newHotMeter"`
	NewColdMeter bool      `json:"newColdMeter"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasReplacement reports whether either meter was replaced at this reading
func (r *MeterReading) HasReplacement() bool {
	return r.NewHotMeter || r.NewColdMeter
}

// MeterReadingFilters narrows a reading listing
type MeterReadingFilters struct {
	UnitNumber *int32
	Year       *int
	FromMonth  *int
	ToMonth    *int
}

// MeterReadingRepository is the append-mostly reading store.
//
// ListByUnitUpTo returns the unit's readings at or before the position
// (upTo, upToID), newest first. Readings are ordered by date then id, so a
// reading on the same date with a larger id is excluded. Pass
// math.MaxInt64 as upToID to include every reading on upTo.
type MeterReadingRepository interface {
	Create(ctx context.Context, reading *MeterReading) (*MeterReading, error)
	CreateBatch(ctx context.Context, readings []*MeterReading) (int, error)
	GetByID(ctx context.Context, id int64) (*MeterReading, error)
	Update(ctx context.Context, reading *MeterReading) (*MeterReading, error)
	ListByUnitUpTo(ctx context.Context, unitNumber int32, upTo time.Time, upToID int64, limit int) ([]*MeterReading, error)
	GetLatestByUnit(ctx context.Context, unitNumber int32) (*MeterReading, error)
	List(ctx context.Context, filters MeterReadingFilters) ([]*MeterReading, error)
	ListYears(ctx context.Context) ([]int, error)
}

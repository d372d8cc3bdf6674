package domain

import (
	"context"
	"time"
)

// Occupancy records how many people live in a unit from StartDate on
type Occupancy struct {
	ID         int32     `json:"id"`
	UnitNumber int32     `json:"unitNumber"`
	StartDate  time.Time `json:"startDate"`
	Occupants  int32     `json:"occupants"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PeriodFilters narrows listings of start-dated rows
type PeriodFilters struct {
	UnitNumber *int32
	Year       *int
}

// OccupancyRepository persists occupancy rows. GetEffectiveAt returns the
// row with the greatest start date on or before the given date.
type OccupancyRepository interface {
	Create(ctx context.Context, occupancy *Occupancy) (*Occupancy, error)
	GetByID(ctx context.Context, id int32) (*Occupancy, error)
	Update(ctx context.Context, occupancy *Occupancy) (*Occupancy, error)
	GetEffectiveAt(ctx context.Context, unitNumber int32, date time.Time) (*Occupancy, error)
	List(ctx context.Context, filters PeriodFilters) ([]*Occupancy, error)
	ListLatestPerUnit(ctx context.Context) ([]*Occupancy, error)
}

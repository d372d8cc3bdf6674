package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Unit is a billable apartment within the association. Number is the
// identifier and never changes once the unit exists.
type Unit struct {
	Number        int32           `json:"number"`
	Area          decimal.Decimal `json:"area"`
	AccountNumber string          `json:"accountNumber"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// UnitRepository persists units. Delete returns ErrReferentialConflict while
// any reading, occupancy, surcharge, ledger entry or user references the unit.
type UnitRepository interface {
	Create(ctx context.Context, unit *Unit) (*Unit, error)
	GetByNumber(ctx context.Context, number int32) (*Unit, error)
	List(ctx context.Context) ([]*Unit, error)
	Update(ctx context.Context, number int32, area decimal.Decimal, accountNumber string) (*Unit, error)
	Delete(ctx context.Context, number int32) error
}

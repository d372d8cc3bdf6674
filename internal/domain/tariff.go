package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TariffPeriod is the price table in effect from EffectiveDate until a
// later period supersedes it.
type TariffPeriod struct {
	ID             int32           `json:"id"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	MaintenanceFee decimal.Decimal `json:"maintenanceFee"` // per m2
	RepairFund     decimal.Decimal `json:"repairFund"`     // per m2
	CentralHeating decimal.Decimal `json:"centralHeating"` // per m2
	HotWater       decimal.Decimal `json:"hotWater"`       // per m3
	ColdWater      decimal.Decimal `json:"coldWater"`      // per m3
	Garbage        decimal.Decimal `json:"garbage"`        // per tenant
	ParkingFee     decimal.Decimal `json:"parkingFee"`     // per card
	CreatedAt      time.Time       `json:"createdAt"`
}

// PaginatedTariffs is one page of tariff history, newest first
type PaginatedTariffs struct {
	Data       []*TariffPeriod `json:"data"`
	Page       int32           `json:"page"`
	PageSize   int32           `json:"pageSize"`
	TotalItems int64           `json:"totalItems"`
	TotalPages int32           `json:"totalPages"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// TariffRepository persists tariff periods. GetEffectiveAt returns
// ErrTariffNotFound when no period starts on or before the date.
type TariffRepository interface {
	Create(ctx context.Context, tariff *TariffPeriod) (*TariffPeriod, error)
	GetByID(ctx context.Context, id int32) (*TariffPeriod, error)
	GetLatest(ctx context.Context) (*TariffPeriod, error)
	GetEffectiveAt(ctx context.Context, date time.Time) (*TariffPeriod, error)
	List(ctx context.Context, page, pageSize int32) (*PaginatedTariffs, error)
	Delete(ctx context.Context, id int32) error
}

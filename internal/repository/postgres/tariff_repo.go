package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tariffColumns = `id, effective_date, maintenance_fee, repair_fund, central_heating, hot_water, cold_water, garbage, parking_fee, created_at`

// TariffRepository implements domain.TariffRepository using PostgreSQL
type TariffRepository struct {
	pool *pgxpool.Pool
}

// NewTariffRepository creates a new TariffRepository
func NewTariffRepository(pool *pgxpool.Pool) *TariffRepository {
	return &TariffRepository{pool: pool}
}

// Create inserts a tariff period
func (r *TariffRepository) Create(ctx context.Context, t *domain.TariffPeriod) (*domain.TariffPeriod, error) {
	rates, err := decimalsToPgNumeric(t.MaintenanceFee, t.RepairFund, t.CentralHeating, t.HotWater, t.ColdWater, t.Garbage, t.ParkingFee)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tariff_periods (effective_date, maintenance_fee, repair_fund, central_heating, hot_water, cold_water, garbage, parking_fee)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+tariffColumns,
		timeToPgDate(t.EffectiveDate), rates[0], rates[1], rates[2], rates[3], rates[4], rates[5], rates[6],
	)
	return scanTariff(row)
}

// GetByID retrieves a tariff period
func (r *TariffRepository) GetByID(ctx context.Context, id int32) (*domain.TariffPeriod, error) {
	return scanTariff(r.pool.QueryRow(ctx, `SELECT `+tariffColumns+` FROM tariff_periods WHERE id = $1`, id))
}

// GetLatest returns the period with the greatest effective date
func (r *TariffRepository) GetLatest(ctx context.Context) (*domain.TariffPeriod, error) {
	return scanTariff(r.pool.QueryRow(ctx, `
		SELECT `+tariffColumns+` FROM tariff_periods
		ORDER BY effective_date DESC, id DESC
		LIMIT 1`))
}

// GetEffectiveAt returns the latest period that starts on or before date
func (r *TariffRepository) GetEffectiveAt(ctx context.Context, date time.Time) (*domain.TariffPeriod, error) {
	return scanTariff(r.pool.QueryRow(ctx, `
		SELECT `+tariffColumns+` FROM tariff_periods
		WHERE effective_date <= $1
		ORDER BY effective_date DESC, id DESC
		LIMIT 1`, timeToPgDate(date)))
}

// List returns one page of periods, newest first
func (r *TariffRepository) List(ctx context.Context, page, pageSize int32) (*domain.PaginatedTariffs, error) {
	page, pageSize, offset := pageOffset(page, pageSize)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tariff_periods`).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+tariffColumns+` FROM tariff_periods
		ORDER BY effective_date DESC, id DESC
		LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	data := make([]*domain.TariffPeriod, 0, pageSize)
	for rows.Next() {
		t, err := scanTariff(rows)
		if err != nil {
			return nil, err
		}
		data = append(data, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.PaginatedTariffs{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// Delete removes a period. Billed ledger entries keep it alive.
func (r *TariffRepository) Delete(ctx context.Context, id int32) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tariff_periods WHERE id = $1`, id)
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return domain.ErrReferentialConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTariffNotFound
	}
	return nil
}

func scanTariff(row rowScanner) (*domain.TariffPeriod, error) {
	var (
		t                                                                  domain.TariffPeriod
		effective                                                          pgtype.Date
		maintenance, repair, heating, hotWater, coldWater, garbage, parking pgtype.Numeric
	)
	err := row.Scan(&t.ID, &effective, &maintenance, &repair, &heating, &hotWater, &coldWater, &garbage, &parking, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTariffNotFound
		}
		return nil, err
	}
	t.EffectiveDate = pgDateToTime(effective)
	t.MaintenanceFee = pgNumericToDecimal(maintenance)
	t.RepairFund = pgNumericToDecimal(repair)
	t.CentralHeating = pgNumericToDecimal(heating)
	t.HotWater = pgNumericToDecimal(hotWater)
	t.ColdWater = pgNumericToDecimal(coldWater)
	t.Garbage = pgNumericToDecimal(garbage)
	t.ParkingFee = pgNumericToDecimal(parking)
	return &t, nil
}

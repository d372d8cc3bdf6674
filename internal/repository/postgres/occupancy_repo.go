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

const occupancyColumns = `id, unit_number, start_date, occupants, created_at`

// OccupancyRepository implements domain.OccupancyRepository using PostgreSQL
type OccupancyRepository struct {
	pool *pgxpool.Pool
}

// NewOccupancyRepository creates a new OccupancyRepository
func NewOccupancyRepository(pool *pgxpool.Pool) *OccupancyRepository {
	return &OccupancyRepository{pool: pool}
}

// Create inserts an occupancy row
func (r *OccupancyRepository) Create(ctx context.Context, o *domain.Occupancy) (*domain.Occupancy, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO occupancies (unit_number, start_date, occupants)
		VALUES ($1, $2, $3)
		RETURNING `+occupancyColumns,
		o.UnitNumber, timeToPgDate(o.StartDate), o.Occupants,
	)
	created, err := scanOccupancy(row)
	if isPgForeignKeyViolation(err) {
		return nil, domain.ErrUnitNotFound
	}
	return created, err
}

// GetByID retrieves an occupancy row
func (r *OccupancyRepository) GetByID(ctx context.Context, id int32) (*domain.Occupancy, error) {
	return scanOccupancy(r.pool.QueryRow(ctx, `SELECT `+occupancyColumns+` FROM occupancies WHERE id = $1`, id))
}

// Update rewrites an occupancy row
func (r *OccupancyRepository) Update(ctx context.Context, o *domain.Occupancy) (*domain.Occupancy, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE occupancies SET unit_number = $2, start_date = $3, occupants = $4
		WHERE id = $1
		RETURNING `+occupancyColumns,
		o.ID, o.UnitNumber, timeToPgDate(o.StartDate), o.Occupants,
	)
	return scanOccupancy(row)
}

// GetEffectiveAt returns the row with the latest start date on or before date
func (r *OccupancyRepository) GetEffectiveAt(ctx context.Context, unitNumber int32, date time.Time) (*domain.Occupancy, error) {
	return scanOccupancy(r.pool.QueryRow(ctx, `
		SELECT `+occupancyColumns+` FROM occupancies
		WHERE unit_number = $1 AND start_date <= $2
		ORDER BY start_date DESC, id DESC
		LIMIT 1`, unitNumber, timeToPgDate(date)))
}

// List returns rows matching filters ordered by unit then start date
func (r *OccupancyRepository) List(ctx context.Context, filters domain.PeriodFilters) ([]*domain.Occupancy, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+occupancyColumns+` FROM occupancies
		WHERE ($1::int IS NULL OR unit_number = $1)
		  AND ($2::int IS NULL OR EXTRACT(YEAR FROM start_date)::int = $2)
		ORDER BY unit_number, start_date, id`,
		int32PtrToPgInt4(filters.UnitNumber), intPtrToPgInt4(filters.Year),
	)
	if err != nil {
		return nil, err
	}
	return collectOccupancies(rows)
}

// ListLatestPerUnit returns each unit's current occupancy row
func (r *OccupancyRepository) ListLatestPerUnit(ctx context.Context) ([]*domain.Occupancy, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (unit_number) `+occupancyColumns+`
		FROM occupancies
		ORDER BY unit_number, start_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectOccupancies(rows)
}

func collectOccupancies(rows pgx.Rows) ([]*domain.Occupancy, error) {
	defer rows.Close()
	var out []*domain.Occupancy
	for rows.Next() {
		o, err := scanOccupancy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOccupancy(row rowScanner) (*domain.Occupancy, error) {
	var (
		o     domain.Occupancy
		start pgtype.Date
	)
	if err := row.Scan(&o.ID, &o.UnitNumber, &start, &o.Occupants, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOccupancyNotFound
		}
		return nil, err
	}
	o.StartDate = pgDateToTime(start)
	return &o, nil
}

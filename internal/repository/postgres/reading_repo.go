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

const readingColumns = `id, unit_number, reading_date, hot_counter, cold_counter, new_hot_meter, new_cold_meter, created_at`

// MeterReadingRepository implements domain.MeterReadingRepository using PostgreSQL
type MeterReadingRepository struct {
	pool *pgxpool.Pool
}

// NewMeterReadingRepository creates a new MeterReadingRepository
func NewMeterReadingRepository(pool *pgxpool.Pool) *MeterReadingRepository {
	return &MeterReadingRepository{pool: pool}
}

// Create inserts a reading
func (r *MeterReadingRepository) Create(ctx context.Context, reading *domain.MeterReading) (*domain.MeterReading, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO meter_readings (unit_number, reading_date, hot_counter, cold_counter, new_hot_meter, new_cold_meter)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+readingColumns,
		reading.UnitNumber, timeToPgDate(reading.ReadingDate), reading.HotCounter, reading.ColdCounter,
		reading.NewHotMeter, reading.NewColdMeter,
	)
	created, err := scanReading(row)
	if isPgForeignKeyViolation(err) {
		return nil, domain.ErrUnitNotFound
	}
	return created, err
}

// CreateBatch copies readings in one statement, in slice order so ids grow
// with the order the caller sorted them in
func (r *MeterReadingRepository) CreateBatch(ctx context.Context, readings []*domain.MeterReading) (int, error) {
	if len(readings) == 0 {
		return 0, nil
	}
	n, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"meter_readings"},
		[]string{"unit_number", "reading_date", "hot_counter", "cold_counter", "new_hot_meter", "new_cold_meter"},
		pgx.CopyFromSlice(len(readings), func(i int) ([]any, error) {
			m := readings[i]
			return []any{m.UnitNumber, timeToPgDate(m.ReadingDate), m.HotCounter, m.ColdCounter, m.NewHotMeter, m.NewColdMeter}, nil
		}),
	)
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return 0, domain.ErrUnitNotFound
		}
		return 0, err
	}
	return int(n), nil
}

// GetByID retrieves a reading
func (r *MeterReadingRepository) GetByID(ctx context.Context, id int64) (*domain.MeterReading, error) {
	return scanReading(r.pool.QueryRow(ctx, `SELECT `+readingColumns+` FROM meter_readings WHERE id = $1`, id))
}

// Update rewrites counters, date and replacement flags of a reading
func (r *MeterReadingRepository) Update(ctx context.Context, reading *domain.MeterReading) (*domain.MeterReading, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE meter_readings SET
			reading_date = $2, hot_counter = $3, cold_counter = $4, new_hot_meter = $5, new_cold_meter = $6
		WHERE id = $1
		RETURNING `+readingColumns,
		reading.ID, timeToPgDate(reading.ReadingDate), reading.HotCounter, reading.ColdCounter,
		reading.NewHotMeter, reading.NewColdMeter,
	)
	return scanReading(row)
}

// ListByUnitUpTo returns readings at or before (upTo, upToID), newest first.
// A zero limit returns them all.
func (r *MeterReadingRepository) ListByUnitUpTo(ctx context.Context, unitNumber int32, upTo time.Time, upToID int64, limit int) ([]*domain.MeterReading, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+readingColumns+`
		FROM meter_readings
		WHERE unit_number = $1
		  AND (reading_date < $2 OR (reading_date = $2 AND id <= $3))
		ORDER BY reading_date DESC, id DESC
		LIMIT NULLIF($4::bigint, 0)`,
		unitNumber, timeToPgDate(upTo), upToID, int64(limit),
	)
	if err != nil {
		return nil, err
	}
	return collectReadings(rows)
}

// GetLatestByUnit returns the unit's newest reading
func (r *MeterReadingRepository) GetLatestByUnit(ctx context.Context, unitNumber int32) (*domain.MeterReading, error) {
	return scanReading(r.pool.QueryRow(ctx, `
		SELECT `+readingColumns+`
		FROM meter_readings
		WHERE unit_number = $1
		ORDER BY reading_date DESC, id DESC
		LIMIT 1`, unitNumber))
}

// List returns readings matching filters ordered by date then unit
func (r *MeterReadingRepository) List(ctx context.Context, filters domain.MeterReadingFilters) ([]*domain.MeterReading, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+readingColumns+`
		FROM meter_readings
		WHERE ($1::int IS NULL OR unit_number = $1)
		  AND ($2::int IS NULL OR EXTRACT(YEAR FROM reading_date)::int = $2)
		  AND ($3::int IS NULL OR EXTRACT(MONTH FROM reading_date)::int >= $3)
		  AND ($4::int IS NULL OR EXTRACT(MONTH FROM reading_date)::int <= $4)
		ORDER BY reading_date, unit_number, id`,
		int32PtrToPgInt4(filters.UnitNumber),
		intPtrToPgInt4(filters.Year),
		intPtrToPgInt4(filters.FromMonth),
		intPtrToPgInt4(filters.ToMonth),
	)
	if err != nil {
		return nil, err
	}
	return collectReadings(rows)
}

// ListYears returns the distinct reading years, newest first
func (r *MeterReadingRepository) ListYears(ctx context.Context) ([]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT EXTRACT(YEAR FROM reading_date)::int AS year
		FROM meter_readings
		ORDER BY year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int32
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, int(y))
	}
	return years, rows.Err()
}

func collectReadings(rows pgx.Rows) ([]*domain.MeterReading, error) {
	defer rows.Close()
	var out []*domain.MeterReading
	for rows.Next() {
		m, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanReading(row rowScanner) (*domain.MeterReading, error) {
	var (
		m    domain.MeterReading
		date pgtype.Date
	)
	err := row.Scan(&m.ID, &m.UnitNumber, &date, &m.HotCounter, &m.ColdCounter, &m.NewHotMeter, &m.NewColdMeter, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReadingNotFound
		}
		return nil, err
	}
	m.ReadingDate = pgDateToTime(date)
	return &m, nil
}

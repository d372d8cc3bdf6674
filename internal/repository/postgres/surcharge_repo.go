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

const (
	heatingColumns  = `id, unit_number, start_date, end_date, total, created_at`
	parkingColumns  = `id, unit_number, start_date, cards, created_at`
	discountColumns = `id, unit_number, start_date, amount, created_at`
)

// SurchargeRepository implements domain.SurchargeRepository using PostgreSQL.
// Heating surcharges, parking cards and family discounts live in separate tables.
type SurchargeRepository struct {
	pool *pgxpool.Pool
}

// NewSurchargeRepository creates a new SurchargeRepository
func NewSurchargeRepository(pool *pgxpool.Pool) *SurchargeRepository {
	return &SurchargeRepository{pool: pool}
}

// CreateHeating inserts a heating surcharge
func (r *SurchargeRepository) CreateHeating(ctx context.Context, s *domain.HeatingSurcharge) (*domain.HeatingSurcharge, error) {
	total, err := decimalToPgNumeric(s.Total)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO heating_surcharges (unit_number, start_date, end_date, total)
		VALUES ($1, $2, $3, $4)
		RETURNING `+heatingColumns,
		s.UnitNumber, timeToPgDate(s.StartDate), timeToPgDate(s.EndDate), total,
	)
	created, err := scanHeating(row)
	if isPgForeignKeyViolation(err) {
		return nil, domain.ErrUnitNotFound
	}
	return created, err
}

// GetHeating retrieves a heating surcharge
func (r *SurchargeRepository) GetHeating(ctx context.Context, id int32) (*domain.HeatingSurcharge, error) {
	return scanHeating(r.pool.QueryRow(ctx, `SELECT `+heatingColumns+` FROM heating_surcharges WHERE id = $1`, id))
}

// UpdateHeating rewrites a heating surcharge
func (r *SurchargeRepository) UpdateHeating(ctx context.Context, s *domain.HeatingSurcharge) (*domain.HeatingSurcharge, error) {
	total, err := decimalToPgNumeric(s.Total)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE heating_surcharges SET unit_number = $2, start_date = $3, end_date = $4, total = $5
		WHERE id = $1
		RETURNING `+heatingColumns,
		s.ID, s.UnitNumber, timeToPgDate(s.StartDate), timeToPgDate(s.EndDate), total,
	)
	return scanHeating(row)
}

// ListHeating returns heating surcharges that start in the filtered year
func (r *SurchargeRepository) ListHeating(ctx context.Context, filters domain.PeriodFilters) ([]*domain.HeatingSurcharge, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+heatingColumns+` FROM heating_surcharges
		WHERE ($1::int IS NULL OR unit_number = $1)
		  AND ($2::int IS NULL OR EXTRACT(YEAR FROM start_date)::int = $2)
		ORDER BY unit_number, start_date, id`,
		int32PtrToPgInt4(filters.UnitNumber), intPtrToPgInt4(filters.Year),
	)
	if err != nil {
		return nil, err
	}
	return collectHeating(rows)
}

// ListHeatingActiveAt returns every surcharge of the unit whose range covers date
func (r *SurchargeRepository) ListHeatingActiveAt(ctx context.Context, unitNumber int32, date time.Time) ([]*domain.HeatingSurcharge, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+heatingColumns+` FROM heating_surcharges
		WHERE unit_number = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY start_date, id`,
		unitNumber, timeToPgDate(date),
	)
	if err != nil {
		return nil, err
	}
	return collectHeating(rows)
}

// CreateParkingCard inserts a parking card row
func (r *SurchargeRepository) CreateParkingCard(ctx context.Context, c *domain.ParkingCard) (*domain.ParkingCard, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO parking_cards (unit_number, start_date, cards)
		VALUES ($1, $2, $3)
		RETURNING `+parkingColumns,
		c.UnitNumber, timeToPgDate(c.StartDate), c.Cards,
	)
	created, err := scanParkingCard(row)
	if isPgForeignKeyViolation(err) {
		return nil, domain.ErrUnitNotFound
	}
	return created, err
}

// GetParkingCard retrieves a parking card row
func (r *SurchargeRepository) GetParkingCard(ctx context.Context, id int32) (*domain.ParkingCard, error) {
	return scanParkingCard(r.pool.QueryRow(ctx, `SELECT `+parkingColumns+` FROM parking_cards WHERE id = $1`, id))
}

// UpdateParkingCard rewrites a parking card row
func (r *SurchargeRepository) UpdateParkingCard(ctx context.Context, c *domain.ParkingCard) (*domain.ParkingCard, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE parking_cards SET unit_number = $2, start_date = $3, cards = $4
		WHERE id = $1
		RETURNING `+parkingColumns,
		c.ID, c.UnitNumber, timeToPgDate(c.StartDate), c.Cards,
	)
	return scanParkingCard(row)
}

// ListParkingCards returns parking rows matching filters
func (r *SurchargeRepository) ListParkingCards(ctx context.Context, filters domain.PeriodFilters) ([]*domain.ParkingCard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+parkingColumns+` FROM parking_cards
		WHERE ($1::int IS NULL OR unit_number = $1)
		  AND ($2::int IS NULL OR EXTRACT(YEAR FROM start_date)::int = $2)
		ORDER BY unit_number, start_date, id`,
		int32PtrToPgInt4(filters.UnitNumber), intPtrToPgInt4(filters.Year),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ParkingCard
	for rows.Next() {
		c, err := scanParkingCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetParkingCardEffectiveAt returns nil when the unit held no cards at date
func (r *SurchargeRepository) GetParkingCardEffectiveAt(ctx context.Context, unitNumber int32, date time.Time) (*domain.ParkingCard, error) {
	c, err := scanParkingCard(r.pool.QueryRow(ctx, `
		SELECT `+parkingColumns+` FROM parking_cards
		WHERE unit_number = $1 AND start_date <= $2
		ORDER BY start_date DESC, id DESC
		LIMIT 1`, unitNumber, timeToPgDate(date)))
	if errors.Is(err, domain.ErrSurchargeNotFound) {
		return nil, nil
	}
	return c, err
}

// CreateFamilyDiscount inserts a discount row
func (r *SurchargeRepository) CreateFamilyDiscount(ctx context.Context, d *domain.FamilyDiscount) (*domain.FamilyDiscount, error) {
	amount, err := decimalToPgNumeric(d.Amount)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO family_discounts (unit_number, start_date, amount)
		VALUES ($1, $2, $3)
		RETURNING `+discountColumns,
		d.UnitNumber, timeToPgDate(d.StartDate), amount,
	)
	created, err := scanFamilyDiscount(row)
	if isPgForeignKeyViolation(err) {
		return nil, domain.ErrUnitNotFound
	}
	return created, err
}

// GetFamilyDiscount retrieves a discount row
func (r *SurchargeRepository) GetFamilyDiscount(ctx context.Context, id int32) (*domain.FamilyDiscount, error) {
	return scanFamilyDiscount(r.pool.QueryRow(ctx, `SELECT `+discountColumns+` FROM family_discounts WHERE id = $1`, id))
}

// UpdateFamilyDiscount rewrites a discount row
func (r *SurchargeRepository) UpdateFamilyDiscount(ctx context.Context, d *domain.FamilyDiscount) (*domain.FamilyDiscount, error) {
	amount, err := decimalToPgNumeric(d.Amount)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE family_discounts SET unit_number = $2, start_date = $3, amount = $4
		WHERE id = $1
		RETURNING `+discountColumns,
		d.ID, d.UnitNumber, timeToPgDate(d.StartDate), amount,
	)
	return scanFamilyDiscount(row)
}

// ListFamilyDiscounts returns discount rows matching filters
func (r *SurchargeRepository) ListFamilyDiscounts(ctx context.Context, filters domain.PeriodFilters) ([]*domain.FamilyDiscount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+discountColumns+` FROM family_discounts
		WHERE ($1::int IS NULL OR unit_number = $1)
		  AND ($2::int IS NULL OR EXTRACT(YEAR FROM start_date)::int = $2)
		ORDER BY unit_number, start_date, id`,
		int32PtrToPgInt4(filters.UnitNumber), intPtrToPgInt4(filters.Year),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.FamilyDiscount
	for rows.Next() {
		d, err := scanFamilyDiscount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetFamilyDiscountEffectiveAt returns nil when no discount applies at date
func (r *SurchargeRepository) GetFamilyDiscountEffectiveAt(ctx context.Context, unitNumber int32, date time.Time) (*domain.FamilyDiscount, error) {
	d, err := scanFamilyDiscount(r.pool.QueryRow(ctx, `
		SELECT `+discountColumns+` FROM family_discounts
		WHERE unit_number = $1 AND start_date <= $2
		ORDER BY start_date DESC, id DESC
		LIMIT 1`, unitNumber, timeToPgDate(date)))
	if errors.Is(err, domain.ErrSurchargeNotFound) {
		return nil, nil
	}
	return d, err
}

func collectHeating(rows pgx.Rows) ([]*domain.HeatingSurcharge, error) {
	defer rows.Close()
	var out []*domain.HeatingSurcharge
	for rows.Next() {
		s, err := scanHeating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanHeating(row rowScanner) (*domain.HeatingSurcharge, error) {
	var (
		s          domain.HeatingSurcharge
		start, end pgtype.Date
		total      pgtype.Numeric
	)
	if err := row.Scan(&s.ID, &s.UnitNumber, &start, &end, &total, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSurchargeNotFound
		}
		return nil, err
	}
	s.StartDate = pgDateToTime(start)
	s.EndDate = pgDateToTime(end)
	s.Total = pgNumericToDecimal(total)
	return &s, nil
}

func scanParkingCard(row rowScanner) (*domain.ParkingCard, error) {
	var (
		c     domain.ParkingCard
		start pgtype.Date
	)
	if err := row.Scan(&c.ID, &c.UnitNumber, &start, &c.Cards, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSurchargeNotFound
		}
		return nil, err
	}
	c.StartDate = pgDateToTime(start)
	return &c, nil
}

func scanFamilyDiscount(row rowScanner) (*domain.FamilyDiscount, error) {
	var (
		d      domain.FamilyDiscount
		start  pgtype.Date
		amount pgtype.Numeric
	)
	if err := row.Scan(&d.ID, &d.UnitNumber, &start, &amount, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSurchargeNotFound
		}
		return nil, err
	}
	d.StartDate = pgDateToTime(start)
	d.Amount = pgNumericToDecimal(amount)
	return &d, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const unitColumns = `number, area, account_number, created_at, updated_at`

// UnitRepository implements domain.UnitRepository using PostgreSQL
type UnitRepository struct {
	pool *pgxpool.Pool
}

// NewUnitRepository creates a new UnitRepository
func NewUnitRepository(pool *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{pool: pool}
}

// Create inserts a unit
func (r *UnitRepository) Create(ctx context.Context, unit *domain.Unit) (*domain.Unit, error) {
	area, err := decimalToPgNumeric(unit.Area)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO units (number, area, account_number)
		VALUES ($1, $2, $3)
		RETURNING `+unitColumns,
		unit.Number, area, unit.AccountNumber,
	)
	created, err := scanUnit(row)
	if isPgUniqueViolation(err) {
		return nil, domain.ErrAlreadyExists
	}
	return created, err
}

// GetByNumber retrieves a unit
func (r *UnitRepository) GetByNumber(ctx context.Context, number int32) (*domain.Unit, error) {
	return scanUnit(r.pool.QueryRow(ctx, `SELECT `+unitColumns+` FROM units WHERE number = $1`, number))
}

// List returns every unit ordered by number
func (r *UnitRepository) List(ctx context.Context) ([]*domain.Unit, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+unitColumns+` FROM units ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*domain.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// Update changes a unit's area and account number
func (r *UnitRepository) Update(ctx context.Context, number int32, area decimal.Decimal, accountNumber string) (*domain.Unit, error) {
	pgArea, err := decimalToPgNumeric(area)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE units SET area = $2, account_number = $3, updated_at = NOW()
		WHERE number = $1
		RETURNING `+unitColumns,
		number, pgArea, accountNumber,
	)
	return scanUnit(row)
}

// Delete removes a unit that nothing references
func (r *UnitRepository) Delete(ctx context.Context, number int32) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM units WHERE number = $1`, number)
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return domain.ErrReferentialConflict
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUnitNotFound
	}
	return nil
}

func scanUnit(row rowScanner) (*domain.Unit, error) {
	var (
		u    domain.Unit
		area pgtype.Numeric
	)
	if err := row.Scan(&u.Number, &area, &u.AccountNumber, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnitNotFound
		}
		return nil, err
	}
	u.Area = pgNumericToDecimal(area)
	return &u, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, auth0_id, email, name, phone, is_staff, is_active, unit_number, created_at, updated_at`

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uuidToPg(id))
	return scanUser(row)
}

// GetByAuth0ID retrieves a user by their Auth0 ID
func (r *UserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE auth0_id = $1`, auth0ID)
	return scanUser(row)
}

// CreateOrGetByAuth0ID inserts a user or refreshes the email of the existing one
func (r *UserRepository) CreateOrGetByAuth0ID(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (auth0_id, email, name, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (auth0_id) DO UPDATE SET email = EXCLUDED.email, updated_at = NOW()
		RETURNING `+userColumns,
		user.Auth0ID, user.Email, stringPtrToPgText(user.Name), user.IsActive,
	)
	return scanUser(row)
}

// List returns every user ordered by email
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY email, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateAccess applies an administrator's access change
func (r *UserRepository) UpdateAccess(ctx context.Context, id uuid.UUID, update domain.UserAccessUpdate) (*domain.User, error) {
	var active, staff pgtype.Bool
	if update.IsActive != nil {
		active = pgtype.Bool{Bool: *update.IsActive, Valid: true}
	}
	if update.IsStaff != nil {
		staff = pgtype.Bool{Bool: *update.IsStaff, Valid: true}
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			is_active = COALESCE($2, is_active),
			is_staff = COALESCE($3, is_staff),
			unit_number = CASE WHEN $4 THEN NULL ELSE COALESCE($5, unit_number) END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		uuidToPg(id), active, staff, update.ClearUnit, int32PtrToPgInt4(update.UnitNumber),
	)
	user, err := scanUser(row)
	if isPgForeignKeyViolation(err) {
		return nil, domain.ErrUnitNotFound
	}
	return user, err
}

// UpdateProfile sets a user's name and phone
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone *string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET name = $2, phone = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		uuidToPg(id), stringPtrToPgText(name), stringPtrToPgText(phone),
	)
	return scanUser(row)
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		id          pgtype.UUID
		name, phone pgtype.Text
		unit        pgtype.Int4
		u           domain.User
	)
	err := row.Scan(&id, &u.Auth0ID, &u.Email, &name, &phone, &u.IsStaff, &u.IsActive, &unit, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.ID = uuid.UUID(id.Bytes)
	u.Name = pgTextToStringPtr(name)
	u.Phone = pgTextToStringPtr(phone)
	u.UnitNumber = pgInt4ToInt32Ptr(unit)
	return &u, nil
}

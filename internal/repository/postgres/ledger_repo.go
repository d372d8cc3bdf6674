package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerColumns = `id, scope, unit_number, date, title, amount, type, balance, counterparty, description,
	tariff_period_id, settlement_run_id, mirrored_from_id, reading_id, created_at`

// LedgerRepository implements domain.LedgerRepository using PostgreSQL
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Append chains entry onto its scope inside one transaction. The advisory
// lock serializes appenders across processes even without the Redis locker.
func (r *LedgerRepository) Append(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created, err := appendInTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// AppendMirrored writes entry and its association copy in one transaction
func (r *LedgerRepository) AppendMirrored(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, *domain.LedgerEntry, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	created, err := appendInTx(ctx, tx, entry)
	if err != nil {
		return nil, nil, err
	}
	mirrored, err := appendInTx(ctx, tx, domain.MirrorOf(created))
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return created, mirrored, nil
}

func appendInTx(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, entry.ScopeKey()); err != nil {
		return nil, err
	}

	latest, err := scanLedgerEntry(tx.QueryRow(ctx, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		WHERE scope = $1 AND unit_number IS NOT DISTINCT FROM $2
		ORDER BY id DESC
		LIMIT 1`,
		string(entry.Scope), int32PtrToPgInt4(entry.UnitNumber),
	))
	if err != nil && !errors.Is(err, domain.ErrLedgerEntryNotFound) {
		return nil, err
	}

	balance := domain.ChainBalance(latest, entry.Amount)
	nums, err := decimalsToPgNumeric(entry.Amount, balance)
	if err != nil {
		return nil, err
	}

	created, err := scanLedgerEntry(tx.QueryRow(ctx, `
		INSERT INTO ledger_entries (scope, unit_number, date, title, amount, type, balance, counterparty,
			description, tariff_period_id, settlement_run_id, mirrored_from_id, reading_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+ledgerColumns,
		string(entry.Scope),
		int32PtrToPgInt4(entry.UnitNumber),
		timeToPgDate(entry.Date),
		entry.Title,
		nums[0],
		string(entry.Type),
		nums[1],
		stringPtrToPgText(entry.Counterparty),
		stringPtrToPgText(entry.Description),
		int32PtrToPgInt4(entry.TariffPeriodID),
		uuidPtrToPg(entry.SettlementRunID),
		int64PtrToPgInt8(entry.MirroredFromID),
		int64PtrToPgInt8(entry.ReadingID),
	))
	if err != nil {
		switch {
		case isPgForeignKeyViolation(err):
			return nil, domain.ErrReferentialConflict
		case isPgUniqueViolation(err):
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// HasReadingCharge reports whether a settlement entry exists for the reading
func (r *LedgerRepository) HasReadingCharge(ctx context.Context, unitNumber int32, readingID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM ledger_entries
			WHERE scope = 'unit' AND unit_number = $1 AND reading_id = $2
		)`, unitNumber, readingID).Scan(&exists)
	return exists, err
}

// GetByID retrieves a ledger entry
func (r *LedgerRepository) GetByID(ctx context.Context, id int64) (*domain.LedgerEntry, error) {
	return scanLedgerEntry(r.pool.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM ledger_entries WHERE id = $1`, id))
}

// GetLatest returns the newest entry of a scope or ErrLedgerEntryNotFound
func (r *LedgerRepository) GetLatest(ctx context.Context, scope domain.LedgerScope, unitNumber *int32) (*domain.LedgerEntry, error) {
	return scanLedgerEntry(r.pool.QueryRow(ctx, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		WHERE scope = $1 AND unit_number IS NOT DISTINCT FROM $2
		ORDER BY id DESC
		LIMIT 1`,
		string(scope), int32PtrToPgInt4(unitNumber),
	))
}

// List returns one page of entries matching filters, newest first
func (r *LedgerRepository) List(ctx context.Context, filters domain.LedgerFilters) (*domain.PaginatedLedgerEntries, error) {
	page, pageSize, offset := pageOffset(filters.Page, filters.PageSize)

	where := []string{"scope = $1"}
	args := []any{string(filters.Scope)}
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filters.UnitNumber != nil {
		add("unit_number = $%d", *filters.UnitNumber)
	}
	if filters.StartDate != nil {
		add("date >= $%d", timeToPgDate(*filters.StartDate))
	}
	if filters.EndDate != nil {
		add("date <= $%d", timeToPgDate(*filters.EndDate))
	}
	if filters.Type != nil {
		add("type = $%d", string(*filters.Type))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, err
	}

	args = append(args, pageSize, offset)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM ledger_entries
		WHERE %s
		ORDER BY id DESC
		LIMIT $%d OFFSET $%d`, ledgerColumns, cond, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, err
	}
	data, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []*domain.LedgerEntry{}
	}

	return &domain.PaginatedLedgerEntries{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// ListLatestPerUnit returns the head of every unit chain
func (r *LedgerRepository) ListLatestPerUnit(ctx context.Context) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (unit_number) `+ledgerColumns+`
		FROM ledger_entries
		WHERE scope = 'unit'
		ORDER BY unit_number, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectLedgerEntries(rows)
}

// ListScope returns a whole chain, oldest first
func (r *LedgerRepository) ListScope(ctx context.Context, scope domain.LedgerScope, unitNumber *int32) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		WHERE scope = $1 AND unit_number IS NOT DISTINCT FROM $2
		ORDER BY id`,
		string(scope), int32PtrToPgInt4(unitNumber),
	)
	if err != nil {
		return nil, err
	}
	return collectLedgerEntries(rows)
}

func collectLedgerEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	defer rows.Close()
	var out []*domain.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanLedgerEntry(row rowScanner) (*domain.LedgerEntry, error) {
	var (
		e                         domain.LedgerEntry
		scope, txType             string
		unit, tariffID            pgtype.Int4
		date                      pgtype.Date
		amount, balance           pgtype.Numeric
		counterparty, description pgtype.Text
		runID                     pgtype.UUID
		mirrored, readingID       pgtype.Int8
	)
	err := row.Scan(
		&e.ID, &scope, &unit, &date, &e.Title, &amount, &txType, &balance,
		&counterparty, &description, &tariffID, &runID, &mirrored, &readingID, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerEntryNotFound
		}
		return nil, err
	}
	e.Scope = domain.LedgerScope(scope)
	e.Type = domain.TransactionType(txType)
	e.UnitNumber = pgInt4ToInt32Ptr(unit)
	e.Date = pgDateToTime(date)
	e.Amount = pgNumericToDecimal(amount)
	e.Balance = pgNumericToDecimal(balance)
	e.Counterparty = pgTextToStringPtr(counterparty)
	e.Description = pgTextToStringPtr(description)
	e.TariffPeriodID = pgInt4ToInt32Ptr(tariffID)
	e.SettlementRunID = pgUUIDToPtr(runID)
	e.MirroredFromID = pgInt8ToInt64Ptr(mirrored)
	e.ReadingID = pgInt8ToInt64Ptr(readingID)
	return &e, nil
}

package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1320.00", "-505.25", "0.0001", "123456789.99"} {
		d := decimal.RequireFromString(s)
		n, err := decimalToPgNumeric(d)
		require.NoError(t, err)
		assert.True(t, d.Equal(pgNumericToDecimal(n)), s)
	}
}

func TestPgNumericToDecimal_Null(t *testing.T) {
	assert.True(t, pgNumericToDecimal(pgtype.Numeric{}).IsZero())
}

func TestTimeToPgDate_TruncatesToUTCMidnight(t *testing.T) {
	warsaw := time.FixedZone("CET", 3600)
	d := timeToPgDate(time.Date(2024, 3, 15, 23, 30, 0, 0, warsaw))

	assert.True(t, d.Valid)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d.Time)
	assert.True(t, pgDateToTime(pgtype.Date{}).IsZero())
}

func TestNullableConversions(t *testing.T) {
	assert.False(t, int32PtrToPgInt4(nil).Valid)
	assert.Nil(t, pgInt4ToInt32Ptr(pgtype.Int4{}))
	n := int32(15)
	assert.Equal(t, &n, pgInt4ToInt32Ptr(int32PtrToPgInt4(&n)))

	year := 2024
	assert.Equal(t, pgtype.Int4{Int32: 2024, Valid: true}, intPtrToPgInt4(&year))

	id := int64(42)
	assert.Equal(t, &id, pgInt8ToInt64Ptr(int64PtrToPgInt8(&id)))
	assert.Nil(t, pgInt8ToInt64Ptr(int64PtrToPgInt8(nil)))

	s := "bank"
	assert.Equal(t, &s, pgTextToStringPtr(stringPtrToPgText(&s)))
	assert.Nil(t, pgTextToStringPtr(stringPtrToPgText(nil)))

	run := uuid.New()
	assert.Equal(t, &run, pgUUIDToPtr(uuidPtrToPg(&run)))
	assert.Nil(t, pgUUIDToPtr(uuidPtrToPg(nil)))
}

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isPgUniqueViolation(unique))
	assert.False(t, isPgForeignKeyViolation(unique))
	assert.True(t, isPgForeignKeyViolation(fk))
	assert.False(t, isPgUniqueViolation(errors.New("boom")))
	assert.False(t, isPgForeignKeyViolation(nil))
}

func TestPaging(t *testing.T) {
	page, size, offset := pageOffset(0, 0)
	assert.Equal(t, int32(1), page)
	assert.Equal(t, int32(20), size)
	assert.Equal(t, int32(0), offset)

	_, _, offset = pageOffset(3, 25)
	assert.Equal(t, int32(50), offset)

	assert.Equal(t, int32(0), totalPages(0, 20))
	assert.Equal(t, int32(3), totalPages(41, 20))
	assert.Equal(t, int32(0), totalPages(10, 0))
}

package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type memoryArchive struct {
	objects map[string][]byte
	failURL bool
}

func (m *memoryArchive) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	m.objects[objectPath] = data
	return objectPath, nil
}

func (m *memoryArchive) Delete(ctx context.Context, objectPath string) error {
	delete(m.objects, objectPath)
	return nil
}

func (m *memoryArchive) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	if m.failURL {
		return "", errors.New("presign failed")
	}
	return "https://reports.example/" + objectPath, nil
}

func newReportFixture(t *testing.T) (*fixture, *ReportService, *memoryArchive) {
	t.Helper()
	f := newFixture()
	f.seedUnit15()
	f.addReading(15, date(2024, 1, 1), 90, 45)
	f.addReading(15, date(2024, 2, 1), 100, 50)
	f.addReading(15, date(2024, 3, 1), 140, 70)
	_, err := f.ledgerSvc.Append(context.Background(), unitEntry(15, "250.50"))
	require.NoError(t, err)

	archive := &memoryArchive{objects: make(map[string][]byte)}
	svc := NewReportService(f.fee, f.ledgerSvc, f.units, report.NewPDFRenderer("Residents Association", nil), archive, time.Hour)
	svc.now = func() time.Time { return time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC) }
	return f, svc, archive
}

func TestReportService_Summary(t *testing.T) {
	_, svc, _ := newReportFixture(t)

	s, err := svc.Summary(context.Background(), 15, 2024, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, "PL15", s.AccountNumber)
	require.Len(t, s.Breakdowns, 2)
	assert.Equal(t, "250.50", s.Balance.StringFixed(2))
	assert.True(t, s.Total.Equal(s.Breakdowns[0].Total.Add(s.Breakdowns[1].Total)))

	s, err = svc.Summary(context.Background(), 15, 2024, 3, 3)
	require.NoError(t, err)
	require.Len(t, s.Breakdowns, 1)
	assert.Equal(t, "1320.00", s.Total.StringFixed(2))

	s, err = svc.Summary(context.Background(), 15, 2023, 1, 12)
	require.NoError(t, err)
	assert.NotNil(t, s.Breakdowns)
	assert.Empty(t, s.Breakdowns)
	assert.True(t, s.Total.IsZero())
}

func TestReportService_SummaryPDF(t *testing.T) {
	_, svc, _ := newReportFixture(t)

	out, err := svc.SummaryPDF(context.Background(), 15, 2024, 1, 12)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = svc.SummaryPDF(context.Background(), 99, 2024, 1, 12)
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)
}

func TestReportService_SummaryXLSX(t *testing.T) {
	_, svc, _ := newReportFixture(t)

	out, err := svc.SummaryXLSX(context.Background(), 15, 2024, 1, 12)
	require.NoError(t, err)
	wb, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer wb.Close()
	v, err := wb.GetCellValue("summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Unit 15", v)
}

func TestReportService_LedgerXLSX(t *testing.T) {
	ctx := context.Background()
	_, svc, _ := newReportFixture(t)

	_, err := svc.LedgerXLSX(ctx, domain.ScopeUnit, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	out, err := svc.LedgerXLSX(ctx, domain.ScopeUnit, int32Ptr(15))
	require.NoError(t, err)
	wb, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("ledger")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Unit 15 ledger", rows[0][0])

	_, err = svc.LedgerXLSX(ctx, domain.ScopeAssociation, nil)
	require.NoError(t, err)
}

func TestReportService_ArchiveSummaryPDF(t *testing.T) {
	ctx := context.Background()
	_, svc, archive := newReportFixture(t)

	archived, err := svc.ArchiveSummaryPDF(ctx, 15, 2024, 1, 12)
	require.NoError(t, err)
	assert.Contains(t, archived.ObjectPath, "reports/unit-15/2024/")
	assert.Equal(t, "https://reports.example/"+archived.ObjectPath, archived.URL)
	assert.Equal(t, time.Date(2024, 12, 31, 13, 0, 0, 0, time.UTC), archived.ExpiresAt)
	assert.True(t, bytes.HasPrefix(archive.objects[archived.ObjectPath], []byte("%PDF")))

	archive.failURL = true
	_, err = svc.ArchiveSummaryPDF(ctx, 15, 2024, 1, 12)
	assert.Error(t, err)
}

func TestReportService_ArchiveDisabled(t *testing.T) {
	f := newFixture()
	f.seedUnit15()
	svc := NewReportService(f.fee, f.ledgerSvc, f.units, report.NewPDFRenderer("A", nil), nil, time.Hour)

	_, err := svc.ArchiveSummaryPDF(context.Background(), 15, 2024, 1, 12)
	assert.ErrorIs(t, err, domain.ErrArchiveDisabled)
}

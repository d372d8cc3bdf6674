package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/metrics"
	"github.com/dafibh/condo/condo-backend/internal/report"
	"github.com/dafibh/condo/condo-backend/internal/repository/storage"
	"github.com/rs/zerolog/log"
)

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"

	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ArchivedReport points at a stored PDF
type ArchivedReport struct {
	ObjectPath string    `json:"objectPath"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ReportService builds yearly summaries and ledger exports
type ReportService struct {
	feeService    *FeeService
	ledgerService *LedgerService
	unitRepo      domain.UnitRepository
	pdf           *report.PDFRenderer
	archive       storage.ReportStorage
	presignExpiry time.Duration
	now           func() time.Time
}

// NewReportService creates a new ReportService. archive may be nil, in which
// case ArchiveSummaryPDF returns ErrArchiveDisabled.
func NewReportService(
	feeService *FeeService,
	ledgerService *LedgerService,
	unitRepo domain.UnitRepository,
	pdf *report.PDFRenderer,
	archive storage.ReportStorage,
	presignExpiry time.Duration,
) *ReportService {
	return &ReportService{
		feeService:    feeService,
		ledgerService: ledgerService,
		unitRepo:      unitRepo,
		pdf:           pdf,
		archive:       archive,
		presignExpiry: presignExpiry,
		now:           time.Now,
	}
}

// Summary computes a unit's fees for months [fromMonth, toMonth] of year and
// attaches its current balance
func (s *ReportService) Summary(ctx context.Context, unitNumber int32, year, fromMonth, toMonth int) (*report.Summary, error) {
	unit, err := s.unitRepo.GetByNumber(ctx, unitNumber)
	if err != nil {
		return nil, err
	}
	breakdowns, err := s.feeService.CalculateYear(ctx, unitNumber, year, fromMonth, toMonth)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledgerService.Balance(ctx, domain.ScopeUnit, &unitNumber)
	if err != nil {
		return nil, err
	}
	if breakdowns == nil {
		breakdowns = []*domain.FeeBreakdown{}
	}
	return &report.Summary{
		UnitNumber:    unit.Number,
		AccountNumber: unit.AccountNumber,
		Year:          year,
		FromMonth:     fromMonth,
		ToMonth:       toMonth,
		Breakdowns:    breakdowns,
		Total:         report.SumTotals(breakdowns),
		Balance:       balance,
		GeneratedAt:   s.now(),
	}, nil
}

// SummaryPDF renders the summary as a PDF
func (s *ReportService) SummaryPDF(ctx context.Context, unitNumber int32, year, fromMonth, toMonth int) ([]byte, error) {
	summary, err := s.Summary(ctx, unitNumber, year, fromMonth, toMonth)
	if err != nil {
		return nil, err
	}
	return s.render(FormatPDF, func() ([]byte, error) { return s.pdf.RenderSummary(summary) })
}

// SummaryXLSX renders the summary as a workbook
func (s *ReportService) SummaryXLSX(ctx context.Context, unitNumber int32, year, fromMonth, toMonth int) ([]byte, error) {
	summary, err := s.Summary(ctx, unitNumber, year, fromMonth, toMonth)
	if err != nil {
		return nil, err
	}
	return s.render(FormatXLSX, func() ([]byte, error) { return report.RenderSummaryXLSX(summary) })
}

// LedgerXLSX exports a whole ledger scope, oldest first
func (s *ReportService) LedgerXLSX(ctx context.Context, scope domain.LedgerScope, unitNumber *int32) ([]byte, error) {
	title := "Association ledger"
	if scope == domain.ScopeUnit {
		if unitNumber == nil {
			return nil, domain.NewValidationError("unitNumber", "unit number is required for a unit ledger")
		}
		if _, err := s.unitRepo.GetByNumber(ctx, *unitNumber); err != nil {
			return nil, err
		}
		title = fmt.Sprintf("Unit %d ledger", *unitNumber)
	}
	entries, err := s.ledgerService.Entries(ctx, scope, unitNumber)
	if err != nil {
		return nil, err
	}
	return s.render(FormatXLSX, func() ([]byte, error) { return report.RenderLedgerXLSX(title, entries) })
}

// ArchiveSummaryPDF renders the summary PDF, stores it and returns a temporary link
func (s *ReportService) ArchiveSummaryPDF(ctx context.Context, unitNumber int32, year, fromMonth, toMonth int) (*ArchivedReport, error) {
	if s.archive == nil {
		return nil, domain.ErrArchiveDisabled
	}
	data, err := s.SummaryPDF(ctx, unitNumber, year, fromMonth, toMonth)
	if err != nil {
		return nil, err
	}

	objectPath, err := s.archive.Upload(ctx, storage.ReportObjectPath(unitNumber, year, ".pdf"), data, ContentTypePDF)
	if err != nil {
		return nil, err
	}
	url, err := s.archive.GeneratePresignedURL(ctx, objectPath, s.presignExpiry)
	if err != nil {
		return nil, err
	}

	log.Info().Int32("unit", unitNumber).Int("year", year).Str("object", objectPath).Msg("Summary archived")
	return &ArchivedReport{
		ObjectPath: objectPath,
		URL:        url,
		ExpiresAt:  s.now().Add(s.presignExpiry),
	}, nil
}

func (s *ReportService) render(format string, fn func() ([]byte, error)) ([]byte, error) {
	start := time.Now()
	out, err := fn()
	metrics.ObserveReportRender(format, metrics.Result(err), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return out, nil
}

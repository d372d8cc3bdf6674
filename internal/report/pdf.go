package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const logoImageName = "association-logo"

// PDFRenderer draws summaries on landscape A4 pages
type PDFRenderer struct {
	association string
	logo        []byte
}

// NewPDFRenderer creates a renderer. logo is optional PNG data, usually
// produced by PrepareLogo.
func NewPDFRenderer(association string, logo []byte) *PDFRenderer {
	return &PDFRenderer{association: association, logo: logo}
}

// RenderSummary renders a fee summary. The table header repeats on every page.
func (r *PDFRenderer) RenderSummary(s *Summary) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")

	if len(r.logo) > 0 {
		pdf.RegisterImageOptionsReader(logoImageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(r.logo))
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("register logo: %w", err)
		}
	}

	tableHeader := func() {
		pdf.SetFont("Arial", "B", 8)
		for _, c := range summaryColumns {
			pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}

	pdf.SetHeaderFunc(func() {
		if len(r.logo) > 0 {
			pdf.ImageOptions(logoImageName, 10, 8, 0, 14, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		}
		pdf.SetFont("Arial", "B", 14)
		pdf.SetXY(10, 10)
		pdf.CellFormat(0, 8, r.association, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Unit %d - fee summary %d, months %d-%d", s.UnitNumber, s.Year, s.FromMonth, s.ToMonth), "", 1, "C", false, 0, "")
		pdf.Ln(6)
		tableHeader()
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s - page %d/{nb}", s.GeneratedAt.Format("2006-01-02 15:04"), pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	if len(s.Breakdowns) == 0 {
		pdf.CellFormat(0, 8, "No billable readings in this period.", "", 1, "L", false, 0, "")
	}
	for _, b := range s.Breakdowns {
		for i, c := range summaryColumns {
			align := "R"
			if i == 0 {
				align = "C"
			}
			pdf.CellFormat(c.width, 6, c.value(b), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total charged: %s", money(s.Total)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Current balance: %s", money(s.Balance)), "", 1, "L", false, 0, "")
	if s.AccountNumber != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, fmt.Sprintf("Payments to account: %s", s.AccountNumber), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderSummaryPDF renders s with a one-off renderer
func RenderSummaryPDF(association string, logo []byte, s *Summary) ([]byte, error) {
	return NewPDFRenderer(association, logo).RenderSummary(s)
}

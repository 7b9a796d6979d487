package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hungerscrm/internal/models"
	"hungerscrm/internal/pdf"
)

// CSVHeader is fixed; downstream spreadsheets key on these columns.
const CSVHeader = "ID,Empresa,Contacto,Email,Telefono,Pais,Vendedor,USD,Estado"

// ExportService renders the currently filtered collection as CSV or a
// PDF pipeline report. Filters are the same ones the board uses.
type ExportService struct {
	Deals  *DealService
	PDFGen *pdf.ReportGenerator
}

func NewExportService(deals *DealService, pdfGen *pdf.ReportGenerator) *ExportService {
	return &ExportService{Deals: deals, PDFGen: pdfGen}
}

// CSV returns the export body and its date-stamped filename. Every
// field is double-quoted except the numeric USD value.
func (s *ExportService) CSV(f Filter) (string, string, error) {
	deals, err := s.Deals.List()
	if err != nil {
		return "", "", err
	}
	filtered := FilterDeals(deals, f)

	var b strings.Builder
	b.WriteString(CSVHeader + "\n")
	for i, d := range filtered {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf(`"%s","%s","%s","%s","%s","%s","%s",%s,"%s"`,
			d.ID, d.Organization, d.ContactName, d.Email, d.Phone,
			d.Country, models.SellerName(d.SellerID),
			strconv.FormatFloat(d.Value, 'f', -1, 64), d.Status))
	}

	filename := fmt.Sprintf("HungersCRM_Export_%s.csv", time.Now().Format("2006-01-02"))
	return b.String(), filename, nil
}

// PDF renders the filtered pipeline report.
func (s *ExportService) PDF(f Filter) ([]byte, string, error) {
	deals, err := s.Deals.List()
	if err != nil {
		return nil, "", err
	}
	filtered := FilterDeals(deals, f)

	rows := make([]pdf.ReportRow, 0, len(filtered))
	var total float64
	for _, d := range filtered {
		rows = append(rows, pdf.ReportRow{
			Organization: d.Organization,
			Contact:      d.ContactName,
			Country:      string(d.Country),
			Seller:       models.SellerName(d.SellerID),
			ValueUSD:     d.Value,
			Status:       string(d.Status),
		})
		total += d.Value
	}

	out, err := s.PDFGen.GeneratePipelineReport(pdf.ReportData{
		GeneratedAt: time.Now(),
		Rows:        rows,
		TotalUSD:    total,
	})
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("HungersCRM_Report_%s.pdf", time.Now().Format("2006-01-02"))
	return out, filename, nil
}

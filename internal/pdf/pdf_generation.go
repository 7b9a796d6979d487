package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator is an interface so handlers can be tested with a stub.
type Generator interface {
	GeneratePipelineReport(data ReportData) ([]byte, error)
}

type ReportRow struct {
	Organization string
	Contact      string
	Country      string
	Seller       string
	ValueUSD     float64
	Status       string
}

type ReportData struct {
	GeneratedAt time.Time
	Rows        []ReportRow
	TotalUSD    float64
}

// ReportGenerator renders the filtered pipeline as an A4 table.
type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

func (g *ReportGenerator) GeneratePipelineReport(data ReportData) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Hungers CRM — Reporte de Pipeline", true)
	doc.SetAuthor("Hungers CRM", false)
	doc.SetMargins(15, 15, 15)
	doc.SetAutoPageBreak(true, 15)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, tr("REPORTE DE PIPELINE"), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	sub := fmt.Sprintf("Generado: %s", data.GeneratedAt.Format("02.01.2006 15:04"))
	doc.CellFormat(0, 6, sub, "", 1, "C", false, 0, "")
	g.hr(doc)

	// Table header
	widths := []float64{42, 34, 22, 32, 24, 26}
	headers := []string{"Empresa", "Contacto", "País", "Vendedor", "USD", "Estado"}
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(235, 235, 235)
	for i, h := range headers {
		doc.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	for _, row := range data.Rows {
		cells := []string{
			row.Organization, row.Contact, row.Country, row.Seller,
			fmt.Sprintf("%.0f", row.ValueUSD), row.Status,
		}
		for i, cell := range cells {
			doc.CellFormat(widths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 8, fmt.Sprintf("Valor total del pipeline: $%.0f USD", data.TotalUSD), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pipeline report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) hr(doc *gofpdf.Fpdf) {
	y := doc.GetY() + 1.5
	doc.SetLineWidth(0.2)
	doc.Line(15, y, 195, y)
	doc.SetY(y + 3)
}

package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"stitch-backend/internal/pricing"
	"stitch-backend/internal/repositories"
	"stitch-backend/internal/timeutil"
)

type ReportService struct {
	QuoteRepo *repositories.QuoteRepository
}

func NewReportService(quoteRepo *repositories.QuoteRepository) *ReportService {
	return &ReportService{QuoteRepo: quoteRepo}
}

// QuotePDF renders a quote as a printable PDF for sending to the buyer.
func (s *ReportService) QuotePDF(ctx context.Context, quoteID int) ([]byte, error) {
	quote, err := s.QuoteRepo.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Manufacturing Quote")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Quote %s  |  Generated %s", quote.QuoteNumber, timeutil.Now().Format("02 Jan 2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Prepared for")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, quote.ContactName)
	pdf.Ln(5)
	if quote.Company != "" {
		pdf.Cell(0, 6, quote.Company)
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, quote.ContactEmail)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Order Details")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Product", quote.ProductType},
		{"Quantity", fmt.Sprintf("%d units", quote.Quantity)},
	}
	if quote.Fabric != "" {
		rows = append(rows, [2]string{"Fabric", quote.Fabric})
	}
	if len(quote.Customizations) > 0 {
		rows = append(rows, [2]string{"Customizations", strings.Join(quote.Customizations, ", ")})
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(45, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Pricing")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 11)
	priceRows := [][2]string{
		{"Base unit price", pricing.FormatUnit(quote.BaseUnitPrice)},
		{"Complexity factor", fmt.Sprintf("x %.2f", quote.ComplexityFactor)},
		{"Volume discount", fmt.Sprintf("x %.2f", quote.VolumeDiscount)},
		{"Final unit price", pricing.FormatUnit(quote.FinalUnitPrice)},
	}
	for _, row := range priceRows {
		pdf.CellFormat(60, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(60, 9, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, pricing.FormatUnit(quote.TotalPrice), "T", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Estimated delivery: %d days from order confirmation", quote.EstimatedDeliveryDays))
	pdf.Ln(10)

	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, "This quote is valid for 30 days. Pricing assumes the stated quantity and specifications; changes will be re-quoted.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

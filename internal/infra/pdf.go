package infra

// pdf.go — receipt PDF generation using go-pdf/fpdf.
// Generates A7-size thermal receipt-style documents with:
//   - Store name header
//   - Sale number and timestamp
//   - Item table (product name, quantity, line total)
//   - Discount line (if applicable)
//   - Bold total and tax line
//   - Payment breakdown with change
//
// The output file is saved to storagePath/receipt_{sale_number}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReceiptPDF renders the customer receipt for a completed sale.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateReceiptPDF(sale *model.Sale, storeName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%s.pdf", sale.SaleNumber)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper (custom size, "A7" is not in fpdf's named list)
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, storeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Sales Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Sale info ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, sale.SaleNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // line total

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Total", "B", 1, "R", false, 0, "")

	// ── Item rows ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		// Truncate long names
		if len(name) > 22 {
			name = name[:21] + "…"
		}
		// Weighable goods carry fractional quantities
		qty := "x" + item.Quantity.String()
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, qty, "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+item.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, "$"+sale.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !sale.DiscountAmount.IsZero() {
		pdf.CellFormat(col1+col2, 4, "Discount:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "-$"+sale.DiscountAmount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(col1+col2, 4, "Tax:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, "$"+sale.TaxAmount.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+sale.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Payments ──────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	for _, p := range sale.Payments {
		method := "Payment"
		if p.PaymentMethod != nil {
			method = p.PaymentMethod.Name
		}
		pdf.CellFormat(col1+col2, 4, method+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+p.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	if sale.ChangeAmount.IsPositive() {
		pdf.CellFormat(col1+col2, 4, "Change:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+sale.ChangeAmount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for your purchase!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/infra"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/repository"

	"github.com/google/uuid"
)

// ReceiptWorker emails a PDF receipt for a completed sale, with a plain-text
// rendering in the body for clients that strip attachments. Sends go through
// a circuit breaker so a dead SMTP relay fast-fails into the retry path
// instead of hanging every worker goroutine.
type ReceiptWorker struct {
	saleRepo  repository.SaleRepository
	mailer    *infra.Mailer
	cb        *infra.CircuitBreaker
	storeName string
	pdfDir    string
}

func NewReceiptWorker(saleRepo repository.SaleRepository, mailer *infra.Mailer, cb *infra.CircuitBreaker, storeName, pdfDir string) *ReceiptWorker {
	return &ReceiptWorker{saleRepo: saleRepo, mailer: mailer, cb: cb, storeName: storeName, pdfDir: pdfDir}
}

func (w *ReceiptWorker) Handle(ctx context.Context, payload json.RawMessage) error {
	var job ReceiptJobPayload
	if err := json.Unmarshal(payload, &job); err != nil {
		return fmt.Errorf("receipt: bad payload: %w", err)
	}

	saleID, err := uuid.Parse(job.SaleID)
	if err != nil {
		return fmt.Errorf("receipt: bad sale id: %w", err)
	}

	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return fmt.Errorf("receipt: load sale %s: %w", job.SaleID, err)
	}

	subject := fmt.Sprintf("%s — Receipt %s", w.storeName, sale.SaleNumber)
	body := w.render(sale)

	pdfPath, err := infra.GenerateReceiptPDF(sale, w.storeName, w.pdfDir)
	if err != nil {
		return fmt.Errorf("receipt: generate pdf for %s: %w", sale.SaleNumber, err)
	}

	return w.cb.Execute(func() error {
		return w.mailer.SendReceipt(job.ToEmail, subject, body, pdfPath)
	})
}

func (w *ReceiptWorker) render(sale *model.Sale) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", w.storeName)
	fmt.Fprintf(&b, "Receipt %s\n", sale.SaleNumber)
	fmt.Fprintf(&b, "%s\n\n", sale.CreatedAt.Format("2006-01-02 15:04"))

	for _, item := range sale.Items {
		name := "item"
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(&b, "%-30s %8s x %-10s %10s\n",
			name, item.Quantity.String(), item.UnitPrice.StringFixed(2), item.Total.StringFixed(2))
	}

	fmt.Fprintf(&b, "\n%-30s %10s\n", "Subtotal", sale.Subtotal.StringFixed(2))
	if sale.DiscountAmount.IsPositive() {
		fmt.Fprintf(&b, "%-30s %10s\n", "Discount", sale.DiscountAmount.Neg().StringFixed(2))
	}
	fmt.Fprintf(&b, "%-30s %10s\n", "Tax", sale.TaxAmount.StringFixed(2))
	fmt.Fprintf(&b, "%-30s %10s\n", "TOTAL", sale.TotalAmount.StringFixed(2))

	for _, p := range sale.Payments {
		method := "payment"
		if p.PaymentMethod != nil {
			method = p.PaymentMethod.Name
		}
		fmt.Fprintf(&b, "%-30s %10s\n", method, p.Amount.StringFixed(2))
	}
	if sale.ChangeAmount.IsPositive() {
		fmt.Fprintf(&b, "%-30s %10s\n", "Change", sale.ChangeAmount.StringFixed(2))
	}

	b.WriteString("\nThank you for your purchase.\n")
	return b.String()
}

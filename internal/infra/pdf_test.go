package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func receiptSale() *model.Sale {
	return &model.Sale{
		ID:             uuid.New(),
		SaleNumber:     "S-000042",
		Subtotal:       d("300.00"),
		DiscountAmount: d("30.00"),
		TaxAmount:      d("56.70"),
		TotalAmount:    d("326.70"),
		PaidAmount:     d("330.00"),
		ChangeAmount:   d("3.30"),
		Status:         model.SaleStatusCompleted,
		CreatedAt:      time.Date(2026, 3, 14, 15, 4, 0, 0, time.UTC),
		Items: []model.SaleItem{
			{
				Quantity:  d("3"),
				UnitPrice: d("100.00"),
				Total:     d("326.70"),
				Product:   &model.Product{Name: "Widget"},
			},
			{
				Quantity:  d("0.350"),
				UnitPrice: d("4.50"),
				Total:     d("1.58"),
				Product:   &model.Product{Name: "Sourdough Bread With A Very Long Name"},
			},
		},
		Payments: []model.SalePayment{
			{Amount: d("330.00"), PaymentMethod: &model.PaymentMethod{Name: "Cash"}},
		},
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	dir := t.TempDir()

	path, err := GenerateReceiptPDF(receiptSale(), "Test Store", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "receipt_S-000042.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Greater(t, len(data), 500, "receipt PDF should not be empty")
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateReceiptPDF_CreatesStorageDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "receipts")

	path, err := GenerateReceiptPDF(receiptSale(), "Test Store", dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

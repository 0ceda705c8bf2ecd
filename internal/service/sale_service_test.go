package service

import (
	"context"
	"testing"
	"time"

	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/dto"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/model"
	"github.com/kalytamykhailo18-cyber/Multi-Branch-ERP-POS-System/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type saleFixture struct {
	svc       SaleService
	sales     *memSaleRepo
	sessions  *memSessionRepo
	products  *memProductRepo
	customers *memCustomerRepo
	methods   *memMethodRepo

	session *model.RegisterSession
	cash    *model.PaymentMethod
	card    *model.PaymentMethod
	product *model.Product
	cashier uuid.UUID
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()

	methods := newMemMethodRepo()
	f := &saleFixture{
		sales:     newMemSaleRepo(methods),
		sessions:  newMemSessionRepo(),
		products:  newMemProductRepo(),
		customers: newMemCustomerRepo(),
		methods:   methods,
		cashier:   uuid.New(),
	}
	f.svc = NewSaleService(f.sales, f.sessions, f.products, f.customers, f.methods, nil)

	f.session = &model.RegisterSession{
		ID:            uuid.New(),
		RegisterID:    uuid.New(),
		BranchID:      uuid.New(),
		CashierID:     f.cashier,
		ShiftType:     model.ShiftFullDay,
		OpeningAmount: d("100.00"),
		Status:        model.SessionStatusOpen,
		OpenedAt:      time.Now(),
	}
	f.sessions.sessions[f.session.ID] = f.session

	f.cash = f.methods.add(&model.PaymentMethod{Name: "Cash", Code: "CASH", Type: model.MethodTypeCash, Active: true})
	f.card = f.methods.add(&model.PaymentMethod{Name: "Card", Code: "CARD", Type: model.MethodTypeCard, RequiresReference: true, Active: true})

	f.product = f.products.add(&model.Product{
		Name:          "Widget",
		SKU:           "W-1",
		SellingPrice:  d("100.00"),
		TaxRate:       d("21"),
		IsTaxIncluded: false,
		StockQuantity: d("50"),
		Active:        true,
	})
	return f
}

func (f *saleFixture) saleRequest() dto.CompleteSaleRequest {
	return dto.CompleteSaleRequest{
		SessionID: f.session.ID.String(),
		Items: []dto.SaleItemRequest{
			{ProductID: f.product.ID.String(), Quantity: d("3"), DiscountPercent: d("10")},
		},
		Payments: []dto.SalePaymentRequest{
			{PaymentMethodID: f.cash.ID.String(), Amount: d("330.00")},
		},
	}
}

func TestCompleteSale_HappyPath(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.svc.CompleteSale(context.Background(), f.cashier, f.saleRequest())
	require.NoError(t, err)

	// 100.00 × 3 with 10% discount and 21% exclusive tax
	assert.Equal(t, "300", resp.Subtotal.String())
	assert.Equal(t, "30", resp.DiscountAmount.String())
	assert.Equal(t, "56.7", resp.TaxAmount.String())
	assert.Equal(t, "326.7", resp.TotalAmount.String())
	assert.Equal(t, "330", resp.PaidAmount.String())
	assert.Equal(t, "3.3", resp.ChangeAmount.String())
	assert.Equal(t, model.SaleStatusCompleted, resp.Status)
	assert.Equal(t, "S-000001", resp.SaleNumber)

	// Stock decremented by the sold quantity.
	assert.Equal(t, "47", f.product.StockQuantity.String())
}

func TestCompleteSale_EmptyCart(t *testing.T) {
	f := newSaleFixture(t)
	req := f.saleRequest()
	req.Items = nil

	_, err := f.svc.CompleteSale(context.Background(), f.cashier, req)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.sales.sales)
}

func TestCompleteSale_SessionNotOpen(t *testing.T) {
	f := newSaleFixture(t)
	f.session.Status = model.SessionStatusClosed

	_, err := f.svc.CompleteSale(context.Background(), f.cashier, f.saleRequest())
	assert.ErrorIs(t, err, ErrSessionNotOpen)
	assert.Empty(t, f.sales.sales)
	// No partial effects: stock untouched.
	assert.Equal(t, "50", f.product.StockQuantity.String())
}

func TestCompleteSale_InsufficientPayment(t *testing.T) {
	f := newSaleFixture(t)
	req := f.saleRequest()
	req.Payments = []dto.SalePaymentRequest{
		{PaymentMethodID: f.cash.ID.String(), Amount: d("300.00")},
	}

	_, err := f.svc.CompleteSale(context.Background(), f.cashier, req)
	assert.ErrorIs(t, err, ErrInsufficientPayment)
	assert.Empty(t, f.sales.sales)
}

func TestCompleteSale_ReferenceRequired(t *testing.T) {
	f := newSaleFixture(t)
	req := f.saleRequest()
	req.Payments = []dto.SalePaymentRequest{
		{PaymentMethodID: f.card.ID.String(), Amount: d("326.70")},
	}

	_, err := f.svc.CompleteSale(context.Background(), f.cashier, req)
	require.Error(t, err)
	assert.Empty(t, f.sales.sales)
}

func TestCompleteSale_InactiveProduct(t *testing.T) {
	f := newSaleFixture(t)
	f.product.Active = false

	_, err := f.svc.CompleteSale(context.Background(), f.cashier, f.saleRequest())
	assert.ErrorIs(t, err, ErrProductInactive)
}

func TestCompleteSale_WholesaleCustomerDiscount(t *testing.T) {
	f := newSaleFixture(t)
	customer := f.customers.add(&model.Customer{
		CustomerCode:             "C-1",
		IsWholesale:              true,
		WholesaleDiscountPercent: d("5"),
		Active:                   true,
	})

	req := f.saleRequest()
	id := customer.ID.String()
	req.CustomerID = &id
	req.Payments = []dto.SalePaymentRequest{
		{PaymentMethodID: f.cash.ID.String(), Amount: d("400.00")},
	}

	resp, err := f.svc.CompleteSale(context.Background(), f.cashier, req)
	require.NoError(t, err)

	// Discount: 10% line (30) + 5% wholesale on subtotal (15) = 45
	assert.Equal(t, "45", resp.DiscountAmount.String())
	assert.Equal(t, "311.7", resp.TotalAmount.String()) // 300 − 45 + 56.70
}

func TestCompleteSale_SplitTender(t *testing.T) {
	f := newSaleFixture(t)
	ref := "AUTH-1"
	req := f.saleRequest()
	req.Payments = []dto.SalePaymentRequest{
		{PaymentMethodID: f.card.ID.String(), Amount: d("200.00"), ReferenceNumber: &ref},
		{PaymentMethodID: f.cash.ID.String(), Amount: d("126.70")},
	}

	resp, err := f.svc.CompleteSale(context.Background(), f.cashier, req)
	require.NoError(t, err)
	assert.Len(t, resp.Payments, 2)
	assert.Equal(t, "0", resp.ChangeAmount.String())
}

func TestCompleteSale_SaleNumbersIncrement(t *testing.T) {
	f := newSaleFixture(t)

	first, err := f.svc.CompleteSale(context.Background(), f.cashier, f.saleRequest())
	require.NoError(t, err)
	second, err := f.svc.CompleteSale(context.Background(), f.cashier, f.saleRequest())
	require.NoError(t, err)

	assert.Equal(t, "S-000001", first.SaleNumber)
	assert.Equal(t, "S-000002", second.SaleNumber)
}

func TestVoidSale_RestoresStockAndAudits(t *testing.T) {
	f := newSaleFixture(t)
	resp, err := f.svc.CompleteSale(context.Background(), f.cashier, f.saleRequest())
	require.NoError(t, err)
	assert.Equal(t, "47", f.product.StockQuantity.String())

	supervisor := uuid.New()
	voided, err := f.svc.VoidSale(context.Background(), uuid.MustParse(resp.ID), "wrong items scanned", supervisor)
	require.NoError(t, err)

	assert.Equal(t, model.SaleStatusVoided, voided.Status)
	require.NotNil(t, voided.VoidReason)
	assert.Equal(t, "wrong items scanned", *voided.VoidReason)
	// Amounts preserved, stock restored.
	assert.Equal(t, "326.7", voided.TotalAmount.String())
	assert.Equal(t, "50", f.product.StockQuantity.String())

	stored := f.sales.sales[uuid.MustParse(resp.ID)]
	require.NotNil(t, stored.VoidedBy)
	assert.Equal(t, supervisor, *stored.VoidedBy)
	assert.NotNil(t, stored.VoidedAt)
}

func TestVoidSale_DoubleVoidRejected(t *testing.T) {
	f := newSaleFixture(t)
	resp, err := f.svc.CompleteSale(context.Background(), f.cashier, f.saleRequest())
	require.NoError(t, err)

	saleID := uuid.MustParse(resp.ID)
	_, err = f.svc.VoidSale(context.Background(), saleID, "first void", uuid.New())
	require.NoError(t, err)

	_, err = f.svc.VoidSale(context.Background(), saleID, "second void", uuid.New())
	assert.ErrorIs(t, err, ErrAlreadyVoided)
	// Stock restored exactly once.
	assert.Equal(t, "50", f.product.StockQuantity.String())
}

// A stored sale's totals must be re-derivable from its snapshotted item rows:
// feeding each SaleItem back through the pricing engine reproduces the stored
// per-line and cart amounts exactly.
func TestCompleteSale_TotalsRederivableFromItems(t *testing.T) {
	f := newSaleFixture(t)
	bread := f.products.add(&model.Product{
		Name:          "Bread",
		SKU:           "B-1",
		SellingPrice:  d("4.50"),
		TaxRate:       d("21"),
		IsTaxIncluded: true,
		IsWeighable:   true,
		StockQuantity: d("10"),
		Active:        true,
	})

	discountType := "PERCENT"
	discountValue := d("5")
	req := dto.CompleteSaleRequest{
		SessionID: f.session.ID.String(),
		Items: []dto.SaleItemRequest{
			{ProductID: f.product.ID.String(), Quantity: d("3"), DiscountPercent: d("10")},
			{ProductID: bread.ID.String(), Quantity: d("0.350")},
		},
		DiscountType:  &discountType,
		DiscountValue: &discountValue,
		Payments: []dto.SalePaymentRequest{
			{PaymentMethodID: f.cash.ID.String(), Amount: d("400.00")},
		},
	}

	resp, err := f.svc.CompleteSale(context.Background(), f.cashier, req)
	require.NoError(t, err)

	stored := f.sales.sales[uuid.MustParse(resp.ID)]
	require.Len(t, stored.Items, 2)

	var lines []pricing.LineBreakdown
	for _, item := range stored.Items {
		lb, err := pricing.ComputeLine(item.UnitPrice, item.Quantity, item.DiscountPercent, item.TaxRate, item.IsTaxIncluded)
		require.NoError(t, err)

		assert.True(t, lb.Subtotal.Equal(item.Subtotal), "line subtotal: %s != %s", lb.Subtotal, item.Subtotal)
		assert.True(t, lb.DiscountAmount.Equal(item.DiscountAmount), "line discount: %s != %s", lb.DiscountAmount, item.DiscountAmount)
		assert.True(t, lb.TaxAmount.Equal(item.TaxAmount), "line tax: %s != %s", lb.TaxAmount, item.TaxAmount)
		assert.True(t, lb.Total.Equal(item.Total), "line total: %s != %s", lb.Total, item.Total)
		assert.Equal(t, lb.TaxInclusive, item.IsTaxIncluded)

		lines = append(lines, lb)
	}

	require.NotNil(t, stored.DiscountType)
	require.NotNil(t, stored.DiscountValue)
	rebuilt, err := pricing.ComputeCart(lines, &pricing.CartDiscount{
		Type:  *stored.DiscountType,
		Value: *stored.DiscountValue,
	}, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, rebuilt.Subtotal.Equal(stored.Subtotal), "subtotal: %s != %s", rebuilt.Subtotal, stored.Subtotal)
	assert.True(t, rebuilt.DiscountAmount.Equal(stored.DiscountAmount), "discount: %s != %s", rebuilt.DiscountAmount, stored.DiscountAmount)
	assert.True(t, rebuilt.TaxAmount.Equal(stored.TaxAmount), "tax: %s != %s", rebuilt.TaxAmount, stored.TaxAmount)
	assert.True(t, rebuilt.Total.Equal(stored.TotalAmount), "total: %s != %s", rebuilt.Total, stored.TotalAmount)
}

func TestVoidSale_NotFound(t *testing.T) {
	f := newSaleFixture(t)
	_, err := f.svc.VoidSale(context.Background(), uuid.New(), "whatever", uuid.New())
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

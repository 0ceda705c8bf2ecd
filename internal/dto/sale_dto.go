package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID       string          `json:"product_id"       validate:"required,uuid"`
	Quantity        decimal.Decimal `json:"quantity"         validate:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent" validate:"min=0,max=100"`
}

type SalePaymentRequest struct {
	PaymentMethodID string          `json:"payment_method_id" validate:"required,uuid"`
	Amount          decimal.Decimal `json:"amount"            validate:"required"`
	ReferenceNumber *string         `json:"reference_number"`
}

type CompleteSaleRequest struct {
	SessionID  string  `json:"session_id"  validate:"required,uuid"`
	CustomerID *string `json:"customer_id" validate:"omitempty,uuid"`

	Items    []SaleItemRequest    `json:"items"    validate:"required,min=1,dive"`
	Payments []SalePaymentRequest `json:"payments" validate:"required,min=1,dive"`

	DiscountType  *string          `json:"discount_type"  validate:"omitempty,oneof=PERCENT FIXED"`
	DiscountValue *decimal.Decimal `json:"discount_value"`
	Notes         *string          `json:"notes"`
}

type VoidSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date      string `form:"date"`                     // YYYY-MM-DD; empty = today
	Status    string `form:"status,default=COMPLETED"` // COMPLETED | VOIDED | all
	SessionID string `form:"session_id" validate:"omitempty,uuid"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID       string          `json:"product_id"`
	Product         string          `json:"product"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
}

type SalePaymentResponse struct {
	PaymentMethodID string          `json:"payment_method_id"`
	Method          string          `json:"method"`
	Amount          decimal.Decimal `json:"amount"`
	ReferenceNumber *string         `json:"reference_number,omitempty"`
}

type SaleResponse struct {
	ID         string  `json:"id"`
	SaleNumber string  `json:"sale_number"`
	BranchID   string  `json:"branch_id"`
	RegisterID string  `json:"register_id"`
	SessionID  string  `json:"session_id"`
	CashierID  string  `json:"cashier_id"`
	CustomerID *string `json:"customer_id,omitempty"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	ChangeAmount   decimal.Decimal `json:"change_amount"`

	Items    []SaleItemResponse    `json:"items"`
	Payments []SalePaymentResponse `json:"payments"`

	Status     string  `json:"status"`
	VoidReason *string `json:"void_reason,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

package dto

import "github.com/shopspring/decimal"

// ─── Products ────────────────────────────────────────────────────────────────

// ProductResponse feeds the POS quick-search grid.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Barcode       *string         `json:"barcode,omitempty"`
	Name          string          `json:"name"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	IsTaxIncluded bool            `json:"is_tax_included"`
	IsWeighable   bool            `json:"is_weighable"`
	UnitCode      string          `json:"unit_code"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

// PriceCheckResponse is the public, cacheable price-check payload.
type PriceCheckResponse struct {
	Name          string          `json:"name"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	IsTaxIncluded bool            `json:"is_tax_included"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

// ─── Customers ───────────────────────────────────────────────────────────────

type CustomerResponse struct {
	ID                       string          `json:"id"`
	CustomerCode             string          `json:"customer_code"`
	FirstName                *string         `json:"first_name,omitempty"`
	LastName                 *string         `json:"last_name,omitempty"`
	CompanyName              *string         `json:"company_name,omitempty"`
	IsWholesale              bool            `json:"is_wholesale"`
	WholesaleDiscountPercent decimal.Decimal `json:"wholesale_discount_percent"`
}

// ─── Payment methods ─────────────────────────────────────────────────────────

type PaymentMethodResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Code              string `json:"code"`
	Type              string `json:"type"`
	RequiresReference bool   `json:"requires_reference"`
	SortOrder         int    `json:"sort_order"`
}

// ─── Registers ───────────────────────────────────────────────────────────────

type CreateRegisterRequest struct {
	BranchID       string `json:"branch_id"       validate:"required,uuid"`
	RegisterNumber string `json:"register_number" validate:"required"`
	Name           string `json:"name"            validate:"required"`
}

type RegisterResponse struct {
	ID             string  `json:"id"`
	BranchID       string  `json:"branch_id"`
	RegisterNumber string  `json:"register_number"`
	Name           string  `json:"name"`
	Active         bool    `json:"active"`
	CurrentSession *string `json:"current_session_id,omitempty"`
}

package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	RegisterID    string          `json:"register_id"    validate:"required,uuid"`
	OpeningAmount decimal.Decimal `json:"opening_amount" validate:"min=0"`
	ShiftType     string          `json:"shift_type"     validate:"required,oneof=MORNING AFTERNOON FULL_DAY"`
}

// DeclaredAmounts is the cashier's blind declaration, one figure per rail.
type DeclaredAmounts struct {
	Cash     decimal.Decimal `json:"cash"     validate:"min=0"`
	Card     decimal.Decimal `json:"card"     validate:"min=0"`
	QR       decimal.Decimal `json:"qr"       validate:"min=0"`
	Transfer decimal.Decimal `json:"transfer" validate:"min=0"`
}

type CloseSessionRequest struct {
	Declared DeclaredAmounts `json:"declared" validate:"required"`
	Notes    *string         `json:"notes"`
}

type ForceCloseRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

type SessionFilter struct {
	BranchID   string `form:"branch_id"   validate:"omitempty,uuid"`
	RegisterID string `form:"register_id" validate:"omitempty,uuid"`
	CashierID  string `form:"cashier_id"  validate:"omitempty,uuid"`
	Status     string `form:"status"      validate:"omitempty,oneof=OPEN CLOSED FORCE_CLOSED"`
	StartDate  string `form:"start_date"` // YYYY-MM-DD
	EndDate    string `form:"end_date"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// AmountsByBucket groups per-rail figures. Total is the sum of the four
// buckets (display only — reconciliation itself is strictly per bucket).
type AmountsByBucket struct {
	Cash     decimal.Decimal `json:"cash"`
	Card     decimal.Decimal `json:"card"`
	QR       decimal.Decimal `json:"qr"`
	Transfer decimal.Decimal `json:"transfer"`
	Total    decimal.Decimal `json:"total"`
}

// SessionResponse is the session as exposed over the API. Declared, Expected
// and Discrepancy are nil until the session is closed — this is what makes
// the close blind: no pre-close response ever carries an expected figure.
type SessionResponse struct {
	ID            string          `json:"id"`
	RegisterID    string          `json:"register_id"`
	BranchID      string          `json:"branch_id"`
	CashierID     string          `json:"cashier_id"`
	ShiftType     string          `json:"shift_type"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	Status        string          `json:"status"`
	OpenedAt      string          `json:"opened_at"`
	ClosedAt      *string         `json:"closed_at,omitempty"`
	ClosedBy      *string         `json:"closed_by,omitempty"`

	Declared    *AmountsByBucket `json:"declared,omitempty"`
	Expected    *AmountsByBucket `json:"expected,omitempty"`
	Discrepancy *AmountsByBucket `json:"discrepancy,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

type SessionListResponse struct {
	Data  []SessionResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// MethodTotal is one row of the summary's per-method breakdown.
type MethodTotal struct {
	Method string          `json:"method"`
	Code   string          `json:"code"`
	Total  decimal.Decimal `json:"total"`
}

// SessionSummaryResponse is the read-only aggregate for supervisors. It is
// not a blind-close substitute and its route is role-restricted accordingly.
type SessionSummaryResponse struct {
	SessionID        string          `json:"session_id"`
	SaleCount        int64           `json:"sale_count"`
	SaleTotal        decimal.Decimal `json:"sale_total"`
	AverageSale      decimal.Decimal `json:"average_sale"`
	VoidedCount      int64           `json:"voided_count"`
	VoidedTotal      decimal.Decimal `json:"voided_total"`
	PaymentsByMethod []MethodTotal   `json:"payments_by_method"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses. A sale is created atomically as COMPLETED; VOIDED is a
// status transition plus audit fields, never a content edit.
const (
	SaleStatusPending   = "PENDING"
	SaleStatusCompleted = "COMPLETED"
	SaleStatusVoided    = "VOIDED"
)

// Sale is the immutable record of a completed transaction. Totals are a
// snapshot of the cart breakdown at completion time — never recomputed from
// live catalog data.
type Sale struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleNumber string     `gorm:"uniqueIndex;not null"`
	BranchID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	RegisterID uuid.UUID  `gorm:"type:uuid;not null;index"`
	SessionID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CashierID  uuid.UUID  `gorm:"type:uuid;not null"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`

	Subtotal       decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	DiscountType   *string          `gorm:"type:varchar(10)"` // PERCENT | FIXED
	DiscountValue  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DiscountAmount decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	TaxAmount      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	TotalAmount    decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	PaidAmount     decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ChangeAmount   decimal.Decimal  `gorm:"type:decimal(12,2);not null"`

	Status     string `gorm:"type:varchar(10);not null;default:'COMPLETED';index"`
	VoidReason *string
	VoidedBy   *uuid.UUID `gorm:"type:uuid"`
	VoidedAt   *time.Time
	Notes      *string
	CreatedAt  time.Time

	Items    []SaleItem    `gorm:"foreignKey:SaleID"`
	Payments []SalePayment `gorm:"foreignKey:SaleID"`
	Customer *Customer     `gorm:"foreignKey:CustomerID"`
	Cashier  *User         `gorm:"foreignKey:CashierID"`
}

// SaleItem is a priced line frozen at completion time. UnitPrice, TaxRate and
// IsTaxIncluded come from the product snapshot taken at add-to-cart time, so
// re-deriving the breakdown through the pricing engine reproduces the stored
// amounts exactly.
type SaleItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`

	Quantity        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxRate         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	IsTaxIncluded   bool            `gorm:"not null;default:false"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

// SalePayment is one tender applied to a sale. Amounts are always positive;
// a sale may carry several payments across different methods.
type SalePayment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID          uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentMethodID uuid.UUID `gorm:"type:uuid;not null"`

	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ReferenceNumber *string

	PaymentMethod *PaymentMethod `gorm:"foreignKey:PaymentMethodID"`
}

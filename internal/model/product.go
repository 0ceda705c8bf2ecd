package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog entry consumed by the pricing engine. SellingPrice,
// TaxRate and IsTaxIncluded are snapshotted onto sale items at add-to-cart
// time — later catalog edits never change recorded sales.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU           string    `gorm:"uniqueIndex;not null"`
	Barcode       *string   `gorm:"uniqueIndex"`
	Name          string    `gorm:"index;not null"`
	ShortName     *string
	SellingPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	IsTaxIncluded bool            `gorm:"not null;default:false"`
	// IsWeighable products admit fractional quantities (e.g. 0.350 kg).
	IsWeighable   bool            `gorm:"not null;default:false"`
	UnitCode      string          `gorm:"not null;default:'UN'"`
	StockQuantity decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

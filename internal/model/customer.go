package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer profile. Only the wholesale fields feed the pricing engine; the
// rest is contact data for receipts and lookups.
type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerCode string    `gorm:"uniqueIndex;not null"`
	FirstName    *string
	LastName     *string
	CompanyName  *string
	Phone        *string
	Email        *string
	// IsWholesale customers get WholesaleDiscountPercent applied additively
	// on top of any cart-level discount.
	IsWholesale              bool            `gorm:"not null;default:false"`
	WholesaleDiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Active                   bool            `gorm:"not null;default:true"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

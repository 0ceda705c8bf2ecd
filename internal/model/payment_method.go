package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment method types. The type decides which reconciliation bucket a
// payment lands in at session close (see service.BucketForType).
const (
	MethodTypeCash    = "CASH"
	MethodTypeCard    = "CARD"
	MethodTypeDigital = "DIGITAL" // QR wallets
	MethodTypeCredit  = "CREDIT"  // store credit
	MethodTypeOther   = "OTHER"   // bank transfers etc.
)

// PaymentMethod is a catalog entry for a tender rail.
type PaymentMethod struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"not null"`
	Code string    `gorm:"uniqueIndex;not null"`
	Type string    `gorm:"type:varchar(10);not null"`
	// RequiresReference forces a reference number (voucher, transaction id)
	// on every payment taken with this method.
	RequiresReference bool `gorm:"not null;default:false"`
	SortOrder         int  `gorm:"not null;default:0"`
	Active            bool `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

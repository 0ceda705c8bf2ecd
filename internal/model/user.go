package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a system operator. Cashiers log in with their user code plus a
// short numeric PIN (stored as a bcrypt hash, never in clear).
// Role: "cashier" | "supervisor" | "admin"
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserCode  string     `gorm:"uniqueIndex;not null"`
	Name      string     `gorm:"not null"`
	PINHash   string     `gorm:"column:pin_hash;not null"`
	Role      string     `gorm:"type:varchar(20);not null;default:'cashier'"`
	BranchID  *uuid.UUID `gorm:"type:uuid;index"`
	Active    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Branch *Branch `gorm:"foreignKey:BranchID"`
}

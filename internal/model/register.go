package model

import (
	"time"

	"github.com/google/uuid"
)

// Register is a physical point-of-sale terminal inside a branch.
// The "one OPEN session per register" invariant is enforced by a partial
// unique index on register_sessions (see infra.applySchemaPatches).
type Register struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BranchID       uuid.UUID `gorm:"type:uuid;not null;index"`
	RegisterNumber string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Active         bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Branch *Branch `gorm:"foreignKey:BranchID"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session statuses. CLOSED and FORCE_CLOSED are terminal.
const (
	SessionStatusOpen        = "OPEN"
	SessionStatusClosed      = "CLOSED"
	SessionStatusForceClosed = "FORCE_CLOSED"
)

// Shift types accepted at session open.
const (
	ShiftMorning   = "MORNING"
	ShiftAfternoon = "AFTERNOON"
	ShiftFullDay   = "FULL_DAY"
)

// RegisterSession is one open→trade→close cycle on a register.
//
// The declared/expected/discrepancy columns stay NULL while the session is
// OPEN — they are written only by the closing transaction, which is what
// keeps the close "blind": no pre-close query can ever observe an expected
// amount. All closing fields plus the status flip are persisted in a single
// transaction; a session is never visible half-closed.
type RegisterSession struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RegisterID uuid.UUID `gorm:"type:uuid;not null;index"`
	BranchID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CashierID  uuid.UUID `gorm:"type:uuid;not null;index"`

	ShiftType     string           `gorm:"type:varchar(10);not null"`
	OpeningAmount decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	ClosingAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Status   string    `gorm:"type:varchar(12);not null;default:'OPEN'"`
	OpenedAt time.Time `gorm:"not null"`
	ClosedAt *time.Time
	ClosedBy *uuid.UUID `gorm:"type:uuid"`

	// Blind-close reconciliation, one bucket per payment rail. Discrepancy is
	// declared minus expected, per bucket — a surplus on one rail never
	// offsets a shortage on another.
	DeclaredCash     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DeclaredCard     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DeclaredQR       *decimal.Decimal `gorm:"column:declared_qr;type:decimal(12,2)"`
	DeclaredTransfer *decimal.Decimal `gorm:"type:decimal(12,2)"`

	ExpectedCash     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ExpectedCard     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ExpectedQR       *decimal.Decimal `gorm:"column:expected_qr;type:decimal(12,2)"`
	ExpectedTransfer *decimal.Decimal `gorm:"type:decimal(12,2)"`

	DiscrepancyCash     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DiscrepancyCard     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DiscrepancyQR       *decimal.Decimal `gorm:"column:discrepancy_qr;type:decimal(12,2)"`
	DiscrepancyTransfer *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Notes *string

	Register *Register `gorm:"foreignKey:RegisterID"`
	Branch   *Branch   `gorm:"foreignKey:BranchID"`
	Cashier  *User     `gorm:"foreignKey:CashierID"`
}

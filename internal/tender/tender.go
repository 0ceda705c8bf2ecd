// Package tender validates payment sequences against a cart total and
// computes the settlement (paid / remaining / change). Like the pricing
// engine it is pure: callers own persistence and retries.
package tender

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")
	ErrReferenceRequired    = errors.New("payment method requires a reference number")
)

// Method is the payment-method catalog slice the reconciler needs.
type Method struct {
	ID                uuid.UUID
	Type              string // CASH | CARD | DIGITAL | CREDIT | OTHER
	RequiresReference bool
}

// Payment is one declared tender.
type Payment struct {
	Method          Method
	Amount          decimal.Decimal
	ReferenceNumber *string
}

// Add validates and appends a payment. Overpayment is allowed — the surplus
// becomes change at evaluation time; an upper bound is a UI concern.
func Add(payments []Payment, m Method, amount decimal.Decimal, reference *string) ([]Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return payments, ErrInvalidPaymentAmount
	}
	if m.RequiresReference && (reference == nil || *reference == "") {
		return payments, ErrReferenceRequired
	}
	return append(payments, Payment{Method: m, Amount: amount, ReferenceNumber: reference}), nil
}

// Settlement is the result of evaluating payments against a cart total.
type Settlement struct {
	TotalPaid decimal.Decimal
	Remaining decimal.Decimal
	Change    decimal.Decimal
}

// Evaluate sums the payments against cartTotal. Sale completion is only
// permitted when Remaining is zero.
func Evaluate(cartTotal decimal.Decimal, payments []Payment) Settlement {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	remaining := cartTotal.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	change := paid.Sub(cartTotal)
	if change.IsNegative() {
		change = decimal.Zero
	}

	return Settlement{TotalPaid: paid, Remaining: remaining, Change: change}
}

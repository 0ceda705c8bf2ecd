// Package pricing implements the transaction pricing engine: deterministic
// fixed-point arithmetic over line items, discounts and taxes. Everything in
// this package is pure — no I/O, no shared state — so identical inputs always
// produce byte-identical decimal outputs.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidDiscount = errors.New("discount percent must be between 0 and 100")
	ErrInvalidTaxRate  = errors.New("tax rate must not be negative")
)

// Cart-level discount types.
const (
	DiscountPercent = "PERCENT"
	DiscountFixed   = "FIXED"
)

var hundred = decimal.NewFromInt(100)

// round2 is the single rounding policy of the engine: two currency decimals,
// half rounded up.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineBreakdown is the monetary decomposition of a single cart line.
// Invariant: Total = Subtotal - DiscountAmount + TaxAmount for tax-exclusive
// lines; for tax-inclusive lines the tax is already inside the subtotal
// (TaxAmount is the extracted portion, reported but not added) and
// Total = Subtotal - DiscountAmount.
type LineBreakdown struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TaxInclusive   bool
	Total          decimal.Decimal
}

// ComputeLine derives the breakdown for one line.
//
//	subtotal      = unit_price × quantity          (exact multiply)
//	discount      = round2(subtotal × pct / 100)
//	taxable_base  = subtotal − discount
//	exclusive tax = round2(base × rate / 100), total = base + tax
//	inclusive tax = base − round2(base / (1 + rate/100)), total = base
//
// Invalid input is rejected, never coerced.
func ComputeLine(unitPrice, quantity, discountPercent, taxRate decimal.Decimal, taxInclusive bool) (LineBreakdown, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return LineBreakdown{}, ErrInvalidQuantity
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return LineBreakdown{}, ErrInvalidDiscount
	}
	if taxRate.IsNegative() {
		return LineBreakdown{}, ErrInvalidTaxRate
	}

	subtotal := unitPrice.Mul(quantity)
	discount := round2(subtotal.Mul(discountPercent).Div(hundred))
	base := subtotal.Sub(discount)

	var tax, total decimal.Decimal
	if taxInclusive {
		net := round2(base.Div(decimal.NewFromInt(1).Add(taxRate.Div(hundred))))
		tax = base.Sub(net)
		total = base
	} else {
		tax = round2(base.Mul(taxRate).Div(hundred))
		total = base.Add(tax)
	}

	return LineBreakdown{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		TaxInclusive:   taxInclusive,
		Total:          total,
	}, nil
}

// CartDiscount is an optional cart-level discount.
type CartDiscount struct {
	Type  string // PERCENT | FIXED
	Value decimal.Decimal
}

// CartBreakdown aggregates line breakdowns plus cart-level discounts.
// Invariant: Total = max(0, Subtotal - DiscountAmount + TaxAmount).
type CartBreakdown struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// ComputeCart sums the given line breakdowns and applies the cart discount
// plus the customer wholesale discount.
//
// Line discounts are folded into the cart DiscountAmount so that the cart
// invariant total = max(0, subtotal - discount + tax) holds against the raw
// subtotal (Σ unit_price × quantity). Tax extracted from tax-inclusive lines
// is reported in TaxAmount but not added to the total — it is already inside
// the subtotal.
//
// The cart and wholesale discount sources stack additively: each is computed
// independently against the summed subtotal and the results are summed. A
// FIXED discount is capped at the subtotal so it can never have a negative
// effect, and the final total is clamped at zero — an oversized promotional
// stack never produces a negative payable amount.
func ComputeCart(lines []LineBreakdown, cartDiscount *CartDiscount, wholesalePercent decimal.Decimal) (CartBreakdown, error) {
	subtotal := decimal.Zero
	tax := decimal.Zero
	addedTax := decimal.Zero
	discount := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
		tax = tax.Add(l.TaxAmount)
		if !l.TaxInclusive {
			addedTax = addedTax.Add(l.TaxAmount)
		}
		discount = discount.Add(l.DiscountAmount)
	}

	if cartDiscount != nil {
		switch cartDiscount.Type {
		case DiscountPercent:
			if cartDiscount.Value.IsNegative() || cartDiscount.Value.GreaterThan(hundred) {
				return CartBreakdown{}, ErrInvalidDiscount
			}
			discount = discount.Add(round2(subtotal.Mul(cartDiscount.Value).Div(hundred)))
		case DiscountFixed:
			if cartDiscount.Value.IsNegative() {
				return CartBreakdown{}, ErrInvalidDiscount
			}
			fixed := cartDiscount.Value
			if fixed.GreaterThan(subtotal) {
				fixed = subtotal
			}
			discount = discount.Add(fixed)
		default:
			return CartBreakdown{}, ErrInvalidDiscount
		}
	}

	if !wholesalePercent.IsZero() {
		if wholesalePercent.IsNegative() || wholesalePercent.GreaterThan(hundred) {
			return CartBreakdown{}, ErrInvalidDiscount
		}
		discount = discount.Add(round2(subtotal.Mul(wholesalePercent).Div(hundred)))
	}

	total := subtotal.Sub(discount).Add(addedTax)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return CartBreakdown{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          total,
	}, nil
}

package pricing

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrLineNotFound = errors.New("cart line not found")

// ProductSnapshot is the slice of a catalog product the cart needs. Taken at
// add time — later catalog edits never affect an open cart.
type ProductSnapshot struct {
	ProductID     uuid.UUID
	Name          string
	UnitPrice     decimal.Decimal
	TaxRate       decimal.Decimal
	IsTaxIncluded bool
}

// CustomerSnapshot carries the wholesale fields read at totals time.
type CustomerSnapshot struct {
	CustomerID       uuid.UUID
	IsWholesale      bool
	WholesalePercent decimal.Decimal
}

// LineItem is one cart line. Price and tax fields are frozen copies from the
// product; Quantity may be fractional for weighable goods.
type LineItem struct {
	ID              uuid.UUID
	Product         ProductSnapshot
	Quantity        decimal.Decimal
	DiscountPercent decimal.Decimal
}

// Cart is the mutable pre-sale container. It owns its lines exclusively — a
// cart is only ever touched by the single in-progress sale flow, so there is
// no internal locking. Insertion order is preserved for display; totals do
// not depend on it.
type Cart struct {
	lines    []LineItem
	customer *CustomerSnapshot
	discount *CartDiscount
}

func NewCart() *Cart { return &Cart{} }

// AddItem appends a line with a frozen product snapshot.
func (c *Cart) AddItem(p ProductSnapshot, quantity, discountPercent decimal.Decimal) (uuid.UUID, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return uuid.Nil, ErrInvalidQuantity
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(hundred) {
		return uuid.Nil, ErrInvalidDiscount
	}
	line := LineItem{
		ID:              uuid.New(),
		Product:         p,
		Quantity:        quantity,
		DiscountPercent: discountPercent,
	}
	c.lines = append(c.lines, line)
	return line.ID, nil
}

// UpdateQuantity changes a line's quantity. Zero or negative quantities are
// rejected — removing a line is an explicit RemoveItem, never a coercion.
func (c *Cart) UpdateQuantity(lineID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

func (c *Cart) RemoveItem(lineID uuid.UUID) error {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// SetDiscount sets or clears (nil) the cart-level discount.
func (c *Cart) SetDiscount(d *CartDiscount) error {
	if d != nil {
		switch d.Type {
		case DiscountPercent:
			if d.Value.IsNegative() || d.Value.GreaterThan(hundred) {
				return ErrInvalidDiscount
			}
		case DiscountFixed:
			if d.Value.IsNegative() {
				return ErrInvalidDiscount
			}
		default:
			return ErrInvalidDiscount
		}
	}
	c.discount = d
	return nil
}

// SetCustomer attaches or clears (nil) the customer whose wholesale discount
// participates in totals.
func (c *Cart) SetCustomer(cu *CustomerSnapshot) { c.customer = cu }

// Clear discards all lines, the discount and the customer.
func (c *Cart) Clear() {
	c.lines = nil
	c.discount = nil
	c.customer = nil
}

func (c *Cart) Lines() []LineItem { return c.lines }

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Totals recomputes every derived amount from scratch. Nothing derived is
// ever stored on the cart, so two calls with the same cart state return
// byte-identical breakdowns.
func (c *Cart) Totals() (CartBreakdown, []LineBreakdown, error) {
	breakdowns := make([]LineBreakdown, 0, len(c.lines))
	for _, l := range c.lines {
		lb, err := ComputeLine(l.Product.UnitPrice, l.Quantity, l.DiscountPercent, l.Product.TaxRate, l.Product.IsTaxIncluded)
		if err != nil {
			return CartBreakdown{}, nil, err
		}
		breakdowns = append(breakdowns, lb)
	}

	wholesale := decimal.Zero
	if c.customer != nil && c.customer.IsWholesale {
		wholesale = c.customer.WholesalePercent
	}

	cb, err := ComputeCart(breakdowns, c.discount, wholesale)
	if err != nil {
		return CartBreakdown{}, nil, err
	}
	return cb, breakdowns, nil
}

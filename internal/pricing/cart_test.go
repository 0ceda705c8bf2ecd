package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(price string) ProductSnapshot {
	return ProductSnapshot{
		ProductID: uuid.New(),
		Name:      "test product",
		UnitPrice: d(price),
	}
}

func TestCart_AddUpdateRemove(t *testing.T) {
	cart := NewCart()
	assert.True(t, cart.IsEmpty())

	lineID, err := cart.AddItem(snapshot("10.00"), d("2"), decimal.Zero)
	require.NoError(t, err)
	assert.False(t, cart.IsEmpty())

	require.NoError(t, cart.UpdateQuantity(lineID, d("5")))
	cb, _, err := cart.Totals()
	require.NoError(t, err)
	assert.Equal(t, "50", cb.Total.String())

	require.NoError(t, cart.RemoveItem(lineID))
	assert.True(t, cart.IsEmpty())
}

func TestCart_UnknownLine(t *testing.T) {
	cart := NewCart()
	assert.ErrorIs(t, cart.UpdateQuantity(uuid.New(), d("1")), ErrLineNotFound)
	assert.ErrorIs(t, cart.RemoveItem(uuid.New()), ErrLineNotFound)
}

func TestCart_RejectsZeroQuantity(t *testing.T) {
	cart := NewCart()
	_, err := cart.AddItem(snapshot("10.00"), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	lineID, err := cart.AddItem(snapshot("10.00"), d("1"), decimal.Zero)
	require.NoError(t, err)
	assert.ErrorIs(t, cart.UpdateQuantity(lineID, d("-2")), ErrInvalidQuantity)
}

func TestCart_SnapshotFrozenAtAddTime(t *testing.T) {
	cart := NewCart()
	p := snapshot("10.00")
	_, err := cart.AddItem(p, d("1"), decimal.Zero)
	require.NoError(t, err)

	// Catalog price changes after adding; the cart keeps the old price.
	p.UnitPrice = d("99.00")
	cb, _, err := cart.Totals()
	require.NoError(t, err)
	assert.Equal(t, "10", cb.Total.String())
}

func TestCart_WholesaleOnlyWhenFlagged(t *testing.T) {
	cart := NewCart()
	_, err := cart.AddItem(snapshot("100.00"), d("1"), decimal.Zero)
	require.NoError(t, err)

	// Non-wholesale customer: percent ignored.
	cart.SetCustomer(&CustomerSnapshot{CustomerID: uuid.New(), IsWholesale: false, WholesalePercent: d("5")})
	cb, _, err := cart.Totals()
	require.NoError(t, err)
	assert.Equal(t, "100", cb.Total.String())

	cart.SetCustomer(&CustomerSnapshot{CustomerID: uuid.New(), IsWholesale: true, WholesalePercent: d("5")})
	cb, _, err = cart.Totals()
	require.NoError(t, err)
	assert.Equal(t, "95", cb.Total.String())
}

func TestCart_TotalsIdempotent(t *testing.T) {
	cart := NewCart()
	_, err := cart.AddItem(ProductSnapshot{ProductID: uuid.New(), UnitPrice: d("33.33"), TaxRate: d("21")}, d("3"), d("7.5"))
	require.NoError(t, err)
	require.NoError(t, cart.SetDiscount(&CartDiscount{Type: DiscountPercent, Value: d("2.5")}))

	first, _, err := cart.Totals()
	require.NoError(t, err)
	second, _, err := cart.Totals()
	require.NoError(t, err)

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart()
	_, err := cart.AddItem(snapshot("10.00"), d("1"), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, cart.SetDiscount(&CartDiscount{Type: DiscountFixed, Value: d("1")}))
	cart.SetCustomer(&CustomerSnapshot{CustomerID: uuid.New(), IsWholesale: true, WholesalePercent: d("5")})

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	cb, _, err := cart.Totals()
	require.NoError(t, err)
	assert.Equal(t, "0", cb.Total.String())
}

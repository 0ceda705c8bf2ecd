package service

import "errors"

// Sentinel errors for state-conflict and validation failures. Handlers map
// these to HTTP statuses with errors.Is; every rejected operation names the
// invariant it violated and leaves no partial effect.
var (
	ErrEmptyCart           = errors.New("cart has no items")
	ErrInsufficientPayment = errors.New("remaining payment due")
	ErrSessionNotOpen      = errors.New("session is not open")
	ErrRegisterAlreadyOpen = errors.New("register already has an open session")
	ErrAlreadyVoided       = errors.New("sale is already voided")
	ErrSaleNotVoidable     = errors.New("only completed sales can be voided")

	ErrProductNotFound       = errors.New("product not found")
	ErrProductInactive       = errors.New("product is inactive and cannot be sold")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrRegisterNotFound      = errors.New("register not found")
	ErrSessionNotFound       = errors.New("session not found")
	ErrSaleNotFound          = errors.New("sale not found")
)

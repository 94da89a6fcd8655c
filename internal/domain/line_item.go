package domain

import "github.com/shopspring/decimal"

// LineItem associates a product with a signed quantity inside one
// transaction. Positive quantity is a sale, negative is a return of
// abs(quantity) units. Quantity is never zero while the item is held.
type LineItem struct {
	Product  Product
	Quantity int
}

// Subtotal is unit price × quantity, signed.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

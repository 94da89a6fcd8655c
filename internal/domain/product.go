package domain

import "github.com/shopspring/decimal"

// Product is the catalog's record for one sellable item. The catalog owns
// every Product; stock is only ever changed through the catalog's
// stock-adjustment operations.
type Product struct {
	Code  string
	Name  string
	Price decimal.Decimal
	Stock int
}

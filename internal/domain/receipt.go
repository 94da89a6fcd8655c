package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ReceiptKind string

const (
	ReceiptKindSale   ReceiptKind = "SALE"
	ReceiptKindReturn ReceiptKind = "RETURN"
)

// Receipt is an immutable snapshot of a settled transaction. It is built
// once by the receipt factory and never mutated afterward.
type Receipt struct {
	ID       string
	Kind     ReceiptKind
	Items    []LineItem
	Total    decimal.Decimal
	IssuedAt time.Time
}

// Render formats the receipt as plain text for printing collaborators.
func (r Receipt) Render() string {
	var b strings.Builder

	b.WriteString("======================================\n")
	b.WriteString("         Barliman POS - Receipt\n")
	b.WriteString("======================================\n")
	fmt.Fprintf(&b, "Receipt ID: %s\n", r.ID)
	fmt.Fprintf(&b, "Type: %s\n", r.Kind)
	fmt.Fprintf(&b, "Time: %s\n", r.IssuedAt.Format("2006-01-02 15:04:05"))
	b.WriteString("--------------------------------------\n")
	fmt.Fprintf(&b, "%-10s %-12s %-8s %-5s\n", "Code", "Name", "Price", "Qty")
	b.WriteString("--------------------------------------\n")
	for _, item := range r.Items {
		fmt.Fprintf(&b, "%-10s %-12s %-8s %-5d\n",
			item.Product.Code, item.Product.Name,
			item.Product.Price.StringFixed(2), item.Quantity)
	}
	b.WriteString("--------------------------------------\n")
	fmt.Fprintf(&b, "Total: %s\n", r.Total.StringFixed(2))
	b.WriteString("======================================\n")

	return b.String()
}

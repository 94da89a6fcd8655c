package receipt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"barliman/internal/domain"
)

// Factory builds immutable receipts. It never touches the catalog; the
// supplied items are deep-copied so later mutation of the source
// transaction cannot reach the receipt.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(items []domain.LineItem, kind domain.ReceiptKind) domain.Receipt {
	copied := make([]domain.LineItem, len(items))
	copy(copied, items)

	total := decimal.Zero
	for _, item := range copied {
		total = total.Add(item.Subtotal())
	}

	return domain.Receipt{
		ID:       uuid.New().String(),
		Kind:     kind,
		Items:    copied,
		Total:    total,
		IssuedAt: time.Now().UTC(),
	}
}

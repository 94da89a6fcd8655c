package checkout

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"barliman/internal/catalog"
	"barliman/internal/domain"
	apperrors "barliman/internal/errors"
)

type Catalog interface {
	Lookup(code string) (domain.Product, error)
	AdjustStockBatch(adjustments []catalog.Adjustment) error
}

type ReceiptFactory interface {
	Create(items []domain.LineItem, kind domain.ReceiptKind) domain.Receipt
}

// Transaction accumulates signed-quantity line items against a shared
// catalog and settles them atomically. It is either empty or building;
// a successful settle emits a receipt and resets it to empty. One
// Transaction is driven by one session at a time.
type Transaction struct {
	catalog  Catalog
	receipts ReceiptFactory
	items    []domain.LineItem
	logger   *zap.Logger
}

func NewTransaction(catalog Catalog, receipts ReceiptFactory, logger *zap.Logger) *Transaction {
	return &Transaction{
		catalog:  catalog,
		receipts: receipts,
		logger:   logger,
	}
}

// AddItem merges a signed quantity for one product into the transaction.
// Positive quantities are sale legs and are checked against the stock
// remaining after quantities already pending here for the same code, so
// adding the same product twice cannot oversell. Negative quantities are
// return legs and have no stock ceiling. A merge that nets the quantity
// to zero removes the line item.
func (t *Transaction) AddItem(code string, quantity int) error {
	if quantity == 0 {
		return apperrors.NewValidationError("quantity must not be zero", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a non-zero integer",
		})
	}

	product, err := t.catalog.Lookup(code)
	if err != nil {
		return err
	}

	if quantity > 0 {
		remaining := product.Stock - t.pendingSaleQuantity(code)
		if quantity > remaining {
			return apperrors.NewInsufficientStockError(code, quantity, remaining)
		}
	}

	idx := t.indexOf(code)
	if idx < 0 {
		t.items = append(t.items, domain.LineItem{Product: product, Quantity: quantity})
	} else {
		merged := t.items[idx].Quantity + quantity
		if merged == 0 {
			t.items = append(t.items[:idx], t.items[idx+1:]...)
		} else {
			t.items[idx] = domain.LineItem{Product: product, Quantity: merged}
		}
	}

	t.logger.Debug("item added",
		zap.String("code", code),
		zap.Int("quantity", quantity),
		zap.Int("itemCount", len(t.items)))

	return nil
}

// TotalAmount sums unit price × quantity over all line items. Positive
// means the customer owes, negative means a refund is owed.
func (t *Transaction) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range t.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CurrentItems returns a copy of the pending line items in first-seen
// order, for display.
func (t *Transaction) CurrentItems() []domain.LineItem {
	items := make([]domain.LineItem, len(t.items))
	copy(items, t.items)
	return items
}

func (t *Transaction) IsEmpty() bool {
	return len(t.items) == 0
}

// SettleSale commits the transaction as a sale: the tendered amount must
// cover the total, stock deltas are applied as one all-or-nothing group,
// and a SALE receipt is returned. On any error the transaction and the
// catalog are left unchanged.
func (t *Transaction) SettleSale(tendered decimal.Decimal) (domain.Receipt, error) {
	return t.settle(domain.ReceiptKindSale, &tendered)
}

// SettleReturn commits a refund-dominant transaction: the total must be
// negative, stock deltas are applied as one group (returns increase
// stock), and a RETURN receipt is returned.
func (t *Transaction) SettleReturn() (domain.Receipt, error) {
	return t.settle(domain.ReceiptKindReturn, nil)
}

// Cancel discards every pending line item. Nothing has touched the
// catalog before settle, so there is no stock to undo. Idempotent.
func (t *Transaction) Cancel() {
	t.items = nil
	t.logger.Info("transaction cancelled")
}

// settle is the single commit path shared by sale and return, differing
// only in the validation predicate.
func (t *Transaction) settle(kind domain.ReceiptKind, tendered *decimal.Decimal) (domain.Receipt, error) {
	if len(t.items) == 0 {
		return domain.Receipt{}, apperrors.NewEmptyTransactionError()
	}

	total := t.TotalAmount()

	switch kind {
	case domain.ReceiptKindSale:
		if tendered.LessThan(total) {
			return domain.Receipt{}, apperrors.NewPaymentError(total, *tendered)
		}
	case domain.ReceiptKindReturn:
		if total.Sign() >= 0 {
			return domain.Receipt{}, apperrors.NewInvalidReturnError(total)
		}
	}

	// A sale quantity decreases stock, a return quantity increases it.
	adjustments := make([]catalog.Adjustment, len(t.items))
	for i, item := range t.items {
		adjustments[i] = catalog.Adjustment{Code: item.Product.Code, Delta: -item.Quantity}
	}

	if err := t.catalog.AdjustStockBatch(adjustments); err != nil {
		t.logger.Warn("settle rejected by catalog",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return domain.Receipt{}, err
	}

	receipt := t.receipts.Create(t.items, kind)
	t.items = nil

	t.logger.Info("transaction settled",
		zap.String("kind", string(kind)),
		zap.String("receiptId", receipt.ID),
		zap.String("total", receipt.Total.StringFixed(2)),
		zap.Int("itemCount", len(receipt.Items)))

	return receipt, nil
}

func (t *Transaction) indexOf(code string) int {
	for i, item := range t.items {
		if item.Product.Code == code {
			return i
		}
	}
	return -1
}

func (t *Transaction) pendingSaleQuantity(code string) int {
	idx := t.indexOf(code)
	if idx >= 0 && t.items[idx].Quantity > 0 {
		return t.items[idx].Quantity
	}
	return 0
}

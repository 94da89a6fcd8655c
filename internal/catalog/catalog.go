package catalog

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"barliman/internal/domain"
	apperrors "barliman/internal/errors"
)

// Adjustment is one signed stock delta applied to a product.
type Adjustment struct {
	Code  string
	Delta int
}

// Service is the authoritative product registry. All stock mutation goes
// through AdjustStock or AdjustStockBatch; the mutex makes the
// check-then-set atomic for concurrent callers sharing one catalog.
type Service struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	logger   *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		products: make(map[string]*domain.Product),
		logger:   logger,
	}
}

// Register adds a product to the catalog. Codes are unique; price and
// stock must be non-negative.
func (s *Service) Register(p domain.Product) error {
	if p.Code == "" {
		return apperrors.NewValidationError("product code is required", apperrors.ValidationDetail{
			Field:   "code",
			Message: "code must not be empty",
		})
	}
	if p.Price.IsNegative() {
		return apperrors.NewValidationError("product price must be non-negative", apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must be non-negative",
		})
	}
	if p.Stock < 0 {
		return apperrors.NewValidationError("product stock must be non-negative", apperrors.ValidationDetail{
			Field:   "stock",
			Message: "stock must be non-negative",
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.Code]; exists {
		return apperrors.NewValidationError("product code already registered", apperrors.ValidationDetail{
			Field:   "code",
			Message: "code must be unique",
		})
	}

	stored := p
	s.products[p.Code] = &stored

	s.logger.Info("product registered",
		zap.String("code", p.Code),
		zap.String("name", p.Name),
		zap.Int("stock", p.Stock))

	return nil
}

// Lookup returns a copy of the product for code. Mutating the returned
// value does not touch the catalog.
func (s *Service) Lookup(code string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[code]
	if !ok {
		return domain.Product{}, apperrors.NewNotFoundError(code)
	}
	return *p, nil
}

// List returns a snapshot of all products sorted by code. The snapshot
// reflects stock at call time and shares no storage with the catalog.
func (s *Service) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Code < products[j].Code })

	return products
}

// AdjustStock applies stock += delta for one product. The operation is
// all-or-nothing: on any failure the stock is left unchanged.
func (s *Service) AdjustStock(code string, delta int) error {
	return s.AdjustStockBatch([]Adjustment{{Code: code, Delta: delta}})
}

// AdjustStockBatch applies a group of adjustments atomically: every
// adjustment is validated while holding the write lock, and only if all
// of them keep stock non-negative is any of them applied. A failure
// leaves every product untouched.
func (s *Service) AdjustStockBatch(adjustments []Adjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Pre-flight pass: cumulative per code, so a batch that names the
	// same product twice is validated against its own earlier deltas.
	pending := make(map[string]int, len(adjustments))
	for _, adj := range adjustments {
		p, ok := s.products[adj.Code]
		if !ok {
			return apperrors.NewNotFoundError(adj.Code)
		}

		next := p.Stock + pending[adj.Code] + adj.Delta
		if next < 0 {
			s.logger.Warn("stock adjustment rejected",
				zap.String("code", adj.Code),
				zap.Int("delta", adj.Delta),
				zap.Int("stock", p.Stock))
			return apperrors.NewStockViolationError(adj.Code, -adj.Delta, p.Stock+pending[adj.Code])
		}
		pending[adj.Code] += adj.Delta
	}

	for code, delta := range pending {
		s.products[code].Stock += delta
	}

	return nil
}

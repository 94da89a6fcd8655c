package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"barliman/internal/domain"
	apperrors "barliman/internal/errors"
)

// Controller exposes read access to the catalog for display. Stock is
// never mutated through this surface.
type Controller struct {
	svc    *Service
	logger *zap.Logger
}

func NewController(svc *Service, logger *zap.Logger) *Controller {
	return &Controller{
		svc:    svc,
		logger: logger,
	}
}

func (c *Controller) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	products := c.svc.List()

	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}

	c.writeJSON(w, http.StatusOK, ListProductsResponse{Products: dtos})
}

func (c *Controller) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	product, err := c.svc.Lookup(code)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			c.writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   "NOT_FOUND",
				"message": err.Error(),
			})
			return
		}
		c.logger.Error("product lookup failed", zap.String("code", code), zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "INTERNAL_ERROR",
			"message": "an unexpected error occurred",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, toProductDTO(product))
}

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		Code:  p.Code,
		Name:  p.Name,
		Price: p.Price.StringFixed(2),
		Stock: p.Stock,
	}
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

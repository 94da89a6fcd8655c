package controller

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"barliman/internal/checkout"
	"barliman/internal/domain"
	apperrors "barliman/internal/errors"
)

// RegisterController drives the single register's transaction over HTTP.
// The mutex serializes the HTTP handlers onto the one transaction; stock
// safety across registers is the catalog's job, not this controller's.
type RegisterController struct {
	mu     sync.Mutex
	tx     *checkout.Transaction
	logger *zap.Logger
}

func NewRegisterController(tx *checkout.Transaction, logger *zap.Logger) *RegisterController {
	return &RegisterController{
		tx:     tx,
		logger: logger,
	}
}

func (c *RegisterController) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Code == "" {
		c.writeValidationError(w, traceID, "code is required", apperrors.ValidationDetail{
			Field:   "code",
			Message: "code must not be empty",
		})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.tx.AddItem(req.Code, req.Quantity); err != nil {
		c.handleBusinessError(w, traceID, err, logger)
		return
	}

	c.writeRegisterState(w, traceID)
}

func (c *RegisterController) HandleGetRegister(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeRegisterState(w, traceID)
}

func (c *RegisterController) HandleSettleSale(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req SettleSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	tendered, err := decimal.NewFromString(req.TenderedAmount)
	if err != nil {
		c.writeValidationError(w, traceID, "invalid tenderedAmount", apperrors.ValidationDetail{
			Field:   "tenderedAmount",
			Message: "tenderedAmount must be a decimal number",
		})
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	receipt, err := c.tx.SettleSale(tendered)
	if err != nil {
		c.handleBusinessError(w, traceID, err, logger)
		return
	}

	change := tendered.Sub(receipt.Total)
	c.writeReceipt(w, traceID, receipt, &change)
}

func (c *RegisterController) HandleSettleReturn(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	c.mu.Lock()
	defer c.mu.Unlock()

	receipt, err := c.tx.SettleReturn()
	if err != nil {
		c.handleBusinessError(w, traceID, err, logger)
		return
	}

	c.writeReceipt(w, traceID, receipt, nil)
}

func (c *RegisterController) HandleCancel(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.tx.Cancel()
	c.writeRegisterState(w, traceID)
}

func (c *RegisterController) handleBusinessError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if se, ok := apperrors.IsStockError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, string(se.Reason), err.Error())
		return
	}

	if _, ok := apperrors.IsPaymentError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusUnprocessableEntity, "INSUFFICIENT_PAYMENT", err.Error())
		return
	}

	if _, ok := apperrors.IsInvalidReturnError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusUnprocessableEntity, "INVALID_RETURN", err.Error())
		return
	}

	if _, ok := apperrors.IsEmptyTransactionError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "EMPTY_TRANSACTION", err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *RegisterController) writeRegisterState(w http.ResponseWriter, traceID string) {
	items := c.tx.CurrentItems()

	c.writeJSON(w, http.StatusOK, RegisterStateResponse{
		TraceID: traceID,
		Items:   toLineItemDTOs(items),
		Total:   c.tx.TotalAmount().StringFixed(2),
		Empty:   c.tx.IsEmpty(),
	})
}

func (c *RegisterController) writeReceipt(w http.ResponseWriter, traceID string, receipt domain.Receipt, change *decimal.Decimal) {
	resp := ReceiptResponse{
		TraceID:   traceID,
		ReceiptID: receipt.ID,
		Kind:      string(receipt.Kind),
		Items:     toLineItemDTOs(receipt.Items),
		Total:     receipt.Total.StringFixed(2),
		IssuedAt:  receipt.IssuedAt,
		Rendered:  receipt.Render(),
	}
	if change != nil {
		resp.Change = change.StringFixed(2)
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func toLineItemDTOs(items []domain.LineItem) []LineItemDTO {
	dtos := make([]LineItemDTO, len(items))
	for i, item := range items {
		dtos[i] = LineItemDTO{
			Code:      item.Product.Code,
			Name:      item.Product.Name,
			UnitPrice: item.Product.Price.StringFixed(2),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal().StringFixed(2),
		}
	}
	return dtos
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *RegisterController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *RegisterController) writeErrorResponse(w http.ResponseWriter, traceID string, status int, code string, message string) {
	c.writeJSON(w, status, ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func (c *RegisterController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Business errors form a closed set: NotFoundError, StockError,
// PaymentError, InvalidReturnError and EmptyTransactionError. Callers are
// expected to match with the Is* helpers and recover; none of them is fatal.

type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.Code)
}

func NewNotFoundError(code string) *NotFoundError {
	return &NotFoundError{Code: code}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

type StockReason string

const (
	// ReasonInsufficientStock: a sale leg asked for more units than remain
	// after quantities already pending in the same transaction.
	ReasonInsufficientStock StockReason = "INSUFFICIENT_STOCK"
	// ReasonStockViolation: the grouped settle found a conflict at apply
	// time; no stock from the transaction was applied.
	ReasonStockViolation StockReason = "STOCK_VIOLATION"
)

type StockError struct {
	Reason    StockReason
	Code      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s: product %s, requested %d, available %d",
		e.Reason, e.Code, e.Requested, e.Available)
}

func NewInsufficientStockError(code string, requested, available int) *StockError {
	return &StockError{
		Reason:    ReasonInsufficientStock,
		Code:      code,
		Requested: requested,
		Available: available,
	}
}

func NewStockViolationError(code string, requested, available int) *StockError {
	return &StockError{
		Reason:    ReasonStockViolation,
		Code:      code,
		Requested: requested,
		Available: available,
	}
}

func IsStockError(err error) (*StockError, bool) {
	var se *StockError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

type PaymentError struct {
	Due      decimal.Decimal
	Tendered decimal.Decimal
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: due %s, tendered %s",
		e.Due.StringFixed(2), e.Tendered.StringFixed(2))
}

func NewPaymentError(due, tendered decimal.Decimal) *PaymentError {
	return &PaymentError{Due: due, Tendered: tendered}
}

func IsPaymentError(err error) (*PaymentError, bool) {
	var pe *PaymentError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

type InvalidReturnError struct {
	Total decimal.Decimal
}

func (e *InvalidReturnError) Error() string {
	return fmt.Sprintf("return requires a negative total, got %s", e.Total.StringFixed(2))
}

func NewInvalidReturnError(total decimal.Decimal) *InvalidReturnError {
	return &InvalidReturnError{Total: total}
}

func IsInvalidReturnError(err error) (*InvalidReturnError, bool) {
	var ir *InvalidReturnError
	if errors.As(err, &ir) {
		return ir, true
	}
	return nil, false
}

// EmptyTransactionError signals a contract misuse: settling a transaction
// that holds no line items. It is kept distinct from the business errors
// so callers can treat it as a programming error.
type EmptyTransactionError struct{}

func (e *EmptyTransactionError) Error() string {
	return "transaction has no line items"
}

func NewEmptyTransactionError() *EmptyTransactionError {
	return &EmptyTransactionError{}
}

func IsEmptyTransactionError(err error) (*EmptyTransactionError, bool) {
	var et *EmptyTransactionError
	if errors.As(err, &et) {
		return et, true
	}
	return nil, false
}

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

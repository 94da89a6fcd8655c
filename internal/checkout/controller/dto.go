package controller

import "time"

type AddItemRequest struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

type SettleSaleRequest struct {
	TenderedAmount string `json:"tenderedAmount"`
}

type LineItemDTO struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type RegisterStateResponse struct {
	TraceID string        `json:"traceId"`
	Items   []LineItemDTO `json:"items"`
	Total   string        `json:"total"`
	Empty   bool          `json:"empty"`
}

type ReceiptResponse struct {
	TraceID   string        `json:"traceId"`
	ReceiptID string        `json:"receiptId"`
	Kind      string        `json:"kind"`
	Items     []LineItemDTO `json:"items"`
	Total     string        `json:"total"`
	Change    string        `json:"change,omitempty"`
	IssuedAt  time.Time     `json:"issuedAt"`
	Rendered  string        `json:"rendered"`
}

type ErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

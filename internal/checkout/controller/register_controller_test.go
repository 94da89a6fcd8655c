package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barliman/internal/catalog"
	"barliman/internal/checkout"
	"barliman/internal/domain"
	"barliman/internal/receipt"
)

func newTestController(t *testing.T) (*RegisterController, *catalog.Service) {
	t.Helper()
	cat := catalog.NewService(zap.NewNop())
	require.NoError(t, cat.Register(domain.Product{
		Code:  "P001",
		Name:  "Coca-Cola",
		Price: decimal.RequireFromString("3.5"),
		Stock: 100,
	}))
	tx := checkout.NewTransaction(cat, receipt.NewFactory(), zap.NewNop())
	return NewRegisterController(tx, zap.NewNop()), cat
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleAddItem_Success(t *testing.T) {
	ctrl, _ := newTestController(t)

	rec := doJSON(t, ctrl.HandleAddItem, http.MethodPost, `{"code":"P001","quantity":2}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RegisterStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Empty)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "P001", resp.Items[0].Code)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, "7.00", resp.Total)
	assert.NotEmpty(t, resp.TraceID)
}

func TestHandleAddItem_InvalidBody(t *testing.T) {
	ctrl, _ := newTestController(t)

	rec := doJSON(t, ctrl.HandleAddItem, http.MethodPost, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAddItem_MissingCode(t *testing.T) {
	ctrl, _ := newTestController(t)

	rec := doJSON(t, ctrl.HandleAddItem, http.MethodPost, `{"quantity":2}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAddItem_UnknownProduct(t *testing.T) {
	ctrl, _ := newTestController(t)

	rec := doJSON(t, ctrl.HandleAddItem, http.MethodPost, `{"code":"P999","quantity":1}`)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Code)
}

func TestHandleAddItem_InsufficientStock(t *testing.T) {
	ctrl, _ := newTestController(t)

	rec := doJSON(t, ctrl.HandleAddItem, http.MethodPost, `{"code":"P001","quantity":150}`)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Code)
}

func TestHandleSettleSale_Success(t *testing.T) {
	ctrl, cat := newTestController(t)

	doJSON(t, ctrl.HandleAddItem, http.MethodPost, `{"code":"P001","quantity":2}`)

	rec := doJSON(t, ctrl.HandleSettleSale, http.MethodPost, `{"tenderedAmount":"10.00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReceiptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SALE", resp.Kind)
	assert.Equal(t, "7.00", resp.Total)
	assert.Equal(t, "3.00", resp.Change)
	assert.NotEmpty(t, resp.ReceiptID)
	assert.Contains(t, resp.Rendered, "Receipt")

	p, err := cat.Lookup("P001")
	require.NoError(t, err)
	assert.Equal(t, 98, p.Stock)
}

func TestHandleSettleSale_InsufficientPayment(t *testing.T) {
	ctrl, _ := newTestController(t)

	doJSON(t, ctrl.HandleAddItem, http.MethodPost, `{"code":"P001","quantity":2}`)

	rec := doJSON(t, ctrl.HandleSettleSale, http.MethodPost, `{"tenderedAmount":"5.00"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INSUFFICIENT_PAYMENT", resp.Code)
}

func TestHandleSettleSale_BadTenderedAmount(t *testing.T) {
	ctrl, _ := newTestController(t)

	rec := doJSON(t, ctrl.HandleSettleSale, http.MethodPost, `{"tenderedAmount":"lots"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSettleSale_EmptyRegister(t *testing.T) {
	ctrl, _ := newTestController(t)

	rec := doJSON(t, ctrl.HandleSettleSale, http.MethodPost, `{"tenderedAmount":"10.00"}`)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "EMPTY_TRANSACTION", resp.Code)
}

func TestHandleSettleReturn_Success(t *testing.T) {
	ctrl, cat := newTestController(t)

	doJSON(t, ctrl.HandleAddItem, http.MethodPost, `{"code":"P001","quantity":-1}`)

	rec := doJSON(t, ctrl.HandleSettleReturn, http.MethodPost, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReceiptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "RETURN", resp.Kind)
	assert.Equal(t, "-3.50", resp.Total)
	assert.Empty(t, resp.Change)

	p, err := cat.Lookup("P001")
	require.NoError(t, err)
	assert.Equal(t, 101, p.Stock)
}

func TestHandleSettleReturn_NonNegativeTotal(t *testing.T) {
	ctrl, _ := newTestController(t)

	doJSON(t, ctrl.HandleAddItem, http.MethodPost, `{"code":"P001","quantity":2}`)

	rec := doJSON(t, ctrl.HandleSettleReturn, http.MethodPost, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_RETURN", resp.Code)
}

func TestHandleCancel_ClearsRegister(t *testing.T) {
	ctrl, cat := newTestController(t)

	doJSON(t, ctrl.HandleAddItem, http.MethodPost, `{"code":"P001","quantity":2}`)

	rec := doJSON(t, ctrl.HandleCancel, http.MethodDelete, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RegisterStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Empty)
	assert.Empty(t, resp.Items)

	p, err := cat.Lookup("P001")
	require.NoError(t, err)
	assert.Equal(t, 100, p.Stock)
}

func TestHandleGetRegister(t *testing.T) {
	ctrl, _ := newTestController(t)

	doJSON(t, ctrl.HandleAddItem, http.MethodPost, `{"code":"P001","quantity":3}`)

	rec := doJSON(t, ctrl.HandleGetRegister, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RegisterStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "10.50", resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "3.50", resp.Items[0].UnitPrice)
	assert.Equal(t, "10.50", resp.Items[0].Subtotal)
}

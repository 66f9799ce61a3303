package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	inverrors "github.com/vblinov/invtrack/internal/inventory/errors"
	"github.com/vblinov/invtrack/internal/inventory/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockInventoryService is a mock implementation of the InventoryService interface
type mockInventoryService struct {
	product  *service.ProductDto
	products []service.ProductDto
	order    *service.OrderDto
	orders   []service.OrderDto
	report   string
	error    error
}

func (m *mockInventoryService) AddProduct(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockInventoryService) FindProductByID(_ context.Context, _ string) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockInventoryService) FindAllProducts(_ context.Context) ([]service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockInventoryService) UpdateStock(_ context.Context, _ string, _ service.StockUpdateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockInventoryService) PlaceOrder(_ context.Context, _ service.OrderCreateDto) (*service.OrderDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.order, nil
}

func (m *mockInventoryService) FindAllOrders(_ context.Context) ([]service.OrderDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.orders, nil
}

func (m *mockInventoryService) RenderReport(_ context.Context) (string, error) {
	if m.error != nil {
		return "", m.error
	}
	return m.report, nil
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v any) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func newTestRouter(svc service.InventoryService) *chi.Mux {
	mux := chi.NewRouter()
	handler := NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	handler.RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, mux *chi.Mux, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func Test_Handler_AddProduct(t *testing.T) {
	widget := &service.ProductDto{ID: "p1", Name: "Widget", Price: decimal.RequireFromString("25.50"), Stock: 10}
	testCases := []struct {
		name         string
		mockService  mockInventoryService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product created",
			mockService:  mockInventoryService{product: widget},
			body:         `{"id":"p1","name":"Widget","price":"25.50","stock":"10"}`,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, widget),
		},
		{
			name:         "Error - invalid JSON",
			mockService:  mockInventoryService{},
			body:         `{"id":`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - missing fields",
			mockService:  mockInventoryService{},
			body:         `{"id":"p1"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - non-alphanumeric id",
			mockService:  mockInventoryService{},
			body:         `{"id":"p-1","name":"Widget","price":"25.50","stock":"10"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - duplicate id",
			mockService:  mockInventoryService{error: fmt.Errorf("product id p1 already exists: %w", inverrors.ErrInvalidArgument)},
			body:         `{"id":"p1","name":"Widget","price":"25.50","stock":"10"}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(&tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodPost, "/api/v1/products", tc.body)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			}
		})
	}
}

func Test_Handler_FindProductByID(t *testing.T) {
	widget := &service.ProductDto{ID: "p1", Name: "Widget", Price: decimal.RequireFromString("25.50"), Stock: 10}
	testCases := []struct {
		name         string
		mockService  mockInventoryService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product found",
			mockService:  mockInventoryService{product: widget},
			productID:    "p1",
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, widget),
		},
		{
			name:         "Error - product not found",
			mockService:  mockInventoryService{error: inverrors.ErrProductNotFound},
			productID:    "p9",
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - malformed id",
			mockService:  mockInventoryService{},
			productID:    "p-1",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(&tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodGet, "/api/v1/products/"+tc.productID, "")
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			}
		})
	}
}

func Test_Handler_FindAllProducts(t *testing.T) {
	// given
	products := []service.ProductDto{
		{ID: "p1", Name: "Widget", Price: decimal.RequireFromString("25.50"), Stock: 10},
		{ID: "p2", Name: "Gadget", Price: decimal.RequireFromString("50.00"), Stock: 5},
	}
	mux := newTestRouter(&mockInventoryService{products: products})

	// when
	rec := doRequest(t, mux, http.MethodGet, "/api/v1/products", "")

	// then
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, toJSON(t, products), rec.Body.String())
}

func Test_Handler_UpdateStock(t *testing.T) {
	updated := &service.ProductDto{ID: "p1", Name: "Widget", Price: decimal.RequireFromString("25.50"), Stock: 7}
	testCases := []struct {
		name         string
		mockService  mockInventoryService
		productID    string
		body         string
		expectedCode int
	}{
		{
			name:         "Success - stock updated",
			mockService:  mockInventoryService{product: updated},
			productID:    "p1",
			body:         `{"stock":"7"}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - product not found",
			mockService:  mockInventoryService{error: inverrors.ErrProductNotFound},
			productID:    "p9",
			body:         `{"stock":"7"}`,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - negative stock",
			mockService:  mockInventoryService{error: fmt.Errorf("stock -1 is negative: %w", inverrors.ErrInvalidArgument)},
			productID:    "p1",
			body:         `{"stock":"-1"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - missing stock field",
			mockService:  mockInventoryService{},
			productID:    "p1",
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(&tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodPut, "/api/v1/products/"+tc.productID+"/stock", tc.body)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

func Test_Handler_PlaceOrder(t *testing.T) {
	placed := &service.OrderDto{
		ID:        "123e4567-e89b-12d3-a456-426614174000",
		CreatedAt: "2026-08-29T10:00:00Z",
		Items: []service.OrderItemDto{{
			ProductID: "p1",
			Name:      "Widget",
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("25.50"),
			Subtotal:  decimal.RequireFromString("51.00"),
		}},
		Total: decimal.RequireFromString("51.00"),
	}
	testCases := []struct {
		name         string
		mockService  mockInventoryService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - order placed",
			mockService:  mockInventoryService{order: placed},
			body:         `{"items":[{"product_id":"p1","quantity":"2"}]}`,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, placed),
		},
		{
			name:         "Error - unknown product",
			mockService:  mockInventoryService{error: fmt.Errorf("unknown product p9: %w", inverrors.ErrInvalidArgument)},
			body:         `{"items":[{"product_id":"p9","quantity":"1"}]}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - line missing quantity",
			mockService:  mockInventoryService{},
			body:         `{"items":[{"product_id":"p1"}]}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(&tc.mockService)
			// when
			rec := doRequest(t, mux, http.MethodPost, "/api/v1/orders", tc.body)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			}
		})
	}
}

func Test_Handler_FindAllOrders(t *testing.T) {
	// given
	orders := []service.OrderDto{
		{ID: "123e4567-e89b-12d3-a456-426614174000", CreatedAt: "2026-08-29T10:00:00Z", Items: []service.OrderItemDto{}, Total: decimal.Zero},
	}
	mux := newTestRouter(&mockInventoryService{orders: orders})

	// when
	rec := doRequest(t, mux, http.MethodGet, "/api/v1/orders", "")

	// then
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, toJSON(t, orders), rec.Body.String())
}

func Test_Handler_Report(t *testing.T) {
	// given
	mux := newTestRouter(&mockInventoryService{report: "Products:\nWidget (p1)\nOrders:\n"})

	// when
	rec := doRequest(t, mux, http.MethodGet, "/api/v1/report", "")

	// then
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Widget (p1)")
}

func Test_Handler_HealthCheck(t *testing.T) {
	mux := newTestRouter(&mockInventoryService{})
	rec := doRequest(t, mux, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

// Package rest provides HTTP handlers for inventory operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	inverrors "github.com/vblinov/invtrack/internal/inventory/errors"
	"github.com/vblinov/invtrack/internal/inventory/service"
	"github.com/vblinov/invtrack/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  service.InventoryService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the inventory API with the provided service.
func NewHandler(service service.InventoryService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the inventory service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.FindAllProducts)
			r.Post("/", h.AddProduct)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.FindProductByID)
				r.Put("/stock", h.UpdateStock)
			})
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.FindAllOrders)
			r.Post("/", h.PlaceOrder)
		})
		r.Get("/report", h.Report)
	})

	r.Get("/healthz", h.HealthCheck)
}

// AddProduct handles the creation of a new product.
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto service.ProductCreateDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to add product", "ID", dto.ID)
	created, err := h.service.AddProduct(r.Context(), dto)
	if err != nil {
		if errors.Is(err, inverrors.ErrInvalidArgument) {
			mLogger.WarnContext(r.Context(), "Product rejected", "ID", dto.ID, "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error adding product", "ID", dto.ID, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to add product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product added successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindProductByID retrieves a product by its ID.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, inverrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %s", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAllProducts retrieves a list of all products.
func (h *Handler) FindAllProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	list, err := h.service.FindAllProducts(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// UpdateStock replaces the quantity on hand for a product.
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	var dto service.StockUpdateDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to update stock", "ID", id)
	updated, err := h.service.UpdateStock(r.Context(), id, dto)
	if err != nil {
		switch {
		case errors.Is(err, inverrors.ErrProductNotFound):
			mLogger.WarnContext(r.Context(), "Product not found for stock update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
		case errors.Is(err, inverrors.ErrInvalidArgument):
			mLogger.WarnContext(r.Context(), "Stock update rejected", "ID", id, "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
		default:
			mLogger.ErrorContext(r.Context(), "Error updating stock", "ID", id, "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update stock for product with ID %s", id))
		}
		return
	}
	mLogger.InfoContext(r.Context(), "Stock updated successfully", "ID", updated.ID, "NewStock", updated.Stock)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// PlaceOrder handles the placement of a new order.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var dto service.OrderCreateDto
	if !h.decodeAndValidate(w, r, mLogger, &dto) {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to place order", "lines", len(dto.Items))
	placed, err := h.service.PlaceOrder(r.Context(), dto)
	if err != nil {
		if errors.Is(err, inverrors.ErrInvalidArgument) {
			mLogger.WarnContext(r.Context(), "Order rejected", "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error placing order", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to place order")
		return
	}
	mLogger.InfoContext(r.Context(), "Order placed successfully", "ID", placed.ID, "Total", placed.Total)
	web.RespondJSON(w, mLogger, http.StatusCreated, placed)
}

// FindAllOrders retrieves all placed orders, oldest first.
func (h *Handler) FindAllOrders(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	list, err := h.service.FindAllOrders(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving order list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved order list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// Report renders the plain-text inventory report.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	text, err := h.service.RenderReport(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error rendering report", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to render report")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// decodeAndValidate decodes the JSON body into dst and runs struct
// validation, writing the error response itself on failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}

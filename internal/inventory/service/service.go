// Package service provides the implementation of inventory-related business logic.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vblinov/invtrack/internal/inventory/core"
	inverrors "github.com/vblinov/invtrack/internal/inventory/errors"
	"github.com/vblinov/invtrack/internal/inventory/report"
	"github.com/shopspring/decimal"
)

// InventoryService defines the presentation-facing operations over the
// inventory. It abstracts the underlying domain model and its invariants.
type InventoryService interface {
	// AddProduct parses the raw input, creates a product and adds it to the
	// catalog. Returns ErrInvalidArgument on malformed input, negative price
	// or stock, or a duplicate id.
	AddProduct(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// FindProductByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindProductByID(ctx context.Context, id string) (*ProductDto, error)

	// FindAllProducts returns all products in the catalog.
	// Returns an empty slice if no products exist.
	FindAllProducts(ctx context.Context) ([]ProductDto, error)

	// UpdateStock replaces the quantity on hand for a product.
	// Returns ErrProductNotFound for an unknown id, ErrInvalidArgument for a
	// malformed or negative stock value.
	UpdateStock(ctx context.Context, id string, stock StockUpdateDto) (*ProductDto, error)

	// PlaceOrder builds an order from the given lines and appends it to the
	// order history. Returns ErrInvalidArgument for an unknown product id or
	// a malformed or non-positive quantity.
	PlaceOrder(ctx context.Context, order OrderCreateDto) (*OrderDto, error)

	// FindAllOrders returns all placed orders in insertion order.
	// Returns an empty slice if no orders exist.
	FindAllOrders(ctx context.Context) ([]OrderDto, error)

	// RenderReport returns the plain-text report over the current state.
	RenderReport(ctx context.Context) (string, error)
}

// Service implements InventoryService over a single Inventory. The domain
// model carries no locking of its own, so Service guards it with a RWMutex.
type Service struct {
	mu        sync.RWMutex
	inventory *core.Inventory
}

var _ InventoryService = (*Service)(nil)

// NewService creates a new instance of InventoryService over the provided inventory.
func NewService(inventory *core.Inventory) *Service {
	return &Service{
		inventory: inventory,
	}
}

// ProductCreateDto carries raw string input from the presentation layer.
// Trimming and numeric parsing happen here, not in the domain model.
type ProductCreateDto struct {
	ID    string `json:"id"    validate:"required,alphanum"`
	Name  string `json:"name"  validate:"required,max=100"`
	Price string `json:"price" validate:"required,numeric"`
	Stock string `json:"stock" validate:"required,numeric"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// StockUpdateDto represents the data transfer object for replacing product stock.
type StockUpdateDto struct {
	Stock string `json:"stock" validate:"required,numeric"`
}

// OrderCreateDto represents the data transfer object for placing a new order.
// An order with no lines is legal and totals to zero.
type OrderCreateDto struct {
	Items []OrderItemCreateDto `json:"items" validate:"dive"`
}

// OrderItemCreateDto is one requested order line, in raw string form.
type OrderItemCreateDto struct {
	ProductID string `json:"product_id" validate:"required,alphanum"`
	Quantity  string `json:"quantity"   validate:"required,numeric"`
}

// OrderDto represents the data transfer object for a placed order.
type OrderDto struct {
	ID        string          `json:"id"`
	CreatedAt string          `json:"created_at"`
	Items     []OrderItemDto  `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

// OrderItemDto is one line of a placed order.
type OrderItemDto struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// AddProduct creates a new product and returns it as a ProductDto.
func (s *Service) AddProduct(_ context.Context, dto ProductCreateDto) (*ProductDto, error) {
	price, err := parsePrice(dto.Price)
	if err != nil {
		return nil, err
	}
	stock, err := parseCount(dto.Stock, "stock")
	if err != nil {
		return nil, err
	}
	p, err := core.NewProduct(strings.TrimSpace(dto.ID), strings.TrimSpace(dto.Name), price, stock)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inventory.AddProduct(p); err != nil {
		return nil, fmt.Errorf("failed to add product %s: %w", p.ID(), err)
	}
	return toProductDto(p), nil
}

// FindProductByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindProductByID(_ context.Context, id string) (*ProductDto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.inventory.ProductByID(strings.TrimSpace(id))
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, inverrors.ErrProductNotFound)
	}
	return toProductDto(p), nil
}

// FindAllProducts retrieves all products and returns them as ProductDtos.
func (s *Service) FindAllProducts(_ context.Context) ([]ProductDto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := s.inventory.Products()
	dtos := make([]ProductDto, len(products))
	for i, p := range products {
		dtos[i] = *toProductDto(p)
	}
	return dtos, nil
}

// UpdateStock replaces the quantity on hand for a product and returns the
// updated product as a ProductDto.
func (s *Service) UpdateStock(_ context.Context, id string, dto StockUpdateDto) (*ProductDto, error) {
	stock, err := parseCount(dto.Stock, "stock")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.inventory.ProductByID(strings.TrimSpace(id))
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, inverrors.ErrProductNotFound)
	}
	if err := p.SetStock(stock); err != nil {
		return nil, fmt.Errorf("failed to update stock for product %s: %w", id, err)
	}
	return toProductDto(p), nil
}

// PlaceOrder builds an order from the given lines, places it, and returns it
// as an OrderDto. A rejected line aborts the whole call; nothing is placed.
func (s *Service) PlaceOrder(_ context.Context, dto OrderCreateDto) (*OrderDto, error) {
	order := core.NewOrder()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range dto.Items {
		qty, err := parseCount(line.Quantity, "quantity")
		if err != nil {
			return nil, err
		}
		p, ok := s.inventory.ProductByID(strings.TrimSpace(line.ProductID))
		if !ok {
			return nil, fmt.Errorf("unknown product %s: %w", line.ProductID, inverrors.ErrInvalidArgument)
		}
		if err := order.AddItem(p, qty); err != nil {
			return nil, fmt.Errorf("failed to add order line for product %s: %w", line.ProductID, err)
		}
	}
	if err := s.inventory.PlaceOrder(order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return toOrderDto(order), nil
}

// FindAllOrders retrieves all placed orders and returns them as OrderDtos,
// oldest first.
func (s *Service) FindAllOrders(_ context.Context) ([]OrderDto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := s.inventory.Orders()
	dtos := make([]OrderDto, len(orders))
	for i, o := range orders {
		dtos[i] = *toOrderDto(o)
	}
	return dtos, nil
}

// RenderReport renders the plain-text report over the current state.
func (s *Service) RenderReport(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return report.Render(s.inventory), nil
}

// parsePrice converts a raw price string into a decimal.
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("price %q is not a number: %w", raw, inverrors.ErrInvalidArgument)
	}
	return price, nil
}

// parseCount converts a raw integer string; field names the value in errors.
func parseCount(raw, field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer: %w", field, raw, inverrors.ErrInvalidArgument)
	}
	return n, nil
}

// toProductDto converts a core.Product to a ProductDto.
func toProductDto(p *core.Product) *ProductDto {
	return &ProductDto{
		ID:    p.ID(),
		Name:  p.Name(),
		Price: p.Price(),
		Stock: p.Stock(),
	}
}

// toOrderDto converts a core.Order to an OrderDto.
func toOrderDto(o *core.Order) *OrderDto {
	lines := o.Items()
	items := make([]OrderItemDto, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItemDto{
			ProductID: line.Product.ID(),
			Name:      line.Product.Name(),
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price(),
			Subtotal:  line.Product.Price().Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return &OrderDto{
		ID:        o.ID().String(),
		CreatedAt: o.Date().Format(time.RFC3339),
		Items:     items,
		Total:     o.TotalPrice(),
	}
}

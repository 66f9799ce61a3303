// Package core holds the in-memory inventory domain model: products, orders,
// and the inventory that owns them.
//
// Nothing in this package is safe for concurrent mutation. Callers that share
// an Inventory across goroutines must provide their own synchronization; the
// service layer does exactly that.
package core

import (
	"fmt"

	inverrors "github.com/vblinov/invtrack/internal/inventory/errors"
	"github.com/shopspring/decimal"
)

// Product is a stocked item. ID, name and price are fixed at construction;
// stock is mutable through SetStock only. A Product is shared by reference,
// so a stock change is visible to every holder.
type Product struct {
	id    string
	name  string
	price decimal.Decimal
	stock int
}

// NewProduct creates a product. It does not check id or name for emptiness;
// that is the caller's concern. Returns ErrInvalidArgument when price or
// stock is negative.
func NewProduct(id, name string, price decimal.Decimal, stock int) (*Product, error) {
	if price.IsNegative() {
		return nil, fmt.Errorf("price %s is negative: %w", price, inverrors.ErrInvalidArgument)
	}
	if stock < 0 {
		return nil, fmt.Errorf("stock %d is negative: %w", stock, inverrors.ErrInvalidArgument)
	}
	return &Product{
		id:    id,
		name:  name,
		price: price,
		stock: stock,
	}, nil
}

// ID returns the product identifier.
func (p *Product) ID() string { return p.id }

// Name returns the product name.
func (p *Product) Name() string { return p.name }

// Price returns the unit price.
func (p *Product) Price() decimal.Decimal { return p.price }

// Stock returns the quantity on hand.
func (p *Product) Stock() int { return p.stock }

// SetStock replaces the quantity on hand.
// Returns ErrInvalidArgument when stock is negative; the stored value is
// left unchanged in that case.
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return fmt.Errorf("stock %d is negative: %w", stock, inverrors.ErrInvalidArgument)
	}
	p.stock = stock
	return nil
}

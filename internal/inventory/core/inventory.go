package core

import (
	"fmt"

	inverrors "github.com/vblinov/invtrack/internal/inventory/errors"
)

// Inventory owns the product catalog and the list of placed orders.
// Products are keyed by id; orders are kept in insertion order, append-only.
type Inventory struct {
	products map[string]*Product
	orders   []*Order
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		products: make(map[string]*Product),
	}
}

// AddProduct inserts p into the catalog. Returns ErrInvalidArgument when p
// is nil or another product already uses its id; the catalog is unchanged in
// that case.
func (inv *Inventory) AddProduct(p *Product) error {
	if p == nil {
		return fmt.Errorf("product is nil: %w", inverrors.ErrInvalidArgument)
	}
	if _, exists := inv.products[p.ID()]; exists {
		return fmt.Errorf("product id %s already exists: %w", p.ID(), inverrors.ErrInvalidArgument)
	}
	inv.products[p.ID()] = p
	return nil
}

// ProductByID returns the product stored under id. The second return value
// is false when no such product exists; a miss is not an error.
func (inv *Inventory) ProductByID(id string) (*Product, bool) {
	p, ok := inv.products[id]
	return p, ok
}

// Products returns a copy of the catalog. Iteration order of the underlying
// map is not stable across calls.
func (inv *Inventory) Products() []*Product {
	list := make([]*Product, 0, len(inv.products))
	for _, p := range inv.products {
		list = append(list, p)
	}
	return list
}

// PlaceOrder appends o to the order history. Returns ErrInvalidArgument when
// o is nil. Placing an order does not decrement product stock; quantities on
// hand are tracked independently of order history.
func (inv *Inventory) PlaceOrder(o *Order) error {
	if o == nil {
		return fmt.Errorf("order is nil: %w", inverrors.ErrInvalidArgument)
	}
	inv.orders = append(inv.orders, o)
	return nil
}

// Orders returns a copy of the placed orders in insertion order.
func (inv *Inventory) Orders() []*Order {
	list := make([]*Order, len(inv.orders))
	copy(list, inv.orders)
	return list
}

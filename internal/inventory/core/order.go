package core

import (
	"fmt"
	"sort"
	"time"

	inverrors "github.com/vblinov/invtrack/internal/inventory/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order: a product reference and how many units
// of it were requested.
type OrderItem struct {
	Product  *Product
	Quantity int
}

// Order accumulates product quantities placed together. Lines are keyed by
// product id, so repeated additions of the same product fold into one line.
type Order struct {
	id    uuid.UUID
	date  time.Time
	items map[string]*OrderItem
}

// NewOrder creates an empty order stamped with the current time.
func NewOrder() *Order {
	return &Order{
		id:    uuid.New(),
		date:  time.Now(),
		items: make(map[string]*OrderItem),
	}
}

// ID returns the order identifier.
func (o *Order) ID() uuid.UUID { return o.id }

// Date returns the creation timestamp.
func (o *Order) Date() time.Time { return o.date }

// AddItem records qty units of p, accumulating with any existing line for
// the same product id. Returns ErrInvalidArgument when p is nil, qty is not
// positive, or a line for p's id already holds a different Product instance.
// A rejected call leaves the order unchanged.
func (o *Order) AddItem(p *Product, qty int) error {
	if p == nil {
		return fmt.Errorf("product is nil: %w", inverrors.ErrInvalidArgument)
	}
	if qty <= 0 {
		return fmt.Errorf("quantity %d is not positive: %w", qty, inverrors.ErrInvalidArgument)
	}
	if line, ok := o.items[p.ID()]; ok {
		// Lines are keyed by id; a second instance claiming the same id
		// would silently swap the priced reference, so reject it.
		if line.Product != p {
			return fmt.Errorf("product %s already present with a different instance: %w", p.ID(), inverrors.ErrInvalidArgument)
		}
		line.Quantity += qty
		return nil
	}
	o.items[p.ID()] = &OrderItem{Product: p, Quantity: qty}
	return nil
}

// TotalPrice sums price times quantity over all lines. The total is
// recomputed on every call, never cached.
func (o *Order) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.items {
		total = total.Add(line.Product.Price().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Items returns a copy of the order lines sorted by product id. Mutating the
// returned slice does not affect the order; only AddItem grows it.
func (o *Order) Items() []OrderItem {
	list := make([]OrderItem, 0, len(o.items))
	for _, line := range o.items {
		list = append(list, *line)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Product.ID() < list[j].Product.ID()
	})
	return list
}

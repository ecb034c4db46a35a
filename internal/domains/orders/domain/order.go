package domain

import (
	"errors"
	"slices"
	"time"

	itemdomain "github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
	memberdomain "github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
)

// Status enumerates order progression. Transitions only go from ordered to cancelled.
type Status string

const (
	StatusOrdered   Status = "ORDERED"
	StatusCancelled Status = "CANCELLED"
)

// DeliveryStatus tracks whether an order has shipped.
type DeliveryStatus string

const (
	DeliveryReady    DeliveryStatus = "READY"
	DeliveryComplete DeliveryStatus = "COMP"
)

var (
	ErrMemberRequired    = errors.New("order requires a stored member")
	ErrNoOrderItems      = errors.New("order requires at least one order item")
	ErrInvalidItem       = errors.New("order item requires a stored item")
	ErrInvalidCount      = errors.New("order item count must be greater than zero")
	ErrInvalidOrderPrice = errors.New("order price must not be negative")
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrAlreadyDelivered  = errors.New("delivered orders cannot be cancelled")
	ErrAlreadyCancelled  = errors.New("order is already cancelled")
)

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	return s == StatusOrdered || s == StatusCancelled
}

// Delivery holds the shipping address and state of one order.
type Delivery struct {
	ID      int64
	Address memberdomain.Address
	Status  DeliveryStatus
}

// NewDelivery prepares a delivery to address.
func NewDelivery(address memberdomain.Address) Delivery {
	return Delivery{Address: address, Status: DeliveryReady}
}

// OrderItem is one order line. Item is the item as it was loaded with the order.
type OrderItem struct {
	ID         int64
	Item       itemdomain.Item
	OrderPrice int
	Count      int
}

// NewOrderItem creates an order line and takes count units out of item's stock.
func NewOrderItem(item *itemdomain.Item, orderPrice, count int) (*OrderItem, error) {
	switch {
	case item == nil || item.ID <= 0:
		return nil, ErrInvalidItem
	case count <= 0:
		return nil, ErrInvalidCount
	case orderPrice < 0:
		return nil, ErrInvalidOrderPrice
	}
	if err := item.RemoveStock(count); err != nil {
		return nil, err
	}
	return &OrderItem{Item: *item.Clone(), OrderPrice: orderPrice, Count: count}, nil
}

// Restock returns this line's units to item.
func (oi OrderItem) Restock(item *itemdomain.Item) error {
	return item.AddStock(oi.Count)
}

// TotalPrice is price times count.
func (oi OrderItem) TotalPrice() int {
	return oi.OrderPrice * oi.Count
}

// Order is the purchase aggregate: a member, a delivery and its order lines.
type Order struct {
	ID        int64
	Member    memberdomain.Member
	Delivery  Delivery
	Items     []OrderItem
	OrderDate time.Time
	Status    Status
}

// NewOrder builds an ordered, unsaved order.
func NewOrder(member memberdomain.Member, delivery Delivery, items []OrderItem, orderedAt time.Time) (*Order, error) {
	order := &Order{
		Member:    member,
		Delivery:  delivery,
		Items:     slices.Clone(items),
		OrderDate: orderedAt,
		Status:    StatusOrdered,
	}
	if order.Delivery.Status == "" {
		order.Delivery.Status = DeliveryReady
	}
	if len(order.Items) == 0 {
		return nil, ErrNoOrderItems
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.Member.ID <= 0 {
		return ErrMemberRequired
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	for _, line := range o.Items {
		if line.Item.ID <= 0 {
			return ErrInvalidItem
		}
		if line.Count <= 0 {
			return ErrInvalidCount
		}
	}
	return nil
}

// Cancel marks the order cancelled. Stock is returned by the caller through
// OrderItem.Restock so it lands on the current item state.
func (o *Order) Cancel() error {
	if o.Delivery.Status == DeliveryComplete {
		return ErrAlreadyDelivered
	}
	if o.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	o.Status = StatusCancelled
	return nil
}

// TotalPrice sums all order lines.
func (o *Order) TotalPrice() int {
	total := 0
	for _, line := range o.Items {
		total += line.TotalPrice()
	}
	return total
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	clone := *o
	if o.Items == nil {
		return &clone
	}
	clone.Items = make([]OrderItem, len(o.Items))
	for i, line := range o.Items {
		line.Item = *line.Item.Clone()
		clone.Items[i] = line
	}
	return &clone
}

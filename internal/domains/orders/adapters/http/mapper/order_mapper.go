package mapper

import (
	"time"

	membermapper "github.com/Apurer/go-gin-shop-server/internal/domains/members/adapters/http/mapper"
	orderdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
)

// Delivery represents the transport-level delivery payload.
type Delivery struct {
	ID      int64
	Address membermapper.Address
	Status  string
}

// OrderLine represents one order line as exposed by the handlers.
type OrderLine struct {
	ItemID     int64
	ItemName   string
	OrderPrice int
	Count      int
	TotalPrice int
}

// Order represents the transport-layer shape used by the handlers. Lines is
// nil for views that do not load order lines.
type Order struct {
	ID         int64
	MemberID   int64
	MemberName string
	OrderDate  time.Time
	Status     string
	Delivery   Delivery
	Lines      []OrderLine
	TotalPrice int
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	model := Order{
		ID:         order.ID,
		MemberID:   order.Member.ID,
		MemberName: order.Member.Name,
		OrderDate:  order.OrderDate,
		Status:     string(order.Status),
		Delivery: Delivery{
			ID:      order.Delivery.ID,
			Address: membermapper.FromDomainAddress(order.Delivery.Address),
			Status:  string(order.Delivery.Status),
		},
		TotalPrice: order.TotalPrice(),
	}
	if order.Items != nil {
		model.Lines = make([]OrderLine, 0, len(order.Items))
		for _, line := range order.Items {
			model.Lines = append(model.Lines, OrderLine{
				ItemID:     line.Item.ID,
				ItemName:   line.Item.Name,
				OrderPrice: line.OrderPrice,
				Count:      line.Count,
				TotalPrice: line.TotalPrice(),
			})
		}
	}
	return model
}

func FromDomainOrders(orders []*orderdomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}

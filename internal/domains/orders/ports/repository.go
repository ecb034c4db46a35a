package ports

import (
	"context"
	"errors"

	itemdomain "github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
	memberdomain "github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists order aggregates. Orders returned by Search and
// ListWithMemberDelivery carry Member and Delivery but no order lines;
// GetByID and ListWithItems load the lines too, one Order per identity.
type Repository interface {
	// Save inserts a new order with its delivery and lines, or updates the
	// status of an existing one.
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// Search applies the conjunctive filters of search and returns at most
	// domain.MaxSearchResults orders in storage order.
	Search(ctx context.Context, search domain.OrderSearch) ([]*domain.Order, error)
	ListWithMemberDelivery(ctx context.Context, page domain.Page) ([]*domain.Order, error)
	ListWithItems(ctx context.Context, page domain.Page) ([]*domain.Order, error)
}

// MemberReader loads the members that place orders.
type MemberReader interface {
	GetByID(ctx context.Context, id int64) (*memberdomain.Member, error)
}

// ItemReader loads the items referenced by order lines.
type ItemReader interface {
	GetByID(ctx context.Context, id int64) (*itemdomain.Item, error)
}

// ItemStock loads and stores the items whose stock orders consume.
type ItemStock interface {
	GetForUpdate(ctx context.Context, id int64) (*itemdomain.Item, error)
	Save(ctx context.Context, item *itemdomain.Item) (*itemdomain.Item, error)
}

package ports

import (
	"context"

	ordertypes "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error)
	CancelOrder(ctx context.Context, id int64) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Search(ctx context.Context, search domain.OrderSearch) ([]*domain.Order, error)
	ListWithMemberDelivery(ctx context.Context, page domain.Page) ([]*domain.Order, error)
	ListWithItems(ctx context.Context, page domain.Page) ([]*domain.Order, error)
}

package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
)

// ItemChanges carries the editable item fields.
type ItemChanges struct {
	Name          string
	Price         int
	StockQuantity int
}

// Service exposes item use cases to adapters.
type Service interface {
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, id int64, changes ItemChanges) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}

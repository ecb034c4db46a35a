package ports

import (
	"context"

	"github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
)

// Service exposes member use cases to adapters.
type Service interface {
	Register(ctx context.Context, member *domain.Member) (int64, error)
	List(ctx context.Context) ([]*domain.Member, error)
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	UpdateName(ctx context.Context, id int64, name string) (*domain.Member, error)
}

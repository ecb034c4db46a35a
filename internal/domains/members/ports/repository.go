package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
)

var ErrNotFound = errors.New("member not found")

// ErrDuplicateName is returned by stores when the unique member name
// constraint rejects a write.
var ErrDuplicateName = errors.New("member name already stored")

type Repository interface {
	// Save inserts a member without an ID and updates one that has an ID.
	Save(ctx context.Context, member *domain.Member) (*domain.Member, error)
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	FindByName(ctx context.Context, name string) ([]*domain.Member, error)
	// List returns every member in storage order.
	List(ctx context.Context) ([]*domain.Member, error)
}

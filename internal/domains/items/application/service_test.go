package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-shop-server/internal/domains/items/adapters/memory"
	"github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/items/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/uow"
)

func newService() *Service {
	return NewService(memory.NewRepository(), uow.NewSerial(time.Second))
}

func TestSaveThenFind(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	item, err := domain.NewItem("JPA Book", 10000, 10, "book")
	require.NoError(t, err)
	saved, err := svc.Save(ctx, item)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	found, err := svc.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved, found)
}

func TestSaveRejectsInvalidItem(t *testing.T) {
	_, err := newService().Save(context.Background(), &domain.Item{Name: "book", Price: -5})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestUpdateAppliesChanges(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	saved, err := svc.Save(ctx, &domain.Item{Name: "book", Price: 100, StockQuantity: 1})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, saved.ID, ports.ItemChanges{Name: "JPA Book", Price: 200, StockQuantity: 7})
	require.NoError(t, err)
	require.Equal(t, "JPA Book", updated.Name)
	require.Equal(t, 200, updated.Price)
	require.Equal(t, 7, updated.StockQuantity)

	_, err = svc.Update(ctx, saved.ID, ports.ItemChanges{Name: ""})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(ctx, 404, ports.ItemChanges{Name: "x"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListReturnsStorageOrder(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	for _, name := range []string{"b", "a"} {
		_, err := svc.Save(ctx, &domain.Item{Name: name})
		require.NoError(t, err)
	}

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "b", items[0].Name)
	require.Equal(t, "a", items[1].Name)
}

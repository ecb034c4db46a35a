//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	itempostgres "github.com/Apurer/go-gin-shop-server/internal/domains/items/adapters/persistence/postgres"
	itemdomain "github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
	memberpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/members/adapters/persistence/postgres"
	memberdomain "github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-gin-shop-server/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-server/internal/platform/postgres/pgtest"
)

type seeded struct {
	db      *gorm.DB
	repo    *Repository
	members *memberpostgres.Repository
	items   *itempostgres.Repository
}

func setup(t *testing.T) seeded {
	db := pgtest.Setup(t)
	return seeded{db: db, repo: NewRepository(db), members: memberpostgres.NewRepository(db), items: itempostgres.NewRepository(db)}
}

func (s seeded) member(t *testing.T, name string) *memberdomain.Member {
	saved, err := s.members.Save(context.Background(), &memberdomain.Member{Name: name, Address: memberdomain.NewAddress("Seoul", "1", "06000")})
	require.NoError(t, err)
	return saved
}

func (s seeded) item(t *testing.T, name string) *itemdomain.Item {
	saved, err := s.items.Save(context.Background(), &itemdomain.Item{Name: name, Price: 100, StockQuantity: 10_000})
	require.NoError(t, err)
	return saved
}

func (s seeded) order(t *testing.T, member *memberdomain.Member, status domain.Status, items ...*itemdomain.Item) *domain.Order {
	lines := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		line, err := domain.NewOrderItem(item.Clone(), item.Price, 1)
		require.NoError(t, err)
		lines = append(lines, *line)
	}
	order, err := domain.NewOrder(*member, domain.NewDelivery(member.Address), lines, time.Now().UTC())
	require.NoError(t, err)
	order.Status = status
	saved, err := s.repo.Save(context.Background(), order)
	require.NoError(t, err)
	return saved
}

func orderIDs(orders []*domain.Order) []int64 {
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	kim := s.member(t, "Kim")
	book, pen := s.item(t, "book"), s.item(t, "pen")

	saved := s.order(t, kim, domain.StatusOrdered, book, pen)
	assert.NotZero(t, saved.ID)
	assert.NotZero(t, saved.Delivery.ID)
	assert.Equal(t, domain.DeliveryReady, saved.Delivery.Status)
	assert.Equal(t, "Kim", saved.Member.Name)
	require.Len(t, saved.Items, 2)
	assert.Equal(t, "book", saved.Items[0].Item.Name)
	assert.Equal(t, 200, saved.TotalPrice())

	require.NoError(t, saved.Cancel())
	updated, err := s.repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	_, err = s.repo.GetByID(ctx, saved.ID+100)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_SearchScenario(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	kim, lee := s.member(t, "Kim"), s.member(t, "Lee")
	book := s.item(t, "book")
	o1 := s.order(t, kim, domain.StatusOrdered, book)
	o2 := s.order(t, lee, domain.StatusCancelled, book)
	o3 := s.order(t, kim, domain.StatusCancelled, book)

	got, err := s.repo.Search(ctx, domain.OrderSearch{Status: domain.StatusOrdered})
	require.NoError(t, err)
	assert.Equal(t, []int64{o1.ID}, orderIDs(got))

	got, err = s.repo.Search(ctx, domain.OrderSearch{MemberName: "Ki"})
	require.NoError(t, err)
	assert.Equal(t, []int64{o1.ID, o3.ID}, orderIDs(got))

	got, err = s.repo.Search(ctx, domain.OrderSearch{Status: domain.StatusCancelled, MemberName: "Ki"})
	require.NoError(t, err)
	assert.Equal(t, []int64{o3.ID}, orderIDs(got))

	got, err = s.repo.Search(ctx, domain.OrderSearch{MemberName: "   "})
	require.NoError(t, err)
	assert.Equal(t, []int64{o1.ID, o2.ID, o3.ID}, orderIDs(got))

	got, err = s.repo.Search(ctx, domain.OrderSearch{MemberName: "kim"})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.repo.Search(ctx, domain.OrderSearch{MemberName: "%"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepository_SearchCapsResults(t *testing.T) {
	s := setup(t)
	kim := s.member(t, "Kim")
	book := s.item(t, "book")
	for i := 0; i < domain.MaxSearchResults+5; i++ {
		s.order(t, kim, domain.StatusOrdered, book)
	}

	got, err := s.repo.Search(context.Background(), domain.OrderSearch{})
	require.NoError(t, err)
	assert.Len(t, got, domain.MaxSearchResults)
}

func TestRepository_ListWithItemsDoesNotDuplicateRoots(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	kim := s.member(t, "Kim")
	a, b, c := s.item(t, "a"), s.item(t, "b"), s.item(t, "c")
	first := s.order(t, kim, domain.StatusOrdered, a, b, c)
	second := s.order(t, kim, domain.StatusOrdered, a, b, c)
	s.order(t, kim, domain.StatusOrdered, a)

	got, err := s.repo.ListWithItems(ctx, domain.Page{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, []int64{first.ID, second.ID}, orderIDs(got))
	for _, o := range got {
		require.Len(t, o.Items, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{o.Items[0].Item.Name, o.Items[1].Item.Name, o.Items[2].Item.Name})
	}

	simple, err := s.repo.ListWithMemberDelivery(ctx, domain.Page{Offset: 2})
	require.NoError(t, err)
	require.Len(t, simple, 1)
	assert.Empty(t, simple[0].Items)
	assert.Equal(t, "Seoul", simple[0].Delivery.Address.City)
}

func TestService_PlaceAndCancelAdjustStock(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	svc := application.NewService(s.repo, s.members, s.items, platformpostgres.NewTransactor(s.db, 5*time.Second))
	kim := s.member(t, "Kim")
	book := s.item(t, "book")

	order, err := svc.PlaceOrder(ctx, ordertypes.PlaceOrderInput{MemberID: kim.ID, ItemID: book.ID, Count: 3})
	require.NoError(t, err)
	stocked, err := s.items.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StockQuantity-3, stocked.StockQuantity)

	_, err = svc.PlaceOrder(ctx, ordertypes.PlaceOrderInput{MemberID: kim.ID, ItemID: book.ID, Count: 1_000_000})
	require.ErrorIs(t, err, application.ErrRejected)

	_, err = svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	restored, err := s.items.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StockQuantity, restored.StockQuantity)
}

func TestService_IdempotentPlacementCommitsKeyWithOrder(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	svc := application.NewService(s.repo, s.members, s.items, platformpostgres.NewTransactor(s.db, 5*time.Second),
		application.WithIdempotencyStore(NewIdempotencyStore(s.db)))
	kim := s.member(t, "Kim")
	book := s.item(t, "book")
	input := ordertypes.PlaceOrderInput{MemberID: kim.ID, ItemID: book.ID, Count: 2, IdempotencyKey: "retry-1"}

	first, err := svc.PlaceOrder(ctx, input)
	require.NoError(t, err)
	again, err := svc.PlaceOrder(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	stocked, err := s.items.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.StockQuantity-2, stocked.StockQuantity)

	input.Count = 5
	_, err = svc.PlaceOrder(ctx, input)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}

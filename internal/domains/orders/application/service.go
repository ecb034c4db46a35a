package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	ordertypes "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/uow"
)

// Service exposes order bounded context use cases.
type Service struct {
	repo    ports.Repository
	members ports.MemberReader
	items   ports.ItemStock
	tx      uow.Transactor
	keys    ports.IdempotencyStore
	now     func() time.Time
}

type Option func(*Service)

// WithIdempotencyStore enables replay of placements that carry an
// idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.keys = store }
}

// WithClock overrides the order date source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo ports.Repository, members ports.MemberReader, items ports.ItemStock, tx uow.Transactor, opts ...Option) *Service {
	if tx == nil {
		tx = uow.NewSerial(uow.DefaultTimeout)
	}
	s := &Service{repo: repo, members: members, items: items, tx: tx, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder orders input.Count units of one item for a member, shipping to
// the member's address. Stock is taken in the same unit of work. A known
// idempotency key returns the order it placed without touching stock.
func (s *Service) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*domain.Order, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	if s.keys == nil {
		key = ""
	}
	var placed *domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		hash := FingerprintPlaceOrder(input)
		if key != "" {
			record, err := s.keys.Get(ctx, key)
			if err != nil {
				return err
			}
			if record != nil {
				if record.RequestHash != hash {
					return fmt.Errorf("%w: %s", ports.ErrIdempotencyConflict, key)
				}
				placed, err = s.repo.GetByID(ctx, record.OrderID)
				return err
			}
		}
		member, err := s.members.GetByID(ctx, input.MemberID)
		if err != nil {
			return err
		}
		item, err := s.items.GetForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		line, err := domain.NewOrderItem(item, item.Price, input.Count)
		if err != nil {
			return err
		}
		order, err := domain.NewOrder(*member, domain.NewDelivery(member.Address), []domain.OrderItem{*line}, s.now())
		if err != nil {
			return err
		}
		if _, err := s.items.Save(ctx, item); err != nil {
			return err
		}
		placed, err = s.repo.Save(ctx, order)
		if err != nil || key == "" {
			return err
		}
		return s.keys.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: hash, OrderID: placed.ID, CreatedAt: s.now()})
	})
	if err != nil {
		return nil, mapError(err)
	}
	return placed, nil
}

// CancelOrder cancels an undelivered order and returns its units to stock.
func (s *Service) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var cancelled *domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		for _, line := range order.Items {
			item, err := s.items.GetForUpdate(ctx, line.Item.ID)
			if err != nil {
				return err
			}
			if err := line.Restock(item); err != nil {
				return err
			}
			if _, err := s.items.Save(ctx, item); err != nil {
				return err
			}
		}
		cancelled, err = s.repo.Save(ctx, order)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return cancelled, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var order *domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// Search returns at most domain.MaxSearchResults orders matching every
// populated criterion.
func (s *Service) Search(ctx context.Context, search domain.OrderSearch) ([]*domain.Order, error) {
	if err := search.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.list(ctx, func(ctx context.Context) ([]*domain.Order, error) {
		return s.repo.Search(ctx, search)
	})
}

func (s *Service) ListWithMemberDelivery(ctx context.Context, page domain.Page) ([]*domain.Order, error) {
	page = page.Normalize()
	return s.list(ctx, func(ctx context.Context) ([]*domain.Order, error) {
		return s.repo.ListWithMemberDelivery(ctx, page)
	})
}

func (s *Service) ListWithItems(ctx context.Context, page domain.Page) ([]*domain.Order, error) {
	page = page.Normalize()
	return s.list(ctx, func(ctx context.Context) ([]*domain.Order, error) {
		return s.repo.ListWithItems(ctx, page)
	})
}

func (s *Service) list(ctx context.Context, query func(ctx context.Context) ([]*domain.Order, error)) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		orders, err = query(ctx)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

var _ ports.Service = (*Service)(nil)

package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. Members and items are
// resolved through their own repositories on every read, the way the
// relational adapter joins them, so renames and stock changes show up.
type Repository struct {
	mu             sync.RWMutex
	orders         map[int64]*domain.Order
	nextID         int64
	nextDeliveryID int64
	nextLineID     int64
	members        ports.MemberReader
	items          ports.ItemReader
}

// NewRepository builds the adapter. Nil readers keep the snapshots taken at save time.
func NewRepository(members ports.MemberReader, items ports.ItemReader) *Repository {
	return &Repository{orders: map[int64]*domain.Order{}, members: members, items: items}
}

func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
		r.nextDeliveryID++
		clone.Delivery.ID = r.nextDeliveryID
		for i := range clone.Items {
			r.nextLineID++
			clone.Items[i].ID = r.nextLineID
		}
		r.orders[clone.ID] = clone
	} else {
		stored, ok := r.orders[clone.ID]
		if !ok {
			r.mu.Unlock()
			return nil, ports.ErrNotFound
		}
		stored.Status = clone.Status
		stored.Delivery.Status = clone.Delivery.Status
	}
	r.mu.Unlock()
	return r.GetByID(ctx, clone.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	order, ok := r.orders[id]
	if ok {
		order = order.Clone()
	}
	r.mu.RUnlock()
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := r.hydrate(ctx, order, true); err != nil {
		return nil, err
	}
	return order, nil
}

// Search evaluates the filters over orders in id order, stopping at
// domain.MaxSearchResults matches.
func (r *Repository) Search(ctx context.Context, search domain.OrderSearch) ([]*domain.Order, error) {
	filters := search.Filters()
	var result []*domain.Order
	for _, order := range r.snapshot() {
		if len(result) == domain.MaxSearchResults {
			break
		}
		if err := r.hydrate(ctx, order, false); err != nil {
			return nil, err
		}
		if domain.Matches(order, filters) {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *Repository) ListWithMemberDelivery(ctx context.Context, page domain.Page) ([]*domain.Order, error) {
	return r.page(ctx, page, false)
}

func (r *Repository) ListWithItems(ctx context.Context, page domain.Page) ([]*domain.Order, error) {
	return r.page(ctx, page, true)
}

func (r *Repository) page(ctx context.Context, page domain.Page, withItems bool) ([]*domain.Order, error) {
	page = page.Normalize()
	orders := r.snapshot()
	if page.Offset >= len(orders) {
		return nil, nil
	}
	orders = orders[page.Offset:min(len(orders), page.Offset+page.Limit)]
	for _, order := range orders {
		if err := r.hydrate(ctx, order, withItems); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *Repository) snapshot() []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, order.Clone())
	}
	slices.SortFunc(list, func(a, b *domain.Order) int { return cmp.Compare(a.ID, b.ID) })
	return list
}

// hydrate refreshes the member and, when withItems is set, the line items.
// Without items the lines are dropped to match the to-one-only read.
func (r *Repository) hydrate(ctx context.Context, order *domain.Order, withItems bool) error {
	if r.members != nil {
		member, err := r.members.GetByID(ctx, order.Member.ID)
		if err != nil {
			return err
		}
		order.Member = *member
	}
	if !withItems {
		order.Items = nil
		return nil
	}
	if r.items == nil {
		return nil
	}
	for i := range order.Items {
		item, err := r.items.GetByID(ctx, order.Items[i].Item.ID)
		if err != nil {
			return err
		}
		order.Items[i].Item = *item
	}
	return nil
}

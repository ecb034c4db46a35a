package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/members/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory member persistence adapter. Like the relational
// store it enforces unique member names.
type Repository struct {
	mu      sync.RWMutex
	members map[int64]*domain.Member
	byName  map[string]int64
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{members: map[int64]*domain.Member{}, byName: map[string]int64{}}
}

func (r *Repository) Save(_ context.Context, member *domain.Member) (*domain.Member, error) {
	if member == nil {
		return nil, errors.New("member is nil")
	}
	clone := *member
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, ok := r.byName[clone.Name]; ok && owner != clone.ID {
		return nil, ports.ErrDuplicateName
	}
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if previous, ok := r.members[clone.ID]; ok {
		delete(r.byName, previous.Name)
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.members[clone.ID] = &clone
	r.byName[clone.Name] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	member, ok := r.members[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *member
	return &clone, nil
}

func (r *Repository) FindByName(_ context.Context, name string) ([]*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return nil, nil
	}
	clone := *r.members[id]
	return []*domain.Member{&clone}, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Member, 0, len(r.members))
	for _, member := range r.members {
		clone := *member
		list = append(list, &clone)
	}
	slices.SortFunc(list, func(a, b *domain.Member) int { return cmp.Compare(a.ID, b.ID) })
	return list, nil
}

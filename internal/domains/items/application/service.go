package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/items/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/uow"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid item input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidStock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// Service exposes item bounded context use cases.
type Service struct {
	repo ports.Repository
	tx   uow.Transactor
}

func NewService(repo ports.Repository, tx uow.Transactor) *Service {
	if tx == nil {
		tx = uow.NewSerial(uow.DefaultTimeout)
	}
	return &Service{repo: repo, tx: tx}
}

func (s *Service) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, errors.New("item is nil")
	}
	if err := item.Validate(); err != nil {
		return nil, mapError(err)
	}
	var saved *domain.Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.repo.Save(ctx, item)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update loads the item, applies changes and persists it in one unit of work.
func (s *Service) Update(ctx context.Context, id int64, changes ports.ItemChanges) (*domain.Item, error) {
	var updated *domain.Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := item.Change(changes.Name, changes.Price, changes.StockQuantity); err != nil {
			return err
		}
		updated, err = s.repo.Save(ctx, item)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Item, error) {
	var items []*domain.Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var item *domain.Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

var _ ports.Service = (*Service)(nil)

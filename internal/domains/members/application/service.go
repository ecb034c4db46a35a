package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/members/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/uow"
)

const (
	registerRetries = 2
	registerBackoff = 20 * time.Millisecond
)

// Service exposes member bounded context use cases.
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

// Register stores a new member and returns its identity. Names are unique:
// the lookup rejects known names and the store's unique constraint catches
// concurrent registrations, which are retried so the lookup reports them.
func (s *Service) Register(ctx context.Context, member *domain.Member) (int64, error) {
	if member == nil {
		return 0, errors.New("member is nil")
	}
	if err := member.Validate(); err != nil {
		return 0, mapError(err)
	}
	var id int64
	register := func() error {
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := s.ensureNameAvailable(ctx, member.Name, 0); err != nil {
				return err
			}
			saved, err := s.repo.Save(ctx, member)
			if err != nil {
				return err
			}
			id = saved.ID
			return nil
		})
		if err != nil && !errors.Is(err, ports.ErrDuplicateName) {
			return backoff.Permanent(err)
		}
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(registerBackoff), registerRetries), ctx)
	if err := backoff.Retry(register, policy); err != nil {
		return 0, mapError(err)
	}
	member.ID = id
	return id, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Member, error) {
	var members []*domain.Member
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		members, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return members, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	var member *domain.Member
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		member, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return member, nil
}

// UpdateName loads the member, renames it and persists the change in one unit of work.
func (s *Service) UpdateName(ctx context.Context, id int64, name string) (*domain.Member, error) {
	var updated *domain.Member
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := member.Rename(name); err != nil {
			return err
		}
		if err := s.ensureNameAvailable(ctx, member.Name, member.ID); err != nil {
			return err
		}
		updated, err = s.repo.Save(ctx, member)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (s *Service) ensureNameAvailable(ctx context.Context, name string, self int64) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	for _, m := range existing {
		if m.ID != self {
			return fmt.Errorf("%w: %q", ErrDuplicateMember, name)
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)

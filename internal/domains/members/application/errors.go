package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/members/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid member input")
	// ErrDuplicateMember signals a member with the same name already exists.
	ErrDuplicateMember = errors.New("member already exists")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrDuplicateName) && !errors.Is(err, ErrDuplicateMember) {
		return fmt.Errorf("%w: %w", ErrDuplicateMember, err)
	}
	return err
}

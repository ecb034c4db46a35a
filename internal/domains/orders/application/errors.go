package application

import (
	"errors"
	"fmt"

	itemdomain "github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrRejected signals a valid request the current order or stock state refuses.
	ErrRejected = errors.New("order request rejected")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidCount) ||
		errors.Is(err, domain.ErrInvalidOrderPrice) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidItem) ||
		errors.Is(err, domain.ErrMemberRequired) ||
		errors.Is(err, domain.ErrNoOrderItems) ||
		errors.Is(err, itemdomain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, itemdomain.ErrNotEnoughStock) ||
		errors.Is(err, domain.ErrAlreadyDelivered) ||
		errors.Is(err, domain.ErrAlreadyCancelled) {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return err
}

package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	itemports "github.com/Apurer/go-gin-shop-server/internal/domains/items/ports"
	memberports "github.com/Apurer/go-gin-shop-server/internal/domains/members/ports"
	orderapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/uow"
)

// PlaceOrderActivityName places an order through the orders service.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Application error types carried across the workflow boundary so callers
// can restore the service error they stand for.
const (
	ErrorTypeMemberNotFound = "MemberNotFound"
	ErrorTypeItemNotFound   = "ItemNotFound"
	ErrorTypeInvalidInput   = "InvalidInput"
	ErrorTypeRejected       = "Rejected"
	ErrorTypeTimeout        = "Timeout"
	ErrorTypeKeyConflict    = "IdempotencyConflict"
	ErrorTypeFailed         = "PlaceOrderFailed"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs the placement use case. Failures are returned as
// non-retryable application errors typed by ErrorType.
func (a *Activities) PlaceOrder(ctx context.Context, input ordertypes.PlaceOrderInput) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "memberId", input.MemberID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "memberId", input.MemberID, "itemId", input.ItemID, "count", input.Count)
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "memberId", input.MemberID, "itemId", input.ItemID, "error", err)
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrorType(err), err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order, nil
}

// ErrorType classifies a placement error.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, memberports.ErrNotFound):
		return ErrorTypeMemberNotFound
	case errors.Is(err, itemports.ErrNotFound):
		return ErrorTypeItemNotFound
	case errors.Is(err, orderapp.ErrInvalidInput):
		return ErrorTypeInvalidInput
	case errors.Is(err, orderapp.ErrRejected):
		return ErrorTypeRejected
	case errors.Is(err, uow.ErrTimeout):
		return ErrorTypeTimeout
	case errors.Is(err, orderports.ErrIdempotencyConflict):
		return ErrorTypeKeyConflict
	default:
		return ErrorTypeFailed
	}
}

// Sentinel returns the service error an application error type stands for,
// or nil when the type carries no sentinel.
func Sentinel(errorType string) error {
	switch errorType {
	case ErrorTypeMemberNotFound:
		return memberports.ErrNotFound
	case ErrorTypeItemNotFound:
		return itemports.ErrNotFound
	case ErrorTypeInvalidInput:
		return orderapp.ErrInvalidInput
	case ErrorTypeRejected:
		return orderapp.ErrRejected
	case ErrorTypeTimeout:
		return uow.ErrTimeout
	case ErrorTypeKeyConflict:
		return orderports.ErrIdempotencyConflict
	default:
		return nil
	}
}

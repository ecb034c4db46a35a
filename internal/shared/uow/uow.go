// Package uow scopes use cases to a single unit of work.
package uow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultTimeout bounds a unit of work when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// ErrTimeout reports that a unit of work ran past its deadline.
var ErrTimeout = errors.New("unit of work timed out")

// Transactor runs fn inside one unit of work. The unit commits when fn returns
// nil and rolls back when fn returns an error or panics. Calls nested inside
// an active unit join it instead of opening a new one.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type activeKey struct{}

// MarkActive records on ctx that a unit of work is open.
func MarkActive(ctx context.Context) context.Context {
	return context.WithValue(ctx, activeKey{}, true)
}

// Active reports whether ctx already carries an open unit of work.
func Active(ctx context.Context) bool {
	active, _ := ctx.Value(activeKey{}).(bool)
	return active
}

// WithTimeout derives the deadline for a unit of work. A non-positive timeout
// falls back to DefaultTimeout.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// MapTimeout turns deadline expiry into ErrTimeout, keeping the cause.
func MapTimeout(ctx context.Context, err error) error {
	if errors.Is(err, ErrTimeout) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", ErrTimeout, err)
		}
	}
	return err
}

// Serial runs units of work one at a time. It backs the in-memory adapters:
// units are isolated from each other but a failed unit is not rolled back.
type Serial struct {
	mu      sync.Mutex
	timeout time.Duration
}

// NewSerial builds a Serial transactor bounded by timeout.
func NewSerial(timeout time.Duration) *Serial {
	return &Serial{timeout: timeout}
}

func (s *Serial) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if Active(ctx) {
		return fn(ctx)
	}
	ctx, cancel := WithTimeout(ctx, s.timeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return MapTimeout(ctx, err)
	}
	return MapTimeout(ctx, fn(MarkActive(ctx)))
}

var _ Transactor = (*Serial)(nil)

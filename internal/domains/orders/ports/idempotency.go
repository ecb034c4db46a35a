package ports

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyConflict indicates the key was already used for a different placement.
var ErrIdempotencyConflict = errors.New("idempotency key reused with a different request")

// IdempotencyRecord associates a client-supplied key with the order it placed.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     int64
	CreatedAt   time.Time
}

// IdempotencyStore remembers placement keys so retried requests replay the
// original order instead of placing another one.
type IdempotencyStore interface {
	// Get returns the record for key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save stores a new record. A key that is already stored yields
	// ErrIdempotencyConflict.
	Save(ctx context.Context, record IdempotencyRecord) error
}

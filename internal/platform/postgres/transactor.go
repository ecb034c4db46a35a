package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-server/internal/shared/uow"
)

type txKey struct{}

// Transactor opens one database transaction per unit of work and hands it to
// repositories through the context.
type Transactor struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewTransactor(db *gorm.DB, timeout time.Duration) *Transactor {
	return &Transactor{db: db, timeout: timeout}
}

// WithinTransaction commits when fn returns nil and rolls back on error or panic.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if t == nil || t.db == nil {
		return errors.New("postgres transactor not configured")
	}
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	ctx, cancel := uow.WithTimeout(ctx, t.timeout)
	defer cancel()
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(uow.MarkActive(context.WithValue(ctx, txKey{}, tx)))
	})
	return uow.MapTimeout(ctx, err)
}

// Conn returns the transaction bound to ctx, or db scoped to ctx when no unit
// of work is open.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

var _ uow.Transactor = (*Transactor)(nil)

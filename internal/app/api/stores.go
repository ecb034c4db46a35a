package api

import (
	"context"
	"fmt"
	"log/slog"

	itemmemory "github.com/Apurer/go-gin-shop-server/internal/domains/items/adapters/memory"
	itempostgres "github.com/Apurer/go-gin-shop-server/internal/domains/items/adapters/persistence/postgres"
	itemports "github.com/Apurer/go-gin-shop-server/internal/domains/items/ports"
	membermemory "github.com/Apurer/go-gin-shop-server/internal/domains/members/adapters/memory"
	memberpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/members/adapters/persistence/postgres"
	memberports "github.com/Apurer/go-gin-shop-server/internal/domains/members/ports"
	ordermemory "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/memory"
	orderpostgres "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/persistence/postgres"
	orderports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-shop-server/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-server/internal/shared/uow"
)

// Store backends reported in Stores.Backend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Stores bundles the repositories of every bounded context with the
// transactor that scopes their units of work.
type Stores struct {
	Members     memberports.Repository
	Items       itemports.Repository
	Orders      orderports.Repository
	Idempotency orderports.IdempotencyStore
	Tx          uow.Transactor
	Backend     string
}

// OpenStores connects to PostgreSQL when cfg.PostgresDSN is set and falls back
// to in-memory repositories otherwise. The returned cleanup closes the pool.
func OpenStores(ctx context.Context, cfg Config, logger *slog.Logger) (*Stores, func(), error) {
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, cfg.Pool(), logger)
	if db == nil {
		members := membermemory.NewRepository()
		items := itemmemory.NewRepository()
		return &Stores{
			Members:     members,
			Items:       items,
			Orders:      ordermemory.NewRepository(members, items),
			Idempotency: ordermemory.NewIdempotencyStore(),
			Tx:          uow.NewSerial(cfg.StoreTimeout),
			Backend:     BackendMemory,
		}, cleanup, nil
	}
	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("migrate schema: %w", err)
	}
	return &Stores{
		Members:     memberpostgres.NewRepository(db),
		Items:       itempostgres.NewRepository(db),
		Orders:      orderpostgres.NewRepository(db),
		Idempotency: orderpostgres.NewIdempotencyStore(db),
		Tx:          platformpostgres.NewTransactor(db, cfg.StoreTimeout),
		Backend:     BackendPostgres,
	}, cleanup, nil
}

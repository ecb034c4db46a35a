package api

import (
	itemobs "github.com/Apurer/go-gin-shop-server/internal/domains/items/adapters/observability"
	itemapp "github.com/Apurer/go-gin-shop-server/internal/domains/items/application"
	itemports "github.com/Apurer/go-gin-shop-server/internal/domains/items/ports"
	memberobs "github.com/Apurer/go-gin-shop-server/internal/domains/members/adapters/observability"
	memberapp "github.com/Apurer/go-gin-shop-server/internal/domains/members/application"
	memberports "github.com/Apurer/go-gin-shop-server/internal/domains/members/ports"
	orderobs "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/observability"
	orderapp "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-shop-server/internal/platform/observability"
)

// Services holds the decorated use-case services of every bounded context.
type Services struct {
	Members memberports.Service
	Items   itemports.Service
	Orders  orderports.Service
}

// NewServices builds the application services over stores and wraps each in
// its observability decorator.
func NewServices(stores *Stores, instruments *platformobservability.Instruments) Services {
	logger := instruments.Logger
	return Services{
		Members: memberobs.New(
			memberapp.NewService(stores.Members, stores.Tx),
			memberobs.WithLogger(logger),
			memberobs.WithTracer(instruments.Tracer("internal.members.application")),
			memberobs.WithMeter(instruments.Meter("internal.members.application")),
		),
		Items: itemobs.New(
			itemapp.NewService(stores.Items, stores.Tx),
			itemobs.WithLogger(logger),
			itemobs.WithTracer(instruments.Tracer("internal.items.application")),
			itemobs.WithMeter(instruments.Meter("internal.items.application")),
		),
		Orders: orderobs.New(
			orderapp.NewService(stores.Orders, stores.Members, stores.Items, stores.Tx,
				orderapp.WithIdempotencyStore(stores.Idempotency)),
			orderobs.WithLogger(logger),
			orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
			orderobs.WithMeter(instruments.Meter("internal.orders.application")),
		),
	}
}

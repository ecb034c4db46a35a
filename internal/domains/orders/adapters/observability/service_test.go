package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	itemmemory "github.com/Apurer/go-gin-shop-server/internal/domains/items/adapters/memory"
	itemdomain "github.com/Apurer/go-gin-shop-server/internal/domains/items/domain"
	membermemory "github.com/Apurer/go-gin-shop-server/internal/domains/members/adapters/memory"
	memberdomain "github.com/Apurer/go-gin-shop-server/internal/domains/members/domain"
	ordermemory "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-shop-server/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-shop-server/internal/shared/uow"
)

func TestPlaceAndCancelRecordSpansAndCounters(t *testing.T) {
	ctx := context.Background()
	members := membermemory.NewRepository()
	items := itemmemory.NewRepository()
	member, err := members.Save(ctx, &memberdomain.Member{Name: "Kim"})
	require.NoError(t, err)
	item, err := items.Save(ctx, &itemdomain.Item{Name: "book", Price: 100, StockQuantity: 5})
	require.NoError(t, err)

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	recorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	core := application.NewService(ordermemory.NewRepository(members, items), members, items, uow.NewSerial(time.Second))
	svc := New(core,
		WithMeter(meterProvider.Meter("test")),
		WithTracer(tracerProvider.Tracer("test")),
	)

	order, err := svc.PlaceOrder(ctx, ordertypes.PlaceOrderInput{MemberID: member.ID, ItemID: item.ID, Count: 2})
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, ordertypes.PlaceOrderInput{MemberID: member.ID, ItemID: item.ID, Count: 50})
	require.ErrorIs(t, err, application.ErrRejected)
	_, err = svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 3)
	require.Equal(t, "OrderService.PlaceOrder", spans[0].Name())
	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Equal(t, "OrderService.CancelOrder", spans[2].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Equal(t, int64(1), counterValue(t, rm, "orders.service.placed"))
	require.Equal(t, int64(1), counterValue(t, rm, "orders.service.cancelled"))
}

func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s not recorded", name)
	return 0
}

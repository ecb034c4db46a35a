package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"golang.org/x/sync/errgroup"

	shopserver "github.com/Apurer/go-gin-shop-server/go"

	orderworkflows "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/workflows"
	orderports "github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/go-gin-shop-server/internal/platform/observability"
)

const serviceName = "shop-api"

// Run boots the shop HTTP API with observability, repositories, and workflows
// wired, and serves until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Telemetry(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, cleanupStores, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupStores()
	logger.Info("repositories configured", slog.String("backend", stores.Backend))
	services := NewServices(stores, instruments)

	workflows, closeWorkflows := selectOrderWorkflows(stores.Backend, services.Orders, func() (client.Client, error) {
		return ConnectTemporal(cfg, instruments, "temporal-client")
	}, logger)
	defer closeWorkflows()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(services, workflows),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("shop API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("shop API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shop API shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// selectOrderWorkflows places orders through Temporal when a worker can reach
// the same stores as the API. The worker opens its own in-memory repositories,
// so the memory backend always places inline.
func selectOrderWorkflows(backend string, orders orderports.Service, dial func() (client.Client, error), logger *slog.Logger) (orderports.WorkflowOrchestrator, func()) {
	inline := orderworkflows.NewInlineOrderWorkflows(orders)
	if backend == BackendMemory {
		logger.Info("placing orders inline: Temporal workers cannot share in-memory stores", slog.String("backend", backend))
		return inline, func() {}
	}
	temporalClient, err := dial()
	if err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("backend", backend))
	return orderworkflows.NewTemporalOrderWorkflows(temporalClient), temporalClient.Close
}

// NewRouter builds the gin engine serving every bounded context.
func NewRouter(services Services, workflows orderports.WorkflowOrchestrator) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	return shopserver.NewRouterWithGinEngine(router, shopserver.ApiHandleFunctions{
		ItemAPI:   shopserver.NewItemAPI(services.Items),
		MemberAPI: shopserver.NewMemberAPI(services.Members),
		OrderAPI:  shopserver.NewOrderAPI(services.Orders, workflows),
	})
}

// ConnectTemporal dials Temporal with tracing and structured logging, unless
// cfg disables it.
func ConnectTemporal(cfg Config, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(tracerName),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

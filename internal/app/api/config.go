package api

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	platformobservability "github.com/Apurer/go-gin-shop-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shop-server/internal/platform/postgres"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string        `env:"PORT,default=8080"`
	PostgresDSN       string        `env:"POSTGRES_DSN"`
	PostgresMaxConns  int           `env:"POSTGRES_MAX_OPEN_CONNS,default=10"`
	PostgresIdleConns int           `env:"POSTGRES_MAX_IDLE_CONNS,default=5"`
	PostgresConnTTL   time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME,default=30m"`
	StoreTimeout      time.Duration `env:"STORE_TIMEOUT,default=5s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	TemporalAddress   string        `env:"TEMPORAL_ADDRESS"`
	TemporalNamespace string        `env:"TEMPORAL_NAMESPACE"`
	TemporalDisabled  bool          `env:"TEMPORAL_DISABLED"`
	Environment       string        `env:"ENVIRONMENT,default=local"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	OTLPEndpoint      string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure      bool          `env:"OTEL_EXPORTER_OTLP_INSECURE,default=true"`
}

// LoadConfig loads envFiles when present, decodes the environment, applies
// defaults, and validates basic constraints.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	if cfg.TemporalAddress == "" {
		cfg.TemporalAddress = client.DefaultHostPort
	}
	if cfg.TemporalNamespace == "" {
		cfg.TemporalNamespace = client.DefaultNamespace
	}
	if cfg.StoreTimeout <= 0 {
		return Config{}, fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.PostgresMaxConns < 0 || cfg.PostgresIdleConns < 0 {
		return Config{}, fmt.Errorf("postgres pool sizes must not be negative")
	}
	if _, err := platformobservability.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// Telemetry returns the observability settings for the named process.
func (c Config) Telemetry(serviceName string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  c.Environment,
		LogLevel:     c.LogLevel,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
	}
}

// Pool returns the connection pool bounds for PostgreSQL.
func (c Config) Pool() platformpostgres.Pool {
	return platformpostgres.Pool{
		MaxOpenConns:    c.PostgresMaxConns,
		MaxIdleConns:    c.PostgresIdleConns,
		ConnMaxLifetime: c.PostgresConnTTL,
	}
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

package app

import (
	"strings"
	"time"

	appdb "github.com/yungbote/storefront-backend/internal/data/db"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/envutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	DB          appdb.Config
	RedisAddr   string
	CORSOrigins []string

	ProductCacheTTL     time.Duration
	CollaboratorTimeout time.Duration
	EnrichConcurrency   int
	RelatedLimit        int

	JWTSecretKey string

	MetricsEnabled bool
	MetricsAddr    string
	Otel           observability.OtelConfig

	SeedOnStart bool
	SeedFile    string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port: envutil.String("PORT", "8080", log),
		DB: appdb.Config{
			Driver:     envutil.String("DB_DRIVER", "postgres", log),
			Host:       envutil.String("POSTGRES_HOST", "localhost", log),
			Port:       envutil.String("POSTGRES_PORT", "5432", log),
			User:       envutil.String("POSTGRES_USER", "postgres", log),
			Password:   envutil.String("POSTGRES_PASSWORD", "", log),
			Name:       envutil.String("POSTGRES_NAME", "storefront", log),
			SQLitePath: envutil.String("SQLITE_PATH", "", log),
		},
		RedisAddr:   envutil.String("REDIS_ADDR", "", log),
		CORSOrigins: splitList(envutil.String("CORS_ALLOWED_ORIGINS", "", log)),

		ProductCacheTTL:     envutil.Duration("PRODUCT_CACHE_TTL_SECONDS", 60*time.Second, time.Second, log),
		CollaboratorTimeout: envutil.Duration("COLLABORATOR_TIMEOUT_MS", 3*time.Second, time.Millisecond, log),
		EnrichConcurrency:   envutil.Int("ORDER_ENRICH_CONCURRENCY", 8, log),
		RelatedLimit:        envutil.Int("RELATED_PRODUCTS_LIMIT", 4, log),

		JWTSecretKey: envutil.String("JWT_SECRET_KEY", "defaultsecret", log),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false, log),
		MetricsAddr:    envutil.String("METRICS_ADDR", ":9090", log),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "storefront", log),
			Environment: envutil.String("OTEL_ENVIRONMENT", "development", log),
			Version:     envutil.String("OTEL_SERVICE_VERSION", "", log),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false, log),
			SampleRatio: float64(envutil.Int("OTEL_SAMPLE_PERCENT", 100, log)) / 100,
		},

		SeedOnStart: envutil.Bool("SEED_ON_START", false, log),
		SeedFile:    envutil.String("SEED_FILE", "", log),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

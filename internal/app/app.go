package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/clients/redis"
	appdb "github.com/yungbote/storefront-backend/internal/data/db"
	"github.com/yungbote/storefront-backend/internal/data/seed"
	"github.com/yungbote/storefront-backend/internal/http"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services
	Metrics  *observability.Metrics

	dbService    *appdb.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	dbService, err := appdb.NewService(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	if cfg.SeedOnStart {
		if err := runSeed(ctx, theDB, log, cfg.SeedFile); err != nil {
			_ = dbService.Close()
			log.Sync()
			return nil, err
		}
	}

	clientSet, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.Init(log)
	}
	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, cfg, reposet, clientSet, metrics)
	handlerset := wireHandlers(log, serviceset, theDB, clientSet)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Clients:      clientSet,
		Services:     serviceset,
		Metrics:      metrics,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches background loops: metrics exposition and collectors, and
// the cart-event listener that keeps the product cache fresh.
func (a *App) Start(ctx context.Context) {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Metrics != nil {
		a.Metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
		a.Metrics.StartPostgresCollector(ctx, a.Log, a.DB)
		if a.Clients.Redis != nil {
			a.Metrics.StartRedisCollector(ctx, a.Log, a.Clients.Redis)
		}
	}

	if a.Clients.CartEvents != nil && a.Clients.ProductCache != nil {
		cache := a.Clients.ProductCache
		err := a.Clients.CartEvents.StartForwarder(ctx, func(ev redis.CartEvent) {
			if ev.ProductID == "" {
				return
			}
			// Stock for a product with cart activity is likely to move.
			if err := cache.Invalidate(ctx, ev.ProductID); err != nil {
				a.Log.Warn("product cache invalidate failed", "product_id", ev.ProductID, "error", err)
			}
		})
		if err != nil {
			a.Log.Warn("cart event listener not started", "error", err)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Starting server...", "addr", addr)
	return a.Server.Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	a.Clients.Close()
	if a.dbService != nil {
		_ = a.dbService.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

func runSeed(ctx context.Context, db *gorm.DB, log *logger.Logger, path string) error {
	f, err := seed.Load(path)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	if _, err := seed.NewSeeder(db, log).Apply(ctx, f); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}
	return nil
}

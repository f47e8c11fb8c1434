package observability

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	aggregationLatency *HistogramVec
	partialResolutions *CounterVec
	collaboratorCalls  *CounterVec
	collaboratorTime   *HistogramVec
	productCache       *CounterVec
	quantityRejections *CounterVec
	cartAdds           *CounterVec

	pgStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	if v == "" {
		return false
	}
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

func Current() *Metrics {
	return instance
}

func scrapeInterval() time.Duration {
	v := strings.TrimSpace(os.Getenv("METRICS_SCRAPE_INTERVAL_SECONDS"))
	if v == "" {
		return 10 * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 10 * time.Second
	}
	return time.Duration(n) * time.Second
}

// Init builds the process-wide registry when METRICS_ENABLED is set.
// A nil *Metrics is valid and records nothing.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = New()
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

func New() *Metrics {
	latencyBuckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}
	return &Metrics{
		apiRequests: NewCounterVec("sf_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"sf_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			latencyBuckets,
		),
		apiInflight: NewGauge("sf_api_inflight_requests", "In-flight API requests."),

		aggregationLatency: NewHistogramVec(
			"sf_aggregation_duration_seconds",
			"View aggregation latency by view/outcome.",
			[]string{"view", "outcome"},
			latencyBuckets,
		),
		partialResolutions: NewCounterVec(
			"sf_aggregation_partial_total",
			"Secondary records left unresolved during aggregation.",
			[]string{"view", "part", "resolution"},
		),
		collaboratorCalls: NewCounterVec(
			"sf_collaborator_calls_total",
			"Collaborator calls by collaborator/outcome.",
			[]string{"collaborator", "outcome"},
		),
		collaboratorTime: NewHistogramVec(
			"sf_collaborator_call_duration_seconds",
			"Collaborator call latency by collaborator.",
			[]string{"collaborator"},
			latencyBuckets,
		),
		productCache: NewCounterVec("sf_product_cache_total", "Product cache lookups by result.", []string{"result"}),
		quantityRejections: NewCounterVec(
			"sf_quantity_rejections_total",
			"Quantity changes refused by the stock constraint, by outcome.",
			[]string{"outcome"},
		),
		cartAdds: NewCounterVec("sf_cart_adds_total", "Cart add attempts by mode/result.", []string{"mode", "result"}),

		pgStats:   NewGaugeVec("sf_db_pool", "Database pool stats.", []string{"stat"}),
		redisUp:   NewGauge("sf_redis_up", "Redis reachability (1 up, 0 down)."),
		redisPing: NewGauge("sf_redis_ping_seconds", "Redis ping latency in seconds."),
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(w io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []promWriter{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.aggregationLatency,
		m.partialResolutions,
		m.collaboratorCalls,
		m.collaboratorTime,
		m.productCache,
		m.quantityRejections,
		m.cartAdds,
		m.pgStats,
		m.redisUp,
		m.redisPing,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

// ObserveAggregation records one product-detail or order-history load.
func (m *Metrics) ObserveAggregation(view, outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.aggregationLatency.Observe(dur.Seconds(), view, outcome)
}

// IncPartial counts a secondary record the aggregator absorbed.
func (m *Metrics) IncPartial(view, part, resolution string) {
	if m == nil {
		return
	}
	m.partialResolutions.Inc(view, part, resolution)
}

func (m *Metrics) ObserveCollaborator(collaborator, outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.collaboratorCalls.Inc(collaborator, outcome)
	m.collaboratorTime.Observe(dur.Seconds(), collaborator)
}

func (m *Metrics) IncProductCache(result string) {
	if m == nil {
		return
	}
	m.productCache.Inc(result)
}

func (m *Metrics) IncQuantityRejection(outcome string) {
	if m == nil {
		return
	}
	m.quantityRejections.Inc(outcome)
}

func (m *Metrics) IncCartAdd(mode, result string) {
	if m == nil {
		return
	}
	m.cartAdds.Inc(mode, result)
}

func (m *Metrics) StartPostgresCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.pgStats.Set(float64(stats.OpenConnections), "open_connections")
				m.pgStats.Set(float64(stats.InUse), "in_use")
				m.pgStats.Set(float64(stats.Idle), "idle")
				m.pgStats.Set(float64(stats.WaitCount), "wait_count")
				m.pgStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
				m.pgStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
			}
		}
	}()
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *redis.Client) {
	if m == nil || rdb == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}

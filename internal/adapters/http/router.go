package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumexa/product-sdk/internal/adapters/http/handlers"
	"github.com/lumexa/product-sdk/internal/adapters/http/middleware"
	"github.com/lumexa/product-sdk/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the server spans.
	ServiceName string

	// StoreToken guards every /api route.
	StoreToken string

	HealthHandler  *handlers.HealthHandler
	CatalogHandler *handlers.CatalogHandler

	// Metrics records Prometheus request metrics. Optional.
	Metrics *middleware.Metrics

	// Timeout is the API request deadline. Zero disables it.
	Timeout time.Duration

	// MaxBodySize caps API request bodies. Zero disables the cap.
	MaxBodySize int64
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID, then correlation ID
//  3. OpenTelemetry tracing and metrics
//  4. Prometheus metrics
//  5. Logging (skips health endpoints)
//
// Route groups:
//   - /-/ (internal): health, build info and metrics, no token
//   - /api: the catalog, guarded by the store token, with the request
//     deadline and body cap
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
	)

	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics.Handler())
	}

	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine)
	}

	api := engine.Group("/api")
	api.Use(
		middleware.RequireStoreToken(cfg.StoreToken),
		middleware.MaxBodySize(cfg.MaxBodySize),
		middleware.Timeout(cfg.Timeout),
	)

	if cfg.CatalogHandler != nil {
		cfg.CatalogHandler.RegisterRoutes(api)
	}
}

package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lumexa/product-sdk/internal/adapters/http/handlers"
	"github.com/lumexa/product-sdk/internal/adapters/http/middleware"
	"github.com/lumexa/product-sdk/internal/adapters/memory"
	"github.com/lumexa/product-sdk/internal/app"
	"github.com/lumexa/product-sdk/internal/platform/config"
	"github.com/lumexa/product-sdk/internal/ports"
)

// SandboxOptions configures NewSandbox.
type SandboxOptions struct {
	Config    *config.SandboxConfig
	BuildInfo handlers.BuildInfo
	Logger    *slog.Logger

	// Registry collects the sandbox metrics and backs /-/metrics.
	// Defaults to a fresh registry.
	Registry *prometheus.Registry

	// Clock and IDs default to the wall clock and random UUIDs.
	Clock ports.Clock
	IDs   ports.IDGenerator
}

// Sandbox is an assembled sandbox catalog server.
type Sandbox struct {
	Server  *Server
	Store   *memory.Store
	Service *app.CatalogService
}

// NewSandbox wires the in-memory store, catalog service, health checks and
// router into a server. The store is seeded with demo records when the
// configuration asks for it.
func NewSandbox(ctx context.Context, opts SandboxOptions) (*Sandbox, error) {
	if opts.Config == nil {
		return nil, errors.New("sandbox config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	var storeOpts []memory.Option
	if opts.IDs != nil {
		storeOpts = append(storeOpts, memory.WithIDGenerator(opts.IDs))
	}

	store := memory.NewStore(storeOpts...)

	service := app.NewCatalogService(app.CatalogServiceConfig{
		Store:  store,
		Clock:  opts.Clock,
		Logger: logger,
	})

	if opts.Config.Seed {
		if err := service.Seed(ctx); err != nil {
			return nil, fmt.Errorf("seeding sandbox: %w", err)
		}
	}

	health := ports.NewHealthRegistry()
	if err := health.Register(store); err != nil {
		return nil, fmt.Errorf("registering store health check: %w", err)
	}

	metrics, err := middleware.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("registering sandbox metrics: %w", err)
	}

	server := NewServer(&opts.Config.Server, logger)

	SetupRouter(server.Engine(), RouterConfig{
		Logger:         logger,
		ServiceName:    opts.BuildInfo.Service,
		StoreToken:     opts.Config.StoreToken,
		HealthHandler:  handlers.NewHealthHandler(health, opts.BuildInfo, registry),
		CatalogHandler: handlers.NewCatalogHandler(service),
		Metrics:        metrics,
		Timeout:        opts.Config.Server.RequestTimeout,
		MaxBodySize:    opts.Config.Server.MaxRequestSize,
	})

	return &Sandbox{
		Server:  server,
		Store:   store,
		Service: service,
	}, nil
}

// Package http serves the sandbox catalog API on gin: an in-memory
// implementation of the catalog wire contract for local development and
// contract tests.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumexa/product-sdk/internal/platform/config"
)

// Server runs a gin engine behind an http.Server.
type Server struct {
	engine   *gin.Engine
	http     *http.Server
	cfg      *config.ServerConfig
	logger   *slog.Logger
	listener net.Listener
}

// NewServer prepares a server for cfg. Nothing listens until Start.
func NewServer(cfg *config.ServerConfig, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Engine returns the gin engine routes are registered on.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Config returns the server settings.
func (s *Server) Config() *config.ServerConfig {
	return s.cfg
}

// Start binds the listen address and serves in the background. A bind
// failure or serving error is delivered on the returned channel, which is
// closed once the server stops.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		errCh <- fmt.Errorf("listen on %s: %w", s.http.Addr, err)
		close(errCh)

		return errCh
	}

	s.listener = ln
	s.logger.Info("sandbox catalog server listening",
		slog.String("addr", ln.Addr().String()),
		slog.Duration("read_timeout", s.cfg.ReadTimeout),
		slog.Duration("write_timeout", s.cfg.WriteTimeout),
	)

	go func() {
		defer close(errCh)

		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve: %w", err)
		}
	}()

	return errCh
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("stopping sandbox catalog server")

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// Addr is the bound address once started, so port 0 resolves to the
// chosen port, and the configured address before that.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.http.Addr
}

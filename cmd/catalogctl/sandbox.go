package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	sandboxhttp "github.com/lumexa/product-sdk/internal/adapters/http"
	"github.com/lumexa/product-sdk/internal/adapters/http/handlers"
)

func (c *cli) sandboxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Run a local catalog API for development and tests",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory catalog until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serveSandbox(cmd)
		},
	}

	flags := serve.Flags()
	flags.String("host", "", "listen host, overrides sandbox.server.host")
	flags.Int("port", 0, "listen port, overrides sandbox.server.port")
	flags.String("token", "", "store token clients must send, overrides sandbox.store_token")
	flags.Bool("seed", true, "load demo records, overrides sandbox.seed")

	cmd.AddCommand(serve)

	return cmd
}

func (c *cli) serveSandbox(cmd *cobra.Command) error {
	cfg := c.cfg.Sandbox

	r := &flagReader{cmd: cmd}
	if host := r.string("host"); host != nil {
		cfg.Server.Host = *host
	}

	if token := r.string("token"); token != nil {
		cfg.StoreToken = *token
	}

	if seed := r.bool("seed"); seed != nil {
		cfg.Seed = *seed
	}

	if r.err != nil {
		return r.err
	}

	if cmd.Flags().Changed("port") {
		port, err := cmd.Flags().GetInt("port")
		if err != nil {
			return err
		}

		cfg.Server.Port = port
	}

	if cfg.StoreToken == "" {
		return errors.New("sandbox store token must not be empty")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx := cmd.Context()

	sandbox, err := sandboxhttp.NewSandbox(ctx, sandboxhttp.SandboxOptions{
		Config:    &cfg,
		BuildInfo: handlers.NewBuildInfo("catalog-sandbox", Version, Commit, BuildTime),
		Logger:    c.logger,
		Registry:  registry,
	})
	if err != nil {
		return err
	}

	defer func() {
		if err := sandbox.Store.Close(); err != nil {
			c.logger.Error("closing store", slog.Any("error", err))
		}
	}()

	errCh := sandbox.Server.Start()

	c.logger.Info("sandbox listening",
		slog.String("addr", sandbox.Server.Addr()),
		slog.Bool("seeded", cfg.Seed),
	)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("sandbox server: %w", err)
		}

		return nil
	case <-ctx.Done():
		c.logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := sandbox.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("sandbox shutdown: %w", err)
	}

	c.logger.Info("sandbox stopped")

	return nil
}

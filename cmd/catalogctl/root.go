package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lumexa/product-sdk/internal/adapters/clients"
	"github.com/lumexa/product-sdk/internal/adapters/http/middleware"
	"github.com/lumexa/product-sdk/internal/platform/config"
	"github.com/lumexa/product-sdk/internal/platform/logging"
	"github.com/lumexa/product-sdk/internal/platform/telemetry"
	"github.com/lumexa/product-sdk/pkg/catalog"
)

const defaultProfile = "local"

// cli holds the root flags and what PersistentPreRunE builds from them.
type cli struct {
	configFile string
	profile    string
	compact    bool

	stdout io.Writer
	stderr io.Writer

	cfg       *config.Config
	logger    *slog.Logger
	telemetry *telemetry.Provider

	// transport is built on first use and shared by the commands of one run.
	transport *clients.Client
}

// run executes catalogctl with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}

	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	c.shutdown()

	if err != nil {
		c.printError(err)
		return 1
	}

	return 0
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Manage a product catalog through its HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = defaultProfile
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "YAML config file layered over configs/base.yaml and the profile")
	flags.StringVar(&c.profile, "profile", profile, "config profile, loads configs/<profile>.yaml")
	flags.BoolVar(&c.compact, "compact", false, "print compact JSON")

	root.AddCommand(
		c.productsCommand(),
		c.variantsCommand(),
		c.imagesCommand(),
		c.typesCommand(),
		c.categoriesCommand(),
		c.statusCommand(),
		c.sandboxCommand(),
		c.versionCommand(),
	)

	return root
}

// setup loads configuration, then builds the logger and telemetry, and tags
// the command context with ids for this invocation.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.profile, c.configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
		Secrets: []string{cfg.Catalog.StoreToken, cfg.Sandbox.StoreToken},
	}, c.stderr)
	logging.SetDefault(logger)

	ctx := cmd.Context()

	provider, err := telemetry.New(ctx, telemetry.ConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	c.cfg = cfg
	c.logger = logger
	c.telemetry = provider

	correlationID := uuid.NewString()
	requestID := uuid.NewString()

	ctx = logging.WithContext(ctx, logger)
	ctx = middleware.ContextWithCorrelationID(ctx, correlationID)
	ctx = logging.WithCorrelationID(ctx, correlationID)
	ctx = middleware.ContextWithRequestID(ctx, requestID)
	ctx = logging.WithRequestID(ctx, requestID)
	cmd.SetContext(ctx)

	logger.Debug("catalogctl starting",
		slog.String("command", cmd.CommandPath()),
		slog.String("profile", c.profile),
		slog.String("environment", cfg.App.Environment),
	)

	return nil
}

func (c *cli) shutdown() {
	if c.telemetry == nil {
		return
	}

	if err := c.telemetry.Shutdown(context.Background()); err != nil {
		c.logger.Error("telemetry shutdown error", slog.Any("error", err))
	}
}

// catalogClient returns an SDK client over the resilient transport.
func (c *cli) catalogClient() (*catalog.Client, error) {
	if c.transport == nil {
		transport, err := clients.New(clients.ConfigFrom(c.cfg, c.logger))
		if err != nil {
			return nil, fmt.Errorf("creating transport: %w", err)
		}

		c.transport = transport
	}

	client, err := catalog.New(catalog.Config{
		BaseURL:          c.cfg.Catalog.BaseURL,
		StoreToken:       c.cfg.Catalog.StoreToken,
		Transport:        c.transport,
		Logger:           c.logger,
		MaxResponseBytes: c.cfg.Catalog.MaxResponseBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("creating catalog client: %w", err)
	}

	return client, nil
}

// call runs fn with a catalog client and prints its result. A nil result
// prints nothing.
func (c *cli) call(cmd *cobra.Command, fn func(context.Context, *catalog.Client) (any, error)) error {
	client, err := c.catalogClient()
	if err != nil {
		return err
	}

	out, err := fn(cmd.Context(), client)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	return c.print(out)
}

func (c *cli) print(v any) error {
	var (
		data []byte
		err  error
	)

	if c.compact {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	_, err = fmt.Fprintln(c.stdout, string(data))

	return err
}

// errorOutput is what catalogctl prints on stderr when a command fails.
type errorOutput struct {
	Error  string              `json:"error"`
	Kind   string              `json:"kind,omitempty"`
	Status int                 `json:"status,omitempty"`
	Path   string              `json:"path,omitempty"`
	Fields map[string][]string `json:"errors,omitempty"`
}

func (c *cli) printError(err error) {
	out := errorOutput{Error: err.Error()}

	var catalogErr *catalog.Error
	if errors.As(err, &catalogErr) {
		out.Error = catalogErr.Message
		out.Kind = catalogErr.Kind.String()
		out.Status = catalogErr.StatusCode
		out.Path = catalogErr.Path
		out.Fields = catalogErr.Fields
	}

	data, marshalErr := json.Marshal(out)
	if marshalErr != nil {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
		return
	}

	fmt.Fprintln(c.stderr, string(data))
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.print(map[string]string{
				"version":    Version,
				"commit":     Commit,
				"build_time": BuildTime,
			})
		},
	}
}

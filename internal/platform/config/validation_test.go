package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "catalogctl",
			Version:     "1.0.0",
			Environment: "local",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			BaseURL:     "https://catalog.example.com",
			StoreToken:  "token",
			ServiceName: "product-catalog",
		},
		Client: ClientConfig{
			Timeout: 30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2.0,
				JitterFactor:    0.25,
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 3,
			},
			Transport: TransportConfig{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		Sandbox: SandboxConfig{
			Server: ServerConfig{
				Port:            8080,
				Host:            "127.0.0.1",
				ReadTimeout:     30 * time.Second,
				WriteTimeout:    30 * time.Second,
				IdleTimeout:     120 * time.Second,
				ShutdownTimeout: 10 * time.Second,
				MaxRequestSize:  1048576,
			},
			StoreToken: "sandbox-token",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   []string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty catalog token", mutate: func(c *Config) { c.Catalog.StoreToken = "" }},
		{name: "rate limit with burst", mutate: func(c *Config) { c.Client.RateLimit = RateLimitConfig{RPS: 5, Burst: 2} }},
		{name: "trace level", mutate: func(c *Config) { c.Log.Level = "trace" }},
		{name: "pretty format", mutate: func(c *Config) { c.Log.Format = "pretty" }},
		{name: "test environment", mutate: func(c *Config) { c.App.Environment = "test" }},
		{
			name:   "missing app name",
			mutate: func(c *Config) { c.App.Name = "" },
			want:   []string{"app.name is required"},
		},
		{
			name:   "unknown environment",
			mutate: func(c *Config) { c.App.Environment = "staging" },
			want:   []string{"app.environment must be one of: local dev qa prod test"},
		},
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Log.Level = "verbose" },
			want:   []string{"log.level must be one of"},
		},
		{
			name:   "log file without path",
			mutate: func(c *Config) { c.Log.File = LogFileConfig{Enabled: true} },
			want:   []string{"log.file.path is required when Enabled true"},
		},
		{
			name:   "missing base url",
			mutate: func(c *Config) { c.Catalog.BaseURL = "" },
			want:   []string{"catalog.base_url is required"},
		},
		{
			name:   "malformed base url",
			mutate: func(c *Config) { c.Catalog.BaseURL = "not a url" },
			want:   []string{"catalog.base_url must be a valid URL"},
		},
		{
			name:   "negative response cap",
			mutate: func(c *Config) { c.Catalog.MaxResponseBytes = -1 },
			want:   []string{"catalog.max_response_bytes must be at least 0"},
		},
		{
			name:   "telemetry without endpoint",
			mutate: func(c *Config) { c.Telemetry = TelemetryConfig{Enabled: true, ServiceName: "catalogctl"} },
			want:   []string{"telemetry.endpoint is required when"},
		},
		{
			name:   "sampling above one",
			mutate: func(c *Config) { c.Telemetry.SamplingRate = 1.5 },
			want:   []string{"telemetry.sampling_rate must be at most 1"},
		},
		{
			name:   "client timeout too small",
			mutate: func(c *Config) { c.Client.Timeout = time.Millisecond },
			want:   []string{"client.timeout must be at least 100ms"},
		},
		{
			name:   "zero attempts",
			mutate: func(c *Config) { c.Client.Retry.MaxAttempts = 0 },
			want:   []string{"client.retry.max_attempts is required"},
		},
		{
			name:   "too many attempts",
			mutate: func(c *Config) { c.Client.Retry.MaxAttempts = 11 },
			want:   []string{"client.retry.max_attempts must be at most 10"},
		},
		{
			name:   "breaker without failure budget",
			mutate: func(c *Config) { c.Client.CircuitBreaker.MaxFailures = 0 },
			want:   []string{"client.circuit_breaker.max_failures"},
		},
		{
			name:   "rate limit without burst",
			mutate: func(c *Config) { c.Client.RateLimit = RateLimitConfig{RPS: 5} },
			want:   []string{"client.rate_limit.burst is required when RPS is set"},
		},
		{
			name:   "sandbox port out of range",
			mutate: func(c *Config) { c.Sandbox.Server.Port = 70000 },
			want:   []string{"sandbox.server.port must be at most 65535"},
		},
		{
			name:   "sandbox without token",
			mutate: func(c *Config) { c.Sandbox.StoreToken = "" },
			want:   []string{"sandbox.store_token is required"},
		},
		{
			name: "every failure is reported",
			mutate: func(c *Config) {
				c.App.Name = ""
				c.Catalog.BaseURL = ""
			},
			want: []string{"config validation failed", "app.name is required", "catalog.base_url is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			for _, msg := range tt.want {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestKeyPath(t *testing.T) {
	assert.Equal(t, "app.name", keyPath("Config.app.name"))
	assert.Equal(t, "sandbox.server.port", keyPath("Config.Sandbox.Server.Port"))
	assert.Equal(t, "single", keyPath("single"))
}

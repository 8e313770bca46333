package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lumexa/product-sdk/internal/adapters/clients"
	"github.com/lumexa/product-sdk/internal/ports"
)

const breakerMetric = "catalog_client_circuit_breaker_state"

// statusOutput is the report printed by `catalogctl status`.
type statusOutput struct {
	BaseURL        string                        `json:"base_url"`
	Status         ports.HealthStatus            `json:"status"`
	Checks         map[string]*ports.CheckResult `json:"checks"`
	CircuitBreaker map[string]string             `json:"circuit_breaker"`
	Timestamp      time.Time                     `json:"timestamp"`
}

var errUnhealthy = errors.New("catalog API is unhealthy")

func (c *cli) statusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Probe the catalog API and report client health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")

			return c.status(cmd.Context(), timeout)
		},
	}
	cmd.Flags().Duration("timeout", 10*time.Second, "overall probe timeout")

	return cmd
}

func (c *cli) status(ctx context.Context, timeout time.Duration) error {
	registry := prometheus.NewRegistry()
	if err := clients.RegisterMetrics(registry); err != nil {
		return fmt.Errorf("registering client metrics: %w", err)
	}

	client, err := c.catalogClient()
	if err != nil {
		return err
	}

	health := ports.NewHealthRegistry()
	probe := ports.CheckerFunc{
		CheckerName: "catalog-api",
		Fn: func(ctx context.Context) error {
			_, err := client.ListProductTypes(ctx)
			return err
		},
	}

	if err := health.Register(probe); err != nil {
		return err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result := health.CheckAll(ctx)

	breakers, err := breakerStates(registry)
	if err != nil {
		return err
	}

	out := statusOutput{
		BaseURL:        c.cfg.Catalog.BaseURL,
		Status:         result.Status,
		Checks:         result.Checks,
		CircuitBreaker: breakers,
		Timestamp:      result.Timestamp,
	}

	if err := c.print(out); err != nil {
		return err
	}

	if result.Status != ports.HealthStatusHealthy {
		return errUnhealthy
	}

	return nil
}

// breakerStates reads the breaker gauge back out of reg, keyed by downstream.
func breakerStates(reg prometheus.Gatherer) (map[string]string, error) {
	families, err := reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}

	states := make(map[string]string)

	for _, family := range families {
		if family.GetName() != breakerMetric {
			continue
		}

		for _, metric := range family.GetMetric() {
			downstream := ""
			for _, label := range metric.GetLabel() {
				if label.GetName() == "downstream" {
					downstream = label.GetValue()
				}
			}

			states[downstream] = breakerStateName(metric.GetGauge().GetValue())
		}
	}

	return states, nil
}

func breakerStateName(v float64) string {
	switch v {
	case 0:
		return "closed"
	case 1:
		return "half-open"
	case 2:
		return "open"
	default:
		return "unknown"
	}
}

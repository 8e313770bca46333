// Package app contains the sandbox catalog use cases. It assigns ids, slugs
// and timestamps, applies defaults, checks references between records, and
// leaves persistence to a ports.CatalogStore.
//
// What does NOT belong here:
//   - HTTP specifics (that's adapters/http)
//   - Storage details (that's adapters/memory)
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lumexa/product-sdk/internal/domain"
	"github.com/lumexa/product-sdk/internal/platform/logging"
	"github.com/lumexa/product-sdk/internal/ports"
)

// detailConcurrency bounds the per-product lookups of a product listing.
const detailConcurrency = 8

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now implements ports.Clock.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// CatalogService orchestrates catalog use cases.
type CatalogService struct {
	store  ports.CatalogStore
	clock  ports.Clock
	logger *slog.Logger
}

// CatalogServiceConfig contains the service dependencies. Clock and Logger
// are optional.
type CatalogServiceConfig struct {
	Store  ports.CatalogStore
	Clock  ports.Clock
	Logger *slog.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(cfg CatalogServiceConfig) *CatalogService {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogService{
		store:  cfg.Store,
		clock:  clock,
		logger: logger.With(slog.String("component", "app.CatalogService")),
	}
}

func (s *CatalogService) log(ctx context.Context, method string) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger).With(slog.String("method", method))
}

// now truncates to whole seconds, the resolution of the wire timestamps.
func (s *CatalogService) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Second)
}

// details loads what a product owns or references. The three lookups run
// concurrently.
func (s *CatalogService) details(ctx context.Context, product domain.Product) (domain.ProductDetails, error) {
	productType, images, variants, err := fetchAll(ctx,
		func(ctx context.Context) (*domain.ProductType, error) {
			if product.ProductTypeID == nil {
				return nil, nil
			}

			pt, err := s.store.GetProductType(ctx, *product.ProductTypeID)
			if err != nil {
				return nil, err
			}

			return &pt, nil
		},
		func(ctx context.Context) ([]domain.Image, error) {
			return s.store.ListImages(ctx, product.ID)
		},
		func(ctx context.Context) ([]domain.Variant, error) {
			return s.store.ListVariants(ctx, product.ID)
		},
	)
	if err != nil {
		return domain.ProductDetails{}, fmt.Errorf("loading product %s details: %w", product.ID, err)
	}

	return domain.ProductDetails{
		Product:     product,
		ProductType: productType,
		Images:      images,
		Variants:    variants,
	}, nil
}

func (s *CatalogService) detailsOf(ctx context.Context, products []domain.Product) ([]domain.ProductDetails, error) {
	lookups := make([]lookup[domain.ProductDetails], len(products))
	for i, p := range products {
		lookups[i] = func(ctx context.Context) (domain.ProductDetails, error) {
			return s.details(ctx, p)
		}
	}

	return fetchEach(ctx, detailConcurrency, lookups)
}

// requireText reports a missing or blank required field.
func requireText(fields map[string][]string, field string, v *string) {
	if v == nil || *v == "" {
		fields[field] = append(fields[field], fmt.Sprintf("The %s field is required.", humanize(field)))
	}
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// fieldsError returns nil when no field failed.
func fieldsError(fields map[string][]string) error {
	if len(fields) == 0 {
		return nil
	}

	return domain.NewFieldsValidationError(fields)
}

// slugFor returns the explicit slug or one derived from name.
func slugFor(explicit *string, name string) string {
	if explicit != nil && *explicit != "" {
		return *explicit
	}

	return domain.Slugify(name)
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}

	return *p
}

//go:build integration

package integration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/lumexa/product-sdk/internal/adapters/clients"
	sandboxhttp "github.com/lumexa/product-sdk/internal/adapters/http"
	"github.com/lumexa/product-sdk/internal/adapters/http/handlers"
	"github.com/lumexa/product-sdk/internal/platform/config"
	"github.com/lumexa/product-sdk/pkg/catalog"
)

const sandboxToken = "integration-token"

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startSandbox serves a fresh sandbox over a real listener.
func startSandbox(seed bool) (*httptest.Server, error) {
	sb, err := sandboxhttp.NewSandbox(context.Background(), sandboxhttp.SandboxOptions{
		Config: &config.SandboxConfig{
			Server: config.ServerConfig{
				Host:           "127.0.0.1",
				Port:           1,
				ReadTimeout:    5 * time.Second,
				WriteTimeout:   5 * time.Second,
				IdleTimeout:    5 * time.Second,
				RequestTimeout: 5 * time.Second,
				MaxRequestSize: 1 << 20,
			},
			StoreToken: sandboxToken,
			Seed:       seed,
		},
		BuildInfo: handlers.NewBuildInfo("catalog-sandbox", "integration", "none", "unknown"),
		Logger:    discardLogger(),
	})
	if err != nil {
		return nil, err
	}

	return httptest.NewServer(sb.Server.Engine()), nil
}

// newSDK builds a catalog client over the resilient transport.
func newSDK(baseURL, token string, transportCfg *clients.Config) (*catalog.Client, error) {
	if transportCfg == nil {
		transportCfg = &clients.Config{
			ServiceName: "integration-catalog",
			Timeout:     5 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     2,
				InitialInterval: 10 * time.Millisecond,
				MaxInterval:     50 * time.Millisecond,
				Multiplier:      2.0,
			},
			Circuit: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       time.Second,
				HalfOpenLimit: 1,
			},
			Logger: discardLogger(),
		}
	}

	transport, err := clients.New(transportCfg)
	if err != nil {
		return nil, err
	}

	return catalog.New(catalog.Config{
		BaseURL:    baseURL,
		StoreToken: token,
		Transport:  transport,
		Logger:     discardLogger(),
	})
}

// scenario holds state shared across step definitions within a scenario.
type scenario struct {
	server *httptest.Server
	client *catalog.Client

	products   []catalog.Product
	categories map[string]int64
	types      map[string]string
	err        error
}

func (s *scenario) reset() {
	if s.server != nil {
		s.server.Close()
	}

	*s = scenario{
		categories: make(map[string]int64),
		types:      make(map[string]string),
	}
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	s := &scenario{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		s.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		s.reset()
		return ctx, nil
	})

	ctx.Step(`^an empty sandbox catalog$`, s.anEmptySandboxCatalog)
	ctx.Step(`^a seeded sandbox catalog$`, s.aSeededSandboxCatalog)
	ctx.Step(`^a client using the sandbox store token$`, s.aClientUsingTheSandboxStoreToken)
	ctx.Step(`^a client using the store token "([^"]*)"$`, s.aClientUsingTheStoreToken)

	ctx.Step(`^(?:I create )?a product named "([^"]*)" priced (-?\d+(?:\.\d+)?)$`, s.aProductNamedPriced)
	ctx.Step(`^a product named "([^"]*)" that is inactive$`, s.aProductNamedThatIsInactive)
	ctx.Step(`^a product named "([^"]*)" available at "([^"]*)"$`, s.aProductNamedAvailableAt)
	ctx.Step(`^a product named "([^"]*)" of type "([^"]*)"$`, s.aProductNamedOfType)
	ctx.Step(`^I list (all|active|future) products$`, s.iListProducts)
	ctx.Step(`^I fetch the product "([^"]*)"$`, s.iFetchTheProduct)
	ctx.Step(`^the product list should contain "([^"]*)"$`, s.theProductListShouldContain)
	ctx.Step(`^the product list should not contain "([^"]*)"$`, s.theProductListShouldNotContain)
	ctx.Step(`^the product "([^"]*)" should cost (\d+(?:\.\d+)?)$`, s.theProductShouldCost)
	ctx.Step(`^the product "([^"]*)" should be active$`, s.theProductShouldBeActive)

	ctx.Step(`^I add variant "([^"]*)" with stock (\d+) to "([^"]*)"$`, s.iAddVariantWithStockTo)
	ctx.Step(`^the product "([^"]*)" should have (\d+) variants?$`, s.theProductShouldHaveVariants)

	ctx.Step(`^a category named "([^"]*)"$`, s.aCategoryNamed)
	ctx.Step(`^a category named "([^"]*)" under "([^"]*)"$`, s.aCategoryNamedUnder)
	ctx.Step(`^I delete the category "([^"]*)"$`, s.iDeleteTheCategory)
	ctx.Step(`^the category "([^"]*)" should have parent "([^"]*)"$`, s.theCategoryShouldHaveParent)
	ctx.Step(`^the category "([^"]*)" should have no parent$`, s.theCategoryShouldHaveNoParent)

	ctx.Step(`^a product type named "([^"]*)"$`, s.aProductTypeNamed)
	ctx.Step(`^I delete the product type "([^"]*)"$`, s.iDeleteTheProductType)

	ctx.Step(`^the request should fail with an? (api|validation) error with status (\d+)$`, s.theRequestShouldFailWith)
	ctx.Step(`^the error should name the field "([^"]*)"$`, s.theErrorShouldNameTheField)
}

func (s *scenario) startSandbox(seed bool) error {
	server, err := startSandbox(seed)
	if err != nil {
		return fmt.Errorf("starting sandbox: %w", err)
	}

	s.server = server

	return nil
}

func (s *scenario) anEmptySandboxCatalog() error { return s.startSandbox(false) }
func (s *scenario) aSeededSandboxCatalog() error { return s.startSandbox(true) }

func (s *scenario) aClientUsingTheSandboxStoreToken() error {
	return s.aClientUsingTheStoreToken(sandboxToken)
}

func (s *scenario) aClientUsingTheStoreToken(token string) error {
	if s.server == nil {
		return errors.New("no sandbox running")
	}

	client, err := newSDK(s.server.URL, token, nil)
	if err != nil {
		return err
	}

	s.client = client

	return nil
}

func (s *scenario) createProduct(in catalog.ProductInput) error {
	_, s.err = s.client.CreateProduct(context.Background(), in)
	return nil
}

func (s *scenario) aProductNamedPriced(name string, price float64) error {
	return s.createProduct(catalog.ProductInput{Name: &name, Price: &price})
}

func (s *scenario) aProductNamedThatIsInactive(name string) error {
	return s.createProduct(catalog.ProductInput{Name: &name, IsActive: catalog.Ptr(false)})
}

func (s *scenario) aProductNamedAvailableAt(name, at string) error {
	return s.createProduct(catalog.ProductInput{Name: &name, AvailableAt: &at})
}

func (s *scenario) aProductNamedOfType(name, typeName string) error {
	id, ok := s.types[typeName]
	if !ok {
		return fmt.Errorf("unknown product type %q", typeName)
	}

	return s.createProduct(catalog.ProductInput{Name: &name, ProductTypeID: &id})
}

func (s *scenario) iListProducts(which string) error {
	ctx := context.Background()

	switch which {
	case "active":
		s.products, s.err = s.client.ListActiveProducts(ctx)
	case "future":
		s.products, s.err = s.client.ListFutureProducts(ctx)
	default:
		s.products, s.err = s.client.ListProducts(ctx)
	}

	return nil
}

func (s *scenario) iFetchTheProduct(id string) error {
	_, s.err = s.client.GetProduct(context.Background(), id)
	return nil
}

func (s *scenario) listedSlugs() ([]string, error) {
	if s.err != nil {
		return nil, fmt.Errorf("listing products: %w", s.err)
	}

	slugs := make([]string, 0, len(s.products))
	for _, p := range s.products {
		if p.Slug != nil {
			slugs = append(slugs, *p.Slug)
		}
	}

	return slugs, nil
}

func (s *scenario) theProductListShouldContain(slug string) error {
	slugs, err := s.listedSlugs()
	if err != nil {
		return err
	}

	if !slices.Contains(slugs, slug) {
		return fmt.Errorf("expected %q in %v", slug, slugs)
	}

	return nil
}

func (s *scenario) theProductListShouldNotContain(slug string) error {
	slugs, err := s.listedSlugs()
	if err != nil {
		return err
	}

	if slices.Contains(slugs, slug) {
		return fmt.Errorf("did not expect %q in %v", slug, slugs)
	}

	return nil
}

func (s *scenario) productBySlug(slug string) (catalog.Product, error) {
	if s.err != nil {
		return catalog.Product{}, fmt.Errorf("previous step failed: %w", s.err)
	}

	return s.client.GetProductBySlug(context.Background(), slug)
}

func (s *scenario) theProductShouldCost(slug string, price float64) error {
	p, err := s.productBySlug(slug)
	if err != nil {
		return err
	}

	if p.Price == nil || *p.Price != price {
		return fmt.Errorf("expected price %.2f, got %v", price, p.Price)
	}

	return nil
}

func (s *scenario) theProductShouldBeActive(slug string) error {
	p, err := s.productBySlug(slug)
	if err != nil {
		return err
	}

	if !p.IsActive {
		return fmt.Errorf("product %q is not active", slug)
	}

	return nil
}

func (s *scenario) iAddVariantWithStockTo(sku string, stock int64, slug string) error {
	p, err := s.productBySlug(slug)
	if err != nil {
		return err
	}

	_, s.err = s.client.CreateVariant(context.Background(), p.ID, catalog.VariantInput{
		SKU:   &sku,
		Stock: &stock,
	})

	return nil
}

func (s *scenario) theProductShouldHaveVariants(slug string, count int) error {
	p, err := s.productBySlug(slug)
	if err != nil {
		return err
	}

	variants, err := s.client.ListVariants(context.Background(), p.ID)
	if err != nil {
		return err
	}

	if len(variants) != count {
		return fmt.Errorf("expected %d variants, got %d", count, len(variants))
	}

	return nil
}

func (s *scenario) createCategory(in catalog.CategoryInput) error {
	category, err := s.client.CreateCategory(context.Background(), in)
	if err != nil {
		return fmt.Errorf("creating category %q: %w", *in.Name, err)
	}

	s.categories[category.Name] = category.ID

	return nil
}

func (s *scenario) aCategoryNamed(name string) error {
	return s.createCategory(catalog.CategoryInput{Name: &name})
}

func (s *scenario) aCategoryNamedUnder(name, parent string) error {
	parentID, ok := s.categories[parent]
	if !ok {
		return fmt.Errorf("unknown category %q", parent)
	}

	return s.createCategory(catalog.CategoryInput{Name: &name, ParentID: &parentID})
}

func (s *scenario) iDeleteTheCategory(name string) error {
	s.err = s.client.DeleteCategory(context.Background(), s.categories[name])
	return nil
}

func (s *scenario) category(name string) (catalog.ProductCategory, error) {
	id, ok := s.categories[name]
	if !ok {
		return catalog.ProductCategory{}, fmt.Errorf("unknown category %q", name)
	}

	return s.client.GetCategory(context.Background(), id)
}

func (s *scenario) theCategoryShouldHaveParent(name, parent string) error {
	c, err := s.category(name)
	if err != nil {
		return err
	}

	want := s.categories[parent]
	if c.ParentID == nil || *c.ParentID != want {
		return fmt.Errorf("expected parent %d, got %v", want, c.ParentID)
	}

	return nil
}

func (s *scenario) theCategoryShouldHaveNoParent(name string) error {
	if s.err != nil {
		return fmt.Errorf("previous step failed: %w", s.err)
	}

	c, err := s.category(name)
	if err != nil {
		return err
	}

	if c.ParentID != nil {
		return fmt.Errorf("expected no parent, got %d", *c.ParentID)
	}

	return nil
}

func (s *scenario) aProductTypeNamed(name string) error {
	productType, err := s.client.CreateProductType(context.Background(), catalog.ProductTypeInput{Name: &name})
	if err != nil {
		return fmt.Errorf("creating product type: %w", err)
	}

	s.types[name] = productType.ID

	return nil
}

func (s *scenario) iDeleteTheProductType(name string) error {
	s.err = s.client.DeleteProductType(context.Background(), s.types[name])
	return nil
}

func (s *scenario) theRequestShouldFailWith(kind string, status int) error {
	if s.err == nil {
		return errors.New("expected the request to fail")
	}

	catalogErr, ok := catalog.AsError(s.err)
	if !ok {
		return fmt.Errorf("expected a *catalog.Error, got %T: %v", s.err, s.err)
	}

	if kind == "validation" && !catalog.IsValidation(s.err) {
		return fmt.Errorf("expected a validation error, got %s", catalogErr.Kind)
	}

	if kind == "api" && catalogErr.Kind.String() != "api" {
		return fmt.Errorf("expected an api error, got %s", catalogErr.Kind)
	}

	if catalogErr.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %v", status, catalogErr.StatusCode, s.err)
	}

	return nil
}

func (s *scenario) theErrorShouldNameTheField(field string) error {
	fields := catalog.FieldErrors(s.err)
	if _, ok := fields[field]; !ok {
		return fmt.Errorf("expected field %q in %v", field, fields)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

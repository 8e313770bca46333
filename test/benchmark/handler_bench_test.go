package benchmark

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	sandboxhttp "github.com/lumexa/product-sdk/internal/adapters/http"
	"github.com/lumexa/product-sdk/internal/adapters/http/handlers"
	"github.com/lumexa/product-sdk/internal/adapters/memory"
	"github.com/lumexa/product-sdk/internal/platform/config"
	"github.com/lumexa/product-sdk/internal/ports"
	"github.com/lumexa/product-sdk/pkg/catalog"
)

const benchToken = "bench-token"

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createGinContext(w http.ResponseWriter, r *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = r
	return c
}

func setupHealthHandler(b *testing.B) *handlers.HealthHandler {
	b.Helper()

	registry := ports.NewHealthRegistry()
	if err := registry.Register(memory.NewStore()); err != nil {
		b.Fatal(err)
	}

	buildInfo := handlers.NewBuildInfo("catalog-sandbox", "1.0.0", "abc123", "2024-01-01T00:00:00Z")

	return handlers.NewHealthHandler(registry, buildInfo, prometheus.NewRegistry())
}

func setupSandbox(b *testing.B) http.Handler {
	b.Helper()

	sb, err := sandboxhttp.NewSandbox(context.Background(), sandboxhttp.SandboxOptions{
		Config: &config.SandboxConfig{
			Server: config.ServerConfig{
				Host:           "127.0.0.1",
				Port:           8080,
				ReadTimeout:    5 * time.Second,
				WriteTimeout:   5 * time.Second,
				IdleTimeout:    5 * time.Second,
				RequestTimeout: 5 * time.Second,
				MaxRequestSize: 1 << 20,
			},
			StoreToken: benchToken,
			Seed:       true,
		},
		BuildInfo: handlers.NewBuildInfo("catalog-sandbox", "bench", "none", "unknown"),
		Logger:    discardLogger(),
	})
	if err != nil {
		b.Fatal(err)
	}

	return sb.Server.Engine()
}

// BenchmarkLivenessHandler measures the liveness probe.
func BenchmarkLivenessHandler(b *testing.B) {
	handler := setupHealthHandler(b)
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		handler.Liveness(createGinContext(w, req))
	}
}

// BenchmarkReadinessHandler measures readiness with the store check registered.
func BenchmarkReadinessHandler(b *testing.B) {
	handler := setupHealthHandler(b)
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		handler.Readiness(createGinContext(w, req))
	}
}

// BenchmarkListProducts measures a full request through the sandbox
// middleware chain against the seeded catalog.
func BenchmarkListProducts(b *testing.B) {
	engine := setupSandbox(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products", http.NoBody)
		req.Header.Set(catalog.HeaderStoreToken, benchToken)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}

// BenchmarkRejectedToken measures the cost of refusing an unauthenticated
// request.
func BenchmarkRejectedToken(b *testing.B) {
	engine := setupSandbox(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products", http.NoBody)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
	}
}

const productPayload = `{
  "id": "6f1c0c9e-5a39-4f43-9a55-0ad7c0c6f1a2",
  "name": "Classic T-Shirt",
  "slug": "classic-t-shirt",
  "description": "Heavyweight cotton tee.",
  "price": "19.99",
  "is_active": 1,
  "available_at": null,
  "product_type_id": "b5d1f7a0-1f0a-4d7e-8d7f-2a4d7e1c9b10",
  "product_type": {"id": "b5d1f7a0-1f0a-4d7e-8d7f-2a4d7e1c9b10", "name": "Apparel"},
  "images": [{"id": "i1", "name": "front", "path": "products/front.jpg", "order": 1}],
  "variants": [
    {"id": "v1", "sku": "TSHIRT-BLK-M", "stock": "12", "attributes": {"color": "black", "size": "M"}},
    {"id": "v2", "sku": "TSHIRT-WHT-L", "stock": 4, "attributes": {"color": "white", "size": "L"}}
  ]
}`

// BenchmarkDecodeProduct measures parsing and mapping a product payload,
// including the lenient numeric and boolean coercions.
func BenchmarkDecodeProduct(b *testing.B) {
	data := []byte(productPayload)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		v, err := catalog.ParseValue(data)
		if err != nil {
			b.Fatal(err)
		}

		if _, err := catalog.ProductFromValue(v); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEncodeProduct measures rendering a product back to JSON.
func BenchmarkEncodeProduct(b *testing.B) {
	v, err := catalog.ParseValue([]byte(productPayload))
	if err != nil {
		b.Fatal(err)
	}

	product, err := catalog.ProductFromValue(v)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := product.MarshalJSON(); err != nil {
			b.Fatal(err)
		}
	}
}

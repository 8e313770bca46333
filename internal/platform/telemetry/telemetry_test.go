package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumexa/product-sdk/internal/platform/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNew_DisabledIsNoop(t *testing.T) {
	t.Parallel()

	provider, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)
	assert.False(t, provider.Enabled())
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNew_NilConfig(t *testing.T) {
	t.Parallel()

	provider, err := New(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, provider.Enabled())
}

func TestConfigFrom(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		App: config.AppConfig{Name: "catalogctl", Version: "1.2.3", Environment: "dev"},
		Telemetry: config.TelemetryConfig{
			Enabled:      true,
			Endpoint:     "otel:4317",
			ServiceName:  "catalog-sandbox",
			SamplingRate: 0.5,
		},
	}

	got := ConfigFrom(cfg)

	assert.Equal(t, &Config{
		Enabled:      true,
		Endpoint:     "otel:4317",
		ServiceName:  "catalog-sandbox",
		Version:      "1.2.3",
		Environment:  "dev",
		SamplingRate: 0.5,
	}, got)
}

func TestMiddleware_PassesThrough(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(TracingMiddleware("catalog-sandbox"), Middleware())
	router.GET("/api/products/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": c.Param("id")}})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products/p-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"id":"p-1"}}`, w.Body.String())
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(Middleware())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouteOf_FallsBackForUnmatched(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/missing", nil)

	assert.Equal(t, unmatchedRoute, routeOf(c))
}

package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumexa/product-sdk/internal/adapters/http/dto"
	"github.com/lumexa/product-sdk/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))

	return resp
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		existingHeaderID string
	}{
		{name: "generates UUID when no header present"},
		{name: "passes through existing header", existingHeaderID: "existing-req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var capturedID, capturedContextID string

			router := gin.New()
			router.Use(RequestID())
			router.GET("/test", func(c *gin.Context) {
				capturedID = GetRequestID(c)
				capturedContextID = RequestIDFromContext(c.Request.Context())
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.existingHeaderID != "" {
				req.Header.Set(HeaderRequestID, tt.existingHeaderID)
			}

			router.ServeHTTP(w, req)

			responseHeader := w.Header().Get(HeaderRequestID)
			assert.NotEmpty(t, responseHeader)
			assert.Equal(t, responseHeader, capturedID)
			assert.Equal(t, capturedID, capturedContextID)

			if tt.existingHeaderID != "" {
				assert.Equal(t, tt.existingHeaderID, capturedID)
			} else {
				assert.Len(t, capturedID, 36)
			}
		})
	}
}

func TestCorrelationIDMiddleware(t *testing.T) {
	t.Parallel()

	var capturedID, capturedContextID string

	router := gin.New()
	router.Use(CorrelationID())
	router.GET("/test", func(c *gin.Context) {
		capturedID = GetCorrelationID(c)
		capturedContextID = CorrelationIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderCorrelationID, "cli-run-42")

	router.ServeHTTP(w, req)

	assert.Equal(t, "cli-run-42", w.Header().Get(HeaderCorrelationID))
	assert.Equal(t, "cli-run-42", capturedID)
	assert.Equal(t, "cli-run-42", capturedContextID)
}

func TestGetIDs_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
	assert.Empty(t, GetCorrelationID(c))

	c.Set(ContextKeyRequestID, 42)
	assert.Empty(t, GetRequestID(c))
}

func TestRequireStoreToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{name: "matching token", configured: "secret", header: "secret", wantStatus: http.StatusOK},
		{name: "missing header", configured: "secret", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", configured: "secret", header: "secreT", wantStatus: http.StatusUnauthorized},
		{name: "prefix of token", configured: "secret", header: "sec", wantStatus: http.StatusUnauthorized},
		{name: "empty configured token rejects all", configured: "", header: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := gin.New()
			router.Use(RequireStoreToken(tt.configured))
			router.GET("/api/products", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			if tt.header != "" {
				req.Header.Set(HeaderStoreToken, tt.header)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusUnauthorized {
				resp := decodeError(t, w.Body.Bytes())
				assert.Equal(t, "Unauthenticated.", resp.Message)
				assert.Equal(t, dto.ErrorCodeUnauthorized, resp.Code)
			}
		})
	}
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
		wantLog   bool
	}{
		{name: "success at info", path: "/api/products?is_active=1", status: http.StatusOK, wantLevel: "level=INFO", wantLog: true},
		{name: "client error at warn", path: "/api/products", status: http.StatusUnprocessableEntity, wantLevel: "level=WARN", wantLog: true},
		{name: "server error at error", path: "/api/products", status: http.StatusInternalServerError, wantLevel: "level=ERROR", wantLog: true},
		{name: "health paths skipped", path: "/-/live", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			router := gin.New()
			router.Use(Logging(logger))
			router.GET(strings.SplitN(tt.path, "?", 2)[0], func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)

			if !tt.wantLog {
				assert.Empty(t, buf.String())
				return
			}

			assert.Contains(t, buf.String(), "request completed")
			assert.Contains(t, buf.String(), tt.wantLevel)
			assert.Contains(t, buf.String(), tt.path)
		})
	}
}

func TestLogging_UsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		ctx := c.Request.Context()
		c.Request = c.Request.WithContext(logging.WithContext(ctx, logger.With(slog.String("request_id", "req-7"))))
		c.Next()
	})
	router.Use(Logging(discardLogger()))
	router.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Contains(t, buf.String(), "request_id=req-7")
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	t.Run("normal request passes through", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(discardLogger()))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("panicking handler returns 500 envelope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		router := gin.New()
		router.Use(Recovery(slog.New(slog.NewTextHandler(&buf, nil))))
		router.GET("/test", func(c *gin.Context) {
			panic("something went wrong")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderRequestID, "req-9")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		resp := decodeError(t, w.Body.Bytes())
		assert.Equal(t, "An internal error occurred.", resp.Message)
		assert.Equal(t, dto.ErrorCodeInternal, resp.Code)
		assert.Equal(t, "req-9", resp.TraceID)
		assert.Contains(t, buf.String(), "handler panicked")
	})

	t.Run("panic after write keeps the written status", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(discardLogger()))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "partial")
			panic("late")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})
}

func TestTimeout_SetsContextDeadline(t *testing.T) {
	t.Parallel()

	var (
		hasDeadline bool
		deadline    time.Time
	)

	router := gin.New()
	router.Use(Timeout(5 * time.Second))
	router.GET("/test", func(c *gin.Context) {
		deadline, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestTimeout_ZeroDisables(t *testing.T) {
	t.Parallel()

	var hasDeadline bool

	router := gin.New()
	router.Use(Timeout(0))
	router.GET("/test", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.False(t, hasDeadline)
}

func TestMaxBodySize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "body within limit", body: `{"name":"Mug"}`, wantStatus: http.StatusOK},
		{name: "body over limit", body: `{"name":"` + strings.Repeat("x", 64) + `"}`, wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := gin.New()
			router.Use(MaxBodySize(32))
			router.POST("/api/products", func(c *gin.Context) {
				if _, err := io.ReadAll(c.Request.Body); err != nil {
					dto.HandleError(c, err)
					return
				}

				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	router := gin.New()
	router.Use(metrics.Handler())
	router.GET("/api/products/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.InDelta(t, 3, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/api/products/:id", "404")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, unmatchedRoute, "404")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.inFlight), 0)
}

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewMetrics(reg)
	require.NoError(t, err)

	second, err := NewMetrics(reg)
	require.NoError(t, err)

	assert.Same(t, first.requests, second.requests)
}

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/lumexa/product-sdk/internal/adapters/http/dto"
	"github.com/lumexa/product-sdk/internal/platform/logging"
)

const messageInternal = "An internal error occurred."

// Recovery turns a handler panic into a 500 catalog error envelope and logs
// the stack. It must be the first middleware.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				recovered(c, logger, r)
			}
		}()

		c.Next()
	}
}

func recovered(c *gin.Context, logger *slog.Logger, r any) {
	traceID := dto.GetTraceID(c)

	logging.FromContextOr(c.Request.Context(), logger).Error("handler panicked",
		slog.Any("panic", r),
		slog.String("method", c.Request.Method),
		slog.String("route", c.FullPath()),
		slog.String("trace_id", traceID),
		slog.String("stack", string(debug.Stack())),
	)

	// Headers already sent; the client sees a truncated response.
	if c.Writer.Written() {
		c.Abort()
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrorCodeInternal, messageInternal).WithTraceID(traceID))
}

package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/lumexa/product-sdk/internal/domain"
	"github.com/lumexa/product-sdk/internal/platform/logging"
	"github.com/lumexa/product-sdk/pkg/catalog"
)

// Messages for errors whose details stay on the server.
const (
	messageInternal    = "An internal error occurred."
	messageUnavailable = "The catalog is temporarily unavailable."
	messageBadJSON     = "The request body is not valid JSON."
	messageTooLarge    = "The request body is too large."
	messageTimeout     = "The request timed out."
)

// MapError maps an error to an HTTP status code and error response.
// Unknown errors are mapped to 500 with a generic message.
func MapError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		conflictErr   *domain.ConflictError
		maxBytesErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, NewErrorResponse(ErrorCodeTooLarge, messageTooLarge)

	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity, NewValidationErrorResponse(domain.DefaultValidationMessage, ValidationErrors(err))

	case errors.Is(err, ErrBinding):
		return http.StatusBadRequest, NewErrorResponse(ErrorCodeBadRequest, messageBadJSON)

	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, NewValidationErrorResponse(validationErr.Message, validationErr.Fields)

	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, notFoundErr.Error())

	case errors.As(err, &conflictErr):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, conflictErr.Error())

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, messageUnavailable)

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, messageTimeout)

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, messageInternal)
	}
}

// GetTraceID returns the OpenTelemetry trace id of the request, falling
// back to its X-Request-ID header.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return c.GetHeader("X-Request-ID")
}

// HandleError writes the error response for err. Server-side failures are
// logged with the full error.
func HandleError(c *gin.Context, err error) {
	status, resp := MapError(err)
	resp.WithTraceID(GetTraceID(c))

	logFailure(c, status, err)

	c.JSON(status, resp)
}

// AbortWithError aborts the request chain and writes the error response.
func AbortWithError(c *gin.Context, err error) {
	status, resp := MapError(err)
	resp.WithTraceID(GetTraceID(c))

	logFailure(c, status, err)

	c.AbortWithStatusJSON(status, resp)
}

// AbortWithErrorCode aborts the request chain with a specific error code.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	resp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), resp)
}

// RespondData writes v inside the {"data": ...} envelope.
func RespondData(c *gin.Context, status int, v catalog.Value) {
	c.JSON(status, Data(v))
}

func logFailure(c *gin.Context, status int, err error) {
	if status < http.StatusInternalServerError {
		return
	}

	logger := logging.FromContextOr(c.Request.Context(), slog.Default())
	logger.ErrorContext(c.Request.Context(), "request failed",
		slog.Int("status", status),
		slog.Any("error", err),
	)
}

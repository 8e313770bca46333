package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/lumexa/product-sdk/internal/adapters/http/dto"
)

const (
	// HeaderStoreToken carries the store-scoped API token.
	HeaderStoreToken = "X-Store-Token"

	messageUnauthenticated = "Unauthenticated."
)

// RequireStoreToken rejects requests whose X-Store-Token header does not
// equal token with 401. An empty token rejects every request.
func RequireStoreToken(token string) gin.HandlerFunc {
	want := []byte(token)

	return func(c *gin.Context) {
		got := []byte(c.GetHeader(HeaderStoreToken))

		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			dto.AbortWithErrorCode(c, dto.ErrorCodeUnauthorized, messageUnauthenticated)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/h662/x-clone-go/internal/apperr"
	"github.com/h662/x-clone-go/internal/httputil"
	"github.com/h662/x-clone-go/internal/logs"
	"github.com/h662/x-clone-go/internal/token"
)

// Identity is the caller resolved from a verified bearer token. Handlers
// and the ownership policy consume this value instead of poking loose
// strings out of the gin context.
type Identity struct {
	Account string
}

const identityKey = "caller_identity"

// RequireAuth gates a route on a valid "Authorization: Bearer <token>"
// header. It either binds an Identity to the context or terminates the
// request; handler code behind it can assume CallerIdentity succeeds.
func RequireAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			httputil.Fail(c, apperr.New(apperr.Unauthenticated, "Not exist token."))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == "" {
			httputil.Fail(c, apperr.New(apperr.Unauthenticated, "Not exist token."))
			return
		}

		account, err := tokens.Verify(tokenStr)
		if err != nil {
			logs.LogJSON("WARN", "token verification failed", map[string]interface{}{
				"route": c.FullPath(),
				"error": err.Error(),
			})
			httputil.Fail(c, apperr.New(apperr.Unauthenticated, "Invalid token."))
			return
		}

		c.Set(identityKey, Identity{Account: account})
		c.Next()
	}
}

// CallerIdentity returns the identity bound by RequireAuth.
func CallerIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

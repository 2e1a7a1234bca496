package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// IdentityVerifier resolves a bearer token to the identity it was issued for.
type IdentityVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (*domain.Identity, error)
}

// unauthorizedBody is sent for every rejection; the cause only goes to the log.
var unauthorizedBody = gin.H{"error": "Unauthorized"}

// AuthMiddleware rejects requests without a valid bearer token. On success the
// owner id, the identity and a logger carrying user_id are stored in the request context.
func AuthMiddleware(verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
			return
		}

		identity, err := verifier.VerifyAccessToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", identity.OwnerID))

		ctx := context.WithValue(c.Request.Context(), userIDKey, identity.OwnerID)
		ctx = context.WithValue(ctx, identityKey, identity)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

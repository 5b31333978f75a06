package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"auth_api/internal/auth"
	"auth_api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const identityKey = "identity"

// AuthMiddleware gates protected routes. A missing or malformed
// Authorization header is rejected as unauthorized before any token parsing;
// a header of the right shape whose token fails verification (bad signature,
// expired, garbage) is a distinct bad-request rejection.
func AuthMiddleware(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			newErrorResponse(c, http.StatusUnauthorized, "Access denied. No token provided.")

			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			newErrorResponse(c, http.StatusUnauthorized, "Access denied. No token provided.")

			return
		}

		identity, err := tm.Parse(parts[1])
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid token.")

			return
		}

		c.Set(identityKey, identity)

		c.Next()
	}
}

// IdentityFromContext returns the identity attached by AuthMiddleware.
func IdentityFromContext(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}

	identity, ok := v.(models.Identity)

	return identity, ok
}

// RequireRole rejects requests whose identity's role is not exactly the
// required one. No normalization, exact string match only.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")

			return
		}

		if identity.Role != role {
			newErrorResponse(c, http.StatusForbidden, "Access Denied: Insufficient Permissions")

			return
		}

		c.Next()
	}
}

func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		c.Writer.Header().Set("X-Request-Id", requestID)
		c.Next()

		log.Info("request",
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// Recovery is the top-level boundary: any panic in a handler becomes a
// generic 500 envelope. The cause goes to the log, never to the client.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					slog.String("path", c.Request.URL.Path),
					slog.Any("panic", r),
				)

				newErrorResponse(c, http.StatusInternalServerError, "Server error")
			}
		}()

		c.Next()
	}
}

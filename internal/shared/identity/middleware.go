package identity

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vendora/sales-api/internal/platform/token"
	apierrors "github.com/vendora/sales-api/internal/shared/errors"
)

// Middleware parses a Bearer token, when present, and attaches the resolved
// identity to the request context. Requests without a token pass through
// anonymously; individual handlers decide whether identity is required.
func Middleware(tokens *token.Manager, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.TrimSpace(header) == "" {
			c.Next()
			return
		}
		raw, err := token.ExtractBearer(header)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
			c.Abort()
			return
		}
		claims, err := tokens.Validate(raw)
		if err != nil {
			if logger != nil {
				logger.Warn("rejected bearer token", slog.String("error", err.Error()))
			}
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("invalid or expired token"))
			c.Abort()
			return
		}
		ctx := WithIdentity(c.Request.Context(), Identity{
			ID:      claims.UserID,
			Email:   claims.Email,
			Name:    claims.Name,
			Surname: claims.Surname,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Require aborts with 401 unless the request carries a resolved identity.
func Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := CurrentUser(c.Request.Context()); err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("authentication required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

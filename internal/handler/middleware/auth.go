package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"slot-booking/internal/domain/user"
	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/pkg/cookie"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errTokenMissing = errs.NewKind("access token required", errs.ErrUnauthorized)
	errTokenInvalid = errs.NewKind("invalid or expired token", errs.ErrUnauthorized)
)

const ctxIdentityKey = "identity"

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth accepts the token cookie or an Authorization bearer header.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenMissing, "Access token required", nil)
			return
		}

		identity, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.Mark(err, errTokenInvalid), "Invalid or expired token", nil)
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

// SetIdentity stores the caller for handlers and the request logger.
func SetIdentity(c *gin.Context, identity user.Identity) {
	c.Set(ctxIdentityKey, identity)
}

func GetIdentity(c *gin.Context) (user.Identity, bool) {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return user.Identity{}, false
	}
	identity, ok := v.(user.Identity)
	return identity, ok && identity.ID != uuid.Nil
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mnadhif/student-records-api/internal/models"
	"github.com/mnadhif/student-records-api/internal/service"
	"github.com/mnadhif/student-records-api/pkg/config"
	appErrors "github.com/mnadhif/student-records-api/pkg/errors"
	"github.com/mnadhif/student-records-api/pkg/response"
)

// ContextUserKey is the gin context key storing session claims.
const ContextUserKey = "currentUser"

// RequireSession protects routes by requiring a valid session token. The
// check aborts before any handler work, so an unauthenticated request never
// touches storage. Tokens older than the rolling refresh window are
// re-issued on the response (sliding expiration).
func RequireSession(authService *service.AuthService, cfg config.SessionConfig, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		token := sessionToken(c, cfg.CookieName)
		if token == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := authService.ValidateSession(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if authService.ShouldRefresh(claims) {
			refreshed, _, err := authService.RefreshSession(claims)
			if err != nil {
				logger.Warn("session refresh failed", zap.Error(err))
			} else {
				c.SetCookie(cfg.CookieName, refreshed, int(cfg.Lifetime.Seconds()), "/", "", cfg.CookieSecure, true)
			}
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the session claims stored by RequireSession.
func ClaimsFromContext(c *gin.Context) *models.SessionClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// sessionToken reads the session cookie, falling back to a bearer header
// for non-browser clients.
func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

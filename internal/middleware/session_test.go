package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mnadhif/student-records-api/internal/models"
	"github.com/mnadhif/student-records-api/internal/service"
	"github.com/mnadhif/student-records-api/pkg/config"
)

const testSecret = "test_secret"

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:        testSecret,
		Lifetime:      720 * time.Hour,
		RefreshWindow: 24 * time.Hour,
		CookieName:    "session_token",
	}
}

func newSessionRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testSessionConfig()
	auth := service.NewAuthService(nil, nil, zap.NewNop(), service.AuthConfig{
		Secret:        cfg.Secret,
		Lifetime:      cfg.Lifetime,
		RefreshWindow: cfg.RefreshWindow,
	})

	r := gin.New()
	r.GET("/protected", RequireSession(auth, cfg, zap.NewNop()), func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"sub": claims.Subject})
	})
	return r, auth
}

func signToken(t *testing.T, issuedAt time.Time, expiresAt time.Time) string {
	t.Helper()
	claims := &models.SessionClaims{
		Email: "ann@example.com",
		Name:  "Ann",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestRequireSessionMissingToken(t *testing.T) {
	r, _ := newSessionRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSessionExpiredToken(t *testing.T) {
	r, _ := newSessionRouter(t)

	token := signToken(t, time.Now().Add(-48*time.Hour), time.Now().Add(-time.Hour))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSessionValidCookie(t *testing.T) {
	r, _ := newSessionRouter(t)

	token := signToken(t, time.Now(), time.Now().Add(time.Hour))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// Fresh token: no sliding refresh yet.
	assert.Empty(t, w.Result().Cookies())
}

func TestRequireSessionBearerFallback(t *testing.T) {
	r, _ := newSessionRouter(t)

	token := signToken(t, time.Now(), time.Now().Add(time.Hour))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSessionSlidingRefresh(t *testing.T) {
	r, _ := newSessionRouter(t)

	// Issued beyond the 24h rolling window but still inside its lifetime.
	token := signToken(t, time.Now().Add(-48*time.Hour), time.Now().Add(time.Hour))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.NotEqual(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finpoint/erp_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// newAuthRouter builds a router whose only route echoes the identity the
// middleware placed in the context.
func newAuthRouter(issuer string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", middleware.AuthMiddleware(testSecret, issuer), func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		email, _ := middleware.GetUserEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID, "email": email})
	})
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := newAuthRouter("erp-backend")
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user-1",
		"email": "buyer@example.com",
		"iss":   "erp-backend",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	w := doAuthRequest(r, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "buyer@example.com")
}

func TestAuthMiddleware_WrongIssuerRejected(t *testing.T) {
	r := newAuthRouter("erp-backend")
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doAuthRequest(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "issuer")
}

func TestAuthMiddleware_NoIssuerConfiguredAcceptsAny(t *testing.T) {
	r := newAuthRouter("")
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doAuthRequest(r, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	r := newAuthRouter("erp-backend")
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"iss": "erp-backend",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	w := doAuthRequest(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	r := newAuthRouter("erp-backend")

	assert.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "Token abc").Code)

	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-1",
		"iss": "erp-backend",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "Bearer "+wrongKey).Code)
}

func TestAuthMiddleware_MissingSubjectRejected(t *testing.T) {
	r := newAuthRouter("erp-backend")
	token := signToken(t, testSecret, jwt.MapClaims{
		"iss": "erp-backend",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doAuthRequest(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

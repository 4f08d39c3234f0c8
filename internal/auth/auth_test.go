package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthRouter(t *testing.T, tokens TokenService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	r := gin.New()
	NewHandler(string(hash), tokens, nil).RegisterRoutes(r.Group("/admin"))
	r.GET("/admin/secret", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sub": MustGetClaims(c).Subject})
	})
	return r
}

func login(r http.Handler, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"password": password})
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginAndProtectedRoute(t *testing.T) {
	tokens, err := NewTokenService("", "portfolio", time.Hour)
	require.NoError(t, err)
	assert.Len(t, tokens.Secret, 32)
	r := newAuthRouter(t, tokens)

	assert.Equal(t, http.StatusUnauthorized, login(r, "wrong").Code)

	w := login(r, "hunter22")
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)

	req := httptest.NewRequest(http.MethodGet, "/admin/secret", nil)
	req.Header.Set("Authorization", "Bearer "+res.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), AdminSubject)
}

func TestMiddlewareRejectsMissingAndForeignTokens(t *testing.T) {
	tokens, err := NewTokenService("s3cret", "portfolio", time.Hour)
	require.NoError(t, err)
	r := newAuthRouter(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/admin/secret", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other, err := NewTokenService("other", "portfolio", time.Hour)
	require.NoError(t, err)
	foreign, _, err := other.Sign(AdminSubject)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/admin/secret", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	tokens := TokenService{Secret: []byte("k"), Issuer: "portfolio", Duration: -time.Minute}
	tok, _, err := tokens.Sign(AdminSubject)
	require.NoError(t, err)

	_, err = tokens.Parse(tok)
	assert.Error(t, err)
}

func TestLoginUnconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens, err := NewTokenService("", "portfolio", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	NewHandler("", tokens, nil).RegisterRoutes(r.Group("/admin"))
	assert.Equal(t, http.StatusServiceUnavailable, login(r, "anything").Code)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))
}

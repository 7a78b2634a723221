package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fu-news-go/internal/model"
	"fu-news-go/internal/policy"
	"fu-news-go/internal/repository"
	"fu-news-go/internal/response"
	"fu-news-go/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type setBlacklist map[string]bool

func (s setBlacklist) Add(_ context.Context, jti string, _ time.Duration) error {
	s[jti] = true
	return nil
}

func (s setBlacklist) Contains(_ context.Context, jti string) (bool, error) {
	return s[jti], nil
}

var _ repository.TokenBlacklist = setBlacklist{}

func newTestManager() *token.JWTManager {
	return token.NewJWTManager("mw-secret", "fu-news", "fu-news-client", 30)
}

func signFor(t *testing.T, m *token.JWTManager, role model.Role) (string, *token.CustomClaims) {
	t.Helper()
	signed, err := m.GenerateToken(5, "Bob", "bob@x.com", int(role))
	require.NoError(t, err)
	claims, err := m.VerifyToken(signed)
	require.NoError(t, err)
	return signed, claims
}

func newRouter(op policy.Operation, m *token.JWTManager, bl repository.TokenBlacklist) *gin.Engine {
	r := gin.New()
	r.GET("/x", Authorize(op, m, bl), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if ok {
			c.String(http.StatusOK, claims.Email)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return r
}

func do(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelopeCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Code
}

func TestAuthorize(t *testing.T) {
	m := newTestManager()
	bl := setBlacklist{}
	staffToken, _ := signFor(t, m, model.RoleStaff)
	adminToken, _ := signFor(t, m, model.RoleAdmin)
	r := newRouter(policy.CategoryCreate, m, bl)

	w := do(r, "Bearer "+staffToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob@x.com", w.Body.String())

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing header", "", http.StatusUnauthorized, response.CodeUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized, response.CodeUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, response.CodeUnauthorized},
		{"wrong role", "Bearer " + adminToken, http.StatusForbidden, response.CodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, envelopeCode(t, w))
		})
	}
}

func TestAuthorize_RevokedToken(t *testing.T) {
	m := newTestManager()
	bl := setBlacklist{}
	signed, claims := signFor(t, m, model.RoleStaff)
	r := newRouter(policy.AuthLogout, m, bl)

	assert.Equal(t, http.StatusOK, do(r, "Bearer "+signed).Code)
	require.NoError(t, bl.Add(context.Background(), claims.ID, time.Minute))
	w := do(r, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.CodeUnauthorized, envelopeCode(t, w))
}

func TestAuthorize_Anonymous(t *testing.T) {
	r := newRouter(policy.NewsActive, newTestManager(), setBlacklist{})
	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestAuthorize_UnknownOperationPanics(t *testing.T) {
	assert.Panics(t, func() { Authorize("nope", newTestManager(), setBlacklist{}) })
}

func TestCheckRole(t *testing.T) {
	m := newTestManager()
	_, lecturer := signFor(t, m, model.RoleLecturer)
	_, admin := signFor(t, m, model.RoleAdmin)
	rule := policy.MustKnow(policy.NewsCreate)

	tests := []struct {
		name   string
		claims *token.CustomClaims
		want   bool
		status int
	}{
		{"no claims", nil, false, http.StatusUnauthorized},
		{"allowed role", lecturer, true, http.StatusOK},
		{"denied role", admin, false, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.claims != nil {
				c.Set(ClaimsKey, tt.claims)
			}
			assert.Equal(t, tt.want, checkRole(c, rule))
			assert.Equal(t, tt.want, !c.IsAborted())
			if !tt.want {
				assert.Equal(t, tt.status, w.Code)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/x", func(c *gin.Context) { panic("boom") })

	w := do(r, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, response.CodeInternal, envelopeCode(t, w))
}

func TestRequestLogger_KeepsBodyReadable(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(), Metrics())
	r.POST("/api/tags", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(`{"tagName":"go"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, `{"tagName":"go"}`, w.Body.String())
}

func TestIsSensitive(t *testing.T) {
	assert.True(t, isSensitive("/api/auth/login"))
	assert.True(t, isSensitive("/api/accounts/3"))
	assert.False(t, isSensitive("/api/news/active"))
}

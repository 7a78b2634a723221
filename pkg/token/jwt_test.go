package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "fu-news", "fu-news-client", 60)

	tok, err := m.GenerateToken(42, "Alice", "alice@x.com", 2)
	require.NoError(t, err)

	claims, err := m.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AccountID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, 2, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTManager_UniqueJTI(t *testing.T) {
	m := NewJWTManager("secret", "fu-news", "fu-news-client", 60)

	first, err := m.GenerateToken(1, "a", "a@x.com", 1)
	require.NoError(t, err)
	second, err := m.GenerateToken(1, "a", "a@x.com", 1)
	require.NoError(t, err)

	c1, err := m.VerifyToken(first)
	require.NoError(t, err)
	c2, err := m.VerifyToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", "fu-news", "fu-news-client", 60)
	tok, err := m.GenerateToken(1, "a", "a@x.com", 1)
	require.NoError(t, err)

	tests := []struct {
		name    string
		manager *JWTManager
		token   string
	}{
		{name: "wrong secret", manager: NewJWTManager("other", "fu-news", "fu-news-client", 60), token: tok},
		{name: "wrong issuer", manager: NewJWTManager("secret", "someone-else", "fu-news-client", 60), token: tok},
		{name: "wrong audience", manager: NewJWTManager("secret", "fu-news", "mobile", 60), token: tok},
		{name: "garbage", manager: m, token: "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.manager.VerifyToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", "fu-news", "fu-news-client", 1)
	issued := time.Now().Add(-2 * time.Minute)
	m.now = func() time.Time { return issued }
	tok, err := m.GenerateToken(1, "a", "a@x.com", 1)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.VerifyToken(tok)
	assert.Error(t, err)
}

func TestJWTManager_RemainingTTL(t *testing.T) {
	m := NewJWTManager("secret", "fu-news", "fu-news-client", 30)
	tok, err := m.GenerateToken(1, "a", "a@x.com", 1)
	require.NoError(t, err)
	claims, err := m.VerifyToken(tok)
	require.NoError(t, err)

	ttl := m.RemainingTTL(claims)
	assert.True(t, ttl > 29*time.Minute && ttl <= 30*time.Minute)
	assert.Equal(t, time.Duration(0), m.RemainingTTL(nil))
}

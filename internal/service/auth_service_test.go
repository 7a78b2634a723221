package service

import (
	"context"
	"testing"
	"time"

	"fu-news-go/internal/config"
	"fu-news-go/internal/model"
	"fu-news-go/internal/repository"
	"fu-news-go/internal/repository/repositorytest"
	"fu-news-go/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBlacklist struct {
	entries map[string]time.Duration
}

func (m *memBlacklist) Add(_ context.Context, jti string, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = map[string]time.Duration{}
	}
	m.entries[jti] = ttl
	return nil
}

func (m *memBlacklist) Contains(_ context.Context, jti string) (bool, error) {
	_, ok := m.entries[jti]
	return ok, nil
}

func newAuthFixture(t *testing.T) (*repositorytest.Store, AuthService, *token.JWTManager, *memBlacklist) {
	t.Helper()
	admin, err := NewBootstrapAdmin(config.BootstrapAdminConfig{
		Email:    "admin@funews.org",
		Password: "@@abc123@@",
		Name:     "Administrator",
		Role:     int(model.RoleAdmin),
	})
	require.NoError(t, err)

	store := repositorytest.NewStore()
	manager := token.NewJWTManager("test-secret", "fu-news", "fu-news-client", 60)
	blacklist := &memBlacklist{}
	return store, NewAuthService(store, admin, manager, blacklist), manager, blacklist
}

func TestNewBootstrapAdmin(t *testing.T) {
	admin, err := NewBootstrapAdmin(config.BootstrapAdminConfig{})
	require.NoError(t, err)
	assert.Nil(t, admin)

	_, err = NewBootstrapAdmin(config.BootstrapAdminConfig{Email: "a@x.com", Password: "pw", Role: 9})
	assert.Error(t, err)

	admin, err = NewBootstrapAdmin(config.BootstrapAdminConfig{Email: "a@x.com", Password: "pw", Role: 3})
	require.NoError(t, err)
	account := admin.Account()
	assert.Equal(t, model.BootstrapAdminID, account.ID)
	assert.Equal(t, "Administrator", *account.Name)
	assert.NotEqual(t, "pw", account.Password)
}

func TestAuthService_LoginBootstrapAdmin(t *testing.T) {
	_, svc, manager, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), "admin@funews.org", "@@abc123@@")
	require.NoError(t, err)
	assert.Equal(t, uint(0), resp.AccountID)
	assert.Equal(t, model.RoleAdmin, resp.AccountRole)

	claims, err := manager.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(0), claims.AccountID)
	assert.Equal(t, int(model.RoleAdmin), claims.Role)
}

func TestAuthService_LoginStoredAccount(t *testing.T) {
	store, svc, _, _ := newAuthFixture(t)
	staff := seedAccount(t, store, "staff@x.com", model.RoleStaff)

	inactive := seedAccount(t, store, "gone@x.com", model.RoleLecturer)
	inactive.IsActive = false
	require.NoError(t, store.Accounts().Update(context.Background(), &inactive))

	resp, err := svc.Login(context.Background(), "staff@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, staff.ID, resp.AccountID)
	assert.Equal(t, "User staff@x.com", resp.AccountName)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "staff@x.com", "nope"},
		{"unknown email", "who@x.com", "secret123"},
		{"inactive account", "gone@x.com", "secret123"},
		{"admin wrong password", "admin@funews.org", "secret123"},
		{"admin email case differs", "ADMIN@funews.org", "@@abc123@@"},
		{"stored email case differs", "Staff@x.com", "secret123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_AdminEmailFallsThroughToStore(t *testing.T) {
	store, svc, _, _ := newAuthFixture(t)
	stored := seedAccount(t, store, "admin@funews.org", model.RoleStaff)

	resp, err := svc.Login(context.Background(), "admin@funews.org", "secret123")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, resp.AccountID)
	assert.Equal(t, model.RoleStaff, resp.AccountRole)
}

func TestAuthService_Logout(t *testing.T) {
	_, svc, manager, blacklist := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), "admin@funews.org", "@@abc123@@")
	require.NoError(t, err)
	claims, err := manager.VerifyToken(resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims))
	revoked, err := blacklist.Contains(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Greater(t, blacklist.entries[claims.ID], time.Duration(0))

	assert.Error(t, svc.Logout(context.Background(), &token.CustomClaims{}))
}

func TestAuthService_LogoutWithNoopBlacklist(t *testing.T) {
	manager := token.NewJWTManager("test-secret", "fu-news", "fu-news-client", 60)
	svc := NewAuthService(repositorytest.NewStore(), nil, manager, repository.NewNoopTokenBlacklist())

	signed, err := manager.GenerateToken(7, "x", "x@x.com", 1)
	require.NoError(t, err)
	claims, err := manager.VerifyToken(signed)
	require.NoError(t, err)
	assert.NoError(t, svc.Logout(context.Background(), claims))
}

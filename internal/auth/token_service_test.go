// filepath: internal/auth/token_service_test.go
package auth_test

import (
	"os"
	"testing"

	"woodbank/internal/auth"
	"woodbank/internal/config"
	"woodbank/internal/logging"
	"woodbank/internal/repository"
	"woodbank/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, dbPath string) (auth.TokenService, *repository.Repository) {
	os.Remove(dbPath)

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: dbPath},
		Session: config.SessionConfig{
			AccessDurationMin:    30,
			RefreshDurationHours: 12,
		},
		SessionSecret: "test-secret-not-for-production",
	}
	repo, err := repository.NewRepository(cfg, logging.NewLogger("error"))
	require.NoError(t, err)
	require.NoError(t, repo.RunMigrations())

	t.Cleanup(func() {
		repo.Close()
		os.Remove(dbPath)
	})
	return auth.NewTokenService(cfg, repo, repo), repo
}

func TestLogin(t *testing.T) {
	svc, _ := newTestTokenService(t, "test_token_login.db")

	accessToken, refreshToken, err := svc.Login("admin", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	t.Run("Wrong Password", func(t *testing.T) {
		_, _, err := svc.Login("admin", "wrong")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	})

	t.Run("Unknown User", func(t *testing.T) {
		_, _, err := svc.Login("nobody", "whatever")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	})
}

func TestLogin_RefusesNonLoginRoles(t *testing.T) {
	svc, repo := newTestTokenService(t, "test_token_client.db")

	// Clients have records, not credentials. Even a client row with a valid
	// password hash must not receive tokens.
	_, err := repo.CreateUser(&repository.UserCreateArgs{
		Username: "household-contact",
		Password: "secret",
		Role:     "client",
	})
	require.NoError(t, err)

	_, _, err = svc.Login("household-contact", "secret")
	assert.ErrorIs(t, err, shared.ErrRoleCannotLogin)
}

func TestValidateAccessToken(t *testing.T) {
	svc, _ := newTestTokenService(t, "test_token_access.db")

	accessToken, _, err := svc.Login("lead", "lead")
	require.NoError(t, err)

	user, err := svc.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "lead", user.Username)
	assert.Equal(t, "lead", user.Role)

	t.Run("Garbage Token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("Tampered Token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(accessToken[:len(accessToken)-2] + "xx")
		assert.Error(t, err)
	})
}

func TestValidateRefreshToken(t *testing.T) {
	svc, _ := newTestTokenService(t, "test_token_refresh.db")

	_, refreshToken, err := svc.Login("volunteer", "volunteer")
	require.NoError(t, err)

	user, err := svc.ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "volunteer", user.Username)

	// An access token is not a refresh token: its hash has no session row.
	accessToken, _, err := svc.Login("volunteer", "volunteer")
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestLogout(t *testing.T) {
	svc, _ := newTestTokenService(t, "test_token_logout.db")

	accessToken, refreshToken, err := svc.Login("admin", "admin")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(refreshToken))

	// The refresh token is revoked; the stateless access token still works
	// until it expires.
	_, err = svc.ValidateRefreshToken(refreshToken)
	assert.Error(t, err)

	_, err = svc.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animexapp/animex-server/internal/auth"
	"github.com/animexapp/animex-server/internal/domain"
	domainerrors "github.com/animexapp/animex-server/internal/errors"
	"github.com/animexapp/animex-server/internal/store"
)

func newTestAuthService(t *testing.T, s store.Store) *AuthService {
	t.Helper()

	keyHex, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(keyHex, 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	return NewAuthService(s, tokens, newTestValidator(), testLogger())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "alice@test.com",
		Password: "password123",
		Username: "alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice@test.com", resp.User.Email)
	assert.False(t, resp.User.IsAdmin)

	// Duplicate email.
	_, err = svc.Register(ctx, RegisterRequest{
		Email:    "alice@test.com",
		Password: "password123",
		Username: "alice2",
	})
	require.Error(t, err)

	login, err := svc.Login(ctx, LoginRequest{Email: "alice@test.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, LoginRequest{Email: "alice@test.com", Password: "wrong-password"})
	require.Error(t, err)
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeInvalidCredentials, domainErr.Code)
}

func TestAuthService_LoginUnknownEmailDoesNotLeak(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)

	// Unknown email and wrong password must be indistinguishable.
	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@test.com", Password: "password123"})
	require.Error(t, err)
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeInvalidCredentials, domainErr.Code)
}

func TestAuthService_VerifyAccessTokenFailClosed(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "bob@test.com",
		Password: "password123",
		Username: "bob",
	})
	require.NoError(t, err)

	user, err := svc.VerifyAccessToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)

	// Garbage, truncated, and empty tokens all resolve to unauthorized,
	// never to a partially trusted identity.
	for _, token := range []string{"", "garbage", resp.AccessToken[:len(resp.AccessToken)-5]} {
		_, err := svc.VerifyAccessToken(ctx, token)
		require.Error(t, err)
		var domainErr *domainerrors.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domainerrors.CodeUnauthorized, domainErr.Code)
	}
}

func TestAuthService_BannedUserRejected(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "carol@test.com",
		Password: "password123",
		Username: "carol",
	})
	require.NoError(t, err)

	user, err := s.GetUser(ctx, resp.User.ID)
	require.NoError(t, err)
	user.Status = domain.UserStatusBanned
	require.NoError(t, s.UpdateUser(ctx, user))

	// A still-valid access token stops working with the ban.
	_, err = svc.VerifyAccessToken(ctx, resp.AccessToken)
	require.Error(t, err)
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeForbidden, domainErr.Code)

	_, err = svc.Login(ctx, LoginRequest{Email: "carol@test.com", Password: "password123"})
	require.Error(t, err)

	// Refresh revokes all sessions for a banned account.
	_, err = svc.RefreshTokens(ctx, RefreshRequest{RefreshToken: resp.RefreshToken})
	require.Error(t, err)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeForbidden, domainErr.Code)
}

func TestAuthService_RefreshRotation(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "dave@test.com",
		Password: "password123",
		Username: "dave",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The old refresh token is dead after rotation.
	_, err = svc.RefreshTokens(ctx, RefreshRequest{RefreshToken: resp.RefreshToken})
	require.Error(t, err)

	// The new one works.
	_, err = svc.RefreshTokens(ctx, RefreshRequest{RefreshToken: refreshed.RefreshToken})
	require.NoError(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	s := newTestStore(t)
	svc := newTestAuthService(t, s)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Email:    "erin@test.com",
		Password: "password123",
		Username: "erin",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))

	_, err = svc.RefreshTokens(ctx, RefreshRequest{RefreshToken: resp.RefreshToken})
	require.Error(t, err)

	// Logging out an unknown token is a no-op.
	require.NoError(t, svc.Logout(ctx, "not-a-real-token"))
}

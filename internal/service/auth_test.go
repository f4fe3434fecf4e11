package service

import (
	"context"
	"testing"
	"time"

	"skilltrack/internal/domain"
	"skilltrack/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, *repository.MemoryUserRepository) {
	repo := repository.NewMemoryUserRepository()
	tokens := NewTokenProvider("test-secret", 15*time.Minute, 30*24*time.Hour)
	return NewAuthService(repo, tokens, nil), repo
}

func TestRegisterReturnsTokensAndPersistsRefresh(t *testing.T) {
	auth, repo := newAuthService()
	ctx := context.Background()

	res, err := auth.Register(ctx, "a@test.com", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "a@test.com", res.User.Email)

	saved, err := repo.FindByEmail(ctx, "a@test.com")
	require.NoError(t, err)
	require.NotNil(t, saved.RefreshToken)
	assert.Equal(t, res.RefreshToken, *saved.RefreshToken)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	auth, _ := newAuthService()
	ctx := context.Background()

	_, err := auth.Register(ctx, "dup@test.com", "pw")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "dup@test.com", "pw2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "already in use")
}

func TestLoginRotatesRefreshToken(t *testing.T) {
	auth, repo := newAuthService()
	ctx := context.Background()

	first, err := auth.Register(ctx, "b@test.com", "123")
	require.NoError(t, err)

	second, err := auth.Login(ctx, "b@test.com", "123")
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	saved, err := repo.FindByEmail(ctx, "b@test.com")
	require.NoError(t, err)
	assert.Equal(t, second.RefreshToken, *saved.RefreshToken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth, _ := newAuthService()
	ctx := context.Background()

	_, err := auth.Register(ctx, "c@test.com", "right")
	require.NoError(t, err)

	// missing user and wrong password surface the same message
	_, badUser := auth.Login(ctx, "nobody@test.com", "right")
	_, badPass := auth.Login(ctx, "c@test.com", "wrong")
	require.Error(t, badUser)
	require.Error(t, badPass)
	assert.Equal(t, badUser.Error(), badPass.Error())
	assert.ErrorIs(t, badUser, domain.ErrUnauthorized)
}

func TestRefreshRotatesAndPersists(t *testing.T) {
	auth, repo := newAuthService()
	ctx := context.Background()

	initial, err := auth.Register(ctx, "d@test.com", "123")
	require.NoError(t, err)

	refreshed, err := auth.Refresh(ctx, initial.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, initial.RefreshToken, refreshed.RefreshToken)

	saved, err := repo.FindByEmail(ctx, "d@test.com")
	require.NoError(t, err)
	assert.Equal(t, refreshed.RefreshToken, *saved.RefreshToken)
}

func TestRefreshRejectsUnknownAndExpired(t *testing.T) {
	auth, repo := newAuthService()
	ctx := context.Background()

	initial, err := auth.Register(ctx, "e@test.com", "123")
	require.NoError(t, err)

	_, err = auth.Refresh(ctx, uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh token")

	saved, err := repo.FindByEmail(ctx, "e@test.com")
	require.NoError(t, err)
	expired := time.Now().Add(-time.Second)
	saved.RefreshTokenExpiresAt = &expired
	require.NoError(t, repo.Update(ctx, saved))

	_, err = auth.Refresh(ctx, initial.RefreshToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMeReturnsPublicView(t *testing.T) {
	auth, _ := newAuthService()
	ctx := context.Background()

	res, err := auth.Register(ctx, "f@test.com", "123")
	require.NoError(t, err)

	user, err := auth.Me(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "f@test.com", user.Email)

	_, err = auth.Me(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := NewTokenProvider("test-secret", 15*time.Minute, time.Hour)

	token, err := tokens.AccessToken("user-1", "a@test.com")
	require.NoError(t, err)

	sub, err := tokens.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)

	_, err = tokens.ParseAccess("not-a-token")
	assert.Error(t, err)
}

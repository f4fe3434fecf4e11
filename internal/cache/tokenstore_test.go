package cache

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration-style tests: run only if REDIS_ADDR env is set.
func newTestStore(t *testing.T) *TokenStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}

	store := NewTokenStore(addr, os.Getenv("REDIS_PASSWORD"), db, time.Minute, time.Hour)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Ping(context.Background()))
	return store
}

func TestTokenStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	userID := uuid.NewString()
	access := uuid.NewString()
	refresh := uuid.NewString()

	require.NoError(t, store.SaveTokens(ctx, userID, access, refresh))

	got, err := store.UserIDByAccessToken(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	got, err = store.UserIDByRefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	a, r, err := store.TokensForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, access, a)
	assert.Equal(t, refresh, r)
}

func TestTokenStoreUnknownToken(t *testing.T) {
	store := newTestStore(t)

	got, err := store.UserIDByAccessToken(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTokenStoreRevoke(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	userID := uuid.NewString()
	access := uuid.NewString()
	refresh := uuid.NewString()

	require.NoError(t, store.SaveTokens(ctx, userID, access, refresh))
	require.NoError(t, store.RevokeUserTokens(ctx, userID))

	got, err := store.UserIDByAccessToken(ctx, access)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.UserIDByRefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.Empty(t, got)

	a, r, err := store.TokensForUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, a)
	assert.Empty(t, r)

	// revoking again tolerates the missing blob
	require.NoError(t, store.RevokeUserTokens(ctx, userID))
}

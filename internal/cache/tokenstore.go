package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"skilltrack/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

// TokenStore maps issued session tokens to user ids in redis with per-key
// TTLs. Three key families exist per session:
//
//	access-token:<token>   -> userID     (TTL = access lifetime)
//	refresh-token:<token>  -> userID     (TTL = refresh lifetime)
//	user-tokens:<userID>   -> JSON blob  (TTL = refresh lifetime)
//
// The client handle is owned by the store; create it at startup and Close it
// on shutdown.
type TokenStore struct {
	client     *redis.Client
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type storedTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func NewTokenStore(addr, password string, db int, accessTTL, refreshTTL time.Duration) *TokenStore {
	return &TokenStore{
		client:     redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *TokenStore) Close() error {
	return s.client.Close()
}

// Client exposes the underlying connection for middleware that shares it.
func (s *TokenStore) Client() *redis.Client {
	return s.client
}

// SaveTokens writes all three keys in one pipelined round trip.
func (s *TokenStore) SaveTokens(ctx context.Context, userID, accessToken, refreshToken string) error {
	blob, err := json.Marshal(storedTokens{AccessToken: accessToken, RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, accessKey(accessToken), userID, s.accessTTL)
	pipe.Set(ctx, refreshKey(refreshToken), userID, s.refreshTTL)
	pipe.Set(ctx, userKey(userID), blob, s.refreshTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// UserIDByAccessToken returns the owning user id, or "" when the token is
// unknown or expired.
func (s *TokenStore) UserIDByAccessToken(ctx context.Context, token string) (string, error) {
	return s.getString(ctx, accessKey(token))
}

func (s *TokenStore) UserIDByRefreshToken(ctx context.Context, token string) (string, error) {
	return s.getString(ctx, refreshKey(token))
}

// TokensForUser returns the cached pair for a user; both empty when absent.
func (s *TokenStore) TokensForUser(ctx context.Context, userID string) (accessToken, refreshToken string, err error) {
	raw, err := s.getString(ctx, userKey(userID))
	if err != nil || raw == "" {
		return "", "", err
	}

	var parsed storedTokens
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		logger.Error("failed to parse cached tokens", "user_id", userID, "error", err)
		return "", "", nil
	}
	return parsed.AccessToken, parsed.RefreshToken, nil
}

// RevokeUserTokens deletes the per-user blob and both token keys it points
// to. A malformed or missing blob only loses the token keys to their TTLs;
// the per-user key is deleted regardless.
func (s *TokenStore) RevokeUserTokens(ctx context.Context, userID string) error {
	raw, err := s.getString(ctx, userKey(userID))
	if err != nil {
		return err
	}

	keys := []string{userKey(userID)}
	var parsed storedTokens
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			if parsed.AccessToken != "" {
				keys = append(keys, accessKey(parsed.AccessToken))
			}
			if parsed.RefreshToken != "" {
				keys = append(keys, refreshKey(parsed.RefreshToken))
			}
		}
	}

	return s.client.Del(ctx, keys...).Err()
}

func (s *TokenStore) getString(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func accessKey(token string) string  { return "access-token:" + token }
func refreshKey(token string) string { return "refresh-token:" + token }
func userKey(userID string) string   { return "user-tokens:" + userID }

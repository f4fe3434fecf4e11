package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenProvider issues HS256 access tokens and opaque refresh tokens.
// Refresh tokens are rotated on every login and refresh.
type TokenProvider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenProvider(secret string, accessTTL, refreshTTL time.Duration) *TokenProvider {
	return &TokenProvider{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (p *TokenProvider) AccessToken(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   now.Add(p.accessTTL).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// RefreshToken returns a fresh opaque token and its expiry.
func (p *TokenProvider) RefreshToken() (string, time.Time) {
	return uuid.NewString(), time.Now().Add(p.refreshTTL)
}

// ParseAccess validates an access token and returns the subject user id.
func (p *TokenProvider) ParseAccess(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("subject not found")
	}
	return sub, nil
}

// UserIDByAccessToken lets the provider stand in for the token store when
// no redis is configured: identity falls back to signature verification.
// Invalid tokens resolve to no identity rather than an error.
func (p *TokenProvider) UserIDByAccessToken(_ context.Context, token string) (string, error) {
	sub, err := p.ParseAccess(token)
	if err != nil {
		return "", nil
	}
	return sub, nil
}

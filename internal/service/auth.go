package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skilltrack/internal/domain"
	"skilltrack/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionStore records issued token pairs so other handlers can resolve a
// caller without re-verifying signatures. Satisfied by cache.TokenStore; may
// be nil when no redis is configured.
type SessionStore interface {
	SaveTokens(ctx context.Context, userID, accessToken, refreshToken string) error
	RevokeUserTokens(ctx context.Context, userID string) error
}

type AuthService struct {
	users  repository.UserRepository
	tokens *TokenProvider
	store  SessionStore
}

func NewAuthService(users repository.UserRepository, tokens *TokenProvider, store SessionStore) *AuthService {
	return &AuthService{users: users, tokens: tokens, store: store}
}

// AuthResult is the outcome of register/login/refresh.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err := EnsureEmailAvailable(existing, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiry := s.tokens.RefreshToken()
	user := &domain.User{
		ID:                    uuid.NewString(),
		Email:                 email,
		PasswordHash:          string(hash),
		RefreshToken:          &refreshToken,
		RefreshTokenExpiresAt: &refreshExpiry,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(ctx, user, refreshToken)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		// same message as the missing-user case to prevent enumeration
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	refreshToken, refreshExpiry := s.tokens.RefreshToken()
	user.RefreshToken = &refreshToken
	user.RefreshTokenExpiresAt = &refreshExpiry
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(ctx, user, refreshToken)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid refresh token", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if user.RefreshTokenExpiresAt == nil || user.RefreshTokenExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: invalid refresh token", domain.ErrUnauthorized)
	}

	nextToken, nextExpiry := s.tokens.RefreshToken()
	user.RefreshToken = &nextToken
	user.RefreshTokenExpiresAt = &nextExpiry
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(ctx, user, nextToken)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", domain.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.store == nil {
		return nil
	}
	return s.store.RevokeUserTokens(ctx, userID)
}

func (s *AuthService) issue(ctx context.Context, user *domain.User, refreshToken string) (*AuthResult, error) {
	accessToken, err := s.tokens.AccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if s.store != nil {
		if err := s.store.SaveTokens(ctx, user.ID, accessToken, refreshToken); err != nil {
			return nil, err
		}
	}
	return &AuthResult{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

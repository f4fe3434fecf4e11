package main

import (
	"context"
	"errors"
	"log"
	"os"

	"skilltrack/internal/config"
	"skilltrack/internal/db"
	"skilltrack/internal/domain"
	"skilltrack/internal/repository"
	"skilltrack/internal/service"
)

// Seeds a test account through the real register path and prints its tokens.
func main() {
	cfg := config.Load()

	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	users := repository.NewPostgresUserRepository(pool)
	tokens := service.NewTokenProvider(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	auth := service.NewAuthService(users, tokens, nil)

	email := os.Getenv("TEST_USER_EMAIL")
	if email == "" {
		email = "a@test.com"
	}
	password := os.Getenv("TEST_USER_PASSWORD")
	if password == "" {
		password = "123456"
	}

	ctx := context.Background()

	result, err := auth.Register(ctx, email, password)
	if errors.Is(err, domain.ErrConflict) {
		log.Printf("user already exists, logging in instead email=%s", email)
		result, err = auth.Login(ctx, email, password)
	}
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	log.Printf("user id=%s email=%s", result.User.ID, result.User.Email)
	log.Printf("access token=%s", result.AccessToken)
	log.Printf("refresh token=%s", result.RefreshToken)
}

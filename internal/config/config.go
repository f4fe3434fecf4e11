package config

import (
	"os"
	"strconv"
	"time"

	"skilltrack/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	StorageDriver string // "postgres" or "memory"
	DatabaseURL   string
	JWTSecret     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	OverdueSweepInterval time.Duration

	CookieSecure bool
	LogLevel     string
	LogJSON      bool
}

func Load() *Config {
	_ = godotenv.Load()

	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = "postgres"
	}
	if driver != "postgres" && driver != "memory" {
		logger.Fatal("STORAGE_DRIVER must be postgres or memory", "value", driver)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if driver == "postgres" && dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		AppPort:       port,
		StorageDriver: driver,
		DatabaseURL:   dbURL,
		JWTSecret:     jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		AccessTokenTTL:  envSeconds("ACCESS_TOKEN_TTL_SECONDS", 900),
		RefreshTokenTTL: envSeconds("REFRESH_TOKEN_TTL_SECONDS", 60*60*24*30),

		APIRateLimit:   envInt("API_RATE_LIMIT", 60),
		APIRateWindow:  envSeconds("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: envSeconds("AUTH_RATE_WINDOW_SECONDS", 60),

		OverdueSweepInterval: envSeconds("OVERDUE_SWEEP_INTERVAL_SECONDS", 300),

		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogJSON:      os.Getenv("LOG_JSON") == "true",
	}
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envSeconds(name string, def int) time.Duration {
	return time.Duration(envInt(name, def)) * time.Second
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skilltrack/internal/cache"
	"skilltrack/internal/config"
	"skilltrack/internal/db"
	httpServer "skilltrack/internal/http"
	"skilltrack/internal/http/handlers"
	"skilltrack/internal/http/middleware"
	"skilltrack/internal/logger"
	"skilltrack/internal/repository"
	"skilltrack/internal/service"
	"skilltrack/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	var pool *pgxpool.Pool
	var users repository.UserRepository
	var tasks repository.TaskRepository
	var skills repository.SkillRepository

	if cfg.StorageDriver == "postgres" {
		pool = db.Connect(cfg.DatabaseURL)
		defer pool.Close()
		users = repository.NewPostgresUserRepository(pool)
		tasks = repository.NewPostgresTaskRepository(pool)
		skills = repository.NewPostgresSkillRepository(pool)
	} else {
		logger.Warn("using in-memory storage, data is lost on restart")
		memTasks := repository.NewMemoryTaskRepository()
		users = repository.NewMemoryUserRepository()
		tasks = memTasks
		skills = repository.NewMemorySkillRepository(memTasks)
	}

	var store *cache.TokenStore
	var sessions service.SessionStore
	if cfg.RedisAddr != "" {
		store = cache.NewTokenStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := store.Ping(ctx); err != nil {
			logger.Fatal("failed to ping redis", "error", err)
		}
		cancel()
		defer store.Close()
		sessions = store
		logger.Info("token store connected", "addr", cfg.RedisAddr)
	} else {
		logger.Warn("REDIS_ADDR not set, resolving bearer tokens by signature only")
	}

	tokens := service.NewTokenProvider(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	var resolver middleware.TokenResolver = tokens
	if store != nil {
		resolver = store
	}
	h := handlers.NewHandler(
		service.NewAuthService(users, tokens, sessions),
		service.NewTaskService(tasks, skills),
		service.NewSkillService(skills),
	)
	h.CookieSecure = cfg.CookieSecure

	var cachePinger handlers.Pinger
	if store != nil {
		cachePinger = store
	}
	health := handlers.NewHealthHandler(pool, cachePinger, version)

	r := gin.Default()

	// CORS for the SPA frontend on a different origin
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, x-user-id")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, httpServer.Deps{
		Handler:  h,
		Health:   health,
		Store:    store,
		Resolver: resolver,
		Cfg:      cfg,
	})

	sweeper := worker.NewOverdueSweeper(tasks, cfg.OverdueSweepInterval)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("failed to start overdue sweeper", "error", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

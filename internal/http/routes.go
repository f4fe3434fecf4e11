package http

import (
	"skilltrack/internal/cache"
	"skilltrack/internal/config"
	"skilltrack/internal/http/handlers"
	"skilltrack/internal/http/middleware"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// Deps is everything route registration needs from the composition root.
type Deps struct {
	Handler *handlers.Handler
	Health  *handlers.HealthHandler
	Store   *cache.TokenStore // nil without redis
	// Resolver maps bearer tokens to user ids; the token store when redis
	// is up, signature verification otherwise.
	Resolver middleware.TokenResolver
	Cfg      *config.Config
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health checks (no rate limiting)
	r.GET("/health", d.Health.Health)
	r.GET("/healthz", d.Health.Liveness)
	r.GET("/readyz", d.Health.Readiness)

	var rdb *redis.Client
	if d.Store != nil {
		rdb = d.Store.Client()
	}

	api := r.Group("")
	api.Use(middleware.Metrics())
	api.Use(middleware.RateLimit(rdb, d.Cfg.APIRateLimit, d.Cfg.APIRateWindow))

	identity := middleware.Identity(d.Resolver)

	auth := api.Group("/auth")
	{
		authRL := middleware.RateLimit(rdb, d.Cfg.AuthRateLimit, d.Cfg.AuthRateWindow)
		auth.POST("/register", authRL, d.Handler.Register)
		auth.POST("/login", authRL, d.Handler.Login)
		auth.POST("/refresh", authRL, d.Handler.Refresh)
		auth.GET("/me", identity, d.Handler.Me)
		auth.POST("/logout", identity, d.Handler.Logout)
	}

	tasks := api.Group("/tasks")
	tasks.Use(identity)
	{
		tasks.GET("", d.Handler.ListTasks)
		tasks.POST("", d.Handler.CreateTask)
		tasks.PUT("/:id", d.Handler.UpdateTask)
		tasks.DELETE("/:id", d.Handler.DeleteTask)
	}

	skills := api.Group("/skills")
	skills.Use(identity)
	{
		skills.GET("", d.Handler.ListSkills)
		skills.POST("", d.Handler.CreateSkill)
		skills.PUT("/:id", d.Handler.UpdateSkill)
		skills.DELETE("/:id", d.Handler.DeleteSkill)
	}
}

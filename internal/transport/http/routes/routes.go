package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-accounts/internal/infra/config"
	"github.com/arklim/social-platform-accounts/internal/infra/security"
	"github.com/arklim/social-platform-accounts/internal/transport/http/handlers"
	"github.com/arklim/social-platform-accounts/internal/transport/http/middleware"
	"github.com/arklim/social-platform-accounts/internal/usecase"
)

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config            *config.AppConfig
	Logger            *zap.Logger
	RateLimiter       *middleware.RateLimiter
	Accounts          *usecase.AccountService
	PasswordValidator *security.PasswordValidator
	Database          DatabaseChecker
	Cache             CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))

	if metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{Namespace: "accounts"}); err == nil {
		r.Use(metrics.Handler())
	} else if deps.Logger != nil {
		deps.Logger.Warn("http metrics disabled", zap.Error(err))
	}

	healthOptions := make([]handlers.HealthOption, 0, 2)
	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}
	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	accountHandler := handlers.NewAccountHandler(deps.Accounts, deps.PasswordValidator)

	userGroup := r.Group("/api/v1/user")

	if deps.RateLimiter != nil {
		limits := deps.Config.RateLimit
		userGroup.POST("/sign-up", deps.RateLimiter.RateLimit(middleware.RateLimitRule{
			Name:       "sign_up",
			Limit:      limits.SignUpMaxAttempts,
			Window:     limits.WindowDuration,
			Identifier: middleware.ClientIPIdentifier(),
		}), accountHandler.SignUp)
		userGroup.POST("/sign-in", deps.RateLimiter.RateLimit(middleware.RateLimitRule{
			Name:       "sign_in",
			Limit:      limits.SignInMaxAttempts,
			Window:     limits.WindowDuration,
			Identifier: middleware.ClientIPIdentifier(),
		}), accountHandler.SignIn)
		userGroup.POST("/password/change", deps.RateLimiter.RateLimit(middleware.RateLimitRule{
			Name:       "password_change",
			Limit:      limits.PasswordMaxAttempts,
			Window:     limits.WindowDuration,
			Identifier: middleware.ClientIPIdentifier(),
		}), accountHandler.ChangePassword)
	} else {
		userGroup.POST("/sign-up", accountHandler.SignUp)
		userGroup.POST("/sign-in", accountHandler.SignIn)
		userGroup.POST("/password/change", accountHandler.ChangePassword)
	}

	userGroup.PATCH("/profile", accountHandler.EditProfile)
	userGroup.DELETE("/:id", accountHandler.Delete)

	return r
}

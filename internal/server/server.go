// Package server assembles the HTTP router from the feature modules.
package server

import (
	"context"
	"net/http"
	"time"

	"aptbooking/internal/config"
	"aptbooking/internal/middleware"
	"aptbooking/internal/modules/admin"
	"aptbooking/internal/modules/apartment"
	"aptbooking/internal/modules/auth"
	"aptbooking/internal/modules/booking"
	"aptbooking/internal/modules/users"
	"aptbooking/internal/pkg/jwt"
	"aptbooking/internal/pkg/metrics"
	"aptbooking/internal/pkg/password"
	"aptbooking/internal/pkg/response"
	"aptbooking/internal/pkg/validator"
	"aptbooking/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const rateLimitCleanupInterval = 10 * time.Minute

// New wires repositories, services and handlers into one engine. Background
// work started here stops when ctx is cancelled.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.RegisterGinValidations()

	userRepo := repository.NewUserRepository(db)
	apartmentRepo := repository.NewApartmentRepository(db)

	hasher := password.NewHasher(cfg.BcryptCost)
	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	userService := users.NewService(userRepo, apartmentRepo, hasher, log.Named("users"))
	authService := auth.NewService(userService, hasher, tokens, log.Named("auth"))
	apartmentService := apartment.NewService(apartmentRepo, log.Named("apartment"))
	bookingService := booking.NewService(booking.NewGormStore(db), log.Named("booking"))

	limiter := middleware.NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst, log)
	limiter.StartCleanup(rateLimitCleanupInterval, ctx.Done())

	r := gin.New()
	r.Use(
		middleware.RequestLogger(log.Named("http")),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/healthz", healthz(db))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// public
	auth.NewHandler(authService).RegisterPublicRoutes(&r.RouterGroup, limiter.Handler())
	apartment.NewHandler(apartmentService).RegisterPublicRoutes(&r.RouterGroup)

	// any verified identity
	protected := r.Group("")
	protected.Use(middleware.JWTAuth(tokens))
	{
		users.NewHandler(userService).RegisterProtectedRoutes(protected)
		booking.NewHandler(bookingService).RegisterRoutes(protected)
	}

	// admin only
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuth(tokens), middleware.AdminOnly())
	{
		admin.NewHandler(userService, apartmentService, bookingService, log.Named("admin")).RegisterRoutes(adminGroup)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return r
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}

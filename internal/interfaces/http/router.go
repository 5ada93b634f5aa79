// Package http wires the gin engine: handlers, middleware and routes.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	subUsecases "subtrack/internal/application/subscription/usecases"
	userUsecases "subtrack/internal/application/user/usecases"
	"subtrack/internal/infrastructure/auth"
	"subtrack/internal/infrastructure/config"
	"subtrack/internal/infrastructure/ratelimit"
	"subtrack/internal/infrastructure/repository"
	"subtrack/internal/interfaces/http/handlers"
	"subtrack/internal/interfaces/http/middleware"
	sharedDB "subtrack/internal/shared/db"
	"subtrack/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine              *gin.Engine
	authHandler         *handlers.AuthHandler
	subscriptionHandler *handlers.SubscriptionHandler
	healthHandler       *handlers.HealthHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimiter         ratelimit.RateLimiter
	cfg                 *config.Config
	logger              logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies. redisClient may
// be nil, in which case auth endpoints run without rate limiting.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	subscriptionRepo := repository.NewSubscriptionRepository(db, log)
	auditRepo := repository.NewAuditLogRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)
	txManager := sharedDB.NewTransactionManager(db)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(&cfg.Auth.JWT)

	registerUC := userUsecases.NewRegisterUserUseCase(userRepo, hasher, jwtService, log)
	loginUC := userUsecases.NewLoginUserUseCase(userRepo, hasher, jwtService, log)

	createUC := subUsecases.NewCreateSubscriptionUseCase(subscriptionRepo, auditRepo, txManager, log)
	updateUC := subUsecases.NewUpdateSubscriptionUseCase(subscriptionRepo, auditRepo, txManager, log)
	deleteUC := subUsecases.NewDeleteSubscriptionUseCase(subscriptionRepo, auditRepo, txManager, log)
	advanceUC := subUsecases.NewAdvanceNextPaymentUseCase(subscriptionRepo, auditRepo, txManager, log)
	listActiveUC := subUsecases.NewListActiveSubscriptionsUseCase(subscriptionRepo, log)
	listUpcomingUC := subUsecases.NewListUpcomingPaymentsUseCase(subscriptionRepo, log)
	summaryUC := subUsecases.NewMonthlySummaryUseCase(subscriptionRepo, log)

	var limiter ratelimit.RateLimiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisRateLimiter(redisClient)
	} else {
		limiter = ratelimit.NewNoopRateLimiter()
	}

	return &Router{
		engine:              engine,
		authHandler:         handlers.NewAuthHandler(registerUC, loginUC, log),
		subscriptionHandler: handlers.NewSubscriptionHandler(createUC, updateUC, deleteUC, advanceUC, listActiveUC, listUpcomingUC, summaryUC, log),
		healthHandler:       handlers.NewHealthHandler(),
		authMiddleware:      middleware.NewAuthMiddleware(jwtService, log),
		rateLimiter:         limiter,
		cfg:                 cfg,
		logger:              log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	api := r.engine.Group("/api")

	api.GET("/health", r.healthHandler.Check)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register",
			middleware.RateLimit(r.rateLimiter, "register", r.cfg.RateLimit.RegisterPerMinute, r.logger),
			r.authHandler.Register)
		authGroup.POST("/login",
			middleware.RateLimit(r.rateLimiter, "login", r.cfg.RateLimit.LoginPerMinute, r.logger),
			r.authHandler.Login)
	}

	subscriptions := api.Group("/subscriptions")
	subscriptions.Use(r.authMiddleware.RequireAuth())
	{
		subscriptions.POST("", r.subscriptionHandler.Create)
		subscriptions.GET("", r.subscriptionHandler.List)
		subscriptions.GET("/upcoming", r.subscriptionHandler.ListUpcoming)
		subscriptions.GET("/summary", r.subscriptionHandler.MonthlySummary)
		subscriptions.PUT("/:id", r.subscriptionHandler.Update)
		subscriptions.DELETE("/:id", r.subscriptionHandler.Delete)
		subscriptions.POST("/:id/advance", r.subscriptionHandler.AdvanceNextPayment)
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

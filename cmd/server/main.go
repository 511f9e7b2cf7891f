package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	activityapp "github.com/zona2/backend/internal/application/activity"
	eventapp "github.com/zona2/backend/internal/application/event"
	identityapp "github.com/zona2/backend/internal/application/identity"
	pointsapp "github.com/zona2/backend/internal/application/points"
	socialapp "github.com/zona2/backend/internal/application/social"
	"github.com/zona2/backend/internal/domain/identity"
	"github.com/zona2/backend/internal/infrastructure/auth"
	"github.com/zona2/backend/internal/infrastructure/cache"
	"github.com/zona2/backend/internal/infrastructure/config"
	"github.com/zona2/backend/internal/infrastructure/logger"
	"github.com/zona2/backend/internal/infrastructure/payment"
	"github.com/zona2/backend/internal/infrastructure/persistence"
	"github.com/zona2/backend/internal/infrastructure/push"
	"github.com/zona2/backend/internal/infrastructure/sms"
	"github.com/zona2/backend/internal/infrastructure/storage"
	"github.com/zona2/backend/internal/interfaces/http/handler"
	"github.com/zona2/backend/internal/interfaces/http/middleware"
	"github.com/zona2/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Zona 2 backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs verification codes and the token blacklist. Without it the
	// process still serves traffic from in-memory stores, which is fine for a
	// single development instance but loses state on restart.
	var (
		codeStore identity.VerificationCodeStore
		blacklist auth.TokenBlacklist
	)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	redisErr := redisClient.Ping(pingCtx).Err()
	cancelPing()
	if redisErr != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(redisErr))
		}
		log.Warn("Redis unavailable, falling back to in-memory stores", zap.Error(redisErr))
		memStore := cache.NewInMemoryCodeStore()
		defer memStore.Close()
		codeStore = memStore
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		codeStore = cache.NewRedisCodeStoreWithClient(redisClient)
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		log.Info("Redis connected successfully")
	}

	// Object storage for avatars and GPS tracks
	var objectStorage activityapp.ObjectStorageService
	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		log.Warn("Object storage not configured, uploads disabled", zap.Error(err))
		objectStorage = storage.NewStubObjectStorage()
	} else {
		objectStorage = s3Storage
	}

	// SMS sender for verification codes
	smsSender, err := sms.NewSenderFromConfig(cfg.SMS, log)
	if err != nil {
		log.Fatal("Failed to initialize SMS sender", zap.Error(err))
	}

	// WebSocket push hub for live notifications
	hub := push.NewHub(cfg.Push, log)
	defer hub.Shutdown()

	// Stripe payment gateway for paid event registrations
	stripeCfg := &payment.StripeConfig{
		SecretKey:       cfg.Payment.StripeSecretKey,
		PublishableKey:  cfg.Payment.StripePublishableKey,
		WebhookSecret:   cfg.Payment.StripeWebhookSecret,
		IsTestMode:      cfg.App.Env != "production",
		DefaultCurrency: strings.ToLower(cfg.Payment.Currency),
	}
	var gateway eventapp.PaymentGateway
	stripeAdapter, err := payment.NewStripeAdapter(stripeCfg, log)
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to initialize Stripe", zap.Error(err))
		}
		log.Warn("Stripe not configured, paid registrations disabled", zap.Error(err))
	} else {
		gateway = stripeAdapter
	}

	// Initialize repositories
	runnerRepo := persistence.NewGormRunnerRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	grantRepo := persistence.NewGormActivityGrantRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	registrationRepo := persistence.NewGormRegistrationRepository(db.DB)
	promotionRepo := persistence.NewGormPromotionRepository(db.DB)
	pacerRepo := persistence.NewGormPacerRepository(db.DB)
	teamRepo := persistence.NewGormTeamRepository(db.DB)
	followRepo := persistence.NewGormFollowRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Initialize application services. The notification service doubles as
	// the notifier for the points, event and follow flows, persisting each
	// notification and pushing it to live connections.
	notificationService := socialapp.NewNotificationService(notificationRepo, hub, log)
	ledgerService := pointsapp.NewLedgerService(ledgerRepo, grantRepo, runnerRepo, activityRepo, notificationService, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(runnerRepo, codeStore, smsSender, jwtService, blacklist, ledgerService, cfg.SMS.CodeTTL, log)
	runnerService := identityapp.NewRunnerService(runnerRepo, codeStore, objectStorage, blacklist, log)

	activityService := activityapp.NewService(activityRepo, runnerRepo, objectStorage, log)

	eventService := eventapp.NewEventService(eventRepo, registrationRepo, promotionRepo, pacerRepo, runnerRepo, notificationService, log)
	registrationService := eventapp.NewRegistrationService(eventRepo, registrationRepo, promotionRepo, runnerRepo, gateway, notificationService, log)
	teamService := eventapp.NewTeamService(eventRepo, teamRepo, log)
	webhookService := eventapp.NewStripeWebhookService(stripeCfg, registrationService, log)

	followService := socialapp.NewFollowService(followRepo, runnerRepo, notificationService, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	runnerHandler := handler.NewRunnerHandler(runnerService)
	pointsHandler := handler.NewPointsHandler(ledgerService)
	activityHandler := handler.NewActivityHandler(activityService)
	eventHandler := handler.NewEventHandler(eventService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	teamHandler := handler.NewTeamHandler(teamService)
	socialHandler := handler.NewSocialHandler(followService, notificationService)
	wsHandler := handler.NewWSHandler(hub)
	systemHandler := handler.NewSystemHandler(db.DB, version)
	webhookHandler := handler.NewStripeWebhookHandler(webhookService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled). Auth endpoints get their own tighter
	// limiter so credential stuffing is throttled before the global one.
	var authRateLimit gin.HandlerFunc
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		authRateLimit = middleware.AuthRateLimit(middleware.NewRateLimiter(10, time.Minute))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health and readiness probes (outside API versioning)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Stripe webhook endpoint (no authentication, signature-verified).
	// Registered directly on the engine so the JWT middleware never sees it.
	engine.POST("/api/v1/payments/webhook", webhookHandler.HandleStripeWebhook)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/code",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/runners/password/reset",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/payments/webhook",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Identity domain - public auth routes plus session management
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if authRateLimit != nil {
		authRoutes.Use(authRateLimit)
	}
	authRoutes.POST("/code", authHandler.RequestCode)
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.POST("/logout-all", authHandler.LogoutAll)

	// Runner profiles and the follow graph
	runnerRoutes := router.NewDomainGroup("runners", "/runners")
	runnerRoutes.GET("", runnerHandler.SearchRunners)
	runnerRoutes.GET("/me", runnerHandler.GetProfile)
	runnerRoutes.PUT("/me", runnerHandler.UpdateProfile)
	runnerRoutes.PUT("/me/password", runnerHandler.ChangePassword)
	runnerRoutes.DELETE("/me", runnerHandler.Deactivate)
	runnerRoutes.POST("/me/avatar/upload-url", runnerHandler.RequestAvatarUpload)
	runnerRoutes.POST("/me/avatar/confirm", runnerHandler.ConfirmAvatarUpload)
	runnerRoutes.POST("/password/reset", runnerHandler.ResetPassword)
	runnerRoutes.POST("/:id/follow", socialHandler.Follow)
	runnerRoutes.DELETE("/:id/follow", socialHandler.Unfollow)
	runnerRoutes.GET("/:id/follow-stats", socialHandler.GetFollowStats)
	runnerRoutes.GET("/:id/followers", socialHandler.ListFollowers)
	runnerRoutes.GET("/:id/following", socialHandler.ListFollowing)

	// Points ledger (zonas)
	pointsRoutes := router.NewDomainGroup("points", "/points")
	pointsRoutes.POST("/awards", pointsHandler.PeerAward)
	pointsRoutes.POST("/grants", pointsHandler.GrantToActivity)
	pointsRoutes.GET("/balance", pointsHandler.GetBalance)
	pointsRoutes.GET("/entries", pointsHandler.ListEntries)
	pointsRoutes.GET("/entries/:id", pointsHandler.GetEntry)
	pointsRoutes.GET("/referrals/count", pointsHandler.GetReferralCount)
	pointsRoutes.GET("/referrals/earnings", pointsHandler.GetReferralEarnings)

	// Activities and their GPS tracks
	activityRoutes := router.NewDomainGroup("activities", "/activities")
	activityRoutes.POST("", activityHandler.CreateActivity)
	activityRoutes.GET("", activityHandler.ListActivities)
	activityRoutes.GET("/:id", activityHandler.GetActivity)
	activityRoutes.PUT("/:id", activityHandler.UpdateActivity)
	activityRoutes.DELETE("/:id", activityHandler.DeleteActivity)
	activityRoutes.POST("/:id/track/upload-url", activityHandler.RequestTrackUpload)
	activityRoutes.POST("/:id/track/confirm", activityHandler.ConfirmTrackUpload)
	activityRoutes.GET("/:id/grants", pointsHandler.ListActivityGrants)
	activityRoutes.GET("/:id/grants/total", pointsHandler.GetActivityTotal)

	// Events, registrations, promotions and pacers
	eventRoutes := router.NewDomainGroup("events", "/events")
	eventRoutes.POST("", eventHandler.CreateEvent)
	eventRoutes.GET("", eventHandler.ListEvents)
	eventRoutes.GET("/:id", eventHandler.GetEvent)
	eventRoutes.PUT("/:id", eventHandler.UpdateEvent)
	eventRoutes.DELETE("/:id", eventHandler.DeleteEvent)
	eventRoutes.POST("/:id/publish", eventHandler.PublishEvent)
	eventRoutes.POST("/:id/close", eventHandler.CloseEvent)
	eventRoutes.POST("/:id/cancel", eventHandler.CancelEvent)
	eventRoutes.POST("/:id/promotions", eventHandler.CreatePromotion)
	eventRoutes.GET("/:id/promotions", eventHandler.ListPromotions)
	eventRoutes.DELETE("/:id/promotions/:promotionId", eventHandler.DeletePromotion)
	eventRoutes.POST("/:id/pacers", eventHandler.AssignPacer)
	eventRoutes.GET("/:id/pacers", eventHandler.ListPacers)
	eventRoutes.DELETE("/:id/pacers/:pacerId", eventHandler.RemovePacer)
	eventRoutes.POST("/:id/registrations", registrationHandler.Register)
	eventRoutes.GET("/:id/registrations", registrationHandler.ListEventRegistrations)
	eventRoutes.GET("/:id/teams", teamHandler.ListTeams)

	// Registration lifecycle outside the event scope
	registrationRoutes := router.NewDomainGroup("registrations", "/registrations")
	registrationRoutes.GET("", registrationHandler.ListMyRegistrations)
	registrationRoutes.GET("/:id", registrationHandler.GetRegistration)
	registrationRoutes.POST("/:id/cancel", registrationHandler.CancelRegistration)
	registrationRoutes.POST("/confirm", registrationHandler.ConfirmPayment)

	// Event teams
	teamRoutes := router.NewDomainGroup("teams", "/teams")
	teamRoutes.POST("", teamHandler.CreateTeam)
	teamRoutes.GET("/:id", teamHandler.GetTeam)
	teamRoutes.DELETE("/:id", teamHandler.DeleteTeam)
	teamRoutes.GET("/:id/members", teamHandler.ListMembers)
	teamRoutes.POST("/:id/join", teamHandler.JoinTeam)
	teamRoutes.POST("/:id/leave", teamHandler.LeaveTeam)

	// Notifications
	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.GET("", socialHandler.ListNotifications)
	notificationRoutes.GET("/unread/count", socialHandler.CountUnread)
	notificationRoutes.POST("/:id/read", socialHandler.MarkNotificationRead)
	notificationRoutes.DELETE("/:id", socialHandler.DeleteNotification)

	// Live push connection
	wsRoutes := router.NewDomainGroup("push", "/ws")
	wsRoutes.GET("", wsHandler.Connect)

	// System info
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)

	// Register all domain groups
	r.Register(authRoutes).
		Register(runnerRoutes).
		Register(pointsRoutes).
		Register(activityRoutes).
		Register(eventRoutes).
		Register(registrationRoutes).
		Register(teamRoutes).
		Register(notificationRoutes).
		Register(wsRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

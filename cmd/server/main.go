package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/inventoryhub/backend/internal/application/catalog"
	connectorapp "github.com/inventoryhub/backend/internal/application/connector"
	discussionapp "github.com/inventoryhub/backend/internal/application/discussion"
	identityapp "github.com/inventoryhub/backend/internal/application/identity"
	inventoryapp "github.com/inventoryhub/backend/internal/application/inventory"
	"github.com/inventoryhub/backend/internal/infrastructure/auth"
	"github.com/inventoryhub/backend/internal/infrastructure/config"
	"github.com/inventoryhub/backend/internal/infrastructure/crm"
	"github.com/inventoryhub/backend/internal/infrastructure/drive"
	"github.com/inventoryhub/backend/internal/infrastructure/logger"
	"github.com/inventoryhub/backend/internal/infrastructure/oauth"
	"github.com/inventoryhub/backend/internal/infrastructure/persistence"
	"github.com/inventoryhub/backend/internal/interfaces/http/handler"
	"github.com/inventoryhub/backend/internal/interfaces/http/middleware"
	"github.com/inventoryhub/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

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

	log.Info("Starting InventoryHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
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

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	credentialRepo := persistence.NewGormCredentialRepository(db.DB)

	// Token blacklist: Redis-backed when reachable, in-memory otherwise
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	}

	// OAuth connector flows
	flows := oauth.NewRegistry(
		oauth.NewMicrosoftFlow(cfg.OAuth.Microsoft),
		oauth.NewSalesforceFlow(cfg.OAuth.Salesforce, cfg.OAuth.SalesforceLoginURL),
	)

	// Provider API clients
	driveClient := drive.NewOneDriveClient(cfg.Integrations, log)
	crmClient := crm.NewSalesforceClient(cfg.Integrations, log)

	// Initialize application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, inventoryRepo, itemRepo, commentRepo, log)
	inventoryService := inventoryapp.NewInventoryService(inventoryRepo, itemRepo, log)
	itemService := inventoryapp.NewItemService(inventoryRepo, itemRepo, log)
	commentService := discussionapp.NewCommentService(commentRepo, inventoryRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	connectService := connectorapp.NewConnectService(flows, credentialRepo, log)
	ticketService := connectorapp.NewTicketService(connectService, driveClient, log)
	exportService := connectorapp.NewExportService(connectService, crmClient, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	itemHandler := handler.NewItemHandler(itemService)
	commentHandler := handler.NewCommentHandler(commentService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	connectorHandler := handler.NewConnectorHandler(connectService, cfg.OAuth, cfg.Cookie)
	ticketHandler := handler.NewTicketHandler(ticketService)
	exportHandler := handler.NewExportHandler(exportService)

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

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Reads on public resources work anonymously, so authentication is applied
	// per route instead of globally: requireAuth guards every mutation and
	// owner-scoped read, optionalAuth resolves the viewer for visibility checks.
	requireAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	optionalAuth := middleware.OptionalJWTAuthMiddleware(jwtService)

	// Identity domain (registration, login, sessions)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", requireAuth, authHandler.Logout)

	// Current user profile and statistics
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(requireAuth)
	userRoutes.GET("/me", userHandler.Me)
	userRoutes.PUT("/me", userHandler.UpdateProfile)
	userRoutes.PUT("/me/password", userHandler.ChangePassword)
	userRoutes.GET("/me/stats", userHandler.Stats)

	// Inventory domain
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventories")
	inventoryRoutes.GET("", optionalAuth, inventoryHandler.List)
	inventoryRoutes.GET("/:id", optionalAuth, inventoryHandler.Get)
	inventoryRoutes.GET("/:id/items", optionalAuth, itemHandler.List)
	inventoryRoutes.GET("/:id/comments", optionalAuth, commentHandler.List)
	inventoryRoutes.POST("", requireAuth, inventoryHandler.Create)
	inventoryRoutes.PUT("/:id", requireAuth, inventoryHandler.Update)
	inventoryRoutes.PUT("/:id/custom-id-scheme", requireAuth, inventoryHandler.UpdateCustomIDScheme)
	inventoryRoutes.PUT("/:id/field-slots", requireAuth, inventoryHandler.UpdateFieldSlots)
	inventoryRoutes.DELETE("/:id", requireAuth, inventoryHandler.Delete)
	inventoryRoutes.POST("/:id/items", requireAuth, itemHandler.Create)
	inventoryRoutes.POST("/:id/comments", requireAuth, commentHandler.Create)

	// Items addressed directly by ID
	itemRoutes := router.NewDomainGroup("items", "/items")
	itemRoutes.GET("/:id", optionalAuth, itemHandler.Get)
	itemRoutes.PUT("/:id", requireAuth, itemHandler.Update)
	itemRoutes.DELETE("/:id", requireAuth, itemHandler.Delete)

	// Comments addressed directly by ID
	commentRoutes := router.NewDomainGroup("comments", "/comments")
	commentRoutes.DELETE("/:id", requireAuth, commentHandler.Delete)

	// Catalog domain (fixed category list)
	categoryRoutes := router.NewDomainGroup("catalog", "/categories")
	categoryRoutes.GET("", categoryHandler.List)

	// Connector domain (OAuth provider connections).
	// The callback is public: the browser arrives from the provider's consent
	// screen without an Authorization header, so identity and CSRF state ride
	// on the cookies pinned by Begin.
	connectionRoutes := router.NewDomainGroup("connections", "/connections")
	connectionRoutes.GET("", requireAuth, connectorHandler.Status)
	connectionRoutes.GET("/:provider/begin", requireAuth, connectorHandler.Begin)
	connectionRoutes.GET("/:provider/callback", connectorHandler.Callback)
	connectionRoutes.DELETE("/:provider", requireAuth, connectorHandler.Disconnect)

	// Integration operations backed by connected providers
	integrationRoutes := router.NewDomainGroup("integrations", "/integrations")
	integrationRoutes.Use(requireAuth)
	integrationRoutes.POST("/salesforce/accounts", exportHandler.CreateCRMAccount)
	integrationRoutes.POST("/onedrive/tickets", ticketHandler.UploadTicket)

	// Register all domain groups
	r.Register(authRoutes).
		Register(userRoutes).
		Register(inventoryRoutes).
		Register(itemRoutes).
		Register(commentRoutes).
		Register(categoryRoutes).
		Register(connectionRoutes).
		Register(integrationRoutes)

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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

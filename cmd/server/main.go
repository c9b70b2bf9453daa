package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/temply-mn/temply-api/internal/authz"
	"github.com/temply-mn/temply-api/internal/config"
	"github.com/temply-mn/temply-api/internal/database"
	"github.com/temply-mn/temply-api/internal/handlers"
	"github.com/temply-mn/temply-api/internal/identity"
	"github.com/temply-mn/temply-api/internal/logging"
	"github.com/temply-mn/temply-api/internal/middleware"
	"github.com/temply-mn/temply-api/internal/repository"
	"github.com/temply-mn/temply-api/internal/routes"
	"github.com/temply-mn/temply-api/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	if cfg.SupabaseJWTSecret == "" && (!cfg.UsesSupabaseProvider() || cfg.LocalAuthEnabled) {
		slog.Error("SUPABASE_JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.UsesSupabaseProvider() && (cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "") {
		slog.Error("SUPABASE_URL and SUPABASE_ANON_KEY are required for the supabase identity provider")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	logging.WithDatabase(pgLogHandler)

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetentionDays, cleanupDone)

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	templateRepo := repository.NewTemplateRepository(database.DB)
	cartRepo := repository.NewCartRepository(database.DB)
	purchaseRepo := repository.NewPurchaseRepository(database.DB)
	downloadRepo := repository.NewDownloadRepository(database.DB)

	// Identity and authorization
	jwtProvider := identity.NewJWTProvider(cfg.SupabaseJWTSecret)
	var provider identity.Provider = jwtProvider
	if cfg.UsesSupabaseProvider() {
		provider = identity.NewSupabaseProvider(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.ProviderTimeout)
	}
	slog.Info("identity provider configured", "provider", cfg.IdentityProvider)

	gate, err := authz.NewGate()
	if err != nil {
		slog.Error("authorization policy failed to load", "error", err)
		os.Exit(1)
	}
	roleResolver := identity.NewRoleResolver(userRepo)

	// Services
	templateService := services.NewTemplateService(templateRepo, userRepo, purchaseRepo, gate, services.NewContentFilter())
	cartService := services.NewCartService(cartRepo, templateRepo, purchaseRepo, gate)
	purchaseService := services.NewPurchaseService(purchaseRepo, templateRepo, gate)
	downloadService := services.NewDownloadService(downloadRepo, purchaseRepo, templateRepo, gate)
	adminService := services.NewAdminService(templateRepo, userRepo, purchaseRepo, gate)
	authService := services.NewAuthService(userRepo, jwtProvider, gate, cfg)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Fiber app
	app := routes.NewApp()

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, gate, middleware.Authenticate(provider, roleResolver, cfg.AccessTokenCookie), routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Health:   handlers.NewHealthHandler(database.Ping),
		Template: handlers.NewTemplateHandler(templateService, gate),
		Cart:     handlers.NewCartHandler(cartService, gate),
		Purchase: handlers.NewPurchaseHandler(purchaseService, gate),
		Download: handlers.NewDownloadHandler(downloadService, gate),
		Admin:    handlers.NewAdminHandler(adminService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/session"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"upgradedash/internal/config"
	"upgradedash/internal/database"
	"upgradedash/internal/database/migration"
	handlers "upgradedash/internal/http/handler"
	"upgradedash/internal/http/middleware"
	"upgradedash/internal/otel"
	"upgradedash/internal/repository/postgres"
	"upgradedash/internal/service"
	"upgradedash/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	ctx := context.Background()
	loc := time.Local

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	if err := migration.EnsureInitialAdmin(ctx, db, loc, cfg.Auth.InitialAdminPassword); err != nil {
		log.Fatalf("failed to bootstrap admin account: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Initialize repositories and services
	recordRepo := postgres.NewRecordPostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	uploadRepo := postgres.NewUploadPostgres(db)

	summarySvc := service.NewSummaryService(recordRepo)
	uploadSvc := service.NewUploadService(recordRepo, uploadRepo, objStore)
	authSvc := service.NewAuthService(userRepo)

	// Cookie-backed sessions for login state
	sessionStore := session.New(session.Config{
		Expiration:     time.Duration(cfg.Auth.SessionExpiryHours) * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.Upload.MaxBytes,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promReg := prometheus.NewRegistry()
	promMW, err := middleware.NewPrometheusMiddleware(promReg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, sessionStore, authSvc, summarySvc, uploadSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/config"
	"github.com/dafibh/condo/condo-backend/internal/handler"
	"github.com/dafibh/condo/condo-backend/internal/lock"
	"github.com/dafibh/condo/condo-backend/internal/metrics"
	"github.com/dafibh/condo/condo-backend/internal/middleware"
	"github.com/dafibh/condo/condo-backend/internal/report"
	"github.com/dafibh/condo/condo-backend/internal/repository/postgres"
	"github.com/dafibh/condo/condo-backend/internal/repository/storage"
	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/dafibh/condo/condo-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title Condo API
// @version 1.0
// @description Fee calculation and ledgers for an apartment owners association
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Auth0 access token, prefixed with "Bearer "
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	metrics.Init(pool)

	// Ledger and settlement locks. Redis when several replicas share the database.
	var locker lock.Locker = lock.NewKeyedMutex()
	if cfg.RedisURL != "" {
		redisLocker, rdb, err := lock.NewRedisLockerFromURL(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer rdb.Close()
		locker = redisLocker
		log.Info().Msg("Using redis locks")
	}

	var archive storage.ReportStorage
	if cfg.ArchiveEnabled() {
		s3Repo, err := storage.NewS3ReportRepository(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize report archive")
		}
		archive = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Report archive enabled")
	}

	pdf := report.NewPDFRenderer(cfg.Reports.AssociationName, loadLogo(cfg.Reports.LogoPath))

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	readingRepo := postgres.NewMeterReadingRepository(pool)
	tariffRepo := postgres.NewTariffRepository(pool)
	occupancyRepo := postgres.NewOccupancyRepository(pool)
	surchargeRepo := postgres.NewSurchargeRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	articleRepo := postgres.NewArticleRepository(pool)

	// Initialize services
	authService := service.NewAuthService(userRepo, unitRepo)
	ledgerService := service.NewLedgerService(ledgerRepo, unitRepo, locker)
	unitService := service.NewUnitService(unitRepo, ledgerService)
	readingService := service.NewReadingService(readingRepo, unitRepo)
	tariffService := service.NewTariffService(tariffRepo)
	occupancyService := service.NewOccupancyService(occupancyRepo, unitRepo)
	surchargeService := service.NewSurchargeService(surchargeRepo, unitRepo)
	feeService := service.NewFeeService(unitRepo, readingRepo, tariffRepo, occupancyRepo, surchargeRepo)
	settlementService := service.NewSettlementService(unitRepo, feeService, ledgerService, locker, cfg.SettlementWorkers)
	reportService := service.NewReportService(feeService, ledgerService, unitRepo, pdf, archive, cfg.S3.PresignExpiry)
	importService := service.NewImportService(readingRepo, unitRepo)

	// Real-time events
	hub := websocket.NewHub()
	ledgerService.SetEventPublisher(hub)
	readingService.SetEventPublisher(hub)
	tariffService.SetEventPublisher(hub)
	settlementService.SetEventPublisher(hub)
	importService.SetEventPublisher(hub)

	tokenValidator, err := middleware.NewAuth0Validator(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token validator")
	}
	authMiddleware := middleware.NewAuthMiddlewareWithValidator(tokenValidator, authService)
	subscriptions := websocket.NewSubscriptionAuthenticator(tokenValidator, authService)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	defer limiter.Stop()

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Profile:    handler.NewProfileHandler(authService),
		Unit:       handler.NewUnitHandler(unitService),
		Reading:    handler.NewReadingHandler(readingService),
		Tariff:     handler.NewTariffHandler(tariffService),
		Registry:   handler.NewRegistryHandler(occupancyService, surchargeService),
		Fee:        handler.NewFeeHandler(feeService, settlementService),
		Ledger:     handler.NewLedgerHandler(ledgerService),
		Settlement: handler.NewSettlementHandler(settlementService),
		Report:     handler.NewReportHandler(reportService),
		Import:     handler.NewImportHandler(importService),
		Article:    handler.NewArticleHandler(service.NewArticleService(articleRepo)),
	}
	wsHandler := handler.NewWebSocketHandler(hub, subscriptions, cfg.CORSOrigins)

	if cfg.PublicAPIURL != "" {
		handler.APIServers = append(handler.APIServers, handler.Server{URL: cfg.PublicAPIURL, Description: "Production"})
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()

	e.Use(echomiddleware.RequestID())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentDisposition, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	e.Use(echomiddleware.BodyLimit("6M"))
	e.Use(metrics.EchoMiddleware())
	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", handler.ServeOpenAPI3Spec)
	e.GET("/ws", wsHandler.HandleWS)

	handler.RegisterRoutes(e, authMiddleware, limiter, handlers)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// hijacked websocket connections are not closed by Shutdown
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// loadLogo reads and scales the report logo. Reports render without one
// when the path is empty or unreadable.
func loadLogo(path string) []byte {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Report logo not found")
		return nil
	}
	defer f.Close()

	logo, err := report.PrepareLogo(f, report.DefaultLogoWidth)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Report logo could not be decoded")
		return nil
	}
	return logo
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("user", middleware.GetAuth0ID(c)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}

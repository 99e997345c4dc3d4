package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reimburse/reimburse/internal/config"
	"github.com/reimburse/reimburse/internal/domain/reimbursement"
	"github.com/reimburse/reimburse/internal/platform/auth"
	"github.com/reimburse/reimburse/internal/platform/db"
	"github.com/reimburse/reimburse/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reimburse-server",
		Short: "Medical consultation reimbursement API server",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the reimbursement API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.AuthSigningKey != "" {
		e.Use(auth.JWTMiddleware([]byte(cfg.AuthSigningKey)))
	} else {
		e.Use(auth.DevAuthMiddleware())
		logger.Warn().Msg("AUTH_SIGNING_KEY not set; requests are not authenticated")
	}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": reimbursement.APIVersion,
		})
	})

	// API group with rate limiting
	api := e.Group("/api")
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	// History repository: Postgres when configured, in-memory otherwise
	ctx := context.Background()
	var history reimbursement.HistoryRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		repo := reimbursement.NewHistoryRepoPG(pool)
		if err := repo.Init(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize history storage")
		}
		history = repo
		logger.Info().Msg("connected to database")
	} else {
		history = reimbursement.NewHistoryRepoMem()
		logger.Warn().Msg("DATABASE_URL not set; history is kept in memory")
	}

	// Reimbursement domain
	svc := reimbursement.NewService(reimbursement.NewCalculator(), history)
	if cfg.AuthorizerEnabled {
		svc.SetAuthorizer(reimbursement.NewLimitAuthorizer())
	}
	if cfg.AuditEnabled {
		svc.SetAuditor(reimbursement.NewLogAuditor(logger))
	}
	handler := reimbursement.NewHandler(svc)
	handler.RegisterRoutes(api)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

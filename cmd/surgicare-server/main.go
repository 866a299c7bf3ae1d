package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/surgicare/surgicare/internal/config"
	"github.com/surgicare/surgicare/internal/domain/analytics"
	"github.com/surgicare/surgicare/internal/domain/patient"
	"github.com/surgicare/surgicare/internal/domain/profile"
	"github.com/surgicare/surgicare/internal/domain/surgeon"
	"github.com/surgicare/surgicare/internal/domain/surgery"
	"github.com/surgicare/surgicare/internal/domain/vitals"
	"github.com/surgicare/surgicare/internal/platform/auth"
	"github.com/surgicare/surgicare/internal/platform/authz"
	"github.com/surgicare/surgicare/internal/platform/db"
	"github.com/surgicare/surgicare/internal/platform/messaging"
	"github.com/surgicare/surgicare/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "surgicare-server",
		Short: "SurgiCare patient management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory (defaults to MIGRATIONS_DIR)")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory (defaults to MIGRATIONS_DIR)")
	cmd.AddCommand(statusCmd)

	return cmd
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

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Policy engine and caller resolution. Every handler resolves the
	// caller's role through the profile repository, never from the token.
	engine := authz.NewEngine(authz.DefaultPolicies())
	profileRepo := profile.NewRepoPG(pool)
	profileSvc := profile.NewService(profileRepo, engine)
	callers := authz.NewCallerResolver(profileSvc)

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
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.AuthSigningKey),
		}))
	}

	// Audit middleware
	e.Use(middleware.Audit(logger))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", func(c echo.Context) error {
		if err := db.Health(c.Request().Context(), pool, 2*time.Second); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API groups
	apiV1 := e.Group("/api/v1")
	internalGroup := e.Group("/internal")

	// Profiles and the identity-store signup hook
	profileHandler := profile.NewHandler(profileSvc, callers)
	profileHandler.RegisterRoutes(apiV1)
	profileHandler.RegisterIdentityHook(internalGroup)

	// Patient details
	patientSvc := patient.NewService(patient.NewRepoPG(pool), engine)
	patient.NewHandler(patientSvc, callers).RegisterRoutes(apiV1)

	// Surgeon directory
	surgeonSvc := surgeon.NewService(surgeon.NewRepoPG(pool), engine)
	surgeon.NewHandler(surgeonSvc, callers).RegisterRoutes(apiV1)

	// Vital signs
	vitalsSvc := vitals.NewService(vitals.NewRepoPG(pool), engine)
	vitals.NewHandler(vitalsSvc, callers).RegisterRoutes(apiV1)

	// Surgical cases and history
	surgerySvc := surgery.NewService(surgery.NewCaseRepoPG(pool), surgery.NewHistoryRepoPG(pool), engine)
	surgery.NewHandler(surgerySvc, callers).RegisterRoutes(apiV1)

	// Historical surgical volume data
	analyticsSvc := analytics.NewService(analytics.NewRepoPG(pool), engine)
	analytics.NewHandler(analyticsSvc, callers).RegisterRoutes(apiV1)

	// Event bus: provisions profiles from identity.created events when
	// the identity store publishes instead of calling the HTTP hook.
	var bus *messaging.Bus
	if cfg.AMQPURL != "" {
		bus, err = messaging.NewBus(cfg.AMQPURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to event bus")
		}
		defer bus.Close()

		busCtx, busCancel := context.WithCancel(ctx)
		defer busCancel()
		if err := bus.ConsumeIdentityEvents(busCtx, profileSvc); err != nil {
			logger.Fatal().Err(err).Msg("failed to start identity event consumer")
		}
		logger.Info().Msg("identity event consumer started")
	}

	// Graceful shutdown
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

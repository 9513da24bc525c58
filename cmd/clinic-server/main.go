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

	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/domain/identity"
	"github.com/clinicdesk/clinicdesk/internal/domain/intake"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/staff"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/crud"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
	"github.com/clinicdesk/clinicdesk/internal/platform/filestore"
	"github.com/clinicdesk/clinicdesk/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic administration API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(bootstrapCmd())

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
			fmt.Printf("Applied %d migration(s).\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
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
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func bootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the admin user and seed the department catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.AdminPassword == "" {
				return fmt.Errorf("BOOTSTRAP_ADMIN_PASSWORD is required")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			users := identity.NewService(identity.NewUserRepoPG(pool), auth.NewBcryptHasher())
			created, err := users.Bootstrap(ctx, cfg.AdminPIN, cfg.AdminPassword)
			if err != nil {
				return err
			}
			if created {
				fmt.Println("Admin user created.")
			} else {
				fmt.Println("Admin user already exists.")
			}

			cat := catalog.NewService(
				catalog.NewDepartmentRepoPG(pool),
				catalog.NewServiceRepoPG(pool),
				cfg.EnforceServiceDepartment,
			)
			n, err := cat.Seed(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d department(s).\n", n)
			return nil
		},
	}
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Collaborators
	hasher := auth.NewBcryptHasher()
	files := filestore.NewInMemoryStore()
	sessions := auth.SessionConfig{
		SigningKey: []byte(cfg.SessionKey),
		TTL:        time.Duration(cfg.SessionTTLHours) * time.Hour,
		Issuer:     "clinic-server",
	}

	// Repositories and services
	userRepo := identity.NewUserRepoPG(pool)
	identitySvc := identity.NewService(userRepo, hasher)
	gate := auth.NewGate(identitySvc)

	catalogSvc := catalog.NewService(
		catalog.NewDepartmentRepoPG(pool),
		catalog.NewServiceRepoPG(pool),
		cfg.EnforceServiceDepartment,
	)

	inTx := db.PoolRunner(pool)
	staffSvc := staff.NewService(staff.NewDoctorRepoPG(pool), userRepo, catalogSvc, hasher, files, inTx, logger)
	patientSvc := patient.NewService(patient.NewPatientRepoPG(pool), userRepo, hasher, files, inTx, logger)
	intakeSvc := intake.NewService(intake.NewAppointmentRepoPG(pool))

	// Form schemas need the current catalog for their select options.
	groups, err := catalogSvc.Grouped(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load department catalog")
	}
	if len(groups) == 0 {
		logger.Warn().Msg("department catalog is empty, run `clinic-server bootstrap` to seed it")
	}

	adminGuard := func(ctx context.Context) error {
		_, err := gate.RequireAdmin(ctx)
		return err
	}
	invalidate := func() { logger.Debug().Msg("entity collection invalidated") }

	staffEngine := crud.New(staff.Resource(staffSvc, staff.Fields(groups)), adminGuard, invalidate)
	patientEngine := crud.New(patient.Resource(patientSvc), adminGuard, invalidate)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.Use(auth.SessionMiddleware(sessions))
	if cfg.IsDev() {
		e.Use(auth.DevSessionMiddleware(cfg.AdminPIN))
	}

	e.GET("/health", db.HealthHandler(pool))

	api := e.Group("/api/v1")
	admin := api.Group("", auth.RequireAdminMiddleware(gate))

	identity.NewHandler(identitySvc, sessions).RegisterRoutes(api)
	catalog.NewHandler(catalogSvc).RegisterRoutes(api)
	staff.NewHandler(staffEngine, staffSvc).RegisterRoutes(api, admin)
	patient.NewHandler(patientEngine, patientSvc).RegisterRoutes(admin)
	intake.NewHandler(intakeSvc, intake.Fields(groups)).RegisterRoutes(api, admin)

	// Start and wait for shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

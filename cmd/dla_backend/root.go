package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/core/services"
	"github.com/SscSPs/distributor_ledger_app/internal/platform/cache"
	"github.com/SscSPs/distributor_ledger_app/internal/platform/config"
	"github.com/SscSPs/distributor_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/distributor_ledger_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:          "dla_backend",
		Short:        "Distributor ledger backend",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			loaded, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newWorkerCmd())
	return root
}

// app holds the long-lived dependencies shared by serve and worker.
type app struct {
	pool     *pgxpool.Pool
	redis    *redis.Client
	services *portssvc.ServiceContainer
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warn("Error closing redis client", slog.String("error", err.Error()))
		}
	}
	database.ClosePgxPool(a.pool)
}

// buildApp opens the database pool, the optional report cache and the service container.
func buildApp(ctx context.Context) (*app, error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")

	a := &app{pool: pool}

	var reportCache portssvc.ReportCache
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redis = client
		reportCache = cache.NewReportCache(client, cfg.ReportCacheTTL, logger)
		logger.Info("Report cache enabled", slog.Duration("ttl", cfg.ReportCacheTTL))
	}

	repos := pgsql.NewRepositoryProvider(pool)
	a.services = services.NewServiceContainer(cfg, repos, reportCache)
	return a, nil
}

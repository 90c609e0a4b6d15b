package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/services"
	"github.com/SscSPs/distributor_ledger_app/internal/handlers"
	"github.com/SscSPs/distributor_ledger_app/internal/platform/chart"
	"github.com/SscSPs/distributor_ledger_app/internal/utils"
	"github.com/SscSPs/distributor_ledger_app/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !skipMigrations {
				logger.Info("Running database migrations...")
				if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, logger); err != nil {
					return err
				}
			}

			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := bootstrap(ctx, a); err != nil {
				return err
			}

			analytics := utils.InitializePosthogClient(cfg.PostHogAPIKey, cfg.PostHogEndpoint, logger)
			defer analytics.Close()

			if cfg.IsProduction {
				gin.SetMode(gin.ReleaseMode)
			}
			router, err := handlers.NewRouter(cfg, a.services, a.pool, analytics, logger)
			if err != nil {
				return err
			}

			return runServer(ctx, &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			})
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on start")
	return cmd
}

// bootstrap creates the configured administrator and seeds the chart of accounts into an empty ledger.
func bootstrap(ctx context.Context, a *app) error {
	seededBy := services.SystemUserID
	if cfg.BootstrapAdminUsername != "" && cfg.BootstrapAdminPassword != "" {
		admin, created, err := a.services.User.EnsureAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword)
		if err != nil {
			return fmt.Errorf("failed to bootstrap administrator: %w", err)
		}
		if created {
			logger.Info("Bootstrap administrator created", slog.String("username", admin.Username))
		}
		seededBy = admin.UserID
	}

	if cfg.ChartOfAccountsFile == "" {
		return nil
	}
	accounts, err := chart.Load(cfg.ChartOfAccountsFile)
	if err != nil {
		return err
	}
	n, err := a.services.Account.BootstrapChart(ctx, accounts, seededBy)
	if err != nil {
		return fmt.Errorf("failed to seed chart of accounts: %w", err)
	}
	if n > 0 {
		logger.Info("Chart of accounts seeded", slog.Int("accounts", n))
	}
	return nil
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/distributor_ledger_app/internal/jobs"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

func newWorkerCmd() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run background jobs such as the overdue scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.RedisURL == "" {
				return errors.New("REDIS_URL is required for the worker")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			redisOpts, err := jobs.RedisOptsFromURL(cfg.RedisURL)
			if err != nil {
				return err
			}

			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			overdueJob := jobs.NewMarkOverdueJob(a.services.Overdue, logger)
			task, err := jobs.NewMarkOverdueTask("scheduler")
			if err != nil {
				return fmt.Errorf("failed to build overdue task: %w", err)
			}

			worker, err := jobs.NewWorker(jobs.WorkerConfig{
				RedisOpts:   redisOpts,
				Logger:      logger,
				Concurrency: concurrency,
				Handlers: []jobs.TaskHandler{
					{Type: jobs.TaskMarkOverdue, Handler: overdueJob.Handle},
				},
				Cron: []jobs.CronRegistration{
					{Spec: cfg.OverdueScanCron, Task: task, Options: []asynq.Option{asynq.MaxRetry(3), asynq.Queue(jobs.QueueDefault)}},
				},
			})
			if err != nil {
				return err
			}

			logger.Info("Overdue scan scheduled", slog.String("cron", cfg.OverdueScanCron))
			return worker.Run(ctx)
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 5, "number of tasks processed in parallel")
	return cmd
}

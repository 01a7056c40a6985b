package jobs

import (
	"context"
	"log/slog"

	"barrieredi/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderSyncJob periodically pulls the order feed file and imports its
// entries. Entry failures are reported by the handler per order and never
// abort the run, so one malformed order cannot stall the feed.
type OrderSyncJob struct {
	handler  commands.SyncOrdersCommandHandler
	feedPath string
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderSyncJob creates a job that imports the feed file on the given cron
// schedule (standard five-field cron expression, e.g. "*/15 * * * *").
func NewOrderSyncJob(
	handler commands.SyncOrdersCommandHandler,
	feedPath string,
	schedule string,
	logger *slog.Logger,
) *OrderSyncJob {
	return &OrderSyncJob{
		handler:  handler,
		feedPath: feedPath,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "order_sync_job"),
	}
}

// Start begins the scheduled feed synchronization.
func (j *OrderSyncJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order sync job started",
		"schedule", j.schedule, "feed_path", j.feedPath)
	return nil
}

// Stop stops the scheduled feed synchronization.
func (j *OrderSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order sync job stopped")
}

func (j *OrderSyncJob) runOnce() {
	ctx := context.Background()

	cmd, err := commands.NewSyncOrdersCommand(j.feedPath, nil, false)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order sync command rejected", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order sync run failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Order sync run finished",
		"imported", result.Imported,
		"failed", len(result.Errors),
	)
	for _, entryErr := range result.Errors {
		j.logger.WarnContext(ctx, "Order feed entry rejected", "entry", entryErr)
	}
	for _, warning := range result.Warnings {
		j.logger.WarnContext(ctx, "Order feed entry degraded", "warning", warning)
	}
}

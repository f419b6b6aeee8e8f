package jobs

import (
	"context"
	"log/slog"

	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchJob runs the proactive dispatch sweep on a fixed schedule: every
// few seconds it matches the pending order backlog against the available
// courier pool.
type DispatchJob struct {
	handler commands.DispatchPendingOrdersCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchJob creates the dispatch sweep job. The spec is a six-field
// cron expression, e.g. "*/5 * * * * *" for every five seconds.
func NewDispatchJob(
	handler commands.DispatchPendingOrdersCommandHandler,
	spec string,
	logger *slog.Logger,
) *DispatchJob {
	return &DispatchJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_job"),
	}
}

// Start schedules the sweep. An empty backlog or an empty courier pool is a
// normal outcome, not an error: the handler logs per-order results itself
// and only infrastructure failures surface here.
func (j *DispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		cmd := commands.NewDispatchPendingOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "dispatch sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "dispatch job started", "schedule", j.spec)
	return nil
}

// Stop stops the dispatch job.
func (j *DispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "dispatch job stopped")
}

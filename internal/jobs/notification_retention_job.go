package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// pruneTimeout bounds a single retention run
const pruneTimeout = 5 * time.Minute

// NotificationPruner deletes read notifications older than a cutoff
type NotificationPruner interface {
	PruneRead(ctx context.Context, before time.Time) (int64, error)
}

// NotificationRetentionJob periodically removes read notifications past the retention window
type NotificationRetentionJob struct {
	pruner    NotificationPruner
	spec      string
	retention time.Duration
	now       func() time.Time
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewNotificationRetentionJob creates the job; retentionDays must be positive
func NewNotificationRetentionJob(pruner NotificationPruner, spec string, retentionDays int, logger *zap.Logger) *NotificationRetentionJob {
	return &NotificationRetentionJob{
		pruner:    pruner,
		spec:      spec,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
		cron:      cron.New(),
		logger:    logger.With(zap.String("component", "notification_retention_job")),
	}
}

// Start schedules the job; an invalid cron spec is returned as an error
func (j *NotificationRetentionJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("notification retention job started",
		zap.String("schedule", j.spec),
		zap.Duration("retention", j.retention),
	)
	return nil
}

// Stop waits for a running prune to finish
func (j *NotificationRetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("notification retention job stopped")
}

func (j *NotificationRetentionJob) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pruneTimeout)
	defer cancel()

	cutoff := j.now().Add(-j.retention)
	deleted, err := j.pruner.PruneRead(ctx, cutoff)
	if err != nil {
		j.logger.Error("notification retention run failed", zap.Time("cutoff", cutoff), zap.Error(err))
		return
	}

	j.logger.Info("notification retention run finished",
		zap.Time("cutoff", cutoff),
		zap.Int64("deleted", deleted),
	)
}

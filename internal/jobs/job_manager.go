package jobs

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/leandrovr13/onfly/config"
)

// JobManager starts and stops every background job
type JobManager struct {
	retention *NotificationRetentionJob
	logger    *zap.Logger
}

// NewJobManager wires the jobs enabled in cfg
func NewJobManager(cfg *config.JobsConfig, pruner NotificationPruner, logger *zap.Logger) *JobManager {
	jm := &JobManager{logger: logger}
	if cfg.NotificationRetentionDays > 0 && cfg.NotificationRetentionCron != "" {
		jm.retention = NewNotificationRetentionJob(pruner, cfg.NotificationRetentionCron, cfg.NotificationRetentionDays, logger)
	}
	return jm
}

// StartAll starts all enabled jobs
func (jm *JobManager) StartAll() error {
	if jm.retention == nil {
		jm.logger.Info("notification retention disabled")
		return nil
	}
	if err := jm.retention.Start(); err != nil {
		return fmt.Errorf("failed to start notification retention job: %w", err)
	}
	return nil
}

// StopAll stops all started jobs
func (jm *JobManager) StopAll() {
	if jm.retention != nil {
		jm.retention.Stop()
	}
}

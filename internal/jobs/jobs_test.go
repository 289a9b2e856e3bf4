package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leandrovr13/onfly/config"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (f *fakePruner) PruneRead(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, before)
	return 3, f.err
}

func TestNotificationRetentionJob_RunUsesRetentionWindow(t *testing.T) {
	pruner := &fakePruner{}
	job := NewNotificationRetentionJob(pruner, "@daily", 90, zap.NewNop())
	now := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	job.run(context.Background())

	require.Len(t, pruner.cutoffs, 1)
	assert.Equal(t, now.AddDate(0, 0, -90), pruner.cutoffs[0])
}

func TestNotificationRetentionJob_RunSurvivesPrunerError(t *testing.T) {
	pruner := &fakePruner{err: errors.New("db down")}
	job := NewNotificationRetentionJob(pruner, "@daily", 1, zap.NewNop())

	assert.NotPanics(t, func() { job.run(context.Background()) })
	assert.Len(t, pruner.cutoffs, 1)
}

func TestNotificationRetentionJob_InvalidSpec(t *testing.T) {
	job := NewNotificationRetentionJob(&fakePruner{}, "not a cron spec", 30, zap.NewNop())
	assert.Error(t, job.Start())
}

func TestNotificationRetentionJob_StartStop(t *testing.T) {
	job := NewNotificationRetentionJob(&fakePruner{}, "@every 1h", 30, zap.NewNop())
	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.JobsConfig
		wantEnabled bool
		wantErr     bool
	}{
		{"enabled", config.JobsConfig{NotificationRetentionCron: "@daily", NotificationRetentionDays: 90}, true, false},
		{"zero days disables", config.JobsConfig{NotificationRetentionCron: "@daily", NotificationRetentionDays: 0}, false, false},
		{"empty schedule disables", config.JobsConfig{NotificationRetentionDays: 30}, false, false},
		{"bad schedule", config.JobsConfig{NotificationRetentionCron: "every tuesday", NotificationRetentionDays: 30}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jm := NewJobManager(&tt.cfg, &fakePruner{}, zap.NewNop())
			assert.Equal(t, tt.wantEnabled, jm.retention != nil)

			err := jm.StartAll()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			jm.StopAll()
		})
	}
}

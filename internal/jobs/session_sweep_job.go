package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionSweepJobName is the name of the idle wizard session sweep job
const SessionSweepJobName = "session_sweep"

// SessionSweeper drops wizard sessions that have been idle for longer than ttl.
type SessionSweeper interface {
	SweepIdle(ctx context.Context, ttl time.Duration) (removed int, err error)
}

// SessionSweepJob removes idle wizard sessions and releases their
// navigation blockers.
type SessionSweepJob struct {
	sweeper SessionSweeper
	ttl     time.Duration
	timeout time.Duration
	logger  *zap.Logger
}

// NewSessionSweepJob creates a new session sweep job.
// The timeout controls how long one sweep is allowed to run.
func NewSessionSweepJob(sweeper SessionSweeper, ttl time.Duration, logger *zap.Logger, timeout time.Duration) *SessionSweepJob {
	return &SessionSweepJob{
		sweeper: sweeper,
		ttl:     ttl,
		timeout: timeout,
		logger:  logger,
	}
}

// Run executes one sweep. This is called by the scheduler according to the
// cron expression.
func (j *SessionSweepJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	removed, err := j.sweeper.SweepIdle(ctx, j.ttl)
	if err != nil {
		j.logger.Error("wizard session sweep failed",
			zap.Int("removed", removed),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if removed > 0 {
		j.logger.Info("wizard session sweep completed",
			zap.Int("removed", removed),
			zap.Duration("ttl", j.ttl),
			zap.Duration("duration", time.Since(start)))
	}
}

// RegisterSessionSweepJob registers the session sweep job with the scheduler.
// The cronExpr should be a valid cron expression (e.g., "0 */5 * * * *" for every five minutes).
func RegisterSessionSweepJob(scheduler *Scheduler, sweeper SessionSweeper, ttl time.Duration, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewSessionSweepJob(sweeper, ttl, logger, timeout)
	return scheduler.AddJob(SessionSweepJobName, cronExpr, job.Run)
}

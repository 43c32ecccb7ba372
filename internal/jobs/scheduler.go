// Package jobs runs background maintenance for the wizard API on a cron
// schedule (robfig/cron with a seconds field).
package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs named jobs on cron expressions. A job that is still running
// when its next tick arrives is skipped, and a panicking job is recovered.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	id   cron.EntryID
	expr string
}

// NewScheduler creates a stopped Scheduler.
func NewScheduler(logger *zap.Logger) *Scheduler {
	cl := cronLogger{sugar: logger.Named("cron").Sugar()}
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)),
		),
		logger:  logger,
		entries: make(map[string]entry),
	}
}

// Start begins running registered jobs in the background.
func (s *Scheduler) Start() {
	s.logger.Info("starting job scheduler", zap.Strings("jobs", s.GetJobNames()))
	s.cron.Start()
}

// Stop stops scheduling new runs. The returned context is done once running
// jobs have returned.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping job scheduler")
	return s.cron.Stop()
}

// AddJob registers job under name. cronExpr takes six fields (seconds
// first) or a descriptor such as "@every 1h".
func (s *Scheduler) AddJob(name string, cronExpr string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("job %s already exists", name)
	}

	log := s.logger.With(zap.String("job_name", name))
	id, err := s.cron.AddFunc(cronExpr, func() {
		start := time.Now()
		log.Debug("running scheduled job")
		job()
		log.Debug("completed scheduled job", zap.Duration("duration", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}

	s.entries[name] = entry{id: id, expr: cronExpr}
	log.Info("added scheduled job", zap.String("cron_expr", cronExpr))
	return nil
}

// RemoveJob unregisters the named job.
func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[name]
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}
	s.cron.Remove(e.id)
	delete(s.entries, name)

	s.logger.Info("removed scheduled job",
		zap.String("job_name", name),
		zap.String("cron_expr", e.expr))
	return nil
}

// GetJobNames returns the registered job names, sorted.
func (s *Scheduler) GetJobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

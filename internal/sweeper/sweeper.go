// Package sweeper runs periodic jobs, such as the retry sweep, on cron
// schedules.
package sweeper

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

// DefaultTimeout bounds a single job run when no timeout is configured.
const DefaultTimeout = 5 * time.Minute

// Job is a unit of periodic work.
type Job interface {
	Execute(ctx context.Context) error
	Name() string
}

// Sweeper schedules jobs with cron expressions. A run of a job is skipped
// while its previous run is still in progress.
type Sweeper struct {
	cron    *cron.Cron
	jobs    map[string]Job
	timeout time.Duration
	mu      sync.RWMutex
}

type cronLogger struct{}

func (cronLogger) Printf(format string, args ...interface{}) {
	zlog.Logger.Printf(format, args...)
}

// New creates a Sweeper whose job runs are bounded by timeout.
func New(timeout time.Duration) *Sweeper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := cron.PrintfLogger(cronLogger{})

	return &Sweeper{
		cron:    cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		jobs:    make(map[string]Job),
		timeout: timeout,
	}
}

// AddJob registers job under the given cron spec. Descriptors such as
// "@every 1m" are accepted.
func (s *Sweeper) AddJob(spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.Name()]; ok {
		return fmt.Errorf("job %q already registered", job.Name())
	}

	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	if _, err := s.cron.AddFunc(spec, func() { s.executeJob(job) }); err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobs[job.Name()] = job

	zlog.Logger.Info().Str("job", job.Name()).Str("schedule", spec).Msg("scheduled job added")

	return nil
}

// Start starts the cron loop in its own goroutine.
func (s *Sweeper) Start() {
	s.mu.RLock()
	count := len(s.jobs)
	s.mu.RUnlock()

	zlog.Logger.Info().Int("jobs", count).Msg("starting sweeper")
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	zlog.Logger.Info().Msg("sweeper stopped")
}

// Jobs returns the names of the registered jobs, sorted.
func (s *Sweeper) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (s *Sweeper) executeJob(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	err := job.Execute(ctx)
	duration := time.Since(start)

	if err != nil {
		zlog.Logger.Error().Err(err).Str("job", job.Name()).Dur("duration", duration).Msg("scheduled job failed")
		return
	}

	zlog.Logger.Debug().Str("job", job.Name()).Dur("duration", duration).Msg("scheduled job completed")
}

type retryProcessor interface {
	ProcessFailedNotifications(ctx context.Context) model.SweepResult
}

// RetryJob runs one retry sweep per execution.
type RetryJob struct {
	processor retryProcessor
}

func NewRetryJob(p retryProcessor) *RetryJob {
	return &RetryJob{processor: p}
}

func (j *RetryJob) Name() string { return "retry-sweep" }

// Execute processes due records. It reports the context error when the
// sweep was cut short by the run timeout.
func (j *RetryJob) Execute(ctx context.Context) error {
	res := j.processor.ProcessFailedNotifications(ctx)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("retry sweep interrupted after %d records: %w", res.Processed, err)
	}

	return nil
}

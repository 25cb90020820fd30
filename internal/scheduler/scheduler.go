// Package scheduler owns the lifecycle of a notification record from its
// first delivery attempt to a terminal state.
//
// A record moves pending -> delivered when an attempt succeeds and
// pending -> failed when a due retry finds the budget exhausted. A failed
// attempt with budget left keeps the record pending, increments its retry
// count and schedules the next attempt with exponential backoff.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/backoff"
	"github.com/aliskhannn/farmkonnect-notifier/internal/delivery"
	"github.com/aliskhannn/farmkonnect-notifier/internal/metrics"
	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

// DefaultBatchSize is the number of due records loaded per sweep.
const DefaultBatchSize = 100

const exhaustedMessage = "maximum retries exceeded"

type notificationRepository interface {
	GetFailedNotificationsForRetry(ctx context.Context, now time.Time, limit int) ([]model.NotificationRecord, error)
	UpdateNotificationRetry(ctx context.Context, id uuid.UUID, retryCount int, nextRetryAt time.Time, errorMessage string) error
	UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status model.Status, deliveredAt *time.Time, errorMessage string) error
	GetRetryStatistics(ctx context.Context) (model.RetryStatistics, error)
}

type deliverer interface {
	Deliver(ctx context.Context, ch model.Channel, to string, payload model.Payload) (model.DeliveryResult, error)
}

// Scheduler applies delivery attempts and their state transitions.
type Scheduler struct {
	repo      notificationRepository
	deliverer deliverer
	policy    backoff.Policy
	batchSize int
	now       func() time.Time
	jitter    func() float64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithJitter sets the source of jitter fractions. fn must return values in [0, 1).
func WithJitter(fn func() float64) Option {
	return func(s *Scheduler) { s.jitter = fn }
}

// WithBatchSize limits how many due records one sweep loads.
func WithBatchSize(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// New creates a Scheduler.
func New(repo notificationRepository, d deliverer, policy backoff.Policy, opts ...Option) *Scheduler {
	s := &Scheduler{
		repo:      repo,
		deliverer: d,
		policy:    policy,
		batchSize: DefaultBatchSize,
		now:       time.Now,
		jitter:    rand.Float64,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Policy returns the backoff policy in use.
func (s *Scheduler) Policy() backoff.Policy {
	return s.policy
}

// CalculateNextRetryTime returns when a record that has been retried
// retryCount times should be attempted again.
func (s *Scheduler) CalculateNextRetryTime(retryCount int) time.Time {
	return s.policy.NextRetryAt(s.now(), retryCount, s.jitter())
}

// Attempt performs the first delivery of a freshly created record and
// returns the status it was left in. An error means the outcome could not
// be persisted; delivery failures are recorded on the record instead.
func (s *Scheduler) Attempt(ctx context.Context, rec model.NotificationRecord) (model.Status, error) {
	outcome, err := s.deliver(ctx, rec)
	metrics.TransitionsTotal.WithLabelValues(outcome).Inc()

	return statusOf(outcome), err
}

// RetryNotification runs one due retry of rec and reports whether it was
// delivered.
func (s *Scheduler) RetryNotification(ctx context.Context, rec model.NotificationRecord) (bool, error) {
	outcome, err := s.retry(ctx, rec)
	metrics.TransitionsTotal.WithLabelValues(outcome).Inc()

	return outcome == metrics.OutcomeDelivered, err
}

// ProcessDue runs one sweep over the due records. Records are processed
// one at a time; an error or panic on one record is logged and the sweep
// goes on with the next.
func (s *Scheduler) ProcessDue(ctx context.Context) model.SweepResult {
	start := time.Now()
	var res model.SweepResult

	records, err := s.repo.GetFailedNotificationsForRetry(ctx, s.now(), s.batchSize)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to load notifications due for retry")
		return res
	}

	for _, rec := range records {
		if ctx.Err() != nil {
			zlog.Logger.Warn().Err(ctx.Err()).Int("remaining", len(records)-res.Processed).Msg("retry sweep interrupted")
			break
		}

		res.Processed++

		switch s.processOne(ctx, rec) {
		case metrics.OutcomeDelivered:
			res.Successful++
		case metrics.OutcomeScheduled:
			res.Scheduled++
		case metrics.OutcomeFailed:
			res.Failed++
		}
	}

	metrics.SweepDuration.Observe(time.Since(start).Seconds())
	metrics.SweepRecords.Observe(float64(res.Processed))

	zlog.Logger.Info().
		Int("processed", res.Processed).
		Int("successful", res.Successful).
		Int("scheduled", res.Scheduled).
		Int("failed", res.Failed).
		Msg("retry sweep finished")

	return res
}

// Statistics returns aggregated retry statistics.
func (s *Scheduler) Statistics(ctx context.Context) (model.RetryStatistics, error) {
	stats, err := s.repo.GetRetryStatistics(ctx)
	if err != nil {
		return model.RetryStatistics{}, fmt.Errorf("get retry statistics: %w", err)
	}

	return stats, nil
}

func (s *Scheduler) processOne(ctx context.Context, rec model.NotificationRecord) (outcome string) {
	defer func() {
		if r := recover(); r != nil {
			zlog.Logger.Error().
				Str("id", rec.ID.String()).
				Interface("panic", r).
				Msg("recovered from panic while retrying notification")
			outcome = metrics.OutcomeError
			metrics.TransitionsTotal.WithLabelValues(outcome).Inc()
		}
	}()

	outcome, err := s.retry(ctx, rec)
	metrics.TransitionsTotal.WithLabelValues(outcome).Inc()

	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", rec.ID.String()).Msg("failed to retry notification")
	}

	return outcome
}

func (s *Scheduler) retry(ctx context.Context, rec model.NotificationRecord) (string, error) {
	if s.policy.Exhausted(rec.RetryCount) {
		return s.fail(ctx, rec, exhaustedMessage)
	}

	return s.deliver(ctx, rec)
}

func (s *Scheduler) deliver(ctx context.Context, rec model.NotificationRecord) (string, error) {
	err := s.send(ctx, rec)
	if err == nil {
		now := s.now()
		if err := s.repo.UpdateNotificationStatus(ctx, rec.ID, model.StatusDelivered, &now, ""); err != nil {
			return metrics.OutcomeError, fmt.Errorf("mark %s delivered: %w", rec.ID, err)
		}

		return metrics.OutcomeDelivered, nil
	}

	if errors.Is(err, delivery.ErrUnsupportedChannel) {
		return s.fail(ctx, rec, err.Error())
	}

	// A policy without retries leaves no budget for another attempt.
	if rec.RetryCount+1 > s.policy.MaxRetries {
		return s.fail(ctx, rec, exhaustedMessage+": "+err.Error())
	}

	next := s.CalculateNextRetryTime(rec.RetryCount)
	if err := s.repo.UpdateNotificationRetry(ctx, rec.ID, rec.RetryCount+1, next, err.Error()); err != nil {
		return metrics.OutcomeError, fmt.Errorf("schedule retry of %s: %w", rec.ID, err)
	}

	zlog.Logger.Warn().
		Err(err).
		Str("id", rec.ID.String()).
		Str("channel", string(rec.Channel)).
		Int("retry_count", rec.RetryCount+1).
		Time("next_retry_at", next).
		Msg("delivery failed, retry scheduled")

	return metrics.OutcomeScheduled, nil
}

// send calls the deliverer and turns a panic into an ordinary delivery error.
func (s *Scheduler) send(ctx context.Context, rec model.NotificationRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delivery panicked: %v", r)
		}
	}()

	_, err = s.deliverer.Deliver(ctx, rec.Channel, rec.Endpoint, rec.Payload())

	return err
}

func (s *Scheduler) fail(ctx context.Context, rec model.NotificationRecord, reason string) (string, error) {
	if err := s.repo.UpdateNotificationStatus(ctx, rec.ID, model.StatusFailed, nil, reason); err != nil {
		return metrics.OutcomeError, fmt.Errorf("mark %s failed: %w", rec.ID, err)
	}

	zlog.Logger.Warn().
		Str("id", rec.ID.String()).
		Str("channel", string(rec.Channel)).
		Int("retry_count", rec.RetryCount).
		Str("reason", reason).
		Msg("notification failed permanently")

	return metrics.OutcomeFailed, nil
}

func statusOf(outcome string) model.Status {
	switch outcome {
	case metrics.OutcomeDelivered:
		return model.StatusDelivered
	case metrics.OutcomeFailed:
		return model.StatusFailed
	}
	return model.StatusPending
}

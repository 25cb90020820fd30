package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/farmkonnect-notifier/internal/backoff"
	"github.com/aliskhannn/farmkonnect-notifier/internal/delivery"
	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
	"github.com/aliskhannn/farmkonnect-notifier/internal/repository/memory"
)

type fakeDeliverer struct {
	calls   int
	results map[string]error // by endpoint, missing means success
	panics  map[string]bool
}

func (f *fakeDeliverer) Deliver(_ context.Context, ch model.Channel, to string, _ model.Payload) (model.DeliveryResult, error) {
	f.calls++
	if f.panics[to] {
		panic("provider bug")
	}
	if err := f.results[to]; err != nil {
		return model.DeliveryResult{Provider: string(ch)}, err
	}
	return model.DeliveryResult{Success: true, Provider: string(ch)}, nil
}

type env struct {
	now   time.Time
	store *memory.Store
	d     *fakeDeliverer
	s     *Scheduler
}

func newEnv() *env {
	e := &env{
		now: time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC),
		d:   &fakeDeliverer{results: map[string]error{}, panics: map[string]bool{}},
	}
	clock := func() time.Time { return e.now }

	e.store = memory.NewStore().WithClock(clock)
	e.s = New(e.store, e.d, backoff.DefaultPolicy(), WithClock(clock), WithJitter(func() float64 { return 0.5 }))

	return e
}

func (e *env) create(t *testing.T, ch model.Channel, endpoint string) model.NotificationRecord {
	t.Helper()

	id, err := e.store.CreateNotification(context.Background(), model.NotificationRecord{
		Category:    "weather_alert",
		Severity:    model.SeverityCritical,
		Channel:     ch,
		RecipientID: "farmer-1",
		Endpoint:    endpoint,
		Subject:     "Frost",
		Body:        "Frost: cover seedlings tonight",
	})
	require.NoError(t, err)

	return e.get(t, id.String())
}

func (e *env) get(t *testing.T, id string) model.NotificationRecord {
	t.Helper()

	for _, rec := range e.all(t) {
		if rec.ID.String() == id {
			return rec
		}
	}
	t.Fatalf("record %s not found", id)
	return model.NotificationRecord{}
}

func (e *env) all(t *testing.T) []model.NotificationRecord {
	t.Helper()

	list, err := e.store.ListByRecipient(context.Background(), "farmer-1", 100, 0, nil)
	require.NoError(t, err)
	return list
}

func TestCalculateNextRetryTime_Bounds(t *testing.T) {
	policy := backoff.DefaultPolicy()
	now := time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)

	for _, rnd := range []float64{0, 0.5, 0.999} {
		s := New(nil, nil, policy, WithClock(func() time.Time { return now }), WithJitter(func() float64 { return rnd }))

		for retry := 0; retry < policy.MaxRetries; retry++ {
			got := s.CalculateNextRetryTime(retry)

			assert.False(t, got.Before(now.Add(policy.Delay(retry))), "retry %d below nominal delay", retry)
			assert.True(t, got.Before(now.Add(time.Duration(float64(policy.MaxDelay)*1.1))), "retry %d above cap", retry)
		}
	}
}

func TestAttempt_FirstFailureSchedulesRetry(t *testing.T) {
	e := newEnv()
	rec := e.create(t, model.ChannelEmail, "farmer@example.com")
	e.d.results["farmer@example.com"] = errors.New("smtp down")

	status, err := e.s.Attempt(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, status)

	got := e.get(t, rec.ID.String())
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Equal(t, 1, got.RetryCount)
	assert.Equal(t, "smtp down", got.ErrorMessage)
	require.NotNil(t, got.NextRetryAt)

	delay := got.NextRetryAt.Sub(e.now)
	assert.GreaterOrEqual(t, delay, 5*time.Minute)
	assert.Less(t, delay, 5*time.Minute+30*time.Second)
}

func TestAttempt_NoRetryBudgetFailsImmediately(t *testing.T) {
	e := newEnv()
	policy := backoff.DefaultPolicy()
	policy.MaxRetries = 0
	clock := func() time.Time { return e.now }
	e.s = New(e.store, e.d, policy, WithClock(clock), WithJitter(func() float64 { return 0.5 }))

	rec := e.create(t, model.ChannelEmail, "farmer@example.com")
	e.d.results["farmer@example.com"] = errors.New("smtp down")

	status, err := e.s.Attempt(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, status)

	got := e.get(t, rec.ID.String())
	assert.Equal(t, model.StatusFailed, got.Status)
	assert.Zero(t, got.RetryCount)
	assert.Nil(t, got.NextRetryAt)
	assert.Contains(t, got.ErrorMessage, "smtp down")
}

func TestAttempt_Success(t *testing.T) {
	e := newEnv()
	rec := e.create(t, model.ChannelPush, "farmer-1")

	status, err := e.s.Attempt(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, status)

	got := e.get(t, rec.ID.String())
	assert.Equal(t, model.StatusDelivered, got.Status)
	require.NotNil(t, got.DeliveredAt)
	assert.Nil(t, got.NextRetryAt)
}

func TestRetryNotification_ExhaustedBecomesFailed(t *testing.T) {
	e := newEnv()
	rec := e.create(t, model.ChannelSMS, "+254700000001")
	require.NoError(t, e.store.UpdateNotificationRetry(context.Background(), rec.ID, 3, e.now, "gateway down"))
	rec = e.get(t, rec.ID.String())

	delivered, err := e.s.RetryNotification(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, delivered)
	assert.Zero(t, e.d.calls, "an exhausted record is not attempted again")

	got := e.get(t, rec.ID.String())
	assert.Equal(t, model.StatusFailed, got.Status)
	assert.Nil(t, got.NextRetryAt)
	assert.Equal(t, 3, got.RetryCount)
}

func TestRetryNotification_DeliveredOnRetry(t *testing.T) {
	e := newEnv()
	rec := e.create(t, model.ChannelEmail, "farmer@example.com")
	require.NoError(t, e.store.UpdateNotificationRetry(context.Background(), rec.ID, 1, e.now, "smtp down"))
	rec = e.get(t, rec.ID.String())

	delivered, err := e.s.RetryNotification(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, delivered)

	got := e.get(t, rec.ID.String())
	assert.Equal(t, model.StatusDelivered, got.Status)
	assert.Nil(t, got.NextRetryAt)
	assert.NotNil(t, got.DeliveredAt)
}

func TestRetryNotification_UnsupportedChannelFailsImmediately(t *testing.T) {
	e := newEnv()
	rec := e.create(t, model.ChannelSMS, "+254700000001")
	e.d.results["+254700000001"] = delivery.ErrUnsupportedChannel

	delivered, err := e.s.RetryNotification(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, delivered)

	got := e.get(t, rec.ID.String())
	assert.Equal(t, model.StatusFailed, got.Status)
	assert.Equal(t, 0, got.RetryCount)
}

func TestRetryNotification_StaleRecord(t *testing.T) {
	e := newEnv()
	rec := e.create(t, model.ChannelPush, "farmer-1")
	require.NoError(t, e.store.UpdateNotificationStatus(context.Background(), rec.ID, model.StatusDelivered, &e.now, ""))

	_, err := e.s.RetryNotification(context.Background(), rec)
	assert.Error(t, err)
}

func TestProcessDue_Empty(t *testing.T) {
	e := newEnv()

	assert.Equal(t, model.SweepResult{}, e.s.ProcessDue(context.Background()))
}

func TestProcessDue_ConsecutiveFailuresBackOff(t *testing.T) {
	e := newEnv()
	rec := e.create(t, model.ChannelEmail, "farmer@example.com")
	e.d.results["farmer@example.com"] = errors.New("smtp down")

	e.now = e.now.Add(2 * time.Minute)
	res := e.s.ProcessDue(context.Background())
	assert.Equal(t, model.SweepResult{Processed: 1, Scheduled: 1}, res)

	first := e.get(t, rec.ID.String())
	require.Equal(t, 1, first.RetryCount)
	firstDelay := first.NextRetryAt.Sub(e.now)

	e.now = *first.NextRetryAt
	res = e.s.ProcessDue(context.Background())
	assert.Equal(t, model.SweepResult{Processed: 1, Scheduled: 1}, res)

	second := e.get(t, rec.ID.String())
	require.Equal(t, 2, second.RetryCount)
	secondDelay := second.NextRetryAt.Sub(e.now)

	assert.Greater(t, secondDelay, firstDelay)
	assert.GreaterOrEqual(t, secondDelay, 10*time.Minute)
	assert.Greater(t, secondDelay, 5*time.Minute+30*time.Second, "second delay exceeds the first jittered delay")
}

func TestProcessDue_NotDueYet(t *testing.T) {
	e := newEnv()
	rec := e.create(t, model.ChannelEmail, "farmer@example.com")
	require.NoError(t, e.store.UpdateNotificationRetry(context.Background(), rec.ID, 1, e.now.Add(time.Hour), "smtp down"))

	e.now = e.now.Add(10 * time.Minute)
	assert.Equal(t, model.SweepResult{}, e.s.ProcessDue(context.Background()))
	assert.Zero(t, e.d.calls)
}

func TestProcessDue_CountsAndIsolation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	ok := e.create(t, model.ChannelPush, "farmer-1")
	flaky := e.create(t, model.ChannelEmail, "farmer@example.com")
	panicky := e.create(t, model.ChannelSMS, "+254700000001")
	exhausted := e.create(t, model.ChannelSMS, "+254700000002")

	require.NoError(t, e.store.UpdateNotificationRetry(ctx, exhausted.ID, 3, e.now, "gateway down"))
	e.d.results["farmer@example.com"] = errors.New("smtp down")
	e.d.panics["+254700000001"] = true

	e.now = e.now.Add(2 * time.Minute)
	res := e.s.ProcessDue(ctx)

	assert.Equal(t, model.SweepResult{Processed: 4, Successful: 1, Scheduled: 2, Failed: 1}, res)
	assert.LessOrEqual(t, res.Successful+res.Scheduled+res.Failed, res.Processed)

	assert.Equal(t, model.StatusDelivered, e.get(t, ok.ID.String()).Status)
	assert.Equal(t, 1, e.get(t, flaky.ID.String()).RetryCount)
	assert.Equal(t, model.StatusFailed, e.get(t, exhausted.ID.String()).Status)

	p := e.get(t, panicky.ID.String())
	assert.Equal(t, model.StatusPending, p.Status)
	assert.Contains(t, p.ErrorMessage, "panicked")
}

func TestProcessDue_StopsOnCancelledContext(t *testing.T) {
	e := newEnv()
	e.create(t, model.ChannelPush, "farmer-1")
	e.now = e.now.Add(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, model.SweepResult{}, e.s.ProcessDue(ctx))
}

func TestStatistics(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	a := e.create(t, model.ChannelEmail, "a@example.com")
	b := e.create(t, model.ChannelEmail, "b@example.com")
	require.NoError(t, e.store.UpdateNotificationRetry(ctx, a.ID, 1, e.now, "x"))
	require.NoError(t, e.store.UpdateNotificationRetry(ctx, b.ID, 1, e.now, "x"))

	a = e.get(t, a.ID.String())
	_, err := e.s.RetryNotification(ctx, a)
	require.NoError(t, err)

	stats, err := e.s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRetried)
	assert.Equal(t, 0, stats.TotalFailed)
	assert.InDelta(t, 50.0, stats.SuccessRate, 0.001)
	assert.InDelta(t, 1.0, stats.AverageRetries, 0.001)
}

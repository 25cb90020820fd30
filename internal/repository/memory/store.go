// Package memory keeps notification records and preferences in process
// memory. It serves the storage.driver=memory setting and tests, and
// enforces the same guarded transitions as the PostgreSQL repositories.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
	"github.com/aliskhannn/farmkonnect-notifier/internal/repository/notification"
	"github.com/aliskhannn/farmkonnect-notifier/internal/repository/preferences"
)

// Store is a mutex-guarded in-memory repository.
type Store struct {
	mu      sync.RWMutex
	records map[uuid.UUID]model.NotificationRecord
	prefs   map[string]model.UserNotificationPreferences
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[uuid.UUID]model.NotificationRecord),
		prefs:   make(map[string]model.UserNotificationPreferences),
		now:     time.Now,
	}
}

// WithClock replaces the clock used for created/updated timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) CreateNotification(_ context.Context, n model.NotificationRecord) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n.ID = uuid.New()
	n.Status = model.StatusPending
	n.NextRetryAt = nil
	n.DeliveredAt = nil
	n.ReadAt = nil
	n.CreatedAt = now
	n.UpdatedAt = now

	s.records[n.ID] = n

	return n.ID, nil
}

func (s *Store) GetByID(_ context.Context, id uuid.UUID) (model.NotificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return model.NotificationRecord{}, notification.ErrNotificationNotFound
	}

	return rec, nil
}

func (s *Store) ListByRecipient(
	_ context.Context, recipientID string, limit, offset int, read *bool,
) ([]model.NotificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]model.NotificationRecord, 0)
	for _, rec := range s.records {
		if rec.RecipientID != recipientID {
			continue
		}
		if read != nil && (rec.ReadAt != nil) != *read {
			continue
		}
		list = append(list, rec)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	if offset >= len(list) {
		return []model.NotificationRecord{}, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}

	return list, nil
}

func (s *Store) MarkAsRead(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return notification.ErrNotificationNotFound
	}

	if rec.ReadAt == nil {
		now := s.now()
		rec.ReadAt = &now
		s.records[id] = rec
	}

	return nil
}

func (s *Store) MarkAllAsRead(_ context.Context, recipientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	now := s.now()
	for id, rec := range s.records {
		if rec.RecipientID == recipientID && rec.ReadAt == nil {
			at := now
			rec.ReadAt = &at
			s.records[id] = rec
			n++
		}
	}

	return n, nil
}

func (s *Store) DeleteNotification(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return notification.ErrNotificationNotFound
	}
	delete(s.records, id)

	return nil
}

// GetFailedNotificationsForRetry mirrors the due-record query of the
// PostgreSQL repository, oldest due time first.
func (s *Store) GetFailedNotificationsForRetry(_ context.Context, now time.Time, limit int) ([]model.NotificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	graceCutoff := now.Add(-notification.UnattemptedGracePeriod)
	due := make([]model.NotificationRecord, 0)

	for _, rec := range s.records {
		if rec.Status != model.StatusPending {
			continue
		}

		switch {
		case rec.NextRetryAt != nil && !rec.NextRetryAt.After(now):
		case rec.NextRetryAt == nil && !rec.CreatedAt.After(graceCutoff):
		default:
			continue
		}

		due = append(due, rec)
	}

	sort.Slice(due, func(i, j int) bool {
		return dueAt(due[i]).Before(dueAt(due[j]))
	})

	if limit > 0 && limit < len(due) {
		due = due[:limit]
	}

	return due, nil
}

func (s *Store) UpdateNotificationRetry(
	_ context.Context, id uuid.UUID, retryCount int, nextRetryAt time.Time, errorMessage string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.Status != model.StatusPending || rec.RetryCount >= retryCount {
		return notification.ErrStaleNotification
	}

	rec.RetryCount = retryCount
	rec.NextRetryAt = &nextRetryAt
	rec.ErrorMessage = errorMessage
	rec.UpdatedAt = s.now()
	s.records[id] = rec

	return nil
}

func (s *Store) UpdateNotificationStatus(
	_ context.Context, id uuid.UUID, status model.Status, deliveredAt *time.Time, errorMessage string,
) error {
	if !status.IsTerminal() {
		return fmt.Errorf("%w: pending -> %s", notification.ErrInvalidTransition, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok || rec.Status != model.StatusPending {
		return notification.ErrStaleNotification
	}

	rec.Status = status
	rec.DeliveredAt = deliveredAt
	rec.ErrorMessage = errorMessage
	rec.NextRetryAt = nil
	rec.UpdatedAt = s.now()
	s.records[id] = rec

	return nil
}

func (s *Store) GetRetryStatistics(_ context.Context) (model.RetryStatistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		stats            model.RetryStatistics
		retriesSum       int
		retriedDelivered int
	)

	for _, rec := range s.records {
		if rec.Status == model.StatusFailed {
			stats.TotalFailed++
		}
		if rec.RetryCount > 0 {
			stats.TotalRetried++
			retriesSum += rec.RetryCount
			if rec.Status == model.StatusDelivered {
				retriedDelivered++
			}
		}
	}

	if stats.TotalRetried > 0 {
		stats.AverageRetries = float64(retriesSum) / float64(stats.TotalRetried)
		stats.SuccessRate = float64(retriedDelivered) / float64(stats.TotalRetried) * 100
	}

	return stats, nil
}

func (s *Store) GetPreferences(_ context.Context, userID string) (model.UserNotificationPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prefs[userID]
	if !ok {
		return model.UserNotificationPreferences{}, preferences.ErrPreferencesNotFound
	}

	return p, nil
}

func (s *Store) UpsertPreferences(_ context.Context, p model.UserNotificationPreferences) (model.UserNotificationPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.UpdatedAt = s.now()
	s.prefs[p.UserID] = p

	return p, nil
}

func dueAt(rec model.NotificationRecord) time.Time {
	if rec.NextRetryAt != nil {
		return *rec.NextRetryAt
	}
	return rec.CreatedAt
}

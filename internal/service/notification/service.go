package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/composer"
	"github.com/aliskhannn/farmkonnect-notifier/internal/metrics"
	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
	"github.com/aliskhannn/farmkonnect-notifier/internal/repository/preferences"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

// ErrInvalidRequest is returned for a request that fails validation.
var ErrInvalidRequest = errors.New("invalid request")

// Paging limits of ListNotifications.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type notificationRepository interface {
	CreateNotification(ctx context.Context, rec model.NotificationRecord) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.NotificationRecord, error)
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int, read *bool) ([]model.NotificationRecord, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID string) (int64, error)
	DeleteNotification(ctx context.Context, id uuid.UUID) error
}

type preferencesRepository interface {
	GetPreferences(ctx context.Context, userID string) (model.UserNotificationPreferences, error)
	UpsertPreferences(ctx context.Context, p model.UserNotificationPreferences) (model.UserNotificationPreferences, error)
}

type retryScheduler interface {
	Attempt(ctx context.Context, rec model.NotificationRecord) (model.Status, error)
	ProcessDue(ctx context.Context) model.SweepResult
	Statistics(ctx context.Context) (model.RetryStatistics, error)
}

type preferencesCache interface {
	GetOrLoad(
		ctx context.Context, strategy retry.Strategy, id string,
		load func(context.Context) (model.UserNotificationPreferences, error),
	) (model.UserNotificationPreferences, error)
	Set(ctx context.Context, strategy retry.Strategy, id string, v model.UserNotificationPreferences)
}

// Service is the caller-facing notification API.
type Service struct {
	repo      notificationRepository
	prefs     preferencesRepository
	scheduler retryScheduler
	cache     preferencesCache
}

// NewService creates a new notification service.
func NewService(
	repo notificationRepository,
	prefs preferencesRepository,
	scheduler retryScheduler,
	cache preferencesCache,
) *Service {
	return &Service{repo: repo, prefs: prefs, scheduler: scheduler, cache: cache}
}

// SendNotification composes req for the recipient's channels, stores one
// record per addressed channel and makes the first delivery attempt of
// each. Channels that could not be addressed are reported as skipped.
//
// A channel whose record cannot be stored is reported with an error and
// the remaining channels still go out. An error is returned only when no
// record was stored at all, so retrying the call cannot duplicate a send.
func (s *Service) SendNotification(
	ctx context.Context, strategy retry.Strategy, req model.NotificationRequest,
) (model.DeliveryResults, error) {
	if err := validateRequest(req); err != nil {
		return model.DeliveryResults{}, err
	}

	prefs, err := s.GetPreferences(ctx, strategy, req.RecipientID)
	if err != nil {
		return model.DeliveryResults{}, err
	}

	comp, err := composer.Compose(req, prefs)
	if err != nil {
		return model.DeliveryResults{}, fmt.Errorf("compose notification: %w", err)
	}

	results := model.DeliveryResults{
		RecipientID: req.RecipientID,
		Channels:    make([]model.ChannelOutcome, 0, len(comp.Envelopes)+len(comp.Skipped)),
	}

	var (
		stored    int
		createErr error
	)

	for _, env := range comp.Envelopes {
		rec := model.NotificationRecord{
			Category:    req.Category,
			Severity:    req.Severity,
			Channel:     env.Channel,
			RecipientID: req.RecipientID,
			Endpoint:    env.Endpoint,
			Subject:     env.Payload.Subject,
			Body:        env.Payload.Body,
			Status:      model.StatusPending,
		}

		id, err := s.repo.CreateNotification(ctx, rec)
		if err != nil {
			zlog.Logger.Error().
				Err(err).
				Str("recipient_id", req.RecipientID).
				Str("channel", string(env.Channel)).
				Msg("failed to store notification")

			if createErr == nil {
				createErr = fmt.Errorf("create %s notification: %w", env.Channel, err)
			}
			results.Channels = append(results.Channels, model.ChannelOutcome{
				Channel: env.Channel,
				Error:   "failed to store notification",
			})
			continue
		}
		stored++
		rec.ID = id

		status, err := s.scheduler.Attempt(ctx, rec)
		if err != nil {
			// The record stays pending and the next sweep picks it up.
			zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("failed to record first delivery attempt")
			status = model.StatusPending
		}

		results.Channels = append(results.Channels, model.ChannelOutcome{
			Channel:  env.Channel,
			RecordID: &id,
			Status:   status,
		})
	}

	if stored == 0 && createErr != nil {
		return results, createErr
	}

	for _, skip := range comp.Skipped {
		metrics.SkippedChannelsTotal.WithLabelValues(string(skip.Channel)).Inc()
		zlog.Logger.Info().
			Str("recipient_id", req.RecipientID).
			Str("channel", string(skip.Channel)).
			Str("reason", skip.Reason).
			Msg("channel skipped")

		results.Channels = append(results.Channels, model.ChannelOutcome{
			Channel: skip.Channel,
			Skipped: true,
			Reason:  skip.Reason,
		})
	}

	return results, nil
}

// ProcessFailedNotifications runs one retry sweep.
func (s *Service) ProcessFailedNotifications(ctx context.Context) model.SweepResult {
	return s.scheduler.ProcessDue(ctx)
}

// GetRetryStatistics returns aggregated retry statistics.
func (s *Service) GetRetryStatistics(ctx context.Context) (model.RetryStatistics, error) {
	return s.scheduler.Statistics(ctx)
}

func (s *Service) GetNotification(ctx context.Context, id uuid.UUID) (model.NotificationRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.NotificationRecord{}, fmt.Errorf("get notification: %w", err)
	}

	return rec, nil
}

// ListNotifications returns a page of the recipient's notifications. A
// non-positive limit selects DefaultPageSize; larger limits are capped at
// MaxPageSize.
func (s *Service) ListNotifications(
	ctx context.Context, recipientID string, limit, offset int, read *bool,
) ([]model.NotificationRecord, error) {
	if strings.TrimSpace(recipientID) == "" {
		return nil, fmt.Errorf("%w: recipient id is required", ErrInvalidRequest)
	}

	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	list, err := s.repo.ListByRecipient(ctx, recipientID, limit, offset, read)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return list, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.MarkAsRead(ctx, id); err != nil {
		return fmt.Errorf("mark notification as read: %w", err)
	}

	return nil
}

func (s *Service) MarkAllAsRead(ctx context.Context, recipientID string) (int64, error) {
	n, err := s.repo.MarkAllAsRead(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications as read: %w", err)
	}

	return n, nil
}

func (s *Service) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteNotification(ctx, id); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}

	return nil
}

// GetPreferences returns the stored preferences of userID, or the
// defaults when the user never saved any.
func (s *Service) GetPreferences(
	ctx context.Context, strategy retry.Strategy, userID string,
) (model.UserNotificationPreferences, error) {
	p, err := s.cache.GetOrLoad(ctx, strategy, userID, func(ctx context.Context) (model.UserNotificationPreferences, error) {
		p, err := s.prefs.GetPreferences(ctx, userID)
		if errors.Is(err, preferences.ErrPreferencesNotFound) {
			return model.DefaultPreferences(userID), nil
		}
		return p, err
	})
	if err != nil {
		return model.UserNotificationPreferences{}, fmt.Errorf("get preferences: %w", err)
	}

	return p, nil
}

// UpdatePreferences stores p and refreshes the cached copy.
func (s *Service) UpdatePreferences(
	ctx context.Context, strategy retry.Strategy, p model.UserNotificationPreferences,
) (model.UserNotificationPreferences, error) {
	p.UserID = strings.TrimSpace(p.UserID)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.PushSubscription = strings.TrimSpace(p.PushSubscription)

	switch {
	case p.UserID == "":
		return model.UserNotificationPreferences{}, fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	case p.EmailEnabled && p.Email == "":
		return model.UserNotificationPreferences{}, fmt.Errorf("%w: email enabled without an email address", ErrInvalidRequest)
	case p.SMSEnabled && p.Phone == "":
		return model.UserNotificationPreferences{}, fmt.Errorf("%w: sms enabled without a phone number", ErrInvalidRequest)
	}

	stored, err := s.prefs.UpsertPreferences(ctx, p)
	if err != nil {
		return model.UserNotificationPreferences{}, fmt.Errorf("update preferences: %w", err)
	}

	s.cache.Set(ctx, strategy, stored.UserID, stored)

	return stored, nil
}

func validateRequest(req model.NotificationRequest) error {
	switch {
	case strings.TrimSpace(req.RecipientID) == "":
		return fmt.Errorf("%w: recipient id is required", ErrInvalidRequest)
	case strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Message) == "":
		return fmt.Errorf("%w: title or message is required", ErrInvalidRequest)
	case !req.Severity.Valid():
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidRequest, req.Severity)
	}

	for _, ch := range req.Channels {
		if !ch.Valid() {
			zlog.Logger.Warn().Str("channel", string(ch)).Msg("ignoring unknown channel in request")
		}
	}

	return nil
}

package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	mocks "github.com/aliskhannn/farmkonnect-notifier/internal/mocks/service/notification"
	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
	"github.com/aliskhannn/farmkonnect-notifier/internal/repository/preferences"
)

type deps struct {
	repo      *mocks.MocknotificationRepository
	prefs     *mocks.MockpreferencesRepository
	scheduler *mocks.MockretryScheduler
	cache     *mocks.MockpreferencesCache
}

var strategy = retry.Strategy{Attempts: 1, Delay: time.Millisecond}

func setupService(t *testing.T) (*Service, deps) {
	ctrl := gomock.NewController(t)
	d := deps{
		repo:      mocks.NewMocknotificationRepository(ctrl),
		prefs:     mocks.NewMockpreferencesRepository(ctrl),
		scheduler: mocks.NewMockretryScheduler(ctrl),
		cache:     mocks.NewMockpreferencesCache(ctrl),
	}

	return NewService(d.repo, d.prefs, d.scheduler, d.cache), d
}

func (d deps) cachedPrefs(p model.UserNotificationPreferences) {
	d.cache.EXPECT().
		GetOrLoad(gomock.Any(), strategy, p.UserID, gomock.Any()).
		Return(p, nil)
}

// expectDelivered accepts any number of records and reports each one delivered.
func (d deps) expectDelivered(created *[]model.NotificationRecord) {
	d.repo.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec model.NotificationRecord) (uuid.UUID, error) {
			*created = append(*created, rec)
			return uuid.New(), nil
		}).
		AnyTimes()
	d.scheduler.EXPECT().
		Attempt(gomock.Any(), gomock.Any()).
		Return(model.StatusDelivered, nil).
		AnyTimes()
}

func TestService_SendNotification_CriticalUsesEnabledChannels(t *testing.T) {
	svc, d := setupService(t)
	d.cachedPrefs(model.UserNotificationPreferences{
		UserID:       "farmer-1",
		Email:        "farmer@example.com",
		Phone:        "+254700000001",
		EmailEnabled: true,
		SMSEnabled:   false,
	})

	var created []model.NotificationRecord
	d.expectDelivered(&created)

	res, err := svc.SendNotification(context.Background(), strategy, model.NotificationRequest{
		RecipientID: "farmer-1",
		Title:       "Frost warning",
		Message:     "Temperatures drop below zero tonight",
		Severity:    model.SeverityCritical,
		Category:    "weather_alert",
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []model.Channel{model.ChannelPush, model.ChannelEmail}, res.Attempted())
	require.Len(t, created, 2)
	for _, rec := range created {
		assert.Equal(t, model.StatusPending, rec.Status)
		assert.Equal(t, "weather_alert", rec.Category)
		if rec.Channel == model.ChannelEmail {
			assert.Equal(t, "farmer@example.com", rec.Endpoint)
			assert.Equal(t, "[CRITICAL] Frost warning", rec.Subject)
		} else {
			assert.Equal(t, "farmer-1", rec.Endpoint)
		}
	}
	for _, c := range res.Channels {
		require.NotNil(t, c.RecordID)
		assert.Equal(t, model.StatusDelivered, c.Status)
	}
}

func TestService_SendNotification_InfoIsPushOnly(t *testing.T) {
	svc, d := setupService(t)
	d.cachedPrefs(model.UserNotificationPreferences{UserID: "farmer-1", Email: "farmer@example.com", EmailEnabled: true})

	var created []model.NotificationRecord
	d.expectDelivered(&created)

	res, err := svc.SendNotification(context.Background(), strategy, model.NotificationRequest{
		RecipientID: "farmer-1",
		Title:       "Market prices",
		Message:     "Maize up 3%",
		Severity:    model.SeverityInfo,
	})
	require.NoError(t, err)

	assert.Equal(t, []model.Channel{model.ChannelPush}, res.Attempted())
	assert.Len(t, created, 1)
}

func TestService_SendNotification_ReportsSkippedChannels(t *testing.T) {
	svc, d := setupService(t)
	d.cachedPrefs(model.DefaultPreferences("farmer-1"))

	var created []model.NotificationRecord
	d.expectDelivered(&created)

	res, err := svc.SendNotification(context.Background(), strategy, model.NotificationRequest{
		RecipientID: "farmer-1",
		Title:       "Vet visit",
		Message:     "Tomorrow 9am",
		Severity:    model.SeverityWarning,
		Channels:    []model.Channel{model.ChannelSMS, model.ChannelPush},
	})
	require.NoError(t, err)

	assert.Equal(t, []model.Channel{model.ChannelPush}, res.Attempted())
	require.Len(t, res.Channels, 2)
	assert.True(t, res.Channels[1].Skipped)
	assert.Equal(t, model.ChannelSMS, res.Channels[1].Channel)
	assert.NotEmpty(t, res.Channels[1].Reason)
	assert.Nil(t, res.Channels[1].RecordID)
}

func TestService_SendNotification_AttemptErrorLeavesPending(t *testing.T) {
	svc, d := setupService(t)
	d.cachedPrefs(model.DefaultPreferences("farmer-1"))

	id := uuid.New()
	d.repo.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(id, nil)
	d.scheduler.EXPECT().
		Attempt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec model.NotificationRecord) (model.Status, error) {
			assert.Equal(t, id, rec.ID)
			return model.StatusDelivered, errors.New("db down")
		})

	res, err := svc.SendNotification(context.Background(), strategy, model.NotificationRequest{
		RecipientID: "farmer-1", Title: "Rain", Severity: model.SeverityInfo,
	})
	require.NoError(t, err)
	require.Len(t, res.Channels, 1)
	assert.Equal(t, model.StatusPending, res.Channels[0].Status)
}

func TestService_SendNotification_CreateError(t *testing.T) {
	svc, d := setupService(t)
	d.cachedPrefs(model.DefaultPreferences("farmer-1"))
	d.repo.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("db down"))

	_, err := svc.SendNotification(context.Background(), strategy, model.NotificationRequest{
		RecipientID: "farmer-1", Title: "Rain", Severity: model.SeverityInfo,
	})
	assert.Error(t, err)
}

func TestService_SendNotification_CreateErrorOnOneChannelKeepsOthers(t *testing.T) {
	svc, d := setupService(t)
	d.cachedPrefs(model.UserNotificationPreferences{
		UserID:       "farmer-1",
		Email:        "farmer@example.com",
		EmailEnabled: true,
	})

	pushID := uuid.New()
	d.repo.EXPECT().
		CreateNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec model.NotificationRecord) (uuid.UUID, error) {
			if rec.Channel == model.ChannelEmail {
				return uuid.Nil, errors.New("db down")
			}
			return pushID, nil
		}).
		Times(2)
	d.scheduler.EXPECT().Attempt(gomock.Any(), gomock.Any()).Return(model.StatusDelivered, nil)

	res, err := svc.SendNotification(context.Background(), strategy, model.NotificationRequest{
		RecipientID: "farmer-1", Title: "Frost", Severity: model.SeverityCritical,
	})
	require.NoError(t, err)

	assert.Equal(t, []model.Channel{model.ChannelPush}, res.Attempted())
	require.Len(t, res.Channels, 2)
	for _, c := range res.Channels {
		switch c.Channel {
		case model.ChannelPush:
			assert.Equal(t, &pushID, c.RecordID)
			assert.Equal(t, model.StatusDelivered, c.Status)
		case model.ChannelEmail:
			assert.Nil(t, c.RecordID)
			assert.NotEmpty(t, c.Error)
		}
	}
}

func TestService_SendNotification_InvalidRequest(t *testing.T) {
	svc, _ := setupService(t)

	cases := []model.NotificationRequest{
		{Title: "x", Severity: model.SeverityInfo},
		{RecipientID: "farmer-1", Severity: model.SeverityInfo},
		{RecipientID: "farmer-1", Title: "x", Severity: "urgent"},
	}

	for _, req := range cases {
		_, err := svc.SendNotification(context.Background(), strategy, req)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	}
}

func TestService_GetPreferences_DefaultsWhenMissing(t *testing.T) {
	svc, d := setupService(t)

	d.cache.EXPECT().
		GetOrLoad(gomock.Any(), strategy, "farmer-9", gomock.Any()).
		DoAndReturn(func(
			ctx context.Context, _ retry.Strategy, _ string,
			load func(context.Context) (model.UserNotificationPreferences, error),
		) (model.UserNotificationPreferences, error) {
			return load(ctx)
		})
	d.prefs.EXPECT().
		GetPreferences(gomock.Any(), "farmer-9").
		Return(model.UserNotificationPreferences{}, preferences.ErrPreferencesNotFound)

	p, err := svc.GetPreferences(context.Background(), strategy, "farmer-9")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPreferences("farmer-9"), p)
}

func TestService_GetPreferences_LoadError(t *testing.T) {
	svc, d := setupService(t)

	d.cache.EXPECT().
		GetOrLoad(gomock.Any(), strategy, "farmer-9", gomock.Any()).
		Return(model.UserNotificationPreferences{}, errors.New("db down"))

	_, err := svc.GetPreferences(context.Background(), strategy, "farmer-9")
	assert.Error(t, err)
}

func TestService_UpdatePreferences(t *testing.T) {
	svc, d := setupService(t)

	in := model.UserNotificationPreferences{UserID: "farmer-1", Phone: " +254700000001 ", SMSEnabled: true}
	stored := in
	stored.Phone = "+254700000001"
	stored.UpdatedAt = time.Now()

	d.prefs.EXPECT().
		UpsertPreferences(gomock.Any(), model.UserNotificationPreferences{UserID: "farmer-1", Phone: "+254700000001", SMSEnabled: true}).
		Return(stored, nil)
	d.cache.EXPECT().Set(gomock.Any(), strategy, "farmer-1", stored)

	got, err := svc.UpdatePreferences(context.Background(), strategy, in)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestService_UpdatePreferences_RejectsEnabledChannelWithoutEndpoint(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.UpdatePreferences(context.Background(), strategy, model.UserNotificationPreferences{
		UserID: "farmer-1", EmailEnabled: true,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.UpdatePreferences(context.Background(), strategy, model.UserNotificationPreferences{
		UserID: "farmer-1", SMSEnabled: true,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.UpdatePreferences(context.Background(), strategy, model.UserNotificationPreferences{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_ListNotifications_ClampsPaging(t *testing.T) {
	svc, d := setupService(t)

	d.repo.EXPECT().ListByRecipient(gomock.Any(), "farmer-1", DefaultPageSize, 0, nil).Return(nil, nil)
	d.repo.EXPECT().ListByRecipient(gomock.Any(), "farmer-1", MaxPageSize, 0, nil).Return(nil, nil)

	_, err := svc.ListNotifications(context.Background(), "farmer-1", 0, -5, nil)
	require.NoError(t, err)
	_, err = svc.ListNotifications(context.Background(), "farmer-1", 5000, 0, nil)
	require.NoError(t, err)

	_, err = svc.ListNotifications(context.Background(), " ", 10, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_RetryOperationsDelegateToScheduler(t *testing.T) {
	svc, d := setupService(t)

	d.scheduler.EXPECT().ProcessDue(gomock.Any()).Return(model.SweepResult{Processed: 2, Successful: 1, Scheduled: 1})
	d.scheduler.EXPECT().Statistics(gomock.Any()).Return(model.RetryStatistics{TotalRetried: 4, SuccessRate: 25}, nil)

	assert.Equal(t, model.SweepResult{Processed: 2, Successful: 1, Scheduled: 1}, svc.ProcessFailedNotifications(context.Background()))

	stats, err := svc.GetRetryStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalRetried)
}

func TestService_InboxOperationsWrapErrors(t *testing.T) {
	svc, d := setupService(t)
	id := uuid.New()
	boom := errors.New("db down")

	d.repo.EXPECT().GetByID(gomock.Any(), id).Return(model.NotificationRecord{}, boom)
	d.repo.EXPECT().MarkAsRead(gomock.Any(), id).Return(boom)
	d.repo.EXPECT().MarkAllAsRead(gomock.Any(), "farmer-1").Return(int64(0), boom)
	d.repo.EXPECT().DeleteNotification(gomock.Any(), id).Return(boom)

	_, err := svc.GetNotification(context.Background(), id)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.MarkAsRead(context.Background(), id), boom)
	_, err = svc.MarkAllAsRead(context.Background(), "farmer-1")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.DeleteNotification(context.Background(), id), boom)
}

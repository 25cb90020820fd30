package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/config"
	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
	"github.com/aliskhannn/farmkonnect-notifier/internal/repository/memory"
	notifrepo "github.com/aliskhannn/farmkonnect-notifier/internal/repository/notification"
	prefsrepo "github.com/aliskhannn/farmkonnect-notifier/internal/repository/preferences"
)

// recordStore is satisfied by both the Postgres repository and the
// in-memory store.
type recordStore interface {
	CreateNotification(ctx context.Context, rec model.NotificationRecord) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.NotificationRecord, error)
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int, read *bool) ([]model.NotificationRecord, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID string) (int64, error)
	DeleteNotification(ctx context.Context, id uuid.UUID) error
	GetFailedNotificationsForRetry(ctx context.Context, now time.Time, limit int) ([]model.NotificationRecord, error)
	UpdateNotificationRetry(ctx context.Context, id uuid.UUID, retryCount int, nextRetryAt time.Time, errorMessage string) error
	UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status model.Status, deliveredAt *time.Time, errorMessage string) error
	GetRetryStatistics(ctx context.Context) (model.RetryStatistics, error)
}

type preferencesStore interface {
	GetPreferences(ctx context.Context, userID string) (model.UserNotificationPreferences, error)
	UpsertPreferences(ctx context.Context, p model.UserNotificationPreferences) (model.UserNotificationPreferences, error)
}

type storage struct {
	records     recordStore
	preferences preferencesStore
	db          *dbpg.DB
}

func openStorage(cfg *config.Config) (storage, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		zlog.Logger.Warn().Msg("using in-memory storage, records are lost on restart")
		store := memory.NewStore()
		return storage{records: store, preferences: store}, nil
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		return storage{}, err
	}

	return storage{
		records:     notifrepo.NewRepository(db),
		preferences: prefsrepo.NewRepository(db),
		db:          db,
	}, nil
}

func (s storage) Close() {
	if s.db == nil {
		return
	}

	if err := s.db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, slave := range s.db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}
}

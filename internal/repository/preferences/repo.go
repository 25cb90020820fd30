package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

var ErrPreferencesNotFound = errors.New("notification preferences not found")

// Repository stores per-user notification preferences.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new preferences repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// GetPreferences returns the preferences of userID.
func (r *Repository) GetPreferences(ctx context.Context, userID string) (model.UserNotificationPreferences, error) {
	query := `
		SELECT user_id, email, phone, push_subscription, email_enabled, sms_enabled, updated_at
		FROM user_notification_preferences
		WHERE user_id = $1;
    `

	var p model.UserNotificationPreferences
	err := r.db.Master.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.Email, &p.Phone, &p.PushSubscription, &p.EmailEnabled, &p.SMSEnabled, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserNotificationPreferences{}, ErrPreferencesNotFound
		}

		return model.UserNotificationPreferences{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	return p, nil
}

// UpsertPreferences creates or replaces the preferences of p.UserID and
// returns the stored row.
func (r *Repository) UpsertPreferences(ctx context.Context, p model.UserNotificationPreferences) (model.UserNotificationPreferences, error) {
	query := `
		INSERT INTO user_notification_preferences (
		    user_id, email, phone, push_subscription, email_enabled, sms_enabled
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
		    email = EXCLUDED.email,
		    phone = EXCLUDED.phone,
		    push_subscription = EXCLUDED.push_subscription,
		    email_enabled = EXCLUDED.email_enabled,
		    sms_enabled = EXCLUDED.sms_enabled,
		    updated_at = NOW()
		RETURNING updated_at;
    `

	err := r.db.Master.QueryRowContext(
		ctx, query, p.UserID, p.Email, p.Phone, p.PushSubscription, p.EmailEnabled, p.SMSEnabled,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return model.UserNotificationPreferences{}, fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return p, nil
}

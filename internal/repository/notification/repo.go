package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrStaleNotification means a guarded update lost: the record is no
	// longer pending or another worker already advanced its retry count.
	ErrStaleNotification = errors.New("notification is not pending or was modified concurrently")
	ErrInvalidTransition  = errors.New("invalid notification status transition")
)

// UnattemptedGracePeriod is how long a record may stay unattempted before a
// sweep picks it up. It keeps a sweep away from records whose first
// attempt is still in flight.
const UnattemptedGracePeriod = time.Minute

const recordColumns = `id, category, severity, channel, recipient_id, endpoint, subject, body, status,
		    retry_count, next_retry_at, delivered_at, error_message, read_at, created_at, updated_at`

// Repository provides methods to interact with the notification_records table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (model.NotificationRecord, error) {
	var r model.NotificationRecord
	err := row.Scan(
		&r.ID, &r.Category, &r.Severity, &r.Channel, &r.RecipientID, &r.Endpoint, &r.Subject, &r.Body, &r.Status,
		&r.RetryCount, &r.NextRetryAt, &r.DeliveredAt, &r.ErrorMessage, &r.ReadAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// CreateNotification inserts a new pending record and returns its ID.
func (r *Repository) CreateNotification(ctx context.Context, n model.NotificationRecord) (uuid.UUID, error) {
	query := `
		INSERT INTO notification_records (
		    category, severity, channel, recipient_id, endpoint, subject, body, status, retry_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
    `

	err := r.db.Master.QueryRowContext(
		ctx, query, n.Category, n.Severity, n.Channel, n.RecipientID, n.Endpoint, n.Subject, n.Body,
		model.StatusPending, n.RetryCount,
	).Scan(&n.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return n.ID, nil
}

// GetByID retrieves a record by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (model.NotificationRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM notification_records
		WHERE id = $1;
    `

	rec, err := scanRecord(r.db.Master.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.NotificationRecord{}, ErrNotificationNotFound
		}

		return model.NotificationRecord{}, fmt.Errorf("failed to get notification: %w", err)
	}

	return rec, nil
}

// ListByRecipient returns a page of a recipient's records, newest first.
// A non-nil read filters on the read flag.
func (r *Repository) ListByRecipient(
	ctx context.Context, recipientID string, limit, offset int, read *bool,
) ([]model.NotificationRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM notification_records
		WHERE recipient_id = $1
		  AND ($2::boolean IS NULL OR (read_at IS NOT NULL) = $2::boolean)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4;
    `

	rows, err := r.db.QueryContext(ctx, query, recipientID, read, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

// MarkAsRead sets the read timestamp of a record if it is not set yet.
func (r *Repository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notification_records
		SET read_at = COALESCE(read_at, NOW())
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAllAsRead marks every unread record of a recipient as read and
// returns how many were changed.
func (r *Repository) MarkAllAsRead(ctx context.Context, recipientID string) (int64, error) {
	query := `
		UPDATE notification_records
		SET read_at = NOW()
		WHERE recipient_id = $1 AND read_at IS NULL;
    `

	res, err := r.db.ExecContext(ctx, query, recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows, nil
}

// DeleteNotification removes a record.
func (r *Repository) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM notification_records
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// GetFailedNotificationsForRetry returns pending records that are due:
// their retry time has passed, or they were never attempted and are older
// than UnattemptedGracePeriod. It reads from the master, a lagging replica
// could return records that were already delivered.
func (r *Repository) GetFailedNotificationsForRetry(ctx context.Context, now time.Time, limit int) ([]model.NotificationRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM notification_records
		WHERE status = 'pending'
		  AND (next_retry_at <= $1 OR (next_retry_at IS NULL AND created_at <= $2))
		ORDER BY COALESCE(next_retry_at, created_at)
		LIMIT $3;
    `

	rows, err := r.db.Master.QueryContext(ctx, query, now, now.Add(-UnattemptedGracePeriod), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications for retry: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

// UpdateNotificationRetry records a failed attempt. The update only
// applies while the record is pending and retryCount is greater than the
// stored count, otherwise ErrStaleNotification is returned.
func (r *Repository) UpdateNotificationRetry(
	ctx context.Context, id uuid.UUID, retryCount int, nextRetryAt time.Time, errorMessage string,
) error {
	query := `
		UPDATE notification_records
		SET retry_count = $2, next_retry_at = $3, error_message = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending' AND retry_count < $2;
    `

	res, err := r.db.ExecContext(ctx, query, id, retryCount, nextRetryAt, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to update notification retry: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrStaleNotification
	}

	return nil
}

// UpdateNotificationStatus moves a pending record to a terminal status.
func (r *Repository) UpdateNotificationStatus(
	ctx context.Context, id uuid.UUID, status model.Status, deliveredAt *time.Time, errorMessage string,
) error {
	if !status.IsTerminal() {
		return fmt.Errorf("%w: pending -> %s", ErrInvalidTransition, status)
	}

	query := `
		UPDATE notification_records
		SET status = $2, delivered_at = $3, error_message = $4, next_retry_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'pending';
    `

	res, err := r.db.ExecContext(ctx, query, id, status, deliveredAt, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrStaleNotification
	}

	return nil
}

// GetRetryStatistics aggregates retry outcomes over all records.
func (r *Repository) GetRetryStatistics(ctx context.Context) (model.RetryStatistics, error) {
	query := `
		SELECT
		    COUNT(*) FILTER (WHERE status = 'failed'),
		    COUNT(*) FILTER (WHERE retry_count > 0),
		    COALESCE(AVG(retry_count) FILTER (WHERE retry_count > 0), 0),
		    COUNT(*) FILTER (WHERE retry_count > 0 AND status = 'delivered')
		FROM notification_records;
    `

	var (
		stats            model.RetryStatistics
		retriedDelivered int
	)

	err := r.db.Master.QueryRowContext(ctx, query).Scan(
		&stats.TotalFailed, &stats.TotalRetried, &stats.AverageRetries, &retriedDelivered,
	)
	if err != nil {
		return model.RetryStatistics{}, fmt.Errorf("failed to get retry statistics: %w", err)
	}

	if stats.TotalRetried > 0 {
		stats.SuccessRate = float64(retriedDelivered) / float64(stats.TotalRetried) * 100
	}

	return stats, nil
}

func collect(rows *sql.Rows) ([]model.NotificationRecord, error) {
	records := make([]model.NotificationRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/api/dto"
	"github.com/aliskhannn/farmkonnect-notifier/internal/api/respond"
	"github.com/aliskhannn/farmkonnect-notifier/internal/config"
	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
	"github.com/aliskhannn/farmkonnect-notifier/internal/repository/notification"
	service "github.com/aliskhannn/farmkonnect-notifier/internal/service/notification"
)

// notificationService defines the interface that the Handler depends on.
//
// It covers sending, the recipient inbox and the retry operations.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type notificationService interface {
	SendNotification(ctx context.Context, strategy retry.Strategy, req model.NotificationRequest) (model.DeliveryResults, error)
	GetNotification(ctx context.Context, id uuid.UUID) (model.NotificationRecord, error)
	ListNotifications(ctx context.Context, recipientID string, limit, offset int, read *bool) ([]model.NotificationRecord, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID string) (int64, error)
	DeleteNotification(ctx context.Context, id uuid.UUID) error
	ProcessFailedNotifications(ctx context.Context) model.SweepResult
	GetRetryStatistics(ctx context.Context) (model.RetryStatistics, error)
}

// Handler handles HTTP requests related to notifications.
type Handler struct {
	service   notificationService
	validator *validator.Validate
	cfg       *config.Config
}

// NewHandler creates a new Handler instance.
func NewHandler(
	s notificationService,
	v *validator.Validate,
	cfg *config.Config,
) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// Send handles POST /api/notifications.
//
// It composes and delivers the notification on the recipient's channels
// and returns the outcome of every channel.
func (h *Handler) Send(c *ginext.Context) {
	var req dto.SendRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	results, err := h.service.SendNotification(c.Request.Context(), h.cfg.Retry, req.ToModel())
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("recipient_id", req.RecipientID).Msg("failed to send notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, results)
}

// Get handles GET /api/notifications/:id.
func (h *Handler) Get(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rec, err := h.service.GetNotification(c.Request.Context(), id)
	if err != nil {
		failLookup(c, id, err, "failed to get notification")
		return
	}

	respond.OK(c.Writer, rec)
}

// MarkRead handles POST /api/notifications/:id/read.
func (h *Handler) MarkRead(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), id); err != nil {
		failLookup(c, id, err, "failed to mark notification as read")
		return
	}

	respond.OK(c.Writer, "notification marked as read")
}

// Delete handles DELETE /api/notifications/:id.
func (h *Handler) Delete(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteNotification(c.Request.Context(), id); err != nil {
		failLookup(c, id, err, "failed to delete notification")
		return
	}

	respond.OK(c.Writer, "notification deleted")
}

// ListByUser handles GET /api/users/:user_id/notifications.
//
// Query parameters: limit, offset and read (true or false).
func (h *Handler) ListByUser(c *ginext.Context) {
	userID := c.Param("user_id")

	limit, err := queryInt(c, "limit")
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid limit"))
		return
	}

	offset, err := queryInt(c, "offset")
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid offset"))
		return
	}

	var read *bool
	if raw := c.Query("read"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid read filter"))
			return
		}
		read = &v
	}

	list, err := h.service.ListNotifications(c.Request.Context(), userID, limit, offset, read)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to list notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, list)
}

// MarkAllRead handles POST /api/users/:user_id/notifications/read.
func (h *Handler) MarkAllRead(c *ginext.Context) {
	userID := c.Param("user_id")

	n, err := h.service.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to mark notifications as read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]int64{"updated": n})
}

// ProcessRetries handles POST /api/retry/process by running one sweep.
func (h *Handler) ProcessRetries(c *ginext.Context) {
	respond.OK(c.Writer, h.service.ProcessFailedNotifications(c.Request.Context()))
}

// RetryStats handles GET /api/retry/stats.
func (h *Handler) RetryStats(c *ginext.Context) {
	stats, err := h.service.GetRetryStatistics(c.Request.Context())
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to get retry statistics")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, stats)
}

func parseID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Error().Err(err).Interface("idStr", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return uuid.Nil, false
	}

	return id, true
}

func failLookup(c *ginext.Context, id uuid.UUID, err error, msg string) {
	if errors.Is(err, notification.ErrNotificationNotFound) {
		zlog.Logger.Warn().Interface("id", id).Err(err).Msg("notification not found")
		respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
		return
	}

	zlog.Logger.Error().Err(err).Interface("id", id).Msg(msg)
	respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
}

func queryInt(c *ginext.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}

	return strconv.Atoi(raw)
}

package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/api/dto"
	"github.com/aliskhannn/farmkonnect-notifier/internal/api/respond"
	"github.com/aliskhannn/farmkonnect-notifier/internal/config"
	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
	service "github.com/aliskhannn/farmkonnect-notifier/internal/service/notification"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/preferences/mock.go -package=mocks
type preferencesService interface {
	GetPreferences(ctx context.Context, strategy retry.Strategy, userID string) (model.UserNotificationPreferences, error)
	UpdatePreferences(ctx context.Context, strategy retry.Strategy, p model.UserNotificationPreferences) (model.UserNotificationPreferences, error)
}

// Handler serves a user's notification preferences.
type Handler struct {
	service   preferencesService
	validator *validator.Validate
	cfg       *config.Config
}

func NewHandler(s preferencesService, v *validator.Validate, cfg *config.Config) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// Get handles GET /api/users/:user_id/preferences.
func (h *Handler) Get(c *ginext.Context) {
	userID := c.Param("user_id")

	p, err := h.service.GetPreferences(c.Request.Context(), h.cfg.Retry, userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to get preferences")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, p)
}

// Update handles PUT /api/users/:user_id/preferences. The body replaces
// the stored preferences.
func (h *Handler) Update(c *ginext.Context) {
	userID := c.Param("user_id")

	var req dto.PreferencesRequest
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

	p, err := h.service.UpdatePreferences(c.Request.Context(), h.cfg.Retry, req.ToModel(userID))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Str("user_id", userID).Msg("failed to update preferences")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, p)
}

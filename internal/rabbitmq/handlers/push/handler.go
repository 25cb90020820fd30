package push

import (
	"context"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/model"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/push/mock.go -package=mocks
type pushDeliverer interface {
	Deliver(ctx context.Context, msg model.PushMessage) error
}

// Handler hands consumed push messages to the websocket hub.
type Handler struct {
	hub pushDeliverer
}

func NewHandler(hub pushDeliverer) *Handler {
	return &Handler{hub: hub}
}

// HandleMessage delivers msg, retrying with strategy. A message that still
// cannot be delivered is dropped; the record remains in the user's inbox.
func (h *Handler) HandleMessage(ctx context.Context, msg model.PushMessage, strategy retry.Strategy) {
	err := retry.Do(func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return h.hub.Deliver(ctx, msg)
		}
	}, strategy)

	if err != nil {
		zlog.Logger.Warn().
			Err(err).
			Str("id", msg.ID.String()).
			Str("user_id", msg.UserID).
			Msg("push message dropped")
		return
	}

	zlog.Logger.Info().Str("id", msg.ID.String()).Str("user_id", msg.UserID).Msg("push message delivered")
}

package push

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/farmkonnect-notifier/internal/api/respond"
)

type connectionServer interface {
	Serve(ctx context.Context, userID string, conn *websocket.Conn)
}

// Handler upgrades push subscriptions to websocket connections.
type Handler struct {
	hub      connectionServer
	upgrader websocket.Upgrader
}

func NewHandler(hub connectionServer) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Connect handles GET /ws/push/:user_id and serves the connection until
// the client goes away.
func (h *Handler) Connect(c *ginext.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing user id"))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("user_id", userID).Msg("failed to upgrade push connection")
		return
	}

	h.hub.Serve(c.Request.Context(), userID, conn)
}

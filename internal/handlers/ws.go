package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mpetersen/taskhive/internal/gateway"
	"github.com/mpetersen/taskhive/internal/logging"
	"github.com/mpetersen/taskhive/internal/services"
)

// WebSocketHandler upgrades authenticated requests and binds a gateway to
// the connection for its lifetime.
type WebSocketHandler struct {
	friends  services.FriendshipStoreInterface
	shares   services.TaskAssignmentStoreInterface
	logger   *logging.Logger
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(friends services.FriendshipStoreInterface, shares services.TaskAssignmentStoreInterface, logger *logging.Logger) *WebSocketHandler {
	if logger == nil {
		logger = logging.Default
	}
	return &WebSocketHandler{
		friends: friends,
		shares:  shares,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Connect serves GET /ws. Authentication happens before the upgrade; an
// anonymous caller gets a plain 401, never a half-open socket.
func (h *WebSocketHandler) Connect(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithField("error", err.Error()).Warn("websocket upgrade failed")
		return
	}

	client := gateway.NewClient(conn, h.logger)
	gw := gateway.New(user.ID, h.friends, h.shares, client, h.logger)

	h.logger.WithField("user_id", user.ID.String()).Info("websocket connected")

	go client.WritePump()
	client.ReadPump(r.Context(), gw.HandleEvent)

	h.logger.WithField("user_id", user.ID.String()).Info("websocket disconnected")
}

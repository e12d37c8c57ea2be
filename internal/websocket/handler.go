package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	appredis "quickchat/internal/redis"
	"quickchat/internal/services"
	"quickchat/internal/transport/httpdto"
	"quickchat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// pongWait is how long a connection may stay silent before it is
	// considered dead. Pings go out well inside that window.
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

// Handler upgrades authenticated clients and keeps the connection
// registry and presence set in sync for the connection's lifetime.
type Handler struct {
	auth     *services.AuthService
	hub      *Hub
	presence *appredis.PresenceStore
	log      *logger.Logger
}

func NewHandler(auth *services.AuthService, hub *Hub, presence *appredis.PresenceStore, log *logger.Logger) *Handler {
	return &Handler{auth: auth, hub: hub, presence: presence, log: log}
}

func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	u, err := h.auth.ResolveToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	userID := u.ID.String()
	client := NewClient(conn, userID)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	go client.WriteLoop(ctx)

	if h.presence != nil {
		if err := h.presence.SetOnline(c.Request.Context(), userID); err != nil && h.log != nil {
			h.log.Warnf("presence set online: %s", err)
		}
	}
	h.broadcastOnlineUsers(c.Request.Context())

	configureKeepalive(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	}

	h.hub.Unregister(client)

	// Only the user's last connection flips them offline.
	if h.presence != nil && h.hub.UserConnectionCount(userID) == 0 {
		if err := h.presence.SetOffline(context.Background(), userID); err != nil && h.log != nil {
			h.log.Warnf("presence set offline: %s", err)
		}
	}
	h.broadcastOnlineUsers(context.Background())
}

// configureKeepalive arms the read deadline and renews it on every
// pong, so an idle client that answers pings is never dropped.
func configureKeepalive(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
}

func (h *Handler) broadcastOnlineUsers(ctx context.Context) {
	var online []string
	if h.presence != nil {
		ids, err := h.presence.OnlineUsers(ctx)
		if err == nil {
			online = ids
		}
	}
	if online == nil {
		online = h.hub.OnlineUserIDs()
	}

	payload, err := json.Marshal(Envelope{Event: "getOnlineUsers", Data: online})
	if err != nil {
		return
	}
	h.hub.BroadcastAll(payload)
}

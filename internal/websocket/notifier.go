package websocket

import (
	"encoding/json"

	"quickchat/internal/domain/message"
	"quickchat/internal/transport/httpdto"

	"github.com/google/uuid"
)

// Envelope is the frame sent over the WebSocket: an event name plus a
// JSON payload.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// HubNotifier adapts the hub to the services.Notifier interface,
// translating domain values to their wire DTOs at the transport edge.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyUser(userID uuid.UUID, event string, data any) {
	if m, ok := data.(message.Message); ok {
		data = httpdto.FromMessage(m)
	}
	payload, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return
	}
	n.hub.BroadcastToUser(userID.String(), payload)
}

package websocket

import "sync"

// Hub is the process-wide connection registry: clients keyed by user
// ID, mutated only on connect and disconnect. Registration is
// synchronous so callers can observe the registry state they just
// changed (the presence handoff depends on it).
type Hub struct {
	mu sync.RWMutex

	// clients maps client ID to client
	clients map[string]*Client

	// byUser maps user ID to that user's live clients
	byUser map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		byUser:  make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	set, ok := h.byUser[client.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.byUser[client.UserID] = set
	}
	set[client] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)

	if set, ok := h.byUser[client.UserID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.byUser, client.UserID)
		}
	}
	close(client.Send)
}

// BroadcastToUser delivers a payload to every connection of one user.
func (h *Hub) BroadcastToUser(userID string, payload []byte) {
	h.mu.RLock()
	for c := range h.byUser[userID] {
		c.SendMessage(payload)
	}
	h.mu.RUnlock()
}

// BroadcastAll delivers a payload to every connected client.
func (h *Hub) BroadcastAll(payload []byte) {
	h.mu.RLock()
	for _, c := range h.clients {
		c.SendMessage(payload)
	}
	h.mu.RUnlock()
}

// UserConnectionCount returns the number of live connections one user
// holds.
func (h *Hub) UserConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}

// OnlineUserIDs returns the IDs of users with at least one connection.
func (h *Hub) OnlineUserIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.byUser))
	for id := range h.byUser {
		ids = append(ids, id)
	}
	return ids
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

package websocket

import (
	"encoding/json"
	"testing"

	"quickchat/internal/domain/message"
	"quickchat/internal/transport/httpdto"

	"github.com/google/uuid"
)

func drain(t *testing.T, c *Client) [][]byte {
	t.Helper()
	var out [][]byte
	for {
		select {
		case msg := <-c.Send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	userID := uuid.New().String()

	first := NewClient(nil, userID)
	second := NewClient(nil, userID)

	hub.Register(first)
	hub.Register(second)

	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("expected 2 clients, got %d", got)
	}
	if got := hub.UserConnectionCount(userID); got != 2 {
		t.Fatalf("expected 2 connections for user, got %d", got)
	}

	hub.Unregister(first)
	if got := hub.UserConnectionCount(userID); got != 1 {
		t.Fatalf("expected 1 connection after unregister, got %d", got)
	}
	if _, ok := <-first.Send; ok {
		t.Fatal("unregister must close the client's send channel")
	}

	// Unregistering twice is a no-op.
	hub.Unregister(first)

	hub.Unregister(second)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected empty hub, got %d clients", got)
	}
	if got := len(hub.OnlineUserIDs()); got != 0 {
		t.Fatalf("expected no online users, got %d", got)
	}
}

func TestHub_BroadcastToUserTargetsAllConnections(t *testing.T) {
	hub := NewHub()
	alice := uuid.New().String()
	bob := uuid.New().String()

	aliceTab1 := NewClient(nil, alice)
	aliceTab2 := NewClient(nil, alice)
	bobTab := NewClient(nil, bob)
	for _, c := range []*Client{aliceTab1, aliceTab2, bobTab} {
		hub.Register(c)
	}

	hub.BroadcastToUser(alice, []byte("ping"))

	for _, c := range []*Client{aliceTab1, aliceTab2} {
		msgs := drain(t, c)
		if len(msgs) != 1 || string(msgs[0]) != "ping" {
			t.Fatalf("alice connection expected one payload, got %v", msgs)
		}
	}
	if msgs := drain(t, bobTab); len(msgs) != 0 {
		t.Fatalf("bob must receive nothing, got %v", msgs)
	}
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()
	a := NewClient(nil, uuid.New().String())
	b := NewClient(nil, uuid.New().String())
	hub.Register(a)
	hub.Register(b)

	hub.BroadcastAll([]byte("everyone"))

	for _, c := range []*Client{a, b} {
		msgs := drain(t, c)
		if len(msgs) != 1 || string(msgs[0]) != "everyone" {
			t.Fatalf("expected broadcast payload, got %v", msgs)
		}
	}
}

func TestHub_OnlineUserIDs(t *testing.T) {
	hub := NewHub()
	alice := uuid.New().String()

	tab1 := NewClient(nil, alice)
	tab2 := NewClient(nil, alice)
	hub.Register(tab1)
	hub.Register(tab2)

	ids := hub.OnlineUserIDs()
	if len(ids) != 1 || ids[0] != alice {
		t.Fatalf("a multi-tab user appears once, got %v", ids)
	}

	// Still online while one connection remains.
	hub.Unregister(tab1)
	if len(hub.OnlineUserIDs()) != 1 {
		t.Fatal("user must stay online with a remaining connection")
	}
	hub.Unregister(tab2)
	if len(hub.OnlineUserIDs()) != 0 {
		t.Fatal("user must go offline after the last connection closes")
	}
}

func TestHubNotifier_WrapsMessagesInEnvelope(t *testing.T) {
	hub := NewHub()
	receiver := uuid.New()
	c := NewClient(nil, receiver.String())
	hub.Register(c)

	notifier := NewHubNotifier(hub)
	msg := message.Message{
		ID:         uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: receiver,
		Text:       "hello",
	}
	notifier.NotifyUser(receiver, "newMessage", msg)

	payloads := drain(t, c)
	if len(payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(payloads))
	}

	var env struct {
		Event string             `json:"event"`
		Data  httpdto.MessageDTO `json:"data"`
	}
	if err := json.Unmarshal(payloads[0], &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Event != "newMessage" {
		t.Fatalf("expected newMessage event, got %q", env.Event)
	}
	if env.Data.ID != msg.ID.String() || env.Data.Text != "hello" {
		t.Fatalf("payload wrong: %+v", env.Data)
	}
}

package httpdto

import (
	"time"

	"quickchat/internal/domain/message"
)

type MessageDTO struct {
	ID         string    `json:"_id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text,omitempty"`
	Image      string    `json:"image,omitempty"`
	Seen       bool      `json:"seen"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromMessage(m message.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID.String(),
		SenderID:   m.SenderID.String(),
		ReceiverID: m.ReceiverID.String(),
		Text:       m.Text,
		Image:      m.ImageURL,
		Seen:       m.Seen,
		CreatedAt:  m.CreatedAt,
	}
}

func FromMessageSlice(messages []message.Message) []MessageDTO {
	out := make([]MessageDTO, len(messages))
	for i, m := range messages {
		out[i] = FromMessage(m)
	}
	return out
}

type SendMessageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// UsersResponse answers GET /users: the sidebar listing plus unseen
// counts keyed by partner ID. Partners with zero unseen are absent.
type UsersResponse struct {
	Success        bool             `json:"success"`
	Users          []UserDTO        `json:"users"`
	UnseenMessages map[string]int64 `json:"unseenMessages"`
}

// MessagesResponse answers GET /messages/:partnerId.
type MessagesResponse struct {
	Success  bool         `json:"success"`
	Messages []MessageDTO `json:"messages"`
}

// SendMessageResponse answers POST /messages/send/:partnerId.
type SendMessageResponse struct {
	Success    bool       `json:"success"`
	NewMessage MessageDTO `json:"newMessage"`
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"quickchat/internal/domain/message"
	"quickchat/internal/domain/user"
)

// UserRepository is the credential store: it owns user records and is
// the only component that reads or writes them.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	ListExcept(ctx context.Context, id uuid.UUID) ([]user.User, error)
	Update(ctx context.Context, u user.User) error
}

// MessageRepository is the message store for pairwise direct messages.
type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (message.Message, error)

	// GetConversation returns messages between the two users in either
	// direction, ordered by creation time ascending.
	GetConversation(ctx context.Context, userA, userB uuid.UUID) ([]message.Message, error)

	// MarkConversationSeen bulk-marks messages sent by senderID to
	// receiverID as seen and returns the number of rows touched.
	MarkConversationSeen(ctx context.Context, senderID, receiverID uuid.UUID) (int64, error)

	MarkSeen(ctx context.Context, id uuid.UUID) error

	// UnseenCounts returns, per sender, the count of unseen messages
	// addressed to receiverID. Senders with zero unseen are absent.
	UnseenCounts(ctx context.Context, receiverID uuid.UUID) (map[uuid.UUID]int64, error)
}

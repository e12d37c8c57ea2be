package message

import (
	"time"

	"github.com/google/uuid"
)

// Message represents the messages table. A conversation is not a
// stored entity: it is the set of messages between two user IDs in
// either direction. At least one of Text/ImageURL must be present.
type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_pair"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_pair"`
	Text       string
	ImageURL   string
	Seen       bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

// HasContent reports whether the message carries text or an image.
func (m Message) HasContent() bool {
	return m.Text != "" || m.ImageURL != ""
}

func (Message) TableName() string {
	return "messages"
}

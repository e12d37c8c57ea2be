package repository

import (
	"context"
	"errors"

	"quickchat/internal/domain/message"
	quickchat_errors "quickchat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, m *message.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *GormMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (message.Message, error) {
	var m message.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message.Message{}, quickchat_errors.ErrNotFound
		}
		return message.Message{}, err
	}
	return m, nil
}

func (r *GormMessageRepository) GetConversation(ctx context.Context, userA, userB uuid.UUID) ([]message.Message, error) {
	var messages []message.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *GormMessageRepository) MarkConversationSeen(ctx context.Context, senderID, receiverID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND seen = ?", senderID, receiverID, false).
		Update("seen", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *GormMessageRepository) MarkSeen(ctx context.Context, id uuid.UUID) error {
	// Idempotent: re-marking an already seen message is not an error.
	res := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Where("id = ?", id).
		Update("seen", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return quickchat_errors.ErrNotFound
	}
	return nil
}

func (r *GormMessageRepository) UnseenCounts(ctx context.Context, receiverID uuid.UUID) (map[uuid.UUID]int64, error) {
	type row struct {
		SenderID uuid.UUID
		Total    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&message.Message{}).
		Select("sender_id, count(*) AS total").
		Where("receiver_id = ? AND seen = ?", receiverID, false).
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.SenderID] = r.Total
	}
	return counts, nil
}

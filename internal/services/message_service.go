package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickchat/internal/domain/message"
	"quickchat/internal/domain/user"
	"quickchat/internal/repository"
	quickchat_errors "quickchat/pkg/errors"
	"quickchat/pkg/logger"

	"github.com/google/uuid"
)

// Notifier pushes real-time events to a user's live connections. The
// WebSocket hub satisfies it; a nil notifier disables delivery without
// affecting persistence.
type Notifier interface {
	NotifyUser(userID uuid.UUID, event string, data any)
}

// MessageService owns the direct-message flow: sidebar listing with
// unseen counts, conversation retrieval, sending and seen tracking.
type MessageService struct {
	messages      repository.MessageRepository
	users         repository.UserRepository
	uploader      Uploader
	notifier      Notifier
	log           *logger.Logger
	uploadTimeout time.Duration
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, uploader Uploader, notifier Notifier, log *logger.Logger, uploadTimeout time.Duration) *MessageService {
	if uploadTimeout <= 0 {
		uploadTimeout = 30 * time.Second
	}
	return &MessageService{
		messages:      messages,
		users:         users,
		uploader:      uploader,
		notifier:      notifier,
		log:           log,
		uploadTimeout: uploadTimeout,
	}
}

// ListConversationPartners returns every user except the caller plus a
// map of unseen-message counts keyed by partner ID. The counts are an
// exact snapshot at call time; a concurrent send can make them stale,
// which is fine for a badge count.
func (s *MessageService) ListConversationPartners(ctx context.Context, currentUserID uuid.UUID) ([]user.User, map[uuid.UUID]int64, error) {
	partners, err := s.users.ListExcept(ctx, currentUserID)
	if err != nil {
		return nil, nil, err
	}
	counts, err := s.messages.UnseenCounts(ctx, currentUserID)
	if err != nil {
		return nil, nil, err
	}
	return partners, counts, nil
}

// FetchConversation returns both directions of the conversation in
// creation order and, as a side effect, bulk-marks the partner's
// messages to the caller as seen.
func (s *MessageService) FetchConversation(ctx context.Context, currentUserID, partnerID uuid.UUID) ([]message.Message, error) {
	if _, err := s.users.GetByID(ctx, partnerID); err != nil {
		return nil, err
	}

	msgs, err := s.messages.GetConversation(ctx, currentUserID, partnerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.messages.MarkConversationSeen(ctx, partnerID, currentUserID); err != nil {
		return nil, err
	}

	// Reflect the bulk update in the returned slice.
	for i := range msgs {
		if msgs[i].SenderID == partnerID {
			msgs[i].Seen = true
		}
	}
	return msgs, nil
}

type SendMessageInput struct {
	Text string
	// ImageBase64 is a base64 image payload, with or without a
	// data-URI prefix.
	ImageBase64 string
}

// SendMessage persists a new message for the pair. If an image is
// attached it is uploaded first; on upload failure nothing is written.
func (s *MessageService) SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, in SendMessageInput) (message.Message, error) {
	if in.Text == "" && in.ImageBase64 == "" {
		return message.Message{}, quickchat_errors.ErrInvalidInput
	}
	if senderID == receiverID {
		return message.Message{}, quickchat_errors.ErrInvalidInput
	}

	if _, err := s.users.GetByID(ctx, receiverID); err != nil {
		return message.Message{}, err
	}

	imageURL := ""
	if in.ImageBase64 != "" {
		data, contentType, err := DecodeImagePayload(in.ImageBase64)
		if err != nil {
			return message.Message{}, err
		}
		if err := ValidateImage(data, contentType); err != nil {
			return message.Message{}, err
		}
		imageURL, err = s.uploadImage(ctx, data, contentType)
		if err != nil {
			return message.Message{}, err
		}
	}

	msg := message.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       in.Text,
		ImageURL:   imageURL,
		CreatedAt:  time.Now(),
	}

	if err := s.messages.Create(ctx, &msg); err != nil {
		return message.Message{}, err
	}

	if s.notifier != nil {
		s.notifier.NotifyUser(receiverID, "newMessage", msg)
	}

	return msg, nil
}

// MarkSeen flips the seen flag on a single message. Idempotent.
func (s *MessageService) MarkSeen(ctx context.Context, messageID uuid.UUID) error {
	return s.messages.MarkSeen(ctx, messageID)
}

func (s *MessageService) uploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if s.uploader == nil {
		return "", quickchat_errors.ErrUploadFailed
	}
	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	url, err := s.uploader.Upload(ctx, data, contentType)
	if err != nil {
		if s.log != nil && !errors.Is(err, context.Canceled) {
			s.log.Errorf("message image upload failed: %s", err)
		}
		return "", fmt.Errorf("%w: %v", quickchat_errors.ErrUploadFailed, err)
	}
	return url, nil
}

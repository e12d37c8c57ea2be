package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quickchat/internal/domain/message"
	"quickchat/internal/repository"
	quickchat_errors "quickchat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedMessage(t *testing.T, db *gorm.DB, repo repository.MessageRepository, sender, receiver uuid.UUID, text string, seen bool, at time.Time) *message.Message {
	t.Helper()
	m := &message.Message{
		ID:         uuid.New(),
		SenderID:   sender,
		ReceiverID: receiver,
		Text:       text,
		Seen:       seen,
		CreatedAt:  at,
	}
	if err := repo.Create(context.Background(), m); err != nil {
		t.Fatalf("create message: %v", err)
	}
	// Create defaults seen to false, flip it directly for fixtures.
	if seen {
		if err := db.Model(&message.Message{}).Where("id = ?", m.ID).Update("seen", true).Error; err != nil {
			t.Fatalf("mark fixture seen: %v", err)
		}
	}
	return m
}

func TestMessageRepository_ConversationOrderAndScope(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewMessageRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()
	base := time.Now().Add(-time.Hour)

	seedMessage(t, db, repo, alice, bob, "second", false, base.Add(2*time.Minute))
	seedMessage(t, db, repo, bob, alice, "first", false, base.Add(time.Minute))
	seedMessage(t, db, repo, alice, carol, "other thread", false, base.Add(3*time.Minute))

	msgs, err := repo.GetConversation(ctx, alice, bob)
	if err != nil {
		t.Fatalf("get conversation: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Text != "first" || msgs[1].Text != "second" {
		t.Fatalf("expected chronological order, got %q then %q", msgs[0].Text, msgs[1].Text)
	}
}

func TestMessageRepository_MarkConversationSeenDirection(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewMessageRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	now := time.Now()

	fromBob := seedMessage(t, db, repo, bob, alice, "to alice", false, now)
	fromAlice := seedMessage(t, db, repo, alice, bob, "to bob", false, now)

	n, err := repo.MarkConversationSeen(ctx, bob, alice)
	if err != nil {
		t.Fatalf("mark conversation seen: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row updated, got %d", n)
	}

	got, err := repo.GetByID(ctx, fromBob.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Seen {
		t.Fatal("message from bob should be seen")
	}

	got, err = repo.GetByID(ctx, fromAlice.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Seen {
		t.Fatal("alice's own outgoing message must stay unseen")
	}

	// Idempotent, nothing left to update.
	n, err = repo.MarkConversationSeen(ctx, bob, alice)
	if err != nil {
		t.Fatalf("second mark: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows on repeat, got %d", n)
	}
}

func TestMessageRepository_MarkSeen(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewMessageRepository(db)
	ctx := context.Background()

	m := seedMessage(t, db, repo, uuid.New(), uuid.New(), "hi", false, time.Now())

	if err := repo.MarkSeen(ctx, m.ID); err != nil {
		t.Fatalf("mark seen: %v", err)
	}
	// Repeating is a no-op, not an error.
	if err := repo.MarkSeen(ctx, m.ID); err != nil {
		t.Fatalf("repeat mark seen: %v", err)
	}

	err := repo.MarkSeen(ctx, uuid.New())
	if !errors.Is(err, quickchat_errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestMessageRepository_UnseenCounts(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewMessageRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()
	now := time.Now()

	for i := 0; i < 3; i++ {
		seedMessage(t, db, repo, bob, alice, "unseen", false, now)
	}
	seedMessage(t, db, repo, bob, alice, "already read", true, now)
	seedMessage(t, db, repo, carol, alice, "from carol", false, now)
	seedMessage(t, db, repo, alice, bob, "outgoing", false, now)

	counts, err := repo.UnseenCounts(ctx, alice)
	if err != nil {
		t.Fatalf("unseen counts: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 senders, got %d: %v", len(counts), counts)
	}
	if counts[bob] != 3 {
		t.Fatalf("expected 3 unseen from bob, got %d", counts[bob])
	}
	if counts[carol] != 1 {
		t.Fatalf("expected 1 unseen from carol, got %d", counts[carol])
	}
	if _, ok := counts[alice]; ok {
		t.Fatal("own outgoing messages must not appear in counts")
	}
}

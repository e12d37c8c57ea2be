package services_test

import (
	"context"
	"testing"
	"time"

	"quickchat/internal/domain/message"
	"quickchat/internal/domain/user"
	"quickchat/internal/repository"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&user.User{}, &message.Message{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, repo repository.UserRepository, email, name string) user.User {
	t.Helper()
	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "x",
		FullName:     name,
		Bio:          "bio",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return *u
}

// fakeUploader records calls and returns a fixed URL or error.
type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (f *fakeUploader) Upload(_ context.Context, _ []byte, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type notification struct {
	userID uuid.UUID
	event  string
	data   any
}

type fakeNotifier struct {
	sent []notification
}

func (f *fakeNotifier) NotifyUser(userID uuid.UUID, event string, data any) {
	f.sent = append(f.sent, notification{userID: userID, event: event, data: data})
}

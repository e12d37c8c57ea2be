package database

import (
	"errors"
	"log"
	"time"

	"quickchat/internal/domain/message"
	"quickchat/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates a development database with two users and a short
// conversation between them. Existing users are left alone.
func Seed() error {
	if DB == nil {
		return errors.New("database not connected")
	}

	alice, err := seedUser("alice@example.com", "Alice Carter", "Coffee first, replies later", "password1")
	if err != nil {
		return err
	}
	bob, err := seedUser("bob@example.com", "Bob Mensah", "Here for the memes", "password1")
	if err != nil {
		return err
	}
	if alice == nil || bob == nil {
		return nil
	}

	msgs := []message.Message{
		{ID: uuid.New(), SenderID: alice.ID, ReceiverID: bob.ID, Text: "hey, you around?", Seen: true, CreatedAt: time.Now().Add(-3 * time.Hour)},
		{ID: uuid.New(), SenderID: bob.ID, ReceiverID: alice.ID, Text: "yep, what's up", Seen: true, CreatedAt: time.Now().Add(-2 * time.Hour)},
		{ID: uuid.New(), SenderID: bob.ID, ReceiverID: alice.ID, Text: "still there?", CreatedAt: time.Now().Add(-time.Hour)},
	}
	for i := range msgs {
		if err := DB.Create(&msgs[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d users and %d messages", 2, len(msgs))
	return nil
}

func seedUser(email, fullName, bio, password string) (*user.User, error) {
	var existing user.User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Bio:          bio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := DB.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

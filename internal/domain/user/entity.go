package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents the users table. Passwords are stored as bcrypt
// hashes only; the hash never leaves the service layer.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"uniqueIndex;not null"`
	PasswordHash  string    `gorm:"not null"`
	FullName      string    `gorm:"not null"`
	Bio           string
	ProfilePicURL string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (User) TableName() string {
	return "users"
}

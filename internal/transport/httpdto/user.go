package httpdto

import (
	"time"

	"quickchat/internal/domain/user"
)

// UserDTO is the wire shape of a user. The password hash never crosses
// this boundary. The "_id" key matches what chat clients expect.
type UserDTO struct {
	ID         string    `json:"_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Bio        string    `json:"bio"`
	ProfilePic string    `json:"profilePic,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromUser(u user.User) UserDTO {
	return UserDTO{
		ID:         u.ID.String(),
		Email:      u.Email,
		FullName:   u.FullName,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePicURL,
		CreatedAt:  u.CreatedAt,
	}
}

func FromUserSlice(users []user.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = FromUser(u)
	}
	return out
}

// CheckResponse answers GET /check.
type CheckResponse struct {
	Success bool    `json:"success"`
	User    UserDTO `json:"user"`
}

// UpdateProfileResponse answers PATCH /update-profile.
type UpdateProfileResponse struct {
	Success bool    `json:"success"`
	User    UserDTO `json:"user"`
}

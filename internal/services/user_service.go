package services

import (
	"context"
	"fmt"
	"time"

	"quickchat/internal/domain/user"
	"quickchat/internal/repository"
	quickchat_errors "quickchat/pkg/errors"

	"github.com/google/uuid"
)

// UserService merges sparse profile updates into a user record,
// uploading a new avatar first when one is supplied.
type UserService struct {
	repo          repository.UserRepository
	uploader      Uploader
	uploadTimeout time.Duration
}

func NewUserService(repo repository.UserRepository, uploader Uploader, uploadTimeout time.Duration) *UserService {
	if uploadTimeout <= 0 {
		uploadTimeout = 30 * time.Second
	}
	return &UserService{repo: repo, uploader: uploader, uploadTimeout: uploadTimeout}
}

type AvatarUpload struct {
	Data        []byte
	ContentType string
}

// UpdateProfileInput carries the changed subset of profile fields.
// A nil pointer means "leave unchanged"; a pointer to the empty string
// clears the field.
type UpdateProfileInput struct {
	FullName *string
	Bio      *string
	Avatar   *AvatarUpload
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies the provided fields all-or-nothing: the avatar
// is validated and uploaded before the single database write, so an
// upload failure commits nothing.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	if in.FullName == nil && in.Bio == nil && in.Avatar == nil {
		return user.User{}, quickchat_errors.ErrInvalidInput
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}

	if in.Avatar != nil {
		if err := ValidateImage(in.Avatar.Data, in.Avatar.ContentType); err != nil {
			return user.User{}, err
		}
		url, err := s.uploadAvatar(ctx, in.Avatar)
		if err != nil {
			return user.User{}, err
		}
		u.ProfilePicURL = url
	}

	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (s *UserService) uploadAvatar(ctx context.Context, avatar *AvatarUpload) (string, error) {
	if s.uploader == nil {
		return "", quickchat_errors.ErrUploadFailed
	}
	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	url, err := s.uploader.Upload(ctx, avatar.Data, avatar.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", quickchat_errors.ErrUploadFailed, err)
	}
	return url, nil
}

package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"quickchat/internal/repository"
	"quickchat/internal/services"
	quickchat_errors "quickchat/pkg/errors"
)

func TestUserService_EmptyUpdateRejected(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	svc := services.NewUserService(repo, nil, time.Second)

	u := createUser(t, repo, "u@test.com", "U")
	_, err := svc.UpdateProfile(context.Background(), u.ID, services.UpdateProfileInput{})
	if !errors.Is(err, quickchat_errors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_SparseUpdateLeavesOtherFields(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	svc := services.NewUserService(repo, nil, time.Second)
	ctx := context.Background()

	u := createUser(t, repo, "u@test.com", "Original Name")

	bio := "a new bio"
	updated, err := svc.UpdateProfile(ctx, u.ID, services.UpdateProfileInput{Bio: &bio})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Bio != "a new bio" {
		t.Fatalf("bio not applied: %q", updated.Bio)
	}
	if updated.FullName != "Original Name" {
		t.Fatalf("full name must be untouched, got %q", updated.FullName)
	}

	stored, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Bio != "a new bio" || stored.FullName != "Original Name" {
		t.Fatalf("persisted state wrong: %+v", stored)
	}
}

func TestUserService_EmptyStringClearsField(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	svc := services.NewUserService(repo, nil, time.Second)

	u := createUser(t, repo, "u@test.com", "U")

	empty := ""
	updated, err := svc.UpdateProfile(context.Background(), u.ID, services.UpdateProfileInput{Bio: &empty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Bio != "" {
		t.Fatalf("expected cleared bio, got %q", updated.Bio)
	}
}

func TestUserService_AvatarUpload(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	up := &fakeUploader{url: "https://cdn.test/avatar.png"}
	svc := services.NewUserService(repo, up, time.Second)
	ctx := context.Background()

	u := createUser(t, repo, "u@test.com", "U")

	_, err := svc.UpdateProfile(ctx, u.ID, services.UpdateProfileInput{
		Avatar: &services.AvatarUpload{Data: []byte{1, 2, 3}, ContentType: "image/png"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if up.calls != 1 {
		t.Fatalf("expected 1 upload call, got %d", up.calls)
	}

	stored, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ProfilePicURL != "https://cdn.test/avatar.png" {
		t.Fatalf("profile pic url not set: %q", stored.ProfilePicURL)
	}
}

func TestUserService_AvatarValidation(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	up := &fakeUploader{url: "https://cdn.test/x"}
	svc := services.NewUserService(repo, up, time.Second)
	ctx := context.Background()

	u := createUser(t, repo, "u@test.com", "U")

	oversize := bytes.Repeat([]byte{0xff}, services.MaxImageBytes+1)
	_, err := svc.UpdateProfile(ctx, u.ID, services.UpdateProfileInput{
		Avatar: &services.AvatarUpload{Data: oversize, ContentType: "image/png"},
	})
	if !errors.Is(err, quickchat_errors.ErrTooLarge) {
		t.Fatalf("oversize: expected ErrTooLarge, got %v", err)
	}

	_, err = svc.UpdateProfile(ctx, u.ID, services.UpdateProfileInput{
		Avatar: &services.AvatarUpload{Data: []byte{1}, ContentType: "application/pdf"},
	})
	if !errors.Is(err, quickchat_errors.ErrInvalidInput) {
		t.Fatalf("bad type: expected ErrInvalidInput, got %v", err)
	}

	if up.calls != 0 {
		t.Fatalf("rejected payloads must never reach the uploader, got %d calls", up.calls)
	}
}

func TestUserService_UploadFailureCommitsNothing(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepository(db)
	up := &fakeUploader{err: errors.New("bucket gone")}
	svc := services.NewUserService(repo, up, time.Second)
	ctx := context.Background()

	u := createUser(t, repo, "u@test.com", "Original Name")

	name := "New Name"
	_, err := svc.UpdateProfile(ctx, u.ID, services.UpdateProfileInput{
		FullName: &name,
		Avatar:   &services.AvatarUpload{Data: []byte{1, 2, 3}, ContentType: "image/jpeg"},
	})
	if !errors.Is(err, quickchat_errors.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}

	stored, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.FullName != "Original Name" || stored.ProfilePicURL != "" {
		t.Fatalf("failed upload must commit nothing, got %+v", stored)
	}
}

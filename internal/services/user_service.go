package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"filevault/internal/domain/user"
	"filevault/internal/filename"
	"filevault/internal/repository"
	"filevault/internal/storage"
	filevault_errors "filevault/pkg/errors"
	"filevault/pkg/logger"

	"github.com/google/uuid"
)

// UserService manages profiles and the per-user profile image. The image is
// a single optional object: replaced on upload, removed on explicit clear,
// and cascaded on account deletion.
type UserService struct {
	repo  repository.UserRepository
	store ObjectStore
	log   *logger.Logger
}

func NewUserService(repo repository.UserRepository, store ObjectStore, log *logger.Logger) *UserService {
	return &UserService{repo: repo, store: store, log: log}
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) UpdateName(ctx context.Context, id uuid.UUID, name string) (user.User, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return user.User{}, fmt.Errorf("%w: name must be at least 2 characters", filevault_errors.ErrInvalidInput)
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	u.Name = name
	u.LastActiveAt = time.Now()
	if err := s.repo.Update(ctx, u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// SetProfileImage replaces the user's profile image. The previous object is
// deleted best-effort first: a failed cleanup is logged but does not block
// the replacement, so the user record always ends pointing at the latest
// image.
func (s *UserService) SetProfileImage(ctx context.Context, id uuid.UUID, staged StagedFile) (string, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := ValidateUpload(staged); err != nil {
		return "", err
	}

	if u.ProfileImage.Valid && u.ProfileImage.String != "" {
		oldKey := storage.KeyFromLocation(u.ProfileImage.String)
		if err := s.store.Delete(ctx, oldKey); err != nil && s.log != nil {
			s.log.WarnfCtx(ctx, "failed to delete previous profile image %q: %s", oldKey, err)
		}
	}

	keyHint := filename.GenerateInternalName(staged.OriginalName)
	location, err := s.store.Put(ctx, staged.Data, staged.ContentType, keyHint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", filevault_errors.ErrStorage, err)
	}
	if !isValidImageLocation(location) {
		return "", fmt.Errorf("%w: malformed image location %q", filevault_errors.ErrInvalidInput, location)
	}

	u.ProfileImage = sql.NullString{String: location, Valid: true}
	u.LastActiveAt = time.Now()
	if err := s.repo.Update(ctx, u); err != nil {
		return "", err
	}
	return location, nil
}

// ClearProfileImage deletes the current image object, then clears the
// field. A failed object delete aborts so the record keeps pointing at
// bytes that still exist.
func (s *UserService) ClearProfileImage(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !u.ProfileImage.Valid || u.ProfileImage.String == "" {
		return nil
	}

	key := storage.KeyFromLocation(u.ProfileImage.String)
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %v", filevault_errors.ErrStorage, err)
	}

	u.ProfileImage = sql.NullString{}
	return s.repo.Update(ctx, u)
}

// DeleteAccount removes the user record, cascading to the profile image
// object first.
func (s *UserService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if u.ProfileImage.Valid && u.ProfileImage.String != "" {
		key := storage.KeyFromLocation(u.ProfileImage.String)
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("%w: %v", filevault_errors.ErrStorage, err)
		}
	}

	return s.repo.Delete(ctx, id)
}

func isValidImageLocation(location string) bool {
	parsed, err := url.Parse(location)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

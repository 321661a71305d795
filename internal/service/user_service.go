package service

import (
	"context"
	"errors"
	"fmt"

	"pixelgram/internal/models"
	"pixelgram/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService covers the thin user surface: public profile lookups,
// just-in-time provisioning from the identity provider, account deletion.
type UserService struct {
	userRepo   repository.UserRepository
	purgePosts func(ctx context.Context, userID uuid.UUID) error
}

func NewUserService(userRepo repository.UserRepository, purgePosts func(ctx context.Context, userID uuid.UUID) error) *UserService {
	return &UserService{userRepo: userRepo, purgePosts: purgePosts}
}

func (s *UserService) GetUserInfo(ctx context.Context, id uuid.UUID) (*models.UserPublicInfo, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found.")
		}
		return nil, err
	}
	return &models.UserPublicInfo{ID: user.ID, Username: user.Username}, nil
}

// EnsureUser provisions the local row for an identity seen in a verified
// token, and refreshes it when the provider reports changed profile claims.
// Tokens that omit the profile claims leave an existing row untouched, so
// the common case is a single cached read with no write. Satisfies
// middleware.UserProvisioner.
func (s *UserService) EnsureUser(ctx context.Context, id uuid.UUID, username, email string) error {
	existing, err := s.userRepo.GetByID(ctx, id)
	if err == nil {
		if username == "" || email == "" {
			return nil
		}
		if existing.Username == username && existing.Email == email {
			return nil
		}
		return s.userRepo.UpdateIdentity(ctx, id, username, email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if username == "" || email == "" {
		return fmt.Errorf("cannot provision user %s: token carries no profile claims", id)
	}
	return s.userRepo.Create(ctx, &models.User{
		ID:       id,
		Username: username,
		Email:    email,
	})
}

// DeleteAccount removes the user's posts (blobs included) and then the
// user row; foreign keys cascade the remaining relations.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if s.purgePosts != nil {
		if err := s.purgePosts(ctx, userID); err != nil {
			return err
		}
	}
	return s.userRepo.Delete(ctx, userID)
}

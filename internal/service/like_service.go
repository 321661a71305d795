package service

import (
	"context"
	"errors"

	"pixelgram/internal/models"
	"pixelgram/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeService manages like relations between users and posts.
type LikeService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
}

func NewLikeService(postRepo repository.PostRepository, likeRepo repository.LikeRepository) *LikeService {
	return &LikeService{postRepo: postRepo, likeRepo: likeRepo}
}

func (s *LikeService) Like(ctx context.Context, userID, postID uuid.UUID) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	inserted, err := s.likeRepo.Like(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !inserted {
		return models.NewConflictError("Post already liked")
	}
	return nil
}

func (s *LikeService) Unlike(ctx context.Context, userID, postID uuid.UUID) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	removed, err := s.likeRepo.Unlike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("Post not liked")
	}
	return nil
}

func (s *LikeService) requirePost(ctx context.Context, postID uuid.UUID) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		return err
	}
	return nil
}

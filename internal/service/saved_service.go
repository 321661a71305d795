package service

import (
	"context"
	"errors"

	"pixelgram/internal/models"
	"pixelgram/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedService manages per-user bookmarks and the saved-posts feed.
type SavedService struct {
	postRepo  repository.PostRepository
	savedRepo repository.SavedRepository
	posts     *PostService
}

type ListSavedInput struct {
	ViewerID uuid.UUID
	Page     int
	PageSize int
}

func NewSavedService(postRepo repository.PostRepository, savedRepo repository.SavedRepository, posts *PostService) *SavedService {
	return &SavedService{postRepo: postRepo, savedRepo: savedRepo, posts: posts}
}

func (s *SavedService) Save(ctx context.Context, userID, postID uuid.UUID) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	inserted, err := s.savedRepo.Save(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !inserted {
		return models.NewConflictError("Post already saved")
	}
	return nil
}

func (s *SavedService) Unsave(ctx context.Context, userID, postID uuid.UUID) error {
	if err := s.requirePost(ctx, postID); err != nil {
		return err
	}
	removed, err := s.savedRepo.Unsave(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("Post not saved")
	}
	return nil
}

// ListSaved is the saved-posts variant of the feed. A viewer with no saved
// posts gets an empty page without a posts-table round trip.
func (s *SavedService) ListSaved(ctx context.Context, in ListSavedInput) (*models.PaginatedPosts, error) {
	savedIDs, err := s.savedRepo.AllSavedPostIDs(ctx, in.ViewerID)
	if err != nil {
		return nil, err
	}
	if len(savedIDs) == 0 {
		return &models.PaginatedPosts{Data: []models.PostRead{}}, nil
	}

	filter := repository.PostFilter{IDs: savedIDs}
	posts, err := s.postRepo.ListPage(ctx, filter, in.PageSize, (in.Page-1)*in.PageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	data, err := s.posts.assemblePage(ctx, posts, in.ViewerID)
	if err != nil {
		return nil, err
	}

	return &models.PaginatedPosts{
		Data:     data,
		NextPage: models.NextPage(in.Page, in.PageSize, total),
		Total:    total,
	}, nil
}

func (s *SavedService) requirePost(ctx context.Context, postID uuid.UUID) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		return err
	}
	return nil
}

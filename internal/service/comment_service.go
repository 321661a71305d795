package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"pixelgram/internal/models"
	"pixelgram/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxCommentLen = 1000

// CommentService manages the comment threads under posts.
type CommentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

type ListCommentsInput struct {
	ViewerID uuid.UUID
	PostID   uuid.UUID
	Page     int
	PageSize int
}

type AddCommentInput struct {
	UserID  uuid.UUID
	PostID  uuid.UUID
	Content string
}

type DeleteCommentInput struct {
	UserID    uuid.UUID
	PostID    uuid.UUID
	CommentID uuid.UUID
}

func NewCommentService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{postRepo: postRepo, commentRepo: commentRepo, userRepo: userRepo}
}

// ListComments returns one page of a post's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, in ListCommentsInput) (*models.PaginatedComments, error) {
	if err := s.requirePost(ctx, in.PostID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, in.PostID, in.PageSize, (in.Page-1)*in.PageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.commentRepo.CountByPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	data := make([]models.CommentRead, 0, len(comments))
	for _, c := range comments {
		data = append(data, commentRead(c, in.ViewerID))
	}

	return &models.PaginatedComments{
		Data:     data,
		NextPage: models.NextPage(in.Page, in.PageSize, total),
		Total:    total,
	}, nil
}

func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.CommentResponse, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content cannot be empty")
	}
	if utf8.RuneCountInString(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content exceeds maximum length of 1000 characters")
	}
	if err := s.requirePost(ctx, in.PostID); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.PostComment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.User = *author

	return &models.CommentResponse{Comment: commentRead(comment, in.UserID)}, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	if err := s.requirePost(ctx, in.PostID); err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment not found")
		}
		return err
	}
	// A comment id under the wrong post is indistinguishable from a
	// missing one to the caller.
	if comment.PostID != in.PostID {
		return models.NewNotFoundError("Comment not found")
	}
	if comment.UserID != in.UserID {
		return models.NewForbiddenError("Not comment owner")
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}

func (s *CommentService) requirePost(ctx context.Context, postID uuid.UUID) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		return err
	}
	return nil
}

func commentRead(c *models.PostComment, viewerID uuid.UUID) models.CommentRead {
	return models.CommentRead{
		ID:             c.ID,
		PostID:         c.PostID,
		UserID:         c.UserID,
		AuthorUsername: c.User.Username,
		AuthorEmail:    c.User.Email,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt,
		ByUser:         c.UserID == viewerID,
	}
}

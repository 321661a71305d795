package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"pixelgram/internal/models"
	"pixelgram/internal/observability"
	"pixelgram/internal/repository"
	"pixelgram/internal/storage"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

const maxDescriptionLen = 1000

type PostService struct {
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	savedRepo   repository.SavedRepository
	userRepo    repository.UserRepository
	store       storage.ObjectStore
	maxImage    int64
	imageSize   int
}

type CreatePostInput struct {
	UserID      uuid.UUID
	Description string
	Image       ImageUpload
}

type ListPostsInput struct {
	ViewerID uuid.UUID
	Page     int
	PageSize int
	AuthorID *uuid.UUID
}

type DeletePostInput struct {
	UserID uuid.UUID
	PostID uuid.UUID
}

func NewPostService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	savedRepo repository.SavedRepository,
	userRepo repository.UserRepository,
	store storage.ObjectStore,
	maxImageBytes int64,
	imageSize int,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		savedRepo:   savedRepo,
		userRepo:    userRepo,
		store:       store,
		maxImage:    maxImageBytes,
		imageSize:   imageSize,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.PostResponse, error) {
	pngBytes, err := validateAndEncodeImage(in.Image, s.maxImage, s.imageSize)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("Description cannot be empty")
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description exceeds maximum length of 1000 characters")
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.store.Upload(ctx, pngBytes)
	if err != nil {
		return nil, models.NewUpstreamError("Image upload failed: "+err.Error(), err)
	}

	post := &models.Post{
		Description: in.Description,
		ImageURL:    imageURL,
		UserID:      in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewUpstreamError("Failed to save post: "+err.Error(), err)
	}

	observability.PostsCreated.Inc()

	return &models.PostResponse{Post: models.PostRead{
		ID:             post.ID,
		Description:    post.Description,
		ImageURL:       post.ImageURL,
		UserID:         post.UserID,
		AuthorUsername: author.Username,
		AuthorEmail:    author.Email,
		CreatedAt:      post.CreatedAt,
	}}, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*models.PaginatedPosts, error) {
	span, ctx := observability.NewSpan(ctx, "service.list_posts")
	defer span.End()
	span.AddAttributes(
		attribute.Int("feed.page", in.Page),
		attribute.Int("feed.page_size", in.PageSize),
	)

	filter := repository.PostFilter{AuthorID: in.AuthorID}

	posts, err := s.postRepo.ListPage(ctx, filter, in.PageSize, (in.Page-1)*in.PageSize)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	data, err := s.assemblePage(ctx, posts, in.ViewerID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &models.PaginatedPosts{
		Data:     data,
		NextPage: models.NextPage(in.Page, in.PageSize, total),
		Total:    total,
	}, nil
}

// assemblePage turns a page of posts into wire DTOs. Counts and per-viewer
// flags come from one batched query per concern against the page's id set,
// regardless of page size.
func (s *PostService) assemblePage(ctx context.Context, posts []*models.Post, viewerID uuid.UUID) ([]models.PostRead, error) {
	data := make([]models.PostRead, 0, len(posts))
	if len(posts) == 0 {
		return data, nil
	}

	postIDs := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	likeCounts, err := s.likeRepo.CountsByPost(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	likedIDs, err := s.likeRepo.LikedPostIDs(ctx, viewerID, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.commentRepo.CountsByPost(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	commentedIDs, err := s.commentRepo.CommentedPostIDs(ctx, viewerID, postIDs)
	if err != nil {
		return nil, err
	}
	savedIDs, err := s.savedRepo.SavedPostIDs(ctx, viewerID, postIDs)
	if err != nil {
		return nil, err
	}

	liked := idSet(likedIDs)
	commented := idSet(commentedIDs)
	saved := idSet(savedIDs)

	for _, p := range posts {
		data = append(data, models.PostRead{
			ID:              p.ID,
			Description:     p.Description,
			ImageURL:        p.ImageURL,
			UserID:          p.UserID,
			AuthorUsername:  p.User.Username,
			AuthorEmail:     p.User.Email,
			CreatedAt:       p.CreatedAt,
			LikesCount:      likeCounts[p.ID],
			LikedByUser:     liked[p.ID],
			CommentsCount:   commentCounts[p.ID],
			CommentedByUser: commented[p.ID],
			SavedByUser:     saved[p.ID],
		})
	}
	return data, nil
}

func idSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		return err
	}
	if post.UserID != in.UserID {
		return models.NewForbiddenError("Not post owner")
	}
	return s.deletePostRow(ctx, post)
}

// deletePostRow removes the row first so the post disappears even when the
// blob deletion fails; the orphaned object is logged for cleanup.
func (s *PostService) deletePostRow(ctx context.Context, post *models.Post) error {
	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}
	observability.LogAsyncOperationStart(ctx, "storage_delete", map[string]interface{}{
		"post_id": post.ID.String(),
	})
	if err := s.store.Delete(ctx, post.ImageURL); err != nil {
		observability.LogAsyncOperationError(ctx, "storage_delete", err, map[string]interface{}{
			"post_id":   post.ID.String(),
			"image_url": post.ImageURL,
		})
	}
	return nil
}

// DeleteAllFromUser removes every post a user authored, blobs included.
// Used by account deletion.
func (s *PostService) DeleteAllFromUser(ctx context.Context, userID uuid.UUID) error {
	posts, err := s.postRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	for _, post := range posts {
		if err := s.deletePostRow(ctx, post); err != nil {
			return err
		}
	}
	return nil
}

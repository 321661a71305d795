// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"pixelgram/internal/models"
	"pixelgram/internal/observability"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostFilter narrows a feed query. A nil field leaves that dimension
// unconstrained. An empty non-nil IDs slice matches nothing.
type PostFilter struct {
	AuthorID *uuid.UUID
	IDs      []uuid.UUID
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPage(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error)
}

type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"post_id": post.ID})
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer observability.TrackQuery("delete", "posts")()
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error; err != nil {
		r.log.LogError(ctx, err, "delete")
		return err
	}
	r.log.LogDelete(ctx, map[string]interface{}{"post_id": id})
	return nil
}

func applyPostFilter(db *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.AuthorID != nil {
		db = db.Where("user_id = ?", *filter.AuthorID)
	}
	if filter.IDs != nil {
		db = db.Where("id IN ?", filter.IDs)
	}
	return db
}

// ListPage returns one page of posts, newest first. The id tie-break keeps
// pagination stable when posts share a creation timestamp.
func (r *postRepository) ListPage(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error) {
	defer observability.TrackQuery("list_page", "posts")()
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, "list_page", "posts")
	defer span.End()

	var posts []*models.Post
	err := applyPostFilter(r.db.WithContext(ctx), filter).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var total int64
	err := applyPostFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Count(&total).Error
	return total, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", authorID).
		Find(&posts).Error
	return posts, err
}

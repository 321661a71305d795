package repository

import (
	"context"

	"pixelgram/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavedRepository defines persistence operations for saved posts.
type SavedRepository interface {
	// Save records a bookmark and reports whether a new row was inserted.
	Save(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	// Unsave removes a bookmark and reports whether a row existed.
	Unsave(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	// AllSavedPostIDs returns every post the user has saved.
	AllSavedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	SavedPostIDs(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) ([]uuid.UUID, error)
}

type savedRepository struct {
	db *gorm.DB
}

// NewSavedRepository creates a new SavedRepository.
func NewSavedRepository(db *gorm.DB) SavedRepository {
	return &savedRepository{db: db}
}

func (r *savedRepository) Save(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	saved := models.PostSaved{UserID: userID, PostID: postID}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&saved)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *savedRepository) Unsave(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostSaved{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *savedRepository) AllSavedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.PostSaved{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &ids).Error
	return ids, err
}

func (r *savedRepository) SavedPostIDs(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.PostSaved{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	return ids, err
}

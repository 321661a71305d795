package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostSaved records that a user bookmarked a post. The (user, post) pair is
// unique, mirroring PostLike.
type PostSaved struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_post" json:"userId"`
	PostID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_post" json:"postId"`
	SavedAt time.Time `json:"savedAt"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a UUID primary key and stamps the save time in UTC.
func (s *PostSaved) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}
	return nil
}

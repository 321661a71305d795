package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostLike records that a user liked a post. The (user, post) pair is
// unique; concurrent duplicate likes resolve through the DB constraint.
type PostLike struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post" json:"userId"`
	PostID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post" json:"postId"`
	LikedAt time.Time `json:"likedAt"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns a UUID primary key and stamps the like time in UTC.
func (l *PostLike) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.LikedAt.IsZero() {
		l.LikedAt = time.Now().UTC()
	}
	return nil
}

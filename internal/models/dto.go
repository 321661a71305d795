package models

import (
	"time"

	"github.com/google/uuid"
)

// PostRead is the wire representation of a post, including the derived
// counts and per-viewer flags computed by the aggregation layer.
type PostRead struct {
	ID              uuid.UUID `json:"id"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"imageUrl"`
	UserID          uuid.UUID `json:"userId"`
	AuthorUsername  string    `json:"authorUsername"`
	AuthorEmail     string    `json:"authorEmail"`
	CreatedAt       time.Time `json:"createdAt"`
	LikesCount      int64     `json:"likesCount"`
	LikedByUser     bool      `json:"likedByUser"`
	CommentsCount   int64     `json:"commentsCount"`
	CommentedByUser bool      `json:"commentedByUser"`
	SavedByUser     bool      `json:"savedByUser"`
}

// PostResponse wraps a single created post.
type PostResponse struct {
	Post PostRead `json:"post"`
}

// PaginatedPosts is one page of a post feed. NextPage is absent on the
// last page.
type PaginatedPosts struct {
	Data     []PostRead `json:"data"`
	NextPage *int       `json:"nextPage"`
	Total    int64      `json:"total"`
}

// CommentRead is the wire representation of a comment.
type CommentRead struct {
	ID             uuid.UUID `json:"id"`
	PostID         uuid.UUID `json:"postId"`
	UserID         uuid.UUID `json:"userId"`
	AuthorUsername string    `json:"authorUsername"`
	AuthorEmail    string    `json:"authorEmail"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	ByUser         bool      `json:"byUser"`
}

// CommentResponse wraps a single created comment.
type CommentResponse struct {
	Comment CommentRead `json:"comment"`
}

// PaginatedComments is one page of a post's comments.
type PaginatedComments struct {
	Data     []CommentRead `json:"data"`
	NextPage *int          `json:"nextPage"`
	Total    int64         `json:"total"`
}

// UserPublicInfo is the public projection of a user.
type UserPublicInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Caption is the result of a caption generation request.
type Caption struct {
	Caption string `json:"caption"`
}

// NextPage computes the follow-up page number, or nil when the current
// page already covers the total.
func NextPage(page, pageSize int, total int64) *int {
	if int64(page)*int64(pageSize) < total {
		next := page + 1
		return &next
	}
	return nil
}

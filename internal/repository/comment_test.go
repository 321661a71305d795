package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommentRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	author := seedUser(t, db, "ada")
	post := seedPost(t, db, author, time.Now().UTC())

	comment := seedComment(t, db, author, post, "first!")

	got, err := repo.GetByID(ctx(), comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "first!", got.Content)
	assert.Equal(t, "ada", got.User.Username)
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)

	_, err := repo.GetByID(ctx(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCommentRepository_ListByPost_PagesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	author := seedUser(t, db, "ada")
	post := seedPost(t, db, author, time.Now().UTC())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		comment := seedComment(t, db, author, post, fmt.Sprintf("comment %d", i))
		comment.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Save(comment).Error)
	}

	page1, err := repo.ListByPost(ctx(), post.ID, 3, 0)
	require.NoError(t, err)
	require.Len(t, page1, 3)
	assert.Equal(t, "comment 4", page1[0].Content)
	assert.Equal(t, "comment 2", page1[2].Content)

	page2, err := repo.ListByPost(ctx(), post.ID, 3, 3)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "comment 1", page2[0].Content)

	total, err := repo.CountByPost(ctx(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	author := seedUser(t, db, "ada")
	post := seedPost(t, db, author, time.Now().UTC())
	comment := seedComment(t, db, author, post, "gone soon")

	require.NoError(t, repo.Delete(ctx(), comment.ID))

	_, err := repo.GetByID(ctx(), comment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCommentRepository_BatchQueries(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	author := seedUser(t, db, "ada")
	fan := seedUser(t, db, "grace")

	now := time.Now().UTC()
	discussed := seedPost(t, db, author, now)
	quiet := seedPost(t, db, author, now.Add(time.Minute))

	seedComment(t, db, fan, discussed, "one")
	seedComment(t, db, fan, discussed, "two")
	seedComment(t, db, author, discussed, "three")

	ids := []uuid.UUID{discussed.ID, quiet.ID}

	counts, err := repo.CountsByPost(ctx(), ids)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[discussed.ID])
	assert.Zero(t, counts[quiet.ID])

	// fan commented twice on the same post; the ID must appear once.
	commented, err := repo.CommentedPostIDs(ctx(), fan.ID, ids)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{discussed.ID}, commented)
}

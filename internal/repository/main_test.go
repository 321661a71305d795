package repository

import (
	"context"
	"testing"
	"time"

	"pixelgram/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Each test gets its own named in-memory database so parallel tests
	// and GORM's connection pool see the same schema.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostLike{},
		&models.PostComment{},
		&models.PostSaved{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, author *models.User, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:          uuid.New(),
		Description: "a tiny landscape",
		ImageURL:    "https://storage.example.com/images/" + uuid.NewString() + ".png",
		UserID:      author.ID,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, author *models.User, post *models.Post, content string) *models.PostComment {
	t.Helper()
	comment := &models.PostComment{
		ID:      uuid.New(),
		PostID:  post.ID,
		UserID:  author.ID,
		Content: content,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func ctx() context.Context {
	return context.Background()
}

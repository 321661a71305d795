package server

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"

	"pixelgram/internal/config"
	"pixelgram/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubStore is an in-memory storage.ObjectStore.
type stubStore struct {
	uploads  [][]byte
	deleted  []string
	uploadFn func(ctx context.Context, png []byte) (string, error)
	deleteFn func(ctx context.Context, fileURL string) error
}

func (s *stubStore) Upload(ctx context.Context, png []byte) (string, error) {
	if s.uploadFn != nil {
		return s.uploadFn(ctx, png)
	}
	s.uploads = append(s.uploads, png)
	return "https://cdn.example.com/storage/v1/object/public/images/" + uuid.NewString() + ".png", nil
}

func (s *stubStore) Delete(ctx context.Context, fileURL string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, fileURL)
	}
	s.deleted = append(s.deleted, fileURL)
	return nil
}

// stubCaptioner is a canned captions.Captioner.
type stubCaptioner struct {
	captionFn func(ctx context.Context, png []byte) (string, error)
}

func (s *stubCaptioner) GenerateCaption(ctx context.Context, png []byte) (string, error) {
	if s.captionFn != nil {
		return s.captionFn(ctx, png)
	}
	return "a tiny pixel scene", nil
}

type testEnv struct {
	server    *Server
	db        *gorm.DB
	store     *stubStore
	captioner *stubCaptioner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

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
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		Port:       "8375",
		JWTSecret:  "test-secret",
		Env:        "test",
		MaxImageMB: 5,
		ImageSize:  128,
	}

	store := &stubStore{}
	captioner := &stubCaptioner{}

	srv, err := NewServerWithDeps(cfg, db, nil, store, captioner)
	require.NoError(t, err)

	return &testEnv{server: srv, db: db, store: store, captioner: captioner}
}

// appAs builds a Fiber app with the domain routes mounted behind a stub
// auth layer acting as the given user.
func (e *testEnv) appAs(userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})

	s := e.server
	api := app.Group("/api")
	posts := api.Group("/posts")
	posts.Post("/", s.CreatePost)
	posts.Get("/", s.GetPosts)
	posts.Get("/saved", s.GetSavedPosts)
	posts.Post("/:id/like", s.LikePost)
	posts.Delete("/:id/like", s.UnlikePost)
	posts.Post("/:id/save", s.SavePost)
	posts.Delete("/:id/save", s.UnsavePost)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", s.CreateComment)
	posts.Delete("/:id/comments/:commentId", s.DeleteComment)
	posts.Delete("/:id", s.DeletePost)

	users := api.Group("/users")
	users.Delete("/me", s.DeleteMe)
	users.Get("/:id/info", s.GetUserInfo)

	api.Post("/captions", s.GenerateCaption)

	return app
}

func (e *testEnv) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedPost(t *testing.T, author *models.User, description string) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:          uuid.New(),
		Description: description,
		ImageURL:    "https://cdn.example.com/storage/v1/object/public/images/" + uuid.NewString() + ".png",
		UserID:      author.ID,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, e.db.Create(post).Error)
	return post
}

// multipartImage builds a multipart body with a file part carrying the
// given content type, plus optional extra form fields.
func multipartImage(t *testing.T, contentType string, data []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="art.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

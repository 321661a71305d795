package service

import (
	"context"
	"errors"
	"testing"

	"pixelgram/internal/models"
	"pixelgram/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uuid.UUID) (*models.Post, error)
	deleteFn       func(context.Context, uuid.UUID) error
	listPageFn     func(context.Context, repository.PostFilter, int, int) ([]*models.Post, error)
	countFn        func(context.Context, repository.PostFilter) (int64, error)
	listByAuthorFn func(context.Context, uuid.UUID) ([]*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ListPage(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]*models.Post, error) {
	return s.listPageFn(ctx, filter, limit, offset)
}
func (s *postRepoStub) Count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	return s.countFn(ctx, filter)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*models.Post, error) { return &models.Post{}, nil },
		deleteFn:  func(_ context.Context, _ uuid.UUID) error { return nil },
		listPageFn: func(_ context.Context, _ repository.PostFilter, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		countFn:        func(_ context.Context, _ repository.PostFilter) (int64, error) { return 0, nil },
		listByAuthorFn: func(_ context.Context, _ uuid.UUID) ([]*models.Post, error) { return nil, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	likeFn         func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	unlikeFn       func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	countsByPostFn func(context.Context, []uuid.UUID) (map[uuid.UUID]int64, error)
	likedPostIDsFn func(context.Context, uuid.UUID, []uuid.UUID) ([]uuid.UUID, error)
}

func (s *likeRepoStub) Like(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	return s.likeFn(ctx, userID, postID)
}
func (s *likeRepoStub) Unlike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *likeRepoStub) CountsByPost(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return s.countsByPostFn(ctx, postIDs)
}
func (s *likeRepoStub) LikedPostIDs(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) ([]uuid.UUID, error) {
	return s.likedPostIDsFn(ctx, userID, postIDs)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		likeFn:   func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
		unlikeFn: func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
		countsByPostFn: func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]int64, error) {
			return map[uuid.UUID]int64{}, nil
		},
		likedPostIDsFn: func(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]uuid.UUID, error) {
			return nil, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn           func(context.Context, *models.PostComment) error
	getByIDFn          func(context.Context, uuid.UUID) (*models.PostComment, error)
	deleteFn           func(context.Context, uuid.UUID) error
	listByPostFn       func(context.Context, uuid.UUID, int, int) ([]*models.PostComment, error)
	countByPostFn      func(context.Context, uuid.UUID) (int64, error)
	countsByPostFn     func(context.Context, []uuid.UUID) (map[uuid.UUID]int64, error)
	commentedPostIDsFn func(context.Context, uuid.UUID, []uuid.UUID) ([]uuid.UUID, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.PostComment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.PostComment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*models.PostComment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *commentRepoStub) CountsByPost(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return s.countsByPostFn(ctx, postIDs)
}
func (s *commentRepoStub) CommentedPostIDs(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) ([]uuid.UUID, error) {
	return s.commentedPostIDsFn(ctx, userID, postIDs)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.PostComment) error { return nil },
		getByIDFn: func(_ context.Context, _ uuid.UUID) (*models.PostComment, error) {
			return &models.PostComment{}, nil
		},
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
		listByPostFn: func(_ context.Context, _ uuid.UUID, _, _ int) ([]*models.PostComment, error) {
			return nil, nil
		},
		countByPostFn: func(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil },
		countsByPostFn: func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]int64, error) {
			return map[uuid.UUID]int64{}, nil
		},
		commentedPostIDsFn: func(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]uuid.UUID, error) {
			return nil, nil
		},
	}
}

// savedRepoStub is a stub for repository.SavedRepository.
type savedRepoStub struct {
	saveFn            func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	unsaveFn          func(context.Context, uuid.UUID, uuid.UUID) (bool, error)
	allSavedPostIDsFn func(context.Context, uuid.UUID) ([]uuid.UUID, error)
	savedPostIDsFn    func(context.Context, uuid.UUID, []uuid.UUID) ([]uuid.UUID, error)
}

func (s *savedRepoStub) Save(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	return s.saveFn(ctx, userID, postID)
}
func (s *savedRepoStub) Unsave(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	return s.unsaveFn(ctx, userID, postID)
}
func (s *savedRepoStub) AllSavedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.allSavedPostIDsFn(ctx, userID)
}
func (s *savedRepoStub) SavedPostIDs(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) ([]uuid.UUID, error) {
	return s.savedPostIDsFn(ctx, userID, postIDs)
}

func noopSavedRepo() *savedRepoStub {
	return &savedRepoStub{
		saveFn:            func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
		unsaveFn:          func(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil },
		allSavedPostIDsFn: func(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) { return nil, nil },
		savedPostIDsFn: func(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]uuid.UUID, error) {
			return nil, nil
		},
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn        func(context.Context, uuid.UUID) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updateIdentityFn func(context.Context, uuid.UUID, string, string) error
	deleteFn         func(context.Context, uuid.UUID) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateIdentity(ctx context.Context, id uuid.UUID, username, email string) error {
	return s.updateIdentityFn(ctx, id, username, email)
}
func (s *userRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, _ uuid.UUID) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return &models.User{}, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateIdentityFn: func(_ context.Context, _ uuid.UUID, _ string, _ string) error {
			return nil
		},
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// objectStoreStub is a stub for storage.ObjectStore.
type objectStoreStub struct {
	uploadFn func(context.Context, []byte) (string, error)
	deleteFn func(context.Context, string) error
}

func (s *objectStoreStub) Upload(ctx context.Context, png []byte) (string, error) {
	return s.uploadFn(ctx, png)
}
func (s *objectStoreStub) Delete(ctx context.Context, fileURL string) error {
	return s.deleteFn(ctx, fileURL)
}

func noopObjectStore() *objectStoreStub {
	return &objectStoreStub{
		uploadFn: func(_ context.Context, _ []byte) (string, error) {
			return "https://cdn.example.com/storage/v1/object/public/images/test.png", nil
		},
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
}

// captionerStub is a stub for captions.Captioner.
type captionerStub struct {
	generateCaptionFn func(context.Context, []byte) (string, error)
}

func (s *captionerStub) GenerateCaption(ctx context.Context, png []byte) (string, error) {
	return s.generateCaptionFn(ctx, png)
}

func assertAppErrorCode(t *testing.T, err error, code, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func assertValidationError(t *testing.T, err error, message string) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR", message)
}

func assertNotFoundError(t *testing.T, err error, message string) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND", message)
}

func assertForbiddenError(t *testing.T, err error, message string) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN", message)
}

func assertConflictError(t *testing.T, err error, message string) {
	t.Helper()
	assertAppErrorCode(t, err, "CONFLICT", message)
}

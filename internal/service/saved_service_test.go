package service

import (
	"context"
	"testing"

	"pixelgram/internal/models"
	"pixelgram/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSavedService(postRepo *postRepoStub, savedRepo *savedRepoStub, likeRepo *likeRepoStub, commentRepo *commentRepoStub) *SavedService {
	posts := newPostService(postRepo, likeRepo, commentRepo, savedRepo, noopUserRepo(), noopObjectStore())
	return NewSavedService(postRepo, savedRepo, posts)
}

func TestSavedService_Save(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	postID := uuid.New()

	t.Run("unknown post", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*models.Post, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := newSavedService(postRepo, noopSavedRepo(), noopLikeRepo(), noopCommentRepo())

		err := svc.Save(context.Background(), userID, postID)
		assertNotFoundError(t, err, "Post not found")
	})

	t.Run("first save succeeds", func(t *testing.T) {
		t.Parallel()
		svc := newSavedService(noopPostRepo(), noopSavedRepo(), noopLikeRepo(), noopCommentRepo())
		require.NoError(t, svc.Save(context.Background(), userID, postID))
	})

	t.Run("second save conflicts", func(t *testing.T) {
		t.Parallel()
		savedRepo := noopSavedRepo()
		savedRepo.saveFn = func(_ context.Context, _, _ uuid.UUID) (bool, error) { return false, nil }
		svc := newSavedService(noopPostRepo(), savedRepo, noopLikeRepo(), noopCommentRepo())

		err := svc.Save(context.Background(), userID, postID)
		assertConflictError(t, err, "Post already saved")
	})
}

func TestSavedService_Unsave(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	postID := uuid.New()

	t.Run("existing save removed", func(t *testing.T) {
		t.Parallel()
		svc := newSavedService(noopPostRepo(), noopSavedRepo(), noopLikeRepo(), noopCommentRepo())
		require.NoError(t, svc.Unsave(context.Background(), userID, postID))
	})

	t.Run("missing save rejected", func(t *testing.T) {
		t.Parallel()
		savedRepo := noopSavedRepo()
		savedRepo.unsaveFn = func(_ context.Context, _, _ uuid.UUID) (bool, error) { return false, nil }
		svc := newSavedService(noopPostRepo(), savedRepo, noopLikeRepo(), noopCommentRepo())

		err := svc.Unsave(context.Background(), userID, postID)
		assertValidationError(t, err, "Post not saved")
	})
}

func TestSavedService_ListSaved_EmptyShortCircuit(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.listPageFn = func(_ context.Context, _ repository.PostFilter, _, _ int) ([]*models.Post, error) {
		t.Fatal("posts table must not be queried for an empty saved set")
		return nil, nil
	}
	postRepo.countFn = func(_ context.Context, _ repository.PostFilter) (int64, error) {
		t.Fatal("posts table must not be queried for an empty saved set")
		return 0, nil
	}

	svc := newSavedService(postRepo, noopSavedRepo(), noopLikeRepo(), noopCommentRepo())

	page, err := svc.ListSaved(context.Background(), ListSavedInput{ViewerID: uuid.New(), Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.NotNil(t, page.Data)
	assert.Nil(t, page.NextPage)
	assert.Zero(t, page.Total)
}

func TestSavedService_ListSaved(t *testing.T) {
	t.Parallel()

	viewerID := uuid.New()
	author := models.User{ID: uuid.New(), Username: "artist", Email: "artist@example.com"}
	saved := &models.Post{ID: uuid.New(), Description: "saved one", UserID: author.ID, User: author}

	savedRepo := noopSavedRepo()
	savedRepo.allSavedPostIDsFn = func(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
		assert.Equal(t, viewerID, userID)
		return []uuid.UUID{saved.ID}, nil
	}
	savedRepo.savedPostIDsFn = func(_ context.Context, _ uuid.UUID, _ []uuid.UUID) ([]uuid.UUID, error) {
		return []uuid.UUID{saved.ID}, nil
	}

	postRepo := noopPostRepo()
	postRepo.listPageFn = func(_ context.Context, filter repository.PostFilter, limit, offset int) ([]*models.Post, error) {
		assert.Equal(t, []uuid.UUID{saved.ID}, filter.IDs)
		assert.Equal(t, 10, limit)
		assert.Equal(t, 0, offset)
		return []*models.Post{saved}, nil
	}
	postRepo.countFn = func(_ context.Context, filter repository.PostFilter) (int64, error) {
		assert.Equal(t, []uuid.UUID{saved.ID}, filter.IDs)
		return 1, nil
	}

	svc := newSavedService(postRepo, savedRepo, noopLikeRepo(), noopCommentRepo())

	page, err := svc.ListSaved(context.Background(), ListSavedInput{ViewerID: viewerID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.True(t, page.Data[0].SavedByUser)
	assert.Equal(t, int64(1), page.Total)
	assert.Nil(t, page.NextPage)
}

package database

import (
	"testing"

	modelspkg "pixelgram/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesAllEntities(t *testing.T) {
	var (
		user, post, like, comment, saved bool
	)
	for _, model := range PersistentModels() {
		switch model.(type) {
		case *modelspkg.User:
			user = true
		case *modelspkg.Post:
			post = true
		case *modelspkg.PostLike:
			like = true
		case *modelspkg.PostComment:
			comment = true
		case *modelspkg.PostSaved:
			saved = true
		}
	}
	require.True(t, user && post && like && comment && saved,
		"PersistentModels should include every schema-managed entity")
}

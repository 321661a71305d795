// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"pixelgram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var pixelSubjects = []string{
	"knight", "slime", "wizard", "dragon", "castle", "forest", "dungeon",
	"potion", "sword", "shield", "mushroom", "ghost", "skeleton", "cat",
	"fox", "owl", "robot", "spaceship", "planet", "sunset", "waterfall",
	"lighthouse", "campfire", "treasure chest", "tavern", "windmill",
}

var pixelMoods = []string{
	"cozy", "moody", "retro", "glowing", "tiny", "haunted", "sleepy",
	"chunky", "dithered", "neon", "pastel", "monochrome", "isometric",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// PixelDescription generates a short caption in the register of real posts.
func (f *Factory) PixelDescription() string {
	subject := pixelSubjects[f.r.Intn(len(pixelSubjects))]
	mood := pixelMoods[f.r.Intn(len(pixelMoods))]

	templates := []string{
		"a %s %s",
		"%s %s, 1-bit palette",
		"tried drawing a %s %s today",
		"little %s %s for the jam",
		"%s %s wip",
	}
	return fmt.Sprintf(templates[f.r.Intn(len(templates))], mood, subject)
}

// PixelImageURL generates a stable placeholder URL shaped like the real
// storage bucket's public URLs.
func (f *Factory) PixelImageURL() string {
	return fmt.Sprintf("https://demo.supabase.co/storage/v1/object/public/images/%s.png", uuid.NewString())
}

// CreateUser constructs and persists a sample models.User. Optional
// override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(10, 999))
	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a post for the given author with a
// created_at spread over the past maxDays days.
func (f *Factory) CreatePost(author *models.User, maxDays int, overrides ...func(*models.Post)) (*models.Post, error) {
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.r.Intn(maxDays))*24*time.Hour +
		time.Duration(f.r.Intn(24))*time.Hour +
		time.Duration(f.r.Intn(60))*time.Minute

	post := &models.Post{
		Description: f.PixelDescription(),
		ImageURL:    f.PixelImageURL(),
		UserID:      author.ID,
		CreatedAt:   time.Now().UTC().Add(-back),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// LikePost records a like; duplicate pairs are silently skipped.
func (f *Factory) LikePost(user *models.User, post *models.Post) error {
	like := &models.PostLike{UserID: user.ID, PostID: post.ID}
	err := f.db.Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		FirstOrCreate(like).Error
	return err
}

// SavePost records a bookmark; duplicate pairs are silently skipped.
func (f *Factory) SavePost(user *models.User, post *models.Post) error {
	saved := &models.PostSaved{UserID: user.ID, PostID: post.ID}
	err := f.db.Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		FirstOrCreate(saved).Error
	return err
}

// CommentPost attaches a generated comment from user to post.
func (f *Factory) CommentPost(user *models.User, post *models.Post) (*models.PostComment, error) {
	remarks := []string{
		"love the palette on this",
		"the dithering here is so clean",
		"how long did this take?",
		"instant save",
		"the %s vibes are strong",
		"teach me your ways",
		"this would make a great tileset",
	}
	content := remarks[f.r.Intn(len(remarks))]
	if strings.Contains(content, "%s") {
		content = fmt.Sprintf(content, pixelMoods[f.r.Intn(len(pixelMoods))])
	}

	comment := &models.PostComment{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: content,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

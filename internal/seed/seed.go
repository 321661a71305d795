package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pixelgram/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// MaxDays bounds how far back generated post timestamps reach.
	MaxDays int
}

// Seeder populates the database with demo users, posts and engagement.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	r       *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		r:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Child tables go first so the deletes
// work on databases without cascading foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.PostLike{},
		&models.PostSaved{},
		&models.PostComment{},
		&models.Post{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}

// Seed populates the database per opts and returns the created users.
func (s *Seeder) Seed(opts Options) ([]*models.User, error) {
	log.Printf("seeding %d users and %d posts", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return nil, fmt.Errorf("clear existing data: %w", err)
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	if len(users) == 0 {
		return users, nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.r.Intn(len(users))]
		post, err := s.factory.CreatePost(author, opts.MaxDays)
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("created %d posts", len(posts))

	if err := s.seedEngagement(users, posts); err != nil {
		return nil, err
	}

	log.Println("seeding complete")
	return users, nil
}

// seedEngagement sprinkles likes, saves and comments across the mesh of
// users and posts so feeds look lived-in.
func (s *Seeder) seedEngagement(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID {
				continue
			}
			if s.r.Float32() < 0.35 {
				if err := s.factory.LikePost(user, post); err != nil {
					return fmt.Errorf("like post: %w", err)
				}
			}
			if s.r.Float32() < 0.15 {
				if err := s.factory.SavePost(user, post); err != nil {
					return fmt.Errorf("save post: %w", err)
				}
			}
			if s.r.Float32() < 0.2 {
				if _, err := s.factory.CommentPost(user, post); err != nil {
					return fmt.Errorf("comment post: %w", err)
				}
			}
		}
	}
	return nil
}

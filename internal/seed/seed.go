package seed

import (
	"fmt"
	"math/rand"

	"vidtube/internal/middleware"
	"vidtube/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user can log in with.
const DefaultPassword = "password123"

// Options controls how much data Run creates.
type Options struct {
	Users            int
	VideosPerUser    int
	CommentsPerVideo int
	TweetsPerUser    int
	// Seed makes runs reproducible. Zero picks a fixed default.
	Seed  int64
	Clean bool
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Summary reports what a run created.
type Summary struct {
	Users         int
	Videos        int
	Comments      int
	Tweets        int
	Playlists     int
	Subscriptions int
	Likes         int
}

// Seeder populates a database with a connected set of demo channels.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder bound to db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll deletes every row the application owns, children first.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"likes", "playlist_videos", "playlists", "comments", "watch_history",
		"subscriptions", "tweets", "videos", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	middleware.Logger.Info("Cleared seeded tables", "tables", len(tables))
	return nil
}

// Run creates users and their content, then links them with
// subscriptions and likes.
func (s *Seeder) Run(opts Options) (*Summary, error) {
	if opts.Users <= 0 {
		return nil, fmt.Errorf("users must be positive, got %d", opts.Users)
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Clean {
		if err := s.ClearAll(); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	f := NewFactory(s.db, opts.Seed, string(hash))
	rng := rand.New(rand.NewSource(opts.Seed))
	sum := &Summary{}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u, err := f.User()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	sum.Users = len(users)

	var videos []*models.Video
	var comments []*models.Comment
	var tweets []*models.Tweet
	for _, u := range users {
		var own []*models.Video
		for i := 0; i < opts.VideosPerUser; i++ {
			v, err := f.Video(u)
			if err != nil {
				return nil, err
			}
			own = append(own, v)
		}
		videos = append(videos, own...)

		for i := 0; i < opts.TweetsPerUser; i++ {
			t, err := f.Tweet(u)
			if err != nil {
				return nil, err
			}
			tweets = append(tweets, t)
		}

		if len(own) > 1 {
			if _, err := f.Playlist(u, own[:len(own)/2+1]); err != nil {
				return nil, err
			}
			sum.Playlists++
		}
	}
	sum.Videos = len(videos)
	sum.Tweets = len(tweets)

	for _, v := range videos {
		for i := 0; i < opts.CommentsPerVideo; i++ {
			c, err := f.Comment(users[rng.Intn(len(users))], v)
			if err != nil {
				return nil, err
			}
			comments = append(comments, c)
		}
	}
	sum.Comments = len(comments)

	// Each user follows about a third of the other channels and likes a
	// sample of what they see.
	for _, u := range users {
		for _, channel := range users {
			if channel.ID == u.ID || rng.Intn(3) != 0 {
				continue
			}
			if err := f.Subscribe(u, channel); err != nil {
				return nil, err
			}
			sum.Subscriptions++
		}
		n, err := likeSample(f, rng, u, videos, comments, tweets)
		if err != nil {
			return nil, err
		}
		sum.Likes += n
	}

	middleware.Logger.Info("Seeding completed",
		"users", sum.Users,
		"videos", sum.Videos,
		"comments", sum.Comments,
		"tweets", sum.Tweets,
		"subscriptions", sum.Subscriptions,
		"likes", sum.Likes,
	)
	return sum, nil
}

func likeSample(f *Factory, rng *rand.Rand, u *models.User, videos []*models.Video, comments []*models.Comment, tweets []*models.Tweet) (int, error) {
	n := 0
	for _, v := range videos {
		if rng.Intn(4) == 0 {
			if err := f.Like(u, models.LikeTargetVideo, v.ID); err != nil {
				return n, err
			}
			n++
		}
	}
	for _, c := range comments {
		if rng.Intn(6) == 0 {
			if err := f.Like(u, models.LikeTargetComment, c.ID); err != nil {
				return n, err
			}
			n++
		}
	}
	for _, t := range tweets {
		if rng.Intn(5) == 0 {
			if err := f.Like(u, models.LikeTargetTweet, t.ID); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

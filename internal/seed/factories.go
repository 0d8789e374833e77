// Package seed provides helpers to create demo data for development
// databases and tests.
package seed

import (
	"fmt"
	"strings"
	"time"

	"vidtube/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db       *gorm.DB
	faker    *gofakeit.Faker
	password string
	maxDays  int
}

// NewFactory creates a Factory. A fixed seed makes the generated data
// reproducible; passwordHash is stored on every user it creates.
func NewFactory(db *gorm.DB, seed int64, passwordHash string) *Factory {
	return &Factory{
		db:       db,
		faker:    gofakeit.New(seed),
		password: passwordHash,
		maxDays:  90,
	}
}

// createdAt spreads timestamps over the last maxDays days.
func (f *Factory) createdAt() time.Time {
	back := time.Duration(f.faker.Number(0, f.maxDays*24*60)) * time.Minute
	return time.Now().Add(-back)
}

// User creates a user with a unique generated username.
func (f *Factory) User(overrides ...func(*models.User)) (*models.User, error) {
	first := f.faker.FirstName()
	last := f.faker.LastName()
	handle := strings.ToLower(fmt.Sprintf("%s_%s_%d", first, last, f.faker.Number(100, 99999)))

	user := &models.User{
		Username:   handle,
		Email:      handle + "@" + f.faker.DomainName(),
		FullName:   first + " " + last,
		Avatar:     fmt.Sprintf("https://picsum.photos/seed/%s/256/256", f.faker.UUID()),
		CoverImage: fmt.Sprintf("https://picsum.photos/seed/%s/1280/320", f.faker.UUID()),
		Password:   f.password,
	}
	user.CreatedAt = f.createdAt()
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Video creates a video owned by owner. Roughly one in ten is unpublished.
func (f *Factory) Video(owner *models.User, overrides ...func(*models.Video)) (*models.Video, error) {
	id := f.faker.UUID()
	video := &models.Video{
		VideoFile:         "https://media.example.com/videos/" + id + ".mp4",
		VideoFilePublicID: "seed/videos/" + id,
		Thumbnail:         fmt.Sprintf("https://picsum.photos/seed/%s/640/360", id),
		ThumbnailPublicID: "seed/images/" + id,
		Title:             strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 8)), "."),
		Description:       f.faker.Paragraph(1, 3, 12, " "),
		Duration:          float64(f.faker.Number(15, 3600)),
		Views:             int64(f.faker.Number(0, 50000)),
		IsPublished:       f.faker.Number(1, 10) > 1,
		OwnerID:           owner.ID,
		CreatedAt:         f.createdAt(),
	}
	for _, override := range overrides {
		override(video)
	}
	if err := f.db.Create(video).Error; err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	return video, nil
}

// Comment creates a comment by author on video.
func (f *Factory) Comment(author *models.User, video *models.Video) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   f.faker.Sentence(f.faker.Number(4, 20)),
		VideoID:   video.ID,
		OwnerID:   author.ID,
		CreatedAt: f.createdAt(),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// Tweet creates a channel post by author.
func (f *Factory) Tweet(author *models.User) (*models.Tweet, error) {
	tweet := &models.Tweet{
		Content:   f.faker.Quote(),
		OwnerID:   author.ID,
		CreatedAt: f.createdAt(),
	}
	if err := f.db.Create(tweet).Error; err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}
	return tweet, nil
}

// Playlist creates a playlist for owner holding videos.
func (f *Factory) Playlist(owner *models.User, videos []*models.Video) (*models.Playlist, error) {
	playlist := &models.Playlist{
		Name:        f.faker.RandomString([]string{"Mix", "Favorites", "Watch Later", "Picks"}) + ": " + f.faker.HipsterWord(),
		Description: f.faker.HipsterSentence(8),
		OwnerID:     owner.ID,
		CreatedAt:   f.createdAt(),
	}
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(playlist).Error; err != nil {
			return fmt.Errorf("create playlist: %w", err)
		}
		for _, v := range videos {
			row := models.PlaylistVideo{PlaylistID: playlist.ID, VideoID: v.ID}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("add video %d to playlist: %w", v.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	playlist.Videos = videos
	return playlist, nil
}

// Subscribe makes subscriber follow channel.
func (f *Factory) Subscribe(subscriber, channel *models.User) error {
	sub := &models.Subscription{SubscriberID: subscriber.ID, ChannelID: channel.ID}
	if err := f.db.Create(sub).Error; err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

// Like records user liking exactly one target.
func (f *Factory) Like(user *models.User, target models.LikeTarget, id uint) error {
	like := &models.Like{LikedByID: user.ID}
	switch target {
	case models.LikeTargetComment:
		like.CommentID = &id
	case models.LikeTargetTweet:
		like.TweetID = &id
	default:
		like.VideoID = &id
	}
	if err := f.db.Create(like).Error; err != nil {
		return fmt.Errorf("create %s like: %w", target, err)
	}
	return nil
}

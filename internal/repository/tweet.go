package repository

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/query"

	"gorm.io/gorm"
)

// TweetRepository defines interface for tweet operations
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	List(ctx context.Context, plan *query.Plan) ([]*models.Tweet, int64, error)
	UpdateContent(ctx context.Context, id uint, content string) error
	Delete(ctx context.Context, id uint) error
}

type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new TweetRepository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Create(tweet).Error, "Tweet", nil)
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).Preload("Owner").First(&tweet, id).Error; err != nil {
		return nil, translate(err, "Tweet", id)
	}
	return &tweet, nil
}

func (r *tweetRepository) List(ctx context.Context, plan *query.Plan) ([]*models.Tweet, int64, error) {
	return list[models.Tweet](ctx, r.db, plan)
}

func (r *tweetRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	res := r.db.WithContext(ctx).Model(&models.Tweet{}).Where("id = ?", id).Update("content", content)
	return affected(res, "Tweet", id)
}

// Delete removes the tweet and its likes.
func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return translate(err, "Like", id)
		}
		return affected(tx.Delete(&models.Tweet{}, id), "Tweet", id)
	})
}

package repository

import (
	"context"

	"vidtube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines interface for like operations
type LikeRepository interface {
	Toggle(ctx context.Context, userID uint, target models.LikeTarget, targetID uint) (bool, error)
	LikedVideos(ctx context.Context, userID uint) ([]*models.Video, error)
	CountForVideo(ctx context.Context, videoID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the user's like on the target and reports whether it is now
// liked.
func (r *likeRepository) Toggle(ctx context.Context, userID uint, target models.LikeTarget, targetID uint) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("liked_by_id = ? AND "+target.Column()+" = ?", userID, targetID).
			Delete(&models.Like{})
		if res.Error != nil {
			return translate(res.Error, "Like", targetID)
		}
		if res.RowsAffected > 0 {
			return nil
		}

		like := models.Like{LikedByID: userID}
		id := targetID
		switch target {
		case models.LikeTargetComment:
			like.CommentID = &id
		case models.LikeTargetTweet:
			like.TweetID = &id
		default:
			like.VideoID = &id
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return translate(err, "Like", targetID)
		}
		added = true
		return nil
	})
	return added, err
}

// LikedVideos returns the videos the user liked, newest like first. Other
// channels' unpublished videos are hidden.
func (r *likeRepository) LikedVideos(ctx context.Context, userID uint) ([]*models.Video, error) {
	videos := make([]*models.Video, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Select("videos.*").
		Joins("JOIN likes ON likes.video_id = videos.id AND likes.liked_by_id = ?", userID).
		Joins(ownerJoin("videos")).
		Where("videos.is_published = ? OR videos.owner_id = ?", true, userID).
		Order("likes.created_at DESC").
		Order("videos.id DESC").
		Preload("Owner").
		Find(&videos).Error
	if err != nil {
		return nil, translate(err, "Like", userID)
	}
	return videos, nil
}

func (r *likeRepository) CountForVideo(ctx context.Context, videoID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, translate(err, "Like", videoID)
}

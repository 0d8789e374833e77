package repository

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/query"

	"gorm.io/gorm"
)

// VideoSortKeys whitelists the API sort keys for video listings.
var VideoSortKeys = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

// VideoRepository defines interface for video operations
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	List(ctx context.Context, plan *query.Plan) ([]*models.Video, int64, error)
	IncrementViews(ctx context.Context, id uint) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new VideoRepository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Create(video).Error, "Video", video.Title)
}

func (r *videoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).Preload("Owner").First(&video, id).Error; err != nil {
		return nil, translate(err, "Video", id)
	}
	return &video, nil
}

func (r *videoRepository) List(ctx context.Context, plan *query.Plan) ([]*models.Video, int64, error) {
	return list[models.Video](ctx, r.db, plan)
}

// IncrementViews adds one view to a published video in a single statement.
func (r *videoRepository) IncrementViews(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("id = ? AND is_published = ?", id, true).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	return affected(res, "Video", id)
}

func (r *videoRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Video{}).Where("id = ?", id).Updates(fields)
	return affected(res, "Video", id)
}

// Delete removes the video with its comments, likes, playlist memberships
// and watch history in one transaction.
func (r *videoRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("video_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.Like{}).Error; err != nil {
			return translate(err, "Like", id)
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return translate(err, "Like", id)
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return translate(err, "Comment", id)
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return translate(err, "PlaylistVideo", id)
		}
		if err := tx.Where("video_id = ?", id).Delete(&models.WatchHistoryEntry{}).Error; err != nil {
			return translate(err, "WatchHistory", id)
		}
		return affected(tx.Delete(&models.Video{}, id), "Video", id)
	})
}

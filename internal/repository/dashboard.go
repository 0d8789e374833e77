package repository

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/query"

	"gorm.io/gorm"
)

// DashboardRepository computes read-side channel aggregates.
type DashboardRepository interface {
	ChannelStats(ctx context.Context, channelID uint) (*models.ChannelStats, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ChannelStats returns the channel totals. Every field is zero rather than
// missing when the channel has no activity.
func (r *dashboardRepository) ChannelStats(ctx context.Context, channelID uint) (*models.ChannelStats, error) {
	stats := &models.ChannelStats{}
	db := r.db.WithContext(ctx)

	var totals struct {
		Videos int64
		Views  int64
	}
	if err := db.Model(&models.Video{}).
		Select("COUNT(*) AS videos, COALESCE(SUM(views), 0) AS views").
		Where("owner_id = ?", channelID).
		Scan(&totals).Error; err != nil {
		return nil, translate(err, "Channel", channelID)
	}
	stats.TotalVideos = totals.Videos
	stats.TotalViews = totals.Views

	if err := db.Model(&models.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ?", channelID).
		Count(&stats.TotalLikes).Error; err != nil {
		return nil, translate(err, "Channel", channelID)
	}

	if err := db.Model(&models.Subscription{}).
		Joins(joinSQL("subscriptions", &query.Join{Table: "users", Alias: "peer", LocalKey: "subscriber_id", Live: true})).
		Where("subscriptions.channel_id = ?", channelID).
		Count(&stats.TotalSubscribers).Error; err != nil {
		return nil, translate(err, "Channel", channelID)
	}
	return stats, nil
}

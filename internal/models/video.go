package models

import "time"

// Video is an uploaded video with its thumbnail.
type Video struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	VideoFile         string    `gorm:"not null" json:"videoFile"`
	VideoFilePublicID string    `json:"-"`
	Thumbnail         string    `gorm:"not null" json:"thumbnail"`
	ThumbnailPublicID string    `json:"-"`
	Title             string    `gorm:"not null;index" json:"title"`
	Description       string    `gorm:"type:text;not null" json:"description"`
	Duration          float64   `gorm:"not null" json:"duration"`
	Views             int64     `gorm:"not null" json:"views"`
	IsPublished       bool      `gorm:"not null;index" json:"isPublished"`
	OwnerID           uint      `gorm:"not null;index" json:"ownerId"`
	Owner             *Owner    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt         time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ChannelStats aggregates a channel's totals for the dashboard.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalSubscribers int64 `json:"totalSubscribers"`
}

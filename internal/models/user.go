package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account and, when others subscribe to it, a channel.
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Username           string         `gorm:"uniqueIndex;not null;size:64" json:"username"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	FullName           string         `gorm:"not null;index" json:"fullName"`
	Avatar             string         `gorm:"not null" json:"avatar"`
	AvatarPublicID     string         `json:"-"`
	CoverImage         string         `json:"coverImage"`
	CoverImagePublicID string         `json:"-"`
	Password           string         `gorm:"not null" json:"-"`
	RefreshToken       string         `json:"-"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// Owner is the reduced user projection embedded in listings.
type Owner struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// TableName maps Owner onto the users table.
func (Owner) TableName() string {
	return "users"
}

// WatchHistoryEntry records that a user fetched a video. A (user, video)
// pair is stored at most once.
type WatchHistoryEntry struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	VideoID   uint      `gorm:"primaryKey;autoIncrement:false;index" json:"videoId"`
	CreatedAt time.Time `json:"watchedAt"`
}

func (WatchHistoryEntry) TableName() string {
	return "watch_history"
}

// ChannelProfile is the public view of a user as a channel.
type ChannelProfile struct {
	ID                        uint   `json:"id"`
	Username                  string `json:"username"`
	FullName                  string `json:"fullName"`
	Email                     string `json:"email"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"coverImage"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

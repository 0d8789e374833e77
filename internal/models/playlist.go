package models

import "time"

// Playlist is an owner-curated ordered set of videos.
type Playlist struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	OwnerID     uint      `gorm:"not null;index" json:"ownerId"`
	Owner       *Owner    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Videos      []*Video  `gorm:"-" json:"videos"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistVideo is one membership row; the composite key makes
// membership a set.
type PlaylistVideo struct {
	PlaylistID uint      `gorm:"primaryKey;autoIncrement:false"`
	VideoID    uint      `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt  time.Time `gorm:"index"`
}

package models

import "time"

// Comment is a text reply on a video.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	VideoID   uint      `gorm:"not null;index" json:"videoId"`
	OwnerID   uint      `gorm:"not null;index" json:"ownerId"`
	Owner     *Owner    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

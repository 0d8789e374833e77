package models

import "time"

// Tweet is a short channel post.
type Tweet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	OwnerID   uint      `gorm:"not null;index" json:"ownerId"`
	Owner     *Owner    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

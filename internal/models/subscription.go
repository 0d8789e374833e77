package models

import "time"

// Subscription links a subscriber to a channel. The row's existence is the
// subscription; the pair is unique.
type Subscription struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubscriberID uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel" json:"subscriberId"`
	ChannelID    uint      `gorm:"not null;uniqueIndex:idx_subscriber_channel;index" json:"channelId"`
	Subscriber   *Owner    `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	Channel      *Owner    `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

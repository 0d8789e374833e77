package models

import "time"

// LikeTarget names the kind of record a like points at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Like represents a user's like on exactly one of a video, comment or tweet.
// A user likes a given target at most once.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LikedByID uint      `gorm:"not null;index;uniqueIndex:idx_like_video;uniqueIndex:idx_like_comment;uniqueIndex:idx_like_tweet" json:"likedById"`
	VideoID   *uint     `gorm:"uniqueIndex:idx_like_video;index" json:"videoId,omitempty"`
	CommentID *uint     `gorm:"uniqueIndex:idx_like_comment" json:"commentId,omitempty"`
	TweetID   *uint     `gorm:"uniqueIndex:idx_like_tweet" json:"tweetId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Column returns the foreign key column for the target kind.
func (t LikeTarget) Column() string {
	switch t {
	case LikeTargetComment:
		return "comment_id"
	case LikeTargetTweet:
		return "tweet_id"
	default:
		return "video_id"
	}
}

package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/observability"
	"vidtube/internal/repository"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

// LikeResult reports the like state after a toggle.
type LikeResult struct {
	Liked bool `json:"liked"`
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
) *LikeService {
	return &LikeService{likeRepo: likeRepo, videoRepo: videoRepo, commentRepo: commentRepo, tweetRepo: tweetRepo}
}

func (s *LikeService) Toggle(ctx context.Context, actorID uint, target models.LikeTarget, targetID uint) (*LikeResult, error) {
	if err := s.targetVisible(ctx, actorID, target, targetID); err != nil {
		return nil, err
	}
	liked, err := s.likeRepo.Toggle(ctx, actorID, target, targetID)
	if err != nil {
		return nil, err
	}
	observability.ObserveToggle("like_"+string(target), liked)
	return &LikeResult{Liked: liked}, nil
}

func (s *LikeService) LikedVideos(ctx context.Context, actorID uint) ([]*models.Video, error) {
	return s.likeRepo.LikedVideos(ctx, actorID)
}

// targetVisible checks the target exists. Videos, and comments on videos,
// must also be visible to the actor.
func (s *LikeService) targetVisible(ctx context.Context, actorID uint, target models.LikeTarget, id uint) error {
	var err error
	switch target {
	case models.LikeTargetVideo:
		_, err = visibleVideo(ctx, s.videoRepo, id, &actorID)
	case models.LikeTargetComment:
		var comment *models.Comment
		if comment, err = s.commentRepo.GetByID(ctx, id); err == nil {
			_, err = visibleVideo(ctx, s.videoRepo, comment.VideoID, &actorID)
		}
	case models.LikeTargetTweet:
		_, err = s.tweetRepo.GetByID(ctx, id)
	default:
		err = models.NewValidationError("Unknown like target")
	}
	return err
}

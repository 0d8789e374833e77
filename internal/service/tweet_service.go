package service

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/query"
	"vidtube/internal/repository"
)

type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (s *TweetService) Create(ctx context.Context, actorID uint, content string) (*models.Tweet, error) {
	content, err := commentContent(content)
	if err != nil {
		return nil, err
	}
	tweet := &models.Tweet{Content: content, OwnerID: actorID}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return s.tweetRepo.GetByID(ctx, tweet.ID)
}

func (s *TweetService) ListByUser(ctx context.Context, userID uint, params ListParams) (*query.Result[*models.Tweet], error) {
	plan, err := params.plan("tweets", createdAtOnly)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	plan.Where(query.Eq{Column: "owner_id", Value: userID}).
		JoinOn(query.OwnerJoin("owner_id", "Owner"))
	tweets, total, err := s.tweetRepo.List(ctx, plan)
	if err != nil {
		return nil, err
	}
	return query.NewResult(tweets, total, plan.Page), nil
}

func (s *TweetService) Update(ctx context.Context, actorID, tweetID uint, content string) (*models.Tweet, error) {
	content, err := commentContent(content)
	if err != nil {
		return nil, err
	}
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actorID, tweet.OwnerID, "tweets"); err != nil {
		return nil, err
	}
	if err := s.tweetRepo.UpdateContent(ctx, tweetID, content); err != nil {
		return nil, err
	}
	return s.tweetRepo.GetByID(ctx, tweetID)
}

func (s *TweetService) Delete(ctx context.Context, actorID, tweetID uint) (*models.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actorID, tweet.OwnerID, "tweets"); err != nil {
		return nil, err
	}
	if err := s.tweetRepo.Delete(ctx, tweetID); err != nil {
		return nil, err
	}
	return tweet, nil
}

package service

import (
	"context"

	"vidtube/internal/cache"
	"vidtube/internal/models"
	"vidtube/internal/observability"
	"vidtube/internal/query"
	"vidtube/internal/repository"
)

type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
	cache    *cache.Store
}

// ToggleResult reports the relation state after a toggle.
type ToggleResult struct {
	Subscribed bool `json:"subscribed"`
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository, store *cache.Store) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo, cache: store}
}

// Toggle subscribes the actor to the channel, or unsubscribes when already
// subscribed.
func (s *SubscriptionService) Toggle(ctx context.Context, actorID, channelID uint) (*ToggleResult, error) {
	if actorID == channelID {
		return nil, models.NewValidationError("You cannot subscribe to yourself")
	}
	if err := s.channelExists(ctx, channelID); err != nil {
		return nil, err
	}

	added, err := s.subRepo.Toggle(ctx, actorID, channelID)
	if err != nil {
		return nil, err
	}
	observability.ObserveToggle("subscription", added)
	s.cache.Invalidate(ctx, cache.SubscriberCountKey(channelID))
	return &ToggleResult{Subscribed: added}, nil
}

func (s *SubscriptionService) SubscriberCount(ctx context.Context, channelID uint) (int64, error) {
	if err := s.channelExists(ctx, channelID); err != nil {
		return 0, err
	}
	var count int64
	err := s.cache.Aside(ctx, cache.SubscriberCountKey(channelID), &count, cache.SubscriberCountTTL, func() error {
		var err error
		count, err = s.subRepo.CountSubscribers(ctx, channelID)
		return err
	})
	return count, err
}

func (s *SubscriptionService) IsSubscribed(ctx context.Context, actorID, channelID uint) (bool, error) {
	if err := s.channelExists(ctx, channelID); err != nil {
		return false, err
	}
	return s.subRepo.IsSubscribed(ctx, actorID, channelID)
}

// SubscribedChannels lists the channels subscriberID follows. Only the
// subscriber may read it.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, actorID, subscriberID uint, params ListParams) (*query.Result[*models.Subscription], error) {
	if !isOwner(actorID, subscriberID) {
		return nil, models.NewForbiddenError("You can only view your own subscriptions")
	}
	plan, err := params.plan("subscriptions", createdAtOnly)
	if err != nil {
		return nil, err
	}
	plan.Where(query.Eq{Column: "subscriber_id", Value: subscriberID}).
		JoinOn(&query.Join{Table: "users", Alias: "channel", LocalKey: "channel_id", Live: true, Preload: "Channel"})

	subs, total, err := s.subRepo.List(ctx, plan)
	if err != nil {
		return nil, err
	}
	return query.NewResult(subs, total, plan.Page), nil
}

// Subscribers lists who follows channelID. Only the channel owner may read
// it.
func (s *SubscriptionService) Subscribers(ctx context.Context, actorID, channelID uint, params ListParams) (*query.Result[*models.Subscription], error) {
	if !isOwner(actorID, channelID) {
		return nil, models.NewForbiddenError("You can only view subscribers of your own channel")
	}
	plan, err := params.plan("subscriptions", createdAtOnly)
	if err != nil {
		return nil, err
	}
	plan.Where(query.Eq{Column: "channel_id", Value: channelID}).
		JoinOn(&query.Join{Table: "users", Alias: "subscriber", LocalKey: "subscriber_id", Live: true, Preload: "Subscriber"})

	subs, total, err := s.subRepo.List(ctx, plan)
	if err != nil {
		return nil, err
	}
	return query.NewResult(subs, total, plan.Page), nil
}

func (s *SubscriptionService) channelExists(ctx context.Context, channelID uint) error {
	if _, err := s.userRepo.GetByID(ctx, channelID); err != nil {
		if models.StatusFor(err) == 404 {
			return models.NewNotFoundError("Channel", channelID)
		}
		return err
	}
	return nil
}

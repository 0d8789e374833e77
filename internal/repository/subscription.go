package repository

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository defines interface for subscription operations
type SubscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error)
	CountSubscribers(ctx context.Context, channelID uint) (int64, error)
	CountSubscriptions(ctx context.Context, subscriberID uint) (int64, error)
	List(ctx context.Context, plan *query.Plan) ([]*models.Subscription, int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Toggle removes the pair if present, otherwise inserts it. It reports
// whether the subscription exists afterwards.
func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
			Delete(&models.Subscription{})
		if res.Error != nil {
			return translate(res.Error, "Subscription", channelID)
		}
		if res.RowsAffected > 0 {
			return nil
		}

		sub := models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&sub).Error; err != nil {
			return translate(err, "Subscription", channelID)
		}
		added = true
		return nil
	})
	return added, err
}

func (r *subscriptionRepository) IsSubscribed(ctx context.Context, subscriberID, channelID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, translate(err, "Subscription", channelID)
}

func (r *subscriptionRepository) CountSubscribers(ctx context.Context, channelID uint) (int64, error) {
	return r.countLive(ctx, "channel_id", "subscriber_id", channelID)
}

func (r *subscriptionRepository) CountSubscriptions(ctx context.Context, subscriberID uint) (int64, error) {
	return r.countLive(ctx, "subscriber_id", "channel_id", subscriberID)
}

// countLive counts rows keyed on column whose counterpart user still exists.
func (r *subscriptionRepository) countLive(ctx context.Context, column, counterpart string, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).
		Joins(joinSQL("subscriptions", &query.Join{Table: "users", Alias: "peer", LocalKey: counterpart, Live: true})).
		Where("subscriptions."+column+" = ?", id).
		Count(&count).Error
	return count, translate(err, "Subscription", id)
}

func (r *subscriptionRepository) List(ctx context.Context, plan *query.Plan) ([]*models.Subscription, int64, error) {
	return list[models.Subscription](ctx, r.db, plan)
}

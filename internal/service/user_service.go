package service

import (
	"context"
	"strings"

	"vidtube/internal/cache"
	"vidtube/internal/media"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
)

// UserService serves account and channel views.
type UserService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
	uploader media.Uploader
	cache    *cache.Store
}

type UpdateAccountInput struct {
	UserID   uint
	FullName string
	Email    string
}

func NewUserService(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	uploader media.Uploader,
	store *cache.Store,
) *UserService {
	return &UserService{userRepo: userRepo, subRepo: subRepo, uploader: uploader, cache: store}
}

func (s *UserService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *UserService) UpdateAccount(ctx context.Context, in UpdateAccountInput) (*models.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if fullName == "" || email == "" {
		return nil, models.NewValidationError("All fields are required")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, validationErr(err)
	}

	if err := s.userRepo.Update(ctx, in.UserID, map[string]any{
		"full_name": fullName,
		"email":     email,
	}); err != nil {
		return nil, err
	}
	return s.refreshed(ctx, in.UserID)
}

// UpdateAvatar replaces the avatar and destroys the previous asset.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, localPath string) (*models.User, error) {
	return s.replaceImage(ctx, userID, localPath, "avatar", "avatar_public_id", "avatar")
}

// UpdateCoverImage replaces the cover image and destroys the previous asset.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID uint, localPath string) (*models.User, error) {
	return s.replaceImage(ctx, userID, localPath, "cover_image", "cover_image_public_id", "cover image")
}

func (s *UserService) replaceImage(ctx context.Context, userID uint, localPath, urlColumn, idColumn, label string) (*models.User, error) {
	if localPath == "" {
		return nil, models.NewValidationError(strings.ToUpper(label[:1]) + label[1:] + " file is missing")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	previous := user.AvatarPublicID
	if idColumn == "cover_image_public_id" {
		previous = user.CoverImagePublicID
	}

	asset, err := s.uploader.Upload(ctx, localPath, media.KindImage)
	if err != nil {
		return nil, models.NewInternalErrorf("Failed to upload "+label, err)
	}
	if err := s.userRepo.Update(ctx, userID, map[string]any{
		urlColumn: asset.URL,
		idColumn:  asset.PublicID,
	}); err != nil {
		destroyQuietly(ctx, s.uploader, asset.PublicID, media.KindImage)
		return nil, err
	}
	destroyQuietly(ctx, s.uploader, previous, media.KindImage)
	return s.refreshed(ctx, userID)
}

func (s *UserService) refreshed(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, cache.ChannelProfileKey(user.Username))
	return user, nil
}

// ChannelProfile returns the public channel view of username with counts and
// whether viewer subscribes to it.
func (s *UserService) ChannelProfile(ctx context.Context, username string, viewer *uint) (*models.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, models.NewValidationError("Username is missing")
	}

	var profile models.ChannelProfile
	err := s.cache.Aside(ctx, cache.ChannelProfileKey(username), &profile, cache.ChannelProfileTTL, func() error {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			if models.StatusFor(err) == 404 {
				return &models.AppError{Code: models.CodeNotFound, Message: "Channel does not exist"}
			}
			return err
		}
		profile = models.ChannelProfile{
			ID:         user.ID,
			Username:   user.Username,
			FullName:   user.FullName,
			Email:      user.Email,
			Avatar:     user.Avatar,
			CoverImage: user.CoverImage,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if profile.SubscribersCount, err = s.subscriberCount(ctx, profile.ID); err != nil {
		return nil, err
	}
	if profile.ChannelsSubscribedToCount, err = s.subRepo.CountSubscriptions(ctx, profile.ID); err != nil {
		return nil, err
	}
	if viewer != nil {
		if profile.IsSubscribed, err = s.subRepo.IsSubscribed(ctx, *viewer, profile.ID); err != nil {
			return nil, err
		}
	}
	return &profile, nil
}

func (s *UserService) subscriberCount(ctx context.Context, channelID uint) (int64, error) {
	var count int64
	err := s.cache.Aside(ctx, cache.SubscriberCountKey(channelID), &count, cache.SubscriberCountTTL, func() error {
		var err error
		count, err = s.subRepo.CountSubscribers(ctx, channelID)
		return err
	})
	return count, err
}

func (s *UserService) WatchHistory(ctx context.Context, userID uint) ([]*models.Video, error) {
	return s.userRepo.WatchHistory(ctx, userID)
}

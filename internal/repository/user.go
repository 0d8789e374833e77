package repository

import (
	"context"

	"vidtube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines interface for user operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByLogin(ctx context.Context, email, username string) (*models.User, error)
	ExistsByLogin(ctx context.Context, email, username string) (bool, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
	AddToHistory(ctx context.Context, userID, videoID uint) error
	WatchHistory(ctx context.Context, userID uint) ([]*models.Video, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, "User", user.Username)
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "User", id)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "User", username)
	}
	return &user, nil
}

// GetByLogin finds the user matching either identifier.
func (r *userRepository) GetByLogin(ctx context.Context, email, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", email, username).
		First(&user).Error
	if err != nil {
		return nil, translate(err, "User", firstNonEmpty(email, username))
	}
	return &user, nil
}

func (r *userRepository) ExistsByLogin(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "User", nil)
	}
	return count > 0, nil
}

func (r *userRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	return affected(res, "User", id)
}

// Delete soft-deletes the user. Their records drop out of owner-joined
// listings.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return affected(r.db.WithContext(ctx).Delete(&models.User{}, id), "User", id)
}

// AddToHistory records a watch. Repeats are no-ops.
func (r *userRepository) AddToHistory(ctx context.Context, userID, videoID uint) error {
	entry := models.WatchHistoryEntry{UserID: userID, VideoID: videoID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
	return translate(err, "WatchHistory", videoID)
}

// WatchHistory returns watched videos in the order they were first watched.
// Videos since unpublished by another channel are hidden.
func (r *userRepository) WatchHistory(ctx context.Context, userID uint) ([]*models.Video, error) {
	videos := make([]*models.Video, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Select("videos.*").
		Joins("JOIN watch_history ON watch_history.video_id = videos.id AND watch_history.user_id = ?", userID).
		Joins(ownerJoin("videos")).
		Where("videos.is_published = ? OR videos.owner_id = ?", true, userID).
		Order("watch_history.created_at ASC").
		Order("videos.id ASC").
		Preload("Owner").
		Find(&videos).Error
	if err != nil {
		return nil, translate(err, "WatchHistory", userID)
	}
	return videos, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, translate(err, "User", nil)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

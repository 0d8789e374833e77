package repository

import (
	"context"

	"vidtube/internal/models"
	"vidtube/internal/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaylistRepository defines interface for playlist operations
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *models.Playlist) error
	GetByID(ctx context.Context, id uint) (*models.Playlist, error)
	List(ctx context.Context, plan *query.Plan) ([]*models.Playlist, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
	AddVideo(ctx context.Context, playlistID, videoID uint) error
	RemoveVideo(ctx context.Context, playlistID, videoID uint) error
	Videos(ctx context.Context, playlistID, viewerID uint) ([]*models.Video, error)
}

type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository creates a new PlaylistRepository
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Create(playlist).Error, "Playlist", playlist.Name)
}

func (r *playlistRepository) GetByID(ctx context.Context, id uint) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := r.db.WithContext(ctx).Preload("Owner").First(&playlist, id).Error; err != nil {
		return nil, translate(err, "Playlist", id)
	}
	return &playlist, nil
}

func (r *playlistRepository) List(ctx context.Context, plan *query.Plan) ([]*models.Playlist, int64, error) {
	return list[models.Playlist](ctx, r.db, plan)
}

func (r *playlistRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Playlist{}).Where("id = ?", id).Updates(fields)
	return affected(res, "Playlist", id)
}

func (r *playlistRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return translate(err, "PlaylistVideo", id)
		}
		return affected(tx.Delete(&models.Playlist{}, id), "Playlist", id)
	})
}

// AddVideo inserts the membership row; adding a member twice is a no-op.
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uint) error {
	member := models.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&member).Error
	return translate(err, "PlaylistVideo", videoID)
}

// RemoveVideo deletes the membership row. Removing a non-member is a no-op.
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uint) error {
	err := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&models.PlaylistVideo{}).Error
	return translate(err, "PlaylistVideo", videoID)
}

// Videos returns members in insertion order with their owners. Videos whose
// owner no longer resolves are omitted, as are unpublished videos the viewer
// does not own. A zero viewerID is a guest.
func (r *playlistRepository) Videos(ctx context.Context, playlistID, viewerID uint) ([]*models.Video, error) {
	videos := make([]*models.Video, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Select("videos.*").
		Joins("JOIN playlist_videos ON playlist_videos.video_id = videos.id AND playlist_videos.playlist_id = ?", playlistID).
		Joins(ownerJoin("videos")).
		Where("videos.is_published = ? OR videos.owner_id = ?", true, viewerID).
		Order("playlist_videos.created_at ASC").
		Order("videos.id ASC").
		Preload("Owner").
		Find(&videos).Error
	if err != nil {
		return nil, translate(err, "Playlist", playlistID)
	}
	return videos, nil
}

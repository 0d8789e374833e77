package service

import (
	"context"
	"strconv"
	"strings"

	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/observability"
	"vidtube/internal/query"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
)

type VideoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	uploader  media.Uploader
}

type ListVideosInput struct {
	ListParams
	UserID string
}

type PublishVideoInput struct {
	OwnerID       uint
	Title         string
	Description   string
	Duration      string
	VideoPath     string
	ThumbnailPath string
}

type UpdateVideoInput struct {
	ActorID       uint
	VideoID       uint
	Title         *string
	Description   *string
	ThumbnailPath string
}

func NewVideoService(videoRepo repository.VideoRepository, userRepo repository.UserRepository, uploader media.Uploader) *VideoService {
	return &VideoService{videoRepo: videoRepo, userRepo: userRepo, uploader: uploader}
}

// List returns published videos, optionally for one owner, matching the
// search term against title and description.
func (s *VideoService) List(ctx context.Context, in ListVideosInput) (*query.Result[*models.Video], error) {
	plan, err := in.plan("videos", repository.VideoSortKeys)
	if err != nil {
		return nil, err
	}
	plan.Where(query.Eq{Column: "is_published", Value: true})
	if strings.TrimSpace(in.UserID) != "" {
		ownerID, err := ParseID(in.UserID, "userId")
		if err != nil {
			return nil, err
		}
		plan.Where(query.Eq{Column: "owner_id", Value: ownerID})
	}
	plan.Where(query.Contains{Columns: []string{"title", "description"}, Term: in.Query})
	plan.JoinOn(query.OwnerJoin("owner_id", "Owner"))

	videos, total, err := s.videoRepo.List(ctx, plan)
	if err != nil {
		return nil, err
	}
	return query.NewResult(videos, total, plan.Page), nil
}

// Publish uploads the video and its thumbnail, in that order, then stores the
// record as published.
func (s *VideoService) Publish(ctx context.Context, in PublishVideoInput) (*models.Video, error) {
	title, err := validation.Required("title", in.Title)
	if err != nil {
		return nil, validationErr(err)
	}
	description, err := validation.Required("description", in.Description)
	if err != nil {
		return nil, validationErr(err)
	}
	if err := validation.MaxLength("title", title, validation.MaxTitleLength); err != nil {
		return nil, validationErr(err)
	}
	duration, err := parseDuration(in.Duration)
	if err != nil {
		return nil, err
	}
	if in.VideoPath == "" {
		return nil, models.NewValidationError("Video file is required")
	}
	if in.ThumbnailPath == "" {
		return nil, models.NewValidationError("Thumbnail file is required")
	}

	videoAsset, err := s.uploader.Upload(ctx, in.VideoPath, media.KindVideo)
	if err != nil {
		return nil, models.NewInternalErrorf("Failed to upload video", err)
	}
	thumbAsset, err := s.uploader.Upload(ctx, in.ThumbnailPath, media.KindImage)
	if err != nil {
		destroyQuietly(ctx, s.uploader, videoAsset.PublicID, media.KindVideo)
		return nil, models.NewInternalErrorf("Failed to upload thumbnail", err)
	}

	video := &models.Video{
		VideoFile:         videoAsset.URL,
		VideoFilePublicID: videoAsset.PublicID,
		Thumbnail:         thumbAsset.URL,
		ThumbnailPublicID: thumbAsset.PublicID,
		Title:             title,
		Description:       description,
		Duration:          duration,
		IsPublished:       true,
		OwnerID:           in.OwnerID,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		destroyQuietly(ctx, s.uploader, videoAsset.PublicID, media.KindVideo)
		destroyQuietly(ctx, s.uploader, thumbAsset.PublicID, media.KindImage)
		return nil, err
	}
	return s.videoRepo.GetByID(ctx, video.ID)
}

// Get fetches a video. Published videos count a view, and an authenticated
// viewer gets the video added to their history. Unpublished videos are only
// visible to their owner and do not count views.
func (s *VideoService) Get(ctx context.Context, videoID uint, viewer *uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if !video.IsPublished {
		if !canView(video, viewer) {
			return nil, models.NewNotFoundError("Video", videoID)
		}
		return video, nil
	}

	if err := s.videoRepo.IncrementViews(ctx, videoID); err != nil {
		return nil, err
	}
	observability.VideoViews.Inc()
	video.Views++

	if viewer != nil {
		if err := s.userRepo.AddToHistory(ctx, *viewer, videoID); err != nil {
			return nil, err
		}
	}
	return video, nil
}

func (s *VideoService) Update(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(in.ActorID, video.OwnerID, "videos"); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Title != nil {
		title, err := validation.Required("title", *in.Title)
		if err != nil {
			return nil, validationErr(err)
		}
		if err := validation.MaxLength("title", title, validation.MaxTitleLength); err != nil {
			return nil, validationErr(err)
		}
		fields["title"] = title
	}
	if in.Description != nil {
		description, err := validation.Required("description", *in.Description)
		if err != nil {
			return nil, validationErr(err)
		}
		fields["description"] = description
	}
	if len(fields) == 0 && in.ThumbnailPath == "" {
		return nil, models.NewValidationError("Nothing to update")
	}

	var oldThumb string
	if in.ThumbnailPath != "" {
		asset, err := s.uploader.Upload(ctx, in.ThumbnailPath, media.KindImage)
		if err != nil {
			return nil, models.NewInternalErrorf("Failed to upload thumbnail", err)
		}
		fields["thumbnail"] = asset.URL
		fields["thumbnail_public_id"] = asset.PublicID
		oldThumb = video.ThumbnailPublicID
	}

	if err := s.videoRepo.Update(ctx, video.ID, fields); err != nil {
		if id, ok := fields["thumbnail_public_id"].(string); ok {
			destroyQuietly(ctx, s.uploader, id, media.KindImage)
		}
		return nil, err
	}
	destroyQuietly(ctx, s.uploader, oldThumb, media.KindImage)
	return s.videoRepo.GetByID(ctx, video.ID)
}

// Delete removes the video with its dependent records, then its hosted
// files on a best-effort basis.
func (s *VideoService) Delete(ctx context.Context, actorID, videoID uint) error {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if err := requireOwner(actorID, video.OwnerID, "videos"); err != nil {
		return err
	}
	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return err
	}

	destroyQuietly(ctx, s.uploader, video.VideoFilePublicID, media.KindVideo)
	destroyQuietly(ctx, s.uploader, video.ThumbnailPublicID, media.KindImage)
	middleware.Logger.InfoContext(ctx, "Video deleted", "video_id", videoID)
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, actorID, videoID uint) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actorID, video.OwnerID, "videos"); err != nil {
		return nil, err
	}
	if err := s.videoRepo.Update(ctx, videoID, map[string]any{"is_published": !video.IsPublished}); err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

func parseDuration(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || d < 0 {
		return 0, models.NewValidationError("duration must be a non-negative number of seconds")
	}
	return d, nil
}

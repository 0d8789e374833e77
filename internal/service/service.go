// Package service holds the application's use cases. Services validate
// input, enforce ownership, and orchestrate repositories and the media host.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/query"
	"vidtube/internal/repository"
)

// isOwner is the single ownership predicate behind every update and delete.
func isOwner(actorID, ownerID uint) bool {
	return actorID != 0 && actorID == ownerID
}

func requireOwner(actorID, ownerID uint, resource string) error {
	if !isOwner(actorID, ownerID) {
		return models.NewForbiddenError(fmt.Sprintf("You can only modify your own %s", resource))
	}
	return nil
}

// canView reports whether the viewer may see the video. Unpublished videos
// are visible only to their owner; a nil viewer is a guest.
func canView(video *models.Video, viewer *uint) bool {
	return video.IsPublished || (viewer != nil && isOwner(*viewer, video.OwnerID))
}

// visibleVideo loads a video the viewer may see. Drafts of other channels
// answer NotFound, the same as a missing video.
func visibleVideo(ctx context.Context, videos repository.VideoRepository, videoID uint, viewer *uint) (*models.Video, error) {
	video, err := videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !canView(video, viewer) {
		return nil, models.NewNotFoundError("Video", videoID)
	}
	return video, nil
}

func viewerID(viewer *uint) uint {
	if viewer == nil {
		return 0
	}
	return *viewer
}

// ListParams are the raw listing query parameters.
type ListParams struct {
	Page     string
	Limit    string
	Query    string
	SortBy   string
	SortType string
}

func (p ListParams) plan(table string, sortKeys map[string]string) (*query.Plan, error) {
	page, err := query.ParsePage(p.Page, p.Limit)
	if err != nil {
		return nil, err
	}
	sort, err := query.ParseSort(p.SortBy, p.SortType, sortKeys)
	if err != nil {
		return nil, err
	}
	return query.New(table).OrderBy(sort).Paginate(page), nil
}

// createdAtOnly restricts sorting to creation time.
var createdAtOnly = map[string]string{"createdAt": "created_at"}

// ParseID parses a positive numeric identifier.
func ParseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid " + name)
	}
	return uint(id), nil
}

// destroyQuietly removes a hosted asset, logging instead of failing.
func destroyQuietly(ctx context.Context, up media.Uploader, publicID string, kind media.Kind) {
	if up == nil || publicID == "" {
		return
	}
	if err := up.Destroy(ctx, publicID, kind); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to destroy media asset",
			"public_id", publicID,
			"kind", string(kind),
			"error", err,
		)
	}
}

func validationErr(err error) error {
	if err == nil {
		return nil
	}
	return models.NewValidationError(err.Error())
}

package service

import (
	"context"
	"strings"

	"vidtube/internal/models"
	"vidtube/internal/query"
	"vidtube/internal/repository"
	"vidtube/internal/validation"
)

type PlaylistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
}

type UpdatePlaylistInput struct {
	ActorID     uint
	PlaylistID  uint
	Name        *string
	Description *string
}

func NewPlaylistService(
	playlistRepo repository.PlaylistRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo, userRepo: userRepo}
}

func (s *PlaylistService) Create(ctx context.Context, actorID uint, name, description string) (*models.Playlist, error) {
	name, err := validation.Required("name", name)
	if err != nil {
		return nil, validationErr(err)
	}
	if err := validation.MaxLength("name", name, validation.MaxTitleLength); err != nil {
		return nil, validationErr(err)
	}

	playlist := &models.Playlist{
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     actorID,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return s.Get(ctx, playlist.ID, &actorID)
}

func (s *PlaylistService) ListByUser(ctx context.Context, userID uint, params ListParams) (*query.Result[*models.Playlist], error) {
	plan, err := params.plan("playlists", createdAtOnly)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	plan.Where(query.Eq{Column: "owner_id", Value: userID}).
		JoinOn(query.OwnerJoin("owner_id", "Owner"))
	playlists, total, err := s.playlistRepo.List(ctx, plan)
	if err != nil {
		return nil, err
	}
	for _, p := range playlists {
		p.Videos = []*models.Video{}
	}
	return query.NewResult(playlists, total, plan.Page), nil
}

// Get returns the playlist with the videos the viewer may see and their
// owners.
func (s *PlaylistService) Get(ctx context.Context, playlistID uint, viewer *uint) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	videos, err := s.playlistRepo.Videos(ctx, playlistID, viewerID(viewer))
	if err != nil {
		return nil, err
	}
	playlist.Videos = videos
	return playlist, nil
}

// AddVideo adds the video to the actor's playlist. Adding it again is a
// no-op. Another channel's unpublished video answers NotFound.
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID uint) (*models.Playlist, error) {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}
	if _, err := visibleVideo(ctx, s.videoRepo, videoID, &actorID); err != nil {
		return nil, err
	}
	if err := s.playlistRepo.AddVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.Get(ctx, playlistID, &actorID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID uint) (*models.Playlist, error) {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}
	if err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.Get(ctx, playlistID, &actorID)
}

func (s *PlaylistService) Update(ctx context.Context, in UpdatePlaylistInput) (*models.Playlist, error) {
	if _, err := s.owned(ctx, in.ActorID, in.PlaylistID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		name, err := validation.Required("name", *in.Name)
		if err != nil {
			return nil, validationErr(err)
		}
		if err := validation.MaxLength("name", name, validation.MaxTitleLength); err != nil {
			return nil, validationErr(err)
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if len(fields) == 0 {
		return nil, models.NewValidationError("Name or description is required")
	}

	if err := s.playlistRepo.Update(ctx, in.PlaylistID, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, in.PlaylistID, &in.ActorID)
}

func (s *PlaylistService) Delete(ctx context.Context, actorID, playlistID uint) error {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(ctx, playlistID)
}

func (s *PlaylistService) owned(ctx context.Context, actorID, playlistID uint) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actorID, playlist.OwnerID, "playlists"); err != nil {
		return nil, err
	}
	return playlist, nil
}

package server

import (
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePlaylist handles POST /api/v1/playlists
//
// @Summary Create a playlist
// @Tags playlists
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /playlists [post]
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name" form:"name"`
		Description string `json:"description" form:"description"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}
	playlist, err := s.playlistService.Create(c.UserContext(), currentUser(c), req.Name, req.Description)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusCreated, playlist, "Playlist created successfully")
}

// GetUserPlaylists handles GET /api/v1/playlists/user/:userId
//
// @Summary List a user's playlists
// @Tags playlists
// @Produce json
// @Param userId path int true "userId"
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /playlists/user/{userId} [get]
func (s *Server) GetUserPlaylists(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	result, err := s.playlistService.ListByUser(c.UserContext(), userID, listParams(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, result, "Playlists fetched successfully")
}

// GetPlaylist handles GET /api/v1/playlists/:playlistId
//
// @Summary Get a playlist with its videos
// @Tags playlists
// @Produce json
// @Param playlistId path int true "playlistId"
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /playlists/{playlistId} [get]
func (s *Server) GetPlaylist(c *fiber.Ctx) error {
	playlistID, err := parseID(c, "playlistId")
	if err != nil {
		return err
	}
	playlist, err := s.playlistService.Get(c.UserContext(), playlistID, middleware.Viewer(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist fetched successfully")
}

// UpdatePlaylist handles PATCH /api/v1/playlists/:playlistId (owner only)
//
// @Summary Update a playlist
// @Tags playlists
// @Produce json
// @Param playlistId path int true "playlistId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /playlists/{playlistId} [patch]
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	playlistID, err := parseID(c, "playlistId")
	if err != nil {
		return err
	}
	fields, err := optionalFields(c, "name", "description")
	if err != nil {
		return err
	}
	playlist, err := s.playlistService.Update(c.UserContext(), service.UpdatePlaylistInput{
		ActorID:     currentUser(c),
		PlaylistID:  playlistID,
		Name:        fields["name"],
		Description: fields["description"],
	})
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Playlist updated successfully")
}

// DeletePlaylist handles DELETE /api/v1/playlists/:playlistId (owner only)
//
// @Summary Delete a playlist
// @Tags playlists
// @Produce json
// @Param playlistId path int true "playlistId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /playlists/{playlistId} [delete]
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	playlistID, err := parseID(c, "playlistId")
	if err != nil {
		return err
	}
	if err := s.playlistService.Delete(c.UserContext(), currentUser(c), playlistID); err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{}, "Playlist deleted successfully")
}

// AddVideoToPlaylist handles PATCH /api/v1/playlists/add/:videoId/:playlistId
//
// @Summary Add a video to a playlist
// @Tags playlists
// @Produce json
// @Param videoId path int true "videoId"
// @Param playlistId path int true "playlistId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /playlists/add/{videoId}/{playlistId} [patch]
func (s *Server) AddVideoToPlaylist(c *fiber.Ctx) error {
	videoID, playlistID, err := playlistVideoParams(c)
	if err != nil {
		return err
	}
	playlist, err := s.playlistService.AddVideo(c.UserContext(), currentUser(c), playlistID, videoID)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Video added to playlist")
}

// RemoveVideoFromPlaylist handles PATCH /api/v1/playlists/remove/:videoId/:playlistId
//
// @Summary Remove a video from a playlist
// @Tags playlists
// @Produce json
// @Param videoId path int true "videoId"
// @Param playlistId path int true "playlistId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /playlists/remove/{videoId}/{playlistId} [patch]
func (s *Server) RemoveVideoFromPlaylist(c *fiber.Ctx) error {
	videoID, playlistID, err := playlistVideoParams(c)
	if err != nil {
		return err
	}
	playlist, err := s.playlistService.RemoveVideo(c.UserContext(), currentUser(c), playlistID, videoID)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, playlist, "Video removed from playlist")
}

func playlistVideoParams(c *fiber.Ctx) (videoID, playlistID uint, err error) {
	if videoID, err = parseID(c, "videoId"); err != nil {
		return 0, 0, err
	}
	if playlistID, err = parseID(c, "playlistId"); err != nil {
		return 0, 0, err
	}
	return videoID, playlistID, nil
}

package server

import (
	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetVideos handles GET /api/v1/videos
//
// @Summary List published videos
// @Tags videos
// @Produce json
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size" default(10)
// @Param query query string false "substring matched against title and description"
// @Param sortBy query string false "sort key" Enums(createdAt, views, duration, title)
// @Param sortType query string false "sort direction" Enums(asc, desc) default(desc)
// @Param userId query int false "only this channel's videos"
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /videos [get]
func (s *Server) GetVideos(c *fiber.Ctx) error {
	result, err := s.videoService.List(c.UserContext(), service.ListVideosInput{
		ListParams: listParams(c),
		UserID:     c.Query("userId"),
	})
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, result, "Videos fetched successfully")
}

// PublishVideo handles POST /api/v1/videos (multipart)
//
// @Summary Publish a video (multipart videoFile, thumbnail)
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /videos [post]
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	videoFile, err := s.stager.Stage(c, "videoFile", true)
	if err != nil {
		return err
	}
	thumbnail, err := s.stager.Stage(c, "thumbnail", true)
	if err != nil {
		videoFile.Remove()
		return err
	}
	defer media.RemoveAll(videoFile, thumbnail)

	video, err := s.videoService.Publish(c.UserContext(), service.PublishVideoInput{
		OwnerID:       currentUser(c),
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		Duration:      c.FormValue("duration"),
		VideoPath:     videoFile.Path,
		ThumbnailPath: thumbnail.Path,
	})
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusCreated, video, "Video published successfully")
}

// GetVideo handles GET /api/v1/videos/:videoId. Authentication is optional;
// signed-in viewers get the video recorded in their watch history.
//
// @Summary Get a video and count a view
// @Tags videos
// @Produce json
// @Param videoId path int true "videoId"
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /videos/{videoId} [get]
func (s *Server) GetVideo(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return err
	}
	video, err := s.videoService.Get(c.UserContext(), videoID, middleware.Viewer(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, video, "Video fetched successfully")
}

// UpdateVideo handles PATCH /api/v1/videos/:videoId. Title and description
// are optional; a thumbnail part replaces the current thumbnail.
//
// @Summary Update a video
// @Tags videos
// @Produce json
// @Param videoId path int true "videoId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /videos/{videoId} [patch]
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return err
	}
	fields, err := optionalFields(c, "title", "description")
	if err != nil {
		return err
	}
	thumbnail, err := s.stager.Stage(c, "thumbnail", false)
	if err != nil {
		return err
	}
	defer thumbnail.Remove()

	in := service.UpdateVideoInput{
		ActorID:     currentUser(c),
		VideoID:     videoID,
		Title:       fields["title"],
		Description: fields["description"],
	}
	if thumbnail != nil {
		in.ThumbnailPath = thumbnail.Path
	}

	video, err := s.videoService.Update(c.UserContext(), in)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, video, "Video updated successfully")
}

// DeleteVideo handles DELETE /api/v1/videos/:videoId
//
// @Summary Delete a video
// @Tags videos
// @Produce json
// @Param videoId path int true "videoId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /videos/{videoId} [delete]
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return err
	}
	if err := s.videoService.Delete(c.UserContext(), currentUser(c), videoID); err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{}, "Video deleted successfully")
}

// TogglePublishStatus handles PATCH /api/v1/videos/toggle/publish/:videoId
//
// @Summary Toggle publish status
// @Tags videos
// @Produce json
// @Param videoId path int true "videoId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /videos/toggle/publish/{videoId} [patch]
func (s *Server) TogglePublishStatus(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return err
	}
	video, err := s.videoService.TogglePublish(c.UserContext(), currentUser(c), videoID)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, video, "Publish status toggled successfully")
}

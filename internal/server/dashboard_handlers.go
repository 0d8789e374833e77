package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetChannelStats handles GET /api/v1/dashboard/stats
//
// @Summary Get channel statistics
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /dashboard/stats [get]
func (s *Server) GetChannelStats(c *fiber.Ctx) error {
	stats, err := s.dashboardService.Stats(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, stats, "Channel stats fetched successfully")
}

// GetChannelVideos handles GET /api/v1/dashboard/videos
//
// @Summary List the channel's videos
// @Tags dashboard
// @Produce json
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size" default(10)
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /dashboard/videos [get]
func (s *Server) GetChannelVideos(c *fiber.Ctx) error {
	result, err := s.dashboardService.Videos(c.UserContext(), currentUser(c), listParams(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, result, "Channel videos fetched successfully")
}

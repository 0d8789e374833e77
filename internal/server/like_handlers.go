package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleVideoLike handles POST /api/v1/likes/toggle/v/:videoId
//
// @Summary Toggle a video like
// @Tags likes
// @Produce json
// @Param videoId path int true "videoId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /likes/toggle/v/{videoId} [post]
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	return s.toggleLike(c, models.LikeTargetVideo, "videoId")
}

// ToggleCommentLike handles POST /api/v1/likes/toggle/c/:commentId
//
// @Summary Toggle a comment like
// @Tags likes
// @Produce json
// @Param commentId path int true "commentId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /likes/toggle/c/{commentId} [post]
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	return s.toggleLike(c, models.LikeTargetComment, "commentId")
}

// ToggleTweetLike handles POST /api/v1/likes/toggle/t/:tweetId
//
// @Summary Toggle a tweet like
// @Tags likes
// @Produce json
// @Param tweetId path int true "tweetId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /likes/toggle/t/{tweetId} [post]
func (s *Server) ToggleTweetLike(c *fiber.Ctx) error {
	return s.toggleLike(c, models.LikeTargetTweet, "tweetId")
}

func (s *Server) toggleLike(c *fiber.Ctx, target models.LikeTarget, param string) error {
	targetID, err := parseID(c, param)
	if err != nil {
		return err
	}
	result, err := s.likeService.Toggle(c.UserContext(), currentUser(c), target, targetID)
	if err != nil {
		return err
	}

	message := "Like removed"
	if result.Liked {
		message = "Liked successfully"
	}
	return models.Respond(c, fiber.StatusOK, result, message)
}

// GetLikedVideos handles GET /api/v1/likes/videos
//
// @Summary List liked videos
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /likes/videos [get]
func (s *Server) GetLikedVideos(c *fiber.Ctx) error {
	videos, err := s.likeService.LikedVideos(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, videos, "Liked videos fetched successfully")
}

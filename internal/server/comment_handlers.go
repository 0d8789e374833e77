package server

import (
	"vidtube/internal/middleware"
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

type contentRequest struct {
	Content string `json:"content" form:"content"`
}

// GetVideoComments handles GET /api/v1/comments/:videoId (public)
//
// @Summary List comments on a video
// @Tags comments
// @Produce json
// @Param videoId path int true "videoId"
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /comments/{videoId} [get]
func (s *Server) GetVideoComments(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return err
	}
	result, err := s.commentService.List(c.UserContext(), middleware.Viewer(c), videoID, listParams(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, result, "Comments fetched successfully")
}

// AddComment handles POST /api/v1/comments/:videoId
//
// @Summary Comment on a video
// @Tags comments
// @Produce json
// @Param videoId path int true "videoId"
// @Security BearerAuth
// @Success 201 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /comments/{videoId} [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	videoID, err := parseID(c, "videoId")
	if err != nil {
		return err
	}
	var req contentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	comment, err := s.commentService.Add(c.UserContext(), currentUser(c), videoID, req.Content)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusCreated, comment, "Comment added successfully")
}

// UpdateComment handles PATCH /api/v1/comments/:commentId (owner only)
//
// @Summary Update a comment
// @Tags comments
// @Produce json
// @Param commentId path int true "commentId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /comments/c/{commentId} [patch]
// @Router /comments/{commentId} [patch]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return err
	}
	var req contentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	comment, err := s.commentService.Update(c.UserContext(), currentUser(c), commentID, req.Content)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, comment, "Comment updated successfully")
}

// DeleteComment handles DELETE /api/v1/comments/:commentId (owner only)
//
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param commentId path int true "commentId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /comments/c/{commentId} [delete]
// @Router /comments/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return err
	}
	comment, err := s.commentService.Delete(c.UserContext(), currentUser(c), commentID)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, comment, "Comment deleted successfully")
}

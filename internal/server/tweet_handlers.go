package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateTweet handles POST /api/v1/tweets
//
// @Summary Create a tweet
// @Tags tweets
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /tweets [post]
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req contentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tweet, err := s.tweetService.Create(c.UserContext(), currentUser(c), req.Content)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusCreated, tweet, "Tweet created successfully")
}

// GetUserTweets handles GET /api/v1/tweets/user/:userId
//
// @Summary List a user's tweets
// @Tags tweets
// @Produce json
// @Param userId path int true "userId"
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /tweets/user/{userId} [get]
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	result, err := s.tweetService.ListByUser(c.UserContext(), userID, listParams(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, result, "Tweets fetched successfully")
}

// UpdateTweet handles PATCH /api/v1/tweets/:tweetId (owner only)
//
// @Summary Update a tweet
// @Tags tweets
// @Produce json
// @Param tweetId path int true "tweetId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /tweets/{tweetId} [patch]
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	tweetID, err := parseID(c, "tweetId")
	if err != nil {
		return err
	}
	var req contentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tweet, err := s.tweetService.Update(c.UserContext(), currentUser(c), tweetID, req.Content)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, tweet, "Tweet updated successfully")
}

// DeleteTweet handles DELETE /api/v1/tweets/:tweetId (owner only)
//
// @Summary Delete a tweet
// @Tags tweets
// @Produce json
// @Param tweetId path int true "tweetId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /tweets/{tweetId} [delete]
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	tweetID, err := parseID(c, "tweetId")
	if err != nil {
		return err
	}
	tweet, err := s.tweetService.Delete(c.UserContext(), currentUser(c), tweetID)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, tweet, "Tweet deleted successfully")
}

package server

import (
	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleSubscription handles POST /api/v1/subscriptions/toggle/:channelId
//
// @Summary Toggle a subscription
// @Tags subscriptions
// @Produce json
// @Param channelId path int true "channelId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /subscriptions/toggle/{channelId} [post]
func (s *Server) ToggleSubscription(c *fiber.Ctx) error {
	channelID, err := parseID(c, "channelId")
	if err != nil {
		return err
	}
	result, err := s.subscriptionService.Toggle(c.UserContext(), currentUser(c), channelID)
	if err != nil {
		return err
	}

	message := "Unsubscribed successfully"
	if result.Subscribed {
		message = "Subscribed successfully"
	}
	return models.Respond(c, fiber.StatusOK, result, message)
}

// GetSubscriberCount handles GET /api/v1/subscriptions/count/:channelId (public)
//
// @Summary Count a channel's subscribers
// @Tags subscriptions
// @Produce json
// @Param channelId path int true "channelId"
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /subscriptions/count/{channelId} [get]
func (s *Server) GetSubscriberCount(c *fiber.Ctx) error {
	channelID, err := parseID(c, "channelId")
	if err != nil {
		return err
	}
	count, err := s.subscriptionService.SubscriberCount(c.UserContext(), channelID)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{"subscribersCount": count}, "Subscriber count fetched successfully")
}

// GetIsSubscribed handles GET /api/v1/subscriptions/is-subscribed/:channelId
//
// @Summary Check a subscription
// @Tags subscriptions
// @Produce json
// @Param channelId path int true "channelId"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /subscriptions/is-subscribed/{channelId} [get]
func (s *Server) GetIsSubscribed(c *fiber.Ctx) error {
	channelID, err := parseID(c, "channelId")
	if err != nil {
		return err
	}
	subscribed, err := s.subscriptionService.IsSubscribed(c.UserContext(), currentUser(c), channelID)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{"isSubscribed": subscribed}, "Subscription status fetched successfully")
}

// GetSubscribedChannels handles GET /api/v1/subscriptions/u/:subscriberId (self only)
//
// @Summary List subscribed channels
// @Tags subscriptions
// @Produce json
// @Param subscriberId path int true "subscriberId"
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size" default(10)
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /subscriptions/u/{subscriberId} [get]
func (s *Server) GetSubscribedChannels(c *fiber.Ctx) error {
	subscriberID, err := parseID(c, "subscriberId")
	if err != nil {
		return err
	}
	result, err := s.subscriptionService.SubscribedChannels(c.UserContext(), currentUser(c), subscriberID, listParams(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, result, "Subscribed channels fetched successfully")
}

// GetChannelSubscribers handles GET /api/v1/subscriptions/subscribers/:channelId (channel owner only)
//
// @Summary List a channel's subscribers
// @Tags subscriptions
// @Produce json
// @Param channelId path int true "channelId"
// @Param page query int false "page number" default(1)
// @Param limit query int false "page size" default(10)
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /subscriptions/subscribers/{channelId} [get]
func (s *Server) GetChannelSubscribers(c *fiber.Ctx) error {
	channelID, err := parseID(c, "channelId")
	if err != nil {
		return err
	}
	result, err := s.subscriptionService.Subscribers(c.UserContext(), currentUser(c), channelID, listParams(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, result, "Subscribers fetched successfully")
}

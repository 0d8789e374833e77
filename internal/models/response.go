// Package models contains data structures for the application's domain models.
package models

import "github.com/gofiber/fiber/v2"

// APIResponse is the envelope wrapped around every successful payload.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse is the envelope written for every failed request.
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Code       string   `json:"code,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// Respond writes data inside the success envelope.
func Respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < fiber.StatusBadRequest,
	})
}

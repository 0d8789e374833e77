package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad"), fiber.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("no token"), fiber.StatusUnauthorized},
		{"forbidden", NewForbiddenError("not yours"), fiber.StatusForbidden},
		{"not found", NewNotFoundError("Video", 7), fiber.StatusNotFound},
		{"conflict", NewConflictError("taken", nil), fiber.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("ctx: %w", NewForbiddenError("x")), fiber.StatusForbidden},
		{"fiber error", fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big"), fiber.StatusRequestEntityTooLarge},
		{"plain error", errors.New("plain"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestNewNotFoundError_Message(t *testing.T) {
	err := NewNotFoundError("Playlist", 12)
	assert.Equal(t, "Playlist with ID 12 not found", err.Error())
	assert.Equal(t, CodeNotFound, err.Code)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalErrorf("failed to upload video", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to upload video: disk full", err.Error())
}

func TestRespondWithError_Envelope(t *testing.T) {
	app := fiber.New()
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusForbidden, NewForbiddenError("You can only edit your own comments"))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError, errors.New("pq: connection reset"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/forbidden", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body ErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, fiber.StatusForbidden, body.StatusCode)
	assert.False(t, body.Success)
	assert.Nil(t, body.Data)
	assert.Equal(t, CodeForbidden, body.Code)
	assert.Equal(t, "You can only edit your own comments", body.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/plain", nil))
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Internal server error", body.Message)
	assert.Equal(t, CodeInternal, body.Code)
}

func TestRespond_Envelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Respond(c, fiber.StatusCreated, fiber.Map{"id": 1}, "Created")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, float64(201), body["statusCode"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Created", body["message"])
	assert.Equal(t, map[string]any{"id": float64(1)}, body["data"])
}

func TestLikeTarget_Column(t *testing.T) {
	assert.Equal(t, "video_id", LikeTargetVideo.Column())
	assert.Equal(t, "comment_id", LikeTargetComment.Column())
	assert.Equal(t, "tweet_id", LikeTargetTweet.Column())
}

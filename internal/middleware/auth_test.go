package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifierStub map[string]uint

func (v verifierStub) VerifyAccess(_ context.Context, token string) (uint, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}
	return 0, errors.New("invalid or expired token")
}

func newAuthApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, models.StatusFor(err), err)
		},
	})
	app.Get("/", handler, func(c *fiber.Ctx) error {
		viewer := Viewer(c)
		if viewer == nil {
			return c.JSON(fiber.Map{"guest": true})
		}
		return c.JSON(fiber.Map{"userID": *viewer})
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	app := newAuthApp(RequireAuth(verifierStub{"good": 5}))

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
	}{
		{"missing credentials", func(_ *http.Request) {}, http.StatusUnauthorized},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Token good") }, http.StatusUnauthorized},
		{"invalid token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") }, http.StatusUnauthorized},
		{"valid bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, http.StatusOK},
		{"valid cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good"}) }, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusUnauthorized {
				var body models.ErrorResponse
				raw, _ := io.ReadAll(resp.Body)
				require.NoError(t, json.Unmarshal(raw, &body))
				assert.Equal(t, models.CodeUnauthorized, body.Code)
				assert.False(t, body.Success)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	app := newAuthApp(OptionalAuth(verifierStub{"good": 9}))

	read := func(req *http.Request) map[string]any {
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		raw, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		return body
	}

	guest := read(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, true, guest["guest"])

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.Header.Set("Authorization", "Bearer expired")
	assert.Equal(t, true, read(bad)["guest"])

	good := httptest.NewRequest(http.MethodGet, "/", nil)
	good.Header.Set("Authorization", "Bearer good")
	assert.Equal(t, float64(9), read(good)["userID"])
}

package middleware

import (
	"context"
	"errors"
	"strings"

	"vidtube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AccessTokenCookie is the cookie name login sets for browser clients.
const AccessTokenCookie = "accessToken"

// TokenVerifier resolves an access token to a user ID.
type TokenVerifier interface {
	VerifyAccess(ctx context.Context, token string) (uint, error)
}

var errNoCredentials = errors.New("no credentials")

// TokenFromRequest reads the access token from the accessToken cookie or a
// Bearer Authorization header.
func TokenFromRequest(c *fiber.Ctx) (string, error) {
	if cookie := strings.TrimSpace(c.Cookies(AccessTokenCookie)); cookie != "" {
		return cookie, nil
	}

	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", errNoCredentials
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// RequireAuth rejects requests without a valid access token.
func RequireAuth(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := TokenFromRequest(c)
		if err != nil {
			if errors.Is(err, errNoCredentials) {
				return models.NewUnauthorizedError("Unauthorized request")
			}
			return models.NewUnauthorizedError("Invalid authorization header format")
		}

		userID, err := v.VerifyAccess(c.UserContext(), token)
		if err != nil {
			return models.NewUnauthorizedError(capitalize(err.Error()))
		}

		setUser(c, userID)
		return c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and lets the
// request through as a guest otherwise. Handlers read the outcome with Viewer.
func OptionalAuth(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := TokenFromRequest(c)
		if err != nil {
			return c.Next()
		}
		userID, err := v.VerifyAccess(c.UserContext(), token)
		if err != nil {
			Logger.DebugContext(c.UserContext(), "optional auth fell back to guest", "reason", err.Error())
			return c.Next()
		}
		setUser(c, userID)
		return c.Next()
	}
}

func setUser(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
}

// UserID returns the authenticated user set by RequireAuth or OptionalAuth.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok && id != 0
}

// Viewer returns the optional identity of the caller: nil for guests.
func Viewer(c *fiber.Ctx) *uint {
	if id, ok := UserID(c); ok {
		return &id
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

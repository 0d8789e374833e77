package server

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"

	"vidtube/internal/auth"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

const refreshTokenCookie = "refreshToken"

// parseID extracts a route parameter by name as a positive uint.
// The error message is derived from the parameter name (e.g. "videoId" ->
// "Invalid video ID").
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid " + humanizeParam(param))
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "playlistId" -> "playlist ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		words := splitCamel(param[:len(param)-2])
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// currentUser returns the authenticated user. Only call it behind RequireAuth.
func currentUser(c *fiber.Ctx) uint {
	id, _ := middleware.UserID(c)
	return id
}

// listParams reads the shared listing query parameters.
func listParams(c *fiber.Ctx) service.ListParams {
	return service.ListParams{
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
	}
}

// parseBody decodes a JSON, urlencoded or multipart body into dest.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

// optionalFields reads the named fields, leaving absent ones nil so that
// partial updates can tell "missing" from "empty".
func optionalFields(c *fiber.Ctx, names ...string) (map[string]*string, error) {
	out := make(map[string]*string, len(names))

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		var raw map[string]any
		if len(c.Body()) > 0 {
			if err := json.Unmarshal(c.Body(), &raw); err != nil {
				return nil, models.NewValidationError("Invalid request body")
			}
		}
		for _, name := range names {
			if v, ok := raw[name]; ok && v != nil {
				s, ok := v.(string)
				if !ok {
					return nil, models.NewValidationError(name + " must be a string")
				}
				out[name] = &s
			}
		}
		return out, nil
	}

	if form, err := c.MultipartForm(); err == nil {
		for _, name := range names {
			if vs, ok := form.Value[name]; ok && len(vs) > 0 {
				v := vs[0]
				out[name] = &v
			}
		}
		return out, nil
	}

	args := c.Request().PostArgs()
	for _, name := range names {
		if args.Has(name) {
			v := string(args.Peek(name))
			out[name] = &v
		}
	}
	return out, nil
}

func (s *Server) setAuthCookies(c *fiber.Ctx, pair *auth.TokenPair) {
	c.Cookie(s.authCookie(middleware.AccessTokenCookie, pair.AccessToken, s.tokens.AccessTTL()))
	c.Cookie(s.authCookie(refreshTokenCookie, pair.RefreshToken, s.tokens.RefreshTTL()))
}

func (s *Server) clearAuthCookies(c *fiber.Ctx) {
	c.Cookie(s.authCookie(middleware.AccessTokenCookie, "", -time.Hour))
	c.Cookie(s.authCookie(refreshTokenCookie, "", -time.Hour))
}

func (s *Server) authCookie(name, value string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

package server

import (
	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/v1/users/register (multipart)
//
// @Summary Register a user (multipart avatar, coverImage)
// @Tags users
// @Produce json
// @Success 201 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /users/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	avatar, err := s.stager.Stage(c, "avatar", false)
	if err != nil {
		return err
	}
	cover, err := s.stager.Stage(c, "coverImage", false)
	if err != nil {
		avatar.Remove()
		return err
	}
	defer media.RemoveAll(avatar, cover)

	in := service.RegisterInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		FullName: c.FormValue("fullName"),
		Password: c.FormValue("password"),
	}
	if avatar != nil {
		in.AvatarPath = avatar.Path
	}
	if cover != nil {
		in.CoverPath = cover.Path
	}

	user, err := s.authService.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusCreated, user, "User registered successfully")
}

// Login handles POST /api/v1/users/login
//
// @Summary Log in with email or username
// @Tags users
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /users/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email" form:"email"`
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, pair, err := s.authService.Login(c.UserContext(), service.LoginInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	s.setAuthCookies(c, pair)
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "User logged in successfully")
}

// Logout handles POST /api/v1/users/logout
//
// @Summary Log out and clear session cookies
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /users/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	token, _ := middleware.TokenFromRequest(c)
	if err := s.authService.Logout(c.UserContext(), currentUser(c), token); err != nil {
		return err
	}
	s.clearAuthCookies(c)
	return models.Respond(c, fiber.StatusOK, fiber.Map{}, "User logged out")
}

// RefreshToken handles POST /api/v1/users/refresh-token. The refresh token
// comes from the cookie or the body.
//
// @Summary Rotate the access and refresh tokens
// @Tags users
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /users/refresh-token [post]
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	token := c.Cookies(refreshTokenCookie)
	if token == "" {
		var req struct {
			RefreshToken string `json:"refreshToken" form:"refreshToken"`
		}
		if len(c.Body()) > 0 {
			if err := parseBody(c, &req); err != nil {
				return err
			}
		}
		token = req.RefreshToken
	}

	pair, err := s.authService.Refresh(c.UserContext(), token)
	if err != nil {
		return err
	}

	s.setAuthCookies(c, pair)
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "Access token refreshed")
}

// ChangePassword handles POST /api/v1/users/change-password
//
// @Summary Change the current user's password
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /users/change-password [post]
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		OldPassword string `json:"oldPassword" form:"oldPassword"`
		NewPassword string `json:"newPassword" form:"newPassword"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := s.authService.ChangePassword(c.UserContext(), currentUser(c), req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{}, "Password changed successfully")
}

// GetCurrentUser handles GET /api/v1/users/current-user
//
// @Summary Get the current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /users/current-user [get]
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userService.CurrentUser(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, user, "Current user fetched successfully")
}

// UpdateAccount handles PATCH /api/v1/users/update-account
//
// @Summary Update full name and email
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /users/update-account [patch]
func (s *Server) UpdateAccount(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"fullName" form:"fullName"`
		Email    string `json:"email" form:"email"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := s.userService.UpdateAccount(c.UserContext(), service.UpdateAccountInput{
		UserID:   currentUser(c),
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, user, "Account details updated successfully")
}

// UpdateAvatar handles PATCH /api/v1/users/avatar (multipart)
//
// @Summary Replace the avatar
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /users/avatar [patch]
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	staged, err := s.stager.Stage(c, "avatar", true)
	if err != nil {
		return err
	}
	defer staged.Remove()

	user, err := s.userService.UpdateAvatar(c.UserContext(), currentUser(c), staged.Path)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, user, "Avatar updated successfully")
}

// UpdateCoverImage handles PATCH /api/v1/users/cover-image (multipart)
//
// @Summary Replace the cover image
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /users/cover-image [patch]
func (s *Server) UpdateCoverImage(c *fiber.Ctx) error {
	staged, err := s.stager.Stage(c, "coverImage", true)
	if err != nil {
		return err
	}
	defer staged.Remove()

	user, err := s.userService.UpdateCoverImage(c.UserContext(), currentUser(c), staged.Path)
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, user, "Cover image updated successfully")
}

// GetChannelProfile handles GET /api/v1/users/c/:username
//
// @Summary Get a channel profile
// @Tags users
// @Produce json
// @Param username path string true "username"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /users/c/{username} [get]
func (s *Server) GetChannelProfile(c *fiber.Ctx) error {
	profile, err := s.userService.ChannelProfile(c.UserContext(), c.Params("username"), middleware.Viewer(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, profile, "User channel fetched successfully")
}

// GetWatchHistory handles GET /api/v1/users/history
//
// @Summary Get the watch history
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.APIResponse
// @Failure default {object} models.ErrorResponse
// @Router /users/history [get]
func (s *Server) GetWatchHistory(c *fiber.Ctx) error {
	videos, err := s.userService.WatchHistory(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return models.Respond(c, fiber.StatusOK, videos, "Watch history fetched successfully")
}

package service

import (
	"context"
	"errors"
	"strings"

	"vidtube/internal/auth"
	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer is the part of auth.TokenManager the account flows need.
type TokenIssuer interface {
	IssuePair(user *models.User) (*auth.TokenPair, error)
	ParseRefresh(token string) (*auth.Claims, error)
	Revoke(ctx context.Context, token string) error
}

// AuthService handles registration, sessions and passwords.
type AuthService struct {
	userRepo   repository.UserRepository
	tokens     TokenIssuer
	uploader   media.Uploader
	bcryptCost int
}

type RegisterInput struct {
	Username   string
	Email      string
	FullName   string
	Password   string
	AvatarPath string
	CoverPath  string
}

type LoginInput struct {
	Email    string
	Username string
	Password string
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, uploader media.Uploader) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		uploader:   uploader,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.bcryptCost = cost
	return s
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)

	if username == "" || email == "" || fullName == "" || in.Password == "" {
		return nil, models.NewValidationError("All fields are required")
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, validationErr(err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, validationErr(err)
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, validationErr(err)
	}
	if in.AvatarPath == "" {
		return nil, models.NewValidationError("Avatar file is required")
	}

	exists, err := s.userRepo.ExistsByLogin(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("User with email or username already exists", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	avatar, err := s.uploader.Upload(ctx, in.AvatarPath, media.KindImage)
	if err != nil {
		return nil, models.NewInternalErrorf("Failed to upload avatar", err)
	}
	user := &models.User{
		Username:       username,
		Email:          email,
		FullName:       fullName,
		Avatar:         avatar.URL,
		AvatarPublicID: avatar.PublicID,
		Password:       string(hashed),
	}

	if in.CoverPath != "" {
		cover, err := s.uploader.Upload(ctx, in.CoverPath, media.KindImage)
		if err != nil {
			destroyQuietly(ctx, s.uploader, avatar.PublicID, media.KindImage)
			return nil, models.NewInternalErrorf("Failed to upload cover image", err)
		}
		user.CoverImage = cover.URL
		user.CoverImagePublicID = cover.PublicID
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		destroyQuietly(ctx, s.uploader, user.AvatarPublicID, media.KindImage)
		destroyQuietly(ctx, s.uploader, user.CoverImagePublicID, media.KindImage)
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "User registered", "user_id", user.ID, "username", user.Username)
	return s.userRepo.GetByID(ctx, user.ID)
}

// Login verifies credentials, issues a token pair and stores the refresh
// token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, *auth.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if email == "" && username == "" {
		return nil, nil, models.NewValidationError("Username or email is required")
	}
	if in.Password == "" {
		return nil, nil, models.NewValidationError("Password is required")
	}

	user, err := s.userRepo.GetByLogin(ctx, email, username)
	if err != nil {
		if models.StatusFor(err) == 404 {
			return nil, nil, &models.AppError{Code: models.CodeNotFound, Message: "User does not exist"}
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, nil, models.NewUnauthorizedError("Invalid user credentials")
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout clears the stored refresh token and revokes the access token.
func (s *AuthService) Logout(ctx context.Context, userID uint, accessToken string) error {
	if err := s.userRepo.Update(ctx, userID, map[string]any{"refresh_token": ""}); err != nil {
		return err
	}
	if accessToken != "" {
		if err := s.tokens.Revoke(ctx, accessToken); err != nil {
			middleware.Logger.WarnContext(ctx, "Failed to revoke access token", "error", err)
		}
	}
	return nil
}

// Refresh rotates the token pair. A refresh token is accepted once: it must
// match the one stored at the last login or refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if refreshToken == "" {
		return nil, models.NewUnauthorizedError("Unauthorized request")
	}
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid refresh token")
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, models.NewUnauthorizedError("Invalid refresh token")
		}
		return nil, err
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, models.NewUnauthorizedError("Refresh token is expired or used")
	}
	return s.issue(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return models.NewValidationError("Old and new passwords are required")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return models.NewValidationError("Invalid old password")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return validationErr(err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.Update(ctx, userID, map[string]any{"password": string(hashed)})
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*auth.TokenPair, error) {
	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, models.NewInternalErrorf("Failed to generate tokens", err)
	}
	if err := s.userRepo.Update(ctx, user.ID, map[string]any{"refresh_token": pair.RefreshToken}); err != nil {
		return nil, err
	}
	user.RefreshToken = pair.RefreshToken
	return pair, nil
}

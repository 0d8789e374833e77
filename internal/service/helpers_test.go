package service

import (
	"errors"
	"testing"
	"time"

	"vidtube/internal/auth"
	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/media/mediatest"
	"vidtube/internal/models"
	"vidtube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeForbidden)
}

type testEnv struct {
	db       *gorm.DB
	uploader *mediatest.Fake
	tokens   *auth.TokenManager

	users         repository.UserRepository
	videos        repository.VideoRepository
	comments      repository.CommentRepository
	tweets        repository.TweetRepository
	playlists     repository.PlaylistRepository
	subscriptions repository.SubscriptionRepository
	likes         repository.LikeRepository

	authSvc      *AuthService
	userSvc      *UserService
	videoSvc     *VideoService
	commentSvc   *CommentService
	tweetSvc     *TweetService
	playlistSvc  *PlaylistService
	subSvc       *SubscriptionService
	likeSvc      *LikeService
	dashboardSvc *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	env := &testEnv{
		db:       db,
		uploader: &mediatest.Fake{},
		tokens: auth.NewTokenManager(&config.Config{
			AccessTokenSecret:  "test-access-secret-0123456789abcdef",
			RefreshTokenSecret: "test-refresh-secret-0123456789abcdef",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: time.Hour,
		}, nil),
		users:         repository.NewUserRepository(db),
		videos:        repository.NewVideoRepository(db),
		comments:      repository.NewCommentRepository(db),
		tweets:        repository.NewTweetRepository(db),
		playlists:     repository.NewPlaylistRepository(db),
		subscriptions: repository.NewSubscriptionRepository(db),
		likes:         repository.NewLikeRepository(db),
	}
	store := cache.NewStore(nil)

	env.authSvc = NewAuthService(env.users, env.tokens, env.uploader).WithBcryptCost(bcrypt.MinCost)
	env.userSvc = NewUserService(env.users, env.subscriptions, env.uploader, store)
	env.videoSvc = NewVideoService(env.videos, env.users, env.uploader)
	env.commentSvc = NewCommentService(env.comments, env.videos)
	env.tweetSvc = NewTweetService(env.tweets, env.users)
	env.playlistSvc = NewPlaylistService(env.playlists, env.videos, env.users)
	env.subSvc = NewSubscriptionService(env.subscriptions, env.users, store)
	env.likeSvc = NewLikeService(env.likes, env.videos, env.comments, env.tweets)
	env.dashboardSvc = NewDashboardService(repository.NewDashboardRepository(db), env.videos)
	return env
}

func (e *testEnv) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: "User " + username,
		Avatar:   "https://media.test/" + username,
		Password: "x",
	}
	require.NoError(t, e.users.Create(t.Context(), u))
	return u
}

func (e *testEnv) video(t *testing.T, owner *models.User, title string, published bool) *models.Video {
	t.Helper()
	v := &models.Video{
		VideoFile:         "https://media.test/" + title + ".mp4",
		VideoFilePublicID: "video-" + title,
		Thumbnail:         "https://media.test/" + title + ".jpg",
		ThumbnailPublicID: "image-" + title,
		Title:             title,
		Description:       "desc " + title,
		IsPublished:       published,
		OwnerID:           owner.ID,
	}
	require.NoError(t, e.videos.Create(t.Context(), v))
	return v
}

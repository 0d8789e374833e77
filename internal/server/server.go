// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"time"

	_ "vidtube/docs" // swagger docs
	"vidtube/internal/auth"
	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/media"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *auth.TokenManager
	limiter        *middleware.Limiter
	stager         *media.Stager

	authService         *service.AuthService
	userService         *service.UserService
	videoService        *service.VideoService
	commentService      *service.CommentService
	tweetService        *service.TweetService
	playlistService     *service.PlaylistService
	subscriptionService *service.SubscriptionService
	likeService         *service.LikeService
	dashboardService    *service.DashboardService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; caching, revocation and rate limiting then degrade
// to no-ops.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, uploader media.Uploader) (*Server, error) {
	stager, err := media.NewStager(cfg.UploadTmpDir)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	dashRepo := repository.NewDashboardRepository(db)

	tokens := auth.NewTokenManager(cfg, redisClient)
	store := cache.NewStore(redisClient)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("vidtube-api"),
		tokens:         tokens,
		limiter:        middleware.NewLimiter(redisClient, cfg.Env),
		stager:         stager,

		authService:         service.NewAuthService(userRepo, tokens, uploader),
		userService:         service.NewUserService(userRepo, subRepo, uploader, store),
		videoService:        service.NewVideoService(videoRepo, userRepo, uploader),
		commentService:      service.NewCommentService(commentRepo, videoRepo),
		tweetService:        service.NewTweetService(tweetRepo, userRepo),
		playlistService:     service.NewPlaylistService(playlistRepo, videoRepo, userRepo),
		subscriptionService: service.NewSubscriptionService(subRepo, userRepo, store),
		likeService:         service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo),
		dashboardService:    service.NewDashboardService(dashRepo, videoRepo),
	}, nil
}

// App builds the Fiber application with middleware and routes installed.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}
	app := fiber.New(fiber.Config{
		AppName:      "VidTube API",
		BodyLimit:    s.config.UploadLimitBytes(),
		ErrorHandler: ErrorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// ErrorHandler writes every error returned by a handler or middleware as the
// error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "Unhandled error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}
	return models.RespondWithError(c, status, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected browser requests still get CORS headers.
	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				StatusCode: fiber.StatusTooManyRequests,
				Message:    "Too many requests, please try again later.",
				Code:       "RATE_LIMITED",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")
	api.Get("/healthcheck", s.HealthCheck)

	requireAuth := middleware.RequireAuth(s.tokens)
	optionalAuth := middleware.OptionalAuth(s.tokens)

	users := api.Group("/users")
	users.Post("/register", s.limiter.RateLimit(5, 10*time.Minute, "register"), s.Register)
	users.Post("/login", s.limiter.RateLimit(10, 5*time.Minute, "login"), s.Login)
	users.Post("/refresh-token", s.RefreshToken)
	users.Post("/logout", requireAuth, s.Logout)
	users.Post("/change-password", requireAuth, s.ChangePassword)
	users.Get("/current-user", requireAuth, s.GetCurrentUser)
	users.Patch("/update-account", requireAuth, s.UpdateAccount)
	users.Patch("/avatar", requireAuth, s.UpdateAvatar)
	users.Patch("/cover-image", requireAuth, s.UpdateCoverImage)
	users.Get("/c/:username", requireAuth, s.GetChannelProfile)
	users.Get("/history", requireAuth, s.GetWatchHistory)

	videos := api.Group("/videos")
	videos.Get("/", s.GetVideos)
	videos.Post("/", requireAuth, s.limiter.RateLimit(20, time.Hour, "publish_video"), s.PublishVideo)
	// Specific routes before generic /:videoId
	videos.Patch("/toggle/publish/:videoId", requireAuth, s.TogglePublishStatus)
	videos.Get("/:videoId", optionalAuth, s.GetVideo)
	videos.Patch("/:videoId", requireAuth, s.UpdateVideo)
	videos.Delete("/:videoId", requireAuth, s.DeleteVideo)

	comments := api.Group("/comments")
	comments.Patch("/c/:commentId", requireAuth, s.UpdateComment)
	comments.Delete("/c/:commentId", requireAuth, s.DeleteComment)
	comments.Get("/:videoId", optionalAuth, s.GetVideoComments)
	comments.Post("/:videoId", requireAuth, s.limiter.RateLimit(30, time.Minute, "create_comment"), s.AddComment)
	comments.Patch("/:commentId", requireAuth, s.UpdateComment)
	comments.Delete("/:commentId", requireAuth, s.DeleteComment)

	tweets := api.Group("/tweets")
	tweets.Post("/", requireAuth, s.limiter.RateLimit(30, time.Minute, "create_tweet"), s.CreateTweet)
	tweets.Get("/user/:userId", s.GetUserTweets)
	tweets.Patch("/:tweetId", requireAuth, s.UpdateTweet)
	tweets.Delete("/:tweetId", requireAuth, s.DeleteTweet)

	subscriptions := api.Group("/subscriptions")
	subscriptions.Post("/toggle/:channelId", requireAuth, s.ToggleSubscription)
	subscriptions.Get("/count/:channelId", s.GetSubscriberCount)
	subscriptions.Get("/is-subscribed/:channelId", requireAuth, s.GetIsSubscribed)
	subscriptions.Get("/u/:subscriberId", requireAuth, s.GetSubscribedChannels)
	subscriptions.Get("/subscribers/:channelId", requireAuth, s.GetChannelSubscribers)

	playlists := api.Group("/playlists")
	playlists.Post("/", requireAuth, s.CreatePlaylist)
	playlists.Get("/user/:userId", s.GetUserPlaylists)
	playlists.Patch("/add/:videoId/:playlistId", requireAuth, s.AddVideoToPlaylist)
	playlists.Patch("/remove/:videoId/:playlistId", requireAuth, s.RemoveVideoFromPlaylist)
	playlists.Get("/:playlistId", optionalAuth, s.GetPlaylist)
	playlists.Patch("/:playlistId", requireAuth, s.UpdatePlaylist)
	playlists.Delete("/:playlistId", requireAuth, s.DeletePlaylist)

	likes := api.Group("/likes", requireAuth)
	likes.Post("/toggle/v/:videoId", s.ToggleVideoLike)
	likes.Post("/toggle/c/:commentId", s.ToggleCommentLike)
	likes.Post("/toggle/t/:tweetId", s.ToggleTweetLike)
	likes.Get("/videos", s.GetLikedVideos)

	dashboard := api.Group("/dashboard", requireAuth)
	dashboard.Get("/stats", s.GetChannelStats)
	dashboard.Get("/videos", s.GetChannelVideos)
}

// HealthCheck answers the API-level health probe.
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /healthcheck [get]
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return models.Respond(c, fiber.StatusOK, fiber.Map{"status": "OK"}, "Health check passed")
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so
// only the database decides readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("Server starting", "port", s.config.Port, "env", s.config.Env)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing sql DB", "error", err)
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", "error", err)
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}

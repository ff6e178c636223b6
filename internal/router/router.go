package router

import (
	"context"
	"time"

	"github.com/anonto42/nano-social/backend/internal/handlers"
	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// Dependencies is everything the routes need. IdentityVerifier and MediaStore
// are optional; their routes are only mounted when set.
type Dependencies struct {
	Store            repositories.Store
	Tokens           *services.TokenService
	IdentityVerifier services.IdentityVerifier
	MediaStore       services.MediaStore
	MaxUploadBytes   int64
	TrendingCacheTTL time.Duration
	Ping             func(ctx context.Context) error
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	// Health check - always accessible
	e.GET("/health", handlers.NewHealthHandler(deps.Ping).HealthCheck)

	// --- Initialize Services ---
	store := deps.Store
	authService := services.NewAuthService(store, deps.Tokens, deps.IdentityVerifier)
	userService := services.NewUserService(store)
	postService := services.NewPostService(store)
	feedService := services.NewFeedService(store, deps.TrendingCacheTTL)
	followService := services.NewFollowService(store)
	likeService := services.NewLikeService(store)
	commentService := services.NewCommentService(store)
	notificationService := services.NewNotificationService(store)
	messageService := services.NewMessageService(store)
	sharedPostService := services.NewSharedPostService(store)
	hashtagService := services.NewHashtagService(store)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(authService)
	authHandler.RegisterAuthRoutes(authGroup)
	logger.Log.Info("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(deps.Tokens))
	authHandler.RegisterSessionRoutes(api)

	// User profile routes
	handlers.NewUserHandler(userService, followService).RegisterProfileRoutes(api)
	logger.Log.Info("User profile routes configured.")

	// Feed and post routes
	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api)
	handlers.NewPostHandler(postService, feedHandler).RegisterPostRoutes(api)
	logger.Log.Info("Feed and post routes configured.")

	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api)
	handlers.NewLikeHandler(likeService).RegisterLikeRoutes(api)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	handlers.NewMessageHandler(messageService).RegisterMessageRoutes(api)
	handlers.NewSharedPostHandler(sharedPostService).RegisterSharedPostRoutes(api)
	handlers.NewHashtagHandler(hashtagService).RegisterHashtagRoutes(api)
	logger.Log.Info("Follow, like, comment, notification, message, share and hashtag routes configured.")

	if deps.MediaStore != nil {
		mediaService := services.NewMediaService(deps.MediaStore, deps.MaxUploadBytes)
		handlers.NewMediaHandler(mediaService).RegisterMediaRoutes(api)
		logger.Log.Info("Media routes configured.")
	}

	logger.Log.Info("All routes configured.")
}

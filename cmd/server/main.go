package main

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/router"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/anonto42/nano-social/backend/pkg/firebase"
	"github.com/anonto42/nano-social/backend/pkg/logger"
	"github.com/anonto42/nano-social/backend/pkg/storage"
	"github.com/anonto42/nano-social/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.Env, cfg.LogLevel)

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize databases")
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	if err := db.Migrate(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to migrate database")
	}

	ctx := context.Background()

	var revoked services.RevocationList
	if db.Redis != nil {
		revoked = services.NewRedisRevocationList(db.Redis)
	} else {
		revoked = services.NewMemoryRevocationList(cfg.RefreshTokenTTL)
	}
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, revoked)

	sqlDB, err := db.Gorm.DB()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to get SQL DB from GORM")
	}

	deps := router.Dependencies{
		Store:            repositories.NewGormStore(db.Gorm),
		Tokens:           tokens,
		MaxUploadBytes:   cfg.MaxUploadBytes,
		TrendingCacheTTL: cfg.TrendingCacheTTL,
		Ping:             sqlDB.PingContext,
	}

	// Initialize Firebase
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to initialize Firebase")
		}
		deps.IdentityVerifier = firebaseApp
	}

	// Initialize media storage
	if cfg.Minio.Enabled() {
		mediaStore, err := storage.NewMinioStore(ctx, cfg.Minio)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to initialize media storage")
		}
		deps.MediaStore = mediaStore
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, deps)

	// Start server
	logger.Log.WithField("port", cfg.Port).Info("Starting server")
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

package main

import (
	"context"
	"log"
	"time"

	"quickchat/config"
	"quickchat/internal/handler"
	appredis "quickchat/internal/redis"
	"quickchat/internal/repository"
	"quickchat/internal/server"
	"quickchat/internal/services"
	"quickchat/internal/storage"
	"quickchat/internal/websocket"
	"quickchat/pkg/database"
	"quickchat/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.AppMode)
	defer l.Sync()
	logger.SetGlobalLogger(l)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)

	// Redis is optional: without it the server runs with rate limiting
	// disabled and presence tracked in-process only.
	var limiter *appredis.RateLimiter
	var presence *appredis.PresenceStore
	redisClient := appredis.NewClient(appredis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := appredis.Ping(redisClient); err != nil {
		l.Warnf("Redis unavailable, rate limiting disabled: %s", err)
	} else {
		limiter = appredis.NewRateLimiter(redisClient, appredis.DefaultRateLimitConfig())
		presence = appredis.NewPresenceStore(redisClient)
	}

	// S3 is optional in development: uploads fail cleanly when it is
	// not configured.
	var uploader services.Uploader
	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewClient(context.Background(), storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
		})
		if err != nil {
			log.Fatalf("Failed to initialize s3 client: %v", err)
		}
		uploader = s3Client
	} else {
		l.Warnf("S3 not configured, image uploads will fail")
	}

	uploadTimeout := time.Duration(cfg.UploadTimeoutSec) * time.Second

	hub := websocket.NewHub()
	notifier := websocket.NewHubNotifier(hub)

	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, uploader, uploadTimeout)
	messageService := services.NewMessageService(messageRepo, userRepo, uploader, notifier, l, uploadTimeout)

	handlers := &server.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Message: handler.NewMessageHandler(messageService),
		WS:      websocket.NewHandler(authService, hub, presence, l),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}

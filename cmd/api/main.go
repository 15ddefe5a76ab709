package main

import (
	"context"
	"log"

	"filevault/config"
	"filevault/internal/handler"
	"filevault/internal/redis"
	"filevault/internal/repository"
	"filevault/internal/server"
	"filevault/internal/services"
	"filevault/internal/storage"
	"filevault/pkg/database"
	"filevault/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	logMode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		logMode = logger.ProductionMode
	}
	l := logger.New(logMode)
	defer l.Logger.Sync()
	logger.SetGlobalLogger(l)

	database.Connect(cfg)
	if err := repository.InitSchema(database.DB); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	store, err := storage.NewClient(context.Background(), storage.S3Config{
		Region:     cfg.S3Region,
		Bucket:     cfg.S3Bucket,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		Endpoint:   cfg.S3Endpoint,
		PublicBase: cfg.S3PublicBase,
	})
	if err != nil {
		log.Fatalf("Failed to initialize object store: %v", err)
	}

	redisClient := redis.NewClient(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	limiter := redis.NewRateLimiter(redisClient, redis.DefaultRateLimitConfig())

	fileRepo := repository.NewFileRepository(database.DB)
	userRepo := repository.NewUserRepository(database.DB)

	// Without a cipher key the email shadow column is simply left empty.
	var cipher *services.EmailCipher
	if cfg.EmailKeyHex != "" {
		cipher, err = services.NewEmailCipher(cfg.EmailKeyHex)
		if err != nil {
			log.Fatalf("Invalid email cipher key: %v", err)
		}
	} else {
		l.Warnf("EMAIL_CIPHER_KEY not set, email shadow disabled")
	}

	authService := services.NewAuthService(userRepo, cipher, cfg)
	fileService := services.NewFileService(fileRepo, store, l)
	userService := services.NewUserService(userRepo, store, l)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth: handler.NewAuthHandler(authService),
		File: handler.NewFileHandler(fileService),
		User: handler.NewUserHandler(userService),
	}, authService, limiter)

	if err := srv.Start(); err != nil {
		l.Errorf("Server shutdown error: %s", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"eduPath/internal/advisor"
	"eduPath/internal/api"
	"eduPath/internal/application"
	"eduPath/internal/auth"
	"eduPath/internal/config"
	"eduPath/internal/database"
	"eduPath/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	logger.Info("database ready",
		slog.String("host", cfg.Database.Host),
		slog.String("name", cfg.Database.Name),
	)

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	logger.Info("storage client ready", slog.String("bucket", cfg.MinIO.Bucket))

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Error("close asynq client failed", slog.Any("error", err))
		}
	}()

	authService, err := auth.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	var scanner application.Scanner
	if cfg.Clamd.Addr != "" {
		scanner = application.NewClamScanner(cfg.Clamd.Addr)
		logger.Info("malware scanning enabled", slog.String("clamd_addr", cfg.Clamd.Addr))
	}
	assembler := application.NewAssembler(db, storageClient, scanner, logger)
	advisorClient := advisor.NewClient(cfg.Advisor, logger)

	router := api.NewRouter(logger)
	api.RegisterRoutes(
		router,
		db,
		asynqClient,
		authService,
		redisClient,
		logger,
		assembler,
		advisorClient,
		storageClient,
		cfg.API.AllowedOrigins,
		cfg.Auth.LoginRateLimitPerHour,
	)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("address", address))
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}

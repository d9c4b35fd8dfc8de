package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"reconagent"
	"reconagent/internal/api/handler/endpoints"
	"reconagent/internal/api/service"
	"reconagent/pkg"
)

func main() {
	cfg := reconagent.InitConfig(".env")
	logger := reconagent.NewLogger()

	gin.SetMode(gin.ReleaseMode)
	if cfg.Mode == "dev" {
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(cfg.ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	llm, err := pkg.NewLLMClient(pkg.LLMConfig{
		Endpoint:   cfg.AzureOpenAI.Endpoint,
		APIKey:     cfg.AzureOpenAI.APIKey,
		Deployment: cfg.AzureOpenAI.Deployment,
		APIVersion: cfg.AzureOpenAI.APIVersion,
		Timeout:    cfg.Timeouts.LLM,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Azure OpenAI client")
	}

	cache := initCache(ctx, cfg, logger)
	store := initBlobStore(cfg, logger)

	classifier := service.NewClassifierService(logger, llm, cache)
	generator := service.NewSQLGenService(logger, llm, cache)
	gateway := service.NewGatewayService(logger, service.GatewayConfig{
		Host:         cfg.ReconDatabase.Host,
		Port:         cfg.ReconDatabase.Port,
		User:         cfg.ReconDatabase.User,
		Password:     cfg.ReconDatabase.Password,
		DatabaseName: cfg.ReconDatabase.DatabaseName,
		Timeout:      cfg.Timeouts.Database,
		MaxRows:      cfg.Limits.ResultMaxRows,
	})
	exporter := service.NewExportService(logger, store, cfg.Timeouts.Upload)
	composer := service.NewAnswerService(logger, llm, cfg.Limits.AnswerSampleRows, cfg.Limits.ResultMaxRows)
	chat := service.NewChatService(logger, classifier, generator, gateway, exporter, composer, cfg.Limits.ExportRowThreshold)

	endpoints.ChatHandler(router, cfg, logger, chat)

	logger.Debug().Msgf("Starting reconciliation agent API on port %s", cfg.ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Msg(err.Error())
	}
}

func initCache(ctx context.Context, cfg reconagent.AppConfig, logger zerolog.Logger) *pkg.Cache {
	if cfg.RedisConfig.Host == "" {
		return pkg.NewCache(nil, cfg.CacheTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConfig.Host + ":" + cfg.RedisConfig.Port,
		Password: cfg.RedisConfig.Password,
		DB:       cfg.RedisConfig.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Msg("Redis unreachable, response caching disabled")
		return pkg.NewCache(nil, cfg.CacheTTL)
	}

	logger.Info().Msg("Redis response cache enabled")
	return pkg.NewCache(client, cfg.CacheTTL)
}

func initBlobStore(cfg reconagent.AppConfig, logger zerolog.Logger) service.BlobUploader {
	switch {
	case cfg.BlobStorage.ConnectionString != "":
		store, err := pkg.NewBlobStoreFromConnectionString(cfg.BlobStorage.ConnectionString, cfg.BlobStorage.Container, cfg.BlobStorage.AccountURL)
		if err != nil {
			logger.Warn().Err(err).Msg("Blob store initialization failed, exports disabled")
			return nil
		}
		return store
	case cfg.BlobStorage.AccountURL != "":
		store, err := pkg.NewBlobStore(cfg.BlobStorage.AccountURL, cfg.BlobStorage.Container)
		if err != nil {
			logger.Warn().Err(err).Msg("Blob store initialization failed, exports disabled")
			return nil
		}
		return store
	default:
		logger.Warn().Msg("No blob storage configured, exports disabled")
		return nil
	}
}

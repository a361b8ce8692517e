package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	dbadapter "schedsync/internal/adapter/db"
	httpadapter "schedsync/internal/adapter/http"
	"schedsync/internal/adapter/http/handlers"
	httpmiddleware "schedsync/internal/adapter/http/middleware"
	"schedsync/internal/adapter/llm"
	"schedsync/internal/adapter/memory"
	redisadapter "schedsync/internal/adapter/redis"
	appservice "schedsync/internal/app/service"
	"schedsync/internal/config"
	"schedsync/internal/core/ports"
	"schedsync/pkg/translator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if err := translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	}); err != nil {
		logger.Warn("translations unavailable, falling back to message keys", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		db         *sqlx.DB
		repository ports.ScheduleRepository
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, schedules are lost on restart")
		repository = memory.NewScheduleRepository()
	default:
		db, err = dbadapter.ConnectDB(ctx, cfg)
		if err != nil {
			logger.Fatal("failed to connect to mysql", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close mysql connection", zap.Error(err))
			}
		}()
		if cfg.AutoMigrate {
			if err := dbadapter.Migrate(db, cfg.MigrationsPath); err != nil {
				logger.Fatal("failed to migrate database", zap.Error(err))
			}
		}
		repository = dbadapter.NewScheduleRepository(db)
	}

	redisClient, err := redisadapter.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("failed to close redis connection", zap.Error(err))
		}
	}()

	llmClient, err := llm.NewClient(cfg.LLMProvider, cfg.LLMModel, cfg.LLMBaseURL, cfg.LLMAPIKey)
	if err != nil {
		logger.Fatal("failed to create llm client", zap.Error(err))
	}

	generator := llm.NewBreakerGenerator(llm.NewGenerator(llmClient), llm.BreakerConfig{})

	scheduleService := appservice.NewScheduleService(repository, appservice.WithDeleteCompaction(cfg.CompactOnDelete))
	generationService := appservice.NewGenerationService(
		redisadapter.NewGenerationGuard(redisClient),
		generator,
		repository,
		scheduleService,
		appservice.GenerationConfig{LockTTL: cfg.GenerationLockTTL, Timeout: cfg.LLMTimeout},
	)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}
	r.Use(gin.Recovery(), httpmiddleware.RequestIDMiddleware(), httpmiddleware.GinZapMiddleware(logger))
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:     handlers.NewHealthHandler(db, redisClient, generator),
		Schedule:   handlers.NewScheduleHandler(scheduleService),
		Generation: handlers.NewGenerationHandler(generationService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		// Generation waits on the model, so writes may take up to the LLM timeout.
		WriteTimeout: cfg.LLMTimeout + 15*time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("storage", cfg.StorageDriver), zap.String("llm_provider", cfg.LLMProvider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}

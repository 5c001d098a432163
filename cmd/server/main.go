package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/config"
	"github.com/sirine707/ensuite-study-buddy/internal/database"
	"github.com/sirine707/ensuite-study-buddy/internal/handlers"
	"github.com/sirine707/ensuite-study-buddy/internal/llm"
	"github.com/sirine707/ensuite-study-buddy/internal/logger"
	"github.com/sirine707/ensuite-study-buddy/internal/middleware"
	"github.com/sirine707/ensuite-study-buddy/internal/router"
	"github.com/sirine707/ensuite-study-buddy/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	log := logger.New(cfg.Env, cfg.LogLevel)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting Study Buddy backend", zap.String("env", cfg.Env))

	ctx := context.Background()

	// ──── Step 2: Initialize Language Model ────
	provider, closeProvider, err := newProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("language model initialization failed (provider %s): %w", cfg.LLMProvider, err)
	}
	defer closeProvider()

	var model llm.Model = llm.NewTimed(provider, cfg.LLMTimeout)
	model = llm.NewLimited(model, cfg.LLMConcurrentReqs)
	model = llm.NewLogged(model, cfg.LLMProvider+"/"+cfg.LLMModel, log)
	log.Info("Language model ready",
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", cfg.LLMModel),
		zap.Int("concurrent_requests", cfg.LLMConcurrentReqs),
	)

	// ──── Step 3: Initialize Services ────
	youtubeService := services.NewYouTubeService(cfg.TranscriptLanguages, cfg.TranscriptTimeout, log)
	transcriptCache, err := services.NewTranscriptCache(youtubeService, cfg.TranscriptCacheSize, log)
	if err != nil {
		return fmt.Errorf("transcript cache initialization failed: %w", err)
	}
	fileExtractService := services.NewFileExtractService(log)
	extractor := services.NewExtractor(fileExtractService, transcriptCache, log)
	generator := services.NewGenerator(model, cfg.OvergenerationMargin, log)
	studyService := services.NewStudyService(extractor, model, generator, log)

	// ──── Step 4: Initialize Rate Limiter ────
	var store middleware.CounterStore
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		defer redisClient.Close()
		store = middleware.NewRedisStore(redisClient)
		log.Info("Rate limiter backed by Redis")
	} else {
		memoryStore := middleware.NewMemoryStore(time.Minute)
		defer memoryStore.Close()
		store = memoryStore
		log.Info("Rate limiter kept in memory")
	}
	limiter := middleware.NewRateLimiter(store, cfg.RateLimitPerMinute, time.Minute, log)

	// ──── Step 5: Initialize Handlers ────
	studyHandler := handlers.NewStudyHandler(studyService, cfg.MaxUploadBytes(), log)
	contentHandler := handlers.NewContentHandler(youtubeService, cfg.MaxUploadMB, log)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(studyHandler, contentHandler, limiter, log, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: cfg.LLMTimeout + cfg.TranscriptTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Study Buddy backend ready", zap.String("addr", "http://localhost:"+cfg.Port+"/api/v1"))

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	<-shutdownDone
	return nil
}

// newProvider builds the raw model client for cfg.LLMProvider.
func newProvider(ctx context.Context, cfg *config.Config) (llm.Model, func(), error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		m, err := llm.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.LLMModel, float32(cfg.LLMTemperature))
		if err != nil {
			return nil, nil, err
		}
		return m, func() { m.Close() }, nil
	case config.ProviderOllama:
		m, err := llm.NewOllamaModel(cfg.OllamaURL, cfg.LLMModel, cfg.LLMTemperature)
		if err != nil {
			return nil, nil, err
		}
		return m, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

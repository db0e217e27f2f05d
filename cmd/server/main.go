package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pantrylens/kitchen/config"
	httpDelivery "github.com/pantrylens/kitchen/internal/delivery/http"
	"github.com/pantrylens/kitchen/internal/infrastructure/cache"
	"github.com/pantrylens/kitchen/internal/infrastructure/kitchenapi"
	"github.com/pantrylens/kitchen/internal/logging"
	"github.com/pantrylens/kitchen/internal/metrics"
	"github.com/pantrylens/kitchen/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Server.Environment, false)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting PantryLens BFF",
		zap.String("version", "1.0.0"),
		zap.String("port", cfg.Server.Port),
		zap.String("kitchen_api", cfg.API.BaseURL),
		zap.String("cache", cfg.Cache.Type),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache(cfg.Cache.TTL)
	defer memoryCache.Close()

	client := kitchenapi.NewClient(kitchenapi.Config{
		BaseURL:   cfg.API.BaseURL,
		Token:     cfg.API.Token,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		Burst:     cfg.API.Burst,
	}, logger)
	client.SetMetrics(m)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
		logger.Debug("kitchen API body logging enabled")
	}
	if cfg.API.Token == "" {
		logger.Warn("kitchen API token not configured; requests are sent unauthenticated")
	}

	policy, err := usecase.ParseTogglePolicy(cfg.Reconciliation.TogglePolicy)
	if err != nil {
		return err
	}

	// Initialize usecase layer
	validator := usecase.NewValidator()
	searcher := usecase.NewIngredientSearcher(client, memoryCache, usecase.SearchConfig{
		Debounce:       cfg.Search.Debounce,
		MinQueryLength: cfg.Search.MinQueryLength,
		Limit:          cfg.Search.Limit,
		CacheTTL:       cfg.Cache.TTL,
	}, m, logger, nil)
	defer searcher.Close()

	handler := httpDelivery.NewHandler(httpDelivery.Services{
		Reconciliation: usecase.NewReconciliationService(client, validator,
			usecase.ReconciliationConfig{TogglePolicy: policy}, m, logger),
		Recipes: usecase.NewRecipeService(client, validator, logger),
		Recommendations: usecase.NewRecommendationService(client, usecase.RecommendationConfig{
			WindowDays:   cfg.Recommendations.WindowDays,
			Limit:        cfg.Recommendations.Limit,
			DisplayLimit: cfg.Recommendations.DisplayLimit,
		}, logger),
		Nutrition: usecase.NewNutritionService(client, validator, logger),
		Profile:   usecase.NewProfileService(client, validator, logger),
		Search:    searcher,
	}, logger)

	router := httpDelivery.SetupRouter(cfg, handler, reg, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return <-errCh
}

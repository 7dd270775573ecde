package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/planpay/planpay-api/internal/cache"
	"github.com/planpay/planpay-api/internal/client/dynamic"
	"github.com/planpay/planpay-api/internal/client/fern"
	"github.com/planpay/planpay-api/internal/client/openai"
	"github.com/planpay/planpay-api/internal/config"
	"github.com/planpay/planpay-api/internal/funding"
	"github.com/planpay/planpay-api/internal/logger"
	"github.com/planpay/planpay-api/internal/metrics"
	"github.com/planpay/planpay-api/internal/planner"
	"github.com/planpay/planpay-api/internal/server"
)

func main() {
	// Load environment variables from .env file for local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: .env file not found: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	cfg.Normalize()

	logger.InitLogger(cfg.Stage)
	defer logger.Sync()

	store := cache.NewStore()
	collector := metrics.NewCollector()

	fernClient, err := fern.NewClient(
		cfg.FernAPIKey,
		cfg.FernBaseURL,
		cfg.FernOrgID,
		store,
		collector,
		fern.WithTestingConfig(cfg.Testing),
	)
	if err != nil {
		logger.Fatal("failed to build settlement provider client", zap.Error(err))
	}

	openaiClient, err := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	}, collector)
	if err != nil {
		logger.Fatal("failed to build completion client", zap.Error(err))
	}

	walletClient, err := dynamic.NewClient(
		cfg.WalletAPIKey,
		cfg.WalletBaseURL,
		cfg.WalletEnvironmentID,
		collector,
	)
	if err != nil {
		logger.Fatal("failed to build wallet client", zap.Error(err))
	}

	deps := server.Dependencies{
		Config:  cfg,
		Store:   store,
		Parser:  planner.NewParser(openaiClient),
		Wallets: walletClient,
		Funding: funding.NewService(fernClient, store, cfg.Testing),
	}
	router := server.NewRouter(deps)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("stage", cfg.Stage))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

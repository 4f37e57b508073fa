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

	"smartplates/internal/api"
	"smartplates/internal/core/cache"
	"smartplates/internal/infrastructure/config"
	"smartplates/internal/infrastructure/monitoring"
	"smartplates/internal/infrastructure/store"
	"smartplates/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("store_backend", cfg.Store.Backend),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("recipe_api_enabled", cfg.RecipeAPI.Enabled),
		zap.String("recipe_api_auth", config.MaskAPIKey(cfg.RecipeAPI.APIKey)),
		zap.String("openrouter_model", cfg.OpenRouter.Model),
	)

	ctx := context.Background()

	st, err := store.New(ctx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize store", zap.Error(err))
	}
	defer st.Close()

	responseCache, err := cache.New(ctx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if responseCache != nil {
		defer responseCache.Close()
	}

	services := api.NewServices(cfg, st, responseCache, monitoring.NewMetrics())
	router := api.SetupRouter(cfg, services)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}

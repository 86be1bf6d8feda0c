package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vibegen/vibegen-studio/internal/api"
	"github.com/vibegen/vibegen-studio/internal/config"
	"github.com/vibegen/vibegen-studio/internal/db"
	"github.com/vibegen/vibegen-studio/internal/events"
	"github.com/vibegen/vibegen-studio/internal/generator"
	"github.com/vibegen/vibegen-studio/internal/llm"
	"github.com/vibegen/vibegen-studio/internal/logging"
	"github.com/vibegen/vibegen-studio/internal/playback"
	"github.com/vibegen/vibegen-studio/internal/studio"
	"github.com/vibegen/vibegen-studio/internal/ui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir(), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting vibegen studio", "version", config.Version, "data_dir", cfg.DataDir())

	if err := config.LoadStyleOverrides(cfg.StylesFile()); err != nil {
		return fmt.Errorf("failed to load style overrides: %w", err)
	}

	database, err := db.New(cfg.DBPath(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	repo := studio.NewRepository(database.Conn())

	authToken, err := ensureAuthToken(repo)
	if err != nil {
		return fmt.Errorf("failed to ensure auth token: %w", err)
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║                   VIBEGEN STUDIO v0.1.0                   ║")
	fmt.Println("╠═══════════════════════════════════════════════════════════╣")
	fmt.Printf("║  API URL:    http://127.0.0.1:%-27d ║\n", cfg.Port())
	fmt.Printf("║  Auth Token: %-45s ║\n", authToken)
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	if cfg.GatewayKey() == "" {
		logger.Warn("no gateway API key configured, generations will fail",
			"env", config.EnvGatewayKey)
	}

	studioSvc := studio.NewService(repo, logger)
	client := llm.NewClient(cfg.GatewayURL(), cfg.GatewayKey(), cfg.Model(), logger)
	genSvc := generator.NewService(client, studioSvc, repo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var publisher *events.Publisher
	if cfg.RedisAddr() != "" {
		publisher, err = events.NewPublisher(ctx, cfg.RedisAddr(), logger)
		if err != nil {
			logger.Warn("event publishing disabled", "error", err)
		} else {
			defer publisher.Close()
			genSvc.SetProgressFunc(func(p generator.Progress) {
				publisher.PublishProgress(ctx, p)
			})
			genSvc.SetCompletionFunc(func(res generator.Result) {
				publisher.PublishCompleted(ctx, events.CompletedEvent{
					ProjectID:        res.ProjectID,
					UsedFallback:     res.UsedFallback,
					ProcessingTimeMS: res.ProcessingTimeMS,
					Scenes:           len(res.Script.Scenes),
				})
			})
			logger.Info("event publishing enabled", "redis_addr", cfg.RedisAddr())
		}
	}

	player := playback.NewPlayer(logger)
	sim := playback.NewSimulation(400, 700, time.Now().UnixNano())
	go player.Run(ctx)

	apiServer := api.NewServer(api.ServerConfig{
		Port:       cfg.Port(),
		Studio:     studioSvc,
		Repository: repo,
		Generator:  genSvc,
		Player:     player,
		Simulation: sim,
		Logger:     logger,
		StartTime:  startTime,
	})

	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	quitCh := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			close(quitCh)
		case <-quitCh:
		}
	}()

	if cfg.Headless() {
		logger.Info("running in headless mode (no system tray)")
	} else {
		tray := ui.NewTray(ui.TrayConfig{
			Studio:    studioSvc,
			Generator: genSvc,
			Logger:    logger,
			OnQuit: func() {
				close(quitCh)
			},
		})
		go tray.Run()
	}

	<-quitCh

	logger.Info("initiating graceful shutdown")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func ensureAuthToken(repo studio.Repository) (string, error) {
	ctx := context.Background()

	existing, err := repo.GetConfig(ctx, api.AuthTokenKey)
	if err == nil && existing != "" {
		return existing, nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := hex.EncodeToString(tokenBytes)

	if err := repo.SetConfig(ctx, api.AuthTokenKey, token); err != nil {
		return "", err
	}

	return token, nil
}

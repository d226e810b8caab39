package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fpl-cache/internal/models"
)

func main() {
	root, err := NewCompositionRoot()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := root.Cleanup(); err != nil {
			root.Logger.Error("Failed to cleanup resources", zap.Error(err))
		}
	}()

	addr := root.Config.Server.Listen
	root.Logger.Info("Starting cache server", zap.String("addr", addr))
	go func() {
		if err := root.HTTPServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			root.Logger.Error("Server failed to start", zap.Error(err))
		}
	}()

	// Pre-warm slow-moving categories in the background so the first
	// consumers hit warm tiers.
	warmCtx, cancelWarm := context.WithCancel(context.Background())
	defer cancelWarm()
	go warmStartupData(warmCtx, root)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	root.Logger.Info("Shutting down server...")
	cancelWarm()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := root.HTTPServer.Stop(ctx); err != nil {
		root.Logger.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	root.Logger.Info("Server exited")
}

// warmStartupData populates the pre-warm categories: the bootstrap payload
// and the fixtures for the upcoming gameweeks.
func warmStartupData(ctx context.Context, root *CompositionRoot) {
	warmed, err := root.Coordinator.WarmCache(ctx, models.CategoryBootstrap,
		[]string{"static"},
		func(ctx context.Context, _ string) ([]byte, error) {
			return root.FPLClient.Bootstrap(ctx)
		})
	if err != nil {
		root.Logger.Warn("Bootstrap warm interrupted", zap.Error(err))
		return
	}
	root.Logger.Info("Warmed bootstrap data", zap.Int("keys", warmed))

	var gameweeks []string
	for gw := 1; gw <= 38; gw++ {
		gameweeks = append(gameweeks, strconv.Itoa(gw))
	}

	warmed, err = root.Coordinator.WarmCache(ctx, models.CategoryFixtures, gameweeks,
		func(ctx context.Context, id string) ([]byte, error) {
			gw, err := strconv.Atoi(id)
			if err != nil {
				return nil, err
			}
			return root.FPLClient.Fixtures(ctx, gw)
		})
	if err != nil {
		root.Logger.Warn("Fixtures warm interrupted", zap.Error(err))
		return
	}
	root.Logger.Info("Warmed fixtures data", zap.Int("keys", warmed))
}

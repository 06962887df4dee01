// Package main is the entry point for the Hypewire attention-trading
// dashboard backend. It wires the rate-limited generation queue, the three
// external AI clients and the mock trading modules behind one HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hypewire/hypewire/internal/clients/elevenlabs"
	"github.com/hypewire/hypewire/internal/clients/gemini"
	"github.com/hypewire/hypewire/internal/clients/hume"
	"github.com/hypewire/hypewire/internal/config"
	"github.com/hypewire/hypewire/internal/events"
	"github.com/hypewire/hypewire/internal/modules/auth"
	"github.com/hypewire/hypewire/internal/modules/briefing"
	briefinghandlers "github.com/hypewire/hypewire/internal/modules/briefing/handlers"
	"github.com/hypewire/hypewire/internal/modules/markets"
	marketshandlers "github.com/hypewire/hypewire/internal/modules/markets/handlers"
	"github.com/hypewire/hypewire/internal/modules/signals"
	signalshandlers "github.com/hypewire/hypewire/internal/modules/signals/handlers"
	"github.com/hypewire/hypewire/internal/modules/trading"
	tradinghandlers "github.com/hypewire/hypewire/internal/modules/trading/handlers"
	"github.com/hypewire/hypewire/internal/modules/vibe"
	vibehandlers "github.com/hypewire/hypewire/internal/modules/vibe/handlers"
	"github.com/hypewire/hypewire/internal/queue"
	"github.com/hypewire/hypewire/internal/server"
	"github.com/hypewire/hypewire/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting Hypewire")

	bus := events.NewBus()

	// One queue instance owned by main and shared by everything that talks
	// to the generation API; its pacing is the process-wide rate limit.
	generationQueue := queue.New(cfg.GenerationMinInterval, log)

	geminiClient := gemini.NewClient(cfg.GeminiAPIKey, generationQueue, log)
	elevenLabsClient := elevenlabs.NewClient(cfg.ElevenLabsAPIKey, log)

	// Without a key the emotion endpoint is skipped entirely and every vibe
	// request runs the local heuristic.
	var emotionAnalyzer vibe.EmotionAnalyzer
	if cfg.HumeAPIKey != "" {
		emotionAnalyzer = hume.NewClient(cfg.HumeAPIKey, log)
	} else {
		log.Warn().Msg("HUME_API_KEY not set, vibe analysis will use the local heuristic")
	}

	signalsService := signals.NewService(geminiClient, bus, log)
	vibeService := vibe.NewService(emotionAnalyzer, bus, log)
	briefingService := briefing.NewService(geminiClient, elevenLabsClient, bus, log)
	tradingService := trading.NewService(bus, log)
	marketGenerator := markets.NewGenerator(time.Now().UnixNano())

	srv := server.New(server.Config{
		Log:    log,
		Config: cfg,
		Bus:    bus,
		Queue:  generationQueue,

		Signals:  signalshandlers.NewHandler(signalsService, log),
		Vibe:     vibehandlers.NewHandler(vibeService, log),
		Briefing: briefinghandlers.NewHandler(briefingService, log),
		Trading:  tradinghandlers.NewHandler(tradingService, log),
		Markets:  marketshandlers.NewHandler(marketGenerator, log),
		Auth:     auth.NewHandler(log),
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

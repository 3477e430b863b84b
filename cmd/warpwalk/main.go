// Package main is the entry point for warpwalk.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/warpwalk/internal/config"
	"github.com/samdwyer/warpwalk/internal/game"
	"github.com/samdwyer/warpwalk/internal/mapdata"
	"github.com/samdwyer/warpwalk/internal/telemetry"
	"github.com/samdwyer/warpwalk/internal/ui"
	"github.com/samdwyer/warpwalk/internal/world"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := run(); err != nil {
		log.Fatalf("warpwalk: %v", err)
	}
}

func run() error {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}

	logger, err := telemetry.NewLogger(cfg.LogOptions())
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		setupOTelEnv(cfg.Telemetry)
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// Continue without telemetry - game still works
			logger.Warn("telemetry setup failed", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error("telemetry shutdown", zap.Error(err))
				}
			}()
		}
	}

	defs, err := loadMaps(ctx, cfg.Maps.Path)
	if err != nil {
		return err
	}
	logger.Info("maps loaded", zap.Int("areas", len(defs)), zap.String("path", cfg.Maps.Path))

	theme, err := ui.NewTheme(cfg.Palette())
	if err != nil {
		return err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	renderer := ui.NewRenderer(screen, theme)
	g := game.New(ctx, defs, cfg.GameConfig(), renderer, logger)
	return game.NewSession(g, screen, logger).Run(ctx)
}

func loadMaps(ctx context.Context, path string) ([]*world.AreaDefinition, error) {
	if path == "" {
		return mapdata.LoadDefault(ctx)
	}
	return mapdata.LoadPath(ctx, path)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv(tc config.TelemetryConfig) {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", tc.Endpoint)
	}

	// The .env file may hold an unexpanded reference, so the header is built here
	apiKey := os.Getenv("HONEYCOMB_WARPWALK_API_KEY")
	dataset := os.Getenv("HONEYCOMB_WARPWALK_DATASET")
	if dataset == "" {
		dataset = tc.Dataset
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}

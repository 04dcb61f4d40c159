package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minicolabs/minutes-flow/internal/api"
	"github.com/minicolabs/minutes-flow/internal/capture"
	"github.com/minicolabs/minutes-flow/internal/config"
	"github.com/minicolabs/minutes-flow/internal/generator"
	"github.com/minicolabs/minutes-flow/internal/logger"
	"github.com/minicolabs/minutes-flow/internal/minutes"
	"github.com/minicolabs/minutes-flow/internal/session"
	"github.com/minicolabs/minutes-flow/internal/watcher"
	"github.com/minicolabs/minutes-flow/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Minutes Generation Service")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Model: %s", cfg.Gemini.Model)
	log.Info(ctx, "Configuration loaded successfully")

	// Resolve the credential once, at startup, and inject it. A missing key
	// is a configuration error before any request is attempted.
	apiKey := cfg.APIKey()

	gen, err := generator.New(ctx, apiKey, cfg.Gemini, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize generator: %v", err)
		log.Error(ctx, "Set %s in the environment and restart", cfg.Gemini.APIKeyEnv)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	recorder := capture.New(cfg.Capture, exec, log)
	coord := session.NewCoordinator(gen, recorder, log)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Optional inbox watcher: audio files dropped into the inbox become the
	// session's captured clip.
	if cfg.Watcher.Enabled {
		if err := os.MkdirAll(cfg.Watcher.InboxDir, 0755); err != nil {
			log.Error(ctx, "Failed to create inbox directory: %v", err)
			os.Exit(1)
		}

		w, err := watcher.New(cfg.Watcher.InboxDir, func(ctx context.Context, clip *capture.Clip) error {
			if err := coord.SetMode(ctx, minutes.ModeUpload); err != nil {
				return err
			}
			coord.AttachClip(clip)
			log.Info(ctx, "Inbox clip attached: %s", clip.Ref)
			return nil
		}, log)
		if err != nil {
			log.Error(ctx, "Failed to create inbox watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				log.Error(ctx, "Inbox watcher error: %v", err)
			}
		}()
	}

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.New(coord, log).Routes(),
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Minutes service is ready!")
	log.Info(ctx, "Listening on: %s", cfg.Server.Addr)
	if cfg.Watcher.Enabled {
		log.Info(ctx, "Inbox: %s", cfg.Watcher.InboxDir)
	}
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Server shutdown: %v", err)
	}
	cancel()

	log.Info(ctx, "Minutes service stopped")
}

// Kbengined serves the support-chatbot knowledge retrieval engine over HTTP.
//
// It loads the FAQ corpus, business info and troubleshooting guides from a
// knowledge directory and exposes search, best-answer, guide and context
// endpoints for the chat layer.
//
// Usage:
//
//	# Start with defaults
//	kbengined
//
//	# Configure via flags or environment
//	kbengined -config /etc/kbengine/config.yaml
//	KBENGINE_SERVER_PORT=8080 KBENGINE_KNOWLEDGE_DIR=/srv/kb kbengined
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fixdesklabs/kbengine/internal/config"
	httpserver "github.com/fixdesklabs/kbengine/internal/http"
	"github.com/fixdesklabs/kbengine/internal/knowledge"
	"github.com/fixdesklabs/kbengine/internal/logging"
	"github.com/fixdesklabs/kbengine/pkg/engine"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("kbengined %s (%s)\n", version, gitCommit)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := knowledge.NewStore(cfg.Knowledge.Dir, logger.Named("knowledge"))
	if err != nil {
		logger.Fatal("failed to create knowledge store", zap.Error(err))
	}
	// Warm the snapshot before accepting traffic.
	snap := store.Snapshot(ctx)
	logger.Info("knowledge warmed",
		zap.Int("items", len(snap.Items)),
		zap.Bool("business_info", snap.Business != nil))

	eng, err := engine.New(store, logger.Named("engine"), cfg.Knowledge.TopK)
	if err != nil {
		logger.Fatal("failed to create engine", zap.Error(err))
	}

	server, err := httpserver.NewServer(eng, logger.Named("http"), &httpserver.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		logger.Fatal("failed to create http server", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

// Gateway server: policy-governed security gate for LLM tool use.
// Provides the analyze HTTP API, policy and shield management, and trace
// persistence.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hipocap/gateway/pkg/api"
	"github.com/hipocap/gateway/pkg/classifier"
	"github.com/hipocap/gateway/pkg/config"
	"github.com/hipocap/gateway/pkg/database"
	"github.com/hipocap/gateway/pkg/llm"
	"github.com/hipocap/gateway/pkg/pipeline"
	"github.com/hipocap/gateway/pkg/services"
	"github.com/hipocap/gateway/pkg/shield"
	"github.com/hipocap/gateway/pkg/version"
)

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("Could not load .env file, continuing with existing environment", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg.LogLevel)

	slog.Info("Starting gateway",
		"version", version.Full(),
		"http_port", cfg.HTTPPort)

	ctx := context.Background()

	dbClient, err := database.NewClient(ctx, cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			slog.Error("Error closing database client", "error", err)
		}
	}()
	slog.Info("Connected to PostgreSQL database")

	// Analysis ports. Either may be absent; the corresponding pipeline
	// stages then report themselves unavailable instead of failing calls.
	var scorer classifier.Scorer
	if cfg.GuardConfigured() {
		scorer = classifier.NewHTTPScorer(cfg.Guard)
		slog.Info("Input classifier configured", "url", cfg.Guard.URL, "model", cfg.Guard.Model)
	} else {
		slog.Warn("GUARD_URL not set, input analysis will be skipped")
	}

	var completer llm.ChatCompleter
	if cfg.LLMConfigured() {
		completer = llm.NewClient(cfg.LLM)
		slog.Info("LLM completer configured", "base_url", cfg.LLM.BaseURL, "model", cfg.LLM.Model)
	} else {
		slog.Warn("OPENAI_API_KEY not set, LLM analysis stages will be unavailable")
	}

	engine := pipeline.New(scorer, completer, cfg.Models())
	evaluator := shield.NewEvaluator(engine)

	policyService := services.NewPolicyService(dbClient.Client)
	traceService := services.NewTraceService(dbClient.Client, dbClient.DB())
	shieldService := services.NewShieldService(dbClient.Client)
	slog.Info("Services initialized")

	httpServer := api.NewServer(dbClient, policyService, traceService, shieldService, engine, evaluator)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.HTTPPort
		slog.Info("HTTP server listening", "addr", addr)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}

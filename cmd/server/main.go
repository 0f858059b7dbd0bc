package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/time/rate"

	"github.com/mikeboe/verifact/pkg/analysis"
	"github.com/mikeboe/verifact/pkg/config"
	"github.com/mikeboe/verifact/pkg/server"
	"github.com/mikeboe/verifact/pkg/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(server.NewRequestLogHandler(cfg.NewHandler(os.Stdout)))
	slog.SetDefault(logger)

	if cfg.APIKey() == "" {
		slog.Warn("No API key configured, every query will fail until GEMINI_API_KEY is set")
	}

	client, err := analysis.NewClient(context.Background(), analysis.Config{
		APIKey:      cfg.APIKey(),
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
	})
	if err != nil {
		slog.Error("Failed to init analysis client", "error", err)
		os.Exit(1)
	}

	ctrl := session.NewController(client, cfg.HistorySize)
	ctrl.OnStateUpdate = func(st session.State) {
		slog.Debug("Session state updated", "status", st.Status, "history", len(st.History))
	}

	svc := server.NewService(ctrl, rate.Limit(cfg.RateLimit), cfg.RateBurst)
	r := server.NewRouter(server.NewHandler(svc))

	slog.Info("Server starting", "port", cfg.Port, "model", client.Model())
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

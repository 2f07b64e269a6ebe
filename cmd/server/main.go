// Command server runs the itembox HTTP API.
//
// Configuration comes from CONFIG_PATH (or ./config.yaml) and the
// environment; see config.example.yaml.
package main

import (
	"log/slog"
	"os"

	"github.com/sakif/itembox/internal/config"
	"github.com/sakif/itembox/internal/logger"
	"github.com/sakif/itembox/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT or SIGTERM.
	if err := srv.Start(); err != nil {
		log.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

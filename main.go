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

	"streamcover/internal/api"
	"streamcover/internal/catalog"
	"streamcover/internal/config"
	"streamcover/internal/db"
	"streamcover/internal/logger"
)

var version = "dev"

func main() {
	listenAddr := flag.String("listen", "", "override the configured listen address (host:port)")
	catalogDir := flag.String("catalog", "", "override the configured catalog CSV directory")
	dbPath := flag.String("db", "", "override the configured SQLite database path")
	flag.Parse()

	logger.Banner(version)

	cfg := config.Default()
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *catalogDir != "" {
		cfg.CatalogDir = *catalogDir
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	store := catalog.NewStore(cfg.CatalogDir)
	if err := store.Load(context.Background()); err != nil {
		logger.Error("Catalog", fmt.Sprintf("Failed to load %s: %v", cfg.CatalogDir, err))
		os.Exit(1)
	}
	logger.Success("Catalog", fmt.Sprintf("Loaded %d games from %s", len(store.Current().Games), cfg.CatalogDir))

	srv := api.NewServer(cfg, store, database, nil)
	srv.MarkReady(true)

	logger.Server(cfg.ListenAddr)
	httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: srv.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("Server", "Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server", fmt.Sprintf("Shutdown error: %v", err))
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server", fmt.Sprintf("Failed: %v", err))
		os.Exit(1)
	}
	logger.Info("Server", "Stopped")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"streamvault/api"
	"streamvault/config"
	"streamvault/handlers"
	"streamvault/internal/blob"
	"streamvault/services/catalog"
	"streamvault/services/session"
	"streamvault/services/users"
	"streamvault/services/wishlist"
	"streamvault/utils"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	fmt.Println("🚀 streamvault Backend Starting...")

	// Determine config path (env or default)
	configPath := os.Getenv("STREAMVAULT_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("cache", "settings.json")
	}

	// Init config manager and load settings (creates defaults if missing)
	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			multiWriter := io.MultiWriter(os.Stdout, fileWriter)
			log.SetOutput(multiWriter)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	// Apply port override if specified
	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	// Select the persistence substrate
	var store blob.Store
	switch settings.Storage.Backend {
	case "sqlite":
		sqliteStore, err := blob.NewSQLiteStore(filepath.Join(settings.Storage.Directory, "streamvault.db"))
		if err != nil {
			log.Fatalf("failed to open sqlite store: %v", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
		log.Printf("[main] using sqlite storage in %s", settings.Storage.Directory)
	default:
		fileStore, err := blob.NewFileStore(afero.NewOsFs(), settings.Storage.Directory)
		if err != nil {
			log.Fatalf("failed to open file store: %v", err)
		}
		store = fileStore
		log.Printf("[main] using file storage in %s", settings.Storage.Directory)
	}

	// Wire services over the shared substrate
	usersService := users.NewService(store)
	sessionService := session.NewService(store, usersService)
	wishlistService := wishlist.NewService(store)
	catalogClient := catalog.NewClient(settings.Catalog.TMDBAPIKey, settings.Catalog.Language, settings.Catalog.Region, nil)

	if settings.Catalog.TMDBAPIKey == "" {
		log.Printf("warning: no TMDB API key configured; catalog browsing will fail")
	}

	// Construct router and register API routes
	var r *mux.Router = utils.NewRouter()
	api.Register(
		r,
		handlers.NewAuthHandler(sessionService),
		handlers.NewWishlistHandler(wishlistService, settings.Catalog.Language),
		handlers.NewCatalogHandler(catalogClient),
		handlers.NewSettingsHandler(cfgManager),
	)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[main] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	log.Println("[main] bye")
}

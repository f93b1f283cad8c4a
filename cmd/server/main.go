package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/course-catalog/internal/config"
	"github.com/Lixing-Zhang/course-catalog/internal/handlers"
	"github.com/Lixing-Zhang/course-catalog/internal/repository"
	"github.com/Lixing-Zhang/course-catalog/internal/service"
	"github.com/Lixing-Zhang/course-catalog/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting course catalog server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Initialize repository
	catalogRepo, count, err := loadCatalog(context.Background(), cfg.Catalog.File)
	if err != nil {
		log.Error("failed to load catalog", "file", cfg.Catalog.File, "error", err)
		os.Exit(1)
	}
	log.Info("catalog loaded", "items", count, "file", cfg.Catalog.File)

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo)
	sessionService := service.NewSessionService(catalogService, service.SessionOptions{
		MaxSessions: cfg.Session.MaxSessions,
		TTL:         cfg.Session.TTL(),
	}, log)

	r := handlers.NewRouter(handlers.RouterConfig{
		SessionCookie:  cfg.Session.CookieName,
		SessionTTL:     cfg.Session.TTL(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: 60 * time.Second,
	}, catalogService, sessionService, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully", "sessions", sessionService.Len())
}

// loadCatalog builds the repository from file, or from the built-in courses
// when file is empty, and reports how many items it holds
func loadCatalog(ctx context.Context, file string) (*repository.InMemoryCatalogRepository, int, error) {
	repo := repository.NewInMemoryCatalogRepository()
	if file != "" {
		var err error
		if repo, err = repository.NewCatalogRepositoryFromFile(file); err != nil {
			return nil, 0, err
		}
	}

	items, err := repo.GetAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("read catalog: %w", err)
	}
	return repo, len(items), nil
}

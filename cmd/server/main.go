package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"notevault/internal/config"
	"notevault/internal/handler"
	"notevault/internal/middleware"
	"notevault/internal/repository"
	"notevault/internal/repository/kv"
	"notevault/internal/service/notes"
	"notevault/internal/service/notes/converter"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logger, logCloser, err := config.NewLogger(cfg, "server")
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage_backend", cfg.StorageBackend,
		"key_prefix", cfg.KeyPrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the key-value store
	store, err := repository.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	// Create repositories
	txManager := kv.NewTransactionManager(store, logger)
	repoConfig := &kv.RepositoryConfig{
		Store:     store,
		TxManager: txManager,
		Keys:      kv.NewCollectionKeys(cfg.KeyPrefix),
		Logger:    logger,
	}
	fileRepo := kv.NewFileRepository(repoConfig)
	folderRepo := kv.NewFolderRepository(repoConfig)

	// Create services
	validator := notes.NewValidator(fileRepo, folderRepo)
	pathResolver := notes.NewPathResolver(folderRepo, validator, txManager)
	fileService := notes.NewFileService(fileRepo, folderRepo, pathResolver, validator, txManager, logger)
	folderService := notes.NewFolderService(folderRepo, fileRepo, pathResolver, validator, txManager, logger)
	opsService := notes.NewOperationsService(fileRepo, folderRepo, pathResolver, validator, txManager, logger)
	treeService := notes.NewTreeService(folderRepo, fileRepo, logger)
	exportService := notes.NewExportService(fileRepo, folderRepo, fileService, converter.NewRegistry(), logger)

	logger.Info("services initialized")

	mux := handler.NewRouter(&handler.Handlers{
		Files:     handler.NewFileHandler(fileService, logger),
		Folders:   handler.NewFolderHandler(folderService, logger),
		Tree:      handler.NewTreeHandler(treeService, logger),
		Selection: handler.NewSelectionHandler(opsService, logger),
		Export:    handler.NewExportHandler(exportService, logger),
	})

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → Logging → Recovery → Routes
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)
	h = chimw.RequestID(h)

	// CORS - outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Exported-Files"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}

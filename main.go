package main

import (
	"context"
	"log"
	"net/http"

	"github/itish2003/filesearch/clientstate"
	"github/itish2003/filesearch/config"
	"github/itish2003/filesearch/controller"
	"github/itish2003/filesearch/gemini"
	"github/itish2003/filesearch/logger"
	"github/itish2003/filesearch/services"
	"github/itish2003/filesearch/web"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer appLogger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpClient := &http.Client{
		Timeout: cfg.Gemini.HTTPTimeout,
	}

	clients := gemini.NewClients(httpClient,
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithAPIVersion(cfg.Gemini.APIVersion),
	)
	fileSearch := gemini.NewFileSearch(clients)

	// Sessions live in redis when one is configured, otherwise in memory.
	var persister clientstate.Persister
	if cfg.Session.RedisURL != "" {
		redisPersister, err := clientstate.NewRedisPersister(ctx, cfg.Session.RedisURL, cfg.Session.TTL)
		if err != nil {
			log.Fatalf("FATAL: Failed to connect to redis: %v", err)
		}
		defer redisPersister.Close()
		persister = redisPersister
		appLogger.Info("MAIN", "Using redis session store", nil)
	} else {
		persister = clientstate.NewMemoryPersister(cfg.Session.TTL)
		appLogger.Info("MAIN", "Using in-memory session store", nil)
	}
	sessions := clientstate.NewManager(persister, cfg.Session.TTL, appLogger)

	documentService := services.NewDocumentService(fileSearch, appLogger)
	storeService := services.NewStoreService(fileSearch, appLogger)
	ragService := services.NewRAGService(services.NewGeneratorFactory(clients), sessions, appLogger)

	router := controller.NewRouter(controller.Dependencies{
		DocumentService: documentService,
		StoreService:    storeService,
		RAGService:      ragService,
		Sessions:        sessions,
		Messages:        controller.MessagesFor(cfg.App.Locale),
		Logger:          appLogger,
		AllowedOrigins:  cfg.App.CorsAllowedOrigins,
		MaxUploadBytes:  cfg.App.MaxUploadBytes,
	})

	if err := web.Register(router, web.LayoutConfig{Locale: cfg.App.Locale}); err != nil {
		log.Fatalf("FATAL: Failed to load page templates: %v", err)
	}

	// Optional background sync of a local directory into one store.
	if cfg.Sync.Enabled(cfg.Gemini.APIKey) {
		indexer := services.NewFileIndexingService(fileSearch, cfg.Gemini.APIKey, cfg.Sync.StoreID, appLogger)
		go func() {
			if err := indexer.ScanAndIndexDirectory(ctx, cfg.Sync.Dir); err != nil {
				appLogger.Error("MAIN", "Initial directory scan failed", map[string]interface{}{"error": err})
			}
			indexer.WatchDirectory(ctx, cfg.Sync.Dir)
		}()
	}

	port := cfg.App.Port
	appLogger.Info("MAIN", "Server starting", map[string]interface{}{
		"address": "http://localhost:" + port,
		"locale":  cfg.App.Locale,
		"sync":    cfg.Sync.Enabled(cfg.Gemini.APIKey),
	})

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("FATAL: Failed to start server: %v", err)
	}
}

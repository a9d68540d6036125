package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tubescribe/captions"
	"tubescribe/config"
	"tubescribe/handlers"
	"tubescribe/logger"
	"tubescribe/middleware"
	"tubescribe/repository/sqlite"
	"tubescribe/services/account"
	"tubescribe/services/summary"
	"tubescribe/services/transcript"
	"tubescribe/storage"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := sqlite.InitDB(cfg.Database.Path, cfg.Database.MaxConnections)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	accountRepo := sqlite.NewAccountRepository(db)

	httpClient := &http.Client{Timeout: cfg.Captions.AttemptTimeout}

	var provider captions.Provider
	switch cfg.Captions.Provider {
	case config.ProviderAPI:
		provider, err = captions.NewDataAPIProvider(context.Background(), cfg.Captions.APIKey, httpClient)
		if err != nil {
			log.Fatalf("Failed to initialize caption provider: %v", err)
		}
	default:
		provider = captions.NewScrapeProvider(httpClient)
	}

	pipeline := captions.NewPipeline(provider, cfg.Captions.Languages, cfg.Captions.AttemptTimeout, appLogger)

	var archiver transcript.Archiver
	if cfg.Storage.Enabled {
		archiveClient, err := storage.NewArchiveClient(storage.Config{
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			Bucket:    cfg.Storage.Bucket,
		})
		if err != nil {
			log.Fatalf("Failed to initialize transcript archive: %v", err)
		}
		archiver = archiveClient
	}

	transcriptService := transcript.NewService(
		pipeline,
		archiver,
		transcript.Config{Debug: cfg.Debug},
		appLogger,
	)

	summaryService := summary.NewService(
		summary.NewOpenAICompleter(cfg.Summary.APIKey, cfg.Summary.Model),
		summary.Config{
			Configured: cfg.Summary.APIKey != "",
			MaxTokens:  cfg.Summary.MaxTokens,
		},
		appLogger,
	)

	accountService := account.NewService(accountRepo, appLogger)

	transcriptHandler := handlers.NewTranscriptHandler(transcriptService, cfg.Debug, appLogger)
	summaryHandler := handlers.NewSummaryHandler(summaryService, cfg.Debug, appLogger)
	accountHandler := handlers.NewAccountHandler(accountService, cfg.Debug, appLogger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /transcript", transcriptHandler.Fetch)
	mux.HandleFunc("POST /summary", summaryHandler.Create)
	mux.HandleFunc("POST /accounts", accountHandler.Create)
	mux.HandleFunc("GET /accounts/{id}", accountHandler.Get)
	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	handler := buildHandler(mux, cfg, appLogger)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		appLogger.WithField("port", cfg.ServerPort).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	<-shutdownChan
	appLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("Server shutdown failed")
	}
	appLogger.Info("Server stopped")
}

// buildHandler wraps the mux in the enabled middleware. Order matters:
// request IDs are assigned before anything logs, and recovery sits outside
// the timeout so a panic in a timed-out handler is still caught.
func buildHandler(mux http.Handler, cfg *config.Config, appLogger *logrus.Logger) http.Handler {
	var mws []func(http.Handler) http.Handler

	if cfg.Middleware.EnableRequestID {
		mws = append(mws, middleware.RequestID())
	}
	if cfg.Middleware.EnableRecover {
		mws = append(mws, middleware.Recovery(appLogger))
	}
	if cfg.Middleware.EnableLogger {
		mws = append(mws, middleware.Logging(appLogger))
	}
	if cfg.Middleware.EnableCORS {
		mws = append(mws, middleware.CORS(cfg.CORS))
	}
	if cfg.Middleware.EnableRateLimit && cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.BurstSize)
		mws = append(mws, rl.Middleware)
	}
	if cfg.Middleware.EnableTimeout {
		mws = append(mws, middleware.Timeout(cfg.RequestTimeout))
	}

	return middleware.Chain(mux, mws...)
}

package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/dotojr123/ads-agent-base/internal/ads"
	"github.com/dotojr123/ads-agent-base/internal/api"
	"github.com/dotojr123/ads-agent-base/internal/database"
	"github.com/dotojr123/ads-agent-base/internal/domain"
	"github.com/dotojr123/ads-agent-base/internal/engine"
	"github.com/dotojr123/ads-agent-base/internal/logger"
	"github.com/dotojr123/ads-agent-base/internal/metrics"
	"github.com/dotojr123/ads-agent-base/internal/store"
	"github.com/dotojr123/ads-agent-base/internal/worker"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.NewLogger()
	if err != nil {
		panic("Could not initialize logger: " + err.Error())
	}
	defer log.Sync()

	pool, err := database.ConnectDB(log)
	if err != nil {
		log.Error("could not connect to the database", zap.Error(err))
		return
	}
	defer pool.Close()

	server, err := run(log, pool)
	if err != nil {
		log.Error("could not start application", zap.Error(err))
		return
	}

	log.Info("starting API server",
		zap.String("addr", server.Addr),
		zap.String("component", "main"),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("could not start server", zap.Error(err))
	}
}

// run wires the application together on top of an established database
// connection. Split from main so it can be exercised with a mock pool.
func run(log *zap.Logger, db database.Querier) (*http.Server, error) {
	if err := database.RunMigrations(context.Background(), db, log); err != nil {
		return nil, err
	}

	dbStore := store.NewStore(db)

	metaClient := ads.NewMetaClient(log)
	googleClient := ads.NewGoogleClient(log)

	clients := map[domain.Platform]ads.Client{
		domain.PlatformMeta:   metaClient,
		domain.PlatformGoogle: googleClient,
	}
	validators := map[domain.Platform]ads.CredentialValidator{
		domain.PlatformMeta:   metaClient,
		domain.PlatformGoogle: googleClient,
	}

	// DATA_SOURCE=live reads real campaign insights; anything else keeps
	// the generated demo metrics.
	var provider metrics.Provider
	if os.Getenv("DATA_SOURCE") == "live" {
		provider = metrics.NewLiveProvider(clients, log)
		log.Info("using live campaign metrics", zap.String("component", "main"))
	} else {
		provider = metrics.NewDemoProvider()
		log.Info("using demo campaign metrics", zap.String("component", "main"))
	}

	automationEngine := engine.NewEngine(dbStore, provider, clients, log)

	appWorker := worker.NewWorker(automationEngine, log)
	appWorker.Start()

	apiServer := api.NewServer(dbStore, automationEngine, validators, log)

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      apiServer.Router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}, nil
}

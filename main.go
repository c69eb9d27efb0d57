package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"

	"hn-reader/server/api"
	"hn-reader/server/hn"
	"hn-reader/server/readability"
	"hn-reader/server/store"
	"hn-reader/server/summary"
	"hn-reader/server/worker"
)

func main() {
	// Optional .env for local development; real deployments use env vars.
	_ = godotenv.Load()

	flagSet := flag.NewFlagSet("hn-reader", flag.ExitOnError)

	var (
		addr       string
		port       int
		dbPath     string
		llmAPIKey  string
		llmBaseURL string
		llmModel   string
		cacheURL   string
		cacheToken string
	)
	flagSet.StringVar(&addr, "addr", "localhost", "Address to listen on")
	flagSet.IntVar(&port, "port", 8080, "Port to listen on")
	flagSet.StringVar(&dbPath, "db-path", "summaries.db", "Path to SQLite fallback cache file")
	flagSet.StringVar(&llmAPIKey, "llm-api-key", "", "API key for the summarization backend (required)")
	flagSet.StringVar(&llmBaseURL, "llm-base-url", "", "Base URL for an OpenAI-compatible API (default: provider default)")
	flagSet.StringVar(&llmModel, "llm-model", "", "Model for summarization")
	flagSet.StringVar(&cacheURL, "cache-url", "", "Cache store URL (redis://...); empty uses the embedded SQLite cache")
	flagSet.StringVar(&cacheToken, "cache-token", "", "Cache store auth token")

	if err := ff.Parse(flagSet, os.Args[1:], ff.WithEnvVars()); err != nil {
		slog.Error("failed to parse flags", "error", err)
		os.Exit(1)
	}

	// The summarization path cannot run without a generative API key.
	if llmAPIKey == "" {
		slog.Error("llm-api-key must be set (via flag or env var LLM_API_KEY)")
		os.Exit(1)
	}

	summarizer, err := summary.NewOpenAISummarizer(summary.Config{
		APIKey:  llmAPIKey,
		BaseURL: llmBaseURL,
		Model:   llmModel,
	})
	if err != nil {
		slog.Error("failed to configure summarizer", "error", err)
		os.Exit(1)
	}

	// Background worker context
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	// Summary cache: remote store when configured, embedded SQLite otherwise.
	var cache store.SummaryCache
	if cacheURL != "" {
		redisCache, err := store.OpenRedis(cacheURL, cacheToken)
		if err != nil {
			slog.Error("failed to configure cache store", "error", err)
			os.Exit(1)
		}
		defer redisCache.Close()
		cache = redisCache
		slog.Info("using remote summary cache")
	} else {
		db, err := store.Open(dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		sqliteCache := store.NewSQLiteCache(db)
		cache = sqliteCache
		slog.Info("using embedded summary cache", "path", dbPath)

		// Daily expiry sweep, only needed for the embedded backend
		cleaner := worker.NewCleaner(sqliteCache)
		cleaner.Start(workerCtx)
	}

	// HN client
	hnClient := hn.NewClient()

	// Shared TopList for pagination
	topList := store.NewTopList()

	// Background poller
	poller := worker.NewPoller(hnClient, topList)
	poller.Start(workerCtx)

	// Summarization pipeline
	svc := summary.NewService(cache, summarizer, readability.NewExtractor())

	// API handlers
	storiesHandler := api.NewStoriesHandler(hnClient, topList)
	storyHandler := api.NewStoryHandler(hnClient)
	summarizeHandler := api.NewSummarizeHandler(svc)
	healthHandler := api.NewHealthHandler(cache, topList)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/stories", storiesHandler.ListStories)
	mux.HandleFunc("GET /api/stories/{id}", storyHandler.GetStory)
	mux.HandleFunc("POST /api/summarize", summarizeHandler.Summarize)
	mux.Handle("GET /api/health", healthHandler)

	// HTTP server with graceful shutdown
	listenAddr := fmt.Sprintf("%s:%d", addr, port)
	srv := &http.Server{
		Addr:    listenAddr,
		Handler: api.Logging(mux),
	}

	go func() {
		slog.Info("server starting", "addr", listenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("received signal, shutting down", "signal", sig)

	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}

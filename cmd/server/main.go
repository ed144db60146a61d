package main

import (
	"log"
	"net/http"

	"castbuzz/internal/config"
	"castbuzz/internal/feed"
	"castbuzz/internal/handlers"
	"castbuzz/internal/middleware"
	"castbuzz/internal/store"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := store.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	st, err := store.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer st.Close()
	log.Println("Database connection established")

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer asynqClient.Close()

	feedService := feed.NewService(st, cfg.BaseURL, feed.Options{
		Language:          cfg.FeedLanguage,
		IncludeGooglePlay: cfg.FeedGooglePlay,
	})

	h := handlers.New(feedService, st, asynqClient)
	ingestLimiter := middleware.NewRateLimiterMiddleware(5, 10)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	api.HandleFunc("/rss", h.ListRSSFeeds).Methods(http.MethodGet)
	api.HandleFunc("/rss/{slug}", h.GetRSSFeed).Methods(http.MethodGet)
	api.HandleFunc("/rss/{slug}/validate", h.ValidateRSSFeed).Methods(http.MethodGet)
	api.HandleFunc("/rss/{slug}/regenerate", h.RegenerateFeed).Methods(http.MethodPost)
	api.Handle("/analytics/events",
		ingestLimiter.Middleware(http.HandlerFunc(h.PostAnalyticsEvents))).Methods(http.MethodPost)
	api.HandleFunc("/analytics/summary", h.GetAnalyticsSummary).Methods(http.MethodGet)

	log.Printf("Starting server on :%s (commit: %s)", cfg.Port, CommitSHA)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

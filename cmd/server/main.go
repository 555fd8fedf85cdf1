package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/siddheshbandgar/read-it-aloud/internal/blob"
	"github.com/siddheshbandgar/read-it-aloud/internal/config"
	"github.com/siddheshbandgar/read-it-aloud/internal/handlers"
	"github.com/siddheshbandgar/read-it-aloud/internal/middleware"
	"github.com/siddheshbandgar/read-it-aloud/internal/store"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	cfg := config.Load()

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	blobs, err := blob.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer client.Close()

	h := handlers.New(st, blobs, client, cfg.BaseURL)
	limiter := middleware.NewRateLimiterMiddleware(rate.Limit(5), 10)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Healthz).Methods(http.MethodGet)
	r.HandleFunc("/feed.rss", h.GetRSSFeed).Methods(http.MethodGet)
	r.HandleFunc("/audio/{key}", h.ServeAudio).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.Middleware)
	api.HandleFunc("/podcasts", h.CreatePodcast).Methods(http.MethodPost)
	api.HandleFunc("/podcasts", h.ListPodcasts).Methods(http.MethodGet)
	api.HandleFunc("/podcasts/{id}", h.GetPodcast).Methods(http.MethodGet)
	api.HandleFunc("/podcasts/{id}", h.DeletePodcast).Methods(http.MethodDelete)
	api.HandleFunc("/podcasts/{id}/share", h.ToggleShare).Methods(http.MethodPost)
	api.HandleFunc("/podcasts/{id}/transcript", h.GetTranscript).Methods(http.MethodGet)
	api.HandleFunc("/public/podcasts/{slug}", h.GetPublicPodcast).Methods(http.MethodGet)
	api.HandleFunc("/public/podcasts/{slug}/transcript", h.GetPublicTranscript).Methods(http.MethodGet)

	log.Printf("Starting server on :%s (commit: %s)", cfg.Port, CommitSHA)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

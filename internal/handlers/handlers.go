package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/siddheshbandgar/read-it-aloud/internal/blob"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
	"github.com/siddheshbandgar/read-it-aloud/internal/store"
	"github.com/siddheshbandgar/read-it-aloud/pkg/tasks"
)

// Handlers holds the HTTP layer's dependencies.
type Handlers struct {
	store       store.Store
	blobs       blob.Store
	asynqClient tasks.TaskEnqueuer
	baseURL     string
}

func New(st store.Store, blobs blob.Store, asynqClient tasks.TaskEnqueuer, baseURL string) *Handlers {
	return &Handlers{
		store:       st,
		blobs:       blobs,
		asynqClient: asynqClient,
		baseURL:     baseURL,
	}
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ServeAudio streams a stored audio artifact. Backed by whichever blob
// driver is configured; with minio in front of a CDN this route is unused.
func (h *Handlers) ServeAudio(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	data, contentType, err := h.blobs.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "Audio not found", http.StatusNotFound)
			return
		}
		log.Printf("Error reading audio %s: %v", key, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

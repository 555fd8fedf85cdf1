package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
	"github.com/siddheshbandgar/read-it-aloud/internal/pipeline"
	"github.com/siddheshbandgar/read-it-aloud/internal/synthesizer"
	"github.com/siddheshbandgar/read-it-aloud/pkg/tasks"
)

type createPodcastRequest struct {
	SourceURL    string `json:"sourceUrl"`
	SourceText   string `json:"sourceText"`
	VoiceStyle   string `json:"voiceStyle"`
	DurationType string `json:"durationType"`
}

// CreatePodcast validates the request, persists a pending job and enqueues
// its generation task. Exactly one of sourceUrl and sourceText is required.
func (h *Handlers) CreatePodcast(w http.ResponseWriter, r *http.Request) {
	var req createPodcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if (req.SourceURL == "") == (req.SourceText == "") {
		writeError(w, http.StatusBadRequest, "Exactly one of sourceUrl or sourceText is required")
		return
	}

	if req.DurationType == "" {
		req.DurationType = models.Duration5Min
	}
	if !models.ValidDurationType(req.DurationType) {
		writeError(w, http.StatusBadRequest, "durationType must be one of 2min, 5min, 10min, full")
		return
	}

	now := time.Now().UTC()
	job := &models.PodcastJob{
		ID:           uuid.New().String(),
		VoiceStyle:   synthesizer.CanonicalStyle(req.VoiceStyle),
		DurationType: req.DurationType,
		Status:       models.StatusPending,
		ShareSlug:    uuid.New().String(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.SourceURL != "" {
		job.SourceURL = &req.SourceURL
	} else {
		job.SourceText = &req.SourceText
	}

	if err := h.store.CreatePodcast(r.Context(), job); err != nil {
		log.Printf("Error creating podcast: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	task, err := tasks.NewGeneratePodcastTask(job.ID)
	if err != nil {
		log.Printf("Error creating task for podcast %s: %v", job.ID, err)
	} else if _, err := h.asynqClient.Enqueue(task); err != nil {
		log.Printf("Error enqueuing task for podcast %s: %v", job.ID, err)
	}

	writeJSON(w, http.StatusCreated, job)
}

func (h *Handlers) GetPodcast(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, err := h.store.GetPodcast(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Podcast not found")
			return
		}
		log.Printf("Error getting podcast %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handlers) ListPodcasts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	jobs, err := h.store.ListPodcasts(r.Context(), limit)
	if err != nil {
		log.Printf("Error listing podcasts: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// DeletePodcast removes the job, its transcript segments and its audio
// blob. A blob deletion failure is logged but does not fail the request.
func (h *Handlers) DeletePodcast(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, err := h.store.GetPodcast(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Podcast not found")
			return
		}
		log.Printf("Error getting podcast %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if job.AudioURL != nil {
		if err := h.blobs.Delete(r.Context(), pipeline.AudioKey(job.ID)); err != nil {
			log.Printf("Error deleting audio for podcast %s: %v", job.ID, err)
		}
	}

	if err := h.store.DeletePodcast(r.Context(), id); err != nil {
		log.Printf("Error deleting podcast %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleShare flips the public flag. The share slug never changes, so a
// revoked link starts working again if sharing is re-enabled.
func (h *Handlers) ToggleShare(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, err := h.store.GetPodcast(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Podcast not found")
			return
		}
		log.Printf("Error getting podcast %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	job.IsPublic = !job.IsPublic
	if err := h.store.UpdatePodcast(r.Context(), job); err != nil {
		log.Printf("Error updating podcast %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// GetTranscript returns the transcript segments of a completed podcast.
func (h *Handlers) GetTranscript(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	job, err := h.store.GetPodcast(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Podcast not found")
			return
		}
		log.Printf("Error getting podcast %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if job.Status != models.StatusCompleted {
		writeError(w, http.StatusConflict, "Transcript is not available until the podcast is completed")
		return
	}

	segments, err := h.store.GetSegments(r.Context(), id)
	if err != nil {
		log.Printf("Error getting segments for podcast %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, segments)
}

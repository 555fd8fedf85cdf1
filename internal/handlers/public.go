package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/siddheshbandgar/read-it-aloud/internal/feed"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

// lookupPublic resolves a share slug to a job, treating private jobs the
// same as missing ones so a revoked slug leaks nothing.
func (h *Handlers) lookupPublic(w http.ResponseWriter, r *http.Request) *models.PodcastJob {
	slug := mux.Vars(r)["slug"]
	job, err := h.store.GetPodcastBySlug(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Printf("Error getting podcast by slug: %v", err)
		}
		writeError(w, http.StatusNotFound, "Podcast not found")
		return nil
	}
	if !job.IsPublic {
		writeError(w, http.StatusNotFound, "Podcast not found")
		return nil
	}
	return job
}

func (h *Handlers) GetPublicPodcast(w http.ResponseWriter, r *http.Request) {
	if job := h.lookupPublic(w, r); job != nil {
		writeJSON(w, http.StatusOK, job)
	}
}

func (h *Handlers) GetPublicTranscript(w http.ResponseWriter, r *http.Request) {
	job := h.lookupPublic(w, r)
	if job == nil {
		return
	}
	if job.Status != models.StatusCompleted {
		writeError(w, http.StatusConflict, "Transcript is not available until the podcast is completed")
		return
	}

	segments, err := h.store.GetSegments(r.Context(), job.ID)
	if err != nil {
		log.Printf("Error getting segments for podcast %s: %v", job.ID, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, segments)
}

// GetRSSFeed serves an RSS feed of all public completed podcasts.
func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.store.ListPublicCompleted(r.Context(), 0)
	if err != nil {
		log.Printf("Error listing public podcasts: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	rss, err := feed.GenerateRSS(jobs, h.baseURL)
	if err != nil {
		log.Printf("Error generating RSS: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}

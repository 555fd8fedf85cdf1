package store

import (
	"context"
	"fmt"
	"time"

	"github.com/siddheshbandgar/read-it-aloud/internal/config"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

// Store persists podcast jobs and their transcript segments. Only the worker
// running a given job mutates it, so a full-record last-writer-wins update
// keyed by job id is sufficient; reads must return a consistent snapshot.
type Store interface {
	CreatePodcast(ctx context.Context, job *models.PodcastJob) error
	GetPodcast(ctx context.Context, id string) (*models.PodcastJob, error)
	GetPodcastBySlug(ctx context.Context, slug string) (*models.PodcastJob, error)
	// UpdatePodcast writes the full record and bumps UpdatedAt.
	UpdatePodcast(ctx context.Context, job *models.PodcastJob) error
	// DeletePodcast removes the job and cascades to its transcript segments.
	DeletePodcast(ctx context.Context, id string) error
	// ListPodcasts returns jobs newest-created-first. limit <= 0 means no limit.
	ListPodcasts(ctx context.Context, limit int) ([]models.PodcastJob, error)
	// ListPublicCompleted returns completed public jobs newest-completed-first.
	ListPublicCompleted(ctx context.Context, limit int) ([]models.PodcastJob, error)
	// ListUnfinished returns non-terminal jobs created before the cutoff.
	ListUnfinished(ctx context.Context, before time.Time) ([]models.PodcastJob, error)

	CreateSegments(ctx context.Context, segments []models.TranscriptSegment) error
	// GetSegments returns segments ordered by sentence index.
	GetSegments(ctx context.Context, podcastID string) ([]models.TranscriptSegment, error)
}

// Open selects a Store implementation from the configured driver.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		return NewPostgres(cfg.DatabaseURL)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

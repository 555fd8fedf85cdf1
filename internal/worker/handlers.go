package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
	"github.com/siddheshbandgar/read-it-aloud/internal/store"
	"github.com/siddheshbandgar/read-it-aloud/pkg/tasks"
)

// PipelineRunner runs the conversion pipeline for one job. Implemented by
// pipeline.Pipeline; mocked in tests.
type PipelineRunner interface {
	Run(ctx context.Context, jobID string) error
}

// TaskHandler consumes queue tasks for podcast generation and maintenance.
type TaskHandler struct {
	pipeline   PipelineRunner
	store      store.Store
	jobTimeout time.Duration
}

func NewTaskHandler(p PipelineRunner, st store.Store, jobTimeout time.Duration) *TaskHandler {
	return &TaskHandler{pipeline: p, store: st, jobTimeout: jobTimeout}
}

// HandleGeneratePodcastTask runs the pipeline for the job in the payload.
// Pipeline failures are terminal: the job is already marked failed with the
// captured message, and the forward-only state machine would reject a
// re-run, so the handler reports success to the queue either way.
func (h *TaskHandler) HandleGeneratePodcastTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.GeneratePodcastPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	log.Printf("Generating podcast: %s", p.PodcastID)
	if err := h.pipeline.Run(ctx, p.PodcastID); err != nil {
		log.Printf("Podcast %s failed: %v", p.PodcastID, err)
		return nil
	}
	log.Printf("Successfully generated podcast: %s", p.PodcastID)
	return nil
}

// HandleReapStaleJobsTask fails jobs that have been non-terminal for longer
// than the wall-clock ceiling, usually because a worker died mid-run.
func (h *TaskHandler) HandleReapStaleJobsTask(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-h.jobTimeout)
	jobs, err := h.store.ListUnfinished(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list unfinished podcasts: %w", err)
	}

	for i := range jobs {
		job := jobs[i]
		msg := fmt.Sprintf("processing exceeded the %s time limit", h.jobTimeout)
		job.Status = models.StatusFailed
		job.ErrorMessage = &msg
		if err := h.store.UpdatePodcast(ctx, &job); err != nil {
			log.Printf("Failed to reap stale podcast %s: %v", job.ID, err)
			continue
		}
		log.Printf("Reaped stale podcast %s (created %s)", job.ID, job.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

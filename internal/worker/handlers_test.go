package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
	"github.com/siddheshbandgar/read-it-aloud/internal/store"
	"github.com/siddheshbandgar/read-it-aloud/pkg/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPipeline struct {
	ranIDs []string
	err    error
}

func (m *mockPipeline) Run(ctx context.Context, jobID string) error {
	m.ranIDs = append(m.ranIDs, jobID)
	return m.err
}

func TestHandleGeneratePodcastTask(t *testing.T) {
	p := &mockPipeline{}
	h := NewTaskHandler(p, store.NewMemory(), 30*time.Minute)

	task, err := tasks.NewGeneratePodcastTask("job-42")
	require.NoError(t, err)

	require.NoError(t, h.HandleGeneratePodcastTask(context.Background(), task))
	assert.Equal(t, []string{"job-42"}, p.ranIDs)
}

// A pipeline failure is terminal for the job, so the handler must not
// surface it to the queue and trigger a retry.
func TestHandleGeneratePodcastTaskPipelineFailure(t *testing.T) {
	p := &mockPipeline{err: errors.New("synthesis blew up")}
	h := NewTaskHandler(p, store.NewMemory(), 30*time.Minute)

	task, err := tasks.NewGeneratePodcastTask("job-42")
	require.NoError(t, err)

	assert.NoError(t, h.HandleGeneratePodcastTask(context.Background(), task))
}

func TestHandleGeneratePodcastTaskBadPayload(t *testing.T) {
	h := NewTaskHandler(&mockPipeline{}, store.NewMemory(), 30*time.Minute)
	task := asynq.NewTask(tasks.TypeGeneratePodcast, []byte("not json"))
	assert.Error(t, h.HandleGeneratePodcastTask(context.Background(), task))
}

func TestHandleReapStaleJobsTask(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	makeJob := func(id, status string, createdAt time.Time) {
		job := &models.PodcastJob{
			ID:           id,
			VoiceStyle:   "narrator",
			DurationType: models.Duration5Min,
			Status:       status,
			ShareSlug:    "slug-" + id,
			CreatedAt:    createdAt,
			UpdatedAt:    createdAt,
		}
		require.NoError(t, mem.CreatePodcast(ctx, job))
	}

	timeout := 30 * time.Minute
	makeJob("stale", models.StatusExtracting, time.Now().Add(-2*time.Hour))
	makeJob("fresh", models.StatusPending, time.Now())
	makeJob("done", models.StatusCompleted, time.Now().Add(-2*time.Hour))

	h := NewTaskHandler(&mockPipeline{}, mem, timeout)
	task, err := tasks.NewReapStaleJobsTask()
	require.NoError(t, err)
	require.NoError(t, h.HandleReapStaleJobsTask(ctx, task))

	stale, err := mem.GetPodcast(ctx, "stale")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, stale.Status)
	require.NotNil(t, stale.ErrorMessage)
	assert.Contains(t, *stale.ErrorMessage, "time limit")

	fresh, err := mem.GetPodcast(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, fresh.Status)

	done, err := mem.GetPodcast(ctx, "done")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	assert.Nil(t, done.ErrorMessage)
}

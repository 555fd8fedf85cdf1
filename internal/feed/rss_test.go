package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/siddheshbandgar/read-it-aloud/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestGenerateRSS(t *testing.T) {
	now := time.Now()
	size := int64(2048)
	script := strings.Repeat("A sentence of narrated script. ", 20)

	jobs := []models.PodcastJob{
		{
			ID:             "done",
			Title:          strPtr("A Finished Episode"),
			Script:         &script,
			AudioURL:       strPtr("http://localhost:8080/audio/done.mp3"),
			AudioSizeBytes: &size,
			ShareSlug:      "slug-done",
			Status:         models.StatusCompleted,
			CompletedAt:    &now,
		},
		// No audio metadata yet; must be skipped, not rendered broken.
		{
			ID:        "half",
			Title:     strPtr("Still Rendering"),
			ShareSlug: "slug-half",
			Status:    models.StatusCompleted,
		},
	}

	rss, err := GenerateRSS(jobs, "http://localhost:8080")
	require.NoError(t, err)

	assert.Contains(t, rss, "<title>A Finished Episode</title>")
	assert.Contains(t, rss, "http://localhost:8080/audio/done.mp3")
	assert.Contains(t, rss, "slug-done")
	assert.NotContains(t, rss, "Still Rendering")

	// Long scripts are excerpted in the item description.
	assert.Contains(t, rss, "A sentence of narrated script.")
	assert.NotContains(t, rss, script)
}

func TestGenerateRSSEmpty(t *testing.T) {
	rss, err := GenerateRSS(nil, "http://localhost:8080")
	require.NoError(t, err)
	assert.Contains(t, rss, "<rss")
}

package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var podcastColumns = []string{
	"id", "source_url", "source_text", "voice_style", "duration_type",
	"title", "script", "audio_url", "audio_size_bytes", "audio_duration_seconds",
	"status", "error_message", "is_public", "share_slug",
	"created_at", "updated_at", "completed_at",
}

func newMockStore(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })
	return NewPostgresFromDB(sqlx.NewDb(mockDb, "sqlmock")), mock
}

func podcastRow(id string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(podcastColumns).AddRow(
		id, "https://example.com/post", nil, "narrator", "5min",
		nil, nil, nil, nil, nil,
		"pending", nil, false, "slug-"+id,
		now, now, nil,
	)
}

func TestPostgresGetPodcast(t *testing.T) {
	p, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM podcasts WHERE id = \$1`).
		WithArgs("job-1").
		WillReturnRows(podcastRow("job-1"))

	job, err := p.GetPodcast(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, "slug-job-1", job.ShareSlug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetPodcastNotFound(t *testing.T) {
	p, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM podcasts WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := p.GetPodcast(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetPodcastBySlug(t *testing.T) {
	p, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT \* FROM podcasts WHERE share_slug = \$1`).
		WithArgs("slug-job-2").
		WillReturnRows(podcastRow("job-2"))

	job, err := p.GetPodcastBySlug(context.Background(), "slug-job-2")
	require.NoError(t, err)
	assert.Equal(t, "job-2", job.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdatePodcast(t *testing.T) {
	p, mock := newMockStore(t)

	job := &models.PodcastJob{
		ID:           "job-1",
		VoiceStyle:   "narrator",
		DurationType: "5min",
		Status:       models.StatusExtracting,
		ShareSlug:    "slug-job-1",
	}

	mock.ExpectExec(`UPDATE podcasts SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	before := job.UpdatedAt
	require.NoError(t, p.UpdatePodcast(context.Background(), job))
	assert.True(t, job.UpdatedAt.After(before))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdatePodcastMissing(t *testing.T) {
	p, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE podcasts SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := p.UpdatePodcast(context.Background(), &models.PodcastJob{ID: "missing"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPostgresCreateSegmentsTransaction(t *testing.T) {
	p, mock := newMockStore(t)

	segments := []models.TranscriptSegment{
		{ID: "seg-0", PodcastID: "job-1", SentenceIndex: 0, Text: "One.", StartTime: 0, EndTime: 1.5},
		{ID: "seg-1", PodcastID: "job-1", SentenceIndex: 1, Text: "Two.", StartTime: 1.5, EndTime: 3},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO transcript_segments`).
		WithArgs("seg-0", "job-1", 0, "One.", 0.0, 1.5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO transcript_segments`).
		WithArgs("seg-1", "job-1", 1, "Two.", 1.5, 3.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, p.CreateSegments(context.Background(), segments))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeletePodcast(t *testing.T) {
	p, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM podcasts WHERE id = \$1`).
		WithArgs("job-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, p.DeletePodcast(context.Background(), "job-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // The database driver
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

// Postgres is the durable Store backed by a Postgres database. The schema
// lives in schema.sql at the repository root.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres connects to the database and verifies the connection.
func NewPostgres(databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL is not set", models.ErrConfiguration)
	}
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Postgres{db: db}, nil
}

// NewPostgresFromDB wraps an existing connection. Used by tests with sqlmock.
func NewPostgresFromDB(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) CreatePodcast(ctx context.Context, job *models.PodcastJob) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO podcasts (
			id, source_url, source_text, voice_style, duration_type,
			title, script, audio_url, audio_size_bytes, audio_duration_seconds,
			status, error_message, is_public, share_slug,
			created_at, updated_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		job.ID, job.SourceURL, job.SourceText, job.VoiceStyle, job.DurationType,
		job.Title, job.Script, job.AudioURL, job.AudioSizeBytes, job.AudioDurationSeconds,
		job.Status, job.ErrorMessage, job.IsPublic, job.ShareSlug,
		job.CreatedAt, job.UpdatedAt, job.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to insert podcast: %w", err)
	}
	return nil
}

func (p *Postgres) GetPodcast(ctx context.Context, id string) (*models.PodcastJob, error) {
	job := models.PodcastJob{}
	err := p.db.GetContext(ctx, &job, "SELECT * FROM podcasts WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get podcast: %w", err)
	}
	return &job, nil
}

func (p *Postgres) GetPodcastBySlug(ctx context.Context, slug string) (*models.PodcastJob, error) {
	job := models.PodcastJob{}
	err := p.db.GetContext(ctx, &job, "SELECT * FROM podcasts WHERE share_slug = $1", slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get podcast by slug: %w", err)
	}
	return &job, nil
}

func (p *Postgres) UpdatePodcast(ctx context.Context, job *models.PodcastJob) error {
	job.UpdatedAt = time.Now().UTC()
	res, err := p.db.ExecContext(ctx, `
		UPDATE podcasts SET
			title = $1, script = $2, audio_url = $3, audio_size_bytes = $4,
			audio_duration_seconds = $5, status = $6, error_message = $7,
			is_public = $8, updated_at = $9, completed_at = $10
		WHERE id = $11`,
		job.Title, job.Script, job.AudioURL, job.AudioSizeBytes,
		job.AudioDurationSeconds, job.Status, job.ErrorMessage,
		job.IsPublic, job.UpdatedAt, job.CompletedAt, job.ID)
	if err != nil {
		return fmt.Errorf("failed to update podcast: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (p *Postgres) DeletePodcast(ctx context.Context, id string) error {
	// transcript_segments has ON DELETE CASCADE on podcast_id.
	res, err := p.db.ExecContext(ctx, "DELETE FROM podcasts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete podcast: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (p *Postgres) ListPodcasts(ctx context.Context, limit int) ([]models.PodcastJob, error) {
	jobs := []models.PodcastJob{}
	query := "SELECT * FROM podcasts ORDER BY created_at DESC"
	var err error
	if limit > 0 {
		err = p.db.SelectContext(ctx, &jobs, query+" LIMIT $1", limit)
	} else {
		err = p.db.SelectContext(ctx, &jobs, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list podcasts: %w", err)
	}
	return jobs, nil
}

func (p *Postgres) ListPublicCompleted(ctx context.Context, limit int) ([]models.PodcastJob, error) {
	jobs := []models.PodcastJob{}
	query := `SELECT * FROM podcasts WHERE is_public = true AND status = $1 ORDER BY completed_at DESC`
	var err error
	if limit > 0 {
		err = p.db.SelectContext(ctx, &jobs, query+" LIMIT $2", models.StatusCompleted, limit)
	} else {
		err = p.db.SelectContext(ctx, &jobs, query, models.StatusCompleted)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list public podcasts: %w", err)
	}
	return jobs, nil
}

func (p *Postgres) ListUnfinished(ctx context.Context, before time.Time) ([]models.PodcastJob, error) {
	jobs := []models.PodcastJob{}
	err := p.db.SelectContext(ctx, &jobs, `
		SELECT * FROM podcasts
		WHERE status NOT IN ($1, $2) AND created_at < $3
		ORDER BY created_at ASC`,
		models.StatusCompleted, models.StatusFailed, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list unfinished podcasts: %w", err)
	}
	return jobs, nil
}

func (p *Postgres) CreateSegments(ctx context.Context, segments []models.TranscriptSegment) error {
	if len(segments) == 0 {
		return nil
	}
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, seg := range segments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO transcript_segments (id, podcast_id, sentence_index, text, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			seg.ID, seg.PodcastID, seg.SentenceIndex, seg.Text, seg.StartTime, seg.EndTime)
		if err != nil {
			return fmt.Errorf("failed to insert segment %d: %w", seg.SentenceIndex, err)
		}
	}
	return tx.Commit()
}

func (p *Postgres) GetSegments(ctx context.Context, podcastID string) ([]models.TranscriptSegment, error) {
	segments := []models.TranscriptSegment{}
	err := p.db.SelectContext(ctx, &segments,
		"SELECT * FROM transcript_segments WHERE podcast_id = $1 ORDER BY sentence_index ASC", podcastID)
	if err != nil {
		return nil, fmt.Errorf("failed to get segments: %w", err)
	}
	return segments, nil
}

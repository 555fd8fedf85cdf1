package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

// Memory is an in-process Store for development and tests. All methods
// return copies so polling readers always see a consistent snapshot of a
// job mid-transition.
type Memory struct {
	mu       sync.RWMutex
	jobs     map[string]models.PodcastJob
	bySlug   map[string]string
	segments map[string][]models.TranscriptSegment
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		jobs:     make(map[string]models.PodcastJob),
		bySlug:   make(map[string]string),
		segments: make(map[string][]models.TranscriptSegment),
	}
}

func (m *Memory) CreatePodcast(ctx context.Context, job *models.PodcastJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = *job
	m.bySlug[job.ShareSlug] = job.ID
	return nil
}

func (m *Memory) GetPodcast(ctx context.Context, id string) (*models.PodcastJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &job, nil
}

func (m *Memory) GetPodcastBySlug(ctx context.Context, slug string) (*models.PodcastJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.bySlug[slug]
	if !ok {
		return nil, models.ErrNotFound
	}
	job := m.jobs[id]
	return &job, nil
}

func (m *Memory) UpdatePodcast(ctx context.Context, job *models.PodcastJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[job.ID]; !ok {
		return models.ErrNotFound
	}
	job.UpdatedAt = time.Now().UTC()
	m.jobs[job.ID] = *job
	return nil
}

func (m *Memory) DeletePodcast(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return models.ErrNotFound
	}
	delete(m.jobs, id)
	delete(m.bySlug, job.ShareSlug)
	delete(m.segments, id)
	return nil
}

func (m *Memory) ListPodcasts(ctx context.Context, limit int) ([]models.PodcastJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jobs := make([]models.PodcastJob, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].CreatedAt.After(jobs[j].CreatedAt) })
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (m *Memory) ListPublicCompleted(ctx context.Context, limit int) ([]models.PodcastJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jobs := []models.PodcastJob{}
	for _, job := range m.jobs {
		if job.IsPublic && job.Status == models.StatusCompleted {
			jobs = append(jobs, job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool {
		ti, tj := jobs[i].CompletedAt, jobs[j].CompletedAt
		if ti == nil || tj == nil {
			return ti != nil
		}
		return ti.After(*tj)
	})
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (m *Memory) ListUnfinished(ctx context.Context, before time.Time) ([]models.PodcastJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jobs := []models.PodcastJob{}
	for _, job := range m.jobs {
		if !models.IsTerminalStatus(job.Status) && job.CreatedAt.Before(before) {
			jobs = append(jobs, job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].CreatedAt.Before(jobs[j].CreatedAt) })
	return jobs, nil
}

func (m *Memory) CreateSegments(ctx context.Context, segments []models.TranscriptSegment) error {
	if len(segments) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	podcastID := segments[0].PodcastID
	m.segments[podcastID] = append(m.segments[podcastID], segments...)
	return nil
}

func (m *Memory) GetSegments(ctx context.Context, podcastID string) ([]models.TranscriptSegment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	segments := make([]models.TranscriptSegment, len(m.segments[podcastID]))
	copy(segments, m.segments[podcastID])
	sort.Slice(segments, func(i, j int) bool { return segments[i].SentenceIndex < segments[j].SentenceIndex })
	return segments, nil
}

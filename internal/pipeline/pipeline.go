package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/siddheshbandgar/read-it-aloud/internal/blob"
	"github.com/siddheshbandgar/read-it-aloud/internal/extractor"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
	"github.com/siddheshbandgar/read-it-aloud/internal/store"
	"github.com/siddheshbandgar/read-it-aloud/internal/summarizer"
	"github.com/siddheshbandgar/read-it-aloud/internal/synthesizer"
	"github.com/siddheshbandgar/read-it-aloud/internal/transcript"
)

// ContentExtractor turns a URL or raw text into normalized content.
type ContentExtractor interface {
	Extract(ctx context.Context, url, text string) (*extractor.Result, error)
}

// Summarizer condenses content to the requested spoken length.
type Summarizer interface {
	Summarize(ctx context.Context, content, title, author, durationType string) (*summarizer.Result, error)
}

// SpeechSynthesizer renders script text to audio.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voiceStyle string) (*synthesizer.Result, error)
}

// Pipeline sequences the four conversion stages against a persisted job,
// advancing the status state machine and persisting the full record after
// each stage so polling readers can watch progress. Stages run strictly in
// order; the only internal parallelism is the synthesizer's chunk fan-out.
type Pipeline struct {
	store store.Store
	blobs blob.Store
	ext   ContentExtractor
	summ  Summarizer
	synth SpeechSynthesizer
}

// New wires a pipeline from its collaborators.
func New(st store.Store, blobs blob.Store, ext ContentExtractor, summ Summarizer, synth SpeechSynthesizer) *Pipeline {
	return &Pipeline{store: st, blobs: blobs, ext: ext, summ: summ, synth: synth}
}

// Run executes the full pipeline for one job. Any stage error moves the job
// to failed with the error message captured verbatim; the error is also
// returned so the worker can log it. Artifacts from completed stages are
// not rolled back on a later failure.
func (p *Pipeline) Run(ctx context.Context, jobID string) error {
	job, err := p.store.GetPodcast(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load podcast %s: %w", jobID, err)
	}
	if models.IsTerminalStatus(job.Status) {
		log.Printf("Podcast %s is already %s, skipping", job.ID, job.Status)
		return nil
	}

	if err := p.run(ctx, job); err != nil {
		msg := err.Error()
		job.Status = models.StatusFailed
		job.ErrorMessage = &msg
		if updateErr := p.store.UpdatePodcast(ctx, job); updateErr != nil {
			log.Printf("Failed to mark podcast %s as failed: %v", job.ID, updateErr)
		}
		return err
	}
	return nil
}

func (p *Pipeline) run(ctx context.Context, job *models.PodcastJob) error {
	if err := p.setStatus(ctx, job, models.StatusExtracting); err != nil {
		return err
	}

	sourceURL := derefString(job.SourceURL)
	sourceText := derefString(job.SourceText)
	extracted, err := p.ext.Extract(ctx, sourceURL, sourceText)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	job.Title = &extracted.Title
	if err := p.setStatus(ctx, job, models.StatusProcessing); err != nil {
		return err
	}

	summarized, err := p.summ.Summarize(ctx, extracted.Content, extracted.Title, extracted.Author, job.DurationType)
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}
	script := summarized.Summary

	if err := p.setStatus(ctx, job, models.StatusGeneratingAudio); err != nil {
		return err
	}

	synthesized, err := p.synth.Synthesize(ctx, script, job.VoiceStyle)
	if err != nil {
		return fmt.Errorf("audio generation failed: %w", err)
	}

	if err := p.setStatus(ctx, job, models.StatusUploading); err != nil {
		return err
	}

	audioURL, err := p.blobs.Upload(ctx, AudioKey(job.ID), synthesized.Audio, "audio/mpeg")
	if err != nil {
		return fmt.Errorf("audio upload failed: %w", err)
	}

	segments := transcript.Build(job.ID, script, synthesized.DurationSeconds)
	if err := p.store.CreateSegments(ctx, segments); err != nil {
		return fmt.Errorf("failed to persist transcript: %w", err)
	}

	audioSize := int64(len(synthesized.Audio))
	now := time.Now().UTC()
	job.Script = &script
	job.AudioURL = &audioURL
	job.AudioSizeBytes = &audioSize
	job.AudioDurationSeconds = &synthesized.DurationSeconds
	job.CompletedAt = &now
	if err := p.setStatus(ctx, job, models.StatusCompleted); err != nil {
		return err
	}

	log.Printf("Podcast %s completed: %d segments, %.1fs audio", job.ID, len(segments), synthesized.DurationSeconds)
	return nil
}

func (p *Pipeline) setStatus(ctx context.Context, job *models.PodcastJob, status string) error {
	job.Status = status
	if err := p.store.UpdatePodcast(ctx, job); err != nil {
		return fmt.Errorf("failed to persist status %s: %w", status, err)
	}
	return nil
}

// AudioKey is the blob key for a job's audio artifact.
func AudioKey(jobID string) string {
	return jobID + ".mp3"
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package models

import "time"

// Podcast job statuses, in pipeline order. A job only ever moves forward
// through this sequence, or to StatusFailed from any non-terminal state.
const (
	StatusPending         = "pending"
	StatusExtracting      = "extracting"
	StatusProcessing      = "processing"
	StatusGeneratingAudio = "generating_audio"
	StatusUploading       = "uploading"
	StatusCompleted       = "completed"
	StatusFailed          = "failed"
)

var statusOrder = map[string]int{
	StatusPending:         0,
	StatusExtracting:      1,
	StatusProcessing:      2,
	StatusGeneratingAudio: 3,
	StatusUploading:       4,
	StatusCompleted:       5,
}

// StatusOrder returns the position of a status in the forward-only
// sequence. StatusFailed and unknown values return -1; failed is terminal
// and reachable from any non-terminal state, so it has no rank.
func StatusOrder(status string) int {
	rank, ok := statusOrder[status]
	if !ok {
		return -1
	}
	return rank
}

// IsTerminalStatus reports whether a job in this status will never be
// mutated again by the pipeline.
func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

// Duration types control how aggressively the summarizer condenses the
// extracted content. DurationFull skips summarization entirely.
const (
	Duration2Min  = "2min"
	Duration5Min  = "5min"
	Duration10Min = "10min"
	DurationFull  = "full"
)

// ValidDurationType reports whether s is one of the accepted duration buckets.
func ValidDurationType(s string) bool {
	switch s {
	case Duration2Min, Duration5Min, Duration10Min, DurationFull:
		return true
	}
	return false
}

// PodcastJob is one request to turn a source into a narrated podcast. It is
// both the unit of pipeline execution and its audit trail: the worker
// persists the full record after every stage so polling readers can observe
// progress mid-flight.
type PodcastJob struct {
	ID                   string     `db:"id" json:"id"`
	SourceURL            *string    `db:"source_url" json:"sourceUrl,omitempty"`
	SourceText           *string    `db:"source_text" json:"sourceText,omitempty"`
	VoiceStyle           string     `db:"voice_style" json:"voiceStyle"`
	DurationType         string     `db:"duration_type" json:"durationType"`
	Title                *string    `db:"title" json:"title,omitempty"`
	Script               *string    `db:"script" json:"script,omitempty"`
	AudioURL             *string    `db:"audio_url" json:"audioUrl,omitempty"`
	AudioSizeBytes       *int64     `db:"audio_size_bytes" json:"audioSizeBytes,omitempty"`
	AudioDurationSeconds *float64   `db:"audio_duration_seconds" json:"audioDurationSeconds,omitempty"`
	Status               string     `db:"status" json:"status"`
	ErrorMessage         *string    `db:"error_message" json:"errorMessage,omitempty"`
	IsPublic             bool       `db:"is_public" json:"isPublic"`
	ShareSlug            string     `db:"share_slug" json:"shareSlug"`
	CreatedAt            time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updatedAt"`
	CompletedAt          *time.Time `db:"completed_at" json:"completedAt,omitempty"`
}

// TranscriptSegment is one spoken sentence of a completed podcast with its
// estimated start and end offsets in seconds. SentenceIndex is the
// authoritative ordering, not insertion order.
type TranscriptSegment struct {
	ID            string  `db:"id" json:"id"`
	PodcastID     string  `db:"podcast_id" json:"podcastId"`
	SentenceIndex int     `db:"sentence_index" json:"sentenceIndex"`
	Text          string  `db:"text" json:"text"`
	StartTime     float64 `db:"start_time" json:"startTime"`
	EndTime       float64 `db:"end_time" json:"endTime"`
}

package synthesizer

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/siddheshbandgar/read-it-aloud/internal/config"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

// wordsPerMinute is the assumed narration pace. Duration is estimated from
// the script rather than measured from the encoded audio; the transcript
// builder inherits the same estimate so the two stay consistent.
const wordsPerMinute = 150

// Result is the synthesized audio and its estimated duration.
type Result struct {
	Audio           []byte
	DurationSeconds float64
}

// Provider is one text-to-speech backend.
type Provider interface {
	Name() string
	Configured() bool
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Synthesizer converts script text to audio through a primary provider with
// a full-fallback secondary. Fallback order: a configured primary is tried
// first and the fallback only covers its failure; an unconfigured primary
// hands off to the fallback directly; with neither configured synthesis
// fails with a configuration error.
type Synthesizer struct {
	primary  Provider
	fallback Provider
}

// New wires the ElevenLabs primary and OpenAI speech fallback from config.
func New(cfg *config.Config) *Synthesizer {
	return &Synthesizer{
		primary:  NewElevenLabs(cfg.ElevenLabsAPIKey, cfg.ElevenLabsAPIURL),
		fallback: NewOpenAISpeech(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL),
	}
}

// NewWithProviders injects explicit providers. Used by tests.
func NewWithProviders(primary, fallback Provider) *Synthesizer {
	return &Synthesizer{primary: primary, fallback: fallback}
}

// Synthesize renders text with the resolved voice. There is no
// partial-success mode: the returned audio is complete or the call fails.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voiceStyle string) (*Result, error) {
	voice := CanonicalStyle(voiceStyle)

	audio, err := s.synthesizeWithFallback(ctx, text, voice)
	if err != nil {
		return nil, err
	}
	return &Result{Audio: audio, DurationSeconds: EstimateDuration(text)}, nil
}

func (s *Synthesizer) synthesizeWithFallback(ctx context.Context, text, voice string) ([]byte, error) {
	if s.primary.Configured() {
		audio, err := s.primary.Synthesize(ctx, text, voice)
		if err == nil {
			return audio, nil
		}
		if !s.fallback.Configured() {
			return nil, fmt.Errorf("%w: %s: %v", models.ErrSynthesis, s.primary.Name(), err)
		}
		log.Printf("Primary synthesis provider %s failed, trying %s: %v", s.primary.Name(), s.fallback.Name(), err)
	} else if !s.fallback.Configured() {
		return nil, fmt.Errorf("%w: no speech provider is configured", models.ErrConfiguration)
	}

	audio, err := s.fallback.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrSynthesis, s.fallback.Name(), err)
	}
	return audio, nil
}

// EstimateDuration converts a script to seconds at the assumed pace.
func EstimateDuration(text string) float64 {
	return float64(len(strings.Fields(text))) / wordsPerMinute * 60
}

var chunkSentenceEndRe = regexp.MustCompile(`[.!?]\s+`)

// ChunkText splits text into pieces of at most limit bytes, breaking at
// sentence boundaries and falling back to word boundaries when one sentence
// alone exceeds the limit. Joining the chunks with single spaces preserves
// every word of the input.
func ChunkText(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, sentence := range splitChunkSentences(text) {
		if len(sentence) > limit {
			flush()
			chunks = append(chunks, splitByWords(sentence, limit)...)
			continue
		}
		if current.Len() > 0 && current.Len()+1+len(sentence) > limit {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}
	flush()
	return chunks
}

func splitChunkSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range chunkSentenceEndRe.FindAllStringIndex(text, -1) {
		sentences = append(sentences, strings.TrimSpace(text[start:loc[0]+1]))
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func splitByWords(sentence string, limit int) []string {
	var chunks []string
	var current strings.Builder
	for _, word := range strings.Fields(sentence) {
		if current.Len() > 0 && current.Len()+1+len(word) > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

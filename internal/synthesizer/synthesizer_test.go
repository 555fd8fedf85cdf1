package synthesizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/siddheshbandgar/read-it-aloud/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records calls and returns canned audio or an error.
type fakeProvider struct {
	name       string
	configured bool
	audio      []byte
	err        error
	calls      int
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) Configured() bool { return f.configured }
func (f *fakeProvider) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	f.calls++
	return f.audio, f.err
}

func TestCanonicalStyle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"narrator", "narrator"},
		{"deep", "deep"},
		{"news_anchor", "professional"},
		{"calm_female", "calm"},
		{"deep_narrator", "deep"},
		{"casual_podcast", "podcast_host"},
		{"energetic", "friendly"},
		{"does_not_exist", "narrator"},
		{"", "narrator"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalStyle(tt.in), "style %q", tt.in)
	}
}

func TestEveryCanonicalVoiceHasProviderIDs(t *testing.T) {
	for voice := range canonicalVoices {
		assert.Contains(t, elevenLabsVoiceIDs, voice)
		assert.Contains(t, openAIVoiceNames, voice)
	}
}

func TestChunkTextRoundTrip(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 400; i++ {
		fmt.Fprintf(&sb, "This is sentence number %d with a little padding text. ", i)
	}
	text := sb.String()

	chunks := ChunkText(text, 500)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 500, "chunk %d exceeds the limit", i)
	}

	// Chunking then rejoining must preserve every word in order.
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(chunks, " ")))
}

func TestChunkTextOversizeSentence(t *testing.T) {
	// A single sentence longer than the limit must break at word boundaries.
	text := strings.Repeat("antidisestablishmentarianism ", 50) + "done."
	chunks := ChunkText(text, 100)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100)
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(chunks, " ")))
}

func TestChunkTextShortInput(t *testing.T) {
	assert.Equal(t, []string{"Short text."}, ChunkText("Short text.", 4000))
	assert.Nil(t, ChunkText("", 4000))
}

func TestSynthesizePrimarySucceeds(t *testing.T) {
	primary := &fakeProvider{name: "primary", configured: true, audio: []byte("audio-a")}
	fallback := &fakeProvider{name: "fallback", configured: true, audio: []byte("audio-b")}
	s := NewWithProviders(primary, fallback)

	res, err := s.Synthesize(context.Background(), "Hello world, this is a test.", "narrator")
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-a"), res.Audio)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestSynthesizeFallsBackOnPrimaryFailure(t *testing.T) {
	primary := &fakeProvider{name: "primary", configured: true, err: errors.New("upstream 500")}
	fallback := &fakeProvider{name: "fallback", configured: true, audio: []byte("audio-b")}
	s := NewWithProviders(primary, fallback)

	res, err := s.Synthesize(context.Background(), "Hello world.", "narrator")
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-b"), res.Audio)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestSynthesizePrimaryUnconfiguredUsesFallback(t *testing.T) {
	primary := &fakeProvider{name: "primary", configured: false}
	fallback := &fakeProvider{name: "fallback", configured: true, audio: []byte("audio-b")}
	s := NewWithProviders(primary, fallback)

	res, err := s.Synthesize(context.Background(), "Hello world.", "narrator")
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-b"), res.Audio)
	assert.Equal(t, 0, primary.calls)
}

func TestSynthesizeNoProvidersConfigured(t *testing.T) {
	s := NewWithProviders(
		&fakeProvider{name: "primary", configured: false},
		&fakeProvider{name: "fallback", configured: false},
	)

	_, err := s.Synthesize(context.Background(), "Hello world.", "narrator")
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestSynthesizePrimaryFailsNoFallback(t *testing.T) {
	s := NewWithProviders(
		&fakeProvider{name: "primary", configured: true, err: errors.New("upstream 500")},
		&fakeProvider{name: "fallback", configured: false},
	)

	_, err := s.Synthesize(context.Background(), "Hello world.", "narrator")
	assert.ErrorIs(t, err, models.ErrSynthesis)
}

func TestEstimateDuration(t *testing.T) {
	// 150 words at 150 wpm is exactly one minute.
	words := strings.Repeat("word ", 150)
	assert.InDelta(t, 60.0, EstimateDuration(words), 1e-9)

	// The end-to-end reference: 9 words at 150 wpm is 3.6 seconds.
	assert.InDelta(t, 3.6, EstimateDuration("one two three four five six seven eight nine"), 1e-9)
}

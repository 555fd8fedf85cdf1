package transcript

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContiguity(t *testing.T) {
	script := "First sentence. Second one! Third, a question? Fourth and last"
	total := 12.0

	segments := Build("job-1", script, total)
	require.Len(t, segments, 4)

	assert.Equal(t, 0.0, segments[0].StartTime)
	assert.InDelta(t, total, segments[len(segments)-1].EndTime, 1e-9)
	for i := 0; i < len(segments)-1; i++ {
		assert.Equal(t, segments[i].EndTime, segments[i+1].StartTime, "segment %d must end where %d starts", i, i+1)
	}
	for i, seg := range segments {
		assert.Equal(t, i, seg.SentenceIndex)
		assert.Greater(t, seg.EndTime, seg.StartTime)
		assert.Equal(t, "job-1", seg.PodcastID)
		assert.NotEmpty(t, seg.ID)
	}
}

func TestBuildUniformAllocation(t *testing.T) {
	segments := Build("job-1", "One. Two. Three. Four.", 8.0)
	require.Len(t, segments, 4)
	for _, seg := range segments {
		assert.InDelta(t, 2.0, seg.EndTime-seg.StartTime, 1e-9)
	}
}

func TestBuildCapsSegments(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 150; i++ {
		fmt.Fprintf(&sb, "Sentence number %d. ", i)
	}

	segments := Build("job-1", sb.String(), 300.0)
	require.Len(t, segments, 100)
	// The capped set still spans the full duration.
	assert.InDelta(t, 300.0, segments[99].EndTime, 1e-9)
}

func TestBuildEmptyScript(t *testing.T) {
	assert.Nil(t, Build("job-1", "", 10.0))
	assert.Nil(t, Build("job-1", "   ", 10.0))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{
			name:   "mixed terminators",
			script: "Hello there. How are you? Great! Bye",
			want:   []string{"Hello there.", "How are you?", "Great!", "Bye"},
		},
		{
			name:   "no trailing whitespace after final period",
			script: "Only one sentence.",
			want:   []string{"Only one sentence."},
		},
		{
			name:   "newlines count as whitespace",
			script: "Line one.\nLine two.",
			want:   []string{"Line one.", "Line two."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.script))
		})
	}
}

package transcript

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

// maxSegments caps transcript length. Sentences beyond the cap remain in
// the audio but are silently dropped from timing.
const maxSegments = 100

var sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)

// Build splits a script into sentences and distributes the total audio
// duration uniformly across them, producing contiguous timestamped
// segments: segment i spans [i*t, (i+1)*t) where t = total/count.
// Allocation is uniform rather than weighted by sentence length; timing is
// an estimate to begin with, so the extra precision would be false.
func Build(podcastID, script string, totalDuration float64) []models.TranscriptSegment {
	sentences := SplitSentences(script)
	if len(sentences) == 0 {
		return nil
	}
	if len(sentences) > maxSegments {
		sentences = sentences[:maxSegments]
	}

	timePerSentence := totalDuration / float64(len(sentences))
	segments := make([]models.TranscriptSegment, len(sentences))
	for i, sentence := range sentences {
		segments[i] = models.TranscriptSegment{
			ID:            uuid.New().String(),
			PodcastID:     podcastID,
			SentenceIndex: i,
			Text:          sentence,
			StartTime:     float64(i) * timePerSentence,
			EndTime:       float64(i+1) * timePerSentence,
		}
	}
	return segments
}

// SplitSentences splits after '.', '!' or '?' followed by whitespace,
// discarding empty results.
func SplitSentences(script string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(script, -1) {
		if s := strings.TrimSpace(script[start : loc[0]+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(script[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

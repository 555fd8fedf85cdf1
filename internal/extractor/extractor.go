package extractor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/siddheshbandgar/read-it-aloud/internal/config"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

// browserUserAgent keeps content sites from serving bot-blocked or stripped
// pages.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Result is the normalized output of content extraction.
type Result struct {
	Title   string
	Content string
	Author  string
}

// Extractor turns a URL or raw pasted text into clean article content.
type Extractor struct {
	client *http.Client

	// Upstream endpoints, overridable in tests.
	unrollAPIURL string
	threadAPIURL string
	threadAPIKey string
	oembedAPIURL string
}

// New builds an Extractor from configuration.
func New(cfg *config.Config) *Extractor {
	return &Extractor{
		client:       &http.Client{Timeout: 30 * time.Second},
		unrollAPIURL: cfg.TweetUnrollAPIURL,
		threadAPIURL: cfg.ThreadAPIURL,
		threadAPIKey: cfg.ThreadAPIKey,
		oembedAPIURL: cfg.TwitterOEmbedURL,
	}
}

// Extract normalizes either a URL or raw text into (title, content, author).
// Exactly one of rawURL or text is expected; with neither it fails with
// ErrInvalidInput.
func (e *Extractor) Extract(ctx context.Context, rawURL, text string) (*Result, error) {
	if text != "" {
		return extractFromText(text), nil
	}
	if rawURL == "" {
		return nil, fmt.Errorf("%w: either a URL or text is required", models.ErrInvalidInput)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL %q", models.ErrInvalidInput, rawURL)
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if host == "twitter.com" || host == "x.com" {
		return e.extractTweet(ctx, parsed)
	}
	return e.extractWebPage(ctx, rawURL)
}

// extractFromText treats pasted text as the source. A short first line of a
// multi-line paste is taken as the title; otherwise the title is derived
// from the first sentence.
func extractFromText(text string) *Result {
	text = strings.TrimSpace(text)
	lines := strings.SplitN(text, "\n", 2)
	if len(lines) == 2 && len(lines[0]) <= 100 {
		return &Result{
			Title:   strings.TrimSpace(lines[0]),
			Content: strings.TrimSpace(lines[1]),
		}
	}
	return &Result{
		Title:   titleFromFirstSentence(text),
		Content: text,
	}
}

func titleFromFirstSentence(text string) string {
	sentence := text
	if idx := strings.IndexAny(text, ".!?"); idx >= 0 {
		sentence = text[:idx+1]
	}
	sentence = strings.TrimSpace(sentence)
	if len(sentence) > 80 {
		return strings.TrimSpace(sentence[:77]) + "..."
	}
	return sentence
}

// collapseWhitespace flattens runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/siddheshbandgar/read-it-aloud/internal/config"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

// wordTargets maps a duration bucket to the word count a narrator reads in
// that time. DurationFull has no target and skips summarization.
var wordTargets = map[string]int{
	models.Duration2Min:  300,
	models.Duration5Min:  750,
	models.Duration10Min: 1500,
}

// maxPromptChars bounds how much of the article body goes into the prompt.
const maxPromptChars = 24000

// Result is the condensed script and its word count.
type Result struct {
	Summary   string
	WordCount int
}

// Summarizer condenses extracted content to a target spoken length using a
// chat-completion model, degrading silently to deterministic truncation
// when the model is unavailable or fails.
type Summarizer struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// New builds a Summarizer from configuration. An empty API key is not an
// error; the truncation fallback covers it.
func New(cfg *config.Config) *Summarizer {
	return &Summarizer{
		apiKey:  cfg.OpenAIAPIKey,
		model:   cfg.OpenAIModel,
		baseURL: cfg.OpenAIAPIURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Summarize reduces content to the word budget for durationType. Content
// already at or under 1.2x the target passes through unchanged, as does
// everything when durationType is "full".
func (s *Summarizer) Summarize(ctx context.Context, content, title, author, durationType string) (*Result, error) {
	target, ok := wordTargets[durationType]
	if !ok {
		return &Result{Summary: content, WordCount: countWords(content)}, nil
	}

	wordCount := countWords(content)
	if float64(wordCount) <= 1.2*float64(target) {
		return &Result{Summary: content, WordCount: wordCount}, nil
	}

	if s.apiKey != "" {
		summary, err := s.complete(ctx, content, title, author, target)
		if err == nil && strings.TrimSpace(summary) != "" {
			return &Result{Summary: summary, WordCount: countWords(summary)}, nil
		}
		if err != nil {
			log.Printf("Summarization call failed, falling back to truncation: %v", err)
		}
	}

	truncated := Truncate(content, target)
	return &Result{Summary: truncated, WordCount: countWords(truncated)}, nil
}

// Truncate cuts text to targetWords, then trims back to the nearest
// preceding sentence boundary unless that boundary falls before 70% of the
// cut; in that case the hard cutoff stands with an ellipsis appended.
// Truncate is a pure function of its inputs, so the degraded summarization
// path is exactly reproducible.
func Truncate(text string, targetWords int) string {
	words := strings.Fields(text)
	if len(words) <= targetWords {
		return text
	}
	cut := strings.Join(words[:targetWords], " ")

	boundary := strings.LastIndexAny(cut, ".?!")
	if boundary >= 0 && float64(boundary+1) >= 0.7*float64(len(cut)) {
		return cut[:boundary+1]
	}
	return cut + "..."
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *Summarizer) complete(ctx context.Context, content, title, author string, targetWords int) (string, error) {
	body := content
	if len(body) > maxPromptChars {
		body = body[:maxPromptChars]
	}

	system := fmt.Sprintf("You are a podcast script writer. Rewrite the article below as a "+
		"conversational script meant to be read aloud, approximately %d words long. Keep the "+
		"author's key points and voice. Return only the script text, no headings or stage directions.",
		targetWords)

	user := fmt.Sprintf("Title: %s\n", title)
	if author != "" {
		user += fmt.Sprintf("Author: %s\n", author)
	}
	user += "\n" + body

	payload, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

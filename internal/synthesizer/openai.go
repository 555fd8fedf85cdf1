package synthesizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// fallbackInputLimit is the fallback provider's hard input cap. Text is
// truncated before submission; this path does not chunk.
const fallbackInputLimit = 4096

// OpenAISpeech is the fallback speech provider.
type OpenAISpeech struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAISpeech builds the provider; an empty key leaves it unconfigured.
func NewOpenAISpeech(apiKey, baseURL string) *OpenAISpeech {
	return &OpenAISpeech{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

func (p *OpenAISpeech) Name() string { return "openai" }

func (p *OpenAISpeech) Configured() bool { return p.apiKey != "" }

type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

func (p *OpenAISpeech) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	voiceName, ok := openAIVoiceNames[voice]
	if !ok {
		voiceName = openAIVoiceNames[DefaultVoice]
	}
	if len(text) > fallbackInputLimit {
		text = text[:fallbackInputLimit]
	}

	payload, err := json.Marshal(speechRequest{Model: "tts-1", Input: text, Voice: voiceName})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/audio/speech", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
	}
	return io.ReadAll(resp.Body)
}

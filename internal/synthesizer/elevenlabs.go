package synthesizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// chunkByteLimit stays comfortably under the provider's 5000-byte
// per-request ceiling.
const chunkByteLimit = 4000

// ElevenLabs is the primary speech provider. Long scripts are split under
// the request size limit, all chunks are submitted concurrently, and the
// MP3 responses are concatenated in chunk order. MP3 frames are
// independently decodable, so sequential concat of separately-encoded
// segments plays back as one file.
type ElevenLabs struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewElevenLabs builds the provider; an empty key leaves it unconfigured.
func NewElevenLabs(apiKey, baseURL string) *ElevenLabs {
	return &ElevenLabs{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

func (p *ElevenLabs) Name() string { return "elevenlabs" }

func (p *ElevenLabs) Configured() bool { return p.apiKey != "" }

func (p *ElevenLabs) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	voiceID, ok := elevenLabsVoiceIDs[voice]
	if !ok {
		voiceID = elevenLabsVoiceIDs[DefaultVoice]
	}

	chunks := ChunkText(text, chunkByteLimit)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	// All chunks of one job go out concurrently; the concat below follows
	// chunk index, not completion order.
	results := make([][]byte, len(chunks))
	errCh := make(chan error, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()
			audio, err := p.synthesizeChunk(ctx, chunk, voiceID)
			if err != nil {
				errCh <- fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
				return
			}
			results[i] = audio
		}(i, chunk)
	}
	wg.Wait()

	select {
	case err := <-errCh:
		return nil, err
	default:
	}

	var audio bytes.Buffer
	for _, part := range results {
		audio.Write(part)
	}
	return audio.Bytes(), nil
}

type elevenLabsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

func (p *ElevenLabs) synthesizeChunk(ctx context.Context, text, voiceID string) ([]byte, error) {
	payload, err := json.Marshal(elevenLabsRequest{Text: text, ModelID: "eleven_multilingual_v2"})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s", p.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

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

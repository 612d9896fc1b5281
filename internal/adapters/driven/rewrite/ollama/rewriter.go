// Package ollama provides a rewrite adapter using a local Ollama server.
package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
)

// Ensure Rewriter implements the interface.
var _ driven.Rewriter = (*Rewriter)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
)

// Config holds configuration for the Ollama rewriter.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the model to use (default: llama3.2).
	Model string

	// Temperature controls sampling; 0 keeps rewrites deterministic.
	Temperature float64
}

// Rewriter streams chunk rewrites from a local Ollama server. Requests
// are bounded by the caller's context, not a client timeout; local
// models can be slow on large chunks.
type Rewriter struct {
	client      *http.Client
	baseURL     string
	model       string
	temperature float64
}

// chatRequest is the Ollama /api/chat request format.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *options      `json:"options,omitempty"`
}

// chatMessage is the Ollama chat message format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// options holds generation parameters.
type options struct {
	Temperature float64 `json:"temperature"`
}

// chatResponse is one line of the streamed /api/chat response.
// The final line has done=true and carries the token counts.
type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
	Error           string `json:"error,omitempty"`
}

// New creates a new Ollama rewriter.
func New(cfg Config) *Rewriter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return &Rewriter{
		client:      &http.Client{},
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Rewrite streams the completion for one chunk.
func (r *Rewriter) Rewrite(ctx context.Context, req driven.RewriteRequest) (<-chan driven.RewriteDelta, <-chan error) {
	deltas := make(chan driven.RewriteDelta)
	errs := make(chan error, 1)

	go func() {
		defer close(deltas)
		defer close(errs)
		if err := r.stream(ctx, req, deltas); err != nil {
			errs <- err
		}
	}()

	return deltas, errs
}

func (r *Rewriter) stream(ctx context.Context, req driven.RewriteRequest, deltas chan<- driven.RewriteDelta) error {
	reqBody := chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Input},
		},
		Stream:  true,
		Options: &options{Temperature: r.temperature},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.baseURL+"/api/chat",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var chunk chatResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			return fmt.Errorf("decode response line: %w", err)
		}
		if chunk.Error != "" {
			return fmt.Errorf("ollama error: %s", chunk.Error)
		}

		delta := driven.RewriteDelta{Text: chunk.Message.Content}
		if chunk.Done {
			delta.Usage = &domain.TokenUsage{
				PromptTokens: chunk.PromptEvalCount,
				OutputTokens: chunk.EvalCount,
			}
		}
		if delta.Text == "" && delta.Usage == nil {
			continue
		}

		select {
		case deltas <- delta:
		case <-ctx.Done():
			return ctx.Err()
		}

		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return nil
}

// ModelName returns the name of the model being used.
func (r *Rewriter) ModelName() string {
	return r.model
}

// Ping validates the service is reachable by checking the /api/tags endpoint.
// This is a lightweight check that validates connectivity without running inference.
func (r *Rewriter) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("ollama: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("ollama: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (r *Rewriter) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// Package openai provides a rewrite adapter using the OpenAI chat API.
package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
)

// Ensure Rewriter implements the interface.
var _ driven.Rewriter = (*Rewriter)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

// Config holds configuration for the OpenAI rewriter.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the model to use (default: gpt-4o-mini).
	Model string

	// Temperature controls sampling; 0 keeps rewrites deterministic.
	Temperature float64
}

// Rewriter streams chunk rewrites from the OpenAI chat completions API.
// Requests are bounded by the caller's context, not a client timeout;
// a stream may legitimately run for minutes on a large chunk.
type Rewriter struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
}

// chatRequest is the /chat/completions request format.
type chatRequest struct {
	Model         string        `json:"model"`
	Messages      []chatMessage `json:"messages"`
	Stream        bool          `json:"stream"`
	StreamOptions streamOptions `json:"stream_options"`
	Temperature   float64       `json:"temperature"`
}

// chatMessage is the chat message format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

// streamEvent is one server-sent chunk of a streamed completion.
// The final event carries usage and an empty choices list.
type streamEvent struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// New creates a new OpenAI rewriter.
func New(cfg Config) (*Rewriter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return &Rewriter{
		client:      &http.Client{},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
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
		Stream:        true,
		StreamOptions: streamOptions{IncludeUsage: true},
		Temperature:   r.temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("openai error (status %d): failed to read response", resp.StatusCode)
		}
		return fmt.Errorf("openai error (status %d): %s", resp.StatusCode, string(body))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			break
		}

		var event streamEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			return fmt.Errorf("decode stream event: %w", err)
		}
		if event.Error != nil {
			return fmt.Errorf("openai error: %s", event.Error.Message)
		}

		delta := driven.RewriteDelta{}
		if len(event.Choices) > 0 {
			delta.Text = event.Choices[0].Delta.Content
		}
		if event.Usage != nil {
			delta.Usage = &domain.TokenUsage{
				PromptTokens: event.Usage.PromptTokens,
				OutputTokens: event.Usage.CompletionTokens,
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

// Ping validates the service is reachable by checking the /models endpoint.
// This is a lightweight check that validates the API key without running inference.
func (r *Rewriter) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("openai: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (r *Rewriter) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

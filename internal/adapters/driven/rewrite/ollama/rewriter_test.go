package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
)

func collect(t *testing.T, deltas <-chan driven.RewriteDelta, errs <-chan error) (string, domain.TokenUsage, error) {
	t.Helper()
	var (
		builder   strings.Builder
		usage     domain.TokenUsage
		streamErr error
	)
	for deltas != nil || errs != nil {
		select {
		case d, ok := <-deltas:
			if !ok {
				deltas = nil
				continue
			}
			builder.WriteString(d.Text)
			if d.Usage != nil {
				usage.Add(*d.Usage)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			streamErr = err
		}
	}
	return builder.String(), usage, streamErr
}

func TestRewriteStreamsLines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		lines := []string{
			`{"message":{"content":"Ein "},"done":false}`,
			`{"message":{"content":"Satz."},"done":false}`,
			`{"message":{"content":""},"done":true,"prompt_eval_count":30,"eval_count":4}`,
		}
		for _, l := range lines {
			_, _ = w.Write([]byte(l + "\n"))
		}
	}))
	defer server.Close()

	rw := New(Config{BaseURL: server.URL})

	deltas, errs := rw.Rewrite(context.Background(), driven.RewriteRequest{System: "sys", Input: "roh"})
	text, usage, streamErr := collect(t, deltas, errs)

	require.NoError(t, streamErr)
	assert.Equal(t, "Ein Satz.", text)
	assert.Equal(t, 30, usage.PromptTokens)
	assert.Equal(t, 4, usage.OutputTokens)
}

func TestRewriteSurfacesModelError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"model not found"}` + "\n"))
	}))
	defer server.Close()

	rw := New(Config{BaseURL: server.URL})

	deltas, errs := rw.Rewrite(context.Background(), driven.RewriteRequest{Input: "roh"})
	_, _, streamErr := collect(t, deltas, errs)

	require.Error(t, streamErr)
	assert.Contains(t, streamErr.Error(), "model not found")
}

func TestDefaults(t *testing.T) {
	rw := New(Config{})
	assert.Equal(t, DefaultModel, rw.ModelName())
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rw := New(Config{BaseURL: server.URL})
	assert.NoError(t, rw.Ping(context.Background()))
}

package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
)

// mockRewriter implements driven.Rewriter for testing.
type mockRewriter struct {
	// fn produces the stream for one call; nil means hang until ctx
	// cancellation.
	fn    func(req driven.RewriteRequest) (string, *domain.TokenUsage, error)
	calls int
}

func (m *mockRewriter) Rewrite(ctx context.Context, req driven.RewriteRequest) (<-chan driven.RewriteDelta, <-chan error) {
	m.calls++
	deltas := make(chan driven.RewriteDelta, 1)
	errs := make(chan error, 1)
	go func() {
		defer close(deltas)
		defer close(errs)
		if m.fn == nil {
			<-ctx.Done()
			errs <- ctx.Err()
			return
		}
		text, usage, err := m.fn(req)
		if err != nil {
			errs <- err
			return
		}
		deltas <- driven.RewriteDelta{Text: text, Usage: usage}
	}()
	return deltas, errs
}

func (m *mockRewriter) ModelName() string              { return "mock" }
func (m *mockRewriter) Ping(ctx context.Context) error { return nil }
func (m *mockRewriter) Close() error                   { return nil }

func TestWatchdogReturnsModelOutput(t *testing.T) {
	rw := &mockRewriter{fn: func(req driven.RewriteRequest) (string, *domain.TokenUsage, error) {
		return "Gereinigter Text.", &domain.TokenUsage{PromptTokens: 10, OutputTokens: 5}, nil
	}}
	dog := &watchdog{rewriter: rw, timeout: time.Second}

	res, err := dog.process(context.Background(), "sys", "Roher Text.", domain.DefaultCleaningOptions())
	require.NoError(t, err)

	assert.Equal(t, "Gereinigter Text.", res.Text)
	assert.False(t, res.Fallback)
	assert.Equal(t, 15, res.Usage.Total())
	assert.Equal(t, 1, rw.calls)
}

func TestWatchdogStripsResponseDecoration(t *testing.T) {
	rw := &mockRewriter{fn: func(req driven.RewriteRequest) (string, *domain.TokenUsage, error) {
		return "Hier ist der bereinigte Text:\n\nDer Inhalt.", nil, nil
	}}
	dog := &watchdog{rewriter: rw, timeout: time.Second}

	res, err := dog.process(context.Background(), "sys", "Der Inhalt.", domain.DefaultCleaningOptions())
	require.NoError(t, err)

	assert.Equal(t, "Der Inhalt.", res.Text)
}

func TestWatchdogRetriesThenSucceeds(t *testing.T) {
	rw := &mockRewriter{}
	rw.fn = func(req driven.RewriteRequest) (string, *domain.TokenUsage, error) {
		if rw.calls == 1 {
			return "", nil, assert.AnError
		}
		return "Zweiter Versuch.", nil, nil
	}
	dog := &watchdog{rewriter: rw, timeout: time.Second}

	res, err := dog.process(context.Background(), "sys", "Text.", domain.DefaultCleaningOptions())
	require.NoError(t, err)

	assert.Equal(t, "Zweiter Versuch.", res.Text)
	assert.False(t, res.Fallback)
	assert.Equal(t, 2, rw.calls)
}

func TestWatchdogEmptyResponseCountsAsFailure(t *testing.T) {
	rw := &mockRewriter{fn: func(req driven.RewriteRequest) (string, *domain.TokenUsage, error) {
		return "```\n```", nil, nil
	}}
	dog := &watchdog{rewriter: rw, timeout: time.Second}

	res, err := dog.process(context.Background(), "sys", "Echter Inhalt.", domain.DefaultCleaningOptions())
	require.NoError(t, err)

	assert.True(t, res.Fallback)
	assert.NotEmpty(t, strings.TrimSpace(res.Text))
	assert.Equal(t, 2, rw.calls)
}

// A rewriter that always times out must still yield non-empty text
// for any non-empty chunk.
func TestWatchdogAlwaysTimingOutFallsBack(t *testing.T) {
	rw := &mockRewriter{} // nil fn: hang until the attempt timeout fires
	dog := &watchdog{rewriter: rw, timeout: 20 * time.Millisecond}

	inputs := []string{
		"Ein kurzer Satz.",
		"Kapitel 1\n\nEin Absatz mit mehr Text darin.",
		"x",
	}
	for _, input := range inputs {
		res, err := dog.process(context.Background(), "sys", input, domain.DefaultCleaningOptions())
		require.NoError(t, err)
		assert.True(t, res.Fallback)
		assert.NotEmpty(t, strings.TrimSpace(res.Text))
	}
	assert.Equal(t, len(inputs)*2, rw.calls)
}

func TestWatchdogParentCancellationIsNotMasked(t *testing.T) {
	rw := &mockRewriter{}
	dog := &watchdog{rewriter: rw, timeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := dog.process(ctx, "sys", "Text.", domain.DefaultCleaningOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatchdogWithoutRewriterUsesFallback(t *testing.T) {
	dog := &watchdog{timeout: time.Second}

	opts := domain.DefaultCleaningOptions()
	res, err := dog.process(context.Background(), "sys", "Besuche https://example.com heute.", opts)
	require.NoError(t, err)

	assert.True(t, res.Fallback)
	assert.NotContains(t, res.Text, "https://example.com")
}

func TestLocalRewriteHonorsOptions(t *testing.T) {
	opts := domain.DefaultCleaningOptions()
	opts.ChapterStyle = domain.ChapterRemove

	input := "Kapitel 3: Der Anfang\nEin „zitierter“ Satz – mit Gedankenstrich… Schreib an mail@example.org [12]."
	out, err := localRewrite(context.Background(), input, opts)
	require.NoError(t, err)

	assert.NotContains(t, out, "Kapitel 3")
	assert.NotContains(t, out, "mail@example.org")
	assert.NotContains(t, out, "[12]")
	assert.NotContains(t, out, "„")
	assert.NotContains(t, out, "–")
	assert.NotContains(t, out, "…")
	assert.Contains(t, out, "\"zitierter\"")
}

func TestLocalRewriteCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := localRewrite(ctx, "Text.", domain.DefaultCleaningOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

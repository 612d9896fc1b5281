package mcp

import (
	"context"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
	"github.com/MagickCodes/text-aufbereiter/internal/core/services"
)

// mockPreparer wraps the real service so tool tests run the full
// local pipeline without a rewrite provider.
func newLocalPreparer() *services.PrepareService {
	return services.NewPrepareService()
}

// mockSessionStore is a map-backed driven.SessionStore.
type mockSessionStore struct {
	sessions map[string]domain.PrepareResult
	err      error
}

func (m *mockSessionStore) Save(ctx context.Context, key string, result domain.PrepareResult) error {
	if m.err != nil {
		return m.err
	}
	m.sessions[key] = result
	return nil
}

func (m *mockSessionStore) Load(ctx context.Context, key string) (*domain.PrepareResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	result, ok := m.sessions[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &result, nil
}

func (m *mockSessionStore) List(ctx context.Context) ([]driven.SessionInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	infos := make([]driven.SessionInfo, 0, len(m.sessions))
	for key, result := range m.sessions {
		infos = append(infos, driven.SessionInfo{Key: key, Chunks: result.Chunks, SizeBytes: len(result.Transcript)})
	}
	return infos, nil
}

func (m *mockSessionStore) Delete(ctx context.Context, key string) error {
	delete(m.sessions, key)
	return nil
}

func (m *mockSessionStore) Close() error { return nil }

// mockPresetStore is a map-backed driven.PresetStore.
type mockPresetStore struct {
	presets map[string]domain.CleaningOptions
}

func (m *mockPresetStore) Save(name string, opts domain.CleaningOptions) error {
	m.presets[name] = opts
	return nil
}

func (m *mockPresetStore) Get(name string) (*domain.CleaningOptions, error) {
	opts, ok := m.presets[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &opts, nil
}

func (m *mockPresetStore) List() ([]string, error) {
	names := make([]string, 0, len(m.presets))
	for name := range m.presets {
		names = append(names, name)
	}
	return names, nil
}

func (m *mockPresetStore) Delete(name string) error {
	delete(m.presets, name)
	return nil
}

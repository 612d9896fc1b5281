// Package memory provides in-memory stores for testing and for
// environments where the sqlite database is unavailable.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// nowFunc is swapped in tests to control timestamps.
var nowFunc = time.Now

// SessionStore is an in-memory implementation of driven.SessionStore.
// Contents are lost when the process exits.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]storedSession
}

type storedSession struct {
	result domain.PrepareResult
	info   driven.SessionInfo
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]storedSession),
	}
}

// Save stores or replaces the result for key.
func (s *SessionStore) Save(_ context.Context, key string, result domain.PrepareResult) error {
	if key == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = storedSession{
		result: result,
		info: driven.SessionInfo{
			Key:       key,
			Chunks:    result.Chunks,
			SavedAt:   nowFunc(),
			SizeBytes: len(result.Transcript),
		},
	}
	return nil
}

// Load returns the stored result or domain.ErrNotFound.
func (s *SessionStore) Load(_ context.Context, key string) (*domain.PrepareResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.sessions[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	result := stored.result
	return &result, nil
}

// List returns metadata for all stored sessions, newest first.
func (s *SessionStore) List(_ context.Context) ([]driven.SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]driven.SessionInfo, 0, len(s.sessions))
	for _, stored := range s.sessions {
		infos = append(infos, stored.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].SavedAt.After(infos[j].SavedAt)
	})
	return infos, nil
}

// Delete removes a session. Deleting a missing key is not an error.
func (s *SessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

// Close releases resources.
func (s *SessionStore) Close() error {
	return nil
}

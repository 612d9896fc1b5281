package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/MagickCodes/text-aufbereiter/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/MagickCodes/text-aufbereiter/internal/core/domain"
	"github.com/MagickCodes/text-aufbereiter/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

// Store is a SQLite-backed session store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.aufbereiter/data/sessions.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".aufbereiter", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sessions.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save stores or replaces the result for key.
func (s *Store) Save(ctx context.Context, key string, result domain.PrepareResult) error {
	if key == "" {
		return domain.ErrInvalidInput
	}

	pausesJSON, err := json.Marshal(result.Pauses)
	if err != nil {
		return fmt.Errorf("marshalling pauses: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions
			(key, transcript, chunks, fallback_chunks, prompt_tokens, output_tokens, pauses, elapsed_ms, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			transcript = excluded.transcript,
			chunks = excluded.chunks,
			fallback_chunks = excluded.fallback_chunks,
			prompt_tokens = excluded.prompt_tokens,
			output_tokens = excluded.output_tokens,
			pauses = excluded.pauses,
			elapsed_ms = excluded.elapsed_ms,
			saved_at = excluded.saved_at
	`, key, result.Transcript, result.Chunks, result.FallbackChunks,
		result.Usage.PromptTokens, result.Usage.OutputTokens,
		string(pausesJSON), result.Elapsed.Milliseconds(), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Load returns the stored result for key.
func (s *Store) Load(ctx context.Context, key string) (*domain.PrepareResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT transcript, chunks, fallback_chunks, prompt_tokens, output_tokens, pauses, elapsed_ms
		FROM sessions WHERE key = ?
	`, key)

	var result domain.PrepareResult
	var pausesJSON sql.NullString
	var elapsedMS int64
	if err := row.Scan(&result.Transcript, &result.Chunks, &result.FallbackChunks,
		&result.Usage.PromptTokens, &result.Usage.OutputTokens, &pausesJSON, &elapsedMS); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	if pausesJSON.Valid && pausesJSON.String != "" && pausesJSON.String != "null" {
		if err := json.Unmarshal([]byte(pausesJSON.String), &result.Pauses); err != nil {
			return nil, fmt.Errorf("unmarshalling pauses: %w", err)
		}
	}
	result.Elapsed = time.Duration(elapsedMS) * time.Millisecond

	return &result, nil
}

// List returns metadata for all stored sessions, newest first.
func (s *Store) List(ctx context.Context) ([]driven.SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, chunks, LENGTH(transcript), saved_at
		FROM sessions ORDER BY saved_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var infos []driven.SessionInfo //nolint:prealloc // size unknown from query
	for rows.Next() {
		var info driven.SessionInfo
		var savedAt sql.NullTime
		if err := rows.Scan(&info.Key, &info.Chunks, &info.SizeBytes, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if savedAt.Valid {
			info.SavedAt = savedAt.Time
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	return infos, nil
}

// Delete removes a session. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

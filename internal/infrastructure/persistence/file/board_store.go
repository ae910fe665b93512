// Package file implements the ranking store as a single flat JSON file. It is
// meant for single-instance deployments without a KV or SQL store: all state
// lives in memory and every accepted mutation rewrites the file atomically.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jaymian-lee/portfolio-api/internal/domain/wordly"
	"github.com/jaymian-lee/portfolio-api/internal/infrastructure/persistence/memory"
)

// BoardStore wraps the in-memory store with load/save to a JSON file.
type BoardStore struct {
	path string

	// persistMu serializes snapshot writes; the inner store has its own lock.
	persistMu sync.Mutex
	inner     *memory.BoardStore
}

// NewBoardStore opens (or creates) the store file at path.
func NewBoardStore(path string) (*BoardStore, error) {
	if path == "" {
		return nil, errors.New("file: store path cannot be empty")
	}

	s := &BoardStore{path: path, inner: memory.NewBoardStore()}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BoardStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("file: read store: %w", err)
	}

	var snap memory.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("file: parse store: %w", err)
	}
	s.inner.Restore(snap)
	return nil
}

// persist writes the full state to a temp file and renames it into place, so
// a crash mid-write never leaves a truncated store behind.
func (s *BoardStore) persist() error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	data, err := json.MarshalIndent(s.inner.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("file: encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("file: create store dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("file: write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("file: replace store: %w", err)
	}
	return nil
}

// Submit applies the shared accept-if-better rule and persists the new state.
func (s *BoardStore) Submit(ctx context.Context, sub wordly.Submission) (bool, error) {
	accepted, err := s.inner.Submit(ctx, sub)
	if err != nil {
		return false, err
	}
	if err := s.persist(); err != nil {
		return false, err
	}
	return accepted, nil
}

// TopN returns the n best entries for a day and language.
func (s *BoardStore) TopN(ctx context.Context, dateKey string, language wordly.Language, n int) ([]wordly.ScoreView, error) {
	return s.inner.TopN(ctx, dateKey, language, n)
}

// History returns the per-day records of one player.
func (s *BoardStore) History(ctx context.Context, player string, language wordly.Language) ([]wordly.HistoryRecord, error) {
	return s.inner.History(ctx, player, language)
}

// PlayerNames enumerates every stored display name for a language.
func (s *BoardStore) PlayerNames(ctx context.Context, language wordly.Language) ([]string, error) {
	return s.inner.PlayerNames(ctx, language)
}

// Ping verifies the store directory is writable.
func (s *BoardStore) Ping(context.Context) error {
	info, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		return fmt.Errorf("file: store dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("file: %s is not a directory", filepath.Dir(s.path))
	}
	return nil
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
)

// Store owns the ledger snapshot. It is the only component that mutates
// records in place; everything else reads the snapshot or goes through the
// mutators below. Single-caller model, so there is no locking.
type Store struct {
	path string
	snap *domain.Snapshot
	log  zerolog.Logger
}

// Open loads the snapshot at path, migrating older versions in place. A
// missing file yields an empty current-version snapshot; the file is first
// written on the next Save.
func Open(path string, log zerolog.Logger) (*Store, error) {
	s := &Store{path: path, log: log}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.snap = domain.NewSnapshot()
		log.Info().Str("path", path).Msg("no snapshot found, starting empty")
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	snap := &domain.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	loadedVersion := snap.Version
	if err := domain.Migrate(snap); err != nil {
		return nil, err
	}
	s.snap = snap
	log.Info().
		Int("version", loadedVersion).
		Int("loans", len(snap.Loans)).
		Int("deposits", len(snap.Deposits)).
		Msg("snapshot loaded")
	return s, nil
}

// Snapshot exposes the ledger for reading. Callers must not mutate it.
func (s *Store) Snapshot() *domain.Snapshot {
	return s.snap
}

// NextID hands out the next entity id. Ids are global, so payment ids
// double as insertion order.
func (s *Store) NextID() int64 {
	id := s.snap.NextID
	s.snap.NextID++
	return id
}

// Save writes the full snapshot atomically: temp file in the same
// directory, fsync-free rename over the target. On error the in-memory
// state is untouched; the caller decides whether to retry.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	s.log.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("snapshot saved")
	return nil
}

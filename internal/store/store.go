// Package store persists hand records to the filesystem. The live hand is
// a single atomically-replaced snapshot file; completed hands are archived
// one file each under hands/. The engine never calls the store directly: a
// session host pushes snapshots into the Autosaver, which flushes on a
// clock.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/quietfold/railbird/internal/fileutil"
	"github.com/quietfold/railbird/internal/record"
)

const (
	currentFile = "current.json"
	archiveDir  = "hands"
)

// Store reads and writes hand records under a base directory.
type Store struct {
	dir    string
	logger *log.Logger
}

// New creates the base and archive directories if needed.
func New(dir string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, archiveDir), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir, logger: logger.WithPrefix("store")}, nil
}

// Dir returns the store's base directory.
func (s *Store) Dir() string {
	return s.dir
}

// SaveCurrent atomically replaces the live-hand snapshot.
func (s *Store) SaveCurrent(rec record.HandRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := fileutil.WriteAtomic(filepath.Join(s.dir, currentFile), data, 0o644); err != nil {
		return fmt.Errorf("write current hand: %w", err)
	}
	return nil
}

// LoadCurrent returns the live-hand snapshot, or nil when none has been
// saved yet.
func (s *Store) LoadCurrent() (*record.HandRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, currentFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read current hand: %w", err)
	}
	var rec record.HandRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode current hand: %w", err)
	}
	return &rec, nil
}

// Archive writes a completed hand to its own file under hands/ and returns
// the record id. Filenames sort chronologically.
func (s *Store) Archive(rec record.HandRecord, now time.Time) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.SavedAt = now

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	name := fmt.Sprintf("%s-%s.json", now.UTC().Format("20060102T150405"), rec.ID)
	if err := fileutil.WriteAtomic(filepath.Join(s.dir, archiveDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("archive hand: %w", err)
	}
	s.logger.Debug("archived hand", "id", rec.ID, "file", name)
	return rec.ID, nil
}

// ListArchived loads every archived hand, oldest first. Files that fail to
// decode are skipped with a warning rather than failing the whole listing.
func (s *Store) ListArchived() ([]record.HandRecord, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, archiveDir))
	if err != nil {
		return nil, fmt.Errorf("read archive dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []record.HandRecord
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.dir, archiveDir, name))
		if err != nil {
			s.logger.Warn("skipping unreadable archive file", "file", name, "error", err)
			continue
		}
		var rec record.HandRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			s.logger.Warn("skipping corrupt archive file", "file", name, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

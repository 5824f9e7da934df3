// Package progress persists the enrichment resume point. A single JSON file
// is overwritten after every processed row and is the sole source of truth
// for where the next run starts.
package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Checkpoint records the last fully processed catalog index together with
// the request-budget usage for the calendar day it was written on. Carrying
// the date lets a same-day restart resume the provider quota instead of
// assuming a fresh 1000.
type Checkpoint struct {
	LastIndex    int    `json:"last_index"`
	QuotaDate    string `json:"quota_date"`
	RequestsUsed int    `json:"requests_used"`
}

// UsedOn returns how much of the daily budget the checkpoint says is already
// spent on the given day. A checkpoint from an earlier day spends nothing.
func (cp Checkpoint) UsedOn(day string) int {
	if cp.QuotaDate == day {
		return cp.RequestsUsed
	}
	return 0
}

// Today formats the current local date the way checkpoints store it.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// Store reads and writes the checkpoint file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the checkpoint. A missing file means "start at index 0" and is
// reported through the boolean, not an error.
func (s *Store) Load() (Checkpoint, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Checkpoint{}, false, nil
	}
	if err != nil {
		return Checkpoint{}, false, fmt.Errorf("read checkpoint: %w", err)
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, false, fmt.Errorf("decode checkpoint %s: %w", s.path, err)
	}
	return cp, true, nil
}

// Save overwrites the checkpoint atomically: an interrupted write leaves the
// previous checkpoint intact.
func (s *Store) Save(cp Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".progress-*")
	if err != nil {
		return fmt.Errorf("create checkpoint temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close checkpoint temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace checkpoint: %w", err)
	}
	return nil
}

// Package ambiguity collects rows whose match was uncertain, for human
// review. Entries accumulate in memory and are flushed to a JSON file once
// at the end of a run; forward progress is guaranteed by the checkpoint, not
// by this log.
package ambiguity

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entry is one uncertain match: the catalog title, the service's suggestion,
// and how close they are.
type Entry struct {
	CSVTitle  string  `json:"CSV Title"`
	Suggested string  `json:"Suggested Match"`
	Year      string  `json:"Year"`
	Score     float64 `json:"Score"`
}

// Log is an append-only in-memory collection of entries.
type Log struct {
	entries []Entry
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Append(e Entry) {
	l.entries = append(l.entries, e)
}

func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns the collected entries in append order.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Flush writes the collected entries to path as indented JSON. An empty log
// writes nothing and leaves any existing file alone.
func (l *Log) Flush(path string) error {
	if len(l.entries) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(l.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("encode ambiguity log: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write ambiguity log: %w", err)
	}
	return nil
}

package models

import (
	"fmt"
	"time"
)

// Movie is one catalog row. Title and Year are parsed out of the raw
// "Title (YYYY)" form at load time; Director, Plot and BoxOffice stay nil
// until the enrichment pass resolves the movie against the lookup service.
type Movie struct {
	ID       int64
	RawTitle string
	Title    string
	Year     string // "" when the raw title carries no trailing (YYYY)
	Genres   []string

	Director  *string
	Plot      *string
	BoxOffice *string

	// Derived during the transform phase.
	ReleaseYear int // 0 when unknown
	Decade      string
}

// Resolved reports whether the enrichment fields have been filled.
func (m *Movie) Resolved() bool {
	return m.Director != nil
}

func (m *Movie) String() string {
	return fmt.Sprintf("movie %d %q", m.ID, m.RawTitle)
}

// Rating is one row of the ratings dataset.
type Rating struct {
	UserID    int64
	MovieID   int64
	Score     float64
	Timestamp int64 // Unix epoch seconds, as given in the source file
}

// RatedAt converts the raw epoch timestamp to UTC time.
func (r Rating) RatedAt() time.Time {
	return time.Unix(r.Timestamp, 0).UTC()
}

// Package catalog reads the source movie and rating datasets into memory.
// Both files are consumed once, in full, at startup; all later phases work
// on the in-memory rows.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"movieetl/internal/models"
)

// LoadMovies reads a movies CSV (movieId,title,genres) and returns one Movie
// per row with the title year already parsed out.
func LoadMovies(path string) ([]*models.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open movies file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // header
		return nil, fmt.Errorf("read movies header: %w", err)
	}

	var movies []*models.Movie
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read movies row: %w", err)
		}
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("movie id %q: %w", record[0], err)
		}
		title, year := ParseTitleYear(record[1])
		movies = append(movies, &models.Movie{
			ID:       id,
			RawTitle: record[1],
			Title:    title,
			Year:     year,
			Genres:   SplitGenres(record[2]),
		})
	}
	return movies, nil
}

// LoadRatings reads a ratings CSV (userId,movieId,rating,timestamp).
func LoadRatings(path string) ([]models.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratings file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // header
		return nil, fmt.Errorf("read ratings header: %w", err)
	}

	var ratings []models.Rating
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ratings row: %w", err)
		}
		userID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("user id %q: %w", record[0], err)
		}
		movieID, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("movie id %q: %w", record[1], err)
		}
		score, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("rating %q: %w", record[2], err)
		}
		ts, err := strconv.ParseInt(record[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("timestamp %q: %w", record[3], err)
		}
		ratings = append(ratings, models.Rating{
			UserID:    userID,
			MovieID:   movieID,
			Score:     score,
			Timestamp: ts,
		})
	}
	return ratings, nil
}

// ParseTitleYear splits 'Movie (1995)' into title and year. The year is the
// four characters before a trailing ')'; anything that is not four digits
// there leaves the raw title untouched and the year empty.
func ParseTitleYear(raw string) (title, year string) {
	raw = strings.TrimSpace(raw)
	open := strings.LastIndex(raw, "(")
	if open == -1 || !strings.HasSuffix(raw, ")") || len(raw) < 6 {
		return raw, ""
	}
	candidate := raw[len(raw)-5 : len(raw)-1]
	for _, c := range candidate {
		if c < '0' || c > '9' {
			return raw, ""
		}
	}
	return strings.TrimSpace(raw[:open]), candidate
}

// SplitGenres explodes the pipe-delimited genre list into trimmed names.
func SplitGenres(genres string) []string {
	if strings.TrimSpace(genres) == "" {
		return nil
	}
	parts := strings.Split(genres, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

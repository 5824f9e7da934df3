// Package transform derives the load-ready shape of the catalog: release
// year and decade per movie, exploded movie-genre pairs, and the distinct
// users and genres the relational schema needs.
package transform

import (
	"context"
	"fmt"
	"strconv"

	"movieetl/internal/enrich"
	"movieetl/internal/models"
)

// MovieGenre is one exploded movie-to-genre association.
type MovieGenre struct {
	MovieID int64
	Genre   string
}

// DeriveReleaseYear fills Movie.ReleaseYear from the parsed title year.
func DeriveReleaseYear(_ context.Context, m *models.Movie) error {
	if m.Year == "" {
		return nil
	}
	year, err := strconv.Atoi(m.Year)
	if err != nil {
		return fmt.Errorf("movie %d: year %q: %w", m.ID, m.Year, err)
	}
	m.ReleaseYear = year
	return nil
}

// DeriveDecade fills Movie.Decade ("1990s") from ReleaseYear. It runs in a
// later stage than DeriveReleaseYear, which it depends on.
func DeriveDecade(_ context.Context, m *models.Movie) error {
	if m.ReleaseYear == 0 {
		return nil
	}
	m.Decade = fmt.Sprintf("%ds", m.ReleaseYear/10*10)
	return nil
}

// Movies runs the per-movie derivations over the whole catalog.
func Movies(ctx context.Context, movies []*models.Movie) {
	pipeline := enrich.NewPipeline(
		enrich.NewStage(DeriveReleaseYear),
		enrich.NewStage(DeriveDecade),
	)
	pipeline.Run(ctx, movies)
}

// ExplodeGenres turns each movie's pipe-delimited genre list into one row
// per movie-genre pair, in catalog order.
func ExplodeGenres(movies []*models.Movie) []MovieGenre {
	var pairs []MovieGenre
	for _, m := range movies {
		for _, g := range m.Genres {
			pairs = append(pairs, MovieGenre{MovieID: m.ID, Genre: g})
		}
	}
	return pairs
}

// DistinctUsers returns the unique rating user ids in first-seen order.
func DistinctUsers(ratings []models.Rating) []int64 {
	seen := make(map[int64]struct{})
	var users []int64
	for _, r := range ratings {
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		users = append(users, r.UserID)
	}
	return users
}

// DistinctGenres returns the unique genre names in first-seen order.
func DistinctGenres(pairs []MovieGenre) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, p := range pairs {
		if _, ok := seen[p.Genre]; ok {
			continue
		}
		seen[p.Genre] = struct{}{}
		genres = append(genres, p.Genre)
	}
	return genres
}

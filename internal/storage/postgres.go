// Package storage loads the enriched catalog and the ratings dataset into
// Postgres. Every insert is keyed by its natural identifier with ON CONFLICT
// DO NOTHING, so re-running after an interrupted pass never duplicates rows.
package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"movieetl/internal/models"
	"movieetl/internal/transform"
)

// Postgres is the relational sink for the load phase.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect creates a pgx pool and verifies the connection.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Printf("Connected to Postgres at %s", config.ConnConfig.Host)
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

// Load writes users, genres, movies, movie-genre pairs and ratings in a
// single transaction.
func (p *Postgres) Load(
	ctx context.Context,
	movies []*models.Movie,
	pairs []transform.MovieGenre,
	ratings []models.Rating,
	users []int64,
	genres []string,
) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin load transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}

	for _, uid := range users {
		batch.Queue(
			`INSERT INTO user_t (user_id, username) VALUES ($1, $2)
			 ON CONFLICT (user_id) DO NOTHING`,
			uid, fmt.Sprintf("User_%d", uid),
		)
	}
	for _, g := range genres {
		batch.Queue(
			`INSERT INTO genre (genre_name) VALUES ($1)
			 ON CONFLICT (genre_name) DO NOTHING`,
			g,
		)
	}
	for _, m := range movies {
		batch.Queue(
			`INSERT INTO movie (movie_id, title, release_year, director, plot, box_office, decade)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (movie_id) DO NOTHING`,
			m.ID, m.RawTitle, nullIfZero(m.ReleaseYear),
			m.Director, m.Plot, m.BoxOffice, nullIfEmpty(m.Decade),
		)
	}
	for _, pair := range pairs {
		batch.Queue(
			`INSERT INTO movie_genre (movie_id, genre_id)
			 VALUES ($1, (SELECT genre_id FROM genre WHERE genre_name = $2))
			 ON CONFLICT (movie_id, genre_id) DO NOTHING`,
			pair.MovieID, pair.Genre,
		)
	}
	for _, r := range ratings {
		batch.Queue(
			`INSERT INTO rating (user_id, movie_id, rating, rating_ts)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT DO NOTHING`,
			r.UserID, r.MovieID, r.Score, r.RatedAt(),
		)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("load batch statement %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close load batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit load transaction: %w", err)
	}
	log.Printf("Loaded %d users, %d genres, %d movies, %d movie-genre pairs, %d ratings",
		len(users), len(genres), len(movies), len(pairs), len(ratings))
	return nil
}

func nullIfZero(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

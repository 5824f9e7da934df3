package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"movieetl/internal/ambiguity"
	"movieetl/internal/budget"
	"movieetl/internal/catalog"
	"movieetl/internal/env"
	"movieetl/internal/lookup"
	"movieetl/internal/match"
	"movieetl/internal/models"
	"movieetl/internal/progress"
	"movieetl/internal/runner"
	"movieetl/internal/storage"
	"movieetl/internal/transform"
	"movieetl/pkg/graceful"
	"movieetl/pkg/omdb"
)

func main() {
	env.Load()

	apiKey := env.MustGet("OMDB_API_KEY")
	pgUser := env.MustGet("PGUSER")
	pgPass := env.MustGet("PGPASSWORD")
	pgDatabase := env.MustGet("PGDATABASE")
	pgHost := env.Get("PGHOST", "localhost")
	pgPort := env.Get("PGPORT", "5432")

	moviesPath := env.Get("MOVIES_FILE", "movies.csv")
	ratingsPath := env.Get("RATINGS_FILE", "ratings.csv")
	progressPath := env.Get("PROGRESS_FILE", "progress.json")
	ambiguityPath := env.Get("AMBIGUITY_FILE", "fuzzy_matches.json")
	cachePath := env.Get("OMDB_CACHE_FILE", "omdb_cache.sqlite")

	databaseURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		pgUser, url.QueryEscape(pgPass), pgHost, pgPort, pgDatabase)

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	log.Println("=== EXTRACT PHASE ===")

	movies, err := catalog.LoadMovies(moviesPath)
	if err != nil {
		log.Fatalf("Failed to load movie catalog: %v", err)
	}
	ratings, err := catalog.LoadRatings(ratingsPath)
	if err != nil {
		log.Fatalf("Failed to load ratings: %v", err)
	}
	log.Printf("Loaded %d movies and %d ratings", len(movies), len(ratings))

	checkpoints := progress.NewStore(progressPath)
	cp, resumed, err := checkpoints.Load()
	if err != nil {
		log.Fatalf("Failed to read checkpoint: %v", err)
	}
	startIndex := 0
	if resumed {
		startIndex = cp.LastIndex + 1
	}

	today := progress.Today()
	b := budget.New(budget.DailyCeiling, cp.UsedOn(today))
	if b.Exhausted() {
		log.Printf("Daily request quota already spent today (%d calls); no live lookups will be made.", b.Used())
	}

	cache, err := lookup.OpenCache(cachePath)
	if err != nil {
		log.Fatalf("Failed to open response cache: %v", err)
	}
	defer cache.Close()

	api, err := omdb.NewClient(apiKey)
	if err != nil {
		log.Fatalf("Failed to create OMDb client: %v", err)
	}

	ambiguities := ambiguity.NewLog()
	r := runner.New(match.NewCascade(lookup.NewClient(api, cache, b)), b, checkpoints, ambiguities)

	log.Printf("Resuming from movie index %d", startIndex)
	sum, runErr := r.Run(ctx, movies, startIndex)

	if err := ambiguities.Flush(ambiguityPath); err != nil {
		log.Printf("Failed to write ambiguity log: %v", err)
	} else if ambiguities.Len() > 0 {
		log.Printf("Saved match suggestions for review to %s (%d entries)", ambiguityPath, ambiguities.Len())
	}

	log.Printf("Run summary: %d processed, %d resolved, %d logged for review, %d live calls used",
		sum.Processed, sum.Resolved, sum.Logged, b.Used())

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			log.Println("Run interrupted; progress is checkpointed, re-run to resume.")
			return
		}
		var terr *omdb.TransportError
		if errors.As(runErr, &terr) {
			log.Fatalf("Lookup service failure stopped the run: %v. Investigate before re-running.", runErr)
		}
		log.Fatalf("Enrichment run failed: %v", runErr)
	}
	if sum.BudgetExhausted {
		log.Printf("DAILY LIMIT REACHED (%d requests). Come back tomorrow.", budget.DailyCeiling)
	}

	load(ctx, databaseURL, movies, ratings)
}

// load runs the transform and load phases after a completed or
// budget-exhausted enrichment pass.
func load(ctx context.Context, databaseURL string, movies []*models.Movie, ratings []models.Rating) {
	log.Println("=== TRANSFORM PHASE ===")
	transform.Movies(ctx, movies)
	pairs := transform.ExplodeGenres(movies)
	users := transform.DistinctUsers(ratings)
	genres := transform.DistinctGenres(pairs)

	log.Println("=== LOAD PHASE ===")
	db, err := storage.Connect(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer db.Close()

	if err := db.Load(ctx, movies, pairs, ratings, users, genres); err != nil {
		log.Fatalf("Failed to load into Postgres: %v", err)
	}

	log.Println("ETL complete. Loaded today's batch into PostgreSQL; re-run tomorrow to continue enrichment.")
}

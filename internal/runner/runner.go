// Package runner drives the enrichment loop: one row at a time from the
// resume point, cascade verdicts applied to the in-memory catalog, and the
// checkpoint persisted after every row.
package runner

import (
	"context"
	"fmt"
	"log"

	"movieetl/internal/ambiguity"
	"movieetl/internal/budget"
	"movieetl/internal/match"
	"movieetl/internal/models"
	"movieetl/internal/progress"
)

// Matcher is the cascade entry point the runner calls per row.
type Matcher interface {
	Match(ctx context.Context, title, year string) (match.Outcome, error)
}

// Summary reports what one run accomplished and why it stopped. A transport
// failure is returned separately as an error so the operator can tell it
// apart from the expected "resume tomorrow" budget stop.
type Summary struct {
	Processed       int
	Resolved        int
	Logged          int
	BudgetExhausted bool
}

// Runner owns the catalog rows for the duration of a run. The cascade only
// returns outcomes; the runner is the single writer of enrichment fields,
// the ambiguity log and the checkpoint.
type Runner struct {
	cascade     Matcher
	budget      *budget.Budget
	checkpoints *progress.Store
	ambiguities *ambiguity.Log
}

func New(cascade Matcher, b *budget.Budget, checkpoints *progress.Store, ambiguities *ambiguity.Log) *Runner {
	return &Runner{
		cascade:     cascade,
		budget:      b,
		checkpoints: checkpoints,
		ambiguities: ambiguities,
	}
}

// Run processes rows from startIndex. It stops at a row boundary when the
// budget is exhausted or the context is canceled, and mid-row on a transport
// failure; in the transport case the failing row is not checkpointed, so the
// next run retries it.
func (r *Runner) Run(ctx context.Context, movies []*models.Movie, startIndex int) (Summary, error) {
	var sum Summary

	for index := startIndex; index < len(movies); index++ {
		if r.budget.Exhausted() {
			sum.BudgetExhausted = true
			break
		}
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}

		m := movies[index]
		outcome, err := r.cascade.Match(ctx, m.Title, m.Year)
		if err != nil {
			return sum, fmt.Errorf("row %d (%s): %w", index, m.RawTitle, err)
		}
		r.apply(m, outcome, &sum)
		sum.Processed++

		err = r.checkpoints.Save(progress.Checkpoint{
			LastIndex:    index,
			QuotaDate:    progress.Today(),
			RequestsUsed: r.budget.Used(),
		})
		if err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// apply mutates the row per the outcome. Enrichment fields are write-once:
// a field already filled in an earlier run is left alone.
func (r *Runner) apply(m *models.Movie, outcome match.Outcome, sum *Summary) {
	switch outcome.Kind {
	case match.Resolved:
		if m.Director == nil {
			m.Director = &outcome.Director
		}
		if m.Plot == nil {
			m.Plot = &outcome.Plot
		}
		if m.BoxOffice == nil {
			m.BoxOffice = &outcome.BoxOffice
		}
		sum.Resolved++
		log.Printf("Resolved: %s (%s)", m.Title, m.Year)
	case match.MismatchLogged:
		r.ambiguities.Append(ambiguity.Entry{
			CSVTitle:  outcome.CSVTitle,
			Suggested: outcome.Suggested,
			Year:      outcome.Year,
			Score:     outcome.Score,
		})
		sum.Logged++
		log.Printf("Title mismatch logged: CSV %q, API %q", outcome.CSVTitle, outcome.Suggested)
	case match.FuzzyLogged:
		r.ambiguities.Append(ambiguity.Entry{
			CSVTitle:  outcome.CSVTitle,
			Suggested: outcome.Suggested,
			Year:      outcome.Year,
			Score:     outcome.Score,
		})
		sum.Logged++
		log.Printf("Fuzzy match: %q -> %q (score=%.2f)", outcome.CSVTitle, outcome.Suggested, outcome.Score)
	case match.Unresolved:
		log.Printf("No match: %s", m.Title)
	}
}

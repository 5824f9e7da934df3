// Package match decides, per catalog row, which lookup shapes to try and how
// to classify the answer. The cascade goes exact → title-only → fuzzy and
// stops at the first trustworthy result, spending at most three live calls
// per row.
package match

import (
	"context"
	"errors"
	"strings"

	"movieetl/internal/lookup"
)

// Lookup is the slice of the caching lookup client the cascade uses.
type Lookup interface {
	Exact(ctx context.Context, title, year string) (lookup.Result, bool, error)
	TitleOnly(ctx context.Context, title string) (lookup.Result, bool, error)
	Search(ctx context.Context, title string) ([]lookup.Candidate, bool, error)
}

// Cascade runs the tiered matching strategy against a lookup client.
type Cascade struct {
	client Lookup
}

func NewCascade(client Lookup) *Cascade {
	return &Cascade{client: client}
}

// Match classifies one row. A tier denied by the budget is treated like a
// miss and the next tier still runs, since it may be answered from cache for
// free. Transport failures abort the row immediately and surface to the
// caller unclassified.
func (c *Cascade) Match(ctx context.Context, title, year string) (Outcome, error) {
	res, _, err := c.client.Exact(ctx, title, year)
	if err != nil && !errors.Is(err, lookup.ErrBudgetExhausted) {
		return Outcome{}, err
	}
	if err == nil && res.Found {
		return resolved(res), nil
	}

	res, _, err = c.client.TitleOnly(ctx, title)
	if err != nil && !errors.Is(err, lookup.ErrBudgetExhausted) {
		return Outcome{}, err
	}
	if err == nil && res.Found {
		if Normalize(res.Title) == Normalize(title) {
			return resolved(res), nil
		}
		return Outcome{
			Kind:      MismatchLogged,
			CSVTitle:  title,
			Suggested: res.Title,
			Year:      res.Year,
			Score:     Similarity(strings.ToLower(title), strings.ToLower(res.Title)),
		}, nil
	}

	candidates, _, err := c.client.Search(ctx, title)
	if err != nil {
		if errors.Is(err, lookup.ErrBudgetExhausted) {
			return Outcome{Kind: Unresolved, CSVTitle: title}, nil
		}
		return Outcome{}, err
	}
	if len(candidates) == 0 {
		return Outcome{Kind: Unresolved, CSVTitle: title}, nil
	}

	// First candidate wins ties, keeping the selection stable.
	best := candidates[0]
	bestScore := Similarity(title, best.Title)
	for _, cand := range candidates[1:] {
		if score := Similarity(title, cand.Title); score > bestScore {
			best, bestScore = cand, score
		}
	}
	return Outcome{
		Kind:      FuzzyLogged,
		CSVTitle:  title,
		Suggested: best.Title,
		Year:      best.Year,
		Score:     bestScore,
	}, nil
}

func resolved(res lookup.Result) Outcome {
	return Outcome{
		Kind:      Resolved,
		Director:  res.Director,
		Plot:      res.Plot,
		BoxOffice: res.BoxOffice,
	}
}

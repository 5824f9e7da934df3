// Package lookup puts a durable response cache and a request-budget gate in
// front of the OMDb client. Every call reports whether it was served from
// cache: cached answers are free and remain available after the budget runs
// out, while a cache miss must pass the gate before any network request.
package lookup

import (
	"context"
	"errors"
	"log"
	"net/url"

	"movieetl/pkg/omdb"
)

// ErrBudgetExhausted is returned when a lookup would need a live call but the
// daily request budget has run out. It is a normal stop condition, not a
// failure.
var ErrBudgetExhausted = errors.New("lookup: request budget exhausted")

// Gate decides whether one live call may proceed. Implemented by
// budget.Budget.
type Gate interface {
	TryConsume() bool
}

// Result is a single-title lookup outcome.
type Result struct {
	Found     bool
	Title     string
	Year      string
	Director  string
	Plot      string
	BoxOffice string
}

// Candidate is one fuzzy-search suggestion.
type Candidate struct {
	Title string
	Year  string
}

// Client wraps the OMDb API with caching and budget accounting.
type Client struct {
	api   *omdb.Client
	cache *Cache
	gate  Gate
}

// NewClient builds a caching lookup client. cache may be nil, in which case
// every call is live.
func NewClient(api *omdb.Client, cache *Cache, gate Gate) *Client {
	return &Client{api: api, cache: cache, gate: gate}
}

// Exact looks up a title with a year filter (no filter when year is empty).
// The boolean reports a cache hit.
func (c *Client) Exact(ctx context.Context, title, year string) (Result, bool, error) {
	p, cached, err := c.query(ctx, omdb.ExactParams(title, year))
	if err != nil {
		return Result{}, false, err
	}
	return toResult(p), cached, nil
}

// TitleOnly looks up a title without a year filter.
func (c *Client) TitleOnly(ctx context.Context, title string) (Result, bool, error) {
	p, cached, err := c.query(ctx, omdb.TitleParams(title))
	if err != nil {
		return Result{}, false, err
	}
	return toResult(p), cached, nil
}

// Search runs a fuzzy free-text search and returns the candidate list, which
// is empty on a miss.
func (c *Client) Search(ctx context.Context, title string) ([]Candidate, bool, error) {
	p, cached, err := c.query(ctx, omdb.SearchParams(title))
	if err != nil {
		return nil, false, err
	}
	if !p.Found() {
		return nil, cached, nil
	}
	candidates := make([]Candidate, 0, len(p.Search))
	for _, item := range p.Search {
		candidates = append(candidates, Candidate{Title: item.Title, Year: item.Year})
	}
	return candidates, cached, nil
}

// query serves from cache when possible, otherwise consumes budget and goes
// to the network. Cache I/O trouble is logged and degrades to a live call
// rather than failing the lookup.
func (c *Client) query(ctx context.Context, params url.Values) (*omdb.Payload, bool, error) {
	key := params.Encode()

	if c.cache != nil {
		body, ok, err := c.cache.Get(key)
		if err != nil {
			log.Printf("Response cache read failed for %q: %v", key, err)
		} else if ok {
			p, err := omdb.Decode(body)
			if err == nil {
				return p, true, nil
			}
			log.Printf("Discarding corrupt cache entry for %q: %v", key, err)
		}
	}

	if !c.gate.TryConsume() {
		return nil, false, ErrBudgetExhausted
	}

	body, err := c.api.Query(ctx, params)
	if err != nil {
		return nil, false, err
	}
	p, err := omdb.Decode(body)
	if err != nil {
		// An undecodable body is a service failure, not a miss.
		return nil, false, &omdb.TransportError{Err: err}
	}
	if c.cache != nil {
		if err := c.cache.Put(key, body); err != nil {
			log.Printf("Response cache write failed for %q: %v", key, err)
		}
	}
	return p, false, nil
}

func toResult(p *omdb.Payload) Result {
	if !p.Found() {
		return Result{}
	}
	return Result{
		Found:     true,
		Title:     p.Title,
		Year:      p.Year,
		Director:  p.Director,
		Plot:      p.Plot,
		BoxOffice: p.BoxOffice,
	}
}

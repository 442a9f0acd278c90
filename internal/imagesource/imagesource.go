package imagesource

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// DefaultCount is the number of candidates requested when the caller passes none.
const DefaultCount = 5

// ErrNoAccessKey is returned by searchers that need a key they were not given.
var ErrNoAccessKey = errors.New("image search access key not configured")

var fallbackURLs = []string{
	"https://images.unsplash.com/photo-1611162616305-c69b3fa7fbe0?w=800&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1598550476439-6847785fcea6?w=800&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1626379953822-baec19c3accd?w=800&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1611162616475-46b635cb6868?w=800&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1460661419201-fd4cecdf8a8b?w=800&auto=format&fit=crop",
}

// FallbackURLs returns a copy of the fixed sample backgrounds used when search fails.
func FallbackURLs() []string {
	out := make([]string, len(fallbackURLs))
	copy(out, fallbackURLs)
	return out
}

// Searcher finds image URLs for a query.
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]string, error)
}

// Result is the outcome of a background search. When Fallback is set, URLs are the
// fixed sample list and Cause records why the searcher could not be used.
type Result struct {
	URLs     []string `json:"urls"`
	Fallback bool     `json:"fallback"`
	Cause    error    `json:"-"`
}

// Resolver wraps a Searcher so that search never fails.
type Resolver struct {
	searcher Searcher
}

func NewResolver(s Searcher) *Resolver {
	return &Resolver{searcher: s}
}

// Search returns the searcher's URLs in order, or the fallback list on any error.
func (r *Resolver) Search(ctx context.Context, query string, count int) Result {
	if count <= 0 {
		count = DefaultCount
	}
	if r == nil || r.searcher == nil {
		return fallback(ErrNoAccessKey)
	}

	urls, err := r.searcher.Search(ctx, query, count)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("Image search failed, using sample backgrounds")
		return fallback(err)
	}
	log.Debug().Str("query", query).Int("results", len(urls)).Msg("Image search completed")
	return Result{URLs: urls}
}

func fallback(cause error) Result {
	return Result{URLs: FallbackURLs(), Fallback: true, Cause: cause}
}

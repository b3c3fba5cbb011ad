package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/ramonehamilton/mtg-cardfilter/internal/api/response"
	"github.com/ramonehamilton/mtg-cardfilter/internal/metrics"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/filter"
)

// maxBodyBytes caps request bodies carrying filter trees.
const maxBodyBytes = 1 << 20

var errRateLimited = errors.New("search rate limit exceeded, retry later")

// CardSearcher evaluates filters over a card pool.
type CardSearcher interface {
	Search(ctx context.Context, f filter.Filter, limit int) ([]*cards.Card, error)
	FindByName(name string, maxResults int) []*cards.Card
	Count() int
	Metrics() *metrics.SearchMetrics
}

// Searcher runs rate-limited searches for the card and saved filter handlers.
type Searcher struct {
	catalog    CardSearcher
	limiter    *rate.Limiter
	maxResults int
}

// NewSearcher creates a Searcher. A nil limiter disables throttling and a
// non-positive maxResults leaves responses uncapped.
func NewSearcher(catalog CardSearcher, limiter *rate.Limiter, maxResults int) *Searcher {
	return &Searcher{catalog: catalog, limiter: limiter, maxResults: maxResults}
}

// run searches for f and writes the response. limit is clamped to the
// configured maximum.
func (s *Searcher) run(w http.ResponseWriter, r *http.Request, f filter.Filter, limit int) {
	if s.limiter != nil && !s.limiter.Allow() {
		response.TooManyRequests(w, errRateLimited)
		return
	}

	if limit <= 0 || (s.maxResults > 0 && limit > s.maxResults) {
		limit = s.maxResults
	}
	probe := limit
	if probe > 0 {
		probe++ // one extra to detect truncation
	}

	found, err := s.catalog.Search(r.Context(), f, probe)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			response.ServiceUnavailable(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	truncated := limit > 0 && len(found) > limit
	if truncated {
		found = found[:limit]
	}
	if found == nil {
		found = []*cards.Card{}
	}
	response.JSON(w, http.StatusOK, response.SearchResponse{
		Data:      found,
		Filter:    f.String(),
		Returned:  len(found),
		Truncated: truncated,
	})
}

// decodeFilter decodes a serialized filter, writing a 400 response and
// returning nil when it is invalid.
func decodeFilter(w http.ResponseWriter, opts filter.DecodeOptions, raw json.RawMessage) filter.Filter {
	if len(raw) == 0 || string(raw) == "null" {
		response.BadRequest(w, errors.New("filter is required"))
		return nil
	}
	f, err := opts.Unmarshal(raw)
	if err != nil {
		writeFilterError(w, err)
		return nil
	}
	return f
}

func writeFilterError(w http.ResponseWriter, err error) {
	var de *filter.DecodeError
	if errors.As(err, &de) {
		response.DecodeError(w, de.Path, de.Err)
		return
	}
	response.BadRequest(w, err)
}

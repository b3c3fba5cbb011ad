// Package catalog holds an in-memory card pool and evaluates filters over it.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ramonehamilton/mtg-cardfilter/internal/metrics"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/cards/fuzzy"
	"github.com/ramonehamilton/mtg-cardfilter/internal/mtga/filter"
)

// cancelCheckInterval is how many cards a worker evaluates between context checks.
const cancelCheckInterval = 256

// Config configures a Catalog.
type Config struct {
	// Workers is the number of goroutines used by Search (0 = GOMAXPROCS)
	Workers int
	// Strict makes Load fail on malformed cards instead of skipping them
	Strict  bool
	Logger  *slog.Logger
	Metrics *metrics.SearchMetrics
}

// Catalog is a read-only card pool. It is safe for concurrent use.
type Catalog struct {
	cards   []*cards.Card
	names   []string
	byName  map[string]*cards.Card
	workers int
	logger  *slog.Logger
	metrics *metrics.SearchMetrics
}

// New creates a catalog over cs. The cards must not be modified afterwards.
func New(cs []*cards.Card, cfg Config) *Catalog {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.NewSearchMetrics()
	}

	c := &Catalog{
		cards:   cs,
		names:   make([]string, len(cs)),
		byName:  make(map[string]*cards.Card, len(cs)),
		workers: workers,
		logger:  logger,
		metrics: m,
	}
	for i, card := range cs {
		c.names[i] = card.Name
		if _, ok := c.byName[card.Name]; !ok {
			c.byName[card.Name] = card
		}
	}
	return c
}

// Load reads a Scryfall bulk file into a new catalog.
func Load(path string, cfg Config) (*Catalog, error) {
	cs, err := cards.LoadFile(path, cards.LoadOptions{Strict: cfg.Strict, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return New(cs, cfg), nil
}

// Count returns the number of cards.
func (c *Catalog) Count() int {
	return len(c.cards)
}

// Cards returns every card in catalog order.
func (c *Catalog) Cards() []*cards.Card {
	return append([]*cards.Card(nil), c.cards...)
}

// Metrics returns the search metrics collector.
func (c *Catalog) Metrics() *metrics.SearchMetrics {
	return c.metrics
}

// Search returns the cards matching f in catalog order, at most limit of
// them when limit is positive. The pool is split across workers; a canceled
// context stops the search and returns the context error.
func (c *Catalog) Search(ctx context.Context, f filter.Filter, limit int) ([]*cards.Card, error) {
	if f == nil {
		return nil, filter.ErrNilFilter
	}
	start := time.Now()

	matched := make([]bool, len(c.cards))
	chunk := (len(c.cards) + c.workers - 1) / c.workers

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(c.cards); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(c.cards))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				matched[i] = f.Test(c.cards[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.metrics.RecordCanceled()
		return nil, err
	}

	var results []*cards.Card
	total := 0
	for i, ok := range matched {
		if !ok {
			continue
		}
		total++
		if limit <= 0 || len(results) < limit {
			results = append(results, c.cards[i])
		}
	}

	elapsed := time.Since(start)
	c.metrics.RecordSearch(elapsed, len(c.cards), total)
	c.logger.Debug("Catalog search", "filter", f.String(), "matches", total, "returned", len(results), "elapsed", elapsed)
	return results, nil
}

// FindByName returns cards whose names resemble name, best match first. An
// exact (case-sensitive) name is always returned alone.
func (c *Catalog) FindByName(name string, maxResults int) []*cards.Card {
	if card, ok := c.byName[name]; ok {
		return []*cards.Card{card}
	}

	opts := fuzzy.DefaultOptions()
	if maxResults > 0 {
		opts.MaxResults = maxResults
	}
	results := fuzzy.Search(name, c.names, opts)
	found := make([]*cards.Card, len(results))
	for i, r := range results {
		found[i] = c.cards[r.Index]
	}
	return found
}

package query

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tessera-app/tessera/core"
	"github.com/tessera-app/tessera/index"
)

// DefaultDebounce is the delay between the last keystroke and the search
// it triggers.
const DefaultDebounce = 200 * time.Millisecond

// Searcher executes a query and returns ranked results.
// *index.Store satisfies this interface.
type Searcher interface {
	Search(query string, viewportCenter *core.Point) []*index.SearchResult
}

// Controller debounces as-you-type canvas search. A new keystroke cancels
// the pending timer and reschedules; an already-started search is not
// cancelled, but its completion is discarded if a newer request has been
// issued since.
type Controller struct {
	mu       sync.Mutex
	searcher Searcher
	logger   *slog.Logger
	delay    time.Duration
	onSelect func(*index.SearchResult)

	timer       *time.Timer
	query       string
	results     []*index.SearchResult
	searching   bool
	hasSearched bool
	viewport    *core.Point
	seq         uint64 // Latest issued request; stale completions are dropped
}

// Option configures a Controller.
type Option func(*Controller) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithDebounce sets the debounce delay.
// Default is DefaultDebounce; values below zero are clamped to zero.
func WithDebounce(delay time.Duration) Option {
	return func(c *Controller) error {
		if delay < 0 {
			delay = 0
		}
		c.delay = delay
		return nil
	}
}

// WithSelectionHandler registers the callback invoked when the host
// forwards a result selection through Select.
func WithSelectionHandler(fn func(*index.SearchResult)) Option {
	return func(c *Controller) error {
		c.onSelect = fn
		return nil
	}
}

// NewController creates a controller around the given searcher.
func NewController(searcher Searcher, opts ...Option) (*Controller, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	c := &Controller{
		searcher: searcher,
		logger:   slog.Default(),
		delay:    DefaultDebounce,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// SetQuery updates the live query string and (re)arms the debounce timer.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = query
	c.searching = true
	c.seq++
	seq := c.seq

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() {
		c.runSearch(seq)
	})
}

// SearchNow bypasses the debounce and runs the search synchronously
// against the current query text. Used for explicit "search now"
// affordances such as the Enter key.
func (c *Controller) SearchNow() []*index.SearchResult {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	c.seq++
	seq := c.seq
	c.searching = true
	c.mu.Unlock()

	return c.search(seq)
}

// Clear resets the query, results, and flags, and invalidates any
// pending or in-flight search.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.seq++
	c.query = ""
	c.results = nil
	c.searching = false
	c.hasSearched = false
}

// UpdateViewportCenter sets the point used for spatial ranking.
func (c *Controller) UpdateViewportCenter(center core.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = &center
}

// Query returns the current query string.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Results returns the results of the most recent completed search.
func (c *Controller) Results() []*index.SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}

// IsSearching reports whether a search is pending or in flight.
func (c *Controller) IsSearching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searching
}

// HasSearched reports whether any search has completed since the last
// Clear.
func (c *Controller) HasSearched() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasSearched
}

// Select forwards a chosen result to the registered selection handler.
// The controller itself does not navigate anywhere.
func (c *Controller) Select(result *index.SearchResult) {
	c.mu.Lock()
	handler := c.onSelect
	c.mu.Unlock()

	if handler != nil {
		handler(result)
	}
}

// Stop cancels any pending search. The controller remains usable; a
// subsequent SetQuery rearms the timer.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.seq++
	c.searching = false
}

// runSearch is the debounce timer callback.
func (c *Controller) runSearch(seq uint64) {
	c.search(seq)
}

// search executes the query captured at call time and publishes the
// results unless a newer request has been issued meanwhile.
func (c *Controller) search(seq uint64) []*index.SearchResult {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		return nil
	}
	query := c.query
	viewport := c.viewport
	c.mu.Unlock()

	// The searcher is not called under the controller lock, so typing
	// stays responsive during a slow search.
	results := c.searcher.Search(query, viewport)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.logger.Debug("discarding stale search results", "query", query, "seq", seq, "latest", c.seq)
		return nil
	}
	c.results = results
	c.searching = false
	c.hasSearched = true
	return results
}

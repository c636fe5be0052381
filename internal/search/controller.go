package search

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/agriscience/journal-api/internal/domain"
)

const DefaultDebounce = 300 * time.Millisecond

// Searcher is what the controller drives; satisfied by *Aggregator.
type Searcher interface {
	Search(ctx context.Context, query string) []domain.SearchResult
}

// Controller bridges a keystroke stream to a Searcher under an
// interactive latency budget. Keystrokes are debounced on the trailing
// edge: only the final text of a burst is queried. Responses carry a
// generation number; a response older than the newest issued query is
// dropped on arrival, so a slow early response can never overwrite a
// newer one. In-flight searches are never cancelled, only ignored.
type Controller struct {
	searcher Searcher
	debounce time.Duration
	sink     func([]domain.SearchResult)

	mu      sync.Mutex
	timer   *time.Timer
	issued  uint64
	results []domain.SearchResult
	showing bool
}

type ControllerOption func(*Controller)

func WithDebounce(d time.Duration) ControllerOption {
	return func(c *Controller) { c.debounce = d }
}

// WithResultSink registers a callback invoked (outside the lock) each
// time a fresh result set becomes visible.
func WithResultSink(sink func([]domain.SearchResult)) ControllerOption {
	return func(c *Controller) { c.sink = sink }
}

func NewController(searcher Searcher, opts ...ControllerOption) *Controller {
	c := &Controller{
		searcher: searcher,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Type records a keystroke. Any pending debounce timer restarts, so a
// burst of keystrokes fired faster than the window triggers at most
// one search, with the last text.
func (c *Controller) Type(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.fire(text)
	})
}

func (c *Controller) fire(text string) {
	c.mu.Lock()
	c.issued++
	gen := c.issued
	c.mu.Unlock()

	results := c.searcher.Search(context.Background(), text)

	c.mu.Lock()
	if gen < c.issued {
		// A newer query was issued while this one was in flight.
		c.mu.Unlock()
		return
	}
	c.results = results
	c.showing = true
	sink := c.sink
	c.mu.Unlock()

	if sink != nil {
		sink(results)
	}
}

// Results returns the currently displayed result set and whether the
// panel is visible.
func (c *Controller) Results() ([]domain.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results, c.showing
}

// Select closes the panel and returns the picked result's navigation
// target.
func (c *Controller) Select(r domain.SearchResult) string {
	c.reset()
	return r.URL
}

// Submit handles pressing enter on the raw query: the panel closes and
// navigation goes to the full search page.
func (c *Controller) Submit(text string) string {
	c.reset()
	return "/search?q=" + url.QueryEscape(text)
}

// Close dismisses the result panel and cancels any pending invocation.
func (c *Controller) Close() {
	c.reset()
}

func (c *Controller) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	// Bump the generation so any in-flight search is discarded.
	c.issued++
	c.results = nil
	c.showing = false
}

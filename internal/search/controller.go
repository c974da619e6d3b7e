// Package search owns the live search session: debounced full searches,
// debounced suggestion lookups, and the loading/succeeded/failed state
// machine around them.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/skoskinen/biblio/internal/catalog"
	"github.com/skoskinen/biblio/internal/debounce"
	"github.com/skoskinen/biblio/internal/suggest"
)

const (
	// SearchQuietPeriod is the debounce window for committed full searches.
	SearchQuietPeriod = 500 * time.Millisecond
	// SuggestQuietPeriod is the debounce window for autocomplete lookups.
	SuggestQuietPeriod = 300 * time.Millisecond

	suggestMaxResults = 5
)

// Status is the lifecycle state of the current search session.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is a snapshot of the controller's state. Results and Suggestions
// are independent: a suggestion lookup never touches Results, and a full
// search always clears Suggestions.
type Session struct {
	Query       string
	Results     []catalog.Book
	Status      Status
	Err         string
	Suggestions []string
}

// Searcher is the catalog surface the controller needs.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) (*catalog.Result, error)
}

// Controller orchestrates debounced catalog calls and keeps the session
// consistent for concurrent readers.
type Controller struct {
	client     Searcher
	maxResults int

	mu        sync.Mutex
	session   Session
	searchSeq uint64
	subs      []func(Session)

	searchDebounce  *debounce.Debouncer[string]
	suggestDebounce *debounce.Debouncer[string]
}

// ControllerOption configures a Controller.
type ControllerOption func(*controllerConfig)

type controllerConfig struct {
	searchQuiet  time.Duration
	suggestQuiet time.Duration
	maxResults   int
}

// WithQuietPeriods overrides the debounce windows (tests use short ones).
func WithQuietPeriods(search, suggestions time.Duration) ControllerOption {
	return func(cfg *controllerConfig) {
		if search > 0 {
			cfg.searchQuiet = search
		}
		if suggestions > 0 {
			cfg.suggestQuiet = suggestions
		}
	}
}

// WithMaxResults sets the result count requested for full searches.
func WithMaxResults(n int) ControllerOption {
	return func(cfg *controllerConfig) {
		if n > 0 {
			cfg.maxResults = n
		}
	}
}

// NewController creates a Controller in the idle state.
func NewController(client Searcher, opts ...ControllerOption) *Controller {
	cfg := controllerConfig{
		searchQuiet:  SearchQuietPeriod,
		suggestQuiet: SuggestQuietPeriod,
		maxResults:   catalog.DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Controller{
		client:     client,
		maxResults: cfg.maxResults,
		session:    Session{Status: StatusIdle},
	}
	c.searchDebounce = debounce.New(cfg.searchQuiet, c.fetchResults)
	c.suggestDebounce = debounce.New(cfg.suggestQuiet, c.fetchSuggestions)
	return c
}

// Commit records query as the active search. The query and the cleared
// suggestion list are visible immediately; the network fetch fires after the
// quiet period. An empty query resets the session to idle without a call.
func (c *Controller) Commit(query string) {
	trimmed := strings.TrimSpace(query)

	if trimmed == "" {
		c.searchDebounce.Cancel()
		c.mu.Lock()
		// Invalidate any fetch still in flight so its response cannot
		// repopulate the cleared session.
		c.searchSeq++
		c.session = Session{Status: StatusIdle}
		snapshot := copySession(c.session)
		subs := c.subs
		c.mu.Unlock()

		for _, fn := range subs {
			fn(snapshot)
		}
		return
	}

	c.mu.Lock()
	c.searchSeq++
	c.session.Query = trimmed
	c.session.Suggestions = nil
	snapshot := copySession(c.session)
	subs := c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	c.searchDebounce.Trigger(trimmed)
}

// Type feeds in-progress input to the suggestion path. It never alters the
// committed query, the results, or the status.
func (c *Controller) Type(text string) {
	c.suggestDebounce.Trigger(strings.TrimSpace(text))
}

// Flush runs any pending debounced work immediately. One-shot callers use
// this to avoid waiting out the quiet period.
func (c *Controller) Flush() {
	c.searchDebounce.Flush()
	c.suggestDebounce.Flush()
}

// Close cancels pending debounced work.
func (c *Controller) Close() {
	c.searchDebounce.Cancel()
	c.suggestDebounce.Cancel()
}

// Snapshot returns a copy of the current session.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copySession(c.session)
}

// Subscribe registers fn to be called with a session snapshot after every
// state change. Callbacks run on the goroutine that made the change.
func (c *Controller) Subscribe(fn func(Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Controller) fetchResults(query string) {
	c.mu.Lock()
	c.searchSeq++
	seq := c.searchSeq
	c.session.Status = StatusLoading
	c.session.Err = ""
	snapshot := copySession(c.session)
	subs := c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}

	result, err := c.client.Search(context.Background(), query, c.maxResults)

	// The sequence check and the session write share one critical section:
	// a commit or clear that lands between them must win.
	c.mu.Lock()
	if seq != c.searchSeq {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.session.Status = StatusFailed
		c.session.Results = nil
		c.session.Err = err.Error()
	} else {
		c.session.Status = StatusSucceeded
		c.session.Results = result.Books
		c.session.Err = ""
	}
	snapshot = copySession(c.session)
	subs = c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func (c *Controller) fetchSuggestions(text string) {
	if text == "" {
		c.replaceSuggestions(nil)
		return
	}

	result, err := c.client.Search(context.Background(), text, suggestMaxResults)
	if err != nil {
		// Suggestion failures are silent: drop the list, keep the session.
		c.replaceSuggestions(nil)
		return
	}

	c.replaceSuggestions(suggest.Derive(result.Books, text))
}

// replaceSuggestions swaps in next only when it differs from the current
// list, so a stale response resolving with identical content is a no-op.
func (c *Controller) replaceSuggestions(next []string) {
	c.mu.Lock()
	if !suggest.Changed(c.session.Suggestions, next) {
		c.mu.Unlock()
		return
	}
	c.session.Suggestions = next
	snapshot := copySession(c.session)
	subs := c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func copySession(s Session) Session {
	out := s
	out.Results = append([]catalog.Book(nil), s.Results...)
	out.Suggestions = append([]string(nil), s.Suggestions...)
	return out
}

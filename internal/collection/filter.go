package collection

import (
	"context"
	"sync"

	"bookmanager/internal/entity"
	"bookmanager/internal/gateway"
)

// State tracks one filter session.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateApplied
	StateFailed
)

// Criteria is one filter submission. Title, Author and Year are resolved by
// the backend search endpoint; blank fields impose no constraint. Rating is
// resolved client-side because the search endpoint does not accept it; 0
// means unset.
type Criteria struct {
	Title  string
	Author string
	Year   string
	Rating int
}

// Engine narrows the session's visible list from filter criteria and can
// always restore the unfiltered baseline. A submission that is overtaken by a
// newer one (or by Reset) has its completion discarded rather than applied.
type Engine struct {
	gw      Gateway
	session *Session

	mu        sync.Mutex
	state     State
	noResults bool
	errMsg    string
	gen       uint64
}

func NewEngine(gw Gateway, session *Session) *Engine {
	return &Engine{gw: gw, session: session}
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// NoResults reports whether the last applied filter produced an empty list.
// For compound filters this reflects the post-filtered count, not the
// server's raw count.
func (e *Engine) NoResults() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.noResults
}

// ErrorMessage returns the human-readable message of the last failed
// submission, "" otherwise.
func (e *Engine) ErrorMessage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMsg
}

// Search runs a server-delegated search over title/author/year and replaces
// the visible list with the result. The rating field of the criteria is
// ignored here.
func (e *Engine) Search(ctx context.Context, c Criteria) error {
	c.Rating = 0
	return e.Apply(ctx, c)
}

// Apply runs the compound filter: the text portion goes to the server search,
// then a non-zero rating is applied as a client-side equality post-filter
// over the response.
func (e *Engine) Apply(ctx context.Context, c Criteria) error {
	gen := e.begin()

	books, err := e.gw.SearchBooks(ctx, e.session.UserID(), gateway.SearchQuery{
		Title:  c.Title,
		Author: c.Author,
		Year:   c.Year,
	})
	if err != nil {
		e.fail(gen)
		return err
	}

	if c.Rating != 0 {
		filtered := books[:0]
		for _, b := range books {
			if b.Rating != nil && *b.Rating == c.Rating {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}

	e.apply(gen, books)
	return nil
}

// FilterByRating narrows the list via the backend's rating list endpoint; no
// client-side step is needed.
func (e *Engine) FilterByRating(ctx context.Context, rating int) error {
	gen := e.begin()

	books, err := e.gw.ListBooksByRating(ctx, e.session.UserID(), rating)
	if err != nil {
		e.fail(gen)
		return err
	}

	e.apply(gen, books)
	return nil
}

// Reset clears the filter state and restores current from the baseline
// snapshot. It never touches the network, and it supersedes any in-flight
// submission.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.state = StateIdle
	e.noResults = false
	e.errMsg = ""
	e.session.resetToBaseline()
}

func (e *Engine) begin() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.state = StateLoading
	return e.gen
}

func (e *Engine) apply(gen uint64, books []entity.Book) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		// Superseded by a later submission or a reset.
		return
	}
	e.state = StateApplied
	e.noResults = len(books) == 0
	e.errMsg = ""
	e.session.setCurrent(books)
}

// fail empties the visible list rather than preserving the stale one; an
// error message is set instead of the no-results signal.
func (e *Engine) fail(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		return
	}
	e.state = StateFailed
	e.noResults = false
	e.errMsg = "Search failed, please try again."
	e.session.setCurrent(nil)
}

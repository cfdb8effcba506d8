package search

import (
	"fmt"

	"github.com/zjrosen/scribe/internal/cachemanager"
	"github.com/zjrosen/scribe/internal/log"
)

// Document is what the engine searches.
type Document interface {
	ID() string
	Revision() uint64
	Runes() []rune
}

type findInput struct {
	text          []rune
	query         []rune
	caseSensitive bool
}

// Engine remembers the last query and which of its matches is current.
type Engine struct {
	memo *cachemanager.ReadThroughCache[string, []Match, findInput]

	query         string
	caseSensitive bool
	hasQuery      bool

	docID   string
	rev     uint64
	matches []Match
	current int
}

// New returns an engine with an empty result set and its own match memo.
func New() *Engine {
	return NewWithCache(cachemanager.NewInMemoryCacheManager[string, []Match](
		"search", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval))
}

// NewWithCache returns an engine memoising match lists in cache, keyed by
// document ID, revision, case mode and query.
func NewWithCache(cache cachemanager.CacheManager[string, []Match]) *Engine {
	return &Engine{
		memo: cachemanager.NewReadThroughCache(cache, func(in findInput) ([]Match, error) {
			return FindAll(in.text, in.query, in.caseSensitive), nil
		}, false),
	}
}

func cacheKey(doc Document, query string, caseSensitive bool) string {
	return fmt.Sprintf("%s:%d:%t:%s", doc.ID(), doc.Revision(), caseSensitive, query)
}

func (e *Engine) lookup(doc Document, query string, caseSensitive bool) []Match {
	// FindAll never fails
	matches, _ := e.memo.Get(cacheKey(doc, query, caseSensitive), findInput{
		text:          doc.Runes(),
		query:         []rune(query),
		caseSensitive: caseSensitive,
	}, 0)
	return matches
}

// Find steps to the next (or previous) match of query. A new query or case
// mode starts over at the first match. When the document changed since the
// last call the results are recomputed and the position is kept. Returns
// false when there is nothing to show.
func (e *Engine) Find(doc Document, query string, caseSensitive bool, dir Direction) (Match, bool) {
	if query == "" {
		return Match{}, false
	}

	fresh := !e.hasQuery || query != e.query || caseSensitive != e.caseSensitive
	stale := e.docID != doc.ID() || e.rev != doc.Revision()

	if fresh || stale {
		e.matches = e.lookup(doc, query, caseSensitive)
		e.query, e.caseSensitive, e.hasQuery = query, caseSensitive, true
		e.docID, e.rev = doc.ID(), doc.Revision()
	}
	if len(e.matches) == 0 {
		e.current = 0
		log.Debug(log.CatSearch, "No matches", "query", query)
		return Match{}, false
	}

	switch {
	case fresh:
		e.current = 0
	default:
		e.current = min(e.current, len(e.matches)-1)
		if dir == Backward {
			e.current = (e.current - 1 + len(e.matches)) % len(e.matches)
		} else {
			e.current = (e.current + 1) % len(e.matches)
		}
	}
	return e.matches[e.current], true
}

// Refresh recomputes results against doc without moving the current index
// (beyond clamping). Used after edits so highlights stay accurate.
func (e *Engine) Refresh(doc Document) {
	if !e.hasQuery || (e.docID == doc.ID() && e.rev == doc.Revision()) {
		return
	}
	e.matches = e.lookup(doc, e.query, e.caseSensitive)
	e.docID, e.rev = doc.ID(), doc.Revision()
	e.current = min(e.current, max(len(e.matches)-1, 0))
}

// Query returns the last query and its case mode.
func (e *Engine) Query() (string, bool) { return e.query, e.caseSensitive }

// QueryLen is the rune length of the last query.
func (e *Engine) QueryLen() int { return len([]rune(e.query)) }

// Matches returns the current result set.
func (e *Engine) Matches() []Match { return e.matches }

// Current returns the current match.
func (e *Engine) Current() (Match, bool) {
	if len(e.matches) == 0 {
		return Match{}, false
	}
	return e.matches[e.current], true
}

// Highlights returns the matches on line.
func (e *Engine) Highlights(line int) []Match {
	var out []Match
	for _, m := range e.matches {
		if m.Line == line {
			out = append(out, m)
		} else if m.Line > line {
			break
		}
	}
	return out
}

// Reset forgets the query and results. The memo is kept.
func (e *Engine) Reset() {
	e.query, e.caseSensitive, e.hasQuery = "", false, false
	e.matches = nil
	e.current = 0
	e.docID, e.rev = "", 0
}

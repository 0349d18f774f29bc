// Package search finds substring matches in a document and tracks the
// current match for next/previous navigation.
package search

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"github.com/onecode/onecode/internal/buffer"
	"github.com/onecode/onecode/internal/log"
	"github.com/onecode/onecode/internal/tracing"
)

// Match is a [Start, End) range of rune offsets into the document text.
type Match struct {
	Start int
	End   int
}

// Contains reports whether offset lies inside the match.
func (m Match) Contains(offset int) bool {
	return offset >= m.Start && offset < m.End
}

// Find returns every occurrence of query in text, scanning left to right
// and resuming one rune after the start of each hit, so overlapping
// occurrences are all reported. Without caseSensitive both sides are
// lowercased rune by rune. An empty query finds nothing.
func Find(text, query string, caseSensitive bool) []Match {
	if query == "" {
		return nil
	}
	if !caseSensitive {
		text = fold(text)
		query = fold(query)
	}
	qlen := utf8.RuneCountInString(query)

	var matches []Match
	b, r := 0, 0 // byte and rune position of the scan
	for b <= len(text) {
		i := strings.Index(text[b:], query)
		if i < 0 {
			break
		}
		r += utf8.RuneCountInString(text[b : b+i])
		b += i
		matches = append(matches, Match{Start: r, End: r + qlen})

		_, size := utf8.DecodeRuneInString(text[b:])
		b += size
		r++
	}
	return matches
}

// fold lowercases s one rune at a time, keeping the rune count intact.
func fold(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, c := range s {
		sb.WriteRune(unicode.ToLower(c))
	}
	return sb.String()
}

// Engine holds the active query and match list for one document. The list
// is recomputed wholesale on every query, case change or Refresh.
type Engine struct {
	doc           *buffer.Document
	query         string
	caseSensitive bool
	matches       []Match
	current       int
}

// NewEngine creates an engine searching doc.
func NewEngine(doc *buffer.Document) *Engine {
	return &Engine{doc: doc, current: -1}
}

// Search runs query against the document and returns the matches. An
// empty query clears all matches.
func (e *Engine) Search(query string, caseSensitive bool) []Match {
	e.query = query
	e.caseSensitive = caseSensitive
	e.run()
	return e.matches
}

// Refresh re-runs the active query against the current text. It is a
// no-op without a query.
func (e *Engine) Refresh() {
	if e.query == "" {
		return
	}
	e.run()
}

func (e *Engine) run() {
	e.current = -1
	if e.query == "" {
		e.matches = nil
		return
	}

	_, span := tracing.Tracer().Start(context.Background(), tracing.SpanSearch)
	defer span.End()

	e.matches = Find(e.doc.Text(), e.query, e.caseSensitive)

	span.SetAttributes(
		attribute.Int(tracing.AttrQueryLength, utf8.RuneCountInString(e.query)),
		attribute.Bool(tracing.AttrCaseSensitive, e.caseSensitive),
		attribute.Int(tracing.AttrMatchCount, len(e.matches)),
	)
	log.Debug(log.CatSearch, "search", "matches", len(e.matches), "case", e.caseSensitive)
}

// Clear drops the query and all matches.
func (e *Engine) Clear() {
	e.query = ""
	e.matches = nil
	e.current = -1
}

// Query returns the active query.
func (e *Engine) Query() string {
	return e.query
}

// CaseSensitive reports whether the active query matches case.
func (e *Engine) CaseSensitive() bool {
	return e.caseSensitive
}

// Active reports whether a non-empty query is set.
func (e *Engine) Active() bool {
	return e.query != ""
}

// Matches returns the current match list.
func (e *Engine) Matches() []Match {
	return e.matches
}

// Current returns the index of the selected match, or false when none is.
func (e *Engine) Current() (int, bool) {
	return e.current, e.current >= 0
}

// Next selects the match after the selected one, wrapping to the first.
// With no selection yet it picks the first match starting at or after
// offset.
func (e *Engine) Next(offset int) (Match, bool) {
	n := len(e.matches)
	if n == 0 {
		return Match{}, false
	}
	if e.current >= 0 {
		e.current = (e.current + 1) % n
		return e.matches[e.current], true
	}
	e.current = 0
	for i, m := range e.matches {
		if m.Start >= offset {
			e.current = i
			break
		}
	}
	return e.matches[e.current], true
}

// Prev selects the match before the selected one, wrapping to the last.
// With no selection yet it picks the last match starting before offset.
func (e *Engine) Prev(offset int) (Match, bool) {
	n := len(e.matches)
	if n == 0 {
		return Match{}, false
	}
	if e.current >= 0 {
		e.current = (e.current - 1 + n) % n
		return e.matches[e.current], true
	}
	e.current = n - 1
	for i := n - 1; i >= 0; i-- {
		if e.matches[i].Start < offset {
			e.current = i
			break
		}
	}
	return e.matches[e.current], true
}

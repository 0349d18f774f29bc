package syntax

import (
	"context"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/onecode/onecode/internal/buffer"
	"github.com/onecode/onecode/internal/cachemanager"
	"github.com/onecode/onecode/internal/log"
	"github.com/onecode/onecode/internal/tracing"
)

// TokenCacheTTL bounds how long an unused line stays in a shared token cache.
const TokenCacheTTL = 10 * time.Minute

// TokenCache is shared across highlighters. Keys combine the language ID
// and the line text, so identical lines in different documents lex once.
type TokenCache = cachemanager.CacheManager[string, []Token]

// NewTokenCache returns an in-memory TokenCache.
func NewTokenCache() TokenCache {
	return cachemanager.NewMemory[string, []Token]("tokens", TokenCacheTTL)
}

// Highlighter keeps the token slices of one document's lines. Lines are
// marked dirty from change events and re-lexed on next access.
type Highlighter struct {
	lang  Language
	lexer Lexer
	lex   *cachemanager.ReadThrough[string, []Token, string]

	lines [][]Token
	dirty []bool
}

// NewHighlighter creates a highlighter for a document of lineCount lines.
// cache may be nil, in which case every dirty line is lexed directly.
func NewHighlighter(lang Language, lineCount int, cache TokenCache) *Highlighter {
	h := &Highlighter{}
	h.lex = cachemanager.NewReadThrough(cache,
		func(line string) string { return h.lang.ID + "\x00" + line },
		func(_ context.Context, line string) ([]Token, error) {
			return slices.Collect(h.lexer.Tokenize(line)), nil
		},
		TokenCacheTTL,
	)
	h.SetLanguage(lang, lineCount)
	return h
}

// Language returns the language in use.
func (h *Highlighter) Language() Language {
	return h.lang
}

// SetLanguage switches language and marks every line dirty.
func (h *Highlighter) SetLanguage(lang Language, lineCount int) {
	h.lang = lang
	h.lexer = lang.Lexer()
	h.lines = make([][]Token, lineCount)
	h.dirty = make([]bool, lineCount)
	h.invalidateAll()
}

// Apply marks the lines touched by ev dirty. An edit that changes the line
// count shifts every following line, so all lines are invalidated; the
// token cache keeps that cheap.
func (h *Highlighter) Apply(ev buffer.ChangeEvent) {
	if ev.LineCountChanged || ev.LineCount != len(h.lines) {
		h.lines = make([][]Token, ev.LineCount)
		h.dirty = make([]bool, ev.LineCount)
		h.invalidateAll()
		return
	}
	for _, i := range ev.Lines {
		if i >= 0 && i < len(h.dirty) {
			h.dirty[i] = true
		}
	}
}

// Dirty reports whether line i needs re-lexing.
func (h *Highlighter) Dirty(i int) bool {
	return i >= 0 && i < len(h.dirty) && h.dirty[i]
}

// Refresh re-lexes the dirty lines in [from, to) and returns how many were
// lexed. lineAt supplies the current text of a line.
func (h *Highlighter) Refresh(ctx context.Context, from, to int, lineAt func(int) string) int {
	if h.lexer == nil {
		return 0
	}
	from = max(from, 0)
	to = min(to, len(h.lines))

	ctx, span := tracing.Tracer().Start(ctx, tracing.SpanHighlight)
	defer span.End()

	n := 0
	for i := from; i < to; i++ {
		if !h.dirty[i] {
			continue
		}
		h.lines[i] = h.lexLine(ctx, lineAt(i))
		h.dirty[i] = false
		n++
	}
	hits, misses := h.lex.Stats()
	span.SetAttributes(
		attribute.String(tracing.AttrLanguage, h.lang.ID),
		attribute.Int(tracing.AttrLinesLexed, n),
		attribute.Int64(tracing.AttrCacheHits, hits),
		attribute.Int64(tracing.AttrCacheMisses, misses),
	)
	return n
}

// Tokens returns the tokens of line i, lexing it first when dirty. It
// returns nil for plain text and for out-of-range lines.
func (h *Highlighter) Tokens(i int, text string) []Token {
	if h.lexer == nil || i < 0 || i >= len(h.lines) {
		return nil
	}
	if h.dirty[i] {
		h.lines[i] = h.lexLine(context.Background(), text)
		h.dirty[i] = false
	}
	return h.lines[i]
}

func (h *Highlighter) lexLine(ctx context.Context, text string) []Token {
	toks, err := h.lex.Get(ctx, text)
	if err != nil {
		log.Warn(log.CatSyntax, "lex failed", "language", h.lang.ID, "error", err)
		return nil
	}
	return toks
}

func (h *Highlighter) invalidateAll() {
	for i := range h.dirty {
		h.dirty[i] = true
	}
}

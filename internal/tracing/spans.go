package tracing

// TracerName is the instrumentation scope used by every editor package.
const TracerName = "github.com/onecode/onecode"

// Span names.
const (
	SpanHighlight = "syntax.refresh"
	SpanSearch    = "search.run"
	SpanSave      = "workspace.save"
	SpanOpen      = "workspace.open"
)

// Span attribute keys.
const (
	AttrDocumentPath  = "document.path"
	AttrDocumentLines = "document.lines"
	AttrLanguage      = "syntax.language"
	AttrLinesLexed    = "syntax.lines_lexed"
	AttrCacheHits     = "syntax.cache_hits"
	AttrCacheMisses   = "syntax.cache_misses"
	AttrQueryLength   = "search.query_length"
	AttrCaseSensitive = "search.case_sensitive"
	AttrMatchCount    = "search.matches"
	AttrBytes         = "io.bytes"
)

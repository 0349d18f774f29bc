package syntax

import (
	"iter"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/onecode/onecode/internal/log"
)

// chromaLexer adapts a chroma lexer to Lexer.
type chromaLexer struct {
	lexer chroma.Lexer
}

// newChromaLexer returns nil when chroma has no lexer registered under name.
func newChromaLexer(name string) *chromaLexer {
	lex := lexers.Get(name)
	if lex == nil {
		return nil
	}
	return &chromaLexer{lexer: chroma.Coalesce(lex)}
}

// Tokenize yields the classified spans of line. Spans chroma leaves
// unclassified (whitespace, names, punctuation) are skipped.
func (c *chromaLexer) Tokenize(line string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		if line == "" {
			return
		}
		it, err := c.lexer.Tokenise(nil, line)
		if err != nil {
			log.Warn(log.CatSyntax, "tokenise failed", "lexer", c.lexer.Config().Name, "error", err)
			return
		}
		pos := 0
		for t := it(); t != chroma.EOF; t = it() {
			start := pos
			pos += len(t.Value)
			if start >= len(line) {
				// lexers configured with EnsureNL append a trailing newline
				return
			}
			end := min(pos, len(line))
			kind := classify(t.Type)
			if kind == Other || end == start {
				continue
			}
			if !yield(Token{Kind: kind, Start: start, Length: end - start}) {
				return
			}
		}
	}
}

// classify maps a chroma token type onto Kind. Exact matches win; other
// types fall back to their chroma category.
func classify(tt chroma.TokenType) Kind {
	switch tt {
	case chroma.Keyword:
		return Keyword
	case chroma.KeywordNamespace:
		return KeywordNamespace
	case chroma.NameFunction, chroma.NameFunctionMagic:
		return FunctionName
	case chroma.NameClass:
		return ClassName
	case chroma.Comment:
		return Comment
	case chroma.CommentSingle:
		return CommentSingle
	case chroma.CommentMultiline:
		return CommentMultiline
	case chroma.LiteralString:
		return String
	case chroma.LiteralStringDouble:
		return StringDouble
	case chroma.LiteralStringSingle:
		return StringSingle
	case chroma.LiteralNumber:
		return Number
	case chroma.LiteralNumberInteger:
		return NumberInteger
	case chroma.LiteralNumberFloat:
		return NumberFloat
	case chroma.Operator:
		return Operator
	}

	switch {
	case tt.InCategory(chroma.Keyword):
		return Keyword
	case tt.InCategory(chroma.Comment):
		return Comment
	case tt.InSubCategory(chroma.LiteralString):
		return String
	case tt.InSubCategory(chroma.LiteralNumber):
		return Number
	case tt.InCategory(chroma.Operator):
		return Operator
	}
	return Other
}

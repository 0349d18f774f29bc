package syntax

import "iter"

// Token is a classified span of one line. Start and Length are byte
// offsets, so line[t.Start:t.End()] is the token text.
type Token struct {
	Kind   Kind
	Start  int
	Length int
}

// End returns the exclusive end offset.
func (t Token) End() int {
	return t.Start + t.Length
}

// Lexer tokenizes a single line. Tokens come out left to right and never
// overlap; gaps between them render as plain text.
type Lexer interface {
	Tokenize(line string) iter.Seq[Token]
}

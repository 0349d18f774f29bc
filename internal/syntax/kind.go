// Package syntax classifies source lines into styled token spans.
//
// Each line is tokenized on its own; no lexer state carries across line
// boundaries, so block comments and multi-line strings are classified line
// by line.
package syntax

// Kind is the closed set of token classifications a theme can style.
type Kind int

const (
	Other Kind = iota
	Keyword
	KeywordNamespace
	FunctionName
	ClassName
	Comment
	CommentSingle
	CommentMultiline
	String
	StringDouble
	StringSingle
	Number
	NumberInteger
	NumberFloat
	Operator

	numKinds
)

var kindNames = [numKinds]string{
	Other:            "Other",
	Keyword:          "Keyword",
	KeywordNamespace: "KeywordNamespace",
	FunctionName:     "FunctionName",
	ClassName:        "ClassName",
	Comment:          "Comment",
	CommentSingle:    "CommentSingle",
	CommentMultiline: "CommentMultiline",
	String:           "String",
	StringDouble:     "StringDouble",
	StringSingle:     "StringSingle",
	Number:           "Number",
	NumberInteger:    "NumberInteger",
	NumberFloat:      "NumberFloat",
	Operator:         "Operator",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Unknown"
	}
	return kindNames[k]
}

// parents maps a fine-grained kind to the kind whose style it inherits.
// Kinds absent from the table are roots.
var parents = map[Kind]Kind{
	KeywordNamespace: Keyword,
	CommentSingle:    Comment,
	CommentMultiline: Comment,
	StringDouble:     String,
	StringSingle:     String,
	NumberInteger:    Number,
	NumberFloat:      Number,
}

// Parent returns the fallback kind for k, or false when k is a root.
func (k Kind) Parent() (Kind, bool) {
	p, ok := parents[k]
	return p, ok
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := range numKinds {
		out = append(out, k)
	}
	return out
}

// Lookup resolves k through its parent chain, returning the first hit from
// find. The walk is bounded by the number of kinds, so a malformed table
// cannot loop.
func Lookup[V any](k Kind, find func(Kind) (V, bool)) (V, bool) {
	for range numKinds {
		if v, ok := find(k); ok {
			return v, true
		}
		p, ok := k.Parent()
		if !ok {
			break
		}
		k = p
	}
	var zero V
	return zero, false
}

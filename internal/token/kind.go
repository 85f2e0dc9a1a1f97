package token

// Kind represents the category of a header token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the scanned text.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwFunc represents the 'func' keyword.
	KwFunc // func
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwNamespace represents the 'namespace' keyword.
	KwNamespace // namespace
	// KwEnd represents the 'end' keyword.
	KwEnd // end

	// Number represents a numeric literal.
	Number

	// LParen '('
	LParen
	// RParen ')'
	RParen
	// LBrace '{'
	LBrace
	// RBrace '}'
	RBrace
	// Colon ':'
	Colon
	// Comma ','
	Comma
	// Dot '.'
	Dot
	// Star '*'
	Star
	// Arrow '->'
	Arrow
	// At '@'
	At
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Ident:
		return "ident"
	case KwFunc:
		return "func"
	case KwStruct:
		return "struct"
	case KwNamespace:
		return "namespace"
	case KwEnd:
		return "end"
	case Number:
		return "number"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case Colon:
		return ":"
	case Comma:
		return ","
	case Dot:
		return "."
	case Star:
		return "*"
	case Arrow:
		return "->"
	case At:
		return "@"
	}
	return "unknown"
}

// keywords maps identifier text to keyword kinds.
var keywords = map[string]Kind{
	"func":      KwFunc,
	"struct":    KwStruct,
	"namespace": KwNamespace,
	"end":       KwEnd,
}

// LookupKeyword returns the keyword kind for text, or Ident.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}

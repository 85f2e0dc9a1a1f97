package token

// Token is one scanned unit of a declaration header.
// Start/End are byte offsets into the scanned text, so callers can slice
// verbatim source back out (type annotations are kept as written).
type Token struct {
	Kind  Kind
	Text  string
	Start uint32
	End   uint32
}

// Is reports whether the token has the given kind.
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

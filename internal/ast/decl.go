package ast

import "github.com/enitrat/cairo-doc/internal/source"

// DeclKind is the closed set of declaration variants the tool distinguishes.
type DeclKind uint8

const (
	// DeclEmpty is a blank or comment-only line (no real code).
	DeclEmpty DeclKind = iota
	// DeclFunction is a `func` declaration, decorators included.
	DeclFunction
	// DeclStruct is a `struct` declaration.
	DeclStruct
	// DeclScope is a `namespace` declaration with a nested block.
	DeclScope
	// DeclOther is any code line the tool does not model (imports,
	// constants, member lines inside bodies it chose not to parse).
	DeclOther
)

func (k DeclKind) String() string {
	switch k {
	case DeclEmpty:
		return "empty"
	case DeclFunction:
		return "function"
	case DeclStruct:
		return "struct"
	case DeclScope:
		return "namespace"
	case DeclOther:
		return "other"
	}
	return "unknown"
}

// Param is one explicit parameter of a function declaration.
// Implicit arguments (the `{...}` group) are not recorded.
type Param struct {
	Name string
	Type string // verbatim source text, may be empty
}

// RetMember is one member of a return shape. Name is empty for an
// unnamed value (`-> (felt)`).
type RetMember struct {
	Name string
	Type string
}

// ReturnShape is the parsed `-> (...)` clause. Nil when absent.
type ReturnShape struct {
	Members []RetMember
}

// Decl is the tagged-variant declaration node.
//
// Raw holds the declaration's verbatim source lines: decorator lines,
// header lines and (for functions and structs) the body including the
// closing `end`. Scope bodies live in Body instead; EndRaw keeps the
// scope's closing line.
type Decl struct {
	Kind       DeclKind
	Name       string
	Decorators []string
	Params     []Param
	Returns    *ReturnShape
	Body       *Block // DeclScope only
	Raw        []string
	EndRaw     string // DeclScope only
	Span       source.Span
}

// IsFunctionLike reports whether the declaration came from a func-shaped
// construct (func, struct, namespace) as опознано парсером.
func (d *Decl) IsFunctionLike() bool {
	switch d.Kind {
	case DeclFunction, DeclStruct, DeclScope:
		return true
	}
	return false
}

// Package ast defines the document tree for one Cairo contract file.
//
// The tree is deliberately shallow: a Module owns one Block, a Block owns an
// ordered slice of Entries, and every Entry pairs an optional attached comment
// with one declaration. Entry order is emission order. The documentation
// rewriter mutates Block.Entries in place (entries are removed and inserted,
// never edited), so everything else must survive a round-trip untouched:
// declarations carry their raw source lines verbatim.
package ast

import "github.com/enitrat/cairo-doc/internal/source"

// Module is the root of the tree for one parsed file.
type Module struct {
	Name string // module name, обычно путь к файлу
	File source.FileID
	Top  *Block
}

// Block is an ordered sequence of entries at one nesting level.
type Block struct {
	// Indent is prepended to synthesized comment lines emitted into this
	// block. Raw lines keep their own original indentation.
	Indent  string
	Entries []Entry
}

// Entry pairs an optional attached comment with a declaration.
// HasComment distinguishes "no comment" (a blank line) from an empty one
// (a bare "#"): only the former terminates the documentation scan.
type Entry struct {
	Comment    string
	HasComment bool
	Decl       *Decl
}

// CommentEntry builds a synthesized comment-only entry (no raw source line).
func CommentEntry(text string) Entry {
	return Entry{
		Comment:    text,
		HasComment: true,
		Decl:       &Decl{Kind: DeclEmpty},
	}
}

// IsCommentOnly reports whether the entry carries no real code.
func (e *Entry) IsCommentOnly() bool {
	return e.Decl == nil || e.Decl.Kind == DeclEmpty
}

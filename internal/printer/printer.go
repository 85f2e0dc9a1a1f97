// Package printer re-emits a document tree as Cairo source text.
//
// Printing is pure and total for trees produced by the parser: raw lines are
// written back verbatim, so the only text the printer ever synthesizes is
// comment lines inserted by the documentation rewriter.
package printer

import (
	"bytes"

	"github.com/enitrat/cairo-doc/internal/ast"
)

// Print renders the module back to source text.
func Print(mod *ast.Module) []byte {
	var buf bytes.Buffer
	printBlock(&buf, mod.Top)
	return buf.Bytes()
}

func printBlock(buf *bytes.Buffer, block *ast.Block) {
	if block == nil {
		return
	}
	for i := range block.Entries {
		printEntry(buf, block, &block.Entries[i])
	}
}

func printEntry(buf *bytes.Buffer, block *ast.Block, entry *ast.Entry) {
	decl := entry.Decl
	switch decl.Kind {
	case ast.DeclEmpty:
		if len(decl.Raw) > 0 {
			writeLine(buf, decl.Raw[0])
			return
		}
		if entry.HasComment {
			writeLine(buf, renderComment(block.Indent, entry.Comment))
			return
		}
		writeLine(buf, "")

	case ast.DeclScope:
		for _, raw := range decl.Raw {
			writeLine(buf, raw)
		}
		printBlock(buf, decl.Body)
		writeLine(buf, decl.EndRaw)

	default:
		for _, raw := range decl.Raw {
			writeLine(buf, raw)
		}
	}
}

// renderComment форматирует синтезированную строку комментария.
func renderComment(indent, text string) string {
	if text == "" {
		return indent + "#"
	}
	return indent + "# " + text
}

func writeLine(buf *bytes.Buffer, text string) {
	buf.WriteString(text)
	buf.WriteByte('\n')
}

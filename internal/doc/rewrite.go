package doc

import (
	"fmt"

	"github.com/enitrat/cairo-doc/internal/ast"
	"github.com/enitrat/cairo-doc/internal/diag"
)

// removeDocumentation strips the attached comment block of every eligible
// declaration in this block. The entry slice is rebuilt and swapped in, so
// indices are never revisited mid-mutation.
func removeDocumentation(block *ast.Block) {
	drop := make([]bool, len(block.Entries))
	for i := range block.Entries {
		if Classify(block.Entries[i].Decl) != ActionDocument {
			continue
		}
		run := attachedCommentRun(block, i)
		for k := i - run; k < i; k++ {
			drop[k] = true
		}
	}

	out := block.Entries[:0:0]
	for i := range block.Entries {
		if !drop[i] {
			out = append(out, block.Entries[i])
		}
	}
	block.Entries = out
}

// addDocumentation inserts the resolved documentation block immediately above
// every eligible declaration, first schema line topmost. A Document-classified
// declaration with no entry in docs means the passes disagreed on traversal:
// that is a defect, not a recoverable condition.
func addDocumentation(block *ast.Block, scope []string, docs map[string][]string, reporter diag.Reporter) error {
	out := make([]ast.Entry, 0, len(block.Entries))
	for i := range block.Entries {
		entry := block.Entries[i]
		if Classify(entry.Decl) == ActionDocument {
			key := qualifiedName(scope, entry.Decl.Name)
			lines, ok := docs[key]
			if !ok {
				reporter.Report(diag.IntMissingDocEntry, diag.SevError, entry.Decl.Span,
					"no resolved documentation for "+key, nil)
				return fmt.Errorf("%w: %q has no resolved documentation", ErrInternal, key)
			}
			for _, line := range lines {
				out = append(out, ast.CommentEntry(line))
			}
		}
		out = append(out, entry)
	}
	block.Entries = out
	return nil
}

func qualifiedName(scope []string, name string) string {
	if len(scope) == 0 {
		return name
	}
	qualified := ""
	for _, s := range scope {
		qualified += s + "."
	}
	return qualified + name
}

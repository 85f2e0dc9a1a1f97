package doc

import "github.com/enitrat/cairo-doc/internal/ast"

// extractPriors collects the comment block attached to the entry at index:
// the contiguous run of comment-only entries immediately above it. The scan
// stops at the block start, at real code, or at a blank/empty comment line
// (the terminator itself is not included).
//
// Lines are returned in top-to-bottom source order. Pure read, no mutation.
func extractPriors(block *ast.Block, index int) []string {
	var collected []string

	for k := index - 1; k >= 0; k-- {
		entry := &block.Entries[k]
		if !entry.IsCommentOnly() {
			break
		}
		if !entry.HasComment || entry.Comment == "" {
			break
		}
		collected = append(collected, entry.Comment)
	}

	// Собрано снизу вверх — разворачиваем в исходный порядок.
	for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
		collected[i], collected[j] = collected[j], collected[i]
	}
	return collected
}

// attachedCommentRun returns how many entries directly above index form the
// attached comment block. Shares the scan rule with extractPriors so removal
// and extraction always agree on what belongs to a declaration.
func attachedCommentRun(block *ast.Block, index int) int {
	run := 0
	for k := index - 1; k >= 0; k-- {
		entry := &block.Entries[k]
		if !entry.IsCommentOnly() {
			break
		}
		if !entry.HasComment || entry.Comment == "" {
			break
		}
		run++
	}
	return run
}

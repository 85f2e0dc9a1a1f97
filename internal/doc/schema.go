package doc

import (
	"strings"

	"github.com/enitrat/cairo-doc/internal/ast"
)

// Canonical documentation tags. The vocabulary is fixed; anything else in a
// prior comment is ignored by reconciliation (and dropped on rewrite).
const (
	TagNotice     = "@notice"
	TagDev        = "@dev"
	TagParam      = "@param"
	TagReturns    = "@returns"
	TagInheritdoc = "@inheritdoc"
)

// buildSchema computes the canonical documentation block for a declaration,
// reusing authored prior lines where they match a canonical tag.
//
// priorLines must be in top-to-bottom source order; the first line matching
// a tag wins. Order of the result: notice, dev, params (declared order),
// returns. A prior @inheritdoc line supersedes everything else.
func buildSchema(decl *ast.Decl, priorLines []string) []string {
	if inherit, ok := firstMatch(priorLines, TagInheritdoc); ok {
		return []string{inherit}
	}

	lines := make([]string, 0, 2+len(decl.Params))

	if notice, ok := firstMatch(priorLines, TagNotice+" "); ok {
		lines = append(lines, notice)
	} else {
		lines = append(lines, TagNotice)
	}

	// Для @dev плейсхолдер не создаётся: строка попадает в блок только
	// когда автор её уже написал.
	if dev, ok := firstMatch(priorLines, TagDev); ok {
		lines = append(lines, dev)
	}

	for _, param := range decl.Params {
		placeholder := TagParam + " " + param.Name + " "
		if existing, ok := firstMatch(priorLines, placeholder); ok {
			lines = append(lines, existing)
		} else {
			lines = append(lines, placeholder)
		}
	}

	if decl.Returns != nil {
		for _, member := range decl.Returns.Members {
			lines = append(lines, returnLine(member, priorLines))
		}
	}

	return lines
}

// returnLine builds one @returns line. Named tuple members document the name
// (authoring point, trailing space); a lone unnamed value documents its type.
func returnLine(member ast.RetMember, priorLines []string) string {
	var placeholder string
	if member.Name != "" {
		placeholder = TagReturns + " " + member.Name + " "
	} else {
		placeholder = TagReturns + " " + member.Type
	}
	if existing, ok := firstMatch(priorLines, placeholder); ok {
		return existing
	}
	return placeholder
}

// firstMatch returns the first line containing substr, scanning top to bottom.
func firstMatch(lines []string, substr string) (string, bool) {
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return line, true
		}
	}
	return "", false
}

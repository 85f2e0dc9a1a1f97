package doc

import "github.com/enitrat/cairo-doc/internal/ast"

// Action is the eligibility decision for one block entry.
type Action uint8

const (
	// ActionSkip leaves the declaration and its comments untouched.
	ActionSkip Action = iota
	// ActionRecurse descends into the declaration's nested block.
	ActionRecurse
	// ActionDocument marks the declaration for a documentation block.
	ActionDocument
)

func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionRecurse:
		return "recurse"
	case ActionDocument:
		return "document"
	}
	return "unknown"
}

// skipDecorators are decorators that, when they make up the whole decorator
// set, mark a declaration as non-instrumented (storage accessors and events
// have generated bodies and nothing to document).
var skipDecorators = map[string]bool{
	"storage_var": true,
	"event":       true,
}

// Classify decides what the pipeline does with a declaration.
// Pure: no side effects, no mutation.
func Classify(decl *ast.Decl) Action {
	switch decl.Kind {
	case ast.DeclScope:
		return ActionRecurse
	case ast.DeclFunction:
		// fallthrough to the decorator check below
	default:
		// structs, blank lines and opaque code are never documented
		return ActionSkip
	}

	if len(decl.Decorators) > 0 && allSkippable(decl.Decorators) {
		return ActionSkip
	}
	return ActionDocument
}

func allSkippable(decorators []string) bool {
	for _, d := range decorators {
		if !skipDecorators[d] {
			return false
		}
	}
	return true
}

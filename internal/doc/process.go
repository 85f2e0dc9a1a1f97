// Package doc is the documentation-reconciliation engine.
//
// For every documentable declaration in a parsed module it harvests the
// comment block already attached to it, reconciles those lines against the
// canonical tag schema derived from the declaration's signature, and rewrites
// the tree so the printer emits exactly one normalized block per declaration.
// Authored content matching a known tag is preserved verbatim; missing tags
// get deterministic placeholders. Running the pipeline twice produces the
// same blocks as running it once.
package doc

import (
	"errors"

	"github.com/enitrat/cairo-doc/internal/ast"
	"github.com/enitrat/cairo-doc/internal/diag"
)

// ErrInternal reports a declaration that was classified as documentable
// during collection but is missing from the map at insertion time. The three
// passes traverse declarations in the same order, so this must not happen.
var ErrInternal = errors.New("documentation map out of sync")

type Options struct {
	// Reporter receives non-fatal findings (duplicate declaration names).
	Reporter diag.Reporter
}

// Processor holds the per-invocation state of one documentation run.
// The map is keyed by scope-qualified declaration name and discarded when
// Process returns.
type Processor struct {
	docs map[string][]string
	opts Options
}

// NewProcessor creates a processor for one module run.
func NewProcessor(opts Options) *Processor {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	return &Processor{
		docs: make(map[string][]string),
		opts: opts,
	}
}

// Process runs the three documentation passes over the module tree:
// collect existing documentation, strip it, insert the reconciled blocks.
// Mutates the tree in place.
func Process(mod *ast.Module, opts Options) error {
	return NewProcessor(opts).Process(mod)
}

func (p *Processor) Process(mod *ast.Module) error {
	p.collect(mod.Top, nil)
	p.remove(mod.Top)
	return p.insert(mod.Top, nil)
}

// collect: первый проход — наполняет карту документации.
func (p *Processor) collect(block *ast.Block, scope []string) {
	for i := range block.Entries {
		decl := block.Entries[i].Decl
		switch Classify(decl) {
		case ActionRecurse:
			p.collect(decl.Body, append(scope, decl.Name))
		case ActionDocument:
			key := qualifiedName(scope, decl.Name)
			if _, exists := p.docs[key]; exists {
				// Позже обработанная декларация молча перекрывает
				// раннюю; предупреждаем, но не падаем.
				p.opts.Reporter.Report(diag.DocDuplicateName, diag.SevWarning, decl.Span,
					"duplicate declaration name "+key+", documentation overwritten", nil)
			}
			priors := extractPriors(block, i)
			p.docs[key] = buildSchema(decl, priors)
		}
	}
}

// remove: второй проход — убирает старые блоки документации.
func (p *Processor) remove(block *ast.Block) {
	removeDocumentation(block)
	for i := range block.Entries {
		decl := block.Entries[i].Decl
		if Classify(decl) == ActionRecurse {
			p.remove(decl.Body)
		}
	}
}

// insert: третий проход — вставляет свежие блоки над декларациями.
func (p *Processor) insert(block *ast.Block, scope []string) error {
	if err := addDocumentation(block, scope, p.docs, p.opts.Reporter); err != nil {
		return err
	}
	for i := range block.Entries {
		decl := block.Entries[i].Decl
		if Classify(decl) == ActionRecurse {
			if err := p.insert(decl.Body, append(scope, decl.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

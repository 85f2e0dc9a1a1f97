// Package parser builds the document tree for one Cairo 0.x file.
//
// The parser is line-structured: it splits the file into physical lines,
// recognises blank lines, comment lines, decorator lines and declaration
// headers, and keeps everything else verbatim as opaque code. Declaration
// headers are the only place real tokenization happens (internal/lexer);
// function and struct bodies are carried as raw lines so the printer can
// re-emit them byte-for-byte.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/enitrat/cairo-doc/internal/ast"
	"github.com/enitrat/cairo-doc/internal/diag"
	"github.com/enitrat/cairo-doc/internal/source"
)

// ErrParse is returned when the file contains syntax the parser rejects.
// Diagnostics with the details go through the configured Reporter.
var ErrParse = errors.New("parse errors present")

// nestedIndent is appended to the enclosing indent for namespace bodies.
const nestedIndent = "    "

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

// Parser — состояние парсера на один файл.
type Parser struct {
	file  *source.File
	lines []line
	pos   int
	opts  Options
	errs  uint
}

// line is one physical source line with its byte offset.
type line struct {
	text  string
	start uint32
}

// Parse разбирает файл в дерево. Возвращает дерево и ErrParse, если были
// синтаксические ошибки (дерево при этом может быть частичным).
func Parse(file *source.File, opts Options) (*ast.Module, error) {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	p := &Parser{
		file:  file,
		lines: splitLines(file.Content),
		opts:  opts,
	}

	top, _ := p.parseBlock("", true)
	mod := &ast.Module{
		Name: file.Path,
		File: file.ID,
		Top:  top,
	}
	if p.errs > 0 {
		return mod, fmt.Errorf("%s: %w", file.Path, ErrParse)
	}
	return mod, nil
}

func splitLines(content []byte) []line {
	var out []line
	start := uint32(0)
	for i, b := range content {
		if b == '\n' {
			out = append(out, line{text: string(content[start:i]), start: start})
			start = uint32(i + 1)
		}
	}
	if int(start) < len(content) {
		out = append(out, line{text: string(content[start:]), start: start})
	}
	return out
}

func (p *Parser) eof() bool {
	return p.pos >= len(p.lines)
}

func (p *Parser) peek() line {
	return p.lines[p.pos]
}

func (p *Parser) bump() line {
	ln := p.lines[p.pos]
	p.pos++
	return ln
}

func (p *Parser) lineSpan(ln line) source.Span {
	return source.Span{
		File:  p.file.ID,
		Start: ln.start,
		End:   ln.start + uint32(len(ln.text)),
	}
}

func (p *Parser) report(code diag.Code, span source.Span, msg string) {
	p.errs++
	if p.opts.MaxErrors != 0 && p.errs > p.opts.MaxErrors {
		return
	}
	p.opts.Reporter.Report(code, diag.SevError, span, msg, nil)
}

// parseBlock собирает записи до конца файла (top level) или до строки `end`
// на этом уровне вложенности. Возвращает блок и строку end (verbatim).
func (p *Parser) parseBlock(indent string, topLevel bool) (*ast.Block, string) {
	block := &ast.Block{Indent: indent}

	for !p.eof() {
		ln := p.peek()
		trimmed := strings.TrimSpace(ln.text)

		switch {
		case trimmed == "":
			p.bump()
			block.Entries = append(block.Entries, ast.Entry{
				Decl: &ast.Decl{Kind: ast.DeclEmpty, Raw: []string{ln.text}, Span: p.lineSpan(ln)},
			})

		case strings.HasPrefix(trimmed, "#"):
			p.bump()
			block.Entries = append(block.Entries, ast.Entry{
				Comment:    commentText(trimmed),
				HasComment: true,
				Decl:       &ast.Decl{Kind: ast.DeclEmpty, Raw: []string{ln.text}, Span: p.lineSpan(ln)},
			})

		case isEndLine(trimmed):
			if topLevel {
				p.report(diag.SynUnexpectedEnd, p.lineSpan(ln), "'end' without an open block")
				p.bump()
				block.Entries = append(block.Entries, rawEntry(ln, p.lineSpan(ln)))
				continue
			}
			end := p.bump()
			return block, end.text

		case strings.HasPrefix(trimmed, "@") || isHeaderStart(trimmed):
			entry, ok := p.parseDeclaration(indent)
			if !ok {
				continue
			}
			block.Entries = append(block.Entries, entry)

		default:
			p.bump()
			block.Entries = append(block.Entries, rawEntry(ln, p.lineSpan(ln)))
		}
	}

	if !topLevel {
		span := source.Span{File: p.file.ID}
		if len(p.lines) > 0 {
			span = p.lineSpan(p.lines[len(p.lines)-1])
		}
		p.report(diag.SynUnterminatedBlock, span, "missing 'end' before end of file")
	}
	return block, ""
}

// parseDeclaration разбирает декораторы + заголовок + тело одной декларации.
func (p *Parser) parseDeclaration(indent string) (ast.Entry, bool) {
	var raw []string
	var decorators []string
	span := p.lineSpan(p.peek())

	// Строки декораторов (@external, @view, ...) до заголовка.
	for !p.eof() {
		trimmed := strings.TrimSpace(p.peek().text)
		if !strings.HasPrefix(trimmed, "@") {
			break
		}
		ln := p.bump()
		raw = append(raw, ln.text)
		decorators = append(decorators, decoratorName(trimmed))
		span = span.Cover(p.lineSpan(ln))
	}

	if p.eof() || !isHeaderStart(strings.TrimSpace(p.peek().text)) {
		p.report(diag.SynMalformedHeader, span, "decorator without a declaration")
		// Декораторы остаются в дереве как непрозрачные строки.
		return ast.Entry{Decl: &ast.Decl{Kind: ast.DeclOther, Raw: raw, Span: span}}, len(raw) > 0
	}

	// Заголовок может занимать несколько строк: копим до `:` при
	// сбалансированных скобках.
	var headerParts []string
	headerDone := false
	for !p.eof() {
		ln := p.bump()
		raw = append(raw, ln.text)
		span = span.Cover(p.lineSpan(ln))
		headerParts = append(headerParts, stripComment(ln.text))
		joined := strings.Join(headerParts, " ")
		if parensBalanced(joined) && strings.HasSuffix(strings.TrimSpace(joined), ":") {
			headerDone = true
			break
		}
	}
	headerText := strings.Join(headerParts, " ")
	if !headerDone {
		p.report(diag.SynUnbalancedParens, span, "declaration header never closes")
		return ast.Entry{Decl: &ast.Decl{Kind: ast.DeclOther, Raw: raw, Span: span}}, true
	}

	decl, err := parseHeader(headerText)
	if err != nil {
		p.report(diag.SynMalformedHeader, span, err.Error())
		return ast.Entry{Decl: &ast.Decl{Kind: ast.DeclOther, Raw: raw, Span: span}}, true
	}
	decl.Decorators = decorators
	decl.Raw = raw
	decl.Span = span

	switch decl.Kind {
	case ast.DeclScope:
		body, endRaw := p.parseBlock(indent+nestedIndent, false)
		body.Indent = deriveIndent(body, body.Indent)
		decl.Body = body
		decl.EndRaw = endRaw
		if endRaw == "" {
			decl.EndRaw = indent + "end"
		}
		for i := range body.Entries {
			decl.Span = decl.Span.Cover(body.Entries[i].Decl.Span)
		}

	case ast.DeclFunction, ast.DeclStruct:
		if !p.consumeBody(decl, &span) {
			return ast.Entry{Decl: decl}, true
		}
		decl.Span = span
	}

	return ast.Entry{Decl: decl}, true
}

// consumeBody накапливает тело func/struct до парного `end`, учитывая
// вложенные блоки (if / with_attr / with внутри тела).
func (p *Parser) consumeBody(decl *ast.Decl, span *source.Span) bool {
	depth := 0
	for !p.eof() {
		ln := p.bump()
		decl.Raw = append(decl.Raw, ln.text)
		*span = span.Cover(p.lineSpan(ln))
		trimmed := strings.TrimSpace(stripComment(ln.text))

		if isEndLine(trimmed) {
			if depth == 0 {
				return true
			}
			depth--
			continue
		}
		if opensNestedBlock(trimmed) {
			depth++
		}
	}
	p.report(diag.SynUnterminatedBlock, *span, fmt.Sprintf("%s %q missing 'end'", decl.Kind, decl.Name))
	return false
}

// deriveIndent снимает отступ с первой непустой строки тела, чтобы
// синтезированные комментарии следовали авторской ширине, а не жёсткой.
func deriveIndent(body *ast.Block, fallback string) string {
	for i := range body.Entries {
		raw := body.Entries[i].Decl.Raw
		if len(raw) == 0 {
			continue
		}
		text := raw[0]
		trimmed := strings.TrimLeft(text, " \t")
		if trimmed == "" {
			continue
		}
		return text[:len(text)-len(trimmed)]
	}
	return fallback
}

func rawEntry(ln line, span source.Span) ast.Entry {
	return ast.Entry{
		Decl: &ast.Decl{Kind: ast.DeclOther, Raw: []string{ln.text}, Span: span},
	}
}

// commentText возвращает текст комментария без `#` и одного ведущего пробела.
func commentText(trimmed string) string {
	text := strings.TrimPrefix(trimmed, "#")
	return strings.TrimPrefix(text, " ")
}

func decoratorName(trimmed string) string {
	name := strings.TrimPrefix(trimmed, "@")
	if i := strings.IndexAny(name, " \t(#"); i >= 0 {
		name = name[:i]
	}
	return name
}

func isEndLine(trimmed string) bool {
	return trimmed == "end" || strings.HasPrefix(trimmed, "end ") || strings.HasPrefix(trimmed, "end#")
}

func isHeaderStart(trimmed string) bool {
	for _, kw := range [...]string{"func", "struct", "namespace"} {
		rest, ok := strings.CutPrefix(trimmed, kw)
		if ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
			return true
		}
	}
	return false
}

// opensNestedBlock распознаёт конструкции тела, закрываемые своим `end`.
// `else:` продолжает уже открытый if и ничего не открывает.
func opensNestedBlock(trimmed string) bool {
	if !strings.HasSuffix(trimmed, ":") {
		return false
	}
	for _, kw := range [...]string{"if", "with_attr", "with"} {
		rest, ok := strings.CutPrefix(trimmed, kw)
		if ok && (strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "(")) {
			return true
		}
	}
	return false
}

// stripComment отрезает хвостовой комментарий строки. Строковых литералов с
// `#` в заголовках не бывает, поэтому достаточно первого вхождения.
func stripComment(text string) string {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		return text[:i]
	}
	return text
}

func parensBalanced(text string) bool {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		}
	}
	return depth == 0
}

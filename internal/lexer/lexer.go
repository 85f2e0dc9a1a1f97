// Package lexer scans Cairo declaration headers into tokens.
//
// Only headers go through the scanner: function bodies are carried as raw
// text by the parser, so the token set here covers just what signatures
// need (identifiers, punctuation, `->`, decorator `@`).
package lexer

import (
	"github.com/enitrat/cairo-doc/internal/token"
)

type Lexer struct {
	cursor Cursor
	look   *token.Token // 1-элементный буфер для Peek
}

// New returns a lexer over one header string.
func New(text string) *Lexer {
	return &Lexer{
		cursor: NewCursor([]byte(text)),
		look:   nil,
	}
}

// Peek возвращает следующий токен, не съедая его.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// Next возвращает следующий значимый токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

func (lx *Lexer) scan() token.Token {
	lx.skipSpace()

	start := lx.cursor.Off
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Start: start, End: start}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '-' && lx.cursor.PeekAt(1) == '>':
		lx.cursor.Bump()
		lx.cursor.Bump()
		return lx.tok(token.Arrow, start)
	default:
		lx.cursor.Bump()
		kind := punctKind(ch)
		return lx.tok(kind, start)
	}
}

func (lx *Lexer) tok(kind token.Kind, start uint32) token.Token {
	end := lx.cursor.Off
	return token.Token{
		Kind:  kind,
		Text:  string(lx.cursor.Text[start:end]),
		Start: start,
		End:   end,
	}
}

func (lx *Lexer) skipSpace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := string(lx.cursor.Text[start:lx.cursor.Off])
	return token.Token{
		Kind:  token.LookupKeyword(text),
		Text:  text,
		Start: start,
		End:   lx.cursor.Off,
	}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && (isDec(lx.cursor.Peek()) || lx.cursor.Peek() == 'x' || isHex(lx.cursor.Peek())) {
		lx.cursor.Bump()
	}
	return lx.tok(token.Number, start)
}

func punctKind(ch byte) token.Kind {
	switch ch {
	case '(':
		return token.LParen
	case ')':
		return token.RParen
	case '{':
		return token.LBrace
	case '}':
		return token.RBrace
	case ':':
		return token.Colon
	case ',':
		return token.Comma
	case '.':
		return token.Dot
	case '*':
		return token.Star
	case '@':
		return token.At
	}
	return token.Invalid
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDec(ch)
}

func isDec(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHex(ch byte) bool {
	return (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

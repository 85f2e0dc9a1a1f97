package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/enitrat/cairo-doc/internal/ast"
	"github.com/enitrat/cairo-doc/internal/lexer"
	"github.com/enitrat/cairo-doc/internal/token"
)

// unnamedReturnTypes are bare identifiers in a return shape that denote a
// type rather than a member name (`-> (felt)` documents the type).
var unnamedReturnTypes = map[string]bool{
	"felt":       true,
	"codeoffset": true,
}

// parseHeader разбирает текст заголовка (уже склеенный в одну строку) в
// декларацию с сигнатурой. Тело и декораторы заполняет вызывающая сторона.
func parseHeader(text string) (*ast.Decl, error) {
	lx := lexer.New(text)

	var kind ast.DeclKind
	switch kw := lx.Next(); kw.Kind {
	case token.KwFunc:
		kind = ast.DeclFunction
	case token.KwStruct:
		kind = ast.DeclStruct
	case token.KwNamespace:
		kind = ast.DeclScope
	default:
		return nil, fmt.Errorf("unexpected header keyword %q", kw.Text)
	}

	name := lx.Next()
	if name.Kind != token.Ident {
		return nil, fmt.Errorf("expected declaration name, got %q", name.Text)
	}

	decl := &ast.Decl{Kind: kind, Name: name.Text}
	if kind != ast.DeclFunction {
		// struct и namespace не имеют сигнатуры в заголовке
		return decl, nil
	}

	// Неявные аргументы {syscall_ptr, ...} пропускаем целиком —
	// документации они не получают.
	if lx.Peek().Kind == token.LBrace {
		if err := skipBalanced(lx, token.LBrace, token.RBrace); err != nil {
			return nil, err
		}
	}

	if lx.Peek().Kind == token.LParen {
		params, err := parseParamList(text, lx)
		if err != nil {
			return nil, err
		}
		decl.Params = params
	}

	if lx.Peek().Kind == token.Arrow {
		lx.Next()
		ret, err := parseReturnShape(text, lx)
		if err != nil {
			return nil, err
		}
		decl.Returns = ret
	}

	return decl, nil
}

func skipBalanced(lx *lexer.Lexer, open, close token.Kind) error {
	if tok := lx.Next(); tok.Kind != open {
		return fmt.Errorf("expected %v, got %q", open, tok.Text)
	}
	depth := 1
	for depth > 0 {
		tok := lx.Next()
		switch tok.Kind {
		case open:
			depth++
		case close:
			depth--
		case token.EOF:
			return errors.New("unbalanced brackets in header")
		}
	}
	return nil
}

// parseParamList разбирает `(name: type, ...)`. Текст типа берётся срезом из
// исходного заголовка, чтобы сохранить его написание.
func parseParamList(text string, lx *lexer.Lexer) ([]ast.Param, error) {
	lx.Next() // (
	var params []ast.Param

	for {
		switch lx.Peek().Kind {
		case token.RParen:
			lx.Next()
			return params, nil
		case token.EOF:
			return nil, errors.New("parameter list never closes")
		}

		name := lx.Next()
		if name.Kind != token.Ident {
			return nil, fmt.Errorf("expected parameter name, got %q", name.Text)
		}
		param := ast.Param{Name: name.Text}

		if lx.Peek().Kind == token.Colon {
			lx.Next()
			typ, err := captureType(text, lx)
			if err != nil {
				return nil, err
			}
			param.Type = typ
		}
		params = append(params, param)

		if lx.Peek().Kind == token.Comma {
			lx.Next()
		}
	}
}

// parseReturnShape разбирает `(member, ...)` после стрелки.
func parseReturnShape(text string, lx *lexer.Lexer) (*ast.ReturnShape, error) {
	if tok := lx.Next(); tok.Kind != token.LParen {
		return nil, fmt.Errorf("expected '(' after '->', got %q", tok.Text)
	}
	ret := &ast.ReturnShape{}

	for {
		switch lx.Peek().Kind {
		case token.RParen:
			lx.Next()
			return ret, nil
		case token.EOF:
			return nil, errors.New("return shape never closes")
		}

		member, err := parseRetMember(text, lx)
		if err != nil {
			return nil, err
		}
		ret.Members = append(ret.Members, member)

		if lx.Peek().Kind == token.Comma {
			lx.Next()
		}
	}
}

func parseRetMember(text string, lx *lexer.Lexer) (ast.RetMember, error) {
	first := lx.Peek()
	if first.Kind == token.Ident {
		lx.Next()
		if lx.Peek().Kind == token.Colon {
			// именованный член: `success: felt`
			lx.Next()
			typ, err := captureType(text, lx)
			if err != nil {
				return ast.RetMember{}, err
			}
			return ast.RetMember{Name: first.Text, Type: typ}, nil
		}
		if lx.Peek().Kind == token.Comma || lx.Peek().Kind == token.RParen {
			// одиночный идентификатор: имя члена, если это не известный тип
			if unnamedReturnTypes[first.Text] {
				return ast.RetMember{Type: first.Text}, nil
			}
			return ast.RetMember{Name: first.Text}, nil
		}
		// идентификатор с продолжением (`felt*`, `a.b.T`) — безымянный тип
		typ, err := captureTypeFrom(text, lx, first.Start)
		if err != nil {
			return ast.RetMember{}, err
		}
		return ast.RetMember{Type: typ}, nil
	}

	typ, err := captureType(text, lx)
	if err != nil {
		return ast.RetMember{}, err
	}
	return ast.RetMember{Type: typ}, nil
}

// captureType съедает токены типа до запятой/закрывающей скобки на нулевой
// глубине и возвращает verbatim-срез исходного текста.
func captureType(text string, lx *lexer.Lexer) (string, error) {
	start := lx.Peek().Start
	return captureTypeFrom(text, lx, start)
}

func captureTypeFrom(text string, lx *lexer.Lexer, start uint32) (string, error) {
	depth := 0
	end := start
	for {
		tok := lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return "", errors.New("type annotation never ends")
		case token.Comma:
			if depth == 0 {
				return strings.TrimSpace(text[start:end]), nil
			}
		case token.LParen, token.LBrace:
			depth++
		case token.RParen, token.RBrace:
			if depth == 0 {
				return strings.TrimSpace(text[start:end]), nil
			}
			depth--
		case token.Colon:
			if depth == 0 {
				// конец заголовка `...) -> (res: felt):`
				return strings.TrimSpace(text[start:end]), nil
			}
		}
		lx.Next()
		end = tok.End
	}
}

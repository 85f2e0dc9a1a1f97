package doc

import (
	"reflect"
	"testing"

	"github.com/enitrat/cairo-doc/internal/ast"
)

func commentOnly(text string) ast.Entry {
	return ast.Entry{
		Comment:    text,
		HasComment: true,
		Decl:       &ast.Decl{Kind: ast.DeclEmpty},
	}
}

func blankLine() ast.Entry {
	return ast.Entry{Decl: &ast.Decl{Kind: ast.DeclEmpty}}
}

func codeLine() ast.Entry {
	return ast.Entry{Decl: &ast.Decl{Kind: ast.DeclOther, Raw: []string{"const X = 1"}}}
}

func TestExtractReturnsTopToBottomOrder(t *testing.T) {
	block := &ast.Block{Entries: []ast.Entry{
		commentOnly("@notice hello"),
		commentOnly("@param a "),
		{Decl: &ast.Decl{Kind: ast.DeclFunction, Name: "f"}},
	}}

	got := extractPriors(block, 2)
	want := []string{"@notice hello", "@param a "}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractPriors = %q, want %q", got, want)
	}
}

func TestExtractStopsAtBlankLine(t *testing.T) {
	block := &ast.Block{Entries: []ast.Entry{
		commentOnly("unrelated file header"),
		blankLine(),
		commentOnly("@notice attached"),
		{Decl: &ast.Decl{Kind: ast.DeclFunction, Name: "f"}},
	}}

	got := extractPriors(block, 3)
	want := []string{"@notice attached"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractPriors = %q, want %q", got, want)
	}
}

func TestExtractStopsAtRealCode(t *testing.T) {
	block := &ast.Block{Entries: []ast.Entry{
		commentOnly("@notice for the const, not the func"),
		codeLine(),
		{Decl: &ast.Decl{Kind: ast.DeclFunction, Name: "f"}},
	}}

	if got := extractPriors(block, 2); len(got) != 0 {
		t.Errorf("extractPriors = %q, want empty", got)
	}
}

func TestExtractAtBlockStart(t *testing.T) {
	block := &ast.Block{Entries: []ast.Entry{
		{Decl: &ast.Decl{Kind: ast.DeclFunction, Name: "f"}},
	}}

	if got := extractPriors(block, 0); len(got) != 0 {
		t.Errorf("extractPriors = %q, want empty", got)
	}
}

func TestAttachedRunAgreesWithExtract(t *testing.T) {
	block := &ast.Block{Entries: []ast.Entry{
		blankLine(),
		commentOnly("@notice one"),
		commentOnly("@dev two"),
		{Decl: &ast.Decl{Kind: ast.DeclFunction, Name: "f"}},
	}}

	if run := attachedCommentRun(block, 3); run != 2 {
		t.Errorf("attachedCommentRun = %d, want 2", run)
	}
	if got := extractPriors(block, 3); len(got) != 2 {
		t.Errorf("extractPriors found %d lines, want 2", len(got))
	}
}

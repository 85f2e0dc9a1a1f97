package parser

import (
	"errors"
	"testing"

	"github.com/enitrat/cairo-doc/internal/ast"
	"github.com/enitrat/cairo-doc/internal/diag"
	"github.com/enitrat/cairo-doc/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Module, *diag.Bag, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cairo", []byte(src))
	bag := diag.NewBag(16)
	mod, err := Parse(fs.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})
	return mod, bag, err
}

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, bag, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("Parse failed: %v (diagnostics: %+v)", err, bag.Items())
	}
	return mod
}

func onlyDecl(t *testing.T, block *ast.Block, kind ast.DeclKind) *ast.Decl {
	t.Helper()
	var found *ast.Decl
	for i := range block.Entries {
		d := block.Entries[i].Decl
		if d.Kind == kind {
			if found != nil {
				t.Fatalf("more than one %v declaration in block", kind)
			}
			found = d
		}
	}
	if found == nil {
		t.Fatalf("no %v declaration in block", kind)
	}
	return found
}

func TestParseFunctionSignature(t *testing.T) {
	mod := mustParse(t, `@external
func transfer{syscall_ptr: felt*, range_check_ptr}(to: felt, amount: Uint256) -> (success: felt):
    return (1)
end
`)

	fn := onlyDecl(t, mod.Top, ast.DeclFunction)
	if fn.Name != "transfer" {
		t.Errorf("name = %q, want transfer", fn.Name)
	}
	if len(fn.Decorators) != 1 || fn.Decorators[0] != "external" {
		t.Errorf("decorators = %v, want [external]", fn.Decorators)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("params = %+v, want 2", fn.Params)
	}
	if fn.Params[0] != (ast.Param{Name: "to", Type: "felt"}) {
		t.Errorf("param 0 = %+v", fn.Params[0])
	}
	if fn.Params[1] != (ast.Param{Name: "amount", Type: "Uint256"}) {
		t.Errorf("param 1 = %+v", fn.Params[1])
	}
	if fn.Returns == nil || len(fn.Returns.Members) != 1 {
		t.Fatalf("returns = %+v, want 1 member", fn.Returns)
	}
	if fn.Returns.Members[0] != (ast.RetMember{Name: "success", Type: "felt"}) {
		t.Errorf("return member = %+v", fn.Returns.Members[0])
	}
	if len(fn.Raw) != 4 {
		t.Errorf("raw lines = %d, want 4 (decorator+header+body+end)", len(fn.Raw))
	}
}

func TestParseMultilineHeader(t *testing.T) {
	mod := mustParse(t, `func approve{syscall_ptr: felt*}(
    spender: felt,
    amount: Uint256,
) -> (success: felt):
    return (1)
end
`)

	fn := onlyDecl(t, mod.Top, ast.DeclFunction)
	if len(fn.Params) != 2 || fn.Params[0].Name != "spender" || fn.Params[1].Name != "amount" {
		t.Fatalf("params = %+v", fn.Params)
	}
}

func TestParseReturnShapes(t *testing.T) {
	cases := []struct {
		header string
		want   []ast.RetMember
	}{
		{"func f() -> (res: felt):", []ast.RetMember{{Name: "res", Type: "felt"}}},
		{"func f() -> (felt):", []ast.RetMember{{Type: "felt"}}},
		{"func f() -> (success):", []ast.RetMember{{Name: "success"}}},
		{"func f() -> (ptr: felt*):", []ast.RetMember{{Name: "ptr", Type: "felt*"}}},
		{"func f() -> (a: felt, b: Uint256):", []ast.RetMember{{Name: "a", Type: "felt"}, {Name: "b", Type: "Uint256"}}},
	}

	for _, tc := range cases {
		mod := mustParse(t, tc.header+"\n    ret\nend\n")
		fn := onlyDecl(t, mod.Top, ast.DeclFunction)
		if fn.Returns == nil {
			t.Fatalf("%q: no return shape", tc.header)
		}
		if len(fn.Returns.Members) != len(tc.want) {
			t.Fatalf("%q: members = %+v, want %+v", tc.header, fn.Returns.Members, tc.want)
		}
		for i := range tc.want {
			if fn.Returns.Members[i] != tc.want[i] {
				t.Errorf("%q: member %d = %+v, want %+v", tc.header, i, fn.Returns.Members[i], tc.want[i])
			}
		}
	}
}

func TestParseNestedBlocksInBody(t *testing.T) {
	mod := mustParse(t, `func guarded(x: felt):
    if x == 0:
        return ()
    else:
        with_attr error_message("bad"):
            assert x = 1
        end
    end
    return ()
end
`)

	fn := onlyDecl(t, mod.Top, ast.DeclFunction)
	if len(fn.Raw) != 10 {
		t.Errorf("raw lines = %d, want 10", len(fn.Raw))
	}
}

func TestParseNamespaceRecursion(t *testing.T) {
	mod := mustParse(t, `namespace ERC20:
    func balance_of(account: felt) -> (balance: Uint256):
        ret
    end
end
`)

	ns := onlyDecl(t, mod.Top, ast.DeclScope)
	if ns.Name != "ERC20" {
		t.Errorf("namespace name = %q", ns.Name)
	}
	if ns.Body == nil {
		t.Fatalf("namespace has no body block")
	}
	if ns.Body.Indent != nestedIndent {
		t.Errorf("nested indent = %q, want %q", ns.Body.Indent, nestedIndent)
	}
	if ns.EndRaw != "end" {
		t.Errorf("end raw = %q, want end", ns.EndRaw)
	}
	fn := onlyDecl(t, ns.Body, ast.DeclFunction)
	if fn.Name != "balance_of" {
		t.Errorf("nested func = %q", fn.Name)
	}
}

func TestParseNamespaceIndentFollowsBody(t *testing.T) {
	mod := mustParse(t, `namespace Tight:
  func get() -> (res: felt):
    ret
  end
end
`)

	ns := onlyDecl(t, mod.Top, ast.DeclScope)
	if ns.Body.Indent != "  " {
		t.Errorf("nested indent = %q, want two spaces from the body", ns.Body.Indent)
	}
}

func TestParseCommentsAndBlanks(t *testing.T) {
	mod := mustParse(t, `# header comment
#
const X = 5

struct Point:
    member x: felt
end
`)

	entries := mod.Top.Entries
	if len(entries) != 5 {
		t.Fatalf("entries = %d, want 5", len(entries))
	}
	if !entries[0].HasComment || entries[0].Comment != "header comment" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if !entries[1].HasComment || entries[1].Comment != "" {
		t.Errorf("entry 1 should be an empty comment, got %+v", entries[1])
	}
	if entries[2].HasComment || entries[2].Decl.Kind != ast.DeclOther {
		t.Errorf("entry 2 should be opaque code, got %+v", entries[2])
	}
	if entries[3].Decl.Kind != ast.DeclEmpty || entries[3].HasComment {
		t.Errorf("entry 3 should be a blank line, got %+v", entries[3])
	}
	if entries[4].Decl.Kind != ast.DeclStruct || entries[4].Decl.Name != "Point" {
		t.Errorf("entry 4 = %+v", entries[4].Decl)
	}
}

func TestParseUnterminatedFunc(t *testing.T) {
	_, bag, err := parseSource(t, "func broken(x: felt):\n    ret\n")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
	items := bag.Items()
	if len(items) == 0 || items[0].Code != diag.SynUnterminatedBlock {
		t.Fatalf("diagnostics = %+v, want SynUnterminatedBlock", items)
	}
}

func TestParseStrayEnd(t *testing.T) {
	_, bag, err := parseSource(t, "end\n")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
	if items := bag.Items(); len(items) == 0 || items[0].Code != diag.SynUnexpectedEnd {
		t.Fatalf("diagnostics = %+v, want SynUnexpectedEnd", items)
	}
}

package doc

import (
	"strings"
	"testing"

	"github.com/enitrat/cairo-doc/internal/ast"
	"github.com/enitrat/cairo-doc/internal/diag"
	"github.com/enitrat/cairo-doc/internal/parser"
	"github.com/enitrat/cairo-doc/internal/printer"
	"github.com/enitrat/cairo-doc/internal/source"
)

// document runs the full parse -> process -> print pipeline once.
func document(t *testing.T, src string) string {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cairo", []byte(src))
	mod, err := parser.Parse(fs.Get(id), parser.Options{Reporter: diag.NopReporter{}})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := Process(mod, Options{}); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	return string(printer.Print(mod))
}

const transferSrc = `@external
func transfer{syscall_ptr: felt*}(to: felt, amount: Uint256) -> (success):
    return (1)
end
`

func TestPlaceholderCompleteness(t *testing.T) {
	got := document(t, transferSrc)
	// Плейсхолдеры с именем заканчиваются пробелом — это точка ввода
	// для автора; хотим собираем из частей, чтобы пробел не потерялся.
	want := strings.Join([]string{
		"# @notice",
		"# @param to ",
		"# @param amount ",
		"# @returns success ",
		"@external",
		"func transfer{syscall_ptr: felt*}(to: felt, amount: Uint256) -> (success):",
		"    return (1)",
		"end",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("documented output:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "@dev") {
		t.Errorf("no @dev line may be fabricated:\n%s", got)
	}
}

func TestIdempotence(t *testing.T) {
	once := document(t, transferSrc)
	twice := document(t, once)
	if twice != once {
		t.Errorf("second run changed output:\n--- first ---\n%s\n--- second ---\n%s", once, twice)
	}
}

func TestPreservationOfAuthoredContent(t *testing.T) {
	src := `# @notice Transfers tokens to a recipient
# @param amount the amount to move
@external
func transfer(to: felt, amount: Uint256) -> (success):
    return (1)
end
`
	got := document(t, src)

	for _, line := range []string{
		"# @notice Transfers tokens to a recipient\n",
		"# @param to \n",
		"# @param amount the amount to move\n",
		"# @returns success \n",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("output missing %q:\n%s", line, got)
		}
	}

	if document(t, got) != got {
		t.Errorf("authored content not stable across runs")
	}
}

func TestInheritdocTotality(t *testing.T) {
	src := `# @inheritdoc IERC20
@external
func transfer(to: felt, amount: Uint256) -> (success):
    return (1)
end
`
	got := document(t, src)
	want := `# @inheritdoc IERC20
@external
func transfer(to: felt, amount: Uint256) -> (success):
    return (1)
end
`
	if got != want {
		t.Errorf("inheritdoc output:\n%s\nwant:\n%s", got, want)
	}
}

func TestEligibilityExclusion(t *testing.T) {
	src := `# manually written storage comment
@storage_var
func balances(account: felt) -> (balance: Uint256):
end

@event
func Transfer(from_: felt, to: felt, value: Uint256):
end

# struct comment stays
struct Point:
    member x: felt
end
`
	got := document(t, src)
	if got != src {
		t.Errorf("non-documentable declarations were touched:\n--- in ---\n%s\n--- out ---\n%s", src, got)
	}
}

func TestNestedScopeRecursion(t *testing.T) {
	src := `func top(a: felt):
    ret
end

namespace ERC20:
    # @notice Returns the balance
    func balance_of(account: felt) -> (balance: Uint256):
        ret
    end
end
`
	got := document(t, src)
	want := strings.Join([]string{
		"# @notice",
		"# @param a ",
		"func top(a: felt):",
		"    ret",
		"end",
		"",
		"namespace ERC20:",
		"    # @notice Returns the balance",
		"    # @param account ",
		"    # @returns balance ",
		"    func balance_of(account: felt) -> (balance: Uint256):",
		"        ret",
		"    end",
		"end",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("nested scope output:\n%s\nwant:\n%s", got, want)
	}
}

func TestNestedScopeKeepsAuthorIndent(t *testing.T) {
	// Двухпробельный отступ автора должен сохраниться в синтезированных
	// строках, а не превратиться в четырёхпробельный.
	src := strings.Join([]string{
		"namespace Tight:",
		"  func get() -> (res: felt):",
		"    ret",
		"  end",
		"end",
	}, "\n") + "\n"
	got := document(t, src)
	want := strings.Join([]string{
		"namespace Tight:",
		"  # @notice",
		"  # @returns res ",
		"  func get() -> (res: felt):",
		"    ret",
		"  end",
		"end",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("indent not derived from the body:\n%s\nwant:\n%s", got, want)
	}
}

func TestRemoveThenAddLeavesSingleBlock(t *testing.T) {
	// Устаревший блок: параметр переименован, строка должна исчезнуть.
	src := `# @notice does things
# @param old_name stale text
func f(new_name: felt):
    ret
end
`
	got := document(t, src)
	want := strings.Join([]string{
		"# @notice does things",
		"# @param new_name ",
		"func f(new_name: felt):",
		"    ret",
		"end",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("stale lines survived:\n%s\nwant:\n%s", got, want)
	}
}

func TestDuplicateNamesLastWinsWithWarning(t *testing.T) {
	src := `# @notice first copy
func dup(a: felt):
    ret
end

# @notice second copy
func dup(a: felt):
    ret
end
`
	fs := source.NewFileSet()
	id := fs.AddVirtual("dup.cairo", []byte(src))
	mod, err := parser.Parse(fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	bag := diag.NewBag(8)
	if err := Process(mod, Options{Reporter: &diag.BagReporter{Bag: bag}}); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.DocDuplicateName || items[0].Severity != diag.SevWarning {
		t.Fatalf("diagnostics = %+v, want one DocDuplicateName warning", items)
	}

	got := string(printer.Print(mod))
	if strings.Count(got, "# @notice second copy") != 2 {
		t.Errorf("last-computed documentation should win for both copies:\n%s", got)
	}
	if strings.Contains(got, "# @notice first copy") {
		t.Errorf("first copy's documentation should be overwritten:\n%s", got)
	}
}

func TestMissingMapEntryIsInternalError(t *testing.T) {
	block := &ast.Block{Entries: []ast.Entry{
		{Decl: &ast.Decl{Kind: ast.DeclFunction, Name: "orphan"}},
	}}
	bag := diag.NewBag(8)
	err := addDocumentation(block, nil, map[string][]string{}, &diag.BagReporter{Bag: bag})
	if err == nil || !strings.Contains(err.Error(), "orphan") {
		t.Fatalf("err = %v, want ErrInternal mentioning orphan", err)
	}

	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.IntMissingDocEntry || items[0].Severity != diag.SevError {
		t.Fatalf("diagnostics = %+v, want one IntMissingDocEntry error", items)
	}
}

func TestQualifiedKeysAvoidCrossScopeCollision(t *testing.T) {
	src := `# @notice top-level get
func get() -> (res: felt):
    ret
end

namespace Inner:
    # @notice nested get
    func get() -> (res: felt):
        ret
    end
end
`
	got := document(t, src)
	if !strings.Contains(got, "# @notice top-level get\n") {
		t.Errorf("top-level documentation lost:\n%s", got)
	}
	if !strings.Contains(got, "    # @notice nested get\n") {
		t.Errorf("nested documentation lost:\n%s", got)
	}
}

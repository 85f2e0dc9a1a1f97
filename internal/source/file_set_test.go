package source

import (
	"testing"
)

func TestAddVirtualNormalizesContent(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("c.cairo", []byte("\xEF\xBB\xBFfunc a():\r\n    ret\r\nend\r\n"))

	f := fs.Get(id)
	if f == nil {
		t.Fatalf("Get(%d) returned nil", id)
	}
	if f.Flags&FileVirtual == 0 {
		t.Errorf("expected FileVirtual flag, got %b", f.Flags)
	}
	want := "func a():\n    ret\nend\n"
	if string(f.Content) != want {
		t.Errorf("content = %q, want %q", f.Content, want)
	}
}

func TestLookupReturnsLatestVersion(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a.cairo", []byte("one"))
	second := fs.AddVirtual("a.cairo", []byte("two"))

	id, ok := fs.Lookup("a.cairo")
	if !ok {
		t.Fatalf("Lookup failed for a.cairo")
	}
	if id != second {
		t.Errorf("Lookup = %d, want %d", id, second)
	}
}

func TestPosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("p.cairo", []byte("abc\ndef\nghi"))
	f := fs.Get(id)

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}},
		{3, LineCol{Line: 1, Col: 4}}, // \n завершает свою строку
		{4, LineCol{Line: 2, Col: 1}},
		{6, LineCol{Line: 2, Col: 3}},
		{8, LineCol{Line: 3, Col: 1}}, // после последнего \n
		{10, LineCol{Line: 3, Col: 3}},
	}
	for _, tc := range cases {
		got := f.Position(tc.off)
		if got != tc.want {
			t.Errorf("Position(%d) = %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

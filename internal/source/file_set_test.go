package source

import (
	"testing"
)

func TestFileSet_AddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.stp", []byte("seq(N in 0..3 {\n    f~N();\n})\n"))

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Errorf("expected FileVirtual flag")
	}
	if f.Path != "test.stp" {
		t.Errorf("unexpected path %q", f.Path)
	}

	start, end := fs.Resolve(Span{File: id, Start: 20, End: 23})
	if start.Line != 2 || start.Col != 5 {
		t.Errorf("start = %+v, want 2:5", start)
	}
	if end.Line != 2 || end.Col != 8 {
		t.Errorf("end = %+v, want 2:8", end)
	}
}

func TestFileSet_GetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.stp", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	tests := []struct {
		line     uint32
		expected string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.expected {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.expected)
		}
	}
}

func TestFileSet_Snippet(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("s.stp", []byte("hello world"))

	if got := fs.Snippet(Span{File: id, Start: 6, End: 11}); got != "world" {
		t.Errorf("Snippet = %q, want %q", got, "world")
	}
	if got := fs.Snippet(Span{File: id, Start: 6, End: 100}); got != "world" {
		t.Errorf("clamped Snippet = %q, want %q", got, "world")
	}
	if got := fs.Snippet(Span{File: id, Start: 100, End: 200}); got != "" {
		t.Errorf("out-of-range Snippet = %q, want empty", got)
	}
}

func TestFileSet_LatestVersionWins(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("dup.stp", []byte("old"))
	id2 := fs.AddVirtual("dup.stp", []byte("new"))

	f, ok := fs.GetByPath("dup.stp")
	if !ok {
		t.Fatalf("GetByPath failed")
	}
	if f.ID != id2 || string(f.Content) != "new" {
		t.Errorf("expected latest version, got id=%d content=%q", f.ID, f.Content)
	}
}

package tree_test

import (
	"testing"

	"stamp/internal/source"
	"stamp/internal/tree"
)

func parse(t *testing.T, src string) tree.Stream {
	t.Helper()
	fs := source.NewFileSet()
	s, bag, ok := tree.ParseVirtual(fs, "test.stp", src)
	if !ok {
		t.Fatalf("parse failed for %q: %v", src, bag.Items())
	}
	return s
}

func TestBuild_GroupNesting(t *testing.T) {
	s := parse(t, "a ( b [ c ] ) { d }")
	if len(s) != 3 {
		t.Fatalf("top level length = %d, want 3", len(s))
	}

	g, ok := s[1].(tree.Group)
	if !ok || g.Delim != tree.Paren {
		t.Fatalf("expected paren group, got %#v", s[1])
	}
	if len(g.Stream) != 2 {
		t.Fatalf("paren group length = %d, want 2", len(g.Stream))
	}
	inner, ok := g.Stream[1].(tree.Group)
	if !ok || inner.Delim != tree.Bracket {
		t.Fatalf("expected bracket group, got %#v", g.Stream[1])
	}

	brace, ok := s[2].(tree.Group)
	if !ok || brace.Delim != tree.Brace {
		t.Fatalf("expected brace group, got %#v", s[2])
	}
}

func TestBuild_GroupSpanCoversDelimiters(t *testing.T) {
	src := "( abc )"
	s := parse(t, src)
	g := s[0].(tree.Group)
	if g.Sp.Start != 0 || g.Sp.End != uint32(len(src)) {
		t.Errorf("group span = %v, want 0..%d", g.Sp, len(src))
	}
}

func TestBuild_UnclosedDelimiter(t *testing.T) {
	fs := source.NewFileSet()
	_, bag, ok := tree.ParseVirtual(fs, "test.stp", "( a b")
	if ok {
		t.Fatalf("expected failure")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected unclosed delimiter diagnostic")
	}
	// anchored at the opener
	d := bag.Items()[0]
	if d.Primary.Start != 0 || d.Primary.End != 1 {
		t.Errorf("diagnostic span = %v, want the opening paren", d.Primary)
	}
}

func TestBuild_StrayCloser(t *testing.T) {
	fs := source.NewFileSet()
	_, bag, ok := tree.ParseVirtual(fs, "test.stp", "a ) b")
	if ok {
		t.Fatalf("expected failure")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected stray closer diagnostic")
	}
}

func TestBuild_JointFlags(t *testing.T) {
	s := parse(t, "f~N (x)")
	// f is glued to ~, ~ to N; N is not glued to the paren group
	if id := s[0].(tree.Ident); !id.Joint {
		t.Errorf("f should be joint")
	}
	if p := s[1].(tree.Punct); !p.Joint {
		t.Errorf("~ should be joint")
	}
	if id := s[2].(tree.Ident); id.Joint {
		t.Errorf("N should not be joint (space before group)")
	}
}

func TestPrint_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "call", src: "f0();"},
		{name: "spaced brackets", src: "[ item1, item2, ]"},
		{name: "header", src: "N in 0..3"},
		{name: "nested", src: "fn check() { ok(1) }"},
		{name: "empty group", src: "()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parse(t, tt.src)
			if got := tree.Print(s); got != tt.src {
				t.Errorf("Print = %q, want %q", got, tt.src)
			}
		})
	}
}

func TestKeywordsAreIdentsInTree(t *testing.T) {
	s := parse(t, "in struct _")
	for i, want := range []string{"in", "struct", "_"} {
		id, ok := s[i].(tree.Ident)
		if !ok || id.Name != want {
			t.Errorf("item %d = %#v, want Ident %q", i, s[i], want)
		}
	}
}

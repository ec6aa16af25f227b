package seq_test

import (
	"strings"
	"testing"

	"stamp/internal/diag"
	"stamp/internal/seq"
	"stamp/internal/source"
	"stamp/internal/tree"
)

// parseSpec parses src as the full argument stream of one seq invocation.
func parseSpec(t *testing.T, src string) (*seq.Spec, *diag.Bag, bool) {
	t.Helper()
	fs := source.NewFileSet()
	args, bag, ok := tree.ParseVirtual(fs, "test.stp", src)
	if !ok {
		t.Fatalf("tokenization failed for %q: %v", src, bag.Items())
	}
	callSpan := source.Span{File: args[0].Span().File}
	sp, ok := seq.ParseSpec(args, callSpan, diag.BagReporter{Bag: bag})
	return sp, bag, ok
}

func expand(t *testing.T, src string) (string, *diag.Bag) {
	t.Helper()
	sp, bag, ok := parseSpec(t, src)
	if !ok {
		t.Fatalf("header parse failed for %q: %v", src, bag.Items())
	}
	out := seq.Expand(sp, diag.BagReporter{Bag: bag})
	return tree.Print(out), bag
}

func TestExpand_WholeBody(t *testing.T) {
	got, bag := expand(t, "N in 0..3 { f~N(); }")
	if want := "f0(); f1(); f2();"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestExpand_BindingBecomesLiteral(t *testing.T) {
	got, _ := expand(t, "N in 0..2 { use(N); }")
	if want := "use(0); use(1);"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExpand_SectionMarker(t *testing.T) {
	got, bag := expand(t, "N in 1..=2 { [ #(item~N,)* ] }")
	if want := "[ item1, item2, ]"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestExpand_CopiesSeparatedBySpace(t *testing.T) {
	// a copy's last token never glues to the next copy, even when it was
	// glued to the body's closing delimiter
	got, _ := expand(t, "N in 0..3 { v~N,}")
	if want := "v0, v1, v2,"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExpand_SectionLeavesRestAlone(t *testing.T) {
	// tokens outside the marker appear once, not per index
	got, _ := expand(t, "N in 0..2 { enum E { #(V~N,)* } }")
	if want := "enum E { V0, V1, }"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExpand_SectionAtDepth(t *testing.T) {
	got, _ := expand(t, "N in 0..2 { fn all() { [ ( #(x~N,)* ) ] } }")
	if !strings.Contains(got, "x0, x1,") {
		t.Errorf("marker three levels deep not expanded: %q", got)
	}
	if strings.Count(got, "fn all") != 1 {
		t.Errorf("surrounding tokens duplicated: %q", got)
	}
}

func TestExpand_MultipleSections(t *testing.T) {
	got, _ := expand(t, "N in 0..2 { #(a~N )* | #(b~N )* }")
	if want := "a0 a1 | b0 b1"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExpand_EmptyExclusiveRange(t *testing.T) {
	got, bag := expand(t, "N in 5..5 { f~N(); }")
	if got != "" {
		t.Errorf("output = %q, want empty", got)
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestExpand_InclusiveSingleton(t *testing.T) {
	got, _ := expand(t, "N in 7..=7 { f~N(); }")
	if want := "f7();"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExpand_InvalidRange(t *testing.T) {
	src := "N in 10..3 { f~N(); }"
	got, bag := expand(t, src)
	if !strings.Contains(got, `compile_error("invalid range");`) {
		t.Errorf("output = %q, want embedded compile_error payload", got)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
	d := bag.Items()[0]
	if d.Code != diag.SeqInvalidRange {
		t.Errorf("code = %v, want SeqInvalidRange", d.Code)
	}
	// anchored at the start bound literal "10"
	wantStart := uint32(strings.Index(src, "10"))
	if d.Primary.Start != wantStart || d.Primary.End != wantStart+2 {
		t.Errorf("diagnostic span = %v, want covering %q", d.Primary, "10")
	}
}

func TestExpand_InvalidRangeInsideSection(t *testing.T) {
	got, bag := expand(t, "N in 9..1 { keep #(f~N )* keep }")
	if !strings.Contains(got, "compile_error") {
		t.Errorf("output = %q, want compile_error in section position", got)
	}
	if !strings.HasPrefix(got, "keep ") || !strings.HasSuffix(got, " keep") {
		t.Errorf("surrounding tokens lost: %q", got)
	}
	if !bag.HasErrors() {
		t.Errorf("expected a diagnostic")
	}
}

func TestExpand_PassThroughWithoutBinding(t *testing.T) {
	got, _ := expand(t, "N in 0..1 { fn check() { ok(1) } }")
	if want := "fn check() { ok(1) }"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExpand_SpliceOnlyOnBinding(t *testing.T) {
	// a tilde followed by a different identifier is not a splice
	got, _ := expand(t, "N in 0..1 { a~M }")
	if want := "a~M"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExpand_SubstitutionInsideGroups(t *testing.T) {
	got, _ := expand(t, "N in 2..3 { v[N] = f~N(N); }")
	if want := "v[2] = f2(2);"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestParseSpec_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "missing binding", src: "in 0..3 { x }"},
		{name: "missing in", src: "N 0..3 { x }"},
		{name: "missing range op", src: "N in 0 3 { x }"},
		{name: "missing start", src: "N in ..3 { x }"},
		{name: "missing end", src: "N in 0.. { x }"},
		{name: "missing body", src: "N in 0..3"},
		{name: "body not braced", src: "N in 0..3 ( x )"},
		{name: "trailing tokens", src: "N in 0..3 { x } extra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp, bag, ok := parseSpec(t, tt.src)
			if ok || sp != nil {
				t.Fatalf("expected header rejection for %q", tt.src)
			}
			if !bag.HasErrors() {
				t.Fatalf("expected a diagnostic for %q", tt.src)
			}
			if code := bag.Items()[0].Code; code != diag.SeqMalformedHeader {
				t.Errorf("code = %v, want SeqMalformedHeader", code)
			}
		})
	}
}

func TestParseSpec_BadIntegerLiteral(t *testing.T) {
	sp, bag, ok := parseSpec(t, "N in 0..99999999999999999999 { x }")
	if ok || sp != nil {
		t.Fatalf("expected rejection of out-of-range bound")
	}
	if code := bag.Items()[0].Code; code != diag.SeqBadIntegerLiteral {
		t.Errorf("code = %v, want SeqBadIntegerLiteral", code)
	}
}

func TestParseSpec_UnderscoredBound(t *testing.T) {
	sp, _, ok := parseSpec(t, "N in 0..1_000 { x }")
	if !ok {
		t.Fatalf("underscored bound should parse")
	}
	if sp.To != 1000 {
		t.Errorf("To = %d, want 1000", sp.To)
	}
}

func TestParseSpec_Fields(t *testing.T) {
	sp, _, ok := parseSpec(t, "Idx in 2..=9 { body }")
	if !ok {
		t.Fatalf("parse failed")
	}
	if sp.Ident != "Idx" || sp.From != 2 || sp.To != 9 || !sp.Inclusive {
		t.Errorf("spec = %+v", sp)
	}
	if len(sp.Body) != 1 {
		t.Errorf("body length = %d, want 1", len(sp.Body))
	}
}

func TestExpand_Deterministic(t *testing.T) {
	a, _ := expand(t, "N in 0..4 { case N => handle~N, }")
	b, _ := expand(t, "N in 0..4 { case N => handle~N, }")
	if a != b {
		t.Errorf("expansion not deterministic: %q vs %q", a, b)
	}
}

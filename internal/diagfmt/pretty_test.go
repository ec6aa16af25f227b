package diagfmt_test

import (
	"strings"
	"testing"

	"stamp/internal/diag"
	"stamp/internal/diagfmt"
	"stamp/internal/source"
)

func makeBag(t *testing.T, src string, start, end uint32, code diag.Code, msg string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.stp", []byte(src))
	bag := diag.NewBag(16)
	bag.Add(diag.NewError(code, source.Span{File: id, Start: start, End: end}, msg))
	return bag, fs
}

func TestPretty_HeaderAndUnderline(t *testing.T) {
	src := "seq(N in 10..3 { f~N(); })\n"
	start := uint32(strings.Index(src, "10"))
	bag, fs := makeBag(t, src, start, start+2, diag.SeqInvalidRange, "invalid range")

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "main.stp:1:10: ERROR SEQ3003: invalid range") {
		t.Errorf("missing header line:\n%s", out)
	}
	if !strings.Contains(out, "    1 | seq(N in 10..3 { f~N(); })") {
		t.Errorf("missing context line:\n%s", out)
	}
	// caret under column 10, two columns wide
	if !strings.Contains(out, "      | "+strings.Repeat(" ", 9)+"^~") {
		t.Errorf("missing underline:\n%s", out)
	}
}

func TestPretty_SecondLine(t *testing.T) {
	src := "ok();\nseq(bad)\n"
	start := uint32(strings.Index(src, "bad"))
	bag, fs := makeBag(t, src, start, start+3, diag.SeqMalformedHeader, "expected 'in'")

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "main.stp:2:5: ERROR SEQ3001: expected 'in'") {
		t.Errorf("wrong position:\n%s", out)
	}
	if !strings.Contains(out, "    2 | seq(bad)") {
		t.Errorf("missing context line:\n%s", out)
	}
}

func TestPretty_Notes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.stp", []byte("enum E { B, A, }\n"))
	bag := diag.NewBag(16)
	d := diag.NewError(diag.GenOutOfOrder, source.Span{File: id, Start: 12, End: 13}, "A should sort before B")
	d = d.WithNote(source.Span{File: id, Start: 9, End: 10}, "B declared here")
	bag.Add(d)

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})
	if !strings.Contains(sb.String(), "note: main.stp:1:10: B declared here") {
		t.Errorf("missing note:\n%s", sb.String())
	}
}

func TestPretty_NoFile(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(16)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.UnknownCode,
		Message:  "failed to load file: no such file",
	})

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{})
	if !strings.Contains(sb.String(), "failed to load file") {
		t.Errorf("missing message:\n%s", sb.String())
	}
	if strings.Contains(sb.String(), "|") {
		t.Errorf("must not print context without a file:\n%s", sb.String())
	}
}

func TestJSON_Shape(t *testing.T) {
	src := "seq(N in 10..3 { f~N(); })\n"
	start := uint32(strings.Index(src, "10"))
	bag, fs := makeBag(t, src, start, start+2, diag.SeqInvalidRange, "invalid range")

	var sb strings.Builder
	err := diagfmt.JSON(&sb, bag, fs, diagfmt.JSONOpts{IncludePositions: true})
	if err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		`"severity": "ERROR"`,
		`"code": "SEQ3003"`,
		`"message": "invalid range"`,
		`"file": "main.stp"`,
		`"start_line": 1`,
		`"start_col": 10`,
		`"count": 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in:\n%s", want, out)
		}
	}
}

func TestJSON_MaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.stp", []byte("x\n"))
	bag := diag.NewBag(16)
	for range 3 {
		bag.Add(diag.NewError(diag.SeqMalformedHeader, source.Span{File: id}, "m"))
	}

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Errorf("count = %d, diagnostics = %d, want 2", out.Count, len(out.Diagnostics))
	}
}

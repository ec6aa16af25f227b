package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"stamp/internal/diag"
	"stamp/internal/source"
)

// Pretty renders diagnostics in a human-readable form, one block per
// diagnostic (run bag.Sort() first for stable output):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   12 | seq(N in 10..3 { f~N(); })
//	      |          ^~
//
// followed by notes when enabled. Spans with no file content (I/O failures)
// print the header line only.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		c := severityColor(d.Severity)
		sev = c.Sprint(sev)
		code = c.Sprint(code)
	}

	if int(d.Primary.File) >= fs.Len() {
		// no resolvable file, e.g. an I/O failure before loading
		fmt.Fprintf(w, "%s %s: %s\n", sev, code, d.Message)
		return
	}

	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(file.Path, opts.PathMode), start.Line, start.Col, sev, code, d.Message)

	printContext(w, file, d.Primary, start, opts)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nStart, _ := fs.Resolve(n.Span)
			nFile := fs.Get(n.Span.File)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				displayPath(nFile.Path, opts.PathMode), nStart.Line, nStart.Col, n.Msg)
		}
	}
}

// printContext shows the primary line with surrounding context and an
// underline marking the span. Column math is display-width aware so wide
// runes in the source do not skew the caret.
func printContext(w io.Writer, file *source.File, sp source.Span, start source.LineCol, opts PrettyOpts) {
	line := file.GetLine(start.Line)
	if line == "" && start.Col > 1 {
		return
	}

	first := start.Line
	if ctx := uint32(max(opts.Context, 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	for ln := first; ln < start.Line; ln++ {
		fmt.Fprintf(w, "%5d | %s\n", ln, file.GetLine(ln))
	}

	fmt.Fprintf(w, "%5d | %s\n", start.Line, line)

	// underline: prefix width in display columns, then one column per rune
	// of the marked snippet
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(line[:col])
	snipEnd := col + int(sp.Len())
	if snipEnd > len(line) {
		snipEnd = len(line)
	}
	marks := runewidth.StringWidth(line[col:snipEnd])
	if marks < 1 {
		marks = 1
	}
	underline := "^" + strings.Repeat("~", marks-1)
	if opts.Color {
		underline = color.New(color.FgHiRed, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(w, "      | %s%s\n", strings.Repeat(" ", pad), underline)

	for ln := start.Line + 1; ln <= start.Line+uint32(max(opts.Context, 0)); ln++ {
		text := file.GetLine(ln)
		if text == "" {
			break
		}
		fmt.Fprintf(w, "%5d | %s\n", ln, text)
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func displayPath(path string, mode PathMode) string {
	if mode == PathModeBasename {
		return filepath.Base(path)
	}
	return path
}

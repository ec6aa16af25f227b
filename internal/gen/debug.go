package gen

import (
	"fmt"
	"strconv"
	"strings"

	"stamp/internal/diag"
	"stamp/internal/source"
	"stamp/internal/token"
	"stamp/internal/tree"
)

// Debug generates the formatter companion for a #[derive(Debug)] struct:
//
//	fn <Name>_fmt_debug(v: <Name>) -> String {
//	    format("<Name> { field: {:?}, ... }", v.field, ...)
//	}
//
// A field-level #[debug = "<fmt>"] attribute replaces the default {:?}
// placeholder for that field.
func Debug(item *Item, fs *source.FileSet, reporter diag.Reporter) (tree.Stream, bool) {
	if item.Kind != ItemStruct {
		if reporter != nil {
			reporter.Report(diag.GenNotAStruct, diag.SevError, item.Tokens[0].Span(),
				fmt.Sprintf("derive(Debug) target must be a struct, found %s", item.Kind), nil, nil)
		}
		return nil, false
	}
	fields, ok := item.Fields(reporter)
	if !ok {
		return nil, false
	}

	parts := make([]string, 0, len(fields))
	args := make([]string, 0, len(fields))
	for _, f := range fields {
		placeholder := "{:?}"
		for _, a := range f.Attrs {
			if a.Name != "debug" {
				continue
			}
			custom, ok := debugFormat(a)
			if !ok {
				if reporter != nil {
					reporter.Report(diag.GenBadAttribute, diag.SevError, a.Sp,
						`expected debug = "..."`, nil, nil)
				}
				return nil, false
			}
			placeholder = custom
		}
		parts = append(parts, f.Name+": "+placeholder)
		args = append(args, "v."+f.Name)
	}

	template := item.Name + " { " + strings.Join(parts, ", ") + " }"
	var b strings.Builder
	fmt.Fprintf(&b, "fn %s_fmt_debug(v: %s) -> String {\n", item.Name, item.Name)
	fmt.Fprintf(&b, "    format(%s", strconv.Quote(template))
	for _, a := range args {
		b.WriteString(", ")
		b.WriteString(a)
	}
	b.WriteString(")\n}\n")

	out, bag, ok := tree.ParseVirtual(fs, "<debug:"+item.Name+">", b.String())
	if !ok {
		if reporter != nil {
			for _, d := range bag.Items() {
				reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
			}
		}
		return nil, false
	}
	return out, true
}

// debugFormat extracts the format string from debug = "...".
func debugFormat(a Attr) (string, bool) {
	if len(a.Args) != 2 {
		return "", false
	}
	if !tree.Is(a.Args[0], token.Assign) {
		return "", false
	}
	lit, ok := a.Args[1].(tree.Literal)
	if !ok || lit.Kind != token.StringLit {
		return "", false
	}
	fmtStr, err := strconv.Unquote(lit.Text)
	if err != nil {
		return "", false
	}
	return fmtStr, true
}

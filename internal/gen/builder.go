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

// Builder generates the companion builder for a #[derive(Builder)] struct:
// a <Name>Builder struct holding every field as optional state, one setter
// per field, accumulator setters for #[builder(each = "x")] list fields,
// and a build function that fails on unset required fields.
//
// The companion is assembled as source text and reparsed, so the returned
// stream is structurally identical to hand-written code.
func Builder(item *Item, fs *source.FileSet, reporter diag.Reporter) (tree.Stream, bool) {
	if item.Kind != ItemStruct {
		if reporter != nil {
			reporter.Report(diag.GenNotAStruct, diag.SevError, item.Tokens[0].Span(),
				fmt.Sprintf("derive(Builder) target must be a struct, found %s", item.Kind), nil, nil)
		}
		return nil, false
	}
	fields, ok := item.Fields(reporter)
	if !ok {
		return nil, false
	}

	plan := make([]builderField, 0, len(fields))
	for _, f := range fields {
		bf := builderField{Field: f}
		for _, a := range f.Attrs {
			if a.Name != "builder" {
				continue
			}
			each, ok := eachName(a)
			if !ok {
				if reporter != nil {
					reporter.Report(diag.GenBadAttribute, diag.SevError, a.Sp,
						`expected builder(each = "...")`, nil, nil)
				}
				return nil, false
			}
			bf.Each = each
		}
		plan = append(plan, bf)
	}

	var b strings.Builder
	bn := item.Name + "Builder"

	fmt.Fprintf(&b, "struct %s {\n", bn)
	for _, f := range plan {
		if f.Each != "" {
			// list fields accumulate in place, no optional wrapper
			fmt.Fprintf(&b, "    %s: %s,\n", f.Name, f.Type)
		} else {
			fmt.Fprintf(&b, "    %s: %s?,\n", f.Name, f.Type)
		}
	}
	b.WriteString("}\n\n")

	fmt.Fprintf(&b, "fn %s_builder() -> %s {\n    %s {", item.Name, bn, bn)
	for _, f := range plan {
		if f.Each != "" {
			fmt.Fprintf(&b, " %s: [],", f.Name)
		} else {
			fmt.Fprintf(&b, " %s: none,", f.Name)
		}
	}
	b.WriteString(" }\n}\n\n")

	for _, f := range plan {
		if f.Each != "" {
			fmt.Fprintf(&b, "fn %s_%s(b: %s, value: %s) -> %s {\n", bn, f.Each, bn, elemType(f.Type), bn)
			fmt.Fprintf(&b, "    b.%s = push(b.%s, value);\n    b\n}\n\n", f.Name, f.Name)
			if f.Each != f.Name {
				fmt.Fprintf(&b, "fn %s_%s(b: %s, value: %s) -> %s {\n", bn, f.Name, bn, f.Type, bn)
				fmt.Fprintf(&b, "    b.%s = value;\n    b\n}\n\n", f.Name)
			}
			continue
		}
		fmt.Fprintf(&b, "fn %s_%s(b: %s, value: %s) -> %s {\n", bn, f.Name, bn, f.Type, bn)
		fmt.Fprintf(&b, "    b.%s = some(value);\n    b\n}\n\n", f.Name)
	}

	fmt.Fprintf(&b, "fn %s_build(b: %s) -> %s {\n", bn, bn, item.Name)
	for _, f := range plan {
		if f.Each == "" && !f.Optional {
			fmt.Fprintf(&b, "    let %s = require(b.%s, %s);\n", f.Name, f.Name, strconv.Quote(f.Name))
		}
	}
	fmt.Fprintf(&b, "    %s {", item.Name)
	for _, f := range plan {
		if f.Each == "" && !f.Optional {
			fmt.Fprintf(&b, " %s: %s,", f.Name, f.Name)
		} else {
			fmt.Fprintf(&b, " %s: b.%s,", f.Name, f.Name)
		}
	}
	b.WriteString(" }\n}\n")

	out, bag, ok := tree.ParseVirtual(fs, "<builder:"+item.Name+">", b.String())
	if !ok {
		// generated text failed to reparse; surface its diagnostics
		if reporter != nil {
			for _, d := range bag.Items() {
				reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
			}
		}
		return nil, false
	}
	return out, true
}

type builderField struct {
	Field
	// Each is the accumulator setter name from builder(each = "x"), empty
	// for plain fields.
	Each string
}

// eachName extracts x from builder(each = "x"). Any other argument shape is
// malformed.
func eachName(a Attr) (string, bool) {
	if len(a.Args) != 1 {
		return "", false
	}
	g, ok := a.Args[0].(tree.Group)
	if !ok || g.Delim != tree.Paren || len(g.Stream) != 3 {
		return "", false
	}
	if !tree.IsIdent(g.Stream[0], "each") || !tree.Is(g.Stream[1], token.Assign) {
		return "", false
	}
	lit, ok := g.Stream[2].(tree.Literal)
	if !ok || lit.Kind != token.StringLit {
		return "", false
	}
	name, err := strconv.Unquote(lit.Text)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// elemType peels one generic layer off a list type: Vec<String> yields
// String. Types without a generic argument come back unchanged.
func elemType(t string) string {
	open := strings.IndexByte(t, '<')
	if open < 0 || !strings.HasSuffix(t, ">") {
		return t
	}
	return t[open+1 : len(t)-1]
}

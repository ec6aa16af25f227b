package seq

import (
	"strconv"

	"stamp/internal/diag"
	"stamp/internal/source"
	"stamp/internal/token"
	"stamp/internal/tree"
)

// Expand performs the full expansion for one invocation. Sections are
// checked first; when no #( ... )* marker exists anywhere in the body, the
// whole body repeats once per index.
//
// An invalid range never aborts: the reporter receives SeqInvalidRange and
// the output carries a compile_error payload anchored at the start literal,
// keeping the result structurally complete.
func Expand(spec *Spec, reporter diag.Reporter) tree.Stream {
	ex := expander{spec: spec, reporter: reporter}
	out, found := ex.expandSections(spec.Body)
	if !found {
		out = ex.expandRange(spec.Body)
	}
	return out
}

type expander struct {
	spec     *Spec
	reporter diag.Reporter
}

// expandSections walks one stream looking for #( ... )* markers, recursing
// into every group so markers are found at any nesting depth. Returns the
// rewritten stream and whether at least one marker was found anywhere.
func (ex *expander) expandSections(s tree.Stream) (tree.Stream, bool) {
	out := make(tree.Stream, 0, len(s))
	found := false
	cur := newStreamCursor(s)
	for !cur.EOF() {
		switch t := cur.Peek().(type) {
		case tree.Group:
			inner, fnd := ex.expandSections(t.Stream)
			found = found || fnd
			g := t
			g.Stream = inner
			out = append(out, g)
			cur.Bump()

		case tree.Punct:
			if t.Kind == token.Hash {
				if g, star, ok := matchSection(&cur); ok {
					// replace the three marker tokens with the stamped copies
					expanded := ex.expandRange(g.Stream)
					out = append(out, withTrailingJoint(expanded, star.Joint)...)
					found = true
					cur.Skip(3)
					continue
				}
			}
			out = append(out, t)
			cur.Bump()

		default:
			out = append(out, cur.Bump())
		}
	}
	return out, found
}

// matchSection checks, via lookahead only, that the cursor sits on the
// three-token pattern '#' (...) '*'. Nothing is consumed.
func matchSection(cur *streamCursor) (tree.Group, tree.Punct, bool) {
	t1, t2, ok := cur.Peek2()
	if !ok {
		return tree.Group{}, tree.Punct{}, false
	}
	g, ok := t1.(tree.Group)
	if !ok || g.Delim != tree.Paren {
		return tree.Group{}, tree.Punct{}, false
	}
	star, ok := t2.(tree.Punct)
	if !ok || star.Kind != token.Star {
		return tree.Group{}, tree.Punct{}, false
	}
	return g, star, true
}

// expandRange stamps out one substituted copy of s per index, ascending.
// An empty exclusive range is legal and yields an empty stream.
func (ex *expander) expandRange(s tree.Stream) tree.Stream {
	from, to := ex.spec.From, ex.spec.To
	if from > to {
		if ex.reporter != nil {
			ex.reporter.Report(diag.SeqInvalidRange, diag.SevError, ex.spec.FromSpan,
				"invalid range", nil, nil)
		}
		return CompileError(ex.spec.FromSpan, "invalid range")
	}

	// The trailing joint of each copy pointed at a delimiter that is gone
	// after stamping, so copies concatenate with a space between them.
	var out tree.Stream
	if ex.spec.Inclusive {
		for i := from; ; i++ {
			out = append(out, withTrailingJoint(ex.expandIndex(s, i), false)...)
			if i == to {
				break
			}
		}
	} else {
		for i := from; i < to; i++ {
			out = append(out, withTrailingJoint(ex.expandIndex(s, i), false)...)
		}
	}
	return out
}

// expandIndex rewrites one stream for one concrete index value. Pure and
// idempotent: input trees are never mutated, unchanged tokens pass through
// as-is with their original spans.
func (ex *expander) expandIndex(s tree.Stream, i uint64) tree.Stream {
	out := make(tree.Stream, 0, len(s))
	cur := newStreamCursor(s)
	for !cur.EOF() {
		switch t := cur.Peek().(type) {
		case tree.Group:
			g := t
			g.Stream = ex.expandIndex(t.Stream, i)
			out = append(out, g)
			cur.Bump()

		case tree.Ident:
			if t.Name == ex.spec.Ident {
				// binding identifier becomes the index literal
				out = append(out, tree.Literal{
					Kind:  token.IntLit,
					Text:  strconv.FormatUint(i, 10),
					Joint: t.Joint,
					Sp:    t.Sp,
				})
				cur.Bump()
				continue
			}
			if binding, ok := matchSplice(&cur, ex.spec.Ident); ok {
				// name~N collapses into a single spliced identifier
				out = append(out, tree.Ident{
					Name:  t.Name + strconv.FormatUint(i, 10),
					Joint: binding.Joint,
					Sp:    t.Sp,
				})
				cur.Skip(3)
				continue
			}
			out = append(out, t)
			cur.Bump()

		default:
			out = append(out, cur.Bump())
		}
	}
	return out
}

// matchSplice checks, via lookahead only, that the cursor sits on the
// three-token pattern <ident> '~' <binding>. Nothing is consumed.
func matchSplice(cur *streamCursor, binding string) (tree.Ident, bool) {
	t1, t2, ok := cur.Peek2()
	if !ok {
		return tree.Ident{}, false
	}
	tilde, ok := t1.(tree.Punct)
	if !ok || tilde.Kind != token.Tilde {
		return tree.Ident{}, false
	}
	id, ok := t2.(tree.Ident)
	if !ok || id.Name != binding {
		return tree.Ident{}, false
	}
	return id, true
}

// withTrailingJoint returns s with the joint flag of its last element set,
// so a spliced-in section keeps the spacing the removed marker had.
func withTrailingJoint(s tree.Stream, joint bool) tree.Stream {
	if len(s) == 0 {
		return s
	}
	last := s[len(s)-1]
	switch v := last.(type) {
	case tree.Ident:
		v.Joint = joint
		s[len(s)-1] = v
	case tree.Literal:
		v.Joint = joint
		s[len(s)-1] = v
	case tree.Punct:
		v.Joint = joint
		s[len(s)-1] = v
	case tree.Group:
		v.Joint = joint
		s[len(s)-1] = v
	}
	return s
}

// CompileError builds the diagnostic token payload spliced into output when
// a semantic failure must not abort the surrounding expansion:
//
//	compile_error("msg");
func CompileError(sp source.Span, msg string) tree.Stream {
	return tree.Stream{
		tree.Ident{Name: "compile_error", Joint: true, Sp: sp},
		tree.Group{
			Delim:     tree.Paren,
			OpenJoint: true,
			Joint:     true,
			Sp:        sp,
			Stream: tree.Stream{
				tree.Literal{Kind: token.StringLit, Text: strconv.Quote(msg), Joint: true, Sp: sp},
			},
		},
		tree.Punct{Kind: token.Semicolon, Text: ";", Sp: sp},
	}
}

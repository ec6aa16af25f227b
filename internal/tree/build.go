package tree

import (
	"stamp/internal/diag"
	"stamp/internal/lexer"
	"stamp/internal/source"
	"stamp/internal/token"
)

// FromTokens folds a flat token slice into a nested Stream, matching
// delimiters into Groups. A trailing EOF token is ignored. Structural
// failures (unclosed or stray delimiters, invalid tokens) are reported at
// the offending token and abort the build: nothing is produced.
func FromTokens(toks []token.Token, reporter diag.Reporter) (Stream, bool) {
	if n := len(toks); n > 0 && toks[n-1].Kind == token.EOF {
		toks = toks[:n-1]
	}
	b := &streamBuilder{toks: toks, reporter: reporter}
	s, ok := b.parse(token.Invalid, source.Span{})
	if !ok {
		return nil, false
	}
	if b.pos < len(b.toks) {
		// only a stray closer can stop the top-level parse early
		b.report(diag.SynUnexpectedCloser, b.toks[b.pos].Span, "unexpected closing delimiter")
		return nil, false
	}
	return s, true
}

type streamBuilder struct {
	toks     []token.Token
	pos      int
	reporter diag.Reporter
}

func (b *streamBuilder) report(code diag.Code, sp source.Span, msg string) {
	if b.reporter != nil {
		b.reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}

// joint reports whether tok is glued to the following token: the next token
// starts exactly where this one ends, with no trivia between.
func (b *streamBuilder) joint(i int) bool {
	if i+1 >= len(b.toks) {
		return false
	}
	next := b.toks[i+1]
	return len(next.Leading) == 0 && next.Span.Start == b.toks[i].Span.End
}

// parse consumes tokens until the closer kind (or the end of input for the
// top level, closer == Invalid). The closer token itself is not consumed.
func (b *streamBuilder) parse(closer token.Kind, openSpan source.Span) (Stream, bool) {
	var out Stream
	for b.pos < len(b.toks) {
		tok := b.toks[b.pos]

		if tok.Kind == closer {
			return out, true
		}

		if d, ok := delimFor(tok.Kind); ok {
			open := tok
			openJoint := b.joint(b.pos)
			b.pos++
			inner, ok := b.parse(token.CloserFor(open.Kind), open.Span)
			if !ok {
				return nil, false
			}
			if b.pos >= len(b.toks) {
				b.report(diag.SynUnclosedDelimiter, open.Span, "unclosed delimiter")
				return nil, false
			}
			closeTok := b.toks[b.pos]
			g := Group{
				Delim:     d,
				Stream:    inner,
				OpenJoint: openJoint,
				Joint:     b.joint(b.pos),
				Sp:        open.Span.Cover(closeTok.Span),
			}
			b.pos++
			out = append(out, g)
			continue
		}

		if tok.IsCloseDelim() {
			if closer == token.Invalid {
				// stray closer at top level; caller reports
				return out, true
			}
			b.report(diag.SynUnexpectedCloser, tok.Span, "unexpected closing delimiter")
			return nil, false
		}

		leaf, ok := b.leaf(tok)
		if !ok {
			return nil, false
		}
		out = append(out, leaf)
		b.pos++
	}

	if closer != token.Invalid {
		b.report(diag.SynUnclosedDelimiter, openSpan, "unclosed delimiter")
		return nil, false
	}
	return out, true
}

func (b *streamBuilder) leaf(tok token.Token) (Tree, bool) {
	joint := b.joint(b.pos)
	switch {
	case tok.Kind == token.Ident || tok.Kind == token.Underscore || tok.IsKeyword():
		return Ident{Name: tok.Text, Joint: joint, Sp: tok.Span}, true
	case tok.IsLiteral():
		return Literal{Kind: tok.Kind, Text: tok.Text, Joint: joint, Sp: tok.Span}, true
	case tok.Kind == token.Invalid:
		b.report(diag.SynUnexpectedToken, tok.Span, "invalid token")
		return nil, false
	default:
		return Punct{Kind: tok.Kind, Text: tok.Text, Joint: joint, Sp: tok.Span}, true
	}
}

// ParseVirtual lexes src as a virtual file in fs and builds its Stream.
// Diagnostics land in the returned bag. Used both by tests and by the
// generators, which assemble output as source text and reparse it.
func ParseVirtual(fs *source.FileSet, name, src string) (Stream, *diag.Bag, bool) {
	bag := diag.NewBag(32)
	id := fs.AddVirtual(name, []byte(src))
	toks := lexer.Scan(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	s, ok := FromTokens(toks, diag.BagReporter{Bag: bag})
	return s, bag, ok && !bag.HasErrors()
}

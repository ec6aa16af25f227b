package seq

import (
	"strconv"
	"strings"

	"stamp/internal/diag"
	"stamp/internal/source"
	"stamp/internal/token"
	"stamp/internal/tree"
)

// Spec is one parsed seq invocation header. Built once per invocation and
// immutable afterwards; expansion only reads it.
type Spec struct {
	Ident     string
	IdentSpan source.Span
	From      uint64
	FromSpan  source.Span
	To        uint64
	ToSpan    source.Span
	Inclusive bool
	Body      tree.Stream
}

// ParseSpec parses the argument stream of a seq invocation:
//
//	<ident> in <int> (.. | ..=) <int> { <body> }
//
// in strict order. Any missing or wrong token reports SeqMalformedHeader
// (or SeqBadIntegerLiteral for unparseable bounds) at the offending token
// and aborts: no Spec is produced. callSpan anchors diagnostics when the
// argument stream is empty or truncated.
func ParseSpec(args tree.Stream, callSpan source.Span, reporter diag.Reporter) (*Spec, bool) {
	p := headerParser{
		cur:      newStreamCursor(args),
		callSpan: callSpan,
		reporter: reporter,
	}
	return p.parse()
}

type headerParser struct {
	cur      streamCursor
	callSpan source.Span
	reporter diag.Reporter
}

func (p *headerParser) fail(sp source.Span, msg string) (*Spec, bool) {
	if p.reporter != nil {
		p.reporter.Report(diag.SeqMalformedHeader, diag.SevError, sp, msg, nil, nil)
	}
	return nil, false
}

// errSpan picks the span for a missing-token diagnostic: the current token
// if any, otherwise the end of the argument list.
func (p *headerParser) errSpan() source.Span {
	if t := p.cur.Peek(); t != nil {
		return t.Span()
	}
	if n := len(p.cur.items); n > 0 {
		return p.cur.items[n-1].Span()
	}
	return p.callSpan
}

func (p *headerParser) parse() (*Spec, bool) {
	spec := &Spec{}

	id, ok := p.cur.Peek().(tree.Ident)
	if !ok || p.cur.EOF() {
		return p.fail(p.errSpan(), "expected binding identifier")
	}
	spec.Ident = id.Name
	spec.IdentSpan = id.Sp
	p.cur.Bump()

	if kw, ok := p.cur.Peek().(tree.Ident); !ok || kw.Name != "in" {
		return p.fail(p.errSpan(), "expected 'in'")
	}
	p.cur.Bump()

	from, fromSpan, ok := p.parseBound()
	if !ok {
		return nil, false
	}
	spec.From = from
	spec.FromSpan = fromSpan

	switch op, ok := p.cur.Peek().(tree.Punct); {
	case ok && op.Kind == token.DotDotEq:
		spec.Inclusive = true
		p.cur.Bump()
	case ok && op.Kind == token.DotDot:
		p.cur.Bump()
	default:
		return p.fail(p.errSpan(), "expected '..' or '..='")
	}

	to, toSpan, ok := p.parseBound()
	if !ok {
		return nil, false
	}
	spec.To = to
	spec.ToSpan = toSpan

	body, ok := p.cur.Peek().(tree.Group)
	if !ok || body.Delim != tree.Brace {
		return p.fail(p.errSpan(), "expected braced body")
	}
	spec.Body = body.Stream
	p.cur.Bump()

	if !p.cur.EOF() {
		return p.fail(p.cur.Peek().Span(), "unexpected tokens after body")
	}
	return spec, true
}

// parseBound consumes one integer literal and parses it as an unsigned
// 64-bit decimal value.
func (p *headerParser) parseBound() (uint64, source.Span, bool) {
	lit, ok := p.cur.Peek().(tree.Literal)
	if !ok || lit.Kind != token.IntLit {
		_, _ = p.fail(p.errSpan(), "expected integer literal")
		return 0, source.Span{}, false
	}
	p.cur.Bump()

	// digit-group underscores are legal in source but not for ParseUint
	text := strings.ReplaceAll(lit.Text, "_", "")
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		if p.reporter != nil {
			p.reporter.Report(diag.SeqBadIntegerLiteral, diag.SevError, lit.Sp,
				"bound must be an unsigned 64-bit decimal integer", nil, nil)
		}
		return 0, source.Span{}, false
	}
	return v, lit.Sp, true
}

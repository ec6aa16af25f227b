package gen

import (
	"strings"

	"stamp/internal/diag"
	"stamp/internal/source"
	"stamp/internal/token"
	"stamp/internal/tree"
)

// ItemKind classifies the token shapes the generators understand.
type ItemKind uint8

const (
	ItemStruct ItemKind = iota
	ItemEnum
	ItemMatch
)

func (k ItemKind) String() string {
	switch k {
	case ItemEnum:
		return "enum"
	case ItemMatch:
		return "match"
	default:
		return "struct"
	}
}

// Attr is one #[...] attribute: a leading name plus whatever tokens follow
// it inside the brackets. Tokens holds the original hash-and-bracket pair so
// callers re-emit kept attributes verbatim.
type Attr struct {
	Name   string
	Args   tree.Stream
	Sp     source.Span
	Tokens tree.Stream
}

// Derives reports whether the attribute is derive(...) naming the given
// generator.
func (a Attr) Derives(name string) bool {
	if a.Name != "derive" || len(a.Args) != 1 {
		return false
	}
	g, ok := a.Args[0].(tree.Group)
	if !ok || g.Delim != tree.Paren {
		return false
	}
	for _, t := range g.Stream {
		if tree.IsIdent(t, name) {
			return true
		}
	}
	return false
}

// Item is one attributed item read off the token stream: a struct or enum
// declaration, or a match expression. Tokens holds the item's own token run
// with the leading attributes stripped, so callers re-emit exactly the
// attributes they decide to keep.
type Item struct {
	Attrs    []Attr
	Kind     ItemKind
	Name     string
	NameSpan source.Span
	Body     tree.Group
	Tokens   tree.Stream
	// End is the index just past the item in the stream it was read from.
	End int
}

// ReadAttrs reads consecutive #[...] pairs starting at s[start]. Malformed
// attribute contents report GenBadAttribute; the pair is still consumed so
// reading can continue.
func ReadAttrs(s tree.Stream, start int, reporter diag.Reporter) ([]Attr, int) {
	var attrs []Attr
	i := start
	for i+1 < len(s) && tree.Is(s[i], token.Hash) {
		g, ok := s[i+1].(tree.Group)
		if !ok || g.Delim != tree.Bracket {
			break
		}
		sp := s[i].Span().Cover(g.Sp)
		if a, ok := parseAttr(g, sp); ok {
			a.Tokens = s[i : i+2]
			attrs = append(attrs, a)
		} else if reporter != nil {
			reporter.Report(diag.GenBadAttribute, diag.SevError, sp,
				"attribute must start with an identifier", nil, nil)
		}
		i += 2
	}
	return attrs, i
}

func parseAttr(g tree.Group, sp source.Span) (Attr, bool) {
	if len(g.Stream) == 0 {
		return Attr{}, false
	}
	name, ok := g.Stream[0].(tree.Ident)
	if !ok {
		return Attr{}, false
	}
	return Attr{Name: name.Name, Args: g.Stream[1:], Sp: sp}, true
}

// ReadItem reads one attributed item starting at s[start]: its attributes,
// then either `struct Name { ... }`, `enum Name { ... }`, or
// `match <expr> { ... }`. Returns nil when the tokens after the attributes
// do not form a recognized item shape.
func ReadItem(s tree.Stream, start int, reporter diag.Reporter) (*Item, bool) {
	attrs, i := ReadAttrs(s, start, reporter)
	bodyStart := i
	if i >= len(s) {
		return nil, false
	}

	head, ok := s[i].(tree.Ident)
	if !ok {
		return nil, false
	}

	switch head.Name {
	case "struct", "enum":
		if i+2 >= len(s) {
			return nil, false
		}
		name, ok := s[i+1].(tree.Ident)
		if !ok {
			return nil, false
		}
		body, ok := s[i+2].(tree.Group)
		if !ok || body.Delim != tree.Brace {
			return nil, false
		}
		kind := ItemStruct
		if head.Name == "enum" {
			kind = ItemEnum
		}
		return &Item{
			Attrs:    attrs,
			Kind:     kind,
			Name:     name.Name,
			NameSpan: name.Sp,
			Body:     body,
			Tokens:   s[bodyStart : i+3],
			End:      i + 3,
		}, true

	case "match":
		// scrutinee runs to the first top-level brace group
		j := i + 1
		for j < len(s) {
			if g, ok := s[j].(tree.Group); ok && g.Delim == tree.Brace {
				return &Item{
					Attrs:  attrs,
					Kind:   ItemMatch,
					Body:   g,
					Tokens: s[bodyStart : j+1],
					End:    j + 1,
				}, true
			}
			j++
		}
		return nil, false
	}
	return nil, false
}

// Field is one struct field: attributes, name, printed type text, and
// whether the type carried the optional marker '?'.
type Field struct {
	Attrs    []Attr
	Name     string
	NameSpan source.Span
	Type     string
	Optional bool
}

// Fields reads the struct body as `#[attr]* name: Type[?],` entries. A
// malformed entry reports GenUnsupported and aborts field reading.
func (it *Item) Fields(reporter diag.Reporter) ([]Field, bool) {
	var fields []Field
	s := it.Body.Stream
	i := 0
	for i < len(s) {
		attrs, next := ReadAttrs(s, i, reporter)
		i = next

		name, ok := at(s, i).(tree.Ident)
		if !ok {
			return it.badField(s, i, reporter)
		}
		if !tree.Is(at(s, i+1), token.Colon) {
			return it.badField(s, i, reporter)
		}
		i += 2

		typeStart := i
		for i < len(s) && !tree.Is(s[i], token.Comma) {
			i++
		}
		typeEnd := i
		optional := false
		if typeEnd > typeStart && tree.Is(s[typeEnd-1], token.Question) {
			optional = true
			typeEnd--
		}
		if typeEnd == typeStart {
			return it.badField(s, typeStart, reporter)
		}

		fields = append(fields, Field{
			Attrs:    attrs,
			Name:     name.Name,
			NameSpan: name.Sp,
			Type:     tree.Print(s[typeStart:typeEnd]),
			Optional: optional,
		})
		if i < len(s) {
			i++ // trailing comma
		}
	}
	return fields, true
}

func (it *Item) badField(s tree.Stream, i int, reporter diag.Reporter) ([]Field, bool) {
	sp := it.Body.Sp
	if i < len(s) {
		sp = s[i].Span()
	}
	if reporter != nil {
		reporter.Report(diag.GenUnsupported, diag.SevError, sp,
			"expected `name: Type` field", nil, nil)
	}
	return nil, false
}

// Variant is one enum variant name. Payload tokens after the name are
// skipped; only the name participates in ordering checks.
type Variant struct {
	Name string
	Sp   source.Span
}

// Variants reads the enum body as `Name[payload],` entries.
func (it *Item) Variants(reporter diag.Reporter) ([]Variant, bool) {
	var variants []Variant
	s := it.Body.Stream
	i := 0
	for i < len(s) {
		name, ok := s[i].(tree.Ident)
		if !ok {
			if reporter != nil {
				reporter.Report(diag.GenUnsupported, diag.SevError, s[i].Span(),
					"expected variant name", nil, nil)
			}
			return nil, false
		}
		variants = append(variants, Variant{Name: name.Name, Sp: name.Sp})
		i++
		for i < len(s) && !tree.Is(s[i], token.Comma) {
			i++
		}
		if i < len(s) {
			i++
		}
	}
	return variants, true
}

// Arm is one match arm. Path is the printed pattern path for supported
// shapes; Wildcard marks a lone `_`; Unsupported marks every other pattern
// shape.
type Arm struct {
	Path        string
	Wildcard    bool
	Unsupported bool
	Sp          source.Span
}

// Arms reads the match body as `pattern => body[,]` entries. Arm bodies are
// either a single brace group or tokens up to the next top-level comma.
func (it *Item) Arms(reporter diag.Reporter) ([]Arm, bool) {
	var arms []Arm
	s := it.Body.Stream
	i := 0
	for i < len(s) {
		patStart := i
		for i < len(s) && !tree.Is(s[i], token.FatArrow) {
			i++
		}
		if i >= len(s) {
			if reporter != nil {
				reporter.Report(diag.GenUnsupported, diag.SevError, s[patStart].Span(),
					"expected `pattern => body` arm", nil, nil)
			}
			return nil, false
		}
		arms = append(arms, classifyPattern(s[patStart:i]))
		i++ // =>

		if g, ok := at(s, i).(tree.Group); ok && g.Delim == tree.Brace {
			i++
		} else {
			for i < len(s) && !tree.Is(s[i], token.Comma) {
				i++
			}
		}
		if i < len(s) && tree.Is(s[i], token.Comma) {
			i++
		}
	}
	return arms, true
}

// classifyPattern recognizes the pattern shapes the order validator can
// compare: a lone wildcard, or a `::`-separated path optionally followed by
// one payload group. Everything else is unsupported.
func classifyPattern(pat tree.Stream) Arm {
	sp := coverStream(pat)
	if len(pat) == 0 {
		return Arm{Unsupported: true, Sp: sp}
	}
	if len(pat) == 1 && tree.IsIdent(pat[0], "_") {
		return Arm{Wildcard: true, Sp: sp}
	}

	var segs []string
	i := 0
	for {
		id, ok := at(pat, i).(tree.Ident)
		if !ok {
			return Arm{Unsupported: true, Sp: sp}
		}
		segs = append(segs, id.Name)
		i++
		if !tree.Is(at(pat, i), token.ColonColon) {
			break
		}
		i++
	}
	if i < len(pat) {
		// at most one trailing payload group
		if _, ok := pat[i].(tree.Group); !ok || i != len(pat)-1 {
			return Arm{Unsupported: true, Sp: sp}
		}
	}
	return Arm{Path: strings.Join(segs, "::"), Sp: sp}
}

func coverStream(s tree.Stream) source.Span {
	if len(s) == 0 {
		return source.Span{}
	}
	return s[0].Span().Cover(s[len(s)-1].Span())
}

// at is a bounds-safe index into a stream.
func at(s tree.Stream, i int) tree.Tree {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

package tree

import (
	"stamp/internal/source"
	"stamp/internal/token"
)

// Delim is the delimiter kind of a Group.
type Delim uint8

const (
	// Paren is a "(...)" group.
	Paren Delim = iota
	// Brace is a "{...}" group.
	Brace
	// Bracket is a "[...]" group.
	Bracket
)

// Open returns the opening delimiter character.
func (d Delim) Open() byte {
	switch d {
	case Brace:
		return '{'
	case Bracket:
		return '['
	default:
		return '('
	}
}

// Close returns the closing delimiter character.
func (d Delim) Close() byte {
	switch d {
	case Brace:
		return '}'
	case Bracket:
		return ']'
	default:
		return ')'
	}
}

func (d Delim) String() string {
	switch d {
	case Brace:
		return "Brace"
	case Bracket:
		return "Bracket"
	default:
		return "Paren"
	}
}

// delimFor maps an opening token kind to the Delim it introduces.
func delimFor(open token.Kind) (Delim, bool) {
	switch open {
	case token.LParen:
		return Paren, true
	case token.LBrace:
		return Brace, true
	case token.LBracket:
		return Bracket, true
	default:
		return 0, false
	}
}

// Stream is an ordered sequence of trees.
type Stream []Tree

// Tree is one node of the token tree: Ident, Literal, Punct, or Group.
type Tree interface {
	Span() source.Span
	tree()
}

// Ident is an identifier (keywords of the surface language are identifiers
// at this layer, as are lone underscores).
type Ident struct {
	Name string
	// Joint reports that no whitespace separated this token from the next
	// one in the original source.
	Joint bool
	Sp    source.Span
}

// Literal is a numeric or string literal with its original textual form.
type Literal struct {
	Kind  token.Kind
	Text  string
	Joint bool
	Sp    source.Span
}

// Punct is a punctuation token. Multi-byte operators ("..", "..=", "->")
// stay single Punct nodes carrying their full text.
type Punct struct {
	Kind  token.Kind
	Text  string
	Joint bool
	Sp    source.Span
}

// Group is a delimited subtree owning its inner Stream. OpenJoint mirrors
// Joint for the opening delimiter and its first inner token.
type Group struct {
	Delim     Delim
	Stream    Stream
	OpenJoint bool
	Joint     bool
	Sp        source.Span
}

func (t Ident) Span() source.Span   { return t.Sp }
func (t Literal) Span() source.Span { return t.Sp }
func (t Punct) Span() source.Span   { return t.Sp }
func (t Group) Span() source.Span   { return t.Sp }

func (Ident) tree()   {}
func (Literal) tree() {}
func (Punct) tree()   {}
func (Group) tree()   {}

// Is reports whether the tree is a Punct of the given kind.
func Is(t Tree, kind token.Kind) bool {
	p, ok := t.(Punct)
	return ok && p.Kind == kind
}

// IsIdent reports whether the tree is an Ident with the given name.
func IsIdent(t Tree, name string) bool {
	id, ok := t.(Ident)
	return ok && id.Name == name
}

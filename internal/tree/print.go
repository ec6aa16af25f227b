package tree

import (
	"strings"
)

// Print renders a Stream back into source text. Joint flags recovered from
// the original source (or inherited through substitution) suppress the
// single space otherwise emitted between adjacent tokens.
func Print(s Stream) string {
	var b strings.Builder
	printStream(&b, s)
	return b.String()
}

func printStream(b *strings.Builder, s Stream) {
	for i, t := range s {
		printTree(b, t)
		if i+1 < len(s) && !jointAfter(t) {
			b.WriteByte(' ')
		}
	}
}

func printTree(b *strings.Builder, t Tree) {
	switch v := t.(type) {
	case Ident:
		b.WriteString(v.Name)
	case Literal:
		b.WriteString(v.Text)
	case Punct:
		b.WriteString(v.Text)
	case Group:
		b.WriteByte(v.Delim.Open())
		if len(v.Stream) > 0 {
			if !v.OpenJoint {
				b.WriteByte(' ')
			}
			printStream(b, v.Stream)
			if !jointAfter(v.Stream[len(v.Stream)-1]) {
				b.WriteByte(' ')
			}
		}
		b.WriteByte(v.Delim.Close())
	}
}

func jointAfter(t Tree) bool {
	switch v := t.(type) {
	case Ident:
		return v.Joint
	case Literal:
		return v.Joint
	case Punct:
		return v.Joint
	case Group:
		return v.Joint
	}
	return false
}

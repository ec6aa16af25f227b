package seq

import (
	"stamp/internal/tree"
)

// streamCursor is a read position inside a Stream. Lookahead never consumes:
// multi-token patterns peek first and commit the advance only once the full
// pattern is confirmed.
type streamCursor struct {
	items tree.Stream
	pos   int
}

func newStreamCursor(s tree.Stream) streamCursor {
	return streamCursor{items: s}
}

func (c *streamCursor) EOF() bool {
	return c.pos >= len(c.items)
}

// Peek returns the current tree without consuming it.
func (c *streamCursor) Peek() tree.Tree {
	if c.EOF() {
		return nil
	}
	return c.items[c.pos]
}

// Peek2 returns the two trees after the current one.
func (c *streamCursor) Peek2() (t1, t2 tree.Tree, ok bool) {
	if c.pos+2 >= len(c.items) {
		return nil, nil, false
	}
	return c.items[c.pos+1], c.items[c.pos+2], true
}

// Bump consumes and returns the current tree.
func (c *streamCursor) Bump() tree.Tree {
	if c.EOF() {
		return nil
	}
	t := c.items[c.pos]
	c.pos++
	return t
}

// Skip advances the cursor by n positions.
func (c *streamCursor) Skip(n int) {
	c.pos += n
}

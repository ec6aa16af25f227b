package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		changed  bool
	}{
		{name: "no carriage returns", input: "a\nb\n", expected: "a\nb\n", changed: false},
		{name: "crlf pairs", input: "a\r\nb\r\n", expected: "a\nb\n", changed: true},
		{name: "lone cr kept", input: "a\rb", expected: "a\rb", changed: false},
		{name: "mixed", input: "a\r\nb\rc\n", expected: "a\nb\rc\n", changed: true},
		{name: "empty", input: "", expected: "", changed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.input))
			if string(got) != tt.expected {
				t.Errorf("normalizeCRLF(%q) = %q, want %q", tt.input, got, tt.expected)
			}
			if changed != tt.changed {
				t.Errorf("normalizeCRLF(%q) changed = %v, want %v", tt.input, changed, tt.changed)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}
	got, had := removeBOM(withBOM)
	if !had || !bytes.Equal(got, []byte("hi")) {
		t.Errorf("removeBOM failed: got %q, had=%v", got, had)
	}

	plain := []byte("hi")
	got, had = removeBOM(plain)
	if had || !bytes.Equal(got, plain) {
		t.Errorf("removeBOM on plain input: got %q, had=%v", got, had)
	}
}

func TestToLineCol(t *testing.T) {
	content := []byte("ab\ncd\n\nef")
	idx := buildLineIndex(content)

	tests := []struct {
		name     string
		off      uint32
		expected LineCol
	}{
		{name: "start of file", off: 0, expected: LineCol{Line: 1, Col: 1}},
		{name: "middle of first line", off: 1, expected: LineCol{Line: 1, Col: 2}},
		{name: "newline terminates its line", off: 2, expected: LineCol{Line: 1, Col: 3}},
		{name: "start of second line", off: 3, expected: LineCol{Line: 2, Col: 1}},
		{name: "empty line", off: 6, expected: LineCol{Line: 3, Col: 1}},
		{name: "last line", off: 8, expected: LineCol{Line: 4, Col: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toLineCol(idx, tt.off)
			if got != tt.expected {
				t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.expected)
			}
		})
	}
}

func TestToLineCol_NoNewlines(t *testing.T) {
	got := toLineCol(nil, 5)
	if got != (LineCol{Line: 1, Col: 6}) {
		t.Errorf("toLineCol without newlines = %+v", got)
	}
}

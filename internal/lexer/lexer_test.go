package lexer_test

import (
	"testing"

	"stamp/internal/diag"
	"stamp/internal/lexer"
	"stamp/internal/source"
	"stamp/internal/token"
)

// makeTestLexer creates a lexer over an in-memory file.
func makeTestLexer(t *testing.T, input string) (*lexer.Lexer, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.stp", []byte(input))
	bag := diag.NewBag(16)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

// collectAllTokens drains the lexer up to and including EOF.
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// expectTokens checks the kind sequence produced for input (EOF excluded).
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, bag := makeTestLexer(t, input)
	tokens := collectAllTokens(lx)
	tokens = tokens[:len(tokens)-1] // drop EOF

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\ndiags: %v",
			len(expected), len(tokens), input, tokens, bag.Items())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: got %v (%q), want %v\ninput: %q",
				i, tok.Kind, tok.Text, expected[i], input)
		}
	}
}

func TestLexer_SeqHeader(t *testing.T) {
	expectTokens(t, "N in 0..3", []token.Kind{
		token.Ident, token.KwIn, token.IntLit, token.DotDot, token.IntLit,
	})
	expectTokens(t, "N in 1..=2", []token.Kind{
		token.Ident, token.KwIn, token.IntLit, token.DotDotEq, token.IntLit,
	})
}

func TestLexer_SectionMarkerAndSplice(t *testing.T) {
	expectTokens(t, "#( item~N, )*", []token.Kind{
		token.Hash, token.LParen, token.Ident, token.Tilde, token.Ident,
		token.Comma, token.RParen, token.Star,
	})
	expectTokens(t, "f~N();", []token.Kind{
		token.Ident, token.Tilde, token.Ident, token.LParen, token.RParen, token.Semicolon,
	})
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"123", token.IntLit},
		{"1_000", token.IntLit},
		{"0xFF", token.IntLit},
		{"0b1010", token.IntLit},
		{"0o755", token.IntLit},
		{"1.5", token.FloatLit},
		{".5", token.FloatLit},
		{"1e-3", token.FloatLit},
		{"1.0e+10", token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectTokens(t, tt.input, []token.Kind{tt.kind})
		})
	}
}

func TestLexer_RangeNotEatenByFloat(t *testing.T) {
	// "0..3" must stay IntLit DotDot IntLit, not a float
	expectTokens(t, "0..3", []token.Kind{token.IntLit, token.DotDot, token.IntLit})
}

func TestLexer_IdentsAndKeywords(t *testing.T) {
	expectTokens(t, "seq in struct enum match _ _private foo123", []token.Kind{
		token.Ident, token.KwIn, token.KwStruct, token.KwEnum, token.KwMatch,
		token.Underscore, token.Ident, token.Ident,
	})
}

func TestLexer_Strings(t *testing.T) {
	lx, bag := makeTestLexer(t, `"hello \"quoted\""`)
	toks := collectAllTokens(lx)
	if toks[0].Kind != token.StringLit {
		t.Errorf("kind = %v, want StringLit", toks[0].Kind)
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}

	lx, bag = makeTestLexer(t, `"unterminated`)
	collectAllTokens(lx)
	if !bag.HasErrors() {
		t.Errorf("expected unterminated string diagnostic")
	}
}

func TestLexer_CommentsAreTrivia(t *testing.T) {
	lx, _ := makeTestLexer(t, "// comment\n/* block */ ident")
	toks := collectAllTokens(lx)
	if len(toks) != 2 { // ident + EOF
		t.Fatalf("expected 2 tokens, got %d: %v", len(toks), toks)
	}
	tok := toks[0]
	if tok.Kind != token.Ident || tok.Text != "ident" {
		t.Fatalf("unexpected token %v %q", tok.Kind, tok.Text)
	}
	kinds := make([]token.TriviaKind, 0, len(tok.Leading))
	for _, tr := range tok.Leading {
		kinds = append(kinds, tr.Kind)
	}
	expected := []token.TriviaKind{
		token.TriviaLineComment, token.TriviaNewline,
		token.TriviaBlockComment, token.TriviaSpace,
	}
	if len(kinds) != len(expected) {
		t.Fatalf("leading trivia = %v, want %v", kinds, expected)
	}
	for i := range kinds {
		if kinds[i] != expected[i] {
			t.Errorf("trivia %d = %v, want %v", i, kinds[i], expected[i])
		}
	}
}

func TestLexer_UnknownChar(t *testing.T) {
	lx, bag := makeTestLexer(t, "$")
	toks := collectAllTokens(lx)
	if toks[0].Kind != token.Invalid {
		t.Errorf("kind = %v, want Invalid", toks[0].Kind)
	}
	if !bag.HasErrors() {
		t.Errorf("expected unknown character diagnostic")
	}
}

func TestLexer_SpansMatchText(t *testing.T) {
	input := "foo ~ bar"
	lx, _ := makeTestLexer(t, input)
	for _, tok := range collectAllTokens(lx) {
		if tok.Kind == token.EOF {
			break
		}
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span slice %q != text %q", got, tok.Text)
		}
	}
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer(t, "a b")
	p := lx.Peek()
	n := lx.Next()
	if p.Text != "a" || n.Text != "a" {
		t.Errorf("Peek/Next mismatch: %q vs %q", p.Text, n.Text)
	}
	if lx.Next().Text != "b" {
		t.Errorf("expected b after consuming a")
	}
}

package lexer

import (
	"stamp/internal/diag"
	"stamp/internal/token"
)

// Supported forms: 0, 123, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10, .5.
// Underscores are allowed between digits. Bad forms are reported and the
// token is finished as Invalid where recovery is impossible.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// leading dot: ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after '.'")
			return emit(token.Invalid)
		}
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		kind = token.FloatLit
		return lx.scanExponent(start, kind)
	}

	// leading 0 with a base prefix
	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			if !lx.scanDigits(func(b byte) bool { return b == '0' || b == '1' }) {
				lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "missing digits after base prefix")
				return emit(token.Invalid)
			}
			return emit(token.IntLit)
		case 'o', 'O':
			lx.cursor.Bump()
			if !lx.scanDigits(func(b byte) bool { return b >= '0' && b <= '7' }) {
				lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "missing digits after base prefix")
				return emit(token.Invalid)
			}
			return emit(token.IntLit)
		case 'x', 'X':
			lx.cursor.Bump()
			if !lx.scanDigits(isHex) {
				lx.errLex(diag.LexBadNumber, lx.cursor.SpanFrom(start), "missing digits after base prefix")
				return emit(token.Invalid)
			}
			return emit(token.IntLit)
		}
	}

	// decimal digits
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// fractional part; make sure ".." stays a range operator
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		kind = token.FloatLit
	}

	return lx.scanExponent(start, kind)
}

// scanDigits consumes at least one digit accepted by ok (underscores
// allowed). Returns false when no digit was consumed.
func (lx *Lexer) scanDigits(ok func(byte) bool) bool {
	seen := false
	for {
		b := lx.cursor.Peek()
		if ok(b) {
			seen = true
			lx.cursor.Bump()
			continue
		}
		if b == '_' {
			lx.cursor.Bump()
			continue
		}
		return seen
	}
}

// scanExponent finishes a numeric token, consuming an optional [eE][+-]digits
// suffix which forces FloatLit.
func (lx *Lexer) scanExponent(start Mark, kind token.Kind) token.Token {
	b := lx.cursor.Peek()
	if b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// "1e" without digits: back off, let 'e' scan as an identifier
			lx.cursor.Reset(mark)
		} else {
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			kind = token.FloatLit
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

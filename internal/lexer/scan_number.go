package lexer

import (
	"enumclass/internal/diag"
	"enumclass/internal/token"
)

// scanNumber accepts 123, 1_000, 0x1F, 0b101, 1.5 and 1e-3. A dot followed
// by another dot or an identifier ends the number so that "1..2" and
// "x.1.y" keep their dots.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok {
			switch b1 {
			case 'x', 'X':
				return lx.scanRadix(start, isHex)
			case 'b', 'B':
				return lx.scanRadix(start, func(b byte) bool { return b == '0' || b == '1' })
			case 'o', 'O':
				return lx.scanRadix(start, func(b byte) bool { return b >= '0' && b <= '7' })
			}
		}
	}

	lx.digits()
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.digits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.digits()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) digits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanRadix(start Mark, ok func(byte) bool) token.Token {
	lx.cursor.Bump()
	lx.cursor.Bump()
	n := 0
	for ok(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		if lx.cursor.Peek() != '_' {
			n++
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if n == 0 {
		lx.errLex(diag.LexBadNumber, sp, "expected digits after radix prefix")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

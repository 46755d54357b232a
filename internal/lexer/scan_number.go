package lexer

import (
	"esfront/internal/diag"
	"esfront/internal/token"
)

// scanNumber scans every numeric literal form into one NumericLit token and
// records the sub-format in Token.NumFormat:
//
//	123  1_000  1.5  .5  1e10  0x1F  0o17  0b101  017  10n
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	var format token.NumFormat
	bad := ""

	digits := func(valid func(byte) bool) int {
		n := 0
		lastSep := false
		for {
			b := lx.cursor.Peek()
			if b == '_' {
				format |= token.NumSeparators
				if n == 0 || lastSep {
					bad = "numeric separator must be between digits"
				}
				lastSep = true
				lx.cursor.Bump()
				continue
			}
			if !valid(b) {
				break
			}
			lastSep = false
			n++
			lx.cursor.Bump()
		}
		if lastSep {
			bad = "numeric separator must be between digits"
		}
		return n
	}

	b0, b1, _ := lx.cursor.Peek2()
	switch {
	case b0 == '0' && (b1 == 'x' || b1 == 'X'):
		lx.cursor.Off += 2
		format |= token.NumHex
		if digits(isHex) == 0 {
			bad = "hexadecimal digit expected"
		}
	case b0 == '0' && (b1 == 'o' || b1 == 'O'):
		lx.cursor.Off += 2
		format |= token.NumOctal
		if digits(isOct) == 0 {
			bad = "octal digit expected"
		}
	case b0 == '0' && (b1 == 'b' || b1 == 'B'):
		lx.cursor.Off += 2
		format |= token.NumBinary
		if digits(isBin) == 0 {
			bad = "binary digit expected"
		}
	case b0 == '0' && isDec(b1):
		lx.cursor.Bump()
		allOctal := true
		for isDec(lx.cursor.Peek()) {
			if !isOct(lx.cursor.Peek()) {
				allOctal = false
			}
			lx.cursor.Bump()
		}
		if lx.cursor.Peek() == '_' {
			bad = "numeric separators are not allowed after a leading zero"
			digits(isDec)
		}
		if allOctal {
			format |= token.NumLegacyOctal
		} else {
			lx.scanFraction(&format, digits, &bad)
		}
	default:
		if b0 != '.' {
			digits(isDec)
		}
		lx.scanFraction(&format, digits, &bad)
	}

	if lx.cursor.Peek() == 'n' {
		lx.cursor.Bump()
		format |= token.NumBigInt
		if format&(token.NumFloat|token.NumExponent|token.NumLegacyOctal) != 0 {
			bad = "a bigint literal must be an integer"
		}
	}

	// An identifier may not start right after a number (3in, 1_a).
	if r, sz := lx.peekRune(); sz > 0 && (isIdentStartRune(r) || isDec(lx.cursor.Peek())) {
		for {
			r, sz = lx.peekRune()
			if sz == 0 || !isIdentContinueRune(r) {
				break
			}
			lx.bumpRune()
		}
		bad = "an identifier cannot immediately follow a numeric literal"
	}

	sp := lx.cursor.SpanFrom(start)
	if bad != "" {
		lx.errLex(diag.LexBadNumber, sp, bad)
	}
	return token.Token{Kind: token.NumericLit, Span: sp, Text: lx.text(sp), NumFormat: format}
}

func (lx *Lexer) scanFraction(format *token.NumFormat, digits func(func(byte) bool) int, bad *string) {
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		*format |= token.NumFloat
		digits(isDec)
	}
	b := lx.cursor.Peek()
	if b != 'e' && b != 'E' {
		return
	}
	lx.cursor.Bump()
	*format |= token.NumExponent
	if s := lx.cursor.Peek(); s == '+' || s == '-' {
		lx.cursor.Bump()
	}
	if digits(isDec) == 0 {
		*bad = "exponent digits expected"
	}
}

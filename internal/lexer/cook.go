package lexer

import (
	"strings"
	"unicode/utf8"
)

// CookString returns the value of a string literal given its raw text with
// quotes. ok is false when the literal is unterminated or holds a malformed
// escape; the value is then best effort.
func CookString(raw string) (value string, ok bool) {
	if len(raw) < 2 || (raw[0] != '"' && raw[0] != '\'') || raw[len(raw)-1] != raw[0] {
		if len(raw) > 0 {
			raw = raw[1:]
		}
		v, _ := cook(raw, false)
		return v, false
	}
	return cook(raw[1:len(raw)-1], false)
}

// CookTemplate returns the cooked value of one template chunk given its raw
// text with the delimiters (`, }, ${) stripped.
func CookTemplate(raw string) (string, bool) {
	return cook(raw, true)
}

func cook(s string, template bool) (string, bool) {
	if !strings.Contains(s, "\\") && !strings.Contains(s, "\r") {
		return s, true
	}
	var b strings.Builder
	b.Grow(len(s))
	ok := true
	for i := 0; i < len(s); {
		c := s[i]
		if c == '\r' {
			b.WriteByte('\n')
			i++
			if i < len(s) && s[i] == '\n' {
				i++
			}
			continue
		}
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		e := s[i]
		i++
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '\n':
		case '\r':
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case 'x':
			if i+2 <= len(s) && isHex(s[i]) && isHex(s[i+1]) {
				b.WriteRune(hexVal(s[i])*16 + hexVal(s[i+1]))
				i += 2
			} else {
				ok = false
			}
		case 'u':
			r, n := cookUnicode(s[i:])
			if n == 0 {
				ok = false
				continue
			}
			b.WriteRune(r)
			i += n
		case '0', '1', '2', '3', '4', '5', '6', '7':
			if template && !(e == '0' && (i >= len(s) || !isDec(s[i]))) {
				ok = false
				continue
			}
			v := rune(e - '0')
			for n := 0; n < 2 && i < len(s) && isOct(s[i]) && v*8+rune(s[i]-'0') <= 0xFF; n++ {
				v = v*8 + rune(s[i]-'0')
				i++
			}
			b.WriteRune(v)
		default:
			i--
			r, sz := utf8.DecodeRuneInString(s[i:])
			if r == 0x2028 || r == 0x2029 {
				i += sz
				continue
			}
			b.WriteRune(r)
			i += sz
		}
	}
	return b.String(), ok
}

func cookUnicode(s string) (rune, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0
		}
		var r rune
		for i := 1; i < end; i++ {
			if !isHex(s[i]) {
				return 0, 0
			}
			r = r*16 + hexVal(s[i])
			if r > 0x10FFFF {
				return 0, 0
			}
		}
		return r, end + 1
	}
	if len(s) < 4 {
		return 0, 0
	}
	var r rune
	for i := range 4 {
		if !isHex(s[i]) {
			return 0, 0
		}
		r = r*16 + hexVal(s[i])
	}
	return r, 4
}

package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var escapes = map[byte]string{
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\v': `\v`,
	'\f': `\f`,
	'\\': `\\`,
}

// Quote spells s as a literal the lexer reads back to the same bytes.
func Quote(s string, q byte) string {
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(s); {
		c := s[i]
		if e, ok := escapes[c]; ok {
			b.WriteString(e)
			i++
			continue
		}
		if c == q {
			b.WriteByte('\\')
			b.WriteByte(c)
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 || !unicode.IsPrint(r) {
			fmt.Fprintf(&b, `\x%02x`, c)
			i++
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	b.WriteByte(q)
	return b.String()
}

package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/pontaoski/coral/diag"
)

// suggestEscape spells r as the shortest escape that can hold it.
func suggestEscape(r rune) string {
	switch {
	case r < 0x100:
		return fmt.Sprintf(`\x%02x`, r)
	case r < 0x10000:
		return fmt.Sprintf(`\u%04x`, r)
	}
	return fmt.Sprintf(`\U%08x`, r)
}

var simpleEscapes = map[rune]byte{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'f':  '\f',
	'0':  0,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

func isHex(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}

// hex reads n hex digits. A bad digit is reported and counts as zero.
func (s *scanner) hex(n int, quote rune) (uint32, bool) {
	var v uint32
	for i := 0; i < n; i++ {
		r, _, ok := s.peek(s.off)
		if !ok {
			if s.eof() {
				s.report(s.pos, diag.Error, "escape sequence truncated by end of input")
				return v, true
			}
			s.next()
			return v, false
		}

		v <<= 4
		if !isHex(r) {
			s.report(s.pos, diag.Error, "invalid hex digit %q in escape sequence", r)
			if r != quote && r != '\n' {
				s.next()
			}
			continue
		}
		s.next()
		d, _ := digitValue(r)
		v |= uint32(d)
	}
	return v, true
}

// escape decodes one escape sequence; the backslash has not been consumed.
func (s *scanner) escape(quote rune) ([]byte, bool) {
	s.next()
	r, loc, ok := s.next()
	if !ok {
		if s.aborted {
			return nil, false
		}
		s.report(loc, diag.Error, "escape sequence truncated by end of input")
		return nil, true
	}

	if b, ok := simpleEscapes[r]; ok {
		return []byte{b}, true
	}

	var buf [utf8.UTFMax]byte
	switch r {
	case 'x':
		v, ok := s.hex(2, quote)
		return []byte{byte(v)}, ok
	case 'u', 'U':
		n := 4
		if r == 'U' {
			n = 8
		}
		v, ok := s.hex(n, quote)
		if v > utf8.MaxRune {
			s.report(loc, diag.Error, "escape \\%c%X is outside the Unicode range", r, v)
		}
		size := utf8.EncodeRune(buf[:], rune(v))
		return buf[:size], ok
	}

	s.report(loc, diag.Error, "unknown escape sequence \\%c", r)
	size := utf8.EncodeRune(buf[:], r)
	return buf[:size], true
}

// body scans literal content up to the closing quote. It returns the decoded
// bytes, the byte length of each decoded unit and whether the quote was found.
func (s *scanner) body(quote rune, what string) (content []byte, units []int, closed bool) {
	for !s.aborted {
		r, _, ok := s.peek(s.off)
		if !ok {
			if s.eof() {
				return content, units, false
			}
			s.next()
			return content, units, false
		}

		switch r {
		case quote:
			s.next()
			return content, units, true
		case '\\':
			b, ok := s.escape(quote)
			if !ok {
				return content, units, false
			}
			content = append(content, b...)
			units = append(units, len(b))
			continue
		case '\n':
			s.report(s.pos, diag.Error, "raw newline in %s literal, use %s instead", what, suggestEscape(r))
		}

		from := s.off
		s.next()
		content = append(content, s.src[from:s.off]...)
		units = append(units, s.off-from)
	}
	return content, units, false
}

func (s *scanner) char() {
	_, loc, _ := s.next()
	content, units, closed := s.body('\'', "character")
	if s.aborted {
		return
	}
	if !closed {
		s.report(loc, diag.Error, "unterminated character literal")
	}

	switch {
	case len(units) == 0:
		s.report(loc, diag.Warning, "empty character literal")
	case len(units) > 1:
		s.report(loc, diag.Error, "character literal holds %d characters, expected one", len(units))
		content = content[:units[0]]
	}
	s.emit(loc, string(MarkChar)+string(content))
}

func (s *scanner) string() {
	_, loc, _ := s.next()
	content, _, closed := s.body('"', "string")
	if s.aborted {
		return
	}
	if !closed {
		s.report(loc, diag.Error, "unterminated string literal")
	}
	s.emit(loc, string(MarkString)+string(content))
}

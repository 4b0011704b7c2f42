package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pontaoski/coral/diag"
	"github.com/pontaoski/coral/source"
)

// maxExpansionDepth bounds directives whose output calls themselves again.
const maxExpansionDepth = 64

const reservedDefine = "define"

func isNameChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanName reads a directive name starting at off.
func scanName(text string, off int) (string, int) {
	end := off
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if r == utf8.RuneError && size <= 1 || !isNameChar(r) {
			break
		}
		end += size
	}
	return text[off:end], end
}

// scanArgs reads a parenthesised argument list starting at the '(' at off.
// Parentheses inside string and character literals do not count.
func scanArgs(text string, off int) (args string, end int, closed bool) {
	depth := 0
	var quote byte
	for i := off; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return text[off+1 : i], i + 1, true
			}
		}
	}
	return text[off+1:], len(text), false
}

type call struct {
	name    string
	args    string
	hasArgs bool
	end     int
}

// parseCall reads the name and optional arguments of a directive call whose
// '@' is at off.
func parseCall(text string, off int) (c call, closed bool) {
	c.name, c.end = scanName(text, off+1)
	if c.end < len(text) && text[c.end] == '(' {
		c.hasArgs = true
		c.args, c.end, closed = scanArgs(text, c.end)
		return c, closed
	}
	return c, true
}

func (c call) text() string {
	if c.hasArgs {
		return "@" + c.name + "(" + c.args + ")"
	}
	return "@" + c.name
}

// apply expands the arguments of c and runs its directive. Unknown names
// are returned unchanged with expanded set to false.
func (s *scanner) apply(c call, loc source.Location, depth int) (out string, expanded bool) {
	if depth > maxExpansionDepth {
		s.report(loc, diag.Critical, "directive @%s expands more than %d levels deep", c.name, maxExpansionDepth)
		return "", false
	}
	if c.name == reservedDefine {
		s.report(loc, diag.Critical, "@%s is reserved for macro definitions, which are not supported yet", reservedDefine)
		return "", false
	}

	if c.hasArgs {
		c.args = s.expandText(c.args, loc, depth+1)
		if s.aborted {
			return "", false
		}
	}

	fn, ok := s.l.lookup(c.name)
	if !ok {
		return c.text(), false
	}
	return fn(c.args, diag.Bind(s.l.h, loc)), true
}

// expandText replaces every directive call in text with its expansion.
func (s *scanner) expandText(text string, loc source.Location, depth int) string {
	var out strings.Builder
	var quote byte

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(text) {
				out.WriteString(text[i : i+2])
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '@':
			call, closed := parseCall(text, i)
			if call.name == "" {
				break
			}
			if !closed {
				s.report(loc, diag.Error, "unterminated arguments to @%s", call.name)
			}
			repl, _ := s.apply(call, loc, depth)
			if s.aborted {
				return ""
			}
			out.WriteString(repl)
			i = call.end
			continue
		}
		out.WriteByte(c)
		i++
	}
	return out.String()
}

// macro handles a directive call in the source. Its replacement is rescanned
// and every resulting token carries the location of the '@'.
func (s *scanner) macro() {
	loc := s.pos
	call, closed := parseCall(s.src, s.off)
	if call.name == "" {
		s.next()
		s.report(loc, diag.Error, "expected a directive name after '@'")
		return
	}

	s.skipTo(call.end)
	if s.aborted {
		return
	}
	if !closed {
		s.report(loc, diag.Error, "unterminated arguments to @%s", call.name)
		return
	}

	repl, expanded := s.apply(call, loc, s.depth)
	if s.aborted {
		return
	}
	if !expanded {
		s.emit(loc, repl)
		return
	}

	sub := &scanner{l: s.l, src: repl, pos: loc, fixed: true, depth: s.depth + 1}
	sub.run()
	s.toks = append(s.toks, sub.toks...)
	if sub.aborted {
		s.aborted = true
	}
}

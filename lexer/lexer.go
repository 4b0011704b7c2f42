// Package lexer turns source text into a materialized token stream,
// expanding @directive calls inline as it goes.
package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/pontaoski/coral/diag"
	"github.com/pontaoski/coral/intern"
	"github.com/pontaoski/coral/source"
)

type Flags uint

const (
	// WarnWhitespace reports non-ASCII spacing characters.
	WarnWhitespace Flags = 1 << iota
)

// Directive computes the replacement text of @name(args). Problems are
// reported through sink, which is bound to the call's location.
type Directive func(args string, sink diag.Sink) string

type Directives map[intern.Str]Directive

// Register binds name to fn, replacing any earlier binding.
func (d Directives) Register(pool *intern.Pool, name string, fn Directive) {
	d[pool.Intern(name)] = fn
}

type Lexer struct {
	pool  *intern.Pool
	dirs  Directives
	h     diag.Handler
	flags Flags
}

func NewLexer(pool *intern.Pool, dirs Directives, h diag.Handler, flags Flags) *Lexer {
	if dirs == nil {
		dirs = Directives{}
	}
	return &Lexer{pool: pool, dirs: dirs, h: h, flags: flags}
}

func (l *Lexer) lookup(name string) (Directive, bool) {
	key, ok := l.pool.Lookup(name)
	if !ok {
		return nil, false
	}
	fn, ok := l.dirs[key]
	return fn, ok
}

// Tokenize scans src starting at start. Recoverable problems are reported and
// scanning continues; a critical diagnostic stops it and the tokens produced
// so far are returned.
func (l *Lexer) Tokenize(src string, start source.Location) []Token {
	s := &scanner{l: l, src: src, pos: start}
	s.run()
	return s.toks
}

type scanner struct {
	l   *Lexer
	src string
	off int
	pos source.Location

	// fixed freezes every token location at pos, used when rescanning the
	// replacement text of a directive.
	fixed bool
	depth int

	toks   []Token
	cur    []byte
	curLoc source.Location
	// glued is set while the last token is an operator that the next
	// scalar may still extend.
	glued   bool
	aborted bool
}

func (s *scanner) report(loc source.Location, sev diag.Severity, format string, args ...interface{}) {
	s.l.h.Report(loc, fmt.Sprintf(format, args...), sev)
	if sev == diag.Critical {
		s.aborted = true
	}
}

// peek decodes the scalar at off without consuming it. ok is false at the
// end of input and for malformed encodings.
func (s *scanner) peek(off int) (r rune, size int, ok bool) {
	if off >= len(s.src) {
		return 0, 0, false
	}
	r, size = utf8.DecodeRuneInString(s.src[off:])
	if r == utf8.RuneError && size <= 1 {
		return r, size, false
	}
	return r, size, true
}

func (s *scanner) eof() bool {
	return s.off >= len(s.src)
}

// next consumes one scalar. Malformed encodings are critical.
func (s *scanner) next() (rune, source.Location, bool) {
	loc := s.pos
	r, size, ok := s.peek(s.off)
	if !ok {
		if !s.eof() {
			s.report(loc, diag.Critical, "invalid UTF-8 encoding at byte offset %d", s.off)
		}
		return 0, loc, false
	}
	s.off += size
	if !s.fixed {
		s.pos = s.pos.Advance(r)
	}
	return r, loc, true
}

// skipTo consumes everything up to end, keeping the location current.
func (s *scanner) skipTo(end int) {
	for s.off < end && !s.aborted {
		if _, _, ok := s.next(); !ok {
			return
		}
	}
}

func (s *scanner) emit(loc source.Location, payload string) {
	tok := Token{Location: loc, Payload: payload}
	switch tok.Kind() {
	case Ident, Punct:
		tok.Name = s.l.pool.Intern(payload)
	}
	s.toks = append(s.toks, tok)
}

func (s *scanner) flush() {
	if len(s.cur) == 0 {
		return
	}
	s.emit(s.curLoc, string(s.cur))
	s.cur = s.cur[:0]
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isStandalone reports the characters that always form a token on their own.
func isStandalone(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', ':', ';', ',', '*', '/', '%', '!':
		return true
	}
	return false
}

// isRepeatable reports the operator characters that double up: ++, <<, &&...
func isRepeatable(r rune) bool {
	switch r {
	case '+', '-', '&', '|', '^', '<', '>':
		return true
	}
	return false
}

func isOperator(r rune) bool {
	return isRepeatable(r) || r == '=' || r == '~'
}

// assignBases are the operator spellings a following '=' merges into.
var assignBases = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"&": true, "|": true, "^": true, "<": true, ">": true,
	"<<": true, ">>": true, "=": true, "!": true,
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// isUnicodeSpace reports the non-ASCII separators that end a token.
func isUnicodeSpace(r rune) bool {
	switch {
	case r == 0x85, r == 0xA0, r == 0x1680:
		return true
	case r >= 0x2000 && r <= 0x200A:
		return true
	case r == 0x2028, r == 0x2029, r == 0x202F, r == 0x205F, r == 0x3000, r == 0xFEFF:
		return true
	}
	return false
}

func (s *scanner) run() {
	for !s.eof() && !s.aborted {
		r, size, ok := s.peek(s.off)
		if !ok {
			s.next()
			break
		}

		switch {
		case r == '@':
			s.flush()
			s.macro()
			s.glued = false
		case len(s.cur) == 0 && (isDigit(r) || r == '.' && s.digitAt(s.off+size)):
			s.flush()
			s.number()
			s.glued = false
		case r == '\'':
			s.flush()
			s.char()
			s.glued = false
		case r == '"':
			s.flush()
			s.string()
			s.glued = false
		case isOperator(r):
			s.flush()
			_, loc, _ := s.next()
			s.operator(r, loc)
		case isStandalone(r):
			s.flush()
			_, loc, _ := s.next()
			s.emit(loc, string(r))
			s.glued = true
		case isASCIISpace(r) || isUnicodeSpace(r):
			s.flush()
			_, loc, _ := s.next()
			s.glued = false
			if r >= utf8.RuneSelf && s.l.flags&WarnWhitespace != 0 {
				s.report(loc, diag.Warning, "unusual whitespace character U+%04X", r)
			}
		case r < ' ' || r == 0x7F:
			s.flush()
			_, loc, _ := s.next()
			s.glued = false
			s.report(loc, diag.Error, "unexpected control character U+%04X", r)
		default:
			_, loc, _ := s.next()
			if len(s.cur) == 0 {
				s.curLoc = loc
			}
			s.cur = append(s.cur, s.src[s.off-size:s.off]...)
			s.glued = false
		}
	}
	s.flush()
}

func (s *scanner) digitAt(off int) bool {
	r, _, ok := s.peek(off)
	return ok && isDigit(r)
}

func (s *scanner) operator(r rune, loc source.Location) {
	if s.glued && len(s.toks) > 0 {
		last := &s.toks[len(s.toks)-1]
		switch {
		case r != '=' && isRepeatable(r) && last.Payload == string(r):
			last.Payload += string(r)
			last.Name = s.l.pool.Intern(last.Payload)
			return
		case r == '=' && assignBases[last.Payload]:
			last.Payload += "="
			last.Name = s.l.pool.Intern(last.Payload)
			s.glued = false
			return
		}
	}

	s.emit(loc, string(r))
	s.glued = true
}

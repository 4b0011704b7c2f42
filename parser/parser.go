// Package parser builds the syntax tree of a source file from its token
// stream.
package parser

import (
	"strings"

	"github.com/pontaoski/coral/ast"
	"github.com/pontaoski/coral/diag"
	"github.com/pontaoski/coral/errors"
	"github.com/pontaoski/coral/lexer"
	"github.com/pontaoski/coral/source"
)

type Parser struct {
	toks []lexer.Token
	pos  int
	h    diag.Handler

	// fatal is set once a critical diagnostic has been reported; nothing
	// after it is parsed.
	fatal bool
}

func NewParser(toks []lexer.Token, h diag.Handler) *Parser {
	return &Parser{toks: toks, h: h}
}

// Parse parses every top-level declaration in toks. Recoverable problems
// are reported and the offending declaration is skipped; after a critical
// problem the declarations parsed so far are returned.
func Parse(toks []lexer.Token, h diag.Handler) []ast.TopLevel {
	tls, _ := NewParser(toks, h).toplevels(false)
	return tls
}

func (p *Parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.toks) {
		return lexer.Token{}, false
	}
	return p.toks[p.pos], true
}

// peekIs reports whether the next token is one of kinds.
func (p *Parser) peekIs(kinds ...string) bool {
	tok, ok := p.peek()
	if !ok {
		return false
	}
	for _, k := range kinds {
		if tok.Is(k) {
			return true
		}
	}
	return false
}

func (p *Parser) next() lexer.Token {
	tok, _ := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

// here is the location of the next token, or of the last one at the end of
// input.
func (p *Parser) here() source.Location {
	if tok, ok := p.peek(); ok {
		return tok.Location
	}
	if len(p.toks) > 0 {
		return p.toks[len(p.toks)-1].Location
	}
	return source.Location{}
}

func describe(tok lexer.Token) string {
	switch tok.Kind() {
	case lexer.Int, lexer.Float:
		return "number " + tok.String()
	case lexer.String, lexer.Char:
		return "literal " + tok.String()
	case lexer.Macro:
		return "directive " + tok.Payload
	}
	return "'" + tok.Payload + "'"
}

func (p *Parser) got() string {
	tok, ok := p.peek()
	if !ok {
		return "end of file"
	}
	return describe(tok)
}

func (p *Parser) errorf(loc source.Location, err error) {
	p.h.Report(loc, err.Error(), diag.Error)
}

func (p *Parser) critical(loc source.Location, err error) {
	p.h.Report(loc, err.Error(), diag.Critical)
	p.fatal = true
}

// expect consumes the next token if it is one of kinds and reports an
// error otherwise.
func (p *Parser) expect(kinds ...string) (lexer.Token, bool) {
	if p.peekIs(kinds...) {
		return p.next(), true
	}
	p.errorf(p.here(), errors.ExpectedOneOf{Expected: kinds, Got: p.got()})
	return lexer.Token{}, false
}

// name consumes a plain, undotted identifier.
func (p *Parser) name() (lexer.Token, bool) {
	tok, ok := p.peek()
	if ok && tok.Kind() == lexer.Ident && !strings.Contains(tok.Payload, ".") {
		return p.next(), true
	}
	p.errorf(p.here(), errors.Expected{What: "a name", Got: p.got()})
	return lexer.Token{}, false
}

// sync skips to just past the next ';' outside brackets, or to the '}'
// closing the enclosing module.
func (p *Parser) sync() {
	depth := 0
	for {
		tok, ok := p.peek()
		if !ok {
			return
		}
		switch {
		case tok.Is("("), tok.Is("["), tok.Is("{"):
			depth++
		case tok.Is(")"), tok.Is("]"), tok.Is("}"):
			if depth == 0 && tok.Is("}") {
				return
			}
			if depth > 0 {
				depth--
			}
		case tok.Is(";") && depth == 0:
			p.next()
			return
		}
		p.next()
	}
}

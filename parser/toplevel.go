package parser

import (
	"strings"

	"github.com/pontaoski/coral/ast"
	"github.com/pontaoski/coral/errors"
	"github.com/pontaoski/coral/lexer"
)

// toplevels parses declarations up to the end of input, or up to and
// including the '}' of a module body when inModule is set. closed reports
// whether that brace was found.
func (p *Parser) toplevels(inModule bool) (tls []ast.TopLevel, closed bool) {
	for !p.fatal {
		tok, ok := p.peek()
		if !ok {
			return tls, false
		}
		if inModule && tok.Is("}") {
			p.next()
			return tls, true
		}
		if tok.Is(";") {
			p.next()
			continue
		}

		if tl, ok := p.toplevel(); ok {
			tls = append(tls, tl)
		}
	}
	return tls, false
}

func (p *Parser) toplevel() (ast.TopLevel, bool) {
	tok := p.next()
	switch {
	case tok.Is("module"):
		return p.parseModule(tok)
	case tok.Is("import"):
		return p.parseImport(tok)
	case tok.Is("let"):
		return p.parseLet(tok)
	case tok.Is("fn"):
		return p.parseFn(tok)
	}

	p.critical(tok.Location, errors.Unsupported{Construct: describe(tok)})
	return nil, false
}

func (p *Parser) parseModule(kw lexer.Token) (ast.TopLevel, bool) {
	name, ok := p.name()
	if !ok {
		p.sync()
		return nil, false
	}
	if _, ok := p.expect("{"); !ok {
		p.sync()
		return nil, false
	}

	body, closed := p.toplevels(true)
	if !closed && !p.fatal {
		p.critical(kw.Location, errors.Unterminated{What: "module body"})
	}
	if p.peekIs(";") {
		p.next()
	}
	return ast.Module{Pos: kw.Location, Name: name.Name, Body: body}, true
}

func (p *Parser) parseImport(kw lexer.Token) (ast.TopLevel, bool) {
	tok, ok := p.peek()
	if !ok || tok.Kind() != lexer.Ident {
		p.errorf(p.here(), errors.Expected{What: "a module path", Got: p.got()})
		p.sync()
		return nil, false
	}
	p.next()
	p.expect(";")
	return ast.Import{Pos: kw.Location, Path: tok.Payload}, true
}

func (p *Parser) parseLet(kw lexer.Token) (ast.TopLevel, bool) {
	name, ok := p.name()
	if ok {
		_, ok = p.expect(":")
	}
	var typ string
	if ok {
		typ, ok = p.parseType("=")
	}
	if ok {
		_, ok = p.expect("=")
	}
	var value ast.Expr
	if ok {
		value, ok = p.parseExpr()
	}
	if !ok {
		p.sync()
		return nil, false
	}

	p.expect(";")
	return ast.Let{Pos: kw.Location, Name: name.Name, Type: typ, Value: value}, true
}

func (p *Parser) parseFn(kw lexer.Token) (ast.TopLevel, bool) {
	name, ok := p.name()
	if ok {
		_, ok = p.expect("(")
	}

	var params []string
	for ok && !p.peekIs(")") {
		var typ string
		if typ, ok = p.parseType(",", ")"); !ok {
			break
		}
		params = append(params, typ)
		if !p.peekIs(",") {
			break
		}
		p.next()
	}
	if ok {
		_, ok = p.expect(",", ")")
	}

	var ret string
	if ok && p.peekIs(":") {
		p.next()
		ret, ok = p.parseType(";")
	}
	if !ok {
		p.sync()
		return nil, false
	}

	p.expect(";")
	return ast.Fn{Pos: kw.Location, Name: name.Name, Params: params, Returns: ret}, true
}

// parseType collects the tokens of a type up to one of stops or a ';'
// outside brackets and returns their canonical spelling.
func (p *Parser) parseType(stops ...string) (string, bool) {
	var b strings.Builder
	depth := 0
	for {
		tok, ok := p.peek()
		if !ok || depth == 0 && (tok.Is(";") || p.peekIs(stops...)) {
			break
		}
		switch {
		case tok.Is("["), tok.Is("("), tok.Is("{"):
			depth++
		case tok.Is("]"), tok.Is(")"), tok.Is("}"):
			depth--
		}
		if depth < 0 {
			break
		}

		b.WriteString(tok.String())
		p.next()
	}

	if b.Len() == 0 {
		p.errorf(p.here(), errors.Expected{What: "a type", Got: p.got()})
		return "", false
	}
	return b.String(), true
}

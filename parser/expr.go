package parser

import (
	"github.com/pontaoski/coral/ast"
	"github.com/pontaoski/coral/errors"
	"github.com/pontaoski/coral/lexer"
)

// precedence is the binding power of a binary operator, higher binding
// tighter, or 0 for anything else. All binary operators are left
// associative.
func precedence(op string) int {
	switch op {
	case "||":
		return 1
	case "&&":
		return 2
	case "|":
		return 3
	case "^":
		return 4
	case "&":
		return 5
	case "==", "!=":
		return 6
	case "<", ">", "<=", ">=":
		return 7
	case "<<", ">>":
		return 8
	case "+", "-":
		return 9
	case "*", "/", "%":
		return 10
	}
	return 0
}

var prefix = map[string]bool{
	"-": true, "+": true, "!": true, "~": true,
	"*": true, "&": true, "++": true, "--": true,
}

func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinary(1)
}

func (p *Parser) parseBinary(minPrec int) (ast.Expr, bool) {
	l, ok := p.parseUnary()
	if !ok {
		return nil, false
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind() != lexer.Punct {
			return l, true
		}
		prec := precedence(tok.Payload)
		if prec == 0 || prec < minPrec {
			return l, true
		}
		p.next()

		r, ok := p.parseBinary(prec + 1)
		if !ok {
			return nil, false
		}
		l = ast.Binary{Pos: ast.PosOf(l), Op: tok.Payload, L: l, R: r}
	}
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	tok, ok := p.peek()
	if ok && tok.Kind() == lexer.Punct && prefix[tok.Payload] {
		p.next()
		x, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return ast.Unary{Pos: tok.Location, Op: tok.Payload, X: x}, true
	}

	x, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	return p.parsePostfix(x)
}

func (p *Parser) parsePostfix(x ast.Expr) (ast.Expr, bool) {
	for {
		switch {
		case p.peekIs("("):
			p.next()
			args, ok := p.parseList(")")
			if !ok {
				return nil, false
			}
			x = ast.Call{Pos: ast.PosOf(x), Fn: x, Args: args}
		case p.peekIs("["):
			p.next()
			index, ok := p.parseList("]")
			if !ok {
				return nil, false
			}
			x = ast.Subscript{Pos: ast.PosOf(x), X: x, Index: index}
		default:
			return x, true
		}
	}
}

// parseList parses comma separated expressions up to and including close.
func (p *Parser) parseList(close string) ([]ast.Expr, bool) {
	var list []ast.Expr
	if p.peekIs(close) {
		p.next()
		return list, true
	}
	for {
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		list = append(list, e)
		if p.peekIs(",") {
			p.next()
			continue
		}
		if _, ok := p.expect(",", close); !ok {
			return nil, false
		}
		return list, true
	}
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	tok, ok := p.peek()
	if !ok {
		p.errorf(p.here(), errors.Expected{What: "an expression", Got: p.got()})
		return nil, false
	}

	switch tok.Kind() {
	case lexer.Int:
		p.next()
		v, err := lexer.DecodeInt(tok.Payload)
		if err != nil {
			p.errorf(tok.Location, err)
			return nil, false
		}
		return ast.IntLit{Pos: tok.Location, Value: v}, true
	case lexer.Float:
		p.next()
		v, err := lexer.DecodeFloat(tok.Payload)
		if err != nil {
			p.errorf(tok.Location, err)
			return nil, false
		}
		return ast.FloatLit{Pos: tok.Location, Value: v}, true
	case lexer.String, lexer.Char:
		p.next()
		v, _ := lexer.DecodeText(tok.Payload)
		if tok.Kind() == lexer.Char {
			return ast.CharLit{Pos: tok.Location, Value: v}, true
		}
		return ast.StrLit{Pos: tok.Location, Value: v}, true
	case lexer.Ident:
		p.next()
		return ast.Ref{Pos: tok.Location, Name: tok.Payload}, true
	case lexer.Macro:
		p.next()
		p.errorf(tok.Location, errors.Unresolved{Path: tok.Payload, What: "directive"})
		return nil, false
	}

	if tok.Is("(") {
		p.next()
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(")"); !ok {
			return nil, false
		}
		return e, true
	}

	p.errorf(tok.Location, errors.Expected{What: "an expression", Got: describe(tok)})
	return nil, false
}

package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pontaoski/coral/lexer"
)

// Print writes tls back out as source, one declaration per line, with
// module bodies indented by a tab.
func Print(w io.Writer, tls []TopLevel) error {
	var b strings.Builder
	for _, tl := range tls {
		writeTopLevel(&b, tl, 0)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (v Module) String() string {
	var b strings.Builder
	writeTopLevel(&b, v, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func (v Import) String() string {
	return fmt.Sprintf("import %s;", v.Path)
}

func (v Let) String() string {
	return fmt.Sprintf("let %s: %s = %s;", v.Name, v.Type, Format(v.Value))
}

func (v Fn) String() string {
	s := fmt.Sprintf("fn %s(%s)", v.Name, strings.Join(v.Params, ", "))
	if v.Returns != "" {
		s += ": " + v.Returns
	}
	return s + ";"
}

func writeTopLevel(b *strings.Builder, tl TopLevel, depth int) {
	indent := strings.Repeat("\t", depth)
	switch v := tl.(type) {
	case Module:
		fmt.Fprintf(b, "%smodule %s {\n", indent, v.Name)
		for _, child := range v.Body {
			writeTopLevel(b, child, depth+1)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case fmt.Stringer:
		fmt.Fprintf(b, "%s%s\n", indent, v)
	}
}

// Format renders an expression. Binary expressions are always
// parenthesized so the output does not depend on precedence, and so are
// unary operands of unary operators, which would otherwise lex as one
// operator.
func Format(e Expr) string {
	switch v := e.(type) {
	case IntLit:
		return v.Value.String()
	case FloatLit:
		s := strconv.FormatFloat(v.Value, 'f', -1, 64)
		if !strings.ContainsAny(s, ".nN") {
			s += ".0"
		}
		return s
	case StrLit:
		return lexer.Quote(v.Value, lexer.MarkString)
	case CharLit:
		return lexer.Quote(v.Value, lexer.MarkChar)
	case Ref:
		return v.Name
	case Unary:
		if _, ok := v.X.(Unary); ok {
			return v.Op + "(" + Format(v.X) + ")"
		}
		return v.Op + Format(v.X)
	case Binary:
		return "(" + Format(v.L) + " " + v.Op + " " + Format(v.R) + ")"
	case Call:
		return Format(v.Fn) + "(" + formatList(v.Args) + ")"
	case Subscript:
		return Format(v.X) + "[" + formatList(v.Index) + "]"
	}
	return "<nil>"
}

func formatList(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = Format(e)
	}
	return strings.Join(parts, ", ")
}

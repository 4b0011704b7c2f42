package parser

import (
	"bytes"
	"testing"

	"github.com/pontaoski/coral/ast"
	"github.com/pontaoski/coral/diag"
	"github.com/pontaoski/coral/intern"
	"github.com/pontaoski/coral/lexer"
	"github.com/pontaoski/coral/source"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	pool  *intern.Pool
	diags *diag.Counter
}

func newFixture() *fixture {
	return &fixture{pool: intern.NewPool(), diags: &diag.Counter{}}
}

func (f *fixture) parse(src string) []ast.TopLevel {
	l := lexer.NewLexer(f.pool, nil, f.diags, 0)
	toks := l.Tokenize(src, source.Start(f.pool.Intern("test.co")))
	return Parse(toks, f.diags)
}

func (f *fixture) messages() []string {
	var out []string
	for _, d := range f.diags.Diagnostics {
		out = append(out, d.Severity.String()+": "+d.Message)
	}
	return out
}

func printed(t *testing.T, tls []ast.TopLevel) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, ast.Print(&buf, tls))
	return buf.String()
}

func TestParse_ModuleImport(t *testing.T) {
	f := newFixture()
	tls := f.parse("module x { import y; }")

	require.Zero(t, f.diags.Warnings)
	require.Zero(t, f.diags.Errors)
	require.False(t, f.diags.Critical)

	want := []ast.TopLevel{
		ast.Module{Name: f.pool.Intern("x"), Body: []ast.TopLevel{
			ast.Import{Path: "y"},
		}},
	}
	require.Len(t, tls, 1)
	require.True(t, ast.Equal(want[0], tls[0]), printed(t, tls))

	m := tls[0].(ast.Module)
	require.Equal(t, "x", m.Name.String())
	require.Equal(t, source.Location{File: f.pool.Intern("test.co"), Line: 1, Column: 1}, m.Pos)
	require.Equal(t, 12, m.Body[0].(ast.Import).Pos.Column)
}

func TestParse_Declarations(t *testing.T) {
	f := newFixture()
	tls := f.parse(`
module std {
	module io {
		fn puts(u8[]&, usize): i32;
		fn flush();
	}
}
module app {
	import .std.io;
	let greeting: u8[;5] = "hello";
	let code: i32 = puts(greeting, 5);
};
let pi: f64 = 3.25;
let c: u8 = 'x';
`)
	require.Empty(t, f.messages())
	require.Equal(t, `module std {
	module io {
		fn puts(u8[]&, usize): i32;
		fn flush();
	}
}
module app {
	import .std.io;
	let greeting: u8[;5] = "hello";
	let code: i32 = puts(greeting, 5);
}
let pi: f64 = 3.25;
let c: u8 = 'x';
`, printed(t, tls))
}

func TestParse_Expressions(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"(a - b) * c", "((a - b) * c)"},
		{"a < b == c >= d", "((a < b) == (c >= d))"},
		{"a || b && c | d ^ e & f", "(a || (b && (c | (d ^ (e & f)))))"},
		{"x << 1 + y", "(x << (1 + y))"},
		{"-a * !b", "(-a * !b)"},
		{"*p[1] + ~n", "(*p[1] + ~n)"},
		{"f(a, g(b))[i, j](k)", "f(a, g(b))[i, j](k)"},
		{"f()", "f()"},
		{"std.io.puts(\"a\\n\")", "std.io.puts(\"a\\n\")"},
		{"0x10 + 1.5", "(16 + 1.5)"},
	}
	for _, c := range cases {
		f := newFixture()
		tls := f.parse("let v: i32 = " + c.src + ";")
		require.Empty(t, f.messages(), c.src)
		require.Len(t, tls, 1, c.src)
		require.Equal(t, c.want, ast.Format(tls[0].(ast.Let).Value), c.src)
	}
}

func TestParse_FormattedExpressionsReadBack(t *testing.T) {
	x := ast.Ref{Name: "x"}
	exprs := []ast.Expr{
		ast.Unary{Op: "-", X: ast.Unary{Op: "-", X: x}},
		ast.Unary{Op: "&", X: ast.Unary{Op: "&", X: x}},
		ast.Unary{Op: "+", X: ast.Unary{Op: "++", X: x}},
		ast.Unary{Op: "!", X: ast.Binary{Op: "-", L: x, R: ast.Unary{Op: "-", X: x}}},
		ast.FloatLit{Value: 1e20},
		ast.FloatLit{Value: 1e-7},
		ast.FloatLit{Value: 0.1},
		ast.FloatLit{Value: 2},
	}
	for _, e := range exprs {
		src := ast.Format(e)
		f := newFixture()
		tls := f.parse("let v: i32 = " + src + ";")
		require.Empty(t, f.messages(), src)
		require.Len(t, tls, 1, src)
		require.True(t, ast.EqualExpr(e, tls[0].(ast.Let).Value), "%s read back as %s", src, ast.Format(tls[0].(ast.Let).Value))
	}
}

func TestParse_UnsupportedIsCritical(t *testing.T) {
	f := newFixture()
	tls := f.parse("import a; struct S { x: i32 } import b;")

	require.True(t, f.diags.Critical)
	require.Equal(t, []string{"critical: unsupported top-level construct 'struct'"}, f.messages())
	require.Equal(t, "import a;\n", printed(t, tls))
}

func TestParse_UnterminatedModule(t *testing.T) {
	f := newFixture()
	tls := f.parse("module x { import y;")

	require.True(t, f.diags.Critical)
	require.Equal(t, []string{"critical: unterminated module body"}, f.messages())
	require.Equal(t, "module x {\n\timport y;\n}\n", printed(t, tls))
	require.Equal(t, 1, f.diags.Diagnostics[0].Location.Column)
}

func TestParse_Recovery(t *testing.T) {
	f := newFixture()
	tls := f.parse(`
let a: i32 = ;
let b: = 1;
fn c(u8 ;
import d
let e: u8 = f(1, (2);
module g { let h: i32 = ; import i; }
let j: i32 = @k;
`)
	require.False(t, f.diags.Critical)
	require.Equal(t, []string{
		"error: expected an expression, got ';'",
		"error: expected a type, got '='",
		"error: expected one of ',', ')', got ';'",
		"error: expected ';', got 'let'",
		"error: expected ')', got ';'",
		"error: expected an expression, got ';'",
		"error: cannot resolve directive @k",
	}, f.messages())
	require.Equal(t, "import d;\nmodule g {\n\timport i;\n}\n", printed(t, tls))
}

package ast

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/pontaoski/coral/diag"
	"github.com/pontaoski/coral/intern"
	"github.com/pontaoski/coral/scope"
	"github.com/pontaoski/coral/source"
	"github.com/pontaoski/coral/types"
	"github.com/stretchr/testify/require"
)

func num(n int64) Expr {
	return IntLit{Value: big.NewInt(n)}
}

func ref(name string) Expr {
	return Ref{Name: name}
}

func TestEqual(t *testing.T) {
	pool := intern.NewPool()
	x, y := pool.Intern("x"), pool.Intern("y")

	a := Module{Name: x, Body: []TopLevel{
		Import{Path: "y"},
		Let{Name: y, Type: "i32", Value: Binary{Op: "+", L: num(1), R: ref("z")}},
	}}
	b := Module{Pos: source.Location{Line: 9, Column: 9}, Name: x, Body: []TopLevel{
		Import{Path: "y"},
		Let{Name: y, Type: "i32", Value: Binary{Op: "+", L: num(1), R: ref("z")}},
	}}
	require.True(t, Equal(a, b))

	b.Body[1] = Let{Name: y, Type: "i32", Value: Binary{Op: "-", L: num(1), R: ref("z")}}
	require.False(t, Equal(a, b))

	require.False(t, Equal(Import{Path: "y"}, Fn{Name: y}))
	require.True(t, Equal(Fn{Name: y, Params: []string{"u8"}}, Fn{Name: y, Params: []string{"u8"}}))
	require.False(t, Equal(Fn{Name: y, Params: []string{"u8"}}, Fn{Name: y, Params: []string{"i8"}}))
	require.True(t, EqualExpr(
		Call{Fn: ref("f"), Args: []Expr{StrLit{Value: "a"}, CharLit{Value: "b"}}},
		Call{Fn: ref("f"), Args: []Expr{StrLit{Value: "a"}, CharLit{Value: "b"}}},
	))
	require.False(t, EqualExpr(StrLit{Value: "a"}, CharLit{Value: "a"}))
}

func TestPrint(t *testing.T) {
	pool := intern.NewPool()
	tls := []TopLevel{
		Module{Name: pool.Intern("x"), Body: []TopLevel{
			Import{Path: ".std.io"},
			Fn{Name: pool.Intern("puts"), Params: []string{"u8[]&", "usize"}, Returns: "i32"},
		}},
		Let{Name: pool.Intern("s"), Type: "u8[;3]", Value: StrLit{Value: "a\"\n\x01"}},
		Fn{Name: pool.Intern("exit"), Params: []string{"i32"}},
		Let{Name: pool.Intern("v"), Type: "i32", Value: Unary{Op: "-", X: Subscript{
			X:     Call{Fn: ref("f"), Args: []Expr{num(1), FloatLit{Value: 2}}},
			Index: []Expr{Binary{Op: "*", L: ref("a"), R: CharLit{Value: "'"}}},
		}}},
	}

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, tls))
	require.Equal(t, `module x {
	import .std.io;
	fn puts(u8[]&, usize): i32;
}
let s: u8[;3] = "a\"\n\x01";
fn exit(i32);
let v: i32 = -f(1, 2.0)[(a * '\'')];
`, buf.String())
}

func TestFormat(t *testing.T) {
	cases := []struct {
		expr Expr
		want string
	}{
		{Unary{Op: "-", X: Unary{Op: "-", X: ref("x")}}, "-(-x)"},
		{Unary{Op: "*", X: Unary{Op: "&", X: ref("x")}}, "*(&x)"},
		{Unary{Op: "-", X: ref("x")}, "-x"},
		{FloatLit{Value: 1e20}, "100000000000000000000.0"},
		{FloatLit{Value: 1e-7}, "0.0000001"},
		{FloatLit{Value: 2.5}, "2.5"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Format(tc.expr))
	}
}

func TestTypeOf(t *testing.T) {
	pool := intern.NewPool()
	u := types.NewUniverse()
	c := NewContext(pool, u, diag.NewQuiet())

	i32 := u.Int(32, true)
	arr := u.Array(i32, 4)
	fn := u.Func(u.Float(types.Double), i32)
	c.Scope.Insert(pool.Intern("n"), scope.ValueOf(i32))
	c.Scope.Insert(pool.Intern("xs"), scope.ValueOf(arr))
	c.Scope.Insert(pool.Intern("f"), scope.ValueOf(fn))

	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	cases := []struct {
		expr Expr
		want string
	}{
		{num(7), "i32"},
		{num(1 << 40), "i64"},
		{IntLit{Value: new(big.Int).SetUint64(1 << 63)}, "u64"},
		{IntLit{Value: huge}, "u97"},
		{FloatLit{Value: 1.5}, "f64"},
		{StrLit{Value: "abc"}, "u8[;3]"},
		{CharLit{Value: "a"}, "u8"},
		{CharLit{Value: "é"}, "u32"},
		{ref("n"), "i32"},
		{Binary{Op: "+", L: ref("n"), R: num(1)}, "i32"},
		{Binary{Op: "<", L: ref("n"), R: num(1)}, "bool"},
		{Unary{Op: "!", X: ref("n")}, "bool"},
		{Subscript{X: ref("xs"), Index: []Expr{num(0)}}, "i32"},
		{Call{Fn: ref("f"), Args: []Expr{num(0)}}, "f64"},
	}
	for _, tc := range cases {
		got := c.TypeOf(tc.expr)
		require.NotNil(t, got, Format(tc.expr))
		require.Equal(t, tc.want, got.String(), Format(tc.expr))
	}

	require.Nil(t, c.TypeOf(ref("missing")))
	require.Nil(t, c.TypeOf(Call{Fn: ref("f"), Args: []Expr{ref("missing")}}))
	require.Nil(t, c.TypeOf(Subscript{X: ref("n"), Index: []Expr{num(0)}}))
}

func messages(q *diag.Counter) []string {
	var out []string
	for _, d := range q.Diagnostics {
		out = append(out, d.Message)
	}
	return out
}

func TestDeclare(t *testing.T) {
	pool := intern.NewPool()
	u := types.NewUniverse()
	q := &diag.Counter{}
	c := NewContext(pool, u, q)

	tls := []TopLevel{
		Module{Name: pool.Intern("app"), Body: []TopLevel{
			Import{Path: "io"},
			Let{Name: pool.Intern("code"), Type: "i32", Value: Call{Fn: ref("write"), Args: []Expr{num(1)}}},
		}},
		Module{Name: pool.Intern("io"), Body: []TopLevel{
			Fn{Name: pool.Intern("write"), Params: []string{"i32"}, Returns: "i32"},
		}},
		Module{Name: pool.Intern("io"), Body: []TopLevel{
			Let{Name: pool.Intern("fd"), Type: "u8", Value: num(2)},
		}},
	}
	c.Declare(tls)
	require.Empty(t, messages(q))

	require.Equal(t, "fn(i32): i32", c.Scope.ResolveType(pool, "io.write").String())
	require.Equal(t, "u8", c.Scope.ResolveType(pool, "io.fd").String())
	require.Equal(t, "fn(i32): i32", c.Scope.ResolveType(pool, "app.write").String())
	require.Equal(t, "i32", c.Scope.ResolveType(pool, "app.code").String())
}

func TestDeclare_Errors(t *testing.T) {
	pool := intern.NewPool()
	u := types.NewUniverse()
	q := &diag.Counter{}
	c := NewContext(pool, u, q)

	tls := []TopLevel{
		Let{Name: pool.Intern("x"), Type: "i32", Value: num(1)},
		Module{Name: pool.Intern("x")},
		Let{Name: pool.Intern("x"), Type: "u8", Value: num(1)},
		Let{Name: pool.Intern("y"), Type: "nope", Value: num(1)},
		Let{Name: pool.Intern("z"), Type: "u8", Value: FloatLit{Value: 1}},
		Let{Name: pool.Intern("w"), Type: "i32", Value: ref("missing")},
		Import{Path: "missing"},
		Import{Path: "x"},
		Module{Name: pool.Intern("a"), Body: []TopLevel{
			Let{Name: pool.Intern("v"), Type: "i32", Value: num(1)},
		}},
		Module{Name: pool.Intern("b"), Body: []TopLevel{
			Let{Name: pool.Intern("v"), Type: "u8", Value: num(1)},
			Import{Path: ".a"},
		}},
	}
	c.Declare(tls)

	require.Equal(t, []string{
		"x is already declared as a value",
		"x is already declared as a value",
		"cannot resolve type nope",
		"cannot resolve import missing",
		"cannot resolve module x",
		"v is already declared as a different symbol",
		"cannot initialize z of type u8 with a value of type f64",
		"cannot resolve the type of missing",
	}, messages(q))
	require.Equal(t, 8, q.Errors)
}

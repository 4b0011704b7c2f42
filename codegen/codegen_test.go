package codegen

import (
	"math/big"
	"strings"
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontaoski/coral/ast"
	"github.com/pontaoski/coral/diag"
	"github.com/pontaoski/coral/intern"
	"github.com/pontaoski/coral/types"
)

func TestLower(t *testing.T) {
	u := types.NewUniverse()
	i32, u8 := u.Int(32, true), u.Int(8, false)

	tests := []struct {
		t    *types.Type
		want string
	}{
		{i32, "i32"},
		{u.Bool(), "i1"},
		{u.Int(97, false), "i97"},
		{u.Float(types.Half), "half"},
		{u.Float(types.Double), "double"},
		{u.Float(types.Quad), "fp128"},
		{u.Pointer(i32), "i32*"},
		{u.Reference(u8), "i8*"},
		{u.Pointer(u.Null()), "i8*"},
		{u.Array(u8, 4), "[4 x i8]"},
		{u.Array(u8, types.Unsized), "{ i64, i8* }"},
		{u.Func(i32, u8), "i32 (i8)*"},
		{u.Tuple(i32, u8), "{ i32, i8 }"},
		{u.Null(), "void"},
		{nil, "void"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Lower(tt.t).String(), tt.t.Name())
	}

	color := Lower(u.Custom(types.Enum, "color")).(*lltypes.StructType)
	assert.True(t, color.Opaque)
	assert.Equal(t, "color", color.Name())
}

func TestGenerate(t *testing.T) {
	assert.Nil(t, Generate(ast.IntLit{Value: big.NewInt(1)}))
	assert.Nil(t, Generate(ast.Import{Path: "x"}))
}

func emit(t *testing.T) *ir.Module {
	t.Helper()
	pool := intern.NewPool()
	u := types.NewUniverse()
	ctx := ast.NewContext(pool, u, &diag.Counter{})

	tls := []ast.TopLevel{
		ast.Module{Name: pool.Intern("io"), Body: []ast.TopLevel{
			ast.Fn{Name: pool.Intern("write"), Params: []string{"i32", "u8[]&"}, Returns: "isize"},
			ast.Fn{Name: pool.Intern("broken"), Params: []string{"nope"}},
		}},
		ast.Fn{Name: pool.Intern("exit"), Params: []string{"i32"}},
		ast.Let{Name: pool.Intern("answer"), Type: "u8", Value: ast.IntLit{Value: big.NewInt(42)}},
		ast.Let{Name: pool.Intern("ratio"), Type: "f32", Value: ast.FloatLit{Value: 0.5}},
		ast.Let{Name: pool.Intern("greeting"), Type: "u8[;2]", Value: ast.StrLit{Value: "hi"}},
		ast.Let{Name: pool.Intern("letter"), Type: "u32", Value: ast.CharLit{Value: "é"}},
		ast.Let{Name: pool.Intern("other"), Type: "i32", Value: ast.Ref{Name: "answer"}},
	}
	return Emit(ctx, tls)
}

func TestEmit(t *testing.T) {
	m := emit(t)

	var funcs []string
	for _, f := range m.Funcs {
		funcs = append(funcs, f.Name())
	}
	require.Equal(t, []string{"io.write", "exit"}, funcs)
	require.Equal(t, "i64", m.Funcs[0].Sig.RetType.String())
	require.Len(t, m.Funcs[0].Params, 2)
	require.Equal(t, "void", m.Funcs[1].Sig.RetType.String())

	globals := map[string]constant.Constant{}
	for _, g := range m.Globals {
		globals[g.Name()] = g.Init
	}
	require.Len(t, globals, 6)
	require.Equal(t, "i8 42", globals["answer"].String())
	require.IsType(t, &constant.Float{}, globals["ratio"])
	require.IsType(t, &constant.CharArray{}, globals["greeting"])
	require.Equal(t, "i32 233", globals["letter"].String())
	require.IsType(t, &constant.ZeroInitializer{}, globals["other"])
	require.Contains(t, globals, TypeInfoSymbol)

	text := m.String()
	require.True(t, strings.Contains(text, "declare i64 @io.write("), text)
	require.True(t, strings.Contains(text, "@__coral_types = constant"), text)
}

func TestEmit_SkipsRedeclarations(t *testing.T) {
	pool := intern.NewPool()
	ctx := ast.NewContext(pool, types.NewUniverse(), &diag.Counter{})

	m := Emit(ctx, []ast.TopLevel{
		ast.Fn{Name: pool.Intern("f"), Params: []string{"i32"}},
		ast.Fn{Name: pool.Intern("f"), Params: []string{"u8"}},
		ast.Let{Name: pool.Intern("f"), Type: "i32", Value: ast.IntLit{Value: big.NewInt(1)}},
	})
	require.Len(t, m.Funcs, 1)
	require.Equal(t, "i32", m.Funcs[0].Params[0].Typ.String())
	require.Len(t, m.Globals, 1)
}

func TestTypeInfo(t *testing.T) {
	m := emit(t)

	var raw string
	for _, g := range m.Globals {
		if g.Name() == TypeInfoSymbol {
			arr := g.Init.(*constant.CharArray)
			raw = string(arr.X[:len(arr.X)-1])
		}
	}
	require.NotEmpty(t, raw)

	info, err := DecodeTypeInfo(raw)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"io.write": "fn(i32, u8[]&): i64",
		"exit":     "fn(i32): null",
		"answer":   "u8",
		"ratio":    "f32",
		"greeting": "u8[;2]",
		"letter":   "u32",
		"other":    "i32",
	}, info.Values)

	u := types.NewUniverse()
	resolved := info.Resolve(u)
	require.True(t, resolved["io.write"] == u.Func(u.Int(64, true), u.Int(32, true), u.Reference(u.Array(u.Int(8, false), types.Unsized))))
	require.True(t, resolved["greeting"] == u.Array(u.Int(8, false), 2))
}

func TestDecodeTypeInfo_Invalid(t *testing.T) {
	_, err := DecodeTypeInfo("{")
	require.Error(t, err)
}

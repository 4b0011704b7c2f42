// Package codegen lowers declarations to an LLVM module.
package codegen

import (
	"math/big"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"go.uber.org/zap"

	"github.com/pontaoski/coral/ast"
	"github.com/pontaoski/coral/types"
)

// Generate lowers a single node to a value.
//
// TODO: lower expressions once function bodies exist; until then every node
// yields no value.
func Generate(node interface{}) value.Value {
	return nil
}

type emitter struct {
	ctx  *ast.Context
	m    *ir.Module
	info TypeInfo
	log  *zap.Logger

	// names maps qualified names to what they were lowered to, one map per
	// enclosing module.
	names []map[string]value.Value
}

func (e *emitter) pushScope() {
	e.names = append(e.names, map[string]value.Value{})
}

func (e *emitter) popScope() {
	e.names = e.names[:len(e.names)-1]
}

func (e *emitter) top() map[string]value.Value {
	return e.names[len(e.names)-1]
}

// Emit builds a module holding an external declaration for every fn, a
// global for every let and the embedded type information of both.
// Declarations whose types do not resolve are skipped; the declaration pass
// has already reported them.
func Emit(ctx *ast.Context, tls []ast.TopLevel) *ir.Module {
	log := ctx.Log
	if log == nil {
		log = zap.NewNop()
	}
	e := &emitter{ctx: ctx, m: ir.NewModule(), info: NewTypeInfo(), log: log}

	e.pushScope()
	e.emit("", tls)
	e.popScope()

	e.info.register(e.m)
	return e.m
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func (e *emitter) emit(prefix string, tls []ast.TopLevel) {
	for _, tl := range tls {
		switch v := tl.(type) {
		case ast.Module:
			e.pushScope()
			e.emit(qualify(prefix, v.Name.String()), v.Body)
			e.popScope()
		case ast.Fn:
			e.fn(qualify(prefix, v.Name.String()), v)
		case ast.Let:
			e.let(qualify(prefix, v.Name.String()), v)
		}
	}
}

func (e *emitter) declared(name string) bool {
	_, ok := e.top()[name]
	return ok
}

func (e *emitter) fn(name string, v ast.Fn) {
	if e.declared(name) {
		return
	}
	u := e.ctx.Universe
	ret := u.Null()
	if v.Returns != "" {
		ret = u.ParseType(v.Returns)
	}
	params := make([]*types.Type, len(v.Params))
	for i, p := range v.Params {
		params[i] = u.ParseType(p)
		if params[i] == nil {
			return
		}
	}
	if ret == nil {
		return
	}
	t := u.Func(ret, params...)

	var irParams []*ir.Param
	for _, p := range t.Params() {
		irParams = append(irParams, ir.NewParam("", Lower(p)))
	}
	f := e.m.NewFunc(name, Lower(t.Return()), irParams...)
	e.top()[name] = f
	e.info.add(name, t)
	e.log.Debug("emitted function", zap.String("name", name), zap.Stringer("type", t))
}

func (e *emitter) let(name string, v ast.Let) {
	t := e.ctx.Universe.ParseType(v.Type)
	if t == nil || e.declared(name) {
		return
	}
	g := e.m.NewGlobalDef(name, initializer(t, v.Value))
	e.top()[name] = g
	e.info.add(name, t)
	e.log.Debug("emitted global", zap.String("name", name), zap.Stringer("type", t))
}

// initializer folds literal initializers into constants. Anything else is
// zero initialized.
func initializer(t *types.Type, x ast.Expr) constant.Constant {
	lt := Lower(t)
	switch v := x.(type) {
	case ast.IntLit:
		if it, ok := lt.(*lltypes.IntType); ok {
			return &constant.Int{Typ: it, X: new(big.Int).Set(v.Value)}
		}
	case ast.FloatLit:
		if ft, ok := lt.(*lltypes.FloatType); ok {
			return constant.NewFloat(ft, v.Value)
		}
	case ast.CharLit:
		if it, ok := lt.(*lltypes.IntType); ok {
			return constant.NewInt(it, int64(decodeChar(v.Value)))
		}
	case ast.StrLit:
		if t.Kind() == types.Array && t.Len() == len(v.Value) && t.Base().Width() == 8 {
			return constant.NewCharArrayFromString(v.Value)
		}
	}
	return constant.NewZeroInitializer(lt)
}

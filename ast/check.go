package ast

import (
	"math/big"

	"github.com/pontaoski/coral/diag"
	"github.com/pontaoski/coral/errors"
	"github.com/pontaoski/coral/intern"
	"github.com/pontaoski/coral/scope"
	"github.com/pontaoski/coral/types"
	"go.uber.org/zap"
)

// Context carries what the declaration pass and type queries need. Scope is
// the scope names are declared into and resolved from.
type Context struct {
	Pool     *intern.Pool
	Universe *types.Universe
	Scope    *scope.Scope
	Handler  diag.Handler
	Log      *zap.Logger
}

func NewContext(pool *intern.Pool, u *types.Universe, h diag.Handler) *Context {
	return &Context{
		Pool:     pool,
		Universe: u,
		Scope:    scope.New(nil),
		Handler:  h,
		Log:      zap.NewNop(),
	}
}

func (c *Context) in(s *scope.Scope) *Context {
	n := *c
	n.Scope = s
	return &n
}

// literalType is i32 for literals that fit, then i64, then u64, then the
// narrowest unsigned integer that holds the value.
func (c *Context) literalType(v *big.Int) *types.Type {
	n := v.BitLen()
	switch {
	case n < 32:
		return c.Universe.Int(32, true)
	case n < 64:
		return c.Universe.Int(64, true)
	case n == 64:
		return c.Universe.Int(64, false)
	}
	return c.Universe.Int(n, false)
}

// TypeOf infers the type of e in the context's scope, or nil when it has
// none.
func (c *Context) TypeOf(e Expr) *types.Type {
	u := c.Universe
	switch v := e.(type) {
	case IntLit:
		return c.literalType(v.Value)
	case FloatLit:
		return u.Float(types.Double)
	case StrLit:
		return u.Array(u.Int(8, false), len(v.Value))
	case CharLit:
		if len(v.Value) > 1 {
			return u.Int(32, false)
		}
		return u.Int(8, false)
	case Ref:
		return c.Scope.ResolveType(c.Pool, v.Name)
	case Unary:
		return u.Unary(c.TypeOf(v.X), v.Op)
	case Binary:
		return u.Binary(c.TypeOf(v.L), c.TypeOf(v.R), v.Op)
	case Call:
		return u.Call(c.TypeOf(v.Fn), c.typesOf(v.Args))
	case Subscript:
		return u.Subscript(c.TypeOf(v.X), c.typesOf(v.Index))
	}
	return nil
}

func (c *Context) typesOf(es []Expr) []*types.Type {
	ts := make([]*types.Type, len(es))
	for i, e := range es {
		ts[i] = c.TypeOf(e)
	}
	return ts
}

func (c *Context) report(n interface{}, err error, sev diag.Severity) {
	c.Handler.Report(PosOf(n), err.Error(), sev)
}

// Declare binds every declaration in tls into the context's scope. Modules
// and their members are declared first, so an import may name a module
// declared later in the file; imports are then merged, and finally let
// initializers are checked against their declared types.
func (c *Context) Declare(tls []TopLevel) {
	c.declare(tls)
	c.imports(tls)
	c.check(tls)
}

func (c *Context) module(v Module) (*scope.Scope, bool) {
	sym, ok := c.Scope.LookupLocal(v.Name)
	if !ok {
		s := scope.New(c.Scope)
		c.Scope.Insert(v.Name, scope.NestedOf(s))
		return s, true
	}
	if sym.Kind != scope.Nested {
		c.report(v, errors.DuplicateName{Name: v.Name.String(), Existing: sym.Kind.String()}, diag.Error)
		return nil, false
	}
	return sym.Scope, true
}

func (c *Context) bind(n interface{}, name intern.Str, t *types.Type) {
	if sym, ok := c.Scope.LookupLocal(name); ok {
		c.report(n, errors.DuplicateName{Name: name.String(), Existing: sym.Kind.String()}, diag.Error)
		return
	}
	c.Scope.Insert(name, scope.ValueOf(t))
	c.Log.Debug("declared", zap.Stringer("name", name), zap.Stringer("type", t))
}

func (c *Context) parseType(n interface{}, spelling string) *types.Type {
	t := c.Universe.ParseType(spelling)
	if t == nil {
		c.report(n, errors.Unresolved{Path: spelling, What: "type"}, diag.Error)
	}
	return t
}

func (c *Context) declare(tls []TopLevel) {
	for _, tl := range tls {
		switch v := tl.(type) {
		case Module:
			if s, ok := c.module(v); ok {
				c.in(s).declare(v.Body)
			}
		case Let:
			t := c.parseType(v, v.Type)
			if t == nil {
				continue
			}
			c.bind(v, v.Name, t)
		case Fn:
			ret := c.Universe.Null()
			if v.Returns != "" {
				if ret = c.parseType(v, v.Returns); ret == nil {
					continue
				}
			}
			params := make([]*types.Type, len(v.Params))
			failed := false
			for i, p := range v.Params {
				if params[i] = c.parseType(v, p); params[i] == nil {
					failed = true
				}
			}
			if failed {
				continue
			}
			c.bind(v, v.Name, c.Universe.Func(ret, params...))
		}
	}
}

func (c *Context) imports(tls []TopLevel) {
	for _, tl := range tls {
		switch v := tl.(type) {
		case Module:
			if sym, ok := c.Scope.LookupLocal(v.Name); ok && sym.Kind == scope.Nested {
				c.in(sym.Scope).imports(v.Body)
			}
		case Import:
			sym, ok := c.Scope.Resolve(c.Pool, v.Path)
			if !ok {
				c.report(v, errors.Unresolved{Path: v.Path, What: "import"}, diag.Error)
				continue
			}
			if sym.Kind != scope.Nested {
				c.report(v, errors.Unresolved{Path: v.Path, What: "module"}, diag.Error)
				continue
			}
			for _, name := range c.Scope.Include(sym.Scope) {
				c.report(v, errors.DuplicateName{Name: name, Existing: "different symbol"}, diag.Error)
			}
		}
	}
}

func (c *Context) check(tls []TopLevel) {
	for _, tl := range tls {
		switch v := tl.(type) {
		case Module:
			if sym, ok := c.Scope.LookupLocal(v.Name); ok && sym.Kind == scope.Nested {
				c.in(sym.Scope).check(v.Body)
			}
		case Let:
			want := c.Universe.ParseType(v.Type)
			if want == nil {
				continue
			}
			got := c.TypeOf(v.Value)
			if got == nil {
				c.report(v.Value, errors.Unresolved{Path: Format(v.Value), What: "the type of"}, diag.Error)
				continue
			}
			if !assignable(v.Value, got, want) {
				c.report(v, errors.Mismatch{Name: v.Name.String(), Want: want.String(), Got: got.String()}, diag.Error)
			}
		}
	}
}

// assignable allows numeric literals to initialize any type of their kind;
// everything else must match exactly once references are unwrapped.
func assignable(e Expr, got, want *types.Type) bool {
	switch e.(type) {
	case IntLit:
		if want.Kind() == types.Integer {
			return true
		}
	case FloatLit:
		if want.Kind() == types.Float {
			return true
		}
	}
	return got == want || types.Unwrap(got) == want
}

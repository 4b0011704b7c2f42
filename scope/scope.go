// Package scope implements parent-linked symbol tables with dotted-path
// resolution and import merging.
package scope

import (
	"sort"
	"strings"

	"github.com/pontaoski/coral/intern"
	"github.com/pontaoski/coral/types"
)

type Kind uint8

const (
	// Value is a typed value: a variable, constant or function.
	Value Kind = iota
	// TypeBinding names a type.
	TypeBinding
	// Nested is a scope reachable by name, such as a module.
	Nested
)

func (k Kind) String() string {
	switch k {
	case Value:
		return "value"
	case TypeBinding:
		return "type"
	case Nested:
		return "scope"
	}
	return "unknown"
}

type Symbol struct {
	Kind  Kind
	Type  *types.Type
	Scope *Scope

	// shared is set on nested scopes copied in by Include; they are cloned
	// before anything is merged into them.
	shared bool
}

func ValueOf(t *types.Type) Symbol {
	return Symbol{Kind: Value, Type: t}
}

func TypeOf(t *types.Type) Symbol {
	return Symbol{Kind: TypeBinding, Type: t}
}

func NestedOf(s *Scope) Symbol {
	return Symbol{Kind: Nested, Scope: s}
}

func (s Symbol) same(o Symbol) bool {
	return s.Kind == o.Kind && s.Type == o.Type && s.Scope == o.Scope
}

// Scope maps interned names to symbols. The parent link does not own the
// parent.
type Scope struct {
	parent   *Scope
	symbols  map[intern.Str]Symbol
	order    []intern.Str
	imported map[*Scope]bool
}

func New(parent *Scope) *Scope {
	return &Scope{
		parent:   parent,
		symbols:  make(map[intern.Str]Symbol),
		imported: make(map[*Scope]bool),
	}
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

// Root returns the outermost scope of the chain.
func (s *Scope) Root() *Scope {
	for s.parent != nil {
		s = s.parent
	}
	return s
}

// Names lists the names bound directly in s in insertion order.
func (s *Scope) Names() []intern.Str {
	return s.order
}

func (s *Scope) bind(name intern.Str, sym Symbol) {
	if _, ok := s.symbols[name]; !ok {
		s.order = append(s.order, name)
	}
	s.symbols[name] = sym
}

// Insert binds name in s. It fails, leaving the old binding, if s already
// binds name itself; bindings in parents are shadowed.
func (s *Scope) Insert(name intern.Str, sym Symbol) bool {
	if _, ok := s.symbols[name]; ok {
		return false
	}
	sym.shared = false
	s.bind(name, sym)
	return true
}

func (s *Scope) LookupLocal(name intern.Str) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Lookup walks from s to the root and returns the first binding of name.
func (s *Scope) Lookup(name intern.Str) (Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

func (s *Scope) hasAncestor(a *Scope) bool {
	for cur := s.parent; cur != nil; cur = cur.parent {
		if cur == a {
			return true
		}
	}
	return false
}

func (s *Scope) clone() *Scope {
	c := New(s.parent)
	for _, name := range s.order {
		sym := s.symbols[name]
		if sym.Kind == Nested {
			sym.shared = true
		}
		c.bind(name, sym)
	}
	for imp := range s.imported {
		c.imported[imp] = true
	}
	return c
}

// Include copies every binding of src, and of src's parents, into s. Names
// bound on both sides to nested scopes are merged recursively; any other
// name bound on both sides keeps the binding of s and is returned as a
// collision, spelled as a dotted path. src is never modified. Including a
// scope into itself, into one of its descendants, or a second time does
// nothing.
func (s *Scope) Include(src *Scope) []string {
	var collisions []string
	s.include(src, "", true, &collisions)
	sort.Strings(collisions)
	return collisions
}

func (s *Scope) include(src *Scope, prefix string, chain bool, collisions *[]string) {
	for cur := src; cur != nil; cur = cur.parent {
		if cur == s || s.imported[cur] || s.hasAncestor(cur) {
			return
		}
		s.imported[cur] = true
		for imp := range cur.imported {
			s.imported[imp] = true
		}

		for _, name := range cur.order {
			s.merge(name, cur.symbols[name], prefix, collisions)
		}

		if !chain {
			return
		}
	}
}

func (s *Scope) merge(name intern.Str, sym Symbol, prefix string, collisions *[]string) {
	have, ok := s.symbols[name]
	switch {
	case !ok:
		if sym.Kind == Nested {
			sym.shared = true
		}
		s.bind(name, sym)
	case have.same(sym):
	case have.Kind == Nested && sym.Kind == Nested:
		dst := have.Scope
		if have.shared {
			dst = dst.clone()
			s.bind(name, NestedOf(dst))
		}
		dst.include(sym.Scope, prefix+name.String()+".", false, collisions)
	default:
		*collisions = append(*collisions, prefix+name.String())
	}
}

// Resolve looks up a dotted path. The first segment is looked up through
// the parent chain, starting at the root if the path begins with '.'; each
// later segment must be bound directly in the nested scope named by the
// segment before it.
func (s *Scope) Resolve(pool *intern.Pool, path string) (Symbol, bool) {
	cur := s
	if strings.HasPrefix(path, ".") {
		cur = s.Root()
		path = path[1:]
	}

	segments := strings.Split(path, ".")
	for i, seg := range segments {
		name, ok := pool.Lookup(seg)
		if !ok || seg == "" {
			return Symbol{}, false
		}

		var sym Symbol
		if i == 0 {
			sym, ok = cur.Lookup(name)
		} else {
			sym, ok = cur.LookupLocal(name)
		}
		if !ok {
			return Symbol{}, false
		}

		if i == len(segments)-1 {
			return sym, true
		}
		if sym.Kind != Nested {
			return Symbol{}, false
		}
		cur = sym.Scope
	}
	return Symbol{}, false
}

// ResolveType resolves path to the type of a value, or nil.
func (s *Scope) ResolveType(pool *intern.Pool, path string) *types.Type {
	sym, ok := s.Resolve(pool, path)
	if !ok || sym.Kind != Value {
		return nil
	}
	return sym.Type
}

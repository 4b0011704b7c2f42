package ast

// Equal reports whether two top-level nodes have the same shape and
// contents. Locations are ignored.
func Equal(a, b TopLevel) bool {
	switch x := a.(type) {
	case Module:
		y, ok := b.(Module)
		if !ok || x.Name != y.Name || len(x.Body) != len(y.Body) {
			return false
		}
		for i := range x.Body {
			if !Equal(x.Body[i], y.Body[i]) {
				return false
			}
		}
		return true
	case Import:
		y, ok := b.(Import)
		return ok && x.Path == y.Path
	case Let:
		y, ok := b.(Let)
		return ok && x.Name == y.Name && x.Type == y.Type && EqualExpr(x.Value, y.Value)
	case Fn:
		y, ok := b.(Fn)
		return ok && x.Name == y.Name && x.Returns == y.Returns && sameStrings(x.Params, y.Params)
	}
	return a == nil && b == nil
}

// EqualExpr is Equal for expressions.
func EqualExpr(a, b Expr) bool {
	switch x := a.(type) {
	case IntLit:
		y, ok := b.(IntLit)
		return ok && x.Value.Cmp(y.Value) == 0
	case FloatLit:
		y, ok := b.(FloatLit)
		return ok && x.Value == y.Value
	case StrLit:
		y, ok := b.(StrLit)
		return ok && x.Value == y.Value
	case CharLit:
		y, ok := b.(CharLit)
		return ok && x.Value == y.Value
	case Ref:
		y, ok := b.(Ref)
		return ok && x.Name == y.Name
	case Unary:
		y, ok := b.(Unary)
		return ok && x.Op == y.Op && EqualExpr(x.X, y.X)
	case Binary:
		y, ok := b.(Binary)
		return ok && x.Op == y.Op && EqualExpr(x.L, y.L) && EqualExpr(x.R, y.R)
	case Call:
		y, ok := b.(Call)
		return ok && EqualExpr(x.Fn, y.Fn) && sameExprs(x.Args, y.Args)
	case Subscript:
		y, ok := b.(Subscript)
		return ok && EqualExpr(x.X, y.X) && sameExprs(x.Index, y.Index)
	}
	return a == nil && b == nil
}

func sameExprs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualExpr(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package types

// The operator rules below return nil when no result type exists. A nil
// operand always yields nil.

func isArithmetic(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%":
		return true
	}
	return false
}

func isBitwise(op string) bool {
	switch op {
	case "&", "|", "^":
		return true
	}
	return false
}

func isShift(op string) bool {
	return op == "<<" || op == ">>"
}

func isComparison(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}

func isLogical(op string) bool {
	return op == "&&" || op == "||"
}

// Unary is the result type of applying a prefix operator to t.
func (u *Universe) Unary(t *Type, op string) *Type {
	if t == nil {
		return nil
	}
	if op == "!" {
		return u.Bool()
	}

	switch t.kind {
	case Integer:
		switch op {
		case "+", "-", "++", "--", "~":
			return t
		}
	case Float:
		switch op {
		case "+", "-", "++", "--":
			return t
		}
	case Pointer:
		switch op {
		case "*":
			return u.Reference(t.base)
		case "++", "--":
			return t
		}
	case Reference:
		if op == "&" {
			return u.Pointer(t.base)
		}
		return u.Unary(t.base, op)
	case Function:
		if op == "&" {
			return t
		}
	}
	return nil
}

// Binary is the result type of l op r.
func (u *Universe) Binary(l, r *Type, op string) *Type {
	if l == nil || r == nil {
		return nil
	}
	if isLogical(op) {
		return u.Bool()
	}
	if l.kind == Reference {
		return u.Binary(l.base, r, op)
	}
	if r.kind == Reference {
		return u.Binary(l, r.base, op)
	}
	if isComparison(op) {
		if comparable(l, r) {
			return u.Bool()
		}
		return nil
	}

	switch {
	case l.kind == Integer && r.kind == Integer:
		return u.integerBinary(l, r, op)
	case l.kind == Integer && r.kind == Float:
		if isArithmetic(op) {
			return r
		}
	case l.kind == Float && r.kind == Integer:
		if isArithmetic(op) {
			return l
		}
	case l.kind == Float && r.kind == Float:
		if isArithmetic(op) {
			if r.prec > l.prec {
				return r
			}
			return l
		}
	case l.kind == Pointer && r.kind == Integer:
		if op == "+" || op == "-" {
			return l
		}
	case l.kind == Pointer && r.kind == Pointer:
		if op == "-" {
			return u.Int(PointerBits, true)
		}
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (u *Universe) integerBinary(l, r *Type, op string) *Type {
	switch {
	case isShift(op):
		return l
	case isBitwise(op):
		return u.Int(maxInt(l.width, r.width), false)
	case !isArithmetic(op):
		return nil
	}

	switch {
	case l.signed == r.signed:
		return u.Int(maxInt(l.width, r.width), l.signed)
	case l.signed:
		// the signed result needs one more bit than the unsigned operand
		return u.Int(maxInt(r.width+1, l.width), true)
	default:
		return u.Int(maxInt(l.width+1, r.width), true)
	}
}

func numeric(t *Type) bool {
	return t.kind == Integer || t.kind == Float
}

func comparable(l, r *Type) bool {
	switch {
	case numeric(l) && numeric(r):
		return true
	case l.kind == Pointer && r.kind == Pointer:
		return true
	}
	return false
}

// Call is the return type of calling fn. References to functions are called
// through. Argument types are not checked against the parameters.
func (u *Universe) Call(fn *Type, args []*Type) *Type {
	for _, arg := range args {
		if arg == nil {
			return nil
		}
	}

	fn = Unwrap(fn)
	if fn == nil || fn.kind != Function {
		return nil
	}
	return fn.base
}

// Subscript is the result type of t[index...].
func (u *Universe) Subscript(t *Type, index []*Type) *Type {
	if t == nil || len(index) != 1 {
		return nil
	}
	idx := Unwrap(index[0])
	if idx == nil || idx.kind != Integer {
		return nil
	}

	switch t.kind {
	case Pointer:
		return u.Reference(t.base)
	case Array:
		return t.base
	case Reference:
		return u.Subscript(t.base, index)
	}
	return nil
}

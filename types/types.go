// Package types holds the structural type universe: every type descriptor is
// interned so that two structurally equal types are the same *Type.
package types

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	Integer Kind = iota
	Float
	Pointer
	Reference
	Borrow
	Array
	Function
	Null
	Tuple
	Variant
	Struct
	Union
	Enum
)

func (k Kind) String() string {
	data := map[Kind]string{
		Integer:   "integer",
		Float:     "float",
		Pointer:   "pointer",
		Reference: "reference",
		Borrow:    "borrow",
		Array:     "array",
		Function:  "function",
		Null:      "null",
		Tuple:     "tuple",
		Variant:   "variant",
		Struct:    "struct",
		Union:     "union",
		Enum:      "enum",
	}
	return data[k]
}

// Custom reports whether k is one of the aggregate kinds.
func (k Kind) Custom() bool {
	return k >= Tuple
}

type Precision uint8

const (
	Half Precision = iota
	Single
	Double
	Quad
)

func (p Precision) Bits() int {
	return 16 << p
}

// Unsized is the length of arrays whose length is not part of the type.
const Unsized = -1

// PointerBits is the width of isize, usize and pointer differences.
const PointerBits = 64

// Type is an immutable type descriptor. Descriptors are only created by a
// Universe, so pointer equality is type equality.
type Type struct {
	id      uint64
	kind    Kind
	width   int
	signed  bool
	prec    Precision
	base    *Type
	length  int
	members []*Type
	tag     string
	name    string
}

func (t *Type) Kind() Kind {
	return t.kind
}

// Width is the bit width of an integer.
func (t *Type) Width() int {
	return t.width
}

func (t *Type) Signed() bool {
	return t.signed
}

func (t *Type) Precision() Precision {
	return t.prec
}

// Base is the pointee of pointers, references and borrows, and the element
// of arrays.
func (t *Type) Base() *Type {
	if t.kind == Function {
		return nil
	}
	return t.base
}

// Len is the length of an array, or Unsized.
func (t *Type) Len() int {
	return t.length
}

func (t *Type) Return() *Type {
	if t.kind != Function {
		return nil
	}
	return t.base
}

func (t *Type) Params() []*Type {
	if t.kind != Function {
		return nil
	}
	return t.members
}

// Members lists tuple members in order and variant members in a canonical
// order.
func (t *Type) Members() []*Type {
	if t.kind == Function {
		return nil
	}
	return t.members
}

// Tag is the declared name of a struct, union or enum placeholder.
func (t *Type) Tag() string {
	return t.tag
}

// Name is the canonical spelling of t, accepted back by ParseType for
// scalar, wrapper and array types.
func (t *Type) Name() string {
	if t == nil {
		return "<no type>"
	}
	return t.name
}

func (t *Type) String() string {
	return t.Name()
}

func (t *Type) IsBool() bool {
	return t != nil && t.kind == Integer && t.width == 1 && !t.signed
}

// Unwrap strips references.
func Unwrap(t *Type) *Type {
	for t != nil && t.kind == Reference {
		t = t.base
	}
	return t
}

func spell(t *Type) string {
	switch t.kind {
	case Integer:
		if t.width == 1 && !t.signed {
			return "bool"
		}
		if t.signed {
			return fmt.Sprintf("i%d", t.width)
		}
		return fmt.Sprintf("u%d", t.width)
	case Float:
		return fmt.Sprintf("f%d", t.prec.Bits())
	case Pointer:
		return operand(t.base) + "*"
	case Reference:
		return operand(t.base) + "&"
	case Borrow:
		return operand(t.base) + "^"
	case Array:
		if t.length == Unsized {
			return operand(t.base) + "[]"
		}
		return fmt.Sprintf("%s[;%d]", operand(t.base), t.length)
	case Function:
		return fmt.Sprintf("fn(%s): %s", join(t.members, ", "), t.base.name)
	case Null:
		return "null"
	case Tuple:
		if len(t.members) == 1 {
			return "(" + t.members[0].name + ",)"
		}
		return "(" + join(t.members, ", ") + ")"
	case Variant:
		switch len(t.members) {
		case 0:
			return "(|)"
		case 1:
			return "(" + t.members[0].name + " |)"
		}
		return "(" + join(t.members, " | ") + ")"
	}
	return t.tag
}

// operand spells t where a wrapper or array applies to it. Function types
// are parenthesized so the wrapper is not read as part of their return
// type.
func operand(t *Type) string {
	if t.kind == Function {
		return "(" + t.name + ")"
	}
	return t.name
}

func join(ts []*Type, sep string) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.name
	}
	return strings.Join(names, sep)
}

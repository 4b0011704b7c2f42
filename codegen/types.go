package codegen

import (
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/pontaoski/coral/types"
)

var floatKinds = map[types.Precision]lltypes.FloatKind{
	types.Half:   lltypes.FloatKindHalf,
	types.Single: lltypes.FloatKindFloat,
	types.Double: lltypes.FloatKindDouble,
	types.Quad:   lltypes.FloatKindFP128,
}

// Lower maps a type descriptor to its LLVM representation. Unsized arrays
// are a length and a data pointer, variants a tag followed by every
// member, and custom types opaque named structs.
func Lower(t *types.Type) lltypes.Type {
	if t == nil {
		return lltypes.Void
	}

	switch t.Kind() {
	case types.Integer:
		return lltypes.NewInt(uint64(t.Width()))
	case types.Float:
		return &lltypes.FloatType{Kind: floatKinds[t.Precision()]}
	case types.Pointer, types.Reference, types.Borrow:
		if t.Base().Kind() == types.Null {
			return lltypes.NewPointer(lltypes.I8)
		}
		return lltypes.NewPointer(Lower(t.Base()))
	case types.Array:
		elem := Lower(t.Base())
		if t.Len() == types.Unsized {
			return lltypes.NewStruct(lltypes.NewInt(types.PointerBits), lltypes.NewPointer(elem))
		}
		return lltypes.NewArray(uint64(t.Len()), elem)
	case types.Function:
		return lltypes.NewPointer(lowerFunc(t))
	case types.Tuple:
		return lltypes.NewStruct(lowerAll(t.Members())...)
	case types.Variant:
		return lltypes.NewStruct(append([]lltypes.Type{lltypes.I32}, lowerAll(t.Members())...)...)
	case types.Struct, types.Union, types.Enum:
		s := lltypes.NewStruct()
		s.Opaque = true
		s.SetName(t.Tag())
		return s
	}
	return lltypes.Void
}

func lowerFunc(t *types.Type) *lltypes.FuncType {
	return lltypes.NewFunc(Lower(t.Return()), lowerAll(t.Params())...)
}

func lowerAll(ts []*types.Type) []lltypes.Type {
	out := make([]lltypes.Type, len(ts))
	for i, t := range ts {
		out[i] = Lower(t)
	}
	return out
}

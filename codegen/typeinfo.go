package codegen

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"

	"github.com/pontaoski/coral/types"
)

// TypeInfoSymbol is the global a built library carries its declarations in.
const TypeInfoSymbol = "__coral_types"

// TypeInfo maps the qualified name of every emitted declaration to the
// canonical spelling of its type.
type TypeInfo struct {
	Values map[string]string `json:"values"`
}

func NewTypeInfo() TypeInfo {
	return TypeInfo{Values: map[string]string{}}
}

func (t TypeInfo) add(name string, typ *types.Type) {
	t.Values[name] = typ.Name()
}

func (t TypeInfo) register(m *ir.Module) {
	data, err := json.Marshal(t)
	if err != nil {
		panic(err)
	}

	g := m.NewGlobalDef(TypeInfoSymbol, constant.NewCharArray(append(data, 0)))
	g.Immutable = true
}

func DecodeTypeInfo(data string) (TypeInfo, error) {
	t := NewTypeInfo()
	err := json.Unmarshal([]byte(data), &t)
	return t, err
}

// Resolve parses every recorded spelling back into u. Names whose spelling
// does not parse map to nil.
func (t TypeInfo) Resolve(u *types.Universe) map[string]*types.Type {
	out := make(map[string]*types.Type, len(t.Values))
	for name, spelling := range t.Values {
		out[name] = u.ParseType(spelling)
	}
	return out
}

func decodeChar(s string) rune {
	if len(s) == 1 {
		return rune(s[0])
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

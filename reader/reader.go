// Package reader loads the type information embedded in a built library.
package reader

import (
	"fmt"

	"github.com/coreos/pkg/dlopen"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/coral/codegen"
)

import "C"

type SymbolNotFound struct {
	Library string
	Symbol  string
	Err     error
}

func (e SymbolNotFound) Error() string {
	return fmt.Sprintf("%s does not export %s: %s", e.Library, e.Symbol, e.Err)
}

func (e SymbolNotFound) Unwrap() error {
	return e.Err
}

// ReadTypeInfo returns the raw type information of the library at from.
func ReadTypeInfo(from string) (string, error) {
	handle, err := dlopen.GetHandle([]string{from})
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(codegen.TypeInfoSymbol)
	if err != nil {
		return "", tracerr.Wrap(SymbolNotFound{Library: from, Symbol: codegen.TypeInfoSymbol, Err: err})
	}

	str := C.GoString((*C.char)(sym))
	return str, nil
}

// Load reads and decodes the type information of the library at from.
func Load(from string) (codegen.TypeInfo, error) {
	data, err := ReadTypeInfo(from)
	if err != nil {
		return codegen.TypeInfo{}, err
	}
	info, err := codegen.DecodeTypeInfo(data)
	if err != nil {
		return codegen.TypeInfo{}, tracerr.Wrap(fmt.Errorf("%s: malformed type information: %w", from, err))
	}
	return info, nil
}

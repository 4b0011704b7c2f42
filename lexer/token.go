package lexer

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/pontaoski/coral/intern"
	"github.com/pontaoski/coral/source"
)

// Leading bytes of binary literal payloads.
const (
	TagInt   byte = 0
	TagFloat byte = 1
)

// Leading bytes of text literal payloads.
const (
	MarkString byte = '"'
	MarkChar   byte = '\''
)

type Kind int

const (
	Ident Kind = iota
	Punct
	Int
	Float
	String
	Char
	// Macro is a directive call that nothing was registered for, passed
	// through as its source text.
	Macro
)

func (k Kind) String() string {
	data := map[Kind]string{
		Ident:  "IDENT",
		Punct:  "PUNCT",
		Int:    "INT",
		Float:  "FLOAT",
		String: "STRING",
		Char:   "CHAR",
		Macro:  "MACRO",
	}
	return data[k]
}

// Token is immutable once produced. Payload is raw text for identifiers and
// punctuation, and a tagged encoding for literals.
type Token struct {
	Location source.Location
	Payload  string
	// Name is the interned payload of identifier and punctuation tokens.
	Name intern.Str
}

func (t Token) Kind() Kind {
	if t.Payload == "" {
		return Punct
	}

	switch t.Payload[0] {
	case TagInt:
		return Int
	case TagFloat:
		return Float
	case MarkString:
		return String
	case MarkChar:
		return Char
	case '@':
		return Macro
	}

	r, _ := utf8.DecodeRuneInString(t.Payload)
	if isStandalone(r) || isOperator(r) {
		return Punct
	}
	return Ident
}

// Is reports whether t is the identifier or punctuation spelled s.
func (t Token) Is(s string) bool {
	switch t.Kind() {
	case Ident, Punct:
		return t.Payload == s
	}
	return false
}

func (t Token) String() string {
	switch t.Kind() {
	case Int:
		v, _ := DecodeInt(t.Payload)
		return v.String()
	case Float:
		v, _ := DecodeFloat(t.Payload)
		return strconv.FormatFloat(v, 'g', -1, 64)
	case String:
		return strconv.Quote(t.Payload[1:])
	case Char:
		return "'" + t.Payload[1:] + "'"
	}
	return t.Payload
}

// EncodeInt builds an integer payload from little-endian words.
func EncodeInt(words []uint64) string {
	buf := make([]byte, 1+8*len(words))
	buf[0] = TagInt
	for i, w := range words {
		binary.LittleEndian.PutUint64(buf[1+8*i:], w)
	}
	return string(buf)
}

func EncodeFloat(f float64) string {
	buf := make([]byte, 9)
	buf[0] = TagFloat
	binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(f))
	return string(buf)
}

// DecodeInt returns the value of an integer payload.
func DecodeInt(payload string) (*big.Int, error) {
	if len(payload) < 9 || payload[0] != TagInt || (len(payload)-1)%8 != 0 {
		return nil, fmt.Errorf("not an integer literal payload: %q", payload)
	}

	v := new(big.Int)
	word := new(big.Int)
	for i := len(payload) - 8; i >= 1; i -= 8 {
		v.Lsh(v, 64)
		word.SetUint64(binary.LittleEndian.Uint64([]byte(payload[i : i+8])))
		v.Or(v, word)
	}
	return v, nil
}

// Words returns the number of 64-bit words in an integer payload.
func Words(payload string) int {
	return (len(payload) - 1) / 8
}

func DecodeFloat(payload string) (float64, error) {
	if len(payload) != 9 || payload[0] != TagFloat {
		return 0, fmt.Errorf("not a float literal payload: %q", payload)
	}
	return math.Float64frombits(binary.LittleEndian.Uint64([]byte(payload[1:]))), nil
}

// DecodeText returns the decoded bytes of a string or character payload.
func DecodeText(payload string) (string, error) {
	if payload == "" || (payload[0] != MarkString && payload[0] != MarkChar) {
		return "", fmt.Errorf("not a text literal payload: %q", payload)
	}
	return payload[1:], nil
}

package types

import (
	"strconv"
	"strings"
)

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// matchingOpen returns the index of the '[' matching the ']' that ends s,
// or -1.
func matchingOpen(s string) int {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ']', '}', ')':
			depth++
		case '[', '{', '(':
			depth--
			if depth < 0 {
				return -1
			}
			if depth == 0 {
				if s[i] != '[' {
					return -1
				}
				return i
			}
		}
	}
	return -1
}

// arrayLength reads the inside of an array wrapper: empty for an unsized
// array, or a length optionally preceded by ';'.
func arrayLength(inner string) (int, bool) {
	inner = strings.TrimSpace(inner)
	if strings.HasPrefix(inner, ";") {
		inner = strings.TrimSpace(inner[1:])
		if inner == "" {
			return 0, false
		}
	}
	if inner == "" {
		return Unsized, true
	}
	if !allDigits(inner) {
		return 0, false
	}
	n, err := strconv.Atoi(inner)
	if err != nil {
		return 0, false
	}
	return n, true
}

// matchingClose returns the index of the bracket closing the one at open,
// or -1.
func matchingClose(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s at every sep outside brackets.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, from := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '{', '(':
			depth++
		case ']', '}', ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[from:i])
				from = i + 1
			}
		}
	}
	return append(parts, s[from:])
}

func (u *Universe) parseList(parts []string) []*Type {
	ts := make([]*Type, len(parts))
	for i, p := range parts {
		if ts[i] = u.ParseType(p); ts[i] == nil {
			return nil
		}
	}
	return ts
}

// parseFunc reads fn(params): ret. The return type extends to the end of s.
func (u *Universe) parseFunc(s string) *Type {
	end := matchingClose(s, 2)
	if end < 0 {
		return nil
	}
	rest := strings.TrimSpace(s[end+1:])
	if !strings.HasPrefix(rest, ":") {
		return nil
	}
	ret := u.ParseType(rest[1:])
	if ret == nil {
		return nil
	}

	var params []*Type
	if inner := s[3:end]; strings.TrimSpace(inner) != "" {
		if params = u.parseList(splitTopLevel(inner, ',')); params == nil {
			return nil
		}
	}
	return u.Func(ret, params...)
}

// parseGroup reads a parenthesized tuple, variant or single type.
func (u *Universe) parseGroup(inner string) *Type {
	switch strings.TrimSpace(inner) {
	case "":
		return u.Tuple()
	case "|":
		return u.Variant()
	}

	for _, sep := range []byte{',', '|'} {
		parts := splitTopLevel(inner, sep)
		if len(parts) == 1 {
			continue
		}
		if len(parts) == 2 && strings.TrimSpace(parts[1]) == "" {
			parts = parts[:1]
		}
		members := u.parseList(parts)
		if members == nil {
			return nil
		}
		if sep == ',' {
			return u.Tuple(members...)
		}
		return u.Variant(members...)
	}
	return u.ParseType(inner)
}

// ParseType reads a type from its canonical spelling. A function type takes
// everything after its parameter list as its return type; otherwise a
// trailing wrapper or array applies to everything before it. It returns nil
// when s does not name a type.
func (u *Universe) ParseType(s string) *Type {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "fn(") {
		return u.parseFunc(s)
	}

	switch s[len(s)-1] {
	case '&':
		return u.Reference(u.ParseType(s[:len(s)-1]))
	case '*':
		return u.Pointer(u.ParseType(s[:len(s)-1]))
	case '^':
		return u.Borrow(u.ParseType(s[:len(s)-1]))
	case ']':
		open := matchingOpen(s)
		if open <= 0 {
			return nil
		}
		length, ok := arrayLength(s[open+1 : len(s)-1])
		if !ok {
			return nil
		}
		return u.Array(u.ParseType(s[:open]), length)
	case ')':
		if s[0] != '(' || matchingClose(s, 0) != len(s)-1 {
			return nil
		}
		return u.parseGroup(s[1 : len(s)-1])
	}

	switch s {
	case "bool":
		return u.Bool()
	case "null":
		return u.Null()
	case "isize":
		return u.Int(PointerBits, true)
	case "usize":
		return u.Int(PointerBits, false)
	case "f16":
		return u.Float(Half)
	case "f32":
		return u.Float(Single)
	case "f64":
		return u.Float(Double)
	case "f128":
		return u.Float(Quad)
	}

	if (s[0] == 'i' || s[0] == 'u') && allDigits(s[1:]) {
		width, err := strconv.Atoi(s[1:])
		if err != nil || width == 0 {
			return nil
		}
		return u.Int(width, s[0] == 'i')
	}
	return nil
}

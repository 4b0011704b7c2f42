package lexer

import (
	"math/big"
	"math/bits"

	"github.com/pontaoski/coral/diag"
)

// accumulator is an unsigned integer of unbounded width, stored as
// little-endian 64-bit words.
type accumulator []uint64

func (a accumulator) mulAdd(m, d uint64) accumulator {
	carry := d
	for i, w := range a {
		hi, lo := bits.Mul64(w, m)
		lo, c := bits.Add64(lo, carry, 0)
		a[i] = lo
		carry = hi + c
	}
	if carry != 0 {
		a = append(a, carry)
	}
	return a
}

func (a accumulator) big() *big.Int {
	v := new(big.Int)
	word := new(big.Int)
	for i := len(a) - 1; i >= 0; i-- {
		v.Lsh(v, 64)
		v.Or(v, word.SetUint64(a[i]))
	}
	return v
}

// float returns a / radix^scale rounded to the nearest float64.
func (a accumulator) float(radix uint64, scale int) float64 {
	den := new(big.Int).Exp(new(big.Int).SetUint64(radix), big.NewInt(int64(scale)), nil)
	f, _ := new(big.Rat).SetFrac(a.big(), den).Float64()
	return f
}

// bitsPerDigit bounds the bits one digit of each radix can add.
var bitsPerDigit = map[uint64]int{2: 1, 8: 3, 10: 4, 16: 4}

func digitValue(r rune) (uint64, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint64(r - '0'), true
	case r >= 'a' && r <= 'z':
		return uint64(r-'a') + 10, true
	case r >= 'A' && r <= 'Z':
		return uint64(r-'A') + 10, true
	}
	return 0, false
}

func (s *scanner) radixPrefix() uint64 {
	r, size, _ := s.peek(s.off)
	if r != '0' {
		return 10
	}

	switch n, _, _ := s.peek(s.off + size); {
	case n == 'x' || n == 'X':
		s.next()
		s.next()
		return 16
	case n == 'b' || n == 'B':
		s.next()
		s.next()
		return 2
	case isDigit(n):
		s.next()
		return 8
	}
	return 10
}

// number scans a numeric literal. The payload is either TagInt followed by
// the words of the integer value, sized by the number of digits read, or
// TagFloat followed by the bits of a float64. Fraction digits keep
// accumulating into the same integer and are scaled down once at the end.
func (s *scanner) number() {
	loc := s.pos
	radix := s.radixPrefix()

	acc := accumulator{0}
	digits := 0
	isFloat := false
	scale := 0

	for !s.eof() && !s.aborted {
		r, _, ok := s.peek(s.off)
		if !ok {
			break
		}

		if r == '.' {
			if isFloat {
				s.report(s.pos, diag.Error, "identifier cannot start with a number")
				s.skipLiteralTail()
				break
			}
			isFloat = true
			s.next()
			continue
		}

		d, ok := digitValue(r)
		if !ok {
			break
		}
		_, dloc, _ := s.next()
		if d >= radix {
			s.report(dloc, diag.Error, "invalid digit %q in base %d literal", r, radix)
			continue
		}

		acc = acc.mulAdd(radix, d)
		if isFloat {
			scale++
			continue
		}
		digits++
	}

	if radix != 10 && radix != 8 && digits == 0 && !isFloat {
		s.report(loc, diag.Error, "expected digits after base %d prefix", radix)
	}

	if isFloat {
		s.emit(loc, EncodeFloat(acc.float(radix, scale)))
		return
	}

	words := (digits*bitsPerDigit[radix] + 63) / 64
	if words < 1 {
		words = 1
	}
	for len(acc) < words {
		acc = append(acc, 0)
	}
	s.emit(loc, EncodeInt(acc))
}

// skipLiteralTail consumes the rest of a malformed literal.
func (s *scanner) skipLiteralTail() {
	for !s.eof() && !s.aborted {
		r, _, ok := s.peek(s.off)
		if !ok {
			return
		}
		if _, isDigit := digitValue(r); !isDigit && r != '.' {
			return
		}
		s.next()
	}
}

package cre

import (
	"math/big"
)

// Plaintext is a fixed-length digit decomposition of an integer value in
// radix W: N digits, each in [0, W), most-significant digit at index 0.
// N and W are runtime fields rather than compile-time constants, so a
// single Cipher can be configured for whatever shape its deployment needs.
type Plaintext struct {
	Digits []uint16
	W      int
}

// N returns the number of digits.
func (p *Plaintext) N() int { return len(p.Digits) }

// NewPlaintext validates that every digit is within [0, w) and wraps them
// in a Plaintext.
func NewPlaintext(digits []uint16, w int) (*Plaintext, error) {
	if w < 2 || w > 1<<16 {
		return nil, errorf("NewPlaintext", "%w: w=%d", ErrInvalidShape, w)
	}
	for _, d := range digits {
		if int(d) >= w {
			return nil, errorf("NewPlaintext", "%w: digit %d out of range for w=%d", ErrValueOutOfRange, d, w)
		}
	}
	cp := make([]uint16, len(digits))
	copy(cp, digits)
	return &Plaintext{Digits: cp, W: w}, nil
}

// NewPlaintextFromUint64 decomposes value into n digits of radix w,
// most-significant digit first, returning ErrValueOutOfRange if value does
// not fit in n digits of radix w.
func NewPlaintextFromUint64(value uint64, n int, w int) (*Plaintext, error) {
	if n <= 0 {
		return nil, errorf("NewPlaintextFromUint64", "%w: n=%d", ErrInvalidShape, n)
	}
	if w < 2 || w > 1<<16 {
		return nil, errorf("NewPlaintextFromUint64", "%w: w=%d", ErrInvalidShape, w)
	}

	digits := make([]uint16, n)
	v := value
	bw := uint64(w)
	for i := n - 1; i >= 0; i-- {
		digits[i] = uint16(v % bw)
		v /= bw
	}
	if v != 0 {
		return nil, errorf("NewPlaintextFromUint64", "%w: value does not fit in %d digits of radix %d", ErrValueOutOfRange, n, w)
	}
	return &Plaintext{Digits: digits, W: w}, nil
}

// NewPlaintextFromUint32 is NewPlaintextFromUint64 for a uint32 value.
func NewPlaintextFromUint32(value uint32, n int, w int) (*Plaintext, error) {
	return NewPlaintextFromUint64(uint64(value), n, w)
}

// NewPlaintextFromUint16 is NewPlaintextFromUint64 for a uint16 value.
func NewPlaintextFromUint16(value uint16, n int, w int) (*Plaintext, error) {
	return NewPlaintextFromUint64(uint64(value), n, w)
}

// NewPlaintextFromUint8 is NewPlaintextFromUint64 for a uint8 value.
func NewPlaintextFromUint8(value uint8, n int, w int) (*Plaintext, error) {
	return NewPlaintextFromUint64(uint64(value), n, w)
}

// NewPlaintextFromBigInt decomposes a non-negative big.Int into n digits of
// radix w, most-significant digit first.
func NewPlaintextFromBigInt(value *big.Int, n int, w int) (*Plaintext, error) {
	if n <= 0 {
		return nil, errorf("NewPlaintextFromBigInt", "%w: n=%d", ErrInvalidShape, n)
	}
	if w < 2 || w > 1<<16 {
		return nil, errorf("NewPlaintextFromBigInt", "%w: w=%d", ErrInvalidShape, w)
	}
	if value.Sign() < 0 {
		return nil, errorf("NewPlaintextFromBigInt", "%w: value is negative", ErrValueOutOfRange)
	}

	digits := make([]uint16, n)
	v := new(big.Int).Set(value)
	bw := big.NewInt(int64(w))
	rem := new(big.Int)
	for i := n - 1; i >= 0; i-- {
		v.DivMod(v, bw, rem)
		digits[i] = uint16(rem.Int64())
	}
	if v.Sign() != 0 {
		return nil, errorf("NewPlaintextFromBigInt", "%w: value does not fit in %d digits of radix %d", ErrValueOutOfRange, n, w)
	}
	return &Plaintext{Digits: digits, W: w}, nil
}

// Uint64 recomposes the digit sequence into an integer value. If N and W
// are large enough that the represented value exceeds uint64 range, the
// result silently wraps modulo 2^64; callers working with large N/W should
// use BigInt instead.
func (p *Plaintext) Uint64() uint64 {
	var v uint64
	for _, d := range p.Digits {
		v = v*uint64(p.W) + uint64(d)
	}
	return v
}

// BigInt recomposes the digit sequence into a big.Int.
func (p *Plaintext) BigInt() *big.Int {
	v := new(big.Int)
	bw := big.NewInt(int64(p.W))
	for _, d := range p.Digits {
		v.Mul(v, bw)
		v.Add(v, big.NewInt(int64(d)))
	}
	return v
}

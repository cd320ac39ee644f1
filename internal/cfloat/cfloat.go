/*
LEAP custom 32-bit floating-point arithmetic.

Copyright 2026, Richard Cornwell

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// Package cfloat implements LEAP's custom 32-bit floating-point format.
// The bit layout matches IEEE-754 binary32 (1 sign, 8 biased exponent,
// 23 mantissa bits with an implicit leading one for normals) but the
// arithmetic does not: normalization rounds half-up and overflow
// saturates to the largest finite magnitude instead of producing an
// infinity.
package cfloat

import "math/bits"

const (
	bias        = 127
	mantBits    = 23
	implicitBit = int64(1) << mantBits // 2^23
	precMax     = int64(1) << (mantBits + 1) // 2^24
	expMax      = 127
	expMin      = -126
)

// Float holds an unnormalized intermediate (exp, prec) pair. exp is the
// unbiased exponent; prec carries the signed mantissa, with an implicit
// leading one at bit 23 once normalized. Between operations prec may
// temporarily exceed the normalized range; Normalize brings it back.
type Float struct {
	Exp  int64
	Prec int64
}

// Decode unpacks a 32-bit encoded word into a Float.
func Decode(word uint32) Float {
	sign := int64(1)
	if word&0x80000000 != 0 {
		sign = -1
	}
	rawExp := int64((word >> mantBits) & 0xff)
	exp := rawExp - bias
	prec := implicitBit | int64(word&0x7fffff)
	if rawExp == 0 {
		// Per spec.md: clear only the implicit bit, keep any mantissa
		// bits (a zero-exponent, non-zero-mantissa word decodes to a
		// small non-zero value). The source model's literal
		// `prec &= ~1 << 23` collapses these to prec=0 instead, due to
		// `~` binding tighter than `<<` in that expression; if hardware
		// captures ever show rawExp==0 with a non-zero mantissa
		// mismatching here, that discrepancy is the first place to look.
		prec &^= implicitBit
		exp = -126
	}
	return Float{Exp: exp, Prec: prec * sign}
}

// Encode packs f into its 32-bit representation. f should already be
// normalized; Encode does not normalize.
func (f Float) Encode() uint32 {
	absPrec := abs64(f.Prec)
	exp := f.Exp
	if absPrec == 0 {
		exp = -bias // forces biased exponent 0.
	}
	var signBit uint32
	if f.Prec < 0 {
		signBit = 1
	}
	return (signBit << 31) | (uint32(exp+bias) << mantBits) | (uint32(absPrec) & 0x7fffff)
}

// WithExp realigns f to the given target exponent, shifting Prec by the
// exponent difference (arithmetic shift, sign-preserving).
func (f Float) WithExp(target int64) Float {
	switch {
	case target > f.Exp:
		return Float{Exp: target, Prec: f.Prec >> uint(target-f.Exp)}
	case target < f.Exp:
		return Float{Exp: target, Prec: f.Prec << uint(f.Exp-target)}
	default:
		return f
	}
}

// Add returns a+b aligned to the smaller exponent, without normalizing.
func Add(a, b Float) Float {
	exp := minExp(a.Exp, b.Exp)
	return Float{Exp: exp, Prec: a.WithExp(exp).Prec + b.WithExp(exp).Prec}
}

// Sub returns a-b aligned to the smaller exponent, without normalizing.
func Sub(a, b Float) Float {
	exp := minExp(a.Exp, b.Exp)
	return Float{Exp: exp, Prec: a.WithExp(exp).Prec - b.WithExp(exp).Prec}
}

// Multiply returns a*b, without normalizing. The -23 exponent bias
// absorbs the implicit-bit scaling so that after Normalize the result's
// mantissa again lands in [2^23, 2^24).
func Multiply(a, b Float) Float {
	return Float{Exp: a.Exp + b.Exp - mantBits, Prec: a.Prec * b.Prec}
}

// Abs returns |f|, preserving its exponent.
func Abs(f Float) Float {
	return Float{Exp: f.Exp, Prec: abs64(f.Prec)}
}

// Greater reports whether a > b, after aligning exponents.
func Greater(a, b Float) bool {
	exp := minExp(a.Exp, b.Exp)
	return a.WithExp(exp).Prec > b.WithExp(exp).Prec
}

// Normalize rounds and clamps f so that, for finite non-zero values,
// |Prec| lies in [2^23, 2^24) and Exp in [-126, 127]. Zero flushes to
// Exp=-126, Prec=0. Normalize is idempotent.
func (f Float) Normalize() Float {
	exp := f.Exp
	prec := f.Prec

	shiftdown := bitLength((prec >> 24) ^ (prec >> 25))
	if shiftdown > 0 {
		prec = (prec + (int64(1) << uint(shiftdown-1))) >> uint(shiftdown)
	}
	exp += int64(shiftdown)

	if exp > expMax {
		exp = expMax
		sign := int64(1)
		if prec < 0 {
			sign = -1
		}
		prec = sign * (precMax - 1)
	}

	for abs64(prec) < implicitBit && exp > expMin {
		exp--
		prec <<= 1
	}
	for exp < expMin {
		exp++
		prec >>= 1
	}
	if abs64(prec) < implicitBit {
		prec = 0
	}

	return Float{Exp: exp, Prec: prec}
}

func bitLength(v int64) int {
	return bits.Len64(uint64(v))
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func minExp(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

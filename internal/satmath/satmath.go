/*
LEAP saturating integer arithmetic.

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

// Package satmath implements saturating 32-bit signed integer arithmetic:
// every operation clamps into range instead of wrapping or trapping.
package satmath

const (
	maxInt32 int64 = 1<<31 - 1
	minInt32 int64 = -(1 << 31)
)

// S32 reinterprets the low 32 bits of u as signed two's complement.
func S32(u uint32) int32 {
	return int32(u)
}

// U32 reinterprets i back into its unsigned 32-bit word representation.
func U32(i int32) uint32 {
	return uint32(i)
}

func clamp(v int64) int32 {
	if v > maxInt32 {
		return int32(maxInt32)
	}
	if v < minInt32 {
		return int32(minInt32)
	}
	return int32(v)
}

// SatAdd returns a+b, clamped to [-2^31, 2^31-1].
func SatAdd(a, b int32) int32 {
	return clamp(int64(a) + int64(b))
}

// SatSub returns a-b, clamped to [-2^31, 2^31-1].
func SatSub(a, b int32) int32 {
	return clamp(int64(a) - int64(b))
}

// SatNegAbs returns |x| saturated to 2^31-1, i.e. the magnitude of x with
// the one asymmetric two's-complement corner (-2^31) clamped down.
func SatNegAbs(x int32) int32 {
	if x < 0 {
		neg := -int64(x)
		if neg > maxInt32 {
			return int32(maxInt32)
		}
		return int32(neg)
	}
	return x
}

// AvgFloor returns (a+b)>>1 with floor rounding (toward negative
// infinity), matching the source model's use of floor division on
// signed integers. Go's >> on a signed type is already an arithmetic
// (sign-extending) shift, which is floor division by a power of two for
// both positive and negative operands, so no special-casing is needed.
func AvgFloor(a, b int32) int32 {
	return int32((int64(a) + int64(b)) >> 1)
}

// Median3 sorts a, b, c and returns the middle value.
func Median3(a, b, c int32) int32 {
	if a > b {
		a, b = b, a
	}
	// a <= b
	if b > c {
		b = c
	}
	// b is now min(orig b, c); a may exceed it
	if a > b {
		return a
	}
	return b
}

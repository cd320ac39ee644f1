/*
LEAP PDM decimation filter bank.

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

// Package pdm implements the six fixed pulse-density-modulation decimation
// filters (PDM1..PDM6). Each filter shares one parameterized shape: a tap
// table, a decimation ratio, and a phase-extraction width taken from
// operand 1.
package pdm

// Kind identifies one of the six PDM filters, numbered opcode-0x95.
type Kind int

const (
	PDM1 Kind = iota
	PDM2
	PDM3
	PDM4
	PDM5
	PDM6
	numKinds
)

// filter holds one PDM filter's fixed parameters.
type filter struct {
	coeffs       []int64
	ratio        uint64
	op1ShiftBits uint
}

var filters = [numKinds]filter{
	PDM1: {
		coeffs:       []int64{64, 256, 640, 1280, 1984, 2560, 2816, 2560, 1984, 1280, 640, 256, 64},
		ratio:        4,
		op1ShiftBits: 2,
	},
	PDM2: {
		coeffs: []int64{
			16, 80, 240, 560, 1040, 1616, 2160, 2480,
			2480, 2160, 1616, 1040, 560, 240, 80, 16,
		},
		ratio:        4,
		op1ShiftBits: 2,
	},
	PDM3: {
		coeffs:       []int64{256, 1024, 2560, 4096, 4864, 4096, 2560, 1024, 256},
		ratio:        3,
		op1ShiftBits: 3,
	},
	PDM4: {
		coeffs:       []int64{128, 640, 1920, 3840, 5760, 6528, 5760, 3840, 1920, 640, 128},
		ratio:        3,
		op1ShiftBits: 3,
	},
	PDM5: {
		coeffs: []int64{
			32, 128, 320, 640, 1120, 1664, 2176, 2560, 2720,
			2560, 2176, 1664, 1120, 640, 320, 128, 32,
		},
		ratio:        5,
		op1ShiftBits: 2,
	},
	PDM6: {
		coeffs: []int64{
			8, 40, 120, 280, 560, 968, 1480, 2040, 2560, 2920, 3048,
			2920, 2560, 2040, 1480, 968, 560, 280, 120, 40, 8,
		},
		ratio:        5,
		op1ShiftBits: 2,
	},
}

// Valid reports whether kind is one of the six defined PDM filters.
func Valid(kind Kind) bool {
	return kind >= PDM1 && kind < numKinds
}

// Apply runs the PDM filter identified by kind over op2, with the
// decimation phase derived from op1, and returns the masked 32-bit result.
func Apply(kind Kind, op1, op2 uint32) uint32 {
	f := filters[kind]

	shift := ((uint64(op1) << f.op1ShiftBits) >> 32) * f.ratio

	var sum int64
	for i, coeff := range f.coeffs {
		bit := (uint64(op2) << shift << uint(i)) >> 31 & 1
		if bit == 1 {
			sum += coeff
		} else {
			sum -= coeff
		}
	}

	return uint32(sum << 16)
}

/*
LEAP opcode dispatch table.

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

// Package opcode holds the LEAP 10-bit opcode space: named constants, a
// dense dispatch table keyed by opcode built once at init time, and the
// arithmetic semantics of every defined action.
package opcode

import (
	"math/bits"

	"github.com/rcornwell/leapstep/internal/cfloat"
	"github.com/rcornwell/leapstep/internal/pdm"
	"github.com/rcornwell/leapstep/internal/satmath"
)

// Opcode is the 10-bit decoded opcode value (OPCODE2<<8 | OPCODE1).
type Opcode uint16

// Integer and bitwise opcodes.
const (
	FracMult Opcode = 0x000

	Add      Opcode = 0x080
	AddDiv2  Opcode = 0x081
	Sub      Opcode = 0x082
	SubDiv2  Opcode = 0x083
	AddUns   Opcode = 0x084
	Abs      Opcode = 0x085
	Max      Opcode = 0x086
	Min      Opcode = 0x087
	Mux      Opcode = 0x088
	And      Opcode = 0x089
	Or       Opcode = 0x08a
	Xor      Opcode = 0x08b
	Clr      Opcode = 0x08c
	Zero     Opcode = 0x08d
	Add2     Opcode = 0x08e
	Add3     Opcode = 0x08f
	Zero2    Opcode = 0x090
	Zero3    Opcode = 0x091
	Zero4    Opcode = 0x092
	Clamp    Opcode = 0x093
	Rot      Opcode = 0x094
	PDM1     Opcode = 0x095
	PDM2     Opcode = 0x096
	PDM3     Opcode = 0x097
	PDM4     Opcode = 0x098
	PDM5     Opcode = 0x099
	PDM6     Opcode = 0x09a
	Cmp      Opcode = 0x09b
	Cmp2     Opcode = 0x09c
	Eq       Opcode = 0x09d
	Add4     Opcode = 0x09e
	Sub2     Opcode = 0x09f
)

// Side-effect, I/O-port opcodes. Never simulated: the dispatcher never
// registers a handler for this range, so they always report
// NotImplemented. Port I/O lives outside the core's scope entirely.
const (
	sideEffectLow  Opcode = 0xa0
	sideEffectHigh Opcode = 0xbf
)

// Custom-float opcodes.
const (
	FCmp   Opcode = 0x0e0
	FCmp2  Opcode = 0x0e1
	FMux   Opcode = 0x0e5
	F32Fmt Opcode = 0x0ed

	FAdd        Opcode = 0x1c0
	FAddAbs     Opcode = 0x1c1
	FAddDiv2    Opcode = 0x1c2
	FSub        Opcode = 0x1c3
	FSubAbs     Opcode = 0x1c4
	FSubDiv2    Opcode = 0x1c5
	FMult       Opcode = 0x1c6
	FMultAcc    Opcode = 0x1c7
	FMultNeg    Opcode = 0x1d6
	FMultAccNeg Opcode = 0x1d7
	FMultSub    Opcode = 0x1d8
)

// Fractional multiply family: MULT31 (shift 31, equivalent to FracMult)
// down to MULT0 (shift 0).
const (
	Mult31 Opcode = 0x2e0
	Mult0  Opcode = 0x2ff
)

// Status reports whether a dispatch produced a defined result.
type Status int

const (
	// OK indicates the opcode is defined and Result holds its output.
	OK Status = iota
	// NotImplemented indicates the opcode has no defined semantics here:
	// either it is unassigned, or it is a side-effect opcode (0xA0-0xBF)
	// deliberately excluded from this model.
	NotImplemented
)

// Operands holds the three operand values fetched for one instruction.
type Operands struct {
	Op1, Op2, Op3 uint32
}

type opFunc func(Operands) uint32

var table [1024]opFunc

func init() {
	register(FracMult, execFracMult)
	register(Add, execAdd)
	register(AddDiv2, execAddDiv2)
	register(Sub, execSub)
	register(SubDiv2, execSubDiv2)
	register(AddUns, execAddUns)
	register(Abs, execAbs)
	register(Max, execMax)
	register(Min, execMin)
	register(Mux, execMux)
	register(And, execAnd)
	register(Or, execOr)
	register(Xor, execXor)
	register(Clr, execClr)
	register(Zero, execZero)
	register(Zero2, execZero)
	register(Zero3, execZero)
	register(Zero4, execZero)
	register(Add2, execAdd2)
	register(Add3, execAdd2)
	register(Add4, execAdd2)
	register(Clamp, execClamp)
	register(Rot, execRot)
	register(Cmp, execCmp)
	register(Cmp2, execCmp2)
	register(Eq, execEq)
	register(Sub2, execSub2)

	registerPDM(PDM1, pdm.PDM1)
	registerPDM(PDM2, pdm.PDM2)
	registerPDM(PDM3, pdm.PDM3)
	registerPDM(PDM4, pdm.PDM4)
	registerPDM(PDM5, pdm.PDM5)
	registerPDM(PDM6, pdm.PDM6)

	register(FCmp, execFCmp)
	register(FCmp2, execFCmp)
	register(FMux, execFMux)
	register(F32Fmt, execF32Fmt)
	register(FAdd, execFAdd)
	register(FAddAbs, execFAddAbs)
	register(FAddDiv2, execFAddDiv2)
	register(FSub, execFSub)
	register(FSubAbs, execFSubAbs)
	register(FSubDiv2, execFSubDiv2)
	register(FMult, execFMult)
	register(FMultAcc, execFMultAcc)
	register(FMultNeg, execFMultNeg)
	register(FMultAccNeg, execFMultAccNeg)
	register(FMultSub, execFMultSub)

	for op := Mult31; op <= Mult0; op++ {
		shift := uint(Mult0 - op)
		register(op, fracMultShift(shift))
	}
}

func register(op Opcode, f opFunc) {
	table[op] = f
}

func registerPDM(op Opcode, kind pdm.Kind) {
	register(op, func(o Operands) uint32 {
		return pdm.Apply(kind, o.Op1, o.Op2)
	})
}

// Dispatch looks up and runs the handler for op. If op has no defined
// semantics (including the 0xA0-0xBF side-effect family), it reports
// NotImplemented and the returned value must be ignored.
func Dispatch(op Opcode, operands Operands) (uint32, Status) {
	if op >= sideEffectLow && op <= sideEffectHigh {
		return 0, NotImplemented
	}
	if int(op) >= len(table) {
		return 0, NotImplemented
	}
	fn := table[op]
	if fn == nil {
		return 0, NotImplemented
	}
	return fn(operands), OK
}

func execFracMult(o Operands) uint32 {
	return fracMultShift(31)(o)
}

func fracMultShift(shift uint) opFunc {
	return func(o Operands) uint32 {
		product := int64(satmath.S32(o.Op2)) * int64(satmath.S32(o.Op3))
		return uint32(product >> shift)
	}
}

func execAdd(o Operands) uint32 {
	return satmath.U32(satmath.SatAdd(satmath.S32(o.Op1), satmath.S32(o.Op2)))
}

func execAddDiv2(o Operands) uint32 {
	return satmath.U32(satmath.AvgFloor(satmath.S32(o.Op1), satmath.S32(o.Op2)))
}

func execSub(o Operands) uint32 {
	return satmath.U32(satmath.SatSub(satmath.S32(o.Op2), satmath.S32(o.Op1)))
}

func execSubDiv2(o Operands) uint32 {
	// Widen to int64 before negating op1: -MinInt32 overflows int32, so
	// satmath.AvgFloor's int32 signature can't carry this one safely.
	a := int64(satmath.S32(o.Op2))
	b := int64(satmath.S32(o.Op1))
	return satmath.U32(int32((a - b) >> 1))
}

func execAddUns(o Operands) uint32 {
	return o.Op1 + o.Op2
}

func execAbs(o Operands) uint32 {
	return satmath.U32(satmath.SatNegAbs(satmath.S32(o.Op1)))
}

func execMax(o Operands) uint32 {
	a, b := satmath.S32(o.Op1), satmath.S32(o.Op2)
	if a > b {
		return satmath.U32(a)
	}
	return satmath.U32(b)
}

func execMin(o Operands) uint32 {
	a, b := satmath.S32(o.Op1), satmath.S32(o.Op2)
	if a < b {
		return satmath.U32(a)
	}
	return satmath.U32(b)
}

func execMux(o Operands) uint32 {
	if o.Op3&0x80000000 != 0 {
		return o.Op2
	}
	return o.Op1
}

func execAnd(o Operands) uint32 { return o.Op1 & o.Op2 }
func execOr(o Operands) uint32  { return o.Op1 | o.Op2 }
func execXor(o Operands) uint32 { return o.Op1 ^ o.Op2 }
func execClr(o Operands) uint32 { return (^o.Op1) & o.Op2 }
func execZero(Operands) uint32  { return 0 }

func execAdd2(o Operands) uint32 {
	return (o.Op1 + o.Op2) & 0x7fffffff
}

func execClamp(o Operands) uint32 {
	return satmath.U32(satmath.Median3(satmath.S32(o.Op1), satmath.S32(o.Op2), satmath.S32(o.Op3)))
}

func execRot(o Operands) uint32 {
	return (o.Op1 << 1) | (o.Op1 >> 31)
}

func execCmp(o Operands) uint32 {
	if satmath.S32(o.Op1) > satmath.S32(o.Op2) {
		return 0x80000000
	}
	return 0
}

func execCmp2(o Operands) uint32 {
	if satmath.S32(o.Op1) >= satmath.S32(o.Op2) {
		return 0x80000000
	}
	return 0
}

func execEq(o Operands) uint32 {
	if o.Op1 == o.Op2 {
		return 0x80000000
	}
	return 0
}

func execSub2(o Operands) uint32 {
	return (o.Op2 - o.Op1) & 0x7fffffff
}

// unitFloat constructs the custom-float encoding of +1.0/-1.0/0.5 the way
// the source model builds them: an unnormalized (exp, prec) pair that
// Normalize brings to the right magnitude.
var (
	posOne = cfloat.Float{Exp: 23, Prec: 1}
	negOne = cfloat.Float{Exp: 23, Prec: -1}
	half   = cfloat.Float{Exp: 22, Prec: 1}
)

func execFCmp(o Operands) uint32 {
	if cfloat.Greater(cfloat.Decode(o.Op2), cfloat.Decode(o.Op1)) {
		return posOne.Normalize().Encode()
	}
	return negOne.Normalize().Encode()
}

func execFMux(o Operands) uint32 {
	var f cfloat.Float
	if o.Op3&0x80000000 != 0 {
		f = cfloat.Decode(o.Op2)
	} else {
		f = cfloat.Decode(o.Op1)
	}
	return f.Normalize().Encode()
}

func execF32Fmt(o Operands) uint32 {
	expRaw := satmath.S32(o.Op2) >> 24
	exp := int64(expRaw) - 8

	sign := int64(1)
	if o.Op3&0x80000000 != 0 {
		sign = -1
	}
	prec := int64(satmath.S32(o.Op3)) * sign // non-negative magnitude

	shiftdown := bits.Len64(uint64(prec)) - 24
	if shiftdown < 0 {
		shiftdown = 0
	}
	prec >>= uint(shiftdown)
	exp += int64(shiftdown)

	f := cfloat.Float{Exp: exp, Prec: prec * sign}
	return f.Normalize().Encode()
}

func execFAdd(o Operands) uint32 {
	return cfloat.Add(cfloat.Decode(o.Op1), cfloat.Decode(o.Op2)).Normalize().Encode()
}

func execFAddAbs(o Operands) uint32 {
	sum := cfloat.Add(cfloat.Decode(o.Op1), cfloat.Decode(o.Op2))
	return cfloat.Abs(sum).Normalize().Encode()
}

func execFAddDiv2(o Operands) uint32 {
	sum := cfloat.Add(cfloat.Decode(o.Op1), cfloat.Decode(o.Op2))
	return cfloat.Multiply(sum, half).Normalize().Encode()
}

func execFSub(o Operands) uint32 {
	return cfloat.Sub(cfloat.Decode(o.Op2), cfloat.Decode(o.Op1)).Normalize().Encode()
}

func execFSubAbs(o Operands) uint32 {
	diff := cfloat.Sub(cfloat.Decode(o.Op2), cfloat.Decode(o.Op1))
	return cfloat.Abs(diff).Normalize().Encode()
}

func execFSubDiv2(o Operands) uint32 {
	diff := cfloat.Sub(cfloat.Decode(o.Op2), cfloat.Decode(o.Op1))
	return cfloat.Multiply(diff, half).Normalize().Encode()
}

func execFMult(o Operands) uint32 {
	return cfloat.Multiply(cfloat.Decode(o.Op2), cfloat.Decode(o.Op3)).Normalize().Encode()
}

func execFMultAcc(o Operands) uint32 {
	product := cfloat.Multiply(cfloat.Decode(o.Op2), cfloat.Decode(o.Op3))
	return cfloat.Add(product, cfloat.Decode(o.Op1)).Normalize().Encode()
}

func execFMultNeg(o Operands) uint32 {
	product := cfloat.Multiply(cfloat.Decode(o.Op2), cfloat.Decode(o.Op3))
	return cfloat.Multiply(product, negOne).Normalize().Encode()
}

func execFMultAccNeg(o Operands) uint32 {
	product := cfloat.Multiply(cfloat.Decode(o.Op2), cfloat.Decode(o.Op3))
	acc := cfloat.Add(product, cfloat.Decode(o.Op1))
	return cfloat.Multiply(acc, negOne).Normalize().Encode()
}

func execFMultSub(o Operands) uint32 {
	product := cfloat.Multiply(cfloat.Decode(o.Op2), cfloat.Decode(o.Op3))
	return cfloat.Sub(cfloat.Decode(o.Op1), product).Normalize().Encode()
}

/*
LEAP instruction decode and execution step.

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

// Package leap ties the header decoder, the four register banks, and the
// opcode dispatcher together into one pure execution step.
package leap

import (
	"github.com/rcornwell/leapstep/internal/bitfield"
	"github.com/rcornwell/leapstep/internal/opcode"
)

// Header bit-field layout of instruction lane 0.
var (
	fieldOutAddr = bitfield.Field{Top: 31, Bottom: 19}
	fieldOpcode2 = bitfield.Field{Top: 18, Bottom: 17}
	fieldOutBank = bitfield.Field{Top: 15, Bottom: 14}
	fieldOp3Bank = bitfield.Field{Top: 13, Bottom: 12}
	fieldOp2Bank = bitfield.Field{Top: 11, Bottom: 10}
	fieldOp1Bank = bitfield.Field{Top: 9, Bottom: 8}
	fieldOpcode1 = bitfield.Field{Top: 7, Bottom: 0}
)

// numBanks is the number of register banks; bankSize is entries per bank.
const (
	numBanks = 4
	bankSize = 64
	// outAddrMask keeps only the bits meaningful against a 64-entry bank.
	outAddrMask = bankSize - 1
)

// Context is the sole mutable state: four banks of 64 32-bit words each.
// Bank 0 is conventionally the read-only sentinel source.
type Context struct {
	Banks [numBanks][bankSize]uint32
}

// Instruction is the four-lane 128-bit instruction word: a header lane
// plus one operand bank index per source bank.
type Instruction struct {
	I0, I1, I2, I3 uint32
}

// Status reports the outcome of Step.
type Status int

const (
	// OK indicates the instruction executed and Context reflects any
	// writeback.
	OK Status = iota
	// NotImplemented indicates the opcode has no defined semantics; the
	// returned Context is unchanged from the input.
	NotImplemented
)

type header struct {
	outAddr uint32
	op      opcode.Opcode
	outBank uint32
	op3Bank uint32
	op2Bank uint32
	op1Bank uint32
}

func decodeHeader(i0 uint32) header {
	opcode2 := fieldOpcode2.Extract(i0)
	opcode1 := fieldOpcode1.Extract(i0)
	return header{
		outAddr: fieldOutAddr.Extract(i0),
		op:      opcode.Opcode((opcode2 << 8) | opcode1),
		outBank: fieldOutBank.Extract(i0),
		op3Bank: fieldOp3Bank.Extract(i0),
		op2Bank: fieldOp2Bank.Extract(i0),
		op1Bank: fieldOp1Bank.Extract(i0),
	}
}

// fetch returns bank[bank][index], or 0 if index is out of range. Bank
// indices run 1..3, one per lane (I1 always reads bank 1, I2 bank 2, I3
// bank 3), regardless of which OPxBANK field later selects that lane.
func fetch(ctx Context, bank, index uint32) uint32 {
	if index >= bankSize {
		return 0
	}
	return ctx.Banks[bank][index]
}

// select picks the pre-fetched lane value named by bankSel: 0 is the
// always-zero sentinel, 1..3 pick b1/b2/b3 by bank number, not by
// operand slot (OP1BANK==3 selects b3, not the lane that fetched I1).
func selectOperand(bankSel, b1, b2, b3 uint32) uint32 {
	switch bankSel {
	case 1:
		return b1
	case 2:
		return b2
	case 3:
		return b3
	default:
		return 0
	}
}

// Step decodes and executes one LEAP instruction against ctx, returning
// the updated context and a status. Step never mutates its ctx argument
// in place; it returns a new value.
func Step(ctx Context, inst Instruction) (Context, Status) {
	h := decodeHeader(inst.I0)

	b1 := fetch(ctx, 1, inst.I1)
	b2 := fetch(ctx, 2, inst.I2)
	b3 := fetch(ctx, 3, inst.I3)

	operands := opcode.Operands{
		Op1: selectOperand(h.op1Bank, b1, b2, b3),
		Op2: selectOperand(h.op2Bank, b1, b2, b3),
		Op3: selectOperand(h.op3Bank, b1, b2, b3),
	}

	result, status := opcode.Dispatch(h.op, operands)
	if status != opcode.OK {
		return ctx, NotImplemented
	}

	if h.outBank != 0 {
		ctx.Banks[h.outBank][h.outAddr&outAddrMask] = result
	}
	return ctx, OK
}

package leap

import "testing"

func TestStepMuxSelectOp2(t *testing.T) {
	var ctx Context
	ctx.Banks[2][5] = 0xdeadbeef
	ctx.Banks[3][7] = 0x80000000

	inst := Instruction{I0: 0x00003a88, I1: 0, I2: 5, I3: 7}

	got, status := Step(ctx, inst)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if got.Banks[1][0] != 0xdeadbeef {
		t.Errorf("bank1[0] = %#x, want 0xdeadbeef", got.Banks[1][0])
	}
}

func TestStepAddSaturation(t *testing.T) {
	var ctx Context
	ctx.Banks[1][1] = 0x7fffffff
	ctx.Banks[2][2] = 0x00000001

	inst := Instruction{I0: 0x00184980, I1: 1, I2: 2, I3: 0}

	got, status := Step(ctx, inst)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if got.Banks[1][3] != 0x7fffffff {
		t.Errorf("bank1[3] = %#x, want 0x7fffffff", got.Banks[1][3])
	}
}

func TestStepFAdd(t *testing.T) {
	var ctx Context
	ctx.Banks[1][0] = 0x3f800000 // 1.0
	ctx.Banks[2][0] = 0x40000000 // 2.0

	inst := Instruction{I0: 0x000ec9c0, I1: 0, I2: 0, I3: 0}

	got, status := Step(ctx, inst)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if got.Banks[3][1] != 0x40400000 {
		t.Errorf("bank3[1] = %#x, want 0x40400000 (3.0)", got.Banks[3][1])
	}
}

func TestStepFracMult(t *testing.T) {
	var ctx Context
	ctx.Banks[1][0] = 0x40000000 // op2 source
	ctx.Banks[2][0] = 0x40000000 // op3 source

	// FRACMULT reads op2 and op3. OUTBANK=3, OP3BANK=2, OP2BANK=1, OPCODE1=0x00.
	i0 := uint32(3<<14) | uint32(2<<12) | uint32(1<<10) | 0x00
	inst := Instruction{I0: i0, I1: 0, I2: 0, I3: 0}

	got, status := Step(ctx, inst)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if got.Banks[3][0] != 0x20000000 {
		t.Errorf("bank3[0] = %#x, want 0x20000000", got.Banks[3][0])
	}
}

func TestStepZero(t *testing.T) {
	var ctx Context
	ctx.Banks[1][4] = 0x11111111

	i0 := uint32(4<<19) | uint32(2<<14) | 0x8d // ZERO, OUTBANK=2, OUTADDR=4.
	inst := Instruction{I0: i0}

	got, status := Step(ctx, inst)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if got.Banks[2][4] != 0 {
		t.Errorf("bank2[4] = %#x, want 0", got.Banks[2][4])
	}
}

func TestStepNotImplementedLeavesContextUnchanged(t *testing.T) {
	var ctx Context
	ctx.Banks[1][0] = 0xcafebabe

	i0 := uint32(1<<14) | 0xa0 // TAKE, with a live OUTBANK to prove it's ignored.
	inst := Instruction{I0: i0}

	got, status := Step(ctx, inst)
	if status != NotImplemented {
		t.Fatalf("status = %v, want NotImplemented", status)
	}
	if got != ctx {
		t.Errorf("context changed on NotImplemented: got %+v, want %+v", got, ctx)
	}
}

func TestFetchOutOfRangeIndexIsZero(t *testing.T) {
	var ctx Context
	ctx.Banks[1][0] = 0xffffffff

	// OP1BANK=1 but I1 index is out of range (>=64): operand must read 0.
	i0 := uint32(1<<14) | uint32(1<<8) | 0x80 // ADD, OUTBANK=1, OP1BANK=1, OP2BANK=0.
	inst := Instruction{I0: i0, I1: 200, I2: 0, I3: 0}

	got, status := Step(ctx, inst)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if got.Banks[1][0] != 0 {
		t.Errorf("bank1[0] = %#x, want 0 (out-of-range fetch substitutes 0)", got.Banks[1][0])
	}
}

func TestOperandSelectsByBankNumberNotBySlot(t *testing.T) {
	var ctx Context
	ctx.Banks[3][7] = 0xcafef00d // bank3, lane I3: the value OP1BANK=3 must read.
	ctx.Banks[3][5] = 0xdeadbeef // bank3, lane I1: must NOT be read for op1.

	// ADD with op2=0 passes op1 through unchanged. OP1BANK=3, OP2BANK=0,
	// OUTBANK=1, OUTADDR=0.
	i0 := uint32(1<<14) | uint32(3<<8) | 0x80
	inst := Instruction{I0: i0, I1: 5, I2: 0, I3: 7}

	got, status := Step(ctx, inst)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if got.Banks[1][0] != 0xcafef00d {
		t.Errorf("bank1[0] = %#x, want 0xcafef00d (bank3[I3], not bank3[I1])", got.Banks[1][0])
	}
}

func TestFetchBankZeroIsAlwaysZero(t *testing.T) {
	var ctx Context
	ctx.Banks[0][0] = 0xffffffff // bank 0 is never a legal source value; selecting it means "0".

	i0 := uint32(1<<14) | 0x80 // ADD, OP1BANK=0, OP2BANK=0, OUTBANK=1.
	inst := Instruction{I0: i0, I1: 0, I2: 0, I3: 0}

	got, status := Step(ctx, inst)
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if got.Banks[1][0] != 0 {
		t.Errorf("bank1[0] = %#x, want 0", got.Banks[1][0])
	}
}

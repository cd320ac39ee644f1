package opcode

import "testing"

func TestDispatchSideEffectOpcodesNotImplemented(t *testing.T) {
	for op := sideEffectLow; op <= sideEffectHigh; op++ {
		if _, status := Dispatch(op, Operands{}); status != NotImplemented {
			t.Errorf("Dispatch(%#x) status = %v, want NotImplemented", op, status)
		}
	}
}

func TestDispatchUndefinedOpcodeNotImplemented(t *testing.T) {
	undefined := []Opcode{0x001, 0x0ff, 0x1ff, 0x3ff}
	for _, op := range undefined {
		if _, status := Dispatch(op, Operands{}); status != NotImplemented {
			t.Errorf("Dispatch(%#x) status = %v, want NotImplemented", op, status)
		}
	}
}

func TestFracMult(t *testing.T) {
	got, status := Dispatch(FracMult, Operands{Op2: 0x40000000, Op3: 0x40000000})
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	want := uint32((int64(0x40000000) * int64(0x40000000)) >> 31)
	if got != want {
		t.Errorf("FRACMULT = %#x, want %#x", got, want)
	}
}

func TestFractionalMultiplyShiftFamily(t *testing.T) {
	// Mult31 (0x2e0) must equal FRACMULT.
	a, s1 := Dispatch(Mult31, Operands{Op2: 0x12345678, Op3: 0x2468ace0})
	b, s2 := Dispatch(FracMult, Operands{Op2: 0x12345678, Op3: 0x2468ace0})
	if s1 != OK || s2 != OK || a != b {
		t.Errorf("Mult31 = %#x (status %v), FRACMULT = %#x (status %v), want equal", a, s1, b, s2)
	}

	got, status := Dispatch(Mult0, Operands{Op2: 7, Op3: 9})
	if status != OK {
		t.Fatalf("status = %v, want OK", status)
	}
	if want := uint32(7 * 9); got != want {
		t.Errorf("Mult0 = %#x, want %#x", got, want)
	}
}

func TestAdd(t *testing.T) {
	got, status := Dispatch(Add, Operands{Op1: 5, Op2: 7})
	if status != OK || got != 12 {
		t.Errorf("ADD(5,7) = %#x (status %v), want 12", got, status)
	}
}

func TestAddSaturates(t *testing.T) {
	got, _ := Dispatch(Add, Operands{Op1: 0x7fffffff, Op2: 1})
	if got != 0x7fffffff {
		t.Errorf("ADD saturate = %#x, want 0x7fffffff", got)
	}
}

func TestSub(t *testing.T) {
	// op2 - op1
	got, _ := Dispatch(Sub, Operands{Op1: 3, Op2: 10})
	if got != 7 {
		t.Errorf("SUB(op1=3,op2=10) = %#x, want 7", got)
	}
}

func TestAddDiv2(t *testing.T) {
	got, _ := Dispatch(AddDiv2, Operands{Op1: uint32(int32(-3)), Op2: uint32(int32(-4))})
	if int32(got) != -4 {
		t.Errorf("ADD_DIV2(-3,-4) = %d, want -4", int32(got))
	}
}

func TestSubDiv2(t *testing.T) {
	got, _ := Dispatch(SubDiv2, Operands{Op1: uint32(int32(3)), Op2: uint32(int32(10))})
	if int32(got) != 3 {
		t.Errorf("SUB_DIV2(op1=3,op2=10) = %d, want 3", int32(got))
	}
}

func TestSubDiv2MinInt32OperandDoesNotOverflow(t *testing.T) {
	// op1 = MinInt32: negating it in int32 would overflow; the correct
	// result floors (op2 - op1)/2 in wider arithmetic.
	got, _ := Dispatch(SubDiv2, Operands{Op1: 0x80000000, Op2: 0})
	want := int32((int64(0) - int64(int32(0x80000000))) >> 1)
	if int32(got) != want {
		t.Errorf("SUB_DIV2(op1=MinInt32,op2=0) = %d, want %d", int32(got), want)
	}
}

func TestAbs(t *testing.T) {
	got, _ := Dispatch(Abs, Operands{Op1: uint32(int32(-5))})
	if got != 5 {
		t.Errorf("ABS(-5) = %d, want 5", int32(got))
	}
}

func TestMax(t *testing.T) {
	got, _ := Dispatch(Max, Operands{Op1: uint32(int32(-1)), Op2: 3})
	if got != 3 {
		t.Errorf("MAX(-1,3) = %d, want 3", int32(got))
	}
}

func TestMin(t *testing.T) {
	got, _ := Dispatch(Min, Operands{Op1: uint32(int32(-1)), Op2: 3})
	if int32(got) != -1 {
		t.Errorf("MIN(-1,3) = %d, want -1", int32(got))
	}
}

func TestMux(t *testing.T) {
	lo, _ := Dispatch(Mux, Operands{Op1: 0xaaaa, Op2: 0xbbbb, Op3: 0})
	if lo != 0xaaaa {
		t.Errorf("MUX(top bit clear) = %#x, want 0xaaaa", lo)
	}
	hi, _ := Dispatch(Mux, Operands{Op1: 0xaaaa, Op2: 0xbbbb, Op3: 0x80000000})
	if hi != 0xbbbb {
		t.Errorf("MUX(top bit set) = %#x, want 0xbbbb", hi)
	}
}

func TestBitwise(t *testing.T) {
	o := Operands{Op1: 0x0f0f0f0f, Op2: 0x00ff00ff}
	if got, _ := Dispatch(And, o); got != 0x000f000f {
		t.Errorf("AND = %#x", got)
	}
	if got, _ := Dispatch(Or, o); got != 0x0fff0fff {
		t.Errorf("OR = %#x", got)
	}
	if got, _ := Dispatch(Xor, o); got != 0x0ff00ff0 {
		t.Errorf("XOR = %#x", got)
	}
	if got, _ := Dispatch(Clr, o); got != (^o.Op1)&o.Op2 {
		t.Errorf("CLR = %#x", got)
	}
}

func TestZeroFamily(t *testing.T) {
	for _, op := range []Opcode{Zero, Zero2, Zero3, Zero4} {
		if got, status := Dispatch(op, Operands{Op1: 1, Op2: 2, Op3: 3}); status != OK || got != 0 {
			t.Errorf("opcode %#x = %#x (status %v), want 0", op, got, status)
		}
	}
}

func TestAddFamilyClearsTopBit(t *testing.T) {
	for _, op := range []Opcode{Add2, Add3, Add4} {
		got, _ := Dispatch(op, Operands{Op1: 0x7fffffff, Op2: 0x7fffffff})
		if got&0x80000000 != 0 {
			t.Errorf("opcode %#x = %#x, top bit must be clear", op, got)
		}
	}
}

func TestClamp(t *testing.T) {
	got, _ := Dispatch(Clamp, Operands{
		Op1: uint32(int32(5)), Op2: uint32(int32(1)), Op3: uint32(int32(3)),
	})
	if int32(got) != 3 {
		t.Errorf("CLAMP(5,1,3) = %d, want 3", int32(got))
	}
}

func TestRot(t *testing.T) {
	got, _ := Dispatch(Rot, Operands{Op1: 0x80000001})
	if got != 0x00000003 {
		t.Errorf("ROT(0x80000001) = %#x, want 0x3", got)
	}
}

func TestPDMOpcodesDispatch(t *testing.T) {
	for _, op := range []Opcode{PDM1, PDM2, PDM3, PDM4, PDM5, PDM6} {
		if _, status := Dispatch(op, Operands{Op1: 0x1, Op2: 0xdeadbeef}); status != OK {
			t.Errorf("opcode %#x status = %v, want OK", op, status)
		}
	}
}

func TestCompareFamily(t *testing.T) {
	gt, _ := Dispatch(Cmp, Operands{Op1: 5, Op2: 3})
	if gt != 0x80000000 {
		t.Errorf("CMP(5,3) = %#x, want 0x80000000", gt)
	}
	eqCmp, _ := Dispatch(Cmp, Operands{Op1: 3, Op2: 3})
	if eqCmp != 0 {
		t.Errorf("CMP(3,3) = %#x, want 0", eqCmp)
	}
	ge, _ := Dispatch(Cmp2, Operands{Op1: 3, Op2: 3})
	if ge != 0x80000000 {
		t.Errorf("CMP2(3,3) = %#x, want 0x80000000", ge)
	}
	eq, _ := Dispatch(Eq, Operands{Op1: 9, Op2: 9})
	if eq != 0x80000000 {
		t.Errorf("EQ(9,9) = %#x, want 0x80000000", eq)
	}
}

func TestSub2(t *testing.T) {
	got, _ := Dispatch(Sub2, Operands{Op1: 3, Op2: 10})
	if got != 7 {
		t.Errorf("SUB2(op1=3,op2=10) = %#x, want 7", got)
	}
}

func TestFCmp(t *testing.T) {
	one := uint32(0x3f800000)
	two := uint32(0x40000000)
	got, status := Dispatch(FCmp, Operands{Op1: one, Op2: two})
	if status != OK || got != 0x3f800000 {
		t.Errorf("FCMP(op1=1.0,op2=2.0) = %#x (status %v), want +1.0 encoded", got, status)
	}
	got2, _ := Dispatch(FCmp, Operands{Op1: two, Op2: one})
	if got2 != 0xbf800000 {
		t.Errorf("FCMP(op1=2.0,op2=1.0) = %#x, want -1.0 encoded", got2)
	}
}

func TestFMux(t *testing.T) {
	one := uint32(0x3f800000)
	two := uint32(0x40000000)
	lo, _ := Dispatch(FMux, Operands{Op1: one, Op2: two, Op3: 0})
	if lo != one {
		t.Errorf("FMUX(top bit clear) = %#x, want op1", lo)
	}
	hi, _ := Dispatch(FMux, Operands{Op1: one, Op2: two, Op3: 0x80000000})
	if hi != two {
		t.Errorf("FMUX(top bit set) = %#x, want op2", hi)
	}
}

func TestFAddOnePlusTwo(t *testing.T) {
	one := uint32(0x3f800000)
	two := uint32(0x40000000)
	got, status := Dispatch(FAdd, Operands{Op1: one, Op2: two})
	if status != OK || got != 0x40400000 {
		t.Errorf("FADD(1.0,2.0) = %#x (status %v), want 0x40400000 (3.0)", got, status)
	}
}

func TestFMultByZero(t *testing.T) {
	three := uint32(0x40400000)
	got, _ := Dispatch(FMult, Operands{Op2: three, Op3: 0})
	if got&0x7fffffff != 0 {
		t.Errorf("FMULT(3.0,0) = %#x, want encoded zero", got)
	}
}

func TestFMultSub(t *testing.T) {
	one := uint32(0x3f800000)
	got, status := Dispatch(FMultSub, Operands{Op1: one, Op2: 0, Op3: one})
	if status != OK || got&0x7fffffff != 0x3f800000&0x7fffffff {
		t.Errorf("FMULTSUB(1.0, 0*1.0) = %#x, want 1.0 encoded", got)
	}
}

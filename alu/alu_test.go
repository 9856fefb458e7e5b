package alu

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

// flags is a compact way to write expected outputs: c z n v p
func flags(value uint16, c, v bool) Outputs {
	return Outputs{
		Value:    value,
		CarryOut: c,
		Zero:     value == 0,
		Negative: value&0x8000 != 0,
		Overflow: v,
		Parity:   bits.OnesCount16(value)%2 == 0,
	}
}

func TestAdd16(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		a, b   uint16
		carry  bool
		output Outputs
	}){
		{"simple", 0x0001, 0x0002, false, flags(0x0003, false, false)},
		{"wrap", 0xffff, 0x0002, false, flags(0x0001, true, true)},
		{"wrap_zero", 0x8000, 0x8000, false, flags(0x0000, true, true)},
		{"signed_no_wrap", 0x7fff, 0x0001, false, flags(0x8000, false, false)},
		{"carry_in", 0x0001, 0x0002, true, flags(0x0004, false, false)},
		{"carry_in_wrap", 0xffff, 0x0000, true, flags(0x0000, true, true)},
		{"carry_in_max", 0xffff, 0xffff, true, flags(0xffff, true, true)},
	}

	for _, entry := range table {
		out := Add16Carry(entry.a, entry.b, entry.carry)
		assert.Equal(entry.output, out, entry.name)
		if !entry.carry {
			assert.Equal(entry.output, Add16(entry.a, entry.b), entry.name)
		}
	}

	out := Add16(0xffff, 0x0002)
	assert.Equal(uint16(0x0001), out.Value)
	assert.True(out.Overflow)
}

func TestAdd16_Commutative(t *testing.T) {
	assert := assert.New(t)

	for a := 0; a < 0x10000; a += 0x1ff {
		for b := 0; b < 0x10000; b += 0x2fd {
			assert.Equal(Add16(uint16(a), uint16(b)), Add16(uint16(b), uint16(a)))
			assert.Equal(uint16((a+b)%0x10000), Add16(uint16(a), uint16(b)).Value)
		}
	}
}

func TestSub16(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		a, b   uint16
		borrow bool
		output Outputs
	}){
		{"simple", 0x0003, 0x0002, false, flags(0x0001, false, false)},
		{"equal", 0x1234, 0x1234, false, flags(0x0000, false, false)},
		{"borrow", 0x0000, 0x0001, false, flags(0xffff, true, false)},
		{"signed_overflow", 0x8000, 0x0001, false, flags(0x7fff, false, true)},
		{"signed_overflow_neg", 0x7fff, 0xffff, false, flags(0x8000, true, true)},
		{"borrow_in", 0x0003, 0x0002, true, flags(0x0000, false, false)},
		{"borrow_in_wrap", 0x0000, 0x0000, true, flags(0xffff, true, false)},
		{"borrow_in_max", 0x0000, 0xffff, true, flags(0x0000, true, false)},
	}

	for _, entry := range table {
		out := Sub16Borrow(entry.a, entry.b, entry.borrow)
		assert.Equal(entry.output, out, entry.name)
		if !entry.borrow {
			assert.Equal(entry.output, Sub16(entry.a, entry.b), entry.name)
		}
	}
}

func TestNeg16(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(flags(0x0000, false, false), Neg16(0x0000))
	assert.Equal(flags(0xffff, true, false), Neg16(0x0001))
	assert.Equal(flags(0x0001, true, false), Neg16(0xffff))
	assert.Equal(flags(0x8000, true, true), Neg16(0x8000))
	assert.Equal(flags(0x8001, true, false), Neg16(0x7fff))
}

func TestInc16(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(flags(0x0001, false, false), Inc16(0x0000))
	assert.Equal(flags(0x8000, false, false), Inc16(0x7fff))
	assert.Equal(flags(0x0000, true, true), Inc16(0xffff))
}

func TestPass16(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(flags(0x0000, false, false), Pass16(0x0000))
	assert.Equal(flags(0x8003, false, false), Pass16(0x8003))
}

func TestLogic(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(flags(0x0f00, false, false), And16(0xff00, 0x0ff0))
	assert.Equal(flags(0xfff0, false, false), Or16(0xff00, 0x0ff0))
	assert.Equal(flags(0xf0f0, false, false), Xor16(0xff00, 0x0ff0))
	assert.Equal(flags(0x0000, false, false), Xor16(0xa5a5, 0xa5a5))
	assert.Equal(flags(0x00ff, false, false), Complement(0xff00))
	assert.Equal(flags(0x0000, false, false), Complement(0xffff))
}

func TestComplement_Involution(t *testing.T) {
	assert := assert.New(t)

	for a := range 0x10000 {
		assert.Equal(uint16(a), Complement(Complement(uint16(a)).Value).Value)
	}
}

func TestParity(t *testing.T) {
	assert := assert.New(t)

	// Parity is set for an even number of 1 bits, including zero of them.
	assert.True(Pass16(0x0000).Parity)
	assert.False(Pass16(0x0001).Parity)
	assert.True(Pass16(0x0003).Parity)
	assert.False(Pass16(0x0007).Parity)
	assert.True(Pass16(0xffff).Parity)
	assert.False(Pass16(0x7fff).Parity)
}

func TestShift(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     func(a, b uint16) Outputs
		a, b   uint16
		output Outputs
	}){
		{"ushl_1", UShift16L, 0x8001, 1, flags(0x0002, true, false)},
		{"ushl_4", UShift16L, 0x1234, 4, flags(0x2340, true, false)},
		{"ushl_15", UShift16L, 0x0003, 15, flags(0x8000, true, false)},
		{"ushl_16", UShift16L, 0x1234, 16, flags(0x1234, false, false)},
		{"ushr_1", UShift16R, 0x8001, 1, flags(0x4000, true, false)},
		{"ushr_4", UShift16R, 0x1234, 4, flags(0x0123, false, false)},
		{"ushr_17", UShift16R, 0x1234, 17, flags(0x091a, false, false)},
		{"shr_neg", Shift16R, 0x8000, 4, flags(0xf800, false, false)},
		{"shr_pos", Shift16R, 0x4001, 1, flags(0x2000, true, false)},
		{"shr_15", Shift16R, 0x8000, 15, flags(0xffff, false, false)},
		{"shl_pos", Shift16L, 0x0001, 4, flags(0x0010, false, false)},
		{"shl_neg", Shift16L, 0xffff, 1, flags(0xfffe, true, false)},
		{"shl_overflow", Shift16L, 0x4000, 1, flags(0x0000, true, true)},
		{"shl_keeps_sign", Shift16L, 0xc000, 1, flags(0x8000, true, false)},
		{"shl_neg_overflow", Shift16L, 0x8001, 1, flags(0x8002, false, true)},
		{"shl_0", Shift16L, 0x1234, 0, flags(0x1234, false, false)},
	}

	for _, entry := range table {
		assert.Equal(entry.output, entry.op(entry.a, entry.b), entry.name)
	}
}

func TestRotate(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(flags(0x0003, true, false), Rot16L(0x8001, 1))
	assert.Equal(flags(0x2341, true, false), Rot16L(0x1234, 4))
	assert.Equal(flags(0xc000, true, false), Rot16R(0x8001, 1))
	assert.Equal(flags(0x4123, false, false), Rot16R(0x1234, 4))

	for a := 0; a < 0x10000; a += 0x3f1 {
		assert.Equal(uint16(a), Rot16L(uint16(a), 16).Value)
		assert.Equal(uint16(a), Rot16R(uint16(a), 16).Value)
		for n := range uint16(16) {
			assert.Equal(uint16(a), Rot16R(Rot16L(uint16(a), n).Value, n).Value)
		}
	}
}

func TestRotateCarry(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(flags(0x0002, true, false), Rot16LCarry(0x8001, 1, false))
	assert.Equal(flags(0x0003, true, false), Rot16LCarry(0x8001, 1, true))
	assert.Equal(flags(0x0001, false, false), Rot16LCarry(0x0000, 1, true))
	assert.Equal(flags(0x4000, true, false), Rot16RCarry(0x8001, 1, false))
	assert.Equal(flags(0xc000, true, false), Rot16RCarry(0x8001, 1, true))
	assert.Equal(flags(0x8000, false, false), Rot16RCarry(0x0000, 1, true))

	// Zero amount leaves the ring untouched.
	assert.Equal(flags(0x1234, true, false), Rot16LCarry(0x1234, 16, true))
	assert.Equal(flags(0x1234, false, false), Rot16RCarry(0x1234, 0, false))

	for a := 0; a < 0x10000; a += 0x3f1 {
		for n := range uint16(16) {
			for _, carry := range []bool{false, true} {
				left := Rot16LCarry(uint16(a), n, carry)
				right := Rot16RCarry(left.Value, n, left.CarryOut)
				assert.Equal(uint16(a), right.Value)
				assert.Equal(carry, right.CarryOut)
			}
		}
	}
}

func TestDo(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Add16(3, 4), Do(OP_ADD, 3, 4, true))
	assert.Equal(Add16Carry(3, 4, true), Do(OP_ADD_C, 3, 4, true))
	assert.Equal(Sub16Borrow(3, 4, true), Do(OP_SUB_B, 3, 4, true))
	assert.Equal(Neg16(3), Do(OP_NEG, 3, 4, false))
	assert.Equal(Rot16RCarry(3, 4, true), Do(OP_ROTR_C, 3, 4, true))
	assert.Equal(Pass16(3), Do(OP_COUNT, 3, 4, false))

	assert.True(OP_NOT.Unary())
	assert.False(OP_XOR.Unary())
	assert.Equal("rotlc", OP_ROTL_C.String())
	assert.Equal("Op(99)", Op(99).String())
}

func TestOutputs_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0000 cZnvP", Pass16(0).String())
	assert.Equal("0001 CznVp", Add16(0xffff, 2).String())
}

func FuzzAlu(f *testing.F) {
	f.Add(uint16(0), uint16(0), false)
	f.Add(uint16(0xffff), uint16(0x0002), true)
	f.Add(uint16(0x8000), uint16(0x8000), false)
	f.Add(uint16(0x7fff), uint16(17), true)

	f.Fuzz(func(t *testing.T, a uint16, b uint16, carry bool) {
		assert := assert.New(t)

		for op := range OP_COUNT {
			out := Do(op, a, b, carry)
			assert.Equal(out.Value == 0, out.Zero, op.String())
			assert.Equal(out.Value&0x8000 != 0, out.Negative, op.String())
			assert.Equal(bits.OnesCount16(out.Value)%2 == 0, out.Parity, op.String())
			assert.Equal(out, Do(op, a, b, carry), op.String())
		}

		assert.Equal(a, Complement(Complement(a).Value).Value)
		assert.Equal(Add16(a, b), Add16(b, a))
		assert.Equal(a, Rot16L(a, 16).Value)
		assert.Equal(a, Rot16R(a, 16).Value)
		assert.Equal(a, Add16(Sub16(a, b).Value, b).Value)
	})
}

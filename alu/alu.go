// Package alu implements the 16-bit arithmetic/logic unit.
//
// Every operation is a pure function of its operands and returns a fresh
// Outputs value. Flag conventions shared by all operations:
//
//   - Zero is set when Value is 0.
//   - Negative is set when bit 15 of Value is set.
//   - Parity is set when Value has an even number of 1 bits.
//   - CarryOut is the 17th bit of an addition, the borrow of a subtraction,
//     or the last bit shifted or rotated out of the 16-bit window.
//   - Overflow is set when the signed result is not the mathematically
//     correct signed result. Addition is the exception: it reports
//     Overflow when the unsigned sum wraps past 0xFFFF.
//
// Shift and rotate amounts are reduced modulo 16.
package alu

import (
	"fmt"
	"math/bits"
)

const (
	WIDTH      = 16     // Bits per ALU word.
	SIGN_BIT   = 0x8000 // Sign bit of an ALU word.
	SHIFT_MASK = 0xf    // Shift and rotate amounts are taken modulo 16.
)

// Outputs are the value and flags produced by a single ALU operation.
type Outputs struct {
	Value    uint16 // Result of the operation.
	CarryOut bool   // Carry, borrow, or bit shifted out.
	Zero     bool   // Value is zero.
	Negative bool   // Bit 15 of Value is set.
	Overflow bool   // Result does not fit (see package documentation).
	Parity   bool   // Value has an even number of set bits.
}

// String returns the value and a flag summary, upper case when set.
func (out Outputs) String() string {
	flag := func(set bool, name rune) rune {
		if set {
			return name - 'a' + 'A'
		}
		return name
	}

	return fmt.Sprintf("%04x %c%c%c%c%c", out.Value,
		flag(out.CarryOut, 'c'),
		flag(out.Zero, 'z'),
		flag(out.Negative, 'n'),
		flag(out.Overflow, 'v'),
		flag(out.Parity, 'p'))
}

// outputs builds the flag set for a value.
func outputs(value uint16, carry bool, overflow bool) Outputs {
	return Outputs{
		Value:    value,
		CarryOut: carry,
		Zero:     value == 0,
		Negative: (value & SIGN_BIT) != 0,
		Overflow: overflow,
		Parity:   (bits.OnesCount16(value) & 1) == 0,
	}
}

func bit(carry bool) uint32 {
	if carry {
		return 1
	}
	return 0
}

// Add16 adds b to a, modulo 65536.
func Add16(a, b uint16) Outputs {
	return Add16Carry(a, b, false)
}

// Add16Carry adds b and the carry bit to a, modulo 65536.
func Add16Carry(a, b uint16, carry bool) Outputs {
	sum := uint32(a) + uint32(b) + bit(carry)
	wrapped := sum > 0xffff
	return outputs(uint16(sum), wrapped, wrapped)
}

// Sub16 subtracts b from a, modulo 65536.
func Sub16(a, b uint16) Outputs {
	return Sub16Borrow(a, b, false)
}

// Sub16Borrow subtracts b and the borrow bit from a, modulo 65536.
// CarryOut is the borrow out of bit 15.
func Sub16Borrow(a, b uint16, borrow bool) Outputs {
	subtrahend := uint32(b) + bit(borrow)
	value := uint16(uint32(a) - subtrahend)
	signed := int32(int16(a)) - int32(int16(b)) - int32(bit(borrow))
	return outputs(value, uint32(a) < subtrahend, signed != int32(int16(value)))
}

// Neg16 returns the two's complement of a. Negating 0x8000 wraps back to
// 0x8000 and sets Overflow.
func Neg16(a uint16) Outputs {
	value := -a
	return outputs(value, a != 0, a == SIGN_BIT)
}

// Inc16 adds one to a.
func Inc16(a uint16) Outputs {
	return Add16(a, 1)
}

// Pass16 latches a through the flag logic.
func Pass16(a uint16) Outputs {
	return outputs(a, false, false)
}

// And16 is the bitwise AND of a and b.
func And16(a, b uint16) Outputs {
	return outputs(a&b, false, false)
}

// Or16 is the bitwise OR of a and b.
func Or16(a, b uint16) Outputs {
	return outputs(a|b, false, false)
}

// Xor16 is the bitwise exclusive OR of a and b.
func Xor16(a, b uint16) Outputs {
	return outputs(a^b, false, false)
}

// Complement flips every bit of a.
func Complement(a uint16) Outputs {
	return outputs(^a, false, false)
}

// Shift16L is an arithmetic left shift of a by b bits. Bit 15 is
// preserved, the low 15 bits are shifted, and CarryOut is the last bit
// pushed out of them. Overflow is set when a * 2^b does not fit in a
// signed 16-bit value.
func Shift16L(a, b uint16) Outputs {
	n := uint(b & SHIFT_MASK)
	if n == 0 {
		return outputs(a, false, false)
	}

	value := (a & SIGN_BIT) | ((a << n) &^ SIGN_BIT)
	carry := ((a >> (WIDTH - 1 - n)) & 1) != 0
	product := int32(int16(a)) << n
	return outputs(value, carry, product != int32(int16(value)))
}

// Shift16R is an arithmetic right shift of a by b bits, replicating bit 15.
func Shift16R(a, b uint16) Outputs {
	n := uint(b & SHIFT_MASK)
	if n == 0 {
		return outputs(a, false, false)
	}

	value := uint16(int16(a) >> n)
	carry := ((a >> (n - 1)) & 1) != 0
	return outputs(value, carry, false)
}

// UShift16L is a logical left shift of a by b bits.
func UShift16L(a, b uint16) Outputs {
	n := uint(b & SHIFT_MASK)
	if n == 0 {
		return outputs(a, false, false)
	}

	carry := ((a >> (WIDTH - n)) & 1) != 0
	return outputs(a<<n, carry, false)
}

// UShift16R is a logical right shift of a by b bits.
func UShift16R(a, b uint16) Outputs {
	n := uint(b & SHIFT_MASK)
	if n == 0 {
		return outputs(a, false, false)
	}

	carry := ((a >> (n - 1)) & 1) != 0
	return outputs(a>>n, carry, false)
}

// Rot16L rotates a left by b bits. CarryOut is the last bit carried
// from bit 15 around into bit 0.
func Rot16L(a, b uint16) Outputs {
	n := int(b & SHIFT_MASK)
	if n == 0 {
		return outputs(a, false, false)
	}

	value := bits.RotateLeft16(a, n)
	return outputs(value, (value&1) != 0, false)
}

// Rot16R rotates a right by b bits. CarryOut is the last bit carried
// from bit 0 around into bit 15.
func Rot16R(a, b uint16) Outputs {
	n := int(b & SHIFT_MASK)
	if n == 0 {
		return outputs(a, false, false)
	}

	value := bits.RotateLeft16(a, -n)
	return outputs(value, (value&SIGN_BIT) != 0, false)
}

// Rot16LCarry rotates the 17-bit ring formed by the carry and a left by
// b bits. CarryOut is the carry position of the ring afterwards.
func Rot16LCarry(a, b uint16, carry bool) Outputs {
	n := int(b & SHIFT_MASK)
	ring := (bit(carry) << WIDTH) | uint32(a)
	ring = ((ring << n) | (ring >> (WIDTH + 1 - n))) & 0x1ffff
	return outputs(uint16(ring), (ring>>WIDTH) != 0, false)
}

// Rot16RCarry rotates the 17-bit ring formed by the carry and a right by
// b bits. CarryOut is the carry position of the ring afterwards.
func Rot16RCarry(a, b uint16, carry bool) Outputs {
	n := int(b & SHIFT_MASK)
	ring := (bit(carry) << WIDTH) | uint32(a)
	ring = ((ring >> n) | (ring << (WIDTH + 1 - n))) & 0x1ffff
	return outputs(uint16(ring), (ring>>WIDTH) != 0, false)
}

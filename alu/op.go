package alu

// Op selects an ALU operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD    = Op(0)  // add
	OP_ADD_C  = Op(1)  // addc
	OP_SUB    = Op(2)  // sub
	OP_SUB_B  = Op(3)  // subb
	OP_NEG    = Op(4)  // neg
	OP_INC    = Op(5)  // inc
	OP_PASS   = Op(6)  // pass
	OP_AND    = Op(7)  // and
	OP_OR     = Op(8)  // or
	OP_XOR    = Op(9)  // xor
	OP_NOT    = Op(10) // not
	OP_SHL    = Op(11) // shl
	OP_SHR    = Op(12) // shr
	OP_USHL   = Op(13) // ushl
	OP_USHR   = Op(14) // ushr
	OP_ROTL   = Op(15) // rotl
	OP_ROTR   = Op(16) // rotr
	OP_ROTL_C = Op(17) // rotlc
	OP_ROTR_C = Op(18) // rotrc
	OP_COUNT  = Op(19) // count
)

// Unary returns true if the operation ignores its b operand.
func (op Op) Unary() bool {
	switch op {
	case OP_NEG, OP_INC, OP_PASS, OP_NOT:
		return true
	}
	return false
}

// Do performs op on a and b. Carry is only consumed by OP_ADD_C, OP_SUB_B,
// OP_ROTL_C and OP_ROTR_C. An unknown op passes a through.
func Do(op Op, a, b uint16, carry bool) (out Outputs) {
	switch op {
	case OP_ADD:
		out = Add16(a, b)
	case OP_ADD_C:
		out = Add16Carry(a, b, carry)
	case OP_SUB:
		out = Sub16(a, b)
	case OP_SUB_B:
		out = Sub16Borrow(a, b, carry)
	case OP_NEG:
		out = Neg16(a)
	case OP_INC:
		out = Inc16(a)
	case OP_AND:
		out = And16(a, b)
	case OP_OR:
		out = Or16(a, b)
	case OP_XOR:
		out = Xor16(a, b)
	case OP_NOT:
		out = Complement(a)
	case OP_SHL:
		out = Shift16L(a, b)
	case OP_SHR:
		out = Shift16R(a, b)
	case OP_USHL:
		out = UShift16L(a, b)
	case OP_USHR:
		out = UShift16R(a, b)
	case OP_ROTL:
		out = Rot16L(a, b)
	case OP_ROTR:
		out = Rot16R(a, b)
	case OP_ROTL_C:
		out = Rot16LCarry(a, b, carry)
	case OP_ROTR_C:
		out = Rot16RCarry(a, b, carry)
	default:
		out = Pass16(a)
	}

	return
}

package vm

import (
	"fmt"

	"github.com/ezrec/cjemu/alu"
)

// Opcode is the first byte of an instruction.
type Opcode uint8

const (
	OP_NOP    = Opcode(0x00) // nop
	OP_LDA16  = Opcode(0x01) // lda16
	OP_LDB16  = Opcode(0x02) // ldb16
	OP_STA16  = Opcode(0x03) // sta16
	OP_STB16  = Opcode(0x04) // stb16
	OP_LDA8   = Opcode(0x05) // lda8
	OP_LDB8   = Opcode(0x06) // ldb8
	OP_STA8   = Opcode(0x07) // sta8
	OP_STB8   = Opcode(0x08) // stb8
	OP_ADD    = Opcode(0x09) // add
	OP_SUB    = Opcode(0x0a) // sub
	OP_NEGA   = Opcode(0x0b) // nega
	OP_NEGB   = Opcode(0x0c) // negb
	OP_INCA   = Opcode(0x0d) // inca
	OP_INCB   = Opcode(0x0e) // incb
	OP_PASSA  = Opcode(0x0f) // passa
	OP_PASSB  = Opcode(0x10) // passb
	OP_AND    = Opcode(0x11) // and
	OP_OR     = Opcode(0x12) // or
	OP_XOR    = Opcode(0x13) // xor
	OP_FLPA   = Opcode(0x14) // flpa
	OP_FLPB   = Opcode(0x15) // flpb
	OP_SHFTL  = Opcode(0x16) // shftl
	OP_SHFTR  = Opcode(0x17) // shftr
	OP_USHFTL = Opcode(0x18) // ushftl
	OP_USHFTR = Opcode(0x19) // ushftr
	OP_ROTL   = Opcode(0x1a) // rotl
	OP_ROTR   = Opcode(0x1b) // rotr
	OP_ADDC   = Opcode(0x1c) // addc
	OP_SUBB   = Opcode(0x1d) // subb
	OP_ROTLC  = Opcode(0x1e) // rotlc
	OP_ROTRC  = Opcode(0x1f) // rotrc
	OP_LDMA   = Opcode(0x20) // ldma
	OP_LDMB   = Opcode(0x21) // ldmb
)

// Register selects one of the general purpose registers.
type Register int

const (
	REG_A = Register(0) // a
	REG_B = Register(1) // b
)

func (reg Register) String() string {
	return string(rune('a' + int(reg)))
}

// OpcodeClass groups opcodes by how they execute.
type OpcodeClass int

const (
	CLASS_NOP   = OpcodeClass(0) // Do nothing.
	CLASS_LOAD  = OpcodeClass(1) // Register from immediate operand.
	CLASS_STORE = OpcodeClass(2) // RAM at operand address from register.
	CLASS_FETCH = OpcodeClass(3) // Register from RAM at operand address.
	CLASS_ALU   = OpcodeClass(4) // Register and flags from the ALU.
)

// OpcodeInfo describes the encoding and behaviour of an opcode.
type OpcodeInfo struct {
	Mnemonic string
	Length   int // Total encoded length, including the opcode byte.
	Class    OpcodeClass
	Register Register // Register loaded, stored, or used as ALU input 'a'.
	Alu      alu.Op   // ALU operation, for CLASS_ALU.
}

// Operands returns the number of operand bytes following the opcode byte.
func (info OpcodeInfo) Operands() int {
	return info.Length - 1
}

var opcodeTable = map[Opcode]OpcodeInfo{
	OP_NOP:    {"nop", 1, CLASS_NOP, REG_A, 0},
	OP_LDA16:  {"lda16", 3, CLASS_LOAD, REG_A, 0},
	OP_LDB16:  {"ldb16", 3, CLASS_LOAD, REG_B, 0},
	OP_STA16:  {"sta16", 3, CLASS_STORE, REG_A, 0},
	OP_STB16:  {"stb16", 3, CLASS_STORE, REG_B, 0},
	OP_LDA8:   {"lda8", 2, CLASS_LOAD, REG_A, 0},
	OP_LDB8:   {"ldb8", 2, CLASS_LOAD, REG_B, 0},
	OP_STA8:   {"sta8", 2, CLASS_STORE, REG_A, 0},
	OP_STB8:   {"stb8", 2, CLASS_STORE, REG_B, 0},
	OP_ADD:    {"add", 1, CLASS_ALU, REG_A, alu.OP_ADD},
	OP_SUB:    {"sub", 1, CLASS_ALU, REG_A, alu.OP_SUB},
	OP_NEGA:   {"nega", 1, CLASS_ALU, REG_A, alu.OP_NEG},
	OP_NEGB:   {"negb", 1, CLASS_ALU, REG_B, alu.OP_NEG},
	OP_INCA:   {"inca", 1, CLASS_ALU, REG_A, alu.OP_INC},
	OP_INCB:   {"incb", 1, CLASS_ALU, REG_B, alu.OP_INC},
	OP_PASSA:  {"passa", 1, CLASS_ALU, REG_A, alu.OP_PASS},
	OP_PASSB:  {"passb", 1, CLASS_ALU, REG_B, alu.OP_PASS},
	OP_AND:    {"and", 1, CLASS_ALU, REG_A, alu.OP_AND},
	OP_OR:     {"or", 1, CLASS_ALU, REG_A, alu.OP_OR},
	OP_XOR:    {"xor", 1, CLASS_ALU, REG_A, alu.OP_XOR},
	OP_FLPA:   {"flpa", 1, CLASS_ALU, REG_A, alu.OP_NOT},
	OP_FLPB:   {"flpb", 1, CLASS_ALU, REG_B, alu.OP_NOT},
	OP_SHFTL:  {"shftl", 1, CLASS_ALU, REG_A, alu.OP_SHL},
	OP_SHFTR:  {"shftr", 1, CLASS_ALU, REG_A, alu.OP_SHR},
	OP_USHFTL: {"ushftl", 1, CLASS_ALU, REG_A, alu.OP_USHL},
	OP_USHFTR: {"ushftr", 1, CLASS_ALU, REG_A, alu.OP_USHR},
	OP_ROTL:   {"rotl", 1, CLASS_ALU, REG_A, alu.OP_ROTL},
	OP_ROTR:   {"rotr", 1, CLASS_ALU, REG_A, alu.OP_ROTR},
	OP_ADDC:   {"addc", 1, CLASS_ALU, REG_A, alu.OP_ADD_C},
	OP_SUBB:   {"subb", 1, CLASS_ALU, REG_A, alu.OP_SUB_B},
	OP_ROTLC:  {"rotlc", 1, CLASS_ALU, REG_A, alu.OP_ROTL_C},
	OP_ROTRC:  {"rotrc", 1, CLASS_ALU, REG_A, alu.OP_ROTR_C},
	OP_LDMA:   {"ldma", 3, CLASS_FETCH, REG_A, 0},
	OP_LDMB:   {"ldmb", 3, CLASS_FETCH, REG_B, 0},
}

// mnemonicMap maps mnemonics back to opcodes, for the assembler.
var mnemonicMap = func() map[string]Opcode {
	mnemonics := make(map[string]Opcode, len(opcodeTable))
	for op, info := range opcodeTable {
		mnemonics[info.Mnemonic] = op
	}
	return mnemonics
}()

// Info returns the description of the opcode, and false if the opcode
// is not assigned.
func (op Opcode) Info() (info OpcodeInfo, ok bool) {
	info, ok = opcodeTable[op]
	return
}

// Valid returns true for an assigned opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodeTable[op]
	return ok
}

// Length returns the total encoded length of the opcode, or 0 if the
// opcode is not assigned.
func (op Opcode) Length() int {
	return opcodeTable[op].Length
}

func (op Opcode) String() string {
	info, ok := opcodeTable[op]
	if !ok {
		return fmt.Sprintf("op(0x%02x)", uint8(op))
	}
	return info.Mnemonic
}

// Code is a fetched instruction: where it came from, what it is, and its
// operand.
type Code struct {
	Ip      uint16
	Opcode  Opcode
	Operand uint16 // Little-endian operand bytes; zero when there are none.
}

// Bytes returns the encoded form of the instruction.
func (code Code) Bytes() (data []uint8) {
	data = []uint8{uint8(code.Opcode)}
	for n := range code.Opcode.Length() - 1 {
		data = append(data, uint8(code.Operand>>(8*n)))
	}

	return
}

func (code Code) String() string {
	switch code.Opcode.Length() {
	case 2:
		return fmt.Sprintf("%v 0x%02x", code.Opcode, code.Operand)
	case 3:
		return fmt.Sprintf("%v 0x%04x", code.Opcode, code.Operand)
	default:
		return code.Opcode.String()
	}
}

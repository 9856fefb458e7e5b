// Package vm implements the CJEmu virtual machine and its assembler.
//
// The machine has two 16-bit registers (A and B), an instruction pointer,
// a read-only program bank (ROM) and a read-write data bank (RAM). Each
// Tick fetches one opcode byte from ROM at the instruction pointer, reads
// the fixed number of operand bytes that opcode requires, and executes it.
// Multi-byte operands and stored values are little-endian.
//
// A tick either completes or fails with no visible effect: all bounds
// checks happen before any register, flag or memory update.
//
// The assembler translates a small line-oriented assembly language into a
// ROM image, with macros, equates, labels, and Starlark compile-time
// expressions.
package vm

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"errors"
	"fmt"
	"iter"
	"log"

	"github.com/ezrec/cjemu/alu"
	"github.com/ezrec/cjemu/internal"
	"github.com/ezrec/cjemu/memory"
)

const (
	ROM_SIZE_DEFAULT = 0x8000 // Default ROM size, in bytes.
	RAM_SIZE_DEFAULT = 0x8000 // Default RAM size, in bytes.
)

// Viewer is the read-only view of a Machine.
type Viewer interface {
	RegA() uint16
	RegB() uint16
	LastAlu() alu.Outputs
	Ip() uint16
	Ticks() int
	Rom() memory.Reader
	Ram() memory.Reader
	Snapshot() Snapshot
}

// Snapshot is a copy of the register state of a Machine.
type Snapshot struct {
	A     uint16
	B     uint16
	Ip    uint16
	Alu   alu.Outputs
	Ticks int
}

// String returns the snapshot as a register listing.
func (snap Snapshot) String() (text string) {
	text += fmt.Sprintf("% 5s: %04X\n", "ip", snap.Ip)
	text += fmt.Sprintf("% 5s: %04X\n", "a", snap.A)
	text += fmt.Sprintf("% 5s: %04X\n", "b", snap.B)
	text += fmt.Sprintf("% 5s: %v\n", "alu", snap.Alu)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", snap.Ticks)
	return
}

// Machine is the register file, memory banks and ALU state of the virtual
// machine.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	rom *memory.Rom
	ram *memory.Ram

	register [2]uint16   // A and B.
	ip       uint16      // Address of the next opcode in ROM.
	last     alu.Outputs // Outputs of the most recent ALU operation.
	ticks    int         // Completed ticks since reset.
}

var _ Viewer = (*Machine)(nil)

// NewMachine creates a machine with zero-filled ROM and RAM of the given
// sizes.
func NewMachine(romSize int, ramSize int) (vm *Machine, err error) {
	rom, err := memory.NewRom(romSize)
	if err != nil {
		err = errors.Join(ErrMachineSize, err)
		return
	}

	ram, err := memory.NewRam(ramSize)
	if err != nil {
		err = errors.Join(ErrMachineSize, err)
		return
	}

	vm = &Machine{
		rom:  rom,
		ram:  ram,
		last: alu.Pass16(0),
	}

	return
}

// Defines returns the machine constants, for use as assembler equates.
func (vm *Machine) Defines() iter.Seq2[string, string] {
	return internal.HexDefines(map[string]int{
		"ROM_SIZE": vm.rom.Size(),
		"RAM_SIZE": vm.ram.Size(),
	})
}

// Reset clears the registers, flags, instruction pointer, tick counter and
// RAM. ROM is untouched.
func (vm *Machine) Reset() {
	if vm.Verbose {
		log.Printf("vm: reset")
	}

	clear(vm.register[:])
	vm.ip = 0
	vm.last = alu.Pass16(0)
	vm.ticks = 0

	for addr := range vm.ram.Size() {
		_ = vm.ram.SetByte(uint16(addr), 0)
	}
}

// Load replaces the ROM contents with image and resets the machine.
func (vm *Machine) Load(image []uint8) (err error) {
	err = vm.rom.Load(image)
	if err != nil {
		return
	}

	if vm.Verbose {
		log.Printf("vm: loaded %d byte image", len(image))
	}

	vm.Reset()

	return
}

// RegA returns the A register.
func (vm *Machine) RegA() uint16 {
	return vm.register[REG_A]
}

// RegB returns the B register.
func (vm *Machine) RegB() uint16 {
	return vm.register[REG_B]
}

// LastAlu returns the outputs of the most recent ALU operation.
func (vm *Machine) LastAlu() alu.Outputs {
	return vm.last
}

// Ip returns the address of the next opcode to execute.
func (vm *Machine) Ip() uint16 {
	return vm.ip
}

// Ticks returns the number of completed ticks since the last reset.
func (vm *Machine) Ticks() int {
	return vm.ticks
}

// Rom returns the program bank.
func (vm *Machine) Rom() memory.Reader {
	return vm.rom
}

// Ram returns the data bank, read-only.
func (vm *Machine) Ram() memory.Reader {
	return vm.ram
}

// Snapshot copies the register state.
func (vm *Machine) Snapshot() Snapshot {
	return Snapshot{
		A:     vm.register[REG_A],
		B:     vm.register[REG_B],
		Ip:    vm.ip,
		Alu:   vm.last,
		Ticks: vm.ticks,
	}
}

// romByte reads a ROM byte at an address that may lie past the 16-bit
// address space.
func (vm *Machine) romByte(address int) (value uint8, err error) {
	if address >= memory.ADDRESS_SPACE {
		err = ErrMemoryFault{
			Address: address,
			Err:     memory.ErrOutOfBounds{Address: address, Size: vm.rom.Size()},
		}
		return
	}

	value, err = vm.rom.Byte(uint16(address))
	if err != nil {
		err = ErrMemoryFault{Address: address, Err: err}
	}

	return
}

// ramCheck verifies that count bytes starting at address are all in RAM.
func (vm *Machine) ramCheck(address uint16, count int) (err error) {
	for n := range count {
		addr := int(address) + n
		if addr >= vm.ram.Size() {
			err = ErrMemoryFault{
				Address: addr,
				Err:     memory.ErrOutOfBounds{Address: addr, Size: vm.ram.Size()},
			}
			return
		}
	}

	return
}

// Fetch reads and decodes the instruction at the instruction pointer.
func (vm *Machine) Fetch() (code Code, err error) {
	code.Ip = vm.ip

	value, err := vm.romByte(int(code.Ip))
	if err != nil {
		return
	}

	code.Opcode = Opcode(value)
	info, ok := code.Opcode.Info()
	if !ok {
		err = ErrOpcodeUnrecognized(value)
		return
	}

	for n := range info.Operands() {
		value, err = vm.romByte(int(code.Ip) + 1 + n)
		if err != nil {
			return
		}
		code.Operand |= uint16(value) << (8 * n)
	}

	return
}

// Execute performs a decoded instruction, and advances the instruction
// pointer past it. On error the machine is left unchanged.
func (vm *Machine) Execute(code Code) (err error) {
	if code.Ip != vm.ip {
		err = ErrCodeStale{Ip: code.Ip, Want: vm.ip}
		return
	}

	info, ok := code.Opcode.Info()
	if !ok {
		err = ErrOpcodeUnrecognized(code.Opcode)
		return
	}

	if vm.Verbose {
		log.Printf("vm: %04x: %v", code.Ip, code)
	}

	register := vm.register
	last := vm.last
	var store []uint8

	switch info.Class {
	case CLASS_NOP:
		// pass
	case CLASS_LOAD:
		register[info.Register] = code.Operand
	case CLASS_STORE:
		value := register[info.Register]
		store = []uint8{uint8(value), uint8(value >> 8)}[:info.Operands()]
		err = vm.ramCheck(code.Operand, len(store))
	case CLASS_FETCH:
		err = vm.ramCheck(code.Operand, 2)
		if err != nil {
			break
		}
		lo, _ := vm.ram.Byte(code.Operand)
		hi, _ := vm.ram.Byte(code.Operand + 1)
		register[info.Register] = uint16(lo) | (uint16(hi) << 8)
	case CLASS_ALU:
		out := alu.Do(info.Alu, register[info.Register], register[REG_B], last.CarryOut)
		if info.Alu != alu.OP_PASS {
			register[info.Register] = out.Value
		}
		last = out
	}

	if err != nil {
		return
	}

	// Commit.
	for n, value := range store {
		_ = vm.ram.SetByte(code.Operand+uint16(n), value)
	}
	vm.register = register
	vm.last = last
	vm.ip = code.Ip + uint16(info.Length)
	vm.ticks++

	return
}

// Tick fetches and executes a single instruction.
func (vm *Machine) Tick() (err error) {
	code, err := vm.Fetch()
	if err == nil {
		err = vm.Execute(code)
	}

	if err != nil && vm.Verbose {
		log.Printf("vm: %04x: %v", vm.ip, err)
	}

	return
}

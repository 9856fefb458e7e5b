package vm

import (
	"errors"

	"github.com/ezrec/cjemu/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrMachineSize = errors.New(f("machine size"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrMacroRecursion     = errors.New(f(".macro expansion too deep"))
	ErrOrgBackwards       = errors.New(f(".org moves backwards"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrImageSize          = errors.New(f("image exceeds address space"))
)

// ErrOpcodeUnrecognized is returned when the fetched byte is not an
// assigned opcode.
type ErrOpcodeUnrecognized uint8

func (err ErrOpcodeUnrecognized) Error() string {
	return f("unrecognized opcode 0x%02x", uint8(err))
}

// Is matches any ErrOpcodeUnrecognized.
func (err ErrOpcodeUnrecognized) Is(target error) (ok bool) {
	_, ok = target.(ErrOpcodeUnrecognized)
	return
}

// ErrMemoryFault is returned when an instruction fetch, operand read,
// load, or store touches an address outside its bank.
type ErrMemoryFault struct {
	Address int
	Err     error
}

func (err ErrMemoryFault) Error() string {
	return f("memory fault at 0x%04x: %v", err.Address, err.Err)
}

func (err ErrMemoryFault) Unwrap() error {
	return err.Err
}

// Is matches any ErrMemoryFault.
func (err ErrMemoryFault) Is(target error) (ok bool) {
	_, ok = target.(ErrMemoryFault)
	return
}

// ErrCodeStale is returned by Execute for a Code that was not fetched at
// the current instruction pointer.
type ErrCodeStale struct {
	Ip   uint16
	Want uint16
}

func (err ErrCodeStale) Error() string {
	return f("code at 0x%04x executed with ip at 0x%04x", err.Ip, err.Want)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOperandRange is returned when a value does not fit its operand.
type ErrOperandRange struct {
	Value int64
	Bytes int
}

func (err ErrOperandRange) Error() string {
	return f("value %d does not fit in %d byte(s)", err.Value, err.Bytes)
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err *ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}

package emulator

import (
	"errors"

	"github.com/ezrec/cjemu/translate"
)

var f = translate.From

var (
	ErrExited    = errors.New(f("emulator has exited"))
	ErrCycleRate = errors.New(f("cycle rate must be positive"))
)

// ErrRuntime indicates the machine state when a tick failed.
type ErrRuntime struct {
	Tick int    // Machine tick count before the failed tick.
	Ip   uint16 // Instruction pointer of the failed tick.
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("tick %d ip 0x%04x %v", err.Tick, err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrTickPanic is reported when a tick panics.
type ErrTickPanic struct {
	Value any
}

func (err ErrTickPanic) Error() string {
	return f("tick panic: %v", err.Value)
}

package vm

import (
	"iter"
)

// Line is a single line of assembled source and the bytes it produced.
type Line struct {
	LineNo    int
	Ip        int
	Words     []string
	Bytes     []uint8
	LinkLabel string // Label to resolve into the operand bytes.
}

// Program is the output of the assembler.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int // Offset of the address within the line's bytes.
}

// Debug finds the source line that produced the byte at ip.
func (prog *Program) Debug(ip uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(ip) >= line.Ip && int(ip) < line.Ip+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(ip) - line.Ip,
			}
			break
		}
	}

	return
}

// LineNo returns the source line number for ip, or 0 if unknown.
func (prog *Program) LineNo(ip uint16) int {
	dbg := prog.Debug(ip)
	if dbg.Line == nil {
		return 0
	}
	return dbg.LineNo
}

// Binary returns the ROM image. Gaps left by .org are zero-filled.
func (prog *Program) Binary() (image []uint8) {
	for ip, value := range prog.Bytes() {
		if int(ip) >= len(image) {
			image = append(image, make([]uint8, int(ip)+1-len(image))...)
		}
		image[ip] = value
	}

	return
}

// Bytes iterates over every assembled byte and its address.
func (prog *Program) Bytes() iter.Seq2[uint16, uint8] {
	return func(yield func(ip uint16, value uint8) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(uint16(line.Ip+n), value) {
					return
				}
			}
		}
	}
}

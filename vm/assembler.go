// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package vm

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/cjemu/memory"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// MACRO_DEPTH_MAX limits nested macro expansion.
const MACRO_DEPTH_MAX = 16

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":        "0",
	"ADDRESS_SPACE": fmt.Sprintf("%#x", memory.ADDRESS_SPACE),
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// Assembler is a single pass macro assembler for the CJEmu instruction set.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to ROM addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	ip    int // Address of the next emitted byte.
	depth int // Macro expansion depth.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// PredefineAll predefines every equate in defines.
func (asm *Assembler) PredefineAll(defines iter.Seq2[string, string]) {
	for equ, value := range defines {
		asm.Predefine(equ, value)
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) > 0 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = int64(^uint16(value))
	}

	return
}

// encode packs value into size little-endian bytes. Negative values are
// stored as two's complement.
func encode(value int64, size int) (data []uint8, err error) {
	bits := uint(8 * size)
	if value < -(int64(1)<<(bits-1)) || value >= int64(1)<<bits {
		err = ErrOperandRange{Value: value, Bytes: size}
		return
	}

	for n := range size {
		data = append(data, uint8(value>>(8*n)))
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int64
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line into words, expanding character
// literals, expressions, equates, labels and macros.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.ip
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		if asm.depth >= MACRO_DEPTH_MAX {
			err = ErrMacroRecursion
			return
		}
		asm.depth++
		defer func() { asm.depth-- }()

		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// '@' expands to a prefix unique to this invocation.
		local := fmt.Sprintf("%v_%v_", name, lineno)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// emit appends a line of output bytes at the current address.
func (asm *Assembler) emit(lineno int, words []string, data []uint8, label string) (err error) {
	if asm.ip+len(data) > memory.ADDRESS_SPACE {
		err = ErrImageSize
		return
	}

	asm.Lines = append(asm.Lines, Line{
		LineNo:    lineno,
		Ip:        asm.ip,
		Words:     words,
		Bytes:     data,
		LinkLabel: label,
	})
	asm.ip += len(data)

	return
}

// parseData handles the .byte and .word directives.
func (asm *Assembler) parseData(words []string, size int) (data []uint8, err error) {
	if len(words) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	for _, word := range words {
		var value int64
		value, err = asm.valueOf(word)
		if err != nil {
			return
		}
		var encoded []uint8
		encoded, err = encode(value, size)
		if err != nil {
			return
		}
		data = append(data, encoded...)
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	var data []uint8

	switch words[0] {
	case ".byte":
		data, err = asm.parseData(words[1:], 1)
		if err != nil {
			return
		}
		err = asm.emit(lineno, words, data, "")
		return
	case ".word":
		data, err = asm.parseData(words[1:], 2)
		if err != nil {
			return
		}
		err = asm.emit(lineno, words, data, "")
		return
	case ".org":
		if len(words) != 2 {
			err = ErrOpcodeValueMissing
			return
		}
		var value int64
		value, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if value < int64(asm.ip) {
			err = ErrOrgBackwards
			return
		}
		if value > memory.ADDRESS_SPACE {
			err = ErrImageSize
			return
		}
		asm.ip = int(value)
		return
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	info, _ := op.Info()
	args := words[1:]
	if info.Operands() > 0 && len(args) == 0 {
		err = ErrOpcodeValueMissing
		return
	}
	if (info.Operands() == 0 && len(args) > 0) || len(args) > 1 {
		err = ErrOpcodeExtraArgs
		return
	}

	data = []uint8{uint8(op)}
	var label string
	if info.Operands() > 0 {
		var value int64
		value, err = asm.valueOf(args[0])
		if err != nil && reLabel.MatchString(args[0]) {
			// Resolved once all labels are known.
			value, err = 0, nil
			label = args[0]
		}
		if err != nil {
			return
		}
		var operand []uint8
		operand, err = encode(value, info.Operands())
		if err != nil {
			return
		}
		data = append(data, operand...)
	}

	err = asm.emit(lineno, words, data, label)
	return
}

// link resolves label references into operand bytes.
func (asm *Assembler) link() (err error) {
	for n := range asm.Lines {
		line := &asm.Lines[n]

		if len(line.LinkLabel) == 0 {
			continue
		}
		ip, ok := asm.Label[line.LinkLabel]
		if !ok {
			err = &ErrSyntax{LineNo: line.LineNo, Line: strings.Join(line.Words, " "), Err: ErrLabelMissing(line.LinkLabel)}
			return
		}
		var operand []uint8
		operand, err = encode(int64(ip), len(line.Bytes)-1)
		if err != nil {
			err = &ErrSyntax{LineNo: line.LineNo, Line: strings.Join(line.Words, " "), Err: err}
			return
		}
		copy(line.Bytes[1:], operand)
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			if _, ok := err.(*ErrSyntax); !ok {
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			}
		}
	}()

	clear(asm.Label)
	asm.Lines = asm.Lines[:0]
	asm.ip = 0
	asm.depth = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		line = strings.TrimSpace(strings.SplitN(text, ";", 2)[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   slices.Clone(words[2:]),
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	err = asm.link()
	if err != nil {
		return
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

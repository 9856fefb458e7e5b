// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log"
	"maps"
	"math"
	"os"
	"strings"

	"github.com/ezrec/cjemu/emulator"
	"github.com/ezrec/cjemu/internal"
	"github.com/ezrec/cjemu/memory"
	"github.com/ezrec/cjemu/vm"
)

func main() {
	var compile string
	var rom string
	var save string
	var romSize int
	var ramSize int
	var ticks uint64
	var rate float64
	var dump int
	var verbose bool
	defines := map[string]string{}

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&rom, "r", "", "ROM image to load")
	flag.StringVar(&save, "o", "", "Save the ROM image to a file, do not execute")
	flag.IntVar(&romSize, "rom", vm.ROM_SIZE_DEFAULT, "ROM size, in bytes")
	flag.IntVar(&ramSize, "ram", vm.RAM_SIZE_DEFAULT, "RAM size, in bytes")
	flag.Uint64Var(&ticks, "n", 1, "Ticks to run")
	flag.Float64Var(&rate, "hz", math.Inf(1), "Ticks per second")
	flag.IntVar(&dump, "dump", 16, "RAM bytes to show after the run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Assembler equate, as NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 || len(value) == 0 {
			return fmt.Errorf("%v: expected NAME=VALUE", arg)
		}
		defines[name] = value
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(rom) != 0 {
		log.Fatalf("%v: -c and -r are exclusive", os.Args[0])
	}

	machine, err := vm.NewMachine(romSize, ramSize)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	machine.Verbose = verbose

	var prog *vm.Program
	var image []uint8

	switch {
	case len(compile) != 0:
		// Assemble a new ROM image.
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &vm.Assembler{Verbose: verbose}
		asm.PredefineAll(internal.IterSeq2Concat(machine.Defines(), maps.All(defines)))
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		image = prog.Binary()
	case len(rom) != 0:
		image, err = os.ReadFile(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	if len(save) != 0 {
		err = os.WriteFile(save, image, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	err = machine.Load(image)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	emu := emulator.NewEmulator(machine, emulator.WithVerbose(verbose))
	defer emu.Exit()

	err = emu.Cycle(ticks, rate)
	if err == nil {
		err = emu.Sync()
	}
	if err == nil {
		err = emu.Err()
	}

	emu.View(func(view vm.Viewer) {
		fmt.Print(view.Snapshot())
		if dump > 0 {
			fmt.Print(hex.Dump(memory.Dump(view.Ram(), 0, dump)))
		}
	})

	if err != nil {
		var runtimeErr *emulator.ErrRuntime
		if prog != nil && errors.As(err, &runtimeErr) {
			if lineno := prog.LineNo(runtimeErr.Ip); lineno != 0 {
				emu.Exit()
				log.Fatalf("%v: line %d: %v", compile, lineno, err)
			}
		}
		emu.Exit()
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}

package emulator

import (
	"fmt"
)

// CommandKind identifies a request queued to the emulator worker.
type CommandKind int

//go:generate go tool stringer -linecomment -type=CommandKind
const (
	CMD_EXIT  = CommandKind(0) // exit
	CMD_TICK  = CommandKind(1) // tick
	CMD_CYCLE = CommandKind(2) // cycle
	CMD_SYNC  = CommandKind(3) // sync
)

// Command is a single request to the emulator worker.
type Command struct {
	Kind           CommandKind
	Ticks          uint64  // Ticks to perform, for CMD_CYCLE.
	TicksPerSecond float64 // Target tick rate, for CMD_CYCLE.

	generation uint64        // Cancel generation at submission.
	done       chan struct{} // Closed when a CMD_SYNC is reached.
}

func (cmd Command) String() string {
	if cmd.Kind == CMD_CYCLE {
		return fmt.Sprintf("%v %d @ %g/s", cmd.Kind, cmd.Ticks, cmd.TicksPerSecond)
	}
	return cmd.Kind.String()
}

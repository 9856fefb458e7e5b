// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"log"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ezrec/cjemu/vm"
)

const (
	QUEUE_DEPTH     = 64                    // Default command queue depth.
	ERROR_DEPTH     = 16                    // Default error channel depth.
	SLEEP_THRESHOLD = 10 * time.Millisecond // Tick intervals above this sleep between polls.
	SLEEP_INTERVAL  = time.Millisecond      // Sleep between polls of a slow cycle.
	REPORT_INTERVAL = time.Second           // Verbose throughput report interval.
)

// Option configures an Emulator.
type Option func(*worker)

// WithVerbose enables logging of commands, faults and cycle throughput.
func WithVerbose(verbose bool) Option {
	return func(w *worker) {
		w.verbose = verbose
	}
}

// WithErrorDepth sets how many undelivered errors Errors() holds before
// further errors are dropped.
func WithErrorDepth(depth int) Option {
	return func(w *worker) {
		w.errorDepth = max(depth, 0)
	}
}

// WithQueueDepth sets how many commands may be queued before submission
// blocks.
func WithQueueDepth(depth int) Option {
	return func(w *worker) {
		w.queueDepth = max(depth, 0)
	}
}

// Emulator runs a Machine on a dedicated worker goroutine.
//
// Commands are executed strictly in submission order. Only the worker
// modifies the machine; readers share a lock with it.
type Emulator struct {
	w *worker
}

// worker holds everything the worker goroutine touches, so that a dropped
// Emulator can be collected while its worker is still running.
type worker struct {
	verbose    bool
	errorDepth int
	queueDepth int

	lock    sync.RWMutex
	machine *vm.Machine

	queue     chan Command
	done      chan struct{}
	exitOnce  sync.Once
	queueLock sync.Mutex // Orders submissions against the exit command.
	exiting   bool

	generation atomic.Uint64 // Incremented by Cancel.
	ticks      atomic.Uint64 // Completed ticks.

	errors  chan error
	errLock sync.Mutex
	err     error
}

// NewEmulator starts a worker for machine. The machine must not be used
// directly until the emulator has exited.
func NewEmulator(machine *vm.Machine, opts ...Option) (emu *Emulator) {
	w := &worker{
		errorDepth: ERROR_DEPTH,
		queueDepth: QUEUE_DEPTH,
		machine:    machine,
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	w.queue = make(chan Command, w.queueDepth)
	w.errors = make(chan error, w.errorDepth)

	go w.run()

	emu = &Emulator{w: w}

	// A dropped handle still stops its worker.
	runtime.AddCleanup(emu, func(w *worker) {
		w.cancel()
		w.exit()
	}, w)

	return
}

// Tick queues a single tick.
func (emu *Emulator) Tick() error {
	return emu.w.submit(Command{Kind: CMD_TICK})
}

// Cycle queues ticks at an approximate rate of ticksPerSecond. A rate of
// +Inf runs unthrottled.
func (emu *Emulator) Cycle(ticks uint64, ticksPerSecond float64) error {
	if math.IsNaN(ticksPerSecond) || ticksPerSecond <= 0 {
		return ErrCycleRate
	}

	return emu.w.submit(Command{
		Kind:           CMD_CYCLE,
		Ticks:          ticks,
		TicksPerSecond: ticksPerSecond,
	})
}

// Sync blocks until every previously queued command has completed.
func (emu *Emulator) Sync() (err error) {
	done := make(chan struct{})
	err = emu.w.submit(Command{Kind: CMD_SYNC, done: done})
	if err != nil {
		return
	}

	select {
	case <-done:
	case <-emu.w.done:
		select {
		case <-done:
		default:
			err = ErrExited
		}
	}

	return
}

// Cancel aborts every cycle queued before the call, including the one in
// progress. Later commands are unaffected.
func (emu *Emulator) Cancel() {
	emu.w.cancel()
}

// Exit queues an exit behind any pending commands, and waits for the
// worker to finish. It may be called more than once.
func (emu *Emulator) Exit() {
	emu.w.exit()
}

// Close exits the emulator.
func (emu *Emulator) Close() (err error) {
	emu.Exit()
	return
}

// Done is closed once the worker has exited.
func (emu *Emulator) Done() <-chan struct{} {
	return emu.w.done
}

// View calls fn with a read-only view of the machine, between ticks.
func (emu *Emulator) View(fn func(view vm.Viewer)) {
	emu.w.lock.RLock()
	defer emu.w.lock.RUnlock()

	fn(emu.w.machine)
}

// Snapshot returns the current register state of the machine.
func (emu *Emulator) Snapshot() (snap vm.Snapshot) {
	emu.View(func(view vm.Viewer) {
		snap = view.Snapshot()
	})

	return
}

// Ticks returns the number of ticks completed by this emulator.
func (emu *Emulator) Ticks() uint64 {
	return emu.w.ticks.Load()
}

// Errors returns the channel tick faults are delivered on. When the
// channel is full, further faults are only available from Err().
func (emu *Emulator) Errors() <-chan error {
	return emu.w.errors
}

// Err returns the most recent tick fault, or nil.
func (emu *Emulator) Err() (err error) {
	emu.w.errLock.Lock()
	defer emu.w.errLock.Unlock()

	err = emu.w.err
	return
}

func (w *worker) submit(cmd Command) (err error) {
	w.queueLock.Lock()
	defer w.queueLock.Unlock()

	if w.exiting {
		err = ErrExited
		return
	}

	cmd.generation = w.generation.Load()

	select {
	case w.queue <- cmd:
	case <-w.done:
		err = ErrExited
	}

	return
}

func (w *worker) cancel() {
	w.generation.Add(1)
}

func (w *worker) exit() {
	w.exitOnce.Do(func() {
		w.queueLock.Lock()
		defer w.queueLock.Unlock()

		w.exiting = true
		w.queue <- Command{Kind: CMD_EXIT}
	})

	<-w.done
}

func (w *worker) run() {
	defer close(w.done)

	if w.verbose {
		log.Printf("emulator: started")
	}

	for {
		cmd := <-w.queue
		if w.verbose {
			log.Printf("emulator: %v", cmd)
		}

		switch cmd.Kind {
		case CMD_EXIT:
			if w.verbose {
				log.Printf("emulator: exited after %d ticks", w.ticks.Load())
			}
			return
		case CMD_TICK:
			_ = w.tick()
		case CMD_CYCLE:
			w.cycle(cmd)
		case CMD_SYNC:
			close(cmd.done)
		}
	}
}

// tick performs one machine tick under the write lock. Faults and panics
// are reported, and returned.
func (w *worker) tick() (err error) {
	w.lock.Lock()
	defer w.lock.Unlock()

	var ip uint16
	var tick int

	defer func() {
		if r := recover(); r != nil {
			err = ErrTickPanic{Value: r}
		}
		if err != nil {
			err = &ErrRuntime{Tick: tick, Ip: ip, Err: err}
			w.report(err)
			return
		}
		w.ticks.Add(1)
	}()

	ip, tick = w.machine.Ip(), w.machine.Ticks()
	err = w.machine.Tick()

	return
}

// cycle ticks at the requested rate until the count is met, the cycle is
// cancelled, or a tick fails.
func (w *worker) cycle(cmd Command) {
	interval := time.Duration(math.MaxInt64)
	if nsecs := float64(time.Second) / cmd.TicksPerSecond; nsecs < float64(math.MaxInt64) {
		interval = time.Duration(nsecs)
	}
	sleep := interval > SLEEP_THRESHOLD

	var count, reported uint64
	lastTick := time.Now()
	lastReport := lastTick

	for count < cmd.Ticks {
		if w.generation.Load() != cmd.generation {
			if w.verbose {
				log.Printf("emulator: cycle cancelled after %d of %d ticks", count, cmd.Ticks)
			}
			return
		}

		now := time.Now()
		if w.verbose && now.Sub(lastReport) >= REPORT_INTERVAL {
			log.Printf("emulator: %d ticks (of %d) in %v", count-reported, cmd.Ticks, now.Sub(lastReport))
			lastReport = now
			reported = count
		}

		if now.Sub(lastTick) < interval {
			if sleep {
				time.Sleep(SLEEP_INTERVAL)
			}
			continue
		}
		lastTick = now

		err := w.tick()
		if err != nil {
			if w.verbose {
				log.Printf("emulator: cycle aborted after %d of %d ticks", count, cmd.Ticks)
			}
			return
		}
		count++
	}

	if w.verbose {
		log.Printf("emulator: cycle of %d ticks done", cmd.Ticks)
	}
}

func (w *worker) report(err error) {
	w.errLock.Lock()
	w.err = err
	w.errLock.Unlock()

	if w.verbose {
		log.Printf("emulator: %v", err)
	}

	select {
	case w.errors <- err:
	default:
		if w.verbose {
			log.Printf("emulator: error dropped")
		}
	}
}

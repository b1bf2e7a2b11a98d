package host

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go-irrational/config"
	"go-irrational/debug"
	"go-irrational/irrational"
	"go-irrational/midi"
	"go-irrational/scale"
)

// ErrNoOutput is logged when a tick has nowhere to send its note
var ErrNoOutput = errors.New("no midi output")

// Stats counts what the driver has done since it was created
type Stats struct {
	Ticks  uint64
	PassGo uint64
	Sent   uint64
	Errors uint64
}

// Driver runs the walker from a clock and sends each output code as MIDI.
//
// Tick is the only caller of Advance. Parameter changes come from other
// goroutines through the walker setters, which keep the window consistent.
type Driver struct {
	walker *irrational.Walker
	clock  Clock

	mu        sync.Mutex // guards output state below
	out       config.OutputConfig
	conv      *Converter
	sender    midi.Sender
	sounding  int    // note currently on, -1 if none
	strike    uint64 // bumped on every NoteOn so gate timers know their note
	lastTick  time.Time
	interval  time.Duration
	afterFunc func(time.Duration, func()) *time.Timer

	playing atomic.Bool
	ticks   atomic.Uint64
	passGo  atomic.Uint64
	sent    atomic.Uint64
	errs    atomic.Uint64

	// Notify UI of updates
	UpdateChan chan struct{}
}

// NewDriver initialises w from cfg and wires it to clock and sender (sender may be nil)
func NewDriver(w *irrational.Walker, cfg *config.Config, clock Clock, sender midi.Sender) (*Driver, error) {
	conv, err := NewConverter(cfg.Output.Root, cfg.Output.Scale)
	if err != nil {
		return nil, err
	}

	w.Init(cfg.Walker.Start, cfg.Walker.Length)
	w.SelectSequence(cfg.Walker.Sequence)
	w.SetLoopMode(cfg.Walker.Loop)

	d := &Driver{
		walker:     w,
		clock:      clock,
		out:        cfg.Output,
		conv:       conv,
		sender:     sender,
		sounding:   -1,
		interval:   nominalInterval(cfg.Clock),
		afterFunc:  time.AfterFunc,
		UpdateChan: make(chan struct{}, 1),
	}
	d.playing.Store(true)
	return d, nil
}

func nominalInterval(c config.ClockConfig) time.Duration {
	tempo := min(max(c.Tempo, config.MinTempo), config.MaxTempo)
	div := min(max(c.Division, config.MinDivision), config.MaxDivision)
	return time.Minute / time.Duration(tempo*div)
}

// Walker returns the driven walker
func (d *Driver) Walker() *irrational.Walker {
	return d.walker
}

// Clock returns the clock passed to NewDriver
func (d *Driver) Clock() Clock {
	return d.clock
}

// Run ticks from the clock until ctx is done
func (d *Driver) Run(ctx context.Context) error {
	if d.clock == nil {
		return errors.New("driver has no clock")
	}
	defer d.silence()
	return d.clock.Run(ctx, d.Tick)
}

// Tick advances the walker once and sends the result
func (d *Driver) Tick() {
	if !d.playing.Load() {
		return
	}

	snap := d.walker.AdvanceSnapshot()
	code := snap.Output
	d.ticks.Add(1)
	if snap.PassGo {
		d.passGo.Add(1)
	}

	d.mu.Lock()
	now := time.Now()
	if !d.lastTick.IsZero() {
		d.interval = now.Sub(d.lastTick)
	}
	d.lastTick = now

	d.noteOffLocked()

	note := d.conv.Note(code)
	ch := uint8(d.out.Channel - 1)
	d.sendLocked(midi.Event{Type: midi.NoteOn, Channel: ch, Note: note, Velocity: uint8(d.out.Velocity)})
	d.sounding = int(note)
	d.strike++

	if d.out.CC > 0 {
		d.sendLocked(midi.Event{Type: midi.CC, Channel: ch, Note: uint8(d.out.CC), Velocity: CCValue(code)})
	}
	if d.out.PassGoNote > 0 && snap.PassGo {
		// Trigger - immediate off
		d.sendLocked(midi.Event{Type: midi.NoteOn, Channel: ch, Note: uint8(d.out.PassGoNote), Velocity: 127})
		d.sendLocked(midi.Event{Type: midi.NoteOff, Channel: ch, Note: uint8(d.out.PassGoNote)})
	}

	switch gate := d.out.Gate; {
	case gate <= 0:
		d.noteOffLocked()
	case gate < 1:
		held := d.strike
		d.afterFunc(time.Duration(float64(d.interval)*gate), func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			if d.strike == held {
				d.noteOffLocked()
			}
		})
	}
	// gate 1 is legato: the next tick turns the note off
	d.mu.Unlock()

	debug.LogEvery(64, "tick", "pos=%d digit=%d window=[%d,%d] seq=%d", snap.Position, snap.Digit, snap.Start, snap.End, snap.Sequence)
	d.notifyUpdate()
}

// noteOffLocked releases the sounding note. Caller holds mu.
func (d *Driver) noteOffLocked() {
	if d.sounding < 0 {
		return
	}
	d.sendLocked(midi.Event{Type: midi.NoteOff, Channel: uint8(d.out.Channel - 1), Note: uint8(d.sounding)})
	d.sounding = -1
}

// sendLocked writes one event. Caller holds mu.
func (d *Driver) sendLocked(e midi.Event) {
	if d.sender == nil {
		d.errs.Add(1)
		debug.LogEvery(256, "output", "%v", ErrNoOutput)
		return
	}
	if err := d.sender.Send(e); err != nil {
		d.errs.Add(1)
		debug.Error("output", err, "send type=0x%02x note=%d", e.Type, e.Note)
		return
	}
	d.sent.Add(1)
}

// silence turns off any sounding note
func (d *Driver) silence() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.noteOffLocked()
}

// SetSender swaps the output (nil drops output until a port reconnects)
func (d *Driver) SetSender(s midi.Sender) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.noteOffLocked()
	d.sender = s
}

// Play resumes ticking
func (d *Driver) Play() {
	d.playing.Store(true)
	d.notifyUpdate()
}

// Stop pauses ticking and releases the sounding note
func (d *Driver) Stop() {
	d.playing.Store(false)
	d.silence()
	d.notifyUpdate()
}

// Playing reports whether ticks are being processed
func (d *Driver) Playing() bool {
	return d.playing.Load()
}

// SetTempo changes the clock rate when the clock supports it
func (d *Driver) SetTempo(bpm int) {
	if ts, ok := d.clock.(TempoSetter); ok {
		ts.SetTempo(bpm)
		d.notifyUpdate()
	}
}

// Tempo returns the clock tempo, or 0 for clocks without one
func (d *Driver) Tempo() int {
	if ts, ok := d.clock.(TempoSetter); ok {
		return ts.Tempo()
	}
	return 0
}

// Output returns the output config in use
func (d *Driver) Output() config.OutputConfig {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.out
}

// Converter returns the pitch converter in use
func (d *Driver) Converter() *Converter {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conv
}

// Apply takes parameters from a reloaded config. The walker keeps its position
// and direction; only the window, sequence and mode follow the file.
func (d *Driver) Apply(cfg *config.Config) error {
	conv, err := NewConverter(cfg.Output.Root, cfg.Output.Scale)
	if err != nil {
		return err
	}

	d.walker.SetWindowStart(cfg.Walker.Start)
	d.walker.SetWindowLength(cfg.Walker.Length)
	d.walker.SelectSequence(cfg.Walker.Sequence)
	d.walker.SetLoopMode(cfg.Walker.Loop)

	d.mu.Lock()
	if cfg.Output.Channel != d.out.Channel {
		d.noteOffLocked()
	}
	d.out = cfg.Output
	d.conv = conv
	d.mu.Unlock()

	if cfg.Clock.Source == config.ClockInternal {
		d.SetTempo(cfg.Clock.Tempo)
	}
	debug.Log("params", "applied config: window=%d+%d seq=%d loop=%v", cfg.Walker.Start, cfg.Walker.Length, cfg.Walker.Sequence, cfg.Walker.Loop)
	d.notifyUpdate()
	return nil
}

// Parameter nudges for the UI

// NudgeStart moves the window start by delta
func (d *Driver) NudgeStart(delta int) {
	d.walker.SetWindowStart(d.walker.WindowStart() + delta)
	d.notifyUpdate()
}

// NudgeLength grows or shrinks the window by delta
func (d *Driver) NudgeLength(delta int) {
	d.walker.SetWindowLength(d.walker.WindowLength() + delta)
	d.notifyUpdate()
}

// CycleSequence selects the next (or previous) table, wrapping within 0-7
func (d *Driver) CycleSequence(delta int) {
	n := irrational.NumSequences
	seq := ((d.walker.SequenceIndex()+delta)%n + n) % n
	d.walker.SelectSequence(seq)
	d.notifyUpdate()
}

// ToggleMode flips between loop and pendulum
func (d *Driver) ToggleMode() {
	d.walker.SetLoopMode(!d.walker.LoopMode())
	d.notifyUpdate()
}

// Reset returns the walker to the window start
func (d *Driver) Reset() {
	d.walker.ResetWindow()
	d.notifyUpdate()
}

// CycleScale switches the output scale
func (d *Driver) CycleScale(step int) {
	d.mu.Lock()
	name := scale.Next(d.conv.ScaleName(), step)
	if conv, err := NewConverter(d.out.Root, name); err == nil {
		d.conv = conv
		d.out.Scale = name
	}
	d.mu.Unlock()
	d.notifyUpdate()
}

// Stats returns the counters
func (d *Driver) Stats() Stats {
	return Stats{
		Ticks:  d.ticks.Load(),
		PassGo: d.passGo.Load(),
		Sent:   d.sent.Load(),
		Errors: d.errs.Load(),
	}
}

// notifyUpdate pokes the UI without blocking
func (d *Driver) notifyUpdate() {
	select {
	case d.UpdateChan <- struct{}{}:
	default:
	}
}

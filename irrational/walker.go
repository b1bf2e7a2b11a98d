package irrational

import (
	"sync"
	"sync/atomic"
)

// Window limits
const (
	MaxStart  = TableLength - 2 // 254
	MinEnd    = 1
	MaxEnd    = TableLength - 1 // 255
	MinLength = 1
	MaxLength = TableLength - 1 // 255
)

// initialDigit is the first digit of pi, held until the first Advance
const initialDigit = 3

// W is the process-wide walker, reinitialised with Init
var W *Walker

func init() {
	W = NewWalker(DefaultBank())
}

// Snapshot is an immutable copy of the walker state. Every mutation publishes a
// new one, so readers on other goroutines always see a consistent window.
type Snapshot struct {
	Sequence int
	Start    int
	Length   int
	End      int
	Position int
	Loop     bool
	Forward  bool
	PassGo   bool
	Digit    uint8
	Output   uint16
}

// Walker steps through a window of one digit table, one step per clock tick.
//
// Loop mode wraps from the window end back to the start. Pendulum mode bounces
// between start and end without emitting a boundary digit twice in a row.
type Walker struct {
	bank *Bank

	mu     sync.Mutex // held for every multi-field mutation
	seq    int
	start  int // i
	length int // l
	end    int // j
	pos    int // k
	loop   bool
	up     bool
	passGo bool
	digit  uint8

	snap atomic.Pointer[Snapshot]
}

// NewWalker creates a walker over bank covering the whole table
func NewWalker(bank *Bank) *Walker {
	w := &Walker{bank: bank}
	w.Init(0, MaxLength)
	return w
}

// Bank returns the tables the walker reads from
func (w *Walker) Bank() *Bank {
	return w.bank
}

// Init resets every field and establishes a fresh window at [start, start+length]
func (w *Walker) Init(start, length int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq = 0
	w.start = clamp(start, 0, MaxStart)
	w.length = clamp(length, MinLength, MaxLength)
	w.end = clamp(w.start+w.length, MinEnd, MaxEnd)
	w.pos = w.start
	w.digit = initialDigit
	w.loop = true
	w.passGo = true
	w.up = true
	w.publish()
}

// Advance moves one step and returns the new output code
func (w *Walker) Advance() uint16 {
	return w.AdvanceSnapshot().Output
}

// AdvanceSnapshot moves one step and returns the state that step published.
// Setters called concurrently can't change what it reports.
func (w *Walker) AdvanceSnapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.loop || w.up {
		w.pos++
	} else {
		w.pos--
	}
	if w.pos > w.end {
		if w.loop {
			w.pos = w.start
		} else {
			// back off two so the end digit isn't emitted twice
			w.pos -= 2
			w.up = false
		}
	}
	if w.pos < w.start {
		w.pos += 2
		w.up = true
	}

	w.passGo = w.pos == w.start

	// Out of range sequence holds the last digit
	if d, ok := w.bank.Digit(w.seq, w.pos); ok {
		w.digit = d
	}

	return *w.publish()
}

// ReadOutput returns the last output code without advancing
func (w *Walker) ReadOutput() uint16 {
	return w.snap.Load().Output
}

// SetWindowStart moves the window, keeping its length
func (w *Walker) SetWindowStart(start int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.start = clamp(start, 0, MaxStart)
	w.fitWindow()
	w.publish()
}

// SetWindowLength resizes the window from its start
func (w *Walker) SetWindowLength(length int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.length = clamp(length, MinLength, MaxLength)
	w.fitWindow()
	w.publish()
}

// SetLoopMode selects loop (true) or pendulum (false). Takes effect on the next Advance.
func (w *Walker) SetLoopMode(loop bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.loop = loop
	w.publish()
}

// SelectSequence stores the table index as given. It is range checked on lookup.
func (w *Walker) SelectSequence(seq int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq = seq
	w.publish()
}

// ResetWindow returns to the window start. PassGo is left for the next Advance.
func (w *Walker) ResetWindow() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pos = w.start
	w.publish()
}

// Snapshot returns the current state
func (w *Walker) Snapshot() Snapshot {
	return *w.snap.Load()
}

func (w *Walker) Position() int      { return w.snap.Load().Position }
func (w *Walker) WindowStart() int   { return w.snap.Load().Start }
func (w *Walker) WindowEnd() int     { return w.snap.Load().End }
func (w *Walker) WindowLength() int  { return w.snap.Load().Length }
func (w *Walker) SequenceIndex() int { return w.snap.Load().Sequence }
func (w *Walker) PassGo() bool       { return w.snap.Load().PassGo }
func (w *Walker) LoopMode() bool     { return w.snap.Load().Loop }
func (w *Walker) CurrentDigit() uint8 {
	return w.snap.Load().Digit
}

// fitWindow recomputes the end and pulls the position back inside. Caller holds mu.
func (w *Walker) fitWindow() {
	w.end = clamp(w.start+w.length, MinEnd, MaxEnd)
	w.pos = clamp(w.pos, w.start, w.end)
}

// publish stores a snapshot of the current fields. Caller holds mu.
func (w *Walker) publish() *Snapshot {
	s := &Snapshot{
		Sequence: w.seq,
		Start:    w.start,
		Length:   w.length,
		End:      w.end,
		Position: w.pos,
		Loop:     w.loop,
		Forward:  w.up,
		PassGo:   w.passGo,
		Digit:    w.digit,
		Output:   uint16(w.digit) << 8,
	}
	w.snap.Store(s)
	return s
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

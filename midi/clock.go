package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-irrational/debug"
)

// ClockPPQN is the MIDI timing clock resolution
const ClockPPQN = 24

// System real-time status bytes
const (
	statusClock    = 0xF8
	statusStart    = 0xFA
	statusContinue = 0xFB
	statusStop     = 0xFC
)

// ClockDivider turns 24 PPQN timing clock into ticks at division per quarter note
type ClockDivider struct {
	every   int
	count   int
	running bool
}

// NewClockDivider creates a divider. division is clamped to 1-24.
func NewClockDivider(division int) *ClockDivider {
	division = min(max(division, 1), ClockPPQN)
	return &ClockDivider{every: ClockPPQN / division, running: true}
}

// Handle consumes one real-time status byte and reports whether it is a tick.
// Start rearms so the first clock after it ticks; Stop ignores clocks until
// Start or Continue.
func (c *ClockDivider) Handle(status byte) bool {
	switch status {
	case statusStart:
		c.count = 0
		c.running = true
	case statusContinue:
		c.running = true
	case statusStop:
		c.running = false
	case statusClock:
		if !c.running {
			return false
		}
		tick := c.count == 0
		c.count = (c.count + 1) % c.every
		return tick
	}
	return false
}

// ListenClock calls onTick for every divided clock tick on the input port called
// name (the first input if empty). onStart is called on Start (may be nil).
// Returns a stop func.
func ListenClock(name string, division int, onTick, onStart func()) (func(), error) {
	ins, _, err := ports()
	if err != nil {
		return nil, err
	}
	for _, port := range ins {
		if name != "" && port.String() != name {
			continue
		}
		div := NewClockDivider(division)
		stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
			if len(msg) != 1 {
				return
			}
			if msg[0] == statusStart && onStart != nil {
				onStart()
			}
			if div.Handle(msg[0]) {
				onTick()
			}
		}, gomidi.UseTimeCode())
		if err != nil {
			return nil, fmt.Errorf("open input %q: %w", name, err)
		}
		debug.Log("clock", "listening on %s, %d ticks per quarter", port.String(), division)
		return stop, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrPortNotFound, name)
}

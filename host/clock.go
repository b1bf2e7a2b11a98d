package host

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-irrational/config"
	"go-irrational/midi"
)

// Clock drives the walker. Run calls tick once per step until ctx is done.
type Clock interface {
	Run(ctx context.Context, tick func()) error
}

// TempoSetter is implemented by clocks whose rate can be changed
type TempoSetter interface {
	SetTempo(bpm int)
	Tempo() int
}

// NewClock builds the clock described by cfg
func NewClock(cfg config.ClockConfig) (Clock, error) {
	switch cfg.Source {
	case config.ClockInternal, "":
		return NewInternalClock(cfg.Tempo, cfg.Division), nil
	case config.ClockMIDI:
		return &MIDIClock{Port: cfg.InputPort, Division: cfg.Division}, nil
	}
	return nil, fmt.Errorf("unknown clock source %q", cfg.Source)
}

// InternalClock ticks division times per beat at a settable tempo
type InternalClock struct {
	mu       sync.Mutex
	tempo    int
	division int
	changed  chan struct{}
}

// NewInternalClock creates a clock; tempo and division are clamped
func NewInternalClock(tempo, division int) *InternalClock {
	c := &InternalClock{
		division: min(max(division, config.MinDivision), config.MaxDivision),
		changed:  make(chan struct{}, 1),
	}
	c.SetTempo(tempo)
	return c
}

// SetTempo sets the BPM (20-300). A running clock picks it up immediately.
func (c *InternalClock) SetTempo(bpm int) {
	c.mu.Lock()
	c.tempo = min(max(bpm, config.MinTempo), config.MaxTempo)
	c.mu.Unlock()

	select {
	case c.changed <- struct{}{}:
	default:
	}
}

// Tempo returns the BPM
func (c *InternalClock) Tempo() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tempo
}

// Interval returns the time between ticks
func (c *InternalClock) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Minute / time.Duration(c.tempo*c.division)
}

func (c *InternalClock) Run(ctx context.Context, tick func()) error {
	ticker := time.NewTicker(c.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.changed:
			ticker.Reset(c.Interval())
		case <-ticker.C:
			tick()
		}
	}
}

// MIDIClock divides incoming MIDI timing clock
type MIDIClock struct {
	Port     string
	Division int
	OnStart  func() // optional, called on MIDI Start
}

func (c *MIDIClock) Run(ctx context.Context, tick func()) error {
	stop, err := midi.ListenClock(c.Port, c.Division, tick, c.OnStart)
	if err != nil {
		return err
	}
	<-ctx.Done()
	stop()
	return nil
}

package midi

import (
	"context"
	"sync"
	"time"

	"go-irrational/debug"
)

// PortEvent is emitted when the watched output port appears or disappears
type PortEvent struct {
	Type PortEventType
	Name string
}

type PortEventType int

const (
	PortConnected PortEventType = iota
	PortDisconnected
)

// PortWatcher handles hot-plug detection of one output port.
// An empty name watches for any output.
type PortWatcher struct {
	name     string
	list     func() ([]string, error)
	mu       sync.RWMutex
	present  string
	events   chan PortEvent
	pollRate time.Duration
}

// NewPortWatcher creates a watcher for the output called name
func NewPortWatcher(name string) *PortWatcher {
	return &PortWatcher{
		name:     name,
		list:     OutPorts,
		events:   make(chan PortEvent, 16),
		pollRate: time.Second,
	}
}

// Events returns a channel of connect/disconnect events
func (pw *PortWatcher) Events() <-chan PortEvent {
	return pw.events
}

// Present returns the name of the connected port, or "" if none
func (pw *PortWatcher) Present() string {
	pw.mu.RLock()
	defer pw.mu.RUnlock()
	return pw.present
}

// Run starts the polling loop (blocking - run in goroutine)
func (pw *PortWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(pw.pollRate)
	defer ticker.Stop()

	// Initial scan
	pw.scan()

	for {
		select {
		case <-ctx.Done():
			close(pw.events)
			return
		case <-ticker.C:
			pw.scan()
		}
	}
}

func (pw *PortWatcher) scan() {
	names, err := pw.list()
	if err != nil {
		// Hung scan - skip this round
		debug.Warn("ports", "scan: %v", err)
		return
	}

	found := ""
	for _, n := range names {
		if pw.name == "" || n == pw.name {
			found = n
			break
		}
	}

	pw.mu.Lock()
	prev := pw.present
	pw.present = found
	pw.mu.Unlock()

	if found == prev {
		return
	}
	if prev != "" {
		debug.Log("ports", "disconnected %s", prev)
		pw.emit(PortEvent{Type: PortDisconnected, Name: prev})
	}
	if found != "" {
		debug.Log("ports", "connected %s", found)
		pw.emit(PortEvent{Type: PortConnected, Name: found})
	}
}

// emit drops the event if nobody is listening
func (pw *PortWatcher) emit(e PortEvent) {
	select {
	case pw.events <- e:
	default:
	}
}

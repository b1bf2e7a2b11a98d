package midi

import (
	"errors"
	"fmt"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-irrational/debug"
)

// ErrPortNotFound is returned when no port matches the requested name
var ErrPortNotFound = errors.New("midi port not found")

// scanTimeout bounds port enumeration; CoreMIDI can hang
const scanTimeout = 3 * time.Second

// Sender delivers events to an output
type Sender interface {
	Send(Event) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(Event) error

func (f SenderFunc) Send(e Event) error { return f(e) }

// Message converts an event to its gomidi form
func Message(e Event) gomidi.Message {
	ch := e.Channel & 0x0f
	switch e.Type {
	case NoteOn:
		return gomidi.NoteOn(ch, e.Note, e.Velocity)
	case NoteOff:
		return gomidi.NoteOff(ch, e.Note)
	case CC:
		return gomidi.ControlChange(ch, e.Note, e.Velocity)
	}
	return nil
}

// PortSender sends to an opened output port
type PortSender struct {
	name string
	send func(msg gomidi.Message) error
}

// Name returns the port name
func (p *PortSender) Name() string {
	return p.name
}

// Send writes e to the port
func (p *PortSender) Send(e Event) error {
	msg := Message(e)
	if msg == nil {
		return fmt.Errorf("unknown event type 0x%02x", e.Type)
	}
	return p.send(msg)
}

// OpenSender opens the output port called name, or the first output if name is empty
func OpenSender(name string) (*PortSender, error) {
	_, outs, err := ports()
	if err != nil {
		return nil, err
	}
	for _, port := range outs {
		if name == "" || port.String() == name {
			send, err := gomidi.SendTo(port)
			if err != nil {
				return nil, fmt.Errorf("open output %q: %w", port.String(), err)
			}
			return &PortSender{name: port.String(), send: send}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPortNotFound, name)
}

// OutPorts lists output port names
func OutPorts() ([]string, error) {
	_, outs, err := ports()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, p := range outs {
		names[i] = p.String()
	}
	return names, nil
}

// InPorts lists input port names
func InPorts() ([]string, error) {
	ins, _, err := ports()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ins))
	for i, p := range ins {
		names[i] = p.String()
	}
	return names, nil
}

// ports enumerates ports with a timeout
func ports() ([]drivers.In, []drivers.Out, error) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		inPorts := gomidi.GetInPorts()
		outPorts := gomidi.GetOutPorts()
		ch <- portsResult{inPorts: inPorts, outPorts: outPorts}
	}()

	select {
	case result := <-ch:
		debug.Log("midi", "scan: %d in, %d out", len(result.inPorts), len(result.outPorts))
		return result.inPorts, result.outPorts, nil
	case <-time.After(scanTimeout):
		// User needs to run: sudo killall coreaudiod midiserver
		debug.Warn("midi", "port scan timed out after %v", scanTimeout)
		return nil, nil, errors.New("midi port scan timed out")
	}
}

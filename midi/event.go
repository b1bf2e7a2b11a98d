package midi

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// Event is one outgoing MIDI message. Channel is 0-15.
type Event struct {
	Type     uint8 // NoteOn, NoteOff, CC
	Channel  uint8
	Note     uint8 // note number, or controller number for CC
	Velocity uint8 // velocity, or value for CC
}

package host

import (
	"fmt"

	"go-irrational/scale"
)

// Digit extracts the digit from an output code (high byte)
func Digit(code uint16) uint8 {
	return uint8(code >> 8)
}

// Converter maps output codes to pitch. It stands in for the DAC stage: a digit
// picks a scale degree above the root, so 0-9 spans a little over an octave.
type Converter struct {
	root  int
	scale scale.Scale
	name  string
}

// NewConverter builds a converter for root (MIDI note) and a scale name
func NewConverter(root int, scaleName string) (*Converter, error) {
	s, ok := scale.Lookup(scaleName)
	if !ok {
		return nil, fmt.Errorf("unknown scale %q", scaleName)
	}
	return &Converter{root: min(max(root, 0), 127), scale: s, name: scaleName}, nil
}

// ScaleName returns the scale the converter was built with
func (c *Converter) ScaleName() string {
	return c.name
}

// Semitones returns the offset above the root for code
func (c *Converter) Semitones(code uint16) int {
	return c.scale.Degree(int(Digit(code)))
}

// Note returns the MIDI note for code, clamped to 0-127
func (c *Converter) Note(code uint16) uint8 {
	return uint8(min(max(c.root+c.Semitones(code), 0), 127))
}

// Volts returns the 1V/oct control voltage above the root
func (c *Converter) Volts(code uint16) float64 {
	return float64(c.Semitones(code)) / 12
}

// CCValue scales the digit 0-9 to a controller value 0-127
func CCValue(code uint16) uint8 {
	d := min(int(Digit(code)), 9)
	return uint8(d * 127 / 9)
}

package scale

import "strings"

// Scale is a list of intervals from the root, in semitones
type Scale []int

// Names in display order
var Names = []string{
	"Chromatic", "Major", "Minor", "Pentatonic",
	"Dorian", "Phrygian", "Lydian", "Mixolydian", "Locrian",
	"HarmonicMinor", "MelodicMinor", "Blues", "WholeTone",
	"DimHalfWhole", "DimWholeHalf", "Hungarian", "DoubleHarmonic",
	"PhrygianDominant", "Hirajoshi", "InSen", "Yo", "Bhairavi",
}

// At most one octave each; digits past the top degree carry into the next octave
var scales = map[string]Scale{
	"chromatic":        {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	"major":            {0, 2, 4, 5, 7, 9, 11},
	"minor":            {0, 2, 3, 5, 7, 8, 10},
	"pentatonic":       {0, 2, 4, 7, 9},
	"dorian":           {0, 2, 3, 5, 7, 9, 10},
	"phrygian":         {0, 1, 3, 5, 7, 8, 10},
	"lydian":           {0, 2, 4, 6, 7, 9, 11},
	"mixolydian":       {0, 2, 4, 5, 7, 9, 10},
	"locrian":          {0, 1, 3, 5, 6, 8, 10},
	"harmonicminor":    {0, 2, 3, 5, 7, 8, 11},
	"melodicminor":     {0, 2, 3, 5, 7, 9, 11},
	"blues":            {0, 3, 5, 6, 7, 10},
	"wholetone":        {0, 2, 4, 6, 8, 10},
	"dimhalfwhole":     {0, 1, 3, 4, 6, 7, 9, 10},
	"dimwholehalf":     {0, 2, 3, 5, 6, 8, 9, 11},
	"hungarian":        {0, 2, 3, 6, 7, 8, 11},
	"doubleharmonic":   {0, 1, 4, 5, 7, 8, 11},
	"phrygiandominant": {0, 1, 4, 5, 7, 8, 10},
	"hirajoshi":        {0, 2, 3, 7, 8},
	"insen":            {0, 1, 5, 7, 10},
	"yo":               {0, 2, 5, 7, 9},
	"bhairavi":         {0, 1, 3, 5, 7, 8, 10},
}

func key(name string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name))
}

// Lookup finds a scale by name, ignoring case, spaces, dashes and underscores
func Lookup(name string) (Scale, bool) {
	s, ok := scales[key(name)]
	return s, ok
}

// Valid reports whether name is a known scale
func Valid(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Next returns the scale name after name in display order, wrapping around
func Next(name string, step int) string {
	k := key(name)
	for i, n := range Names {
		if key(n) == k {
			j := ((i+step)%len(Names) + len(Names)) % len(Names)
			return Names[j]
		}
	}
	return Names[0]
}

// Degree returns the semitone offset of scale degree n, carrying into higher
// octaves once n runs past the end of the scale
func (s Scale) Degree(n int) int {
	if len(s) == 0 || n < 0 {
		return 0
	}
	return s[n%len(s)] + 12*(n/len(s))
}

package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func digits(n int) []uint8 {
	d := make([]uint8, n)
	for i := range d {
		d[i] = uint8(i % 10)
	}
	return d
}

func TestRenderDigitStripMarkers(t *testing.T) {
	out := RenderDigitStrip(StripView{Digits: digits(64), Start: 2, End: 5, Position: 4}, PlainStripStyles())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "  0 0 1[2 3>4 5]6 7"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], " 32 2 3 4"), lines[1])
}

func TestRenderDigitStripPassGoAndRowEnd(t *testing.T) {
	out := RenderDigitStrip(StripView{Digits: digits(64), Start: 28, End: 31, Position: 28, PassGo: true}, PlainStripStyles())
	lines := strings.Split(out, "\n")

	assert.True(t, strings.HasSuffix(lines[0], "*8 9 0 1]"), lines[0])
	assert.NotContains(t, lines[1], "]")
}

func TestRenderDigitStripBlank(t *testing.T) {
	out := RenderDigitStrip(StripView{Digits: digits(32), Start: 0, End: 10, Position: 3, Blank: true}, PlainStripStyles())
	assert.Equal(t, "  0      >3"+strings.Repeat(" ", 2*28), out)
}

func TestRenderKeyHelp(t *testing.T) {
	out := RenderKeyHelp([]KeySection{{Title: "Window", Keys: []KeyBinding{{Key: "h / l", Desc: "start -/+"}}}})
	assert.Equal(t, "Window\n  h / l        start -/+", out)
}

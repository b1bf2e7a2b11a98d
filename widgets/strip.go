package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StripColumns is the number of digits per row; 8 rows cover a table
const StripColumns = 32

// StripStyles colours the parts of a digit strip
type StripStyles struct {
	Outside  lipgloss.Style // digits outside the window
	Window   lipgloss.Style // digits inside the window
	Playhead lipgloss.Style // the current position
	Margin   lipgloss.Style // row offsets
}

// PlainStripStyles renders without colour (tests, dumb terminals)
func PlainStripStyles() StripStyles {
	return StripStyles{
		Outside:  lipgloss.NewStyle(),
		Window:   lipgloss.NewStyle(),
		Playhead: lipgloss.NewStyle(),
		Margin:   lipgloss.NewStyle(),
	}
}

// StripView is what the strip needs to know about the walker
type StripView struct {
	Digits   []uint8
	Start    int
	End      int
	Position int
	PassGo   bool
	Blank    bool // screensaver: only the playhead is drawn
}

// RenderDigitStrip draws the table as rows of digits. Each digit is led by a
// marker so the strip reads without colour: '>' for the playhead ('*' when it
// just passed go), '[' on the window start and ']' after the window end.
func RenderDigitStrip(v StripView, st StripStyles) string {
	var lines []string
	for row := 0; row*StripColumns < len(v.Digits); row++ {
		var line strings.Builder
		line.WriteString(st.Margin.Render(fmt.Sprintf("%3d", row*StripColumns)))

		last := -1
		for col := 0; col < StripColumns; col++ {
			i := row*StripColumns + col
			if i >= len(v.Digits) {
				break
			}
			last = i
			line.WriteString(lead(v, i))

			ch := string(rune('0' + v.Digits[i]))
			switch {
			case i == v.Position:
				line.WriteString(st.Playhead.Render(ch))
			case v.Blank:
				line.WriteString(" ")
			case i >= v.Start && i <= v.End:
				line.WriteString(st.Window.Render(ch))
			default:
				line.WriteString(st.Outside.Render(ch))
			}
		}
		if last == v.End && !v.Blank {
			line.WriteString("]")
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func lead(v StripView, i int) string {
	switch {
	case i == v.Position && v.PassGo:
		return "*"
	case i == v.Position:
		return ">"
	case v.Blank:
		return " "
	case i == v.Start:
		return "["
	case i == v.End+1 && i%StripColumns != 0:
		return "]"
	}
	return " "
}

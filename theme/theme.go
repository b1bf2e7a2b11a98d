package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"go-irrational/widgets"
)

type Theme struct {
	Palette *Palette
}

// New creates a theme; a nil palette uses DefaultPalette
func New(palette *Palette) *Theme {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Theme{Palette: palette}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep purple
	RoleMuted   = 0.2 // purple-magenta
	RoleFG      = 0.4 // pink-purple (readable)
	RoleAccent  = 0.5 // vivid magenta
	RoleCursor  = 0.6 // rose pink
	RoleActive  = 0.7 // soft red
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

// Style helpers

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Cursor() lipgloss.Color  { return t.Color(RoleCursor) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// SequenceColor spreads the digit tables across the upper half of the palette
func (t *Theme) SequenceColor(seq, count int) lipgloss.Color {
	if count <= 1 || seq < 0 || seq >= count {
		return t.Accent()
	}
	return t.Color(0.5 + 0.5*float64(seq)/float64(count-1))
}

// StripStyles colours the digit strip
func (t *Theme) StripStyles() widgets.StripStyles {
	return widgets.StripStyles{
		Outside:  lipgloss.NewStyle().Foreground(t.Muted()),
		Window:   lipgloss.NewStyle().Foreground(t.FG()),
		Playhead: lipgloss.NewStyle().Foreground(t.BG()).Background(t.Success()).Bold(true),
		Margin:   lipgloss.NewStyle().Foreground(t.Muted()),
	}
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-irrational/config"
	"go-irrational/host"
	"go-irrational/irrational"
	"go-irrational/midi"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Walker.Length = 4
	d, err := host.NewDriver(irrational.NewWalker(irrational.DefaultBank()), cfg, host.NewInternalClock(120, 4),
		midi.SenderFunc(func(midi.Event) error { return nil }))
	require.NoError(t, err)
	return NewModel(d, nil, nil, 15*time.Second)
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next.(Model)
}

func TestKeysDriveWalker(t *testing.T) {
	m := newTestModel(t)
	w := m.Driver.Walker()

	m = press(t, m, "L")
	m = press(t, m, "l")
	assert.Equal(t, 17, w.WindowStart())
	m = press(t, m, "h")
	assert.Equal(t, 16, w.WindowStart())

	m = press(t, m, "k")
	assert.Equal(t, 5, w.WindowLength())
	m = press(t, m, "j")
	assert.Equal(t, 4, w.WindowLength())

	m = press(t, m, "s")
	assert.Equal(t, irrational.SeqPhi, w.SequenceIndex())
	m = press(t, m, "S")
	m = press(t, m, "S")
	assert.Equal(t, irrational.SeqDress63, w.SequenceIndex())

	m = press(t, m, "m")
	assert.False(t, w.LoopMode())

	m = press(t, m, "c")
	assert.Equal(t, "Minor", m.Driver.Converter().ScaleName())
}

func TestTransportKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "p")
	assert.False(t, m.Driver.Playing())
	m = press(t, m, "p")
	assert.True(t, m.Driver.Playing())

	m = press(t, m, "+")
	assert.Equal(t, 125, m.Driver.Tempo())
	m = press(t, m, "-")
	m = press(t, m, "-")
	assert.Equal(t, 115, m.Driver.Tempo())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Empty(t, next.(Model).View())
	assert.False(t, m.Driver.Playing())
}

func TestViewShowsState(t *testing.T) {
	m := newTestModel(t)
	m.Driver.Tick()

	out := m.View()
	assert.Contains(t, out, "PLAY")
	assert.Contains(t, out, "120bpm")
	assert.Contains(t, out, "pi")
	assert.Contains(t, out, "loop")
	assert.Contains(t, out, "no output")
	assert.Contains(t, out, "window 0-4 (4)")
	assert.Contains(t, out, ">1")
	assert.Contains(t, out, "ticks 1")
	assert.Contains(t, out, "Transport")

	m = press(t, m, "?")
	assert.NotContains(t, m.View(), "Transport")
}

func TestScreensaverBlanksAllButPlayhead(t *testing.T) {
	m := newTestModel(t)
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }
	m.lastInput = now

	assert.False(t, m.Blanked())
	assert.Contains(t, m.View(), "go-irrational")

	now = now.Add(16 * time.Second)
	assert.True(t, m.Blanked())
	out := m.View()
	assert.NotContains(t, out, "go-irrational")
	assert.Contains(t, out, "*3")
	assert.NotContains(t, out, "[")

	m = press(t, m, "x")
	assert.False(t, m.Blanked())
}

func TestPortEvents(t *testing.T) {
	m := newTestModel(t)
	m.Ports = midi.NewPortWatcher("Synth")

	var got []midi.PortEvent
	m.OnPort = func(e midi.PortEvent) { got = append(got, e) }

	next, cmd := m.Update(PortEventMsg{Type: midi.PortConnected, Name: "Synth"})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Synth")

	next, _ = m.Update(PortEventMsg{Type: midi.PortDisconnected, Name: "Synth"})
	m = next.(Model)
	assert.Contains(t, m.View(), "no output")
	assert.Len(t, got, 2)
}

func TestUnknownSequenceView(t *testing.T) {
	m := newTestModel(t)
	m.Driver.Walker().SelectSequence(42)
	assert.Contains(t, m.View(), "no table 42, holding 3")
}

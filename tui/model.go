package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-irrational/host"
	"go-irrational/irrational"
	"go-irrational/midi"
	"go-irrational/theme"
	"go-irrational/widgets"
)

const (
	tempoStep = 5
	bigStep   = 16
)

// saverPoll is how often the model checks whether to blank the screen
const saverPoll = 500 * time.Millisecond

var keyHelp = []widgets.KeySection{
	{Title: "Window", Keys: []widgets.KeyBinding{
		{Key: "h / l", Desc: "start -/+ (H / L by 16)"},
		{Key: "j / k", Desc: "length -/+"},
		{Key: "r", Desc: "back to start"},
	}},
	{Title: "Sequence", Keys: []widgets.KeyBinding{
		{Key: "s / S", Desc: "next / prev table"},
		{Key: "m", Desc: "loop / pendulum"},
		{Key: "c / C", Desc: "next / prev scale"},
	}},
	{Title: "Transport", Keys: []widgets.KeyBinding{
		{Key: "p", Desc: "play / stop"},
		{Key: "+ / -", Desc: "tempo"},
		{Key: "q", Desc: "quit"},
	}},
}

type Model struct {
	Driver *host.Driver
	Ports  *midi.PortWatcher // may be nil
	Theme  *theme.Theme

	// OnPort is called for every hot-plug event (main swaps the sender)
	OnPort func(midi.PortEvent)

	port        string
	screensaver time.Duration
	lastInput   time.Time
	now         func() time.Time
	showHelp    bool
	quitting    bool
}

type UpdateMsg struct{}

type PortEventMsg midi.PortEvent

type saverMsg time.Time

// NewModel creates the UI. screensaver <= 0 disables blanking.
func NewModel(driver *host.Driver, ports *midi.PortWatcher, th *theme.Theme, screensaver time.Duration) Model {
	if th == nil {
		th = theme.New(nil)
	}
	m := Model{
		Driver:      driver,
		Ports:       ports,
		Theme:       th,
		screensaver: screensaver,
		now:         time.Now,
		showHelp:    true,
	}
	m.lastInput = m.now()
	if ports != nil {
		m.port = ports.Present()
	}
	return m
}

func ListenForUpdates(driver *host.Driver) tea.Cmd {
	return func() tea.Msg {
		<-driver.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForPorts(ports *midi.PortWatcher) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ports.Events()
		if !ok {
			return nil
		}
		return PortEventMsg(event)
	}
}

func pollSaver() tea.Cmd {
	return tea.Tick(saverPoll, func(t time.Time) tea.Msg {
		return saverMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Driver)}
	if m.Ports != nil {
		cmds = append(cmds, ListenForPorts(m.Ports))
	}
	if m.screensaver > 0 {
		cmds = append(cmds, pollSaver())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.lastInput = m.now()
		return m.handleKey(msg.String())

	case UpdateMsg:
		return m, ListenForUpdates(m.Driver)

	case PortEventMsg:
		event := midi.PortEvent(msg)
		if event.Type == midi.PortConnected {
			m.port = event.Name
		} else if event.Name == m.port {
			m.port = ""
		}
		if m.OnPort != nil {
			m.OnPort(event)
		}
		return m, ListenForPorts(m.Ports)

	case saverMsg:
		return m, pollSaver()
	}

	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	d := m.Driver
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		d.Stop()
		return m, tea.Quit

	case "h", "left":
		d.NudgeStart(-1)
	case "l", "right":
		d.NudgeStart(1)
	case "H":
		d.NudgeStart(-bigStep)
	case "L":
		d.NudgeStart(bigStep)
	case "j", "down":
		d.NudgeLength(-1)
	case "k", "up":
		d.NudgeLength(1)
	case "r":
		d.Reset()

	case "s":
		d.CycleSequence(1)
	case "S":
		d.CycleSequence(-1)
	case "m":
		d.ToggleMode()
	case "c":
		d.CycleScale(1)
	case "C":
		d.CycleScale(-1)

	case "p", " ":
		if d.Playing() {
			d.Stop()
		} else {
			d.Play()
		}
	case "+", "=":
		d.SetTempo(d.Tempo() + tempoStep)
	case "-", "_":
		d.SetTempo(d.Tempo() - tempoStep)

	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// Blanked reports whether the screensaver is showing
func (m Model) Blanked() bool {
	return m.screensaver > 0 && m.now().Sub(m.lastInput) >= m.screensaver
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Driver.Walker().Snapshot()
	blank := m.Blanked()

	var digits []uint8
	if bank := m.Driver.Walker().Bank(); bank != nil && snap.Sequence >= 0 && snap.Sequence < irrational.NumSequences {
		if t := bank[snap.Sequence]; t != nil {
			digits = t[:]
		}
	}

	strip := widgets.RenderDigitStrip(widgets.StripView{
		Digits:   digits,
		Start:    snap.Start,
		End:      snap.End,
		Position: snap.Position,
		PassGo:   snap.PassGo,
		Blank:    blank,
	}, m.Theme.StripStyles())

	var out strings.Builder
	out.WriteString("\n")
	if blank {
		out.WriteString("\n\n")
		out.WriteString(strip)
		return out.String()
	}

	out.WriteString(m.header(snap))
	out.WriteString("\n\n")
	if digits == nil {
		out.WriteString(lipgloss.NewStyle().Foreground(m.Theme.Warning()).Render(fmt.Sprintf("no table %d, holding %d", snap.Sequence, snap.Digit)))
	} else {
		out.WriteString(strip)
	}
	out.WriteString("\n\n")
	out.WriteString(m.status(snap))

	if m.showHelp {
		out.WriteString("\n\n")
		out.WriteString(lipgloss.NewStyle().Foreground(m.Theme.Muted()).Render(widgets.RenderKeyHelp(keyHelp)))
	}
	return out.String()
}

func (m Model) header(snap irrational.Snapshot) string {
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	seqStyle := lipgloss.NewStyle().Foreground(m.Theme.SequenceColor(snap.Sequence, irrational.NumSequences)).Bold(true)

	playState := "STOP"
	if m.Driver.Playing() {
		playState = "PLAY"
	}
	tempo := "ext"
	if bpm := m.Driver.Tempo(); bpm > 0 {
		tempo = fmt.Sprintf("%3dbpm", bpm)
	}
	mode := "loop"
	if !snap.Loop {
		mode = "pendulum"
	}
	port := m.port
	if port == "" {
		port = "no output"
	}

	return headerStyle.Render(fmt.Sprintf("go-irrational  %s  %s  ", playState, tempo)) +
		seqStyle.Render(irrational.SequenceName(snap.Sequence)) +
		headerStyle.Render(fmt.Sprintf("  %s  %s", mode, port))
}

func (m Model) status(snap irrational.Snapshot) string {
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	conv := m.Driver.Converter()
	st := m.Driver.Stats()

	dir := "<"
	if snap.Forward {
		dir = ">"
	}
	line := fmt.Sprintf("window %d-%d (%d)  pos %3d %s  digit %d  note %3d  %+.2fV  %s",
		snap.Start, snap.End, snap.Length, snap.Position, dir, snap.Digit,
		conv.Note(snap.Output), conv.Volts(snap.Output), conv.ScaleName())
	stats := fmt.Sprintf("ticks %d  pass-go %d  sent %d  errors %d", st.Ticks, st.PassGo, st.Sent, st.Errors)
	return dimStyle.Render(line + "\n" + stats)
}

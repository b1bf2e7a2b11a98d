package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-irrational/config"
	"go-irrational/host"
	"go-irrational/irrational"
)

func TestDumpLoop(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dumpWalk(&buf, dumpOptions{sequence: 0, start: 0, length: 4, steps: 5}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "# pi [0,4] loop", lines[0])
	assert.Equal(t, "   0  pos   1  digit 1  0x0100", lines[1])
	assert.Equal(t, "   4  pos   0  digit 3  0x0300  go", lines[5])
}

func TestDumpPendulum(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dumpWalk(&buf, dumpOptions{sequence: 0, start: 0, length: 4, pendulum: true, steps: 8}))

	var positions []string
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")[1:] {
		positions = append(positions, strings.Fields(line)[2])
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "3", "2", "1", "0"}, positions)
}

func TestDumpRejectsNegativeSteps(t *testing.T) {
	assert.Error(t, dumpWalk(&bytes.Buffer{}, dumpOptions{length: 4, steps: -1}))
}

func TestDumpCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"dump", "--sequence", "3", "--length", "2", "--steps", "2"})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(buf.String(), "# e [0,2] loop\n"), buf.String())
}

func TestOverridesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	o := &overrides{port: "Synth", tempo: 500, changed: map[string]bool{"tempo": true}}
	o.apply(cfg)
	assert.Equal(t, config.MaxTempo, cfg.Clock.Tempo)
	assert.Empty(t, cfg.Output.Port)

	o.changed["port"] = true
	o.apply(cfg)
	assert.Equal(t, "Synth", cfg.Output.Port)
}

func TestPrintPorts(t *testing.T) {
	var buf bytes.Buffer
	printPorts(&buf, []string{"Synth"}, nil)
	assert.Equal(t, "Outputs:\n  0: Synth\nInputs:\n  (none)\n", buf.String())
}

func TestMIDIStartRewindsWalker(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Clock.Source = config.ClockMIDI
	cfg.Walker.Start = 10
	clock, err := host.NewClock(cfg.Clock)
	require.NoError(t, err)

	d, err := host.NewDriver(irrational.NewWalker(irrational.DefaultBank()), cfg, clock, nil)
	require.NoError(t, err)
	rewindOnStart(clock, d)

	mc := clock.(*host.MIDIClock)
	require.NotNil(t, mc.OnStart)

	d.Tick()
	d.Tick()
	require.Equal(t, 12, d.Walker().Position())

	mc.OnStart()
	assert.Equal(t, 10, d.Walker().Position())

	// internal clocks have no Start to hook
	internal := host.NewInternalClock(120, 4)
	rewindOnStart(internal, d)
}

func TestInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go-irrational", "config.toml")

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"init", path})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "wrote "+path+"\n", buf.String())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, err = writeDefaultConfig(path, false)
	assert.Error(t, err)
	_, err = writeDefaultConfig(path, true)
	assert.NoError(t, err)
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	err := run(context.Background(), &overrides{logLevel: "loud"})
	assert.ErrorContains(t, err, "log level")
}

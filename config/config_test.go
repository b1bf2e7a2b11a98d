package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[walker]
start = 32
length = 8
sequence = 3
loop = false

[output]
scale = "dorian"
channel = 40
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, WalkerConfig{Start: 32, Length: 8, Sequence: 3, Loop: false}, cfg.Walker)
	assert.Equal(t, "dorian", cfg.Output.Scale)
	assert.Equal(t, 16, cfg.Output.Channel)
	assert.Equal(t, 120, cfg.Clock.Tempo)
	assert.Equal(t, ClockInternal, cfg.Clock.Source)
	assert.Equal(t, ScreensaverTimeoutMS, cfg.Display.ScreensaverMS)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultConfig()
	cfg.Walker.Start = 100
	cfg.Clock.Source = ClockMIDI
	cfg.Clock.InputPort = "Clock In"
	cfg.Output.PassGoNote = 36

	require.NoError(t, cfg.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		check   func(*testing.T, *Config)
		wantErr bool
	}{
		{
			name:   "clamps tempo and division",
			mutate: func(c *Config) { c.Clock.Tempo = 1000; c.Clock.Division = 0 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, MaxTempo, c.Clock.Tempo)
				assert.Equal(t, MinDivision, c.Clock.Division)
			},
		},
		{
			name:   "normalizes clock source",
			mutate: func(c *Config) { c.Clock.Source = " MIDI " },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ClockMIDI, c.Clock.Source)
			},
		},
		{
			name:   "empty clock source is internal",
			mutate: func(c *Config) { c.Clock.Source = "" },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, ClockInternal, c.Clock.Source)
			},
		},
		{
			name:    "rejects unknown clock source",
			mutate:  func(c *Config) { c.Clock.Source = "cv" },
			wantErr: true,
		},
		{
			name:    "rejects unknown scale",
			mutate:  func(c *Config) { c.Output.Scale = "klingon" },
			wantErr: true,
		},
		{
			name:   "clamps gate",
			mutate: func(c *Config) { c.Output.Gate = 3 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 1.0, c.Output.Gate)
			},
		},
		{
			name:   "restores redraw",
			mutate: func(c *Config) { c.Display.RedrawMS = 0 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, RedrawTimeoutMS, c.Display.RedrawMS)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalid))
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[walker\nstart ="), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestCoreTimerRate(t *testing.T) {
	assert.Equal(t, 60, CoreTimerRate)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, DefaultConfig().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) { got <- c })
	}()

	// give the watcher time to register
	time.Sleep(50 * time.Millisecond)

	cfg := DefaultConfig()
	cfg.Walker.Start = 77
	require.NoError(t, cfg.Save(path))

	select {
	case c := <-got:
		assert.Equal(t, 77, c.Walker.Start)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchPicksUpFileCreatedLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go-irrational", "config.toml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c *Config) { got <- c })
	}()

	// the directory appears once the watcher is up
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Dir(path))
		return err == nil
	}, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	select {
	case err := <-done:
		t.Fatalf("watch returned early: %v", err)
	default:
	}

	require.NoError(t, os.WriteFile(path, []byte("[walker]\nstart = 9\n"), 0644))

	select {
	case c := <-got:
		assert.Equal(t, 9, c.Walker.Start)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

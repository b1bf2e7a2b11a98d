package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	file    *os.File
	logger  zerolog.Logger
	mu      sync.Mutex
	enabled bool
)

// DefaultPath returns ~/.config/go-irrational/debug.log
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "go-irrational", "debug.log")
}

// Enable starts debug logging to path (DefaultPath if empty), truncating it
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}

	file = f
	start(f)
	return nil
}

// EnableConsole logs human readable lines to w (stderr when nil)
func EnableConsole(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return
	}
	if w == nil {
		w = os.Stderr
	}
	start(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000", NoColor: true})
}

// start installs the logger. Caller holds mu.
func start(w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger = zerolog.New(w).With().Timestamp().Logger()
	enabled = true

	// Write directly (can't call Log - we hold the mutex)
	logger.Info().Str("category", "debug").Msg("=== Debug logging started ===")
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	logger = zerolog.Nop()
	enabled = false
	counters = make(map[string]int)
}

// Enabled reports whether logging is on
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetLevel sets the minimum level ("debug", "info", "warn", "error")
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// Log writes a debug message under category
func Log(category, format string, args ...any) {
	write(zerolog.DebugLevel, category, format, args...)
}

// Warn writes a warning under category
func Warn(category, format string, args ...any) {
	write(zerolog.WarnLevel, category, format, args...)
}

// Error writes err under category
func Error(category string, err error, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || err == nil {
		return
	}
	logger.Error().Str("category", category).Err(err).Msgf(format, args...)
	flush()
}

func write(level zerolog.Level, category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.WithLevel(level).Str("category", category).Msgf(format, args...)
	flush()
}

// flush syncs the file so logs survive a crash. Caller holds mu.
func flush() {
	if file != nil {
		file.Sync()
	}
}

// LogEvery logs only every N calls (use for per-tick events)
var counters = make(map[string]int)

func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if n > 0 && count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	rdebug "runtime/debug"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"go-irrational/config"
	"go-irrational/debug"
	"go-irrational/host"
	"go-irrational/irrational"
	"go-irrational/midi"
	"go-irrational/theme"
	"go-irrational/tui"
)

// maxFPS is bubbletea's frame rate ceiling
const maxFPS = 120

// overrides holds flags that win over the config file, including on reload
type overrides struct {
	cfgPath  string
	debug    bool
	logLevel string
	port     string
	tempo    int
	changed  map[string]bool
}

func (o *overrides) apply(cfg *config.Config) {
	if o.changed["port"] {
		cfg.Output.Port = o.port
	}
	if o.changed["tempo"] {
		cfg.Clock.Tempo = min(max(o.tempo, config.MinTempo), config.MaxTempo)
	}
}

func getVersion() string {
	if info, ok := rdebug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newRootCmd() *cobra.Command {
	o := &overrides{}

	root := &cobra.Command{
		Use:     "go-irrational",
		Short:   "Step through digits of irrational numbers and play them over MIDI",
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.changed = map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { o.changed[f.Name] = true })
			return run(cmd.Context(), o)
		},
	}

	root.Flags().StringVar(&o.cfgPath, "config", "", "path to config file (default: $HOME/.config/go-irrational/config.toml)")
	root.Flags().BoolVar(&o.debug, "debug", false, "write a debug log to $HOME/.config/go-irrational/debug.log")
	root.Flags().StringVar(&o.logLevel, "log-level", "debug", "minimum debug log level (debug, info, warn, error)")
	root.Flags().StringVar(&o.port, "port", "", "MIDI output port (default: first available)")
	root.Flags().IntVar(&o.tempo, "tempo", 120, "internal clock tempo in BPM")

	root.AddCommand(newPortsCmd(), newDumpCmd(), newInitCmd())
	return root
}

// rewindOnStart sends the walker back to the window start on MIDI Start
func rewindOnStart(clock host.Clock, driver *host.Driver) {
	if mc, ok := clock.(*host.MIDIClock); ok {
		mc.OnStart = driver.Reset
	}
}

func run(ctx context.Context, o *overrides) error {
	if err := debug.SetLevel(o.logLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if o.debug {
		if err := debug.Enable(debug.DefaultPath()); err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer debug.Disable()
	}

	cfgPath := o.cfgPath
	if cfgPath == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	o.apply(cfg)

	th := theme.New(nil)
	if cfg.Display.Palette != "" {
		palette, err := theme.LoadGPL(cfg.Display.Palette)
		if err != nil {
			return err
		}
		th = theme.New(palette)
	}

	clock, err := host.NewClock(cfg.Clock)
	if err != nil {
		return err
	}

	// A missing port isn't fatal: the watcher connects it when it shows up
	var sender midi.Sender
	if ps, err := midi.OpenSender(cfg.Output.Port); err != nil {
		debug.Error("output", err, "open %q", cfg.Output.Port)
	} else {
		sender = ps
	}

	driver, err := host.NewDriver(irrational.W, cfg, clock, sender)
	if err != nil {
		return err
	}
	rewindOnStart(clock, driver)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ports := midi.NewPortWatcher(cfg.Output.Port)
	go ports.Run(ctx)

	go func() {
		if err := driver.Run(ctx); err != nil {
			debug.Error("clock", err, "stopped")
		}
	}()

	go func() {
		err := config.Watch(ctx, cfgPath, func(c *config.Config) {
			o.apply(c)
			if err := driver.Apply(c); err != nil {
				debug.Error("config", err, "apply")
			}
		})
		if err != nil {
			debug.Error("config", err, "watch %s", cfgPath)
		}
	}()

	m := tui.NewModel(driver, ports, th, time.Duration(cfg.Display.ScreensaverMS)*time.Millisecond)
	m.OnPort = func(e midi.PortEvent) {
		if e.Type == midi.PortDisconnected {
			driver.SetSender(nil)
			return
		}
		ps, err := midi.OpenSender(e.Name)
		if err != nil {
			debug.Error("output", err, "reconnect %q", e.Name)
			return
		}
		driver.SetSender(ps)
	}

	fps := min(max(1000/cfg.Display.RedrawMS, 1), maxFPS)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithFPS(fps), tea.WithContext(ctx))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			p.Quit()
		case <-ctx.Done():
		}
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

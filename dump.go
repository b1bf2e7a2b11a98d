package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go-irrational/irrational"
)

type dumpOptions struct {
	sequence int
	start    int
	length   int
	pendulum bool
	steps    int
}

func newDumpCmd() *cobra.Command {
	o := dumpOptions{}
	cmd := &cobra.Command{
		Use:     "dump",
		Short:   "Print a walk without opening any MIDI ports",
		Example: "  go-irrational dump --sequence 3 --start 10 --length 5 --pendulum --steps 12",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpWalk(cmd.OutOrStdout(), o)
		},
	}
	cmd.Flags().IntVar(&o.sequence, "sequence", irrational.SeqPi, "table index (0-7)")
	cmd.Flags().IntVar(&o.start, "start", 0, "window start")
	cmd.Flags().IntVar(&o.length, "length", 15, "window length")
	cmd.Flags().BoolVar(&o.pendulum, "pendulum", false, "bounce between the window ends instead of looping")
	cmd.Flags().IntVar(&o.steps, "steps", 32, "number of steps to print")
	return cmd
}

func dumpWalk(w io.Writer, o dumpOptions) error {
	if o.steps < 0 {
		return fmt.Errorf("steps must be >= 0, got %d", o.steps)
	}

	walker := irrational.NewWalker(irrational.DefaultBank())
	walker.Init(o.start, o.length)
	walker.SelectSequence(o.sequence)
	walker.SetLoopMode(!o.pendulum)

	s := walker.Snapshot()
	mode := "loop"
	if o.pendulum {
		mode = "pendulum"
	}
	fmt.Fprintf(w, "# %s [%d,%d] %s\n", irrational.SequenceName(s.Sequence), s.Start, s.End, mode)

	for i := 0; i < o.steps; i++ {
		code := walker.Advance()
		s = walker.Snapshot()
		mark := ""
		if s.PassGo {
			mark = "  go"
		}
		fmt.Fprintf(w, "%4d  pos %3d  digit %d  0x%04x%s\n", i, s.Position, s.Digit, code, mark)
	}
	return nil
}

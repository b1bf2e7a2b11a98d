package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go-irrational/debug"
	"go-irrational/midi"
)

func newPortsCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "ports",
		Short: "List MIDI input and output ports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				debug.EnableConsole(os.Stderr)
				defer debug.Disable()
			}
			outs, err := midi.OutPorts()
			if err != nil {
				return err
			}
			ins, err := midi.InPorts()
			if err != nil {
				return err
			}
			printPorts(cmd.OutOrStdout(), outs, ins)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log port scanning to stderr")
	return cmd
}

func printPorts(w io.Writer, outs, ins []string) {
	fmt.Fprintln(w, "Outputs:")
	if len(outs) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, name := range outs {
		fmt.Fprintf(w, "  %d: %s\n", i, name)
	}
	fmt.Fprintln(w, "Inputs:")
	if len(ins) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, name := range ins {
		fmt.Fprintf(w, "  %d: %s\n", i, name)
	}
}

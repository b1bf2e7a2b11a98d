package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-irrational/config"
)

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default config file to edit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			path, err := writeDefaultConfig(path, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// writeDefaultConfig saves the defaults to path (ConfigPath if empty) and
// returns where it wrote
func writeDefaultConfig(path string, force bool) (string, error) {
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return "", err
		}
		path = p
	}
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return "", err
	}
	return path, nil
}

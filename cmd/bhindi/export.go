package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write a JSON backup of local data",
		Long:  "Writes the backup to path, to the dated default name when path is omitted, or to stdout when path is -.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.rt == nil {
				return errNoRuntime
			}
			name, data, err := c.rt.Services.Data.ExportJSON()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				name = args[0]
			}
			if name == "-" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(name, data, 0o600); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", name)
			return nil
		},
	}
}

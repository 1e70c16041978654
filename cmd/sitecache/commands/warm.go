package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWarmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warm --set NAME [--set NAME...]",
		Short: "Build the indexes of several known-sites sets concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sets, _ := cmd.Flags().GetStringArray("set")
			return c.app.Warm(cmd.Context(), sets)
		},
	}
	cmd.Flags().StringArrayP("set", "s", nil, "Name of a known-sites set from sitecache.yaml (repeatable)")
	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/sitecache/internal/ui/output"
	"go.trai.ch/sitecache/internal/ui/style"
)

func (c *CLI) newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack --output FILE",
		Short: "Write a precomputed index for a known-sites key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := c.resolveKey(cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("output")

			n, err := c.app.Pack(cmd.Context(), key, out)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			text := style.NewText(output.NewRenderer(w))
			_, err = fmt.Fprintf(w, "%s %s (%d records)\n", text.Success.Render(style.Check), out, n)
			return err
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Path of the precomputed index to write")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

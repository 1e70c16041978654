package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [regions...]",
		Short: "Print known sites overlapping the given regions",
		Long: "Print every known site overlapping the given regions as tab-separated\n" +
			"contig, start, end, id, ref and alt. Regions are contig, contig:pos or contig:start-end.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			key, err := c.resolveKey(cmd)
			if err != nil {
				return err
			}
			return c.app.Query(cmd.Context(), key, args, cmd.OutOrStdout())
		},
	}
	addSourceFlags(cmd)
	return cmd
}

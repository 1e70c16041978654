package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/sitecache/internal/app"
	"go.trai.ch/sitecache/internal/ui/output"
	"go.trai.ch/sitecache/internal/ui/style"
)

func (c *CLI) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a known-sites index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := c.resolveKey(cmd)
			if err != nil {
				return err
			}
			report, err := c.app.Stats(cmd.Context(), key)
			if err != nil {
				return err
			}
			return renderReport(cmd, report)
		},
	}
	addSourceFlags(cmd)
	return cmd
}

func renderReport(cmd *cobra.Command, report app.Report) error {
	w := cmd.OutOrStdout()
	text := style.NewText(output.NewRenderer(w))

	width := len("records")
	for _, cc := range report.Contigs {
		width = max(width, len(cc.Contig))
	}

	_, err := fmt.Fprintf(w, "%s\n%s %s\n",
		text.Heading.Render(report.Key.String()),
		text.Label.Render("records")+pad(width, "records"),
		text.Count.Render(strconv.Itoa(report.Records)),
	)
	if err != nil {
		return err
	}

	for _, cc := range report.Contigs {
		_, err := fmt.Fprintf(w, "%s %s\n",
			text.Label.Render(cc.Contig)+pad(width, cc.Contig),
			strconv.Itoa(cc.Records),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func pad(width int, s string) string {
	return strings.Repeat(" ", width-len(s))
}

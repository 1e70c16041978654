// Package commands implements the CLI commands for sitecache.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/sitecache/internal/app"
	"go.trai.ch/sitecache/internal/build"
	"go.trai.ch/sitecache/internal/core/domain"
)

// CLI represents the command line interface for sitecache.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	ResolveKey(set string, sources []string) (domain.Key, error)
	Query(ctx context.Context, key domain.Key, regions []string, w io.Writer) error
	Stats(ctx context.Context, key domain.Key) (app.Report, error)
	Pack(ctx context.Context, key domain.Key, output string) (int, error)
	Warm(ctx context.Context, sets []string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "sitecache",
		Short:         "Query and pack known-sites interval indexes",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newQueryCmd())
	rootCmd.AddCommand(c.newStatsCmd())
	rootCmd.AddCommand(c.newPackCmd())
	rootCmd.AddCommand(c.newWarmCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addSourceFlags registers the flags that select a known-sites key.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("set", "s", "", "Name of a known-sites set from sitecache.yaml")
	cmd.Flags().StringArrayP("source", "S", nil, "Known-sites source location (repeatable, order matters)")
}

func (c *CLI) resolveKey(cmd *cobra.Command) (domain.Key, error) {
	set, _ := cmd.Flags().GetString("set")
	sources, _ := cmd.Flags().GetStringArray("source")
	return c.app.ResolveKey(set, sources)
}

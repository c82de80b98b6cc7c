package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nholm/acctsync/renderer"
)

type directoryCmd struct{}

func (*directoryCmd) Name() string     { return "directory" }
func (*directoryCmd) Synopsis() string { return "display the shared account directory" }
func (*directoryCmd) Usage() string {
	return `acs directory

  Displays the shared account directory: every account known to either
  ledger, with the sources it is known to. The directory is rebuilt by
  each prune pass.
`
}

func (c *directoryCmd) SetFlags(f *flag.FlagSet) {}

func (c *directoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	entries, err := openEngine(appConfig()).Directory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading directory: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.DirectoryMarkdown(entries))
	return subcommands.ExitSuccess
}

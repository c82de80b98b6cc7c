package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nholm/acctsync/renderer"
)

type pruneCmd struct{}

func (*pruneCmd) Name() string { return "prune" }
func (*pruneCmd) Synopsis() string {
	return "remove performance records for accounts no longer in the portfolio"
}
func (*pruneCmd) Usage() string {
	return `acs prune

  Compares the current-year performance records against the latest
  committed portfolio snapshot, removes the per-owner records whose
  account left the portfolio, and rebuilds the shared account directory.
  Yearly entries themselves are never deleted, so past years keep their
  history.
`
}

func (c *pruneCmd) SetFlags(f *flag.FlagSet) {}

func (c *pruneCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	summary, err := openEngine(appConfig()).SyncPerformanceAccountsFromLatestPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pruning performance accounts: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PruneMarkdown(summary))
	return subcommands.ExitSuccess
}

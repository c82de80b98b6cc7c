package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nholm/acctsync"
	"github.com/nholm/acctsync/renderer"
)

// syncCmd holds the flags for the 'sync' subcommand.
type syncCmd struct {
	file string
}

func (*syncCmd) Name() string { return "sync" }
func (*syncCmd) Synopsis() string {
	return "push portfolio balances into the performance ledger"
}
func (*syncCmd) Usage() string {
	return `acs sync [-f <file>]

  Pushes the balances of a portfolio update session into the matching
  performance accounts. By default the latest committed record is used;
  -f syncs a CSV session directly without committing it.

  With no manual groups, accounts are matched individually and unmatched
  ones create new performance records. As soon as a manual group exists,
  only group balances are pushed.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "CSV session to sync instead of the latest committed record.")
}

func (c *syncCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := appConfig()
	engine := openEngine(cfg)

	var inputs []acctsync.PortfolioAccountInput
	if c.file != "" {
		file, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.file, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		inputs, _, err = acctsync.ImportPortfolioCSV(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", c.file, err)
			return subcommands.ExitFailure
		}
	} else {
		records, err := engine.PortfolioRecords()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading portfolio records: %v\n", err)
			return subcommands.ExitFailure
		}
		latest := acctsync.LatestPortfolioRecord(records)
		if latest == nil {
			fmt.Fprintln(os.Stderr, "No committed portfolio record to sync. Run 'acs commit' first.")
			return subcommands.ExitFailure
		}
		inputs = latest.Accounts
	}

	summary, err := engine.SyncPortfolioBalanceToPerformance(inputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error syncing balances: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SyncMarkdown(summary))
	return subcommands.ExitSuccess
}

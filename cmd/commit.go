package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/nholm/acctsync"
)

// commitCmd holds the flags for the 'commit' subcommand.
type commitCmd struct {
	file string
	date string
}

func (*commitCmd) Name() string     { return "commit" }
func (*commitCmd) Synopsis() string { return "commit a portfolio update session from a CSV file" }
func (*commitCmd) Usage() string {
	return `acs commit [-f <file>] [-d <date>]

  Reads portfolio update rows from a CSV file (stdin by default) and
  commits them as a new immutable portfolio record. A file carrying the
  flow columns (contributions, gains, ...) commits a detailed update.

Usage Examples:
# Commit today's balances from a spreadsheet export.
$ acs commit -f balances.csv

`
}

func (c *commitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "-", "CSV file to commit, '-' for stdin.")
	f.StringVar(&c.date, "d", "", "Update date for the session (defaults to today).")
}

func (c *commitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var on acctsync.Date
	if c.date != "" {
		var err error
		on, err = acctsync.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	var in io.Reader = os.Stdin
	if c.file != "-" {
		file, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.file, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		in = file
	}

	inputs, mode, err := acctsync.ImportPortfolioCSV(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	cfg := appConfig()
	// Imported amounts carry no currency; tag them with the configured one.
	for i := range inputs {
		inputs[i].Amount = acctsync.M(inputs[i].Amount.Decimal(), cfg.DefaultCurrency)
	}

	record, err := openEngine(cfg).CommitPortfolioUpdate(inputs, mode, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error committing portfolio update: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Committed record %s: %d accounts, total %s on %s\n",
		record.ID, record.AccountsCount, record.TotalAmount, record.UpdateDate)
	return subcommands.ExitSuccess
}

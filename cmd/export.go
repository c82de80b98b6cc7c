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

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the latest portfolio record as CSV" }
func (*exportCmd) Usage() string {
	return `acs export [-o <file>]

  Writes the latest committed portfolio record in the import CSV format,
  so the exported file can start the next update session.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "-", "Output file, '-' for stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	records, err := openEngine(appConfig()).PortfolioRecords()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio records: %v\n", err)
		return subcommands.ExitFailure
	}
	latest := acctsync.LatestPortfolioRecord(records)
	if latest == nil {
		fmt.Fprintln(os.Stderr, "No committed portfolio record to export.")
		return subcommands.ExitFailure
	}

	var out io.Writer = os.Stdout
	if c.output != "-" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		out = file
	}

	if err := acctsync.ExportPortfolioCSV(out, *latest); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting record: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

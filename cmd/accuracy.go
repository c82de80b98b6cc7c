package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nholm/acctsync"
)

// accuracyCmd holds the flags for the 'accuracy' subcommand.
type accuracyCmd struct {
	owner       string
	accountType string
	accurate    bool
	source      string
	notes       string
	maxAge      int
}

func (*accuracyCmd) Name() string     { return "accuracy" }
func (*accuracyCmd) Synopsis() string { return "attest or check the accuracy of detailed data" }
func (*accuracyCmd) Usage() string {
	return `acs accuracy <mark|check> -owner <owner> -type <account-type> [flags]

  'mark' records that the detailed data (contributions, gains, fees) of
  the owner's account was verified. 'check' answers whether such an
  attestation exists and is recent enough to trust.

Usage Examples:
$ acs accuracy mark -owner Alex -type 401k -ok -source statement
$ acs accuracy check -owner Alex -type 401k

`
}

func (c *accuracyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Owner of the performance record.")
	f.StringVar(&c.accountType, "type", "", "Account type the attestation is about.")
	f.BoolVar(&c.accurate, "ok", false, "Attest the data as accurate, for mark.")
	f.StringVar(&c.source, "source", "", "Where the data was verified against, for mark.")
	f.StringVar(&c.notes, "notes", "", "Free-form notes, for mark.")
	f.IntVar(&c.maxAge, "max-age", 0, "Staleness window in hours, for check. 0 uses the configured default.")
}

func (c *accuracyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.owner == "" || c.accountType == "" {
		fmt.Fprintln(os.Stderr, "Both -owner and -type are required.")
		return subcommands.ExitUsageError
	}

	cfg := appConfig()
	engine := openEngine(cfg)
	accountType := acctsync.AccountType(c.accountType)

	switch f.Arg(0) {
	case "mark":
		ok, err := engine.MarkAccuracy(c.owner, accountType, acctsync.AccuracyAttestation{
			IsAccurate: c.accurate,
			Source:     c.source,
			Notes:      c.notes,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error marking accuracy: %v\n", err)
			return subcommands.ExitFailure
		}
		if !ok {
			fmt.Fprintf(os.Stderr, "No performance record for %s %s this year; nothing marked.\n", c.owner, c.accountType)
			return subcommands.ExitFailure
		}
		fmt.Printf("Recorded accuracy attestation for %s %s\n", c.owner, c.accountType)
		return subcommands.ExitSuccess

	case "check":
		maxAge := c.maxAge
		if maxAge <= 0 {
			maxAge = cfg.AccuracyMaxAgeHours
		}
		status, err := engine.CheckAccuracy(c.owner, accountType, maxAge)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error checking accuracy: %v\n", err)
			return subcommands.ExitFailure
		}
		if status.IsAccurate {
			fmt.Printf("%s %s: accurate, verified %s\n", c.owner, c.accountType, status.LastUpdated.Format("2006-01-02"))
		} else {
			fmt.Printf("%s %s: not trustworthy (%s)\n", c.owner, c.accountType, status.Reason)
		}
		return subcommands.ExitSuccess

	default:
		fmt.Fprintf(os.Stderr, "Unknown action %q, want mark or check.\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
}

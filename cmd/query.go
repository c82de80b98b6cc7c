package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
	"github.com/nholm/acctsync/docstore"
)

// queryCmd holds the flags for the 'query' subcommand.
type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression against a stored document" }
func (*queryCmd) Usage() string {
	return `acs query <document> <jsonpath>

  Evaluates a JSONPath expression against one of the stored documents:
  portfolio-records, performance-store, account-directory, manual-groups.

Usage Examples:
# Total of every committed record.
$ acs query portfolio-records '$[*].totalAmount'

`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: acs query <document> <jsonpath>")
		return subcommands.ExitUsageError
	}
	name, path := f.Arg(0), f.Arg(1)

	store := docstore.NewFileStore(appConfig().StorePath)
	doc, err := store.Get(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading document %q: %v\n", name, err)
		return subcommands.ExitFailure
	}

	var value any
	if err := json.Unmarshal(doc.Data, &value); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding document %q: %v\n", name, err)
		return subcommands.ExitFailure
	}

	result, err := jsonpath.Get(path, value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", path, err)
		return subcommands.ExitFailure
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}

package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/nholm/acctsync/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion. It must be
// checked before flag.Parse, and exits the process when a completion is
// being requested.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"store":  predict.Dirs("*"),
		"config": predict.Files("*.yaml"),
	},
	Sub: map[string]*complete.Command{
		"commit": {Flags: map[string]complete.Predictor{
			"f": predict.Files("*.csv"),
			"d": predict.Nothing,
		}},
		"sync": {Flags: map[string]complete.Predictor{
			"f": predict.Files("*.csv"),
		}},
		"prune": {},
		"group": {Args: predict.Set{"list", "create", "rename", "target", "add", "remove", "delete"}},
		"accuracy": {Args: predict.Set{"mark", "check"}, Flags: map[string]complete.Predictor{
			"owner": predict.Nothing,
			"type":  predict.Set{"IRA", "Brokerage", "401k", "ESPP", "HSA"},
		}},
		"directory": {},
		"export": {Flags: map[string]complete.Predictor{
			"o": predict.Files("*.csv"),
		}},
		"query": {Args: predict.Set{"portfolio-records", "performance-store", "account-directory", "manual-groups"}},
		"topic": {Args: predict.Set{"readme", "reconcile", "groups", "accuracy", "*"}},
	},
}

func main() {
	completion.Complete("acs")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

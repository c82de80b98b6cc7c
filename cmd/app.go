// Package cmd implements the CLI application to reconcile the account ledgers.
package cmd

import (
	"flag"
	"log"

	"github.com/google/subcommands"
	"github.com/nholm/acctsync"
	"github.com/nholm/acctsync/docstore"
)

// Commands lists every subcommand.
// A main package registers them on a commander and Execute()s the user-selected one.
var Commands = []subcommands.Command{
	&commitCmd{},
	&syncCmd{},
	&pruneCmd{},
	&groupCmd{},
	&accuracyCmd{},
	&directoryCmd{},
	&exportCmd{},
	&queryCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storePath = flag.String("store", "", "Path to the document store folder. Overrides the config file.")
var configFile = flag.String("config", "", "Path to the config file (default ~/.acctsync.yaml)")

// appConfig loads the config file and applies the command line overrides.
func appConfig() Config {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		log.Printf("warning, could not read config: %v, using defaults", err)
		cfg = DefaultConfig()
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}
	return cfg
}

// openEngine is the central function to open the reconciliation engine over
// the configured store.
func openEngine(cfg Config) *acctsync.Engine {
	engine := acctsync.NewEngine(docstore.NewFileStore(cfg.StorePath))
	engine.Notifier = logNotifier{}
	return engine
}

// logNotifier logs performance changes so the user sees what a pass rewrote.
type logNotifier struct{}

func (logNotifier) PerformanceChanged(change acctsync.PerformanceChange) {
	log.Printf("performance ledger updated from %s for %d", change.Source, change.Year)
}

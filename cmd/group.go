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

// groupCmd holds the flags for the 'group' subcommand.
type groupCmd struct {
	id     string
	name   string
	owner  string
	target string
	member string
}

func (*groupCmd) Name() string     { return "group" }
func (*groupCmd) Synopsis() string { return "manage manual account groups" }
func (*groupCmd) Usage() string {
	return `acs group <list|create|rename|target|add|remove|delete> [flags]

  Manages manual account groups. A group fuses several portfolio accounts
  into one performance target; while any group exists, only groups are
  synced.

Usage Examples:
# Create a group and bind it to a performance account.
$ acs group create -name "Retirement" -owner Alex
$ acs group target -id <id> -to "Alex's Fidelity 401k (Traditional)"
$ acs group add -id <id> -member <account-id>

`
}

func (c *groupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Group to operate on.")
	f.StringVar(&c.name, "name", "", "Display name, for create and rename.")
	f.StringVar(&c.owner, "owner", "", "Owner of the group's performance record, for create.")
	f.StringVar(&c.target, "to", "", "Performance account name to sync the group into, for target.")
	f.StringVar(&c.member, "member", "", "Portfolio account ID, for add and remove.")
}

func (c *groupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine := openEngine(appConfig())

	action := f.Arg(0)
	if action == "" {
		action = "list"
	}

	if action == "list" {
		groups, err := engine.Groups()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading groups: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.GroupsMarkdown(groups.All()))
		return subcommands.ExitSuccess
	}

	err := engine.UpdateGroups(func(groups acctsync.ManualGroups) error {
		switch action {
		case "create":
			group := groups.Create()
			group.Name = c.name
			group.Owner = c.owner
			fmt.Printf("Created group %s\n", group.ID)
			return nil
		case "rename":
			return groups.Rename(c.id, c.name)
		case "target":
			return groups.SetTarget(c.id, c.target)
		case "add":
			return groups.AddMember(c.id, c.member)
		case "remove":
			return groups.RemoveMember(c.id, c.member)
		case "delete":
			return groups.Delete(c.id)
		default:
			return fmt.Errorf("unknown action %q", action)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error on group %s: %v\n", action, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

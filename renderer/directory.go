package renderer

import (
	"github.com/nholm/acctsync"
)

// DirectoryMarkdown renders the shared account directory as a markdown
// table, sorted for display.
func DirectoryMarkdown(entries []acctsync.DirectoryEntry) string {
	return renderTemplate("directory", "directory.md", acctsync.DirectoryRows(entries))
}

// GroupsMarkdown renders the manual account groups, one section per group.
func GroupsMarkdown(groups []*acctsync.ManualAccountGroup) string {
	return renderTemplate("groups", "groups.md", groups)
}

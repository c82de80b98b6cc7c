package renderer

import (
	"github.com/nholm/acctsync"
)

// SyncMarkdown renders a push pass summary to a markdown string.
func SyncMarkdown(s acctsync.SyncSummary) string {
	return renderTemplate("sync", "sync_summary.md", s)
}

// PruneMarkdown renders a prune/merge pass summary to a markdown string.
func PruneMarkdown(s acctsync.PruneSummary) string {
	return renderTemplate("prune", "prune_summary.md", s)
}

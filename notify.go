package acctsync

// PerformanceChange announces that the performance ledger was rewritten by
// a sync pass, so consuming surfaces can refresh what they display.
type PerformanceChange struct {
	Source string `json:"source"`
	Year   int    `json:"year"`
}

// Notifier is the notification collaborator. The engine calls it exactly
// once after a push pass that wrote the performance document; it never
// calls it for a pass that changed nothing. Whether and how the event
// reaches other components is the consumer's decision.
type Notifier interface {
	PerformanceChanged(PerformanceChange)
}

// NopNotifier ignores every change.
type NopNotifier struct{}

func (NopNotifier) PerformanceChanged(PerformanceChange) {}

package repository

import "context"

// Notifier announces a completed workflow step to whoever is subscribed.
// A failed notification never fails the submit that triggered it.
type Notifier interface {
	NotifyStageDone(ctx context.Context, page, jobCardNo, summary string) error
}

// InsightRepository produces a free-text reading of the current stage
// counts for the dashboard. Optional; pages work without it.
type InsightRepository interface {
	SummarizeCounts(ctx context.Context, counts map[string]int) (string, error)
}

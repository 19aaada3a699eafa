package repositories

import "context"

// Stats holds the dashboard counters.
type Stats struct {
	ActiveLearners   int64 `json:"activeLearners"`
	ClassesBooked    int64 `json:"classesBooked"`
	PendingBookings  int64 `json:"pendingBookings"`
	ApprovedBookings int64 `json:"approvedBookings"`
}

type StatsRepository interface {
	Get(ctx context.Context) (*Stats, error)
}

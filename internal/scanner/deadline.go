package scanner

import "time"

// Deadline tracks elapsed wall-clock time against a scan's time budget.
// Every probe loop, at every nesting level, calls Expired before issuing a
// network request. A zero or negative budget is treated as already expired,
// so nothing is probed but the scanner still returns a well-formed result.
type Deadline struct {
	start  time.Time
	budget time.Duration
}

// NewDeadline starts the clock for the given budget.
func NewDeadline(budget time.Duration) Deadline {
	return Deadline{start: time.Now(), budget: budget}
}

// Expired reports whether the budget has been used up.
func (d Deadline) Expired() bool {
	if d.budget <= 0 {
		return true
	}
	return time.Since(d.start) >= d.budget
}

// Elapsed returns how long the scan has been running.
func (d Deadline) Elapsed() time.Duration {
	return time.Since(d.start)
}

// Remaining returns the budget left, never negative.
func (d Deadline) Remaining() time.Duration {
	left := d.budget - time.Since(d.start)
	if left < 0 {
		return 0
	}
	return left
}

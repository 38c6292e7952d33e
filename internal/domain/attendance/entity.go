package attendance

import (
	"time"
)

// EntryStatus is the lifecycle state of a stored time entry.
type EntryStatus string

const (
	// EntryStatusActive means the entry is still open for transitions.
	EntryStatusActive EntryStatus = "active"
	// EntryStatusCompleted means the entry was closed by clock-out and is
	// read-only history from that point on.
	EntryStatusCompleted EntryStatus = "completed"
)

// TimeEntry is one attendance attempt for a (user, work date) pair. At most
// one entry per pair may be in status 'active' at any instant; the store
// enforces this with a partial unique index.
//
// TimeIn is nullable only to represent corrupted rows that the maintenance
// path repairs; the transition engine always writes it at creation.
type TimeEntry struct {
	ID         int64
	UserID     string
	WorkDate   time.Time
	TimeIn     *time.Time
	LunchStart *time.Time
	LunchEnd   *time.Time
	TimeOut    *time.Time
	TotalHours *float64
	Notes      *string
	Status     EntryStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OnBreak reports whether the entry has a break started and not yet ended.
func (e *TimeEntry) OnBreak() bool {
	return e.LunchStart != nil && e.LunchEnd == nil
}

// Completed reports whether the entry was closed by clock-out.
func (e *TimeEntry) Completed() bool {
	return e.Status == EntryStatusCompleted
}

// RoundHours rounds an hour value to two decimals, the precision stored in
// total_hours.
func RoundHours(h float64) float64 {
	if h < 0 {
		h = 0
	}
	return float64(int64(h*100+0.5)) / 100
}

// SpanHours computes the in-to-out span in hours, rounded to two decimals.
// Break time is included: breaks are paid and reported separately.
func SpanHours(timeIn, timeOut time.Time) float64 {
	return RoundHours(timeOut.Sub(timeIn).Seconds() / 3600)
}

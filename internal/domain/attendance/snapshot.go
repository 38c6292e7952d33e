package attendance

import (
	"time"
)

// Status is the derived point-in-time state of a user.
type Status string

const (
	StatusOut     Status = "clocked_out"
	StatusIn      Status = "clocked_in"
	StatusOnBreak Status = "on_break"
)

// StatusSnapshot is a read-only projection of the latest time entry plus
// wall-clock time. Only the fields valid for the status are set: an Out
// snapshot carries no elapsed seconds or clock-in time, an In/OnBreak
// snapshot carries no completed-day totals.
type StatusSnapshot struct {
	UserID       string
	Status       Status
	WorkSeconds  int64
	BreakSeconds int64

	// Set while clocked in or on break.
	EntryID     *int64
	ClockInTime *time.Time

	// Set while on break.
	BreakStartTime *time.Time

	// Set when the day already holds a completed entry.
	LastClockOut *time.Time
	TotalHours   *float64
}

// Project derives the status snapshot for a user from the active entry (nil
// when none), the latest completed entry for the same day (nil when none),
// and the current time. It never mutates anything and never fails: a user
// with no entries projects to a plain Out snapshot.
func Project(userID string, active *TimeEntry, lastCompleted *TimeEntry, now time.Time) StatusSnapshot {
	snap := StatusSnapshot{
		UserID: userID,
		Status: StatusOut,
	}

	if active == nil {
		if lastCompleted != nil {
			snap.LastClockOut = lastCompleted.TimeOut
			snap.TotalHours = lastCompleted.TotalHours
		}
		return snap
	}

	snap.EntryID = &active.ID
	snap.ClockInTime = active.TimeIn

	// A corrupted active row without time_in projects as Out until the
	// maintenance pass repairs it.
	if active.TimeIn == nil {
		return snap
	}
	timeIn := *active.TimeIn

	switch {
	case active.OnBreak():
		snap.Status = StatusOnBreak
		snap.BreakStartTime = active.LunchStart
		snap.WorkSeconds = flooredSeconds(active.LunchStart.Sub(timeIn))
		snap.BreakSeconds = flooredSeconds(now.Sub(*active.LunchStart))
	case active.LunchStart != nil && active.LunchEnd != nil:
		snap.Status = StatusIn
		snap.WorkSeconds = flooredSeconds(active.LunchStart.Sub(timeIn)) +
			flooredSeconds(now.Sub(*active.LunchEnd))
		snap.BreakSeconds = flooredSeconds(active.LunchEnd.Sub(*active.LunchStart))
	default:
		snap.Status = StatusIn
		snap.WorkSeconds = flooredSeconds(now.Sub(timeIn))
	}

	return snap
}

// flooredSeconds converts a duration into whole seconds, never negative.
func flooredSeconds(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return int64(d.Seconds())
}

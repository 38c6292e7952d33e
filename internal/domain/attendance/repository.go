package attendance

import (
	"context"
	"time"
)

// UpdateActiveFields carries the mutable fields of an active entry. Nil
// means "leave untouched". Completed entries are never updated through this.
type UpdateActiveFields struct {
	LunchStart *time.Time
	LunchEnd   *time.Time
	Notes      *string

	// ClearLunchEnd nulls lunch_end, used when a later break starts and the
	// entry's break pair rolls over to the new one.
	ClearLunchEnd bool
}

// TimeEntryRepository defines data access for time entries.
//
// FindActiveForUpdate acquires an exclusive row lock and therefore only
// makes sense inside a transaction (see postgresql.WithTransaction); the
// lock is held until that transaction commits or rolls back, which is what
// serializes concurrent transitions for one (user, work date) key.
//
// "No such row" is reported as a nil entry with a nil error; a non-nil
// error always means the storage layer itself failed.
type TimeEntryRepository interface {
	FindActive(ctx context.Context, userID string, workDate time.Time) (*TimeEntry, error)
	FindActiveForUpdate(ctx context.Context, userID string, workDate time.Time) (*TimeEntry, error)
	FindLatestCompleted(ctx context.Context, userID string, workDate time.Time) (*TimeEntry, error)

	// CreateActive inserts a fresh active entry. When a concurrent insert
	// already created the active row for the same (user, work date), it
	// returns ErrDuplicateActive so the caller can converge on that row.
	CreateActive(ctx context.Context, userID string, workDate time.Time, timeIn time.Time) (TimeEntry, error)

	// UpdateActive writes fields on an entry that is still active. The
	// returned bool is false when no active entry with that id exists.
	UpdateActive(ctx context.Context, id int64, fields UpdateActiveFields) (bool, error)

	// CloseActive sets time_out and total_hours, optionally closing an open
	// break, and flips status to completed. False when the entry is gone or
	// already completed.
	CloseActive(ctx context.Context, id int64, timeOut time.Time, lunchEnd *time.Time, totalHours float64) (bool, error)

	// ListCompleted returns completed entries for the user with work_date in
	// [start, end], ordered by work_date.
	ListCompleted(ctx context.Context, userID string, start, end time.Time) ([]TimeEntry, error)

	// Maintenance reads. FindStaleActive returns active entries whose
	// updated_at is before cutoff; FindDuplicateActive returns every
	// (user, work date) group holding more than one active entry, newest
	// first within each group; FindCorruptedActive returns active entries
	// missing time_in.
	FindStaleActive(ctx context.Context, cutoff time.Time) ([]TimeEntry, error)
	FindDuplicateActive(ctx context.Context) ([][]TimeEntry, error)
	FindCorruptedActive(ctx context.Context) ([]TimeEntry, error)

	// UpdateCompletedNote appends a repair note on an already completed
	// entry. False when the entry does not exist.
	UpdateCompletedNote(ctx context.Context, id int64, note string) (bool, error)
}

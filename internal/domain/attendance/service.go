package attendance

import "context"

// AttendanceService is the transition engine plus its read side. Every call
// takes the acting user id explicitly; there is no ambient identity below
// the handler layer. Authorization is the caller's problem.
type AttendanceService interface {
	// Apply validates and applies one clock/break transition for the user's
	// current work date, fully serialized against concurrent transitions for
	// the same (user, work date).
	Apply(ctx context.Context, req ClockActionRequest) (ActionResponse, error)

	// Status projects the live status snapshot for one user.
	Status(ctx context.Context, userID string) (StatusResponse, error)

	// RosterStatus projects snapshots for several users at once.
	RosterStatus(ctx context.Context, userIDs []string) ([]StatusResponse, error)

	// History lists completed entries for a date range.
	History(ctx context.Context, filter HistoryFilter) ([]EntryResponse, error)

	// Maintain runs the repair pass: force-close stale actives, collapse
	// duplicate actives, complete corrupted actives.
	Maintain(ctx context.Context) (MaintenanceResult, error)
}

package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftwise/timeclock-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db      *database.DB
	entries attendance.TimeEntryRepository
}

func NewAttendanceService(db *database.DB, entries attendance.TimeEntryRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:      db,
		entries: entries,
	}
}

// workDateOf truncates a wall-clock instant to the server-local calendar
// day the entry is scoped to.
func workDateOf(now time.Time) time.Time {
	local := now.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// Apply implements attendance.AttendanceService.
//
// The whole read-check-write runs inside one transaction holding an
// exclusive lock on the active row (FindActiveForUpdate), so concurrent
// transitions for the same (user, work date) serialize in commit order: a
// loser of the lock race observes the winner's state and either converges
// (duplicate clock_in) or fails its precondition like any other illegal
// transition.
func (s *AttendanceServiceImpl) Apply(ctx context.Context, req attendance.ClockActionRequest) (attendance.ActionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ActionResponse{}, err
	}

	workDate := workDateOf(time.Now())

	var result attendance.TimeEntry
	var now time.Time
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		entry, err := s.entries.FindActiveForUpdate(txCtx, req.UserID, workDate)
		if err != nil {
			return err
		}

		// Stamped after the lock read, not at entry: a transition that
		// waited out a concurrent holder takes a time at or after the
		// holder's commit, so stored timestamps per entry stay monotonic
		// (lunch_end >= lunch_start, time_out >= time_in).
		now = time.Now().UTC()

		switch req.Action {
		case attendance.ActionClockIn:
			result, err = s.clockIn(txCtx, req.UserID, workDate, entry, now)
		case attendance.ActionBreakStart:
			result, err = s.breakStart(txCtx, entry, now)
		case attendance.ActionBreakEnd:
			result, err = s.breakEnd(txCtx, entry, now)
		case attendance.ActionClockOut:
			result, err = s.clockOut(txCtx, req.UserID, workDate, entry, now)
		default:
			return attendance.ErrUnknownAction
		}
		return err
	})
	if err != nil {
		return attendance.ActionResponse{}, err
	}

	return mapActionResponse(req.UserID, result, now), nil
}

func (s *AttendanceServiceImpl) clockIn(ctx context.Context, userID string, workDate time.Time, active *attendance.TimeEntry, now time.Time) (attendance.TimeEntry, error) {
	if active != nil {
		return attendance.TimeEntry{}, attendance.ErrAlreadyClockedIn
	}

	created, err := s.entries.CreateActive(ctx, userID, workDate, now)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateActive) {
			// A concurrent clock_in won the insert race. Converge on the
			// winning row instead of erroring, so a double submit still ends
			// with exactly one active entry.
			winner, findErr := s.entries.FindActiveForUpdate(ctx, userID, workDate)
			if findErr != nil {
				return attendance.TimeEntry{}, findErr
			}
			if winner == nil {
				return attendance.TimeEntry{}, fmt.Errorf("active entry vanished after duplicate insert: %w", err)
			}
			return *winner, nil
		}
		return attendance.TimeEntry{}, err
	}

	return created, nil
}

func (s *AttendanceServiceImpl) breakStart(ctx context.Context, active *attendance.TimeEntry, now time.Time) (attendance.TimeEntry, error) {
	if active == nil {
		return attendance.TimeEntry{}, attendance.ErrNotClockedIn
	}
	if active.OnBreak() {
		return attendance.TimeEntry{}, attendance.ErrAlreadyOnBreak
	}

	// A fully closed earlier break does not block a new one; the entry's
	// break pair rolls over to the latest break.
	fields := attendance.UpdateActiveFields{
		LunchStart:    &now,
		ClearLunchEnd: active.LunchEnd != nil,
	}
	found, err := s.entries.UpdateActive(ctx, active.ID, fields)
	if err != nil {
		return attendance.TimeEntry{}, err
	}
	if !found {
		return attendance.TimeEntry{}, attendance.ErrEntryNotFound
	}

	active.LunchStart = &now
	active.LunchEnd = nil
	return *active, nil
}

func (s *AttendanceServiceImpl) breakEnd(ctx context.Context, active *attendance.TimeEntry, now time.Time) (attendance.TimeEntry, error) {
	if active == nil {
		return attendance.TimeEntry{}, attendance.ErrNotClockedIn
	}
	if !active.OnBreak() {
		return attendance.TimeEntry{}, attendance.ErrNotOnBreak
	}

	found, err := s.entries.UpdateActive(ctx, active.ID, attendance.UpdateActiveFields{LunchEnd: &now})
	if err != nil {
		return attendance.TimeEntry{}, err
	}
	if !found {
		return attendance.TimeEntry{}, attendance.ErrEntryNotFound
	}

	active.LunchEnd = &now
	return *active, nil
}

func (s *AttendanceServiceImpl) clockOut(ctx context.Context, userID string, workDate time.Time, active *attendance.TimeEntry, now time.Time) (attendance.TimeEntry, error) {
	if active == nil {
		completed, err := s.entries.FindLatestCompleted(ctx, userID, workDate)
		if err != nil {
			return attendance.TimeEntry{}, err
		}
		if completed != nil {
			return attendance.TimeEntry{}, attendance.ErrAlreadyClockedOut
		}
		return attendance.TimeEntry{}, attendance.ErrNotClockedIn
	}

	var lunchEnd *time.Time
	if active.OnBreak() {
		// An open break closes at the clock-out instant.
		lunchEnd = &now
	}

	timeIn := active.CreatedAt
	if active.TimeIn != nil {
		timeIn = *active.TimeIn
	}
	totalHours := attendance.SpanHours(timeIn, now)

	found, err := s.entries.CloseActive(ctx, active.ID, now, lunchEnd, totalHours)
	if err != nil {
		return attendance.TimeEntry{}, err
	}
	if !found {
		return attendance.TimeEntry{}, attendance.ErrAlreadyClockedOut
	}

	active.TimeOut = &now
	if lunchEnd != nil {
		active.LunchEnd = lunchEnd
	}
	active.TotalHours = &totalHours
	active.Status = attendance.EntryStatusCompleted
	return *active, nil
}

// Status implements attendance.AttendanceService. Read-only: it never takes
// locks and never mutates storage.
func (s *AttendanceServiceImpl) Status(ctx context.Context, userID string) (attendance.StatusResponse, error) {
	now := time.Now().UTC()
	workDate := workDateOf(time.Now())

	active, err := s.entries.FindActive(ctx, userID, workDate)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to load active entry: %w", err)
	}

	var lastCompleted *attendance.TimeEntry
	if active == nil {
		lastCompleted, err = s.entries.FindLatestCompleted(ctx, userID, workDate)
		if err != nil {
			return attendance.StatusResponse{}, fmt.Errorf("failed to load completed entry: %w", err)
		}
	}

	snap := attendance.Project(userID, active, lastCompleted, now)
	return mapStatusResponse(snap), nil
}

// RosterStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RosterStatus(ctx context.Context, userIDs []string) ([]attendance.StatusResponse, error) {
	statuses := make([]attendance.StatusResponse, 0, len(userIDs))
	for _, id := range userIDs {
		status, err := s.Status(ctx, id)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.EntryResponse, error) {
	start, end, err := filter.Validate()
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListCompleted(ctx, filter.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed entries: %w", err)
	}

	result := make([]attendance.EntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, mapEntryResponse(e))
	}
	return result, nil
}

func mapActionResponse(userID string, entry attendance.TimeEntry, now time.Time) attendance.ActionResponse {
	var snap attendance.StatusSnapshot
	if entry.Completed() {
		snap = attendance.Project(userID, nil, &entry, now)
	} else {
		snap = attendance.Project(userID, &entry, nil, now)
	}

	return attendance.ActionResponse{
		RecordID:       entry.ID,
		Status:         snap.Status,
		WorkSeconds:    snap.WorkSeconds,
		BreakSeconds:   snap.BreakSeconds,
		ClockInTime:    timePtrToString(snap.ClockInTime),
		BreakStartTime: timePtrToString(snap.BreakStartTime),
		TotalHours:     snap.TotalHours,
	}
}

func mapStatusResponse(snap attendance.StatusSnapshot) attendance.StatusResponse {
	return attendance.StatusResponse{
		UserID:         snap.UserID,
		Status:         snap.Status,
		WorkSeconds:    snap.WorkSeconds,
		BreakSeconds:   snap.BreakSeconds,
		ClockInTime:    timePtrToString(snap.ClockInTime),
		BreakStartTime: timePtrToString(snap.BreakStartTime),
		LastClockOut:   timePtrToString(snap.LastClockOut),
		TotalHours:     snap.TotalHours,
	}
}

func mapEntryResponse(e attendance.TimeEntry) attendance.EntryResponse {
	return attendance.EntryResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		WorkDate:   e.WorkDate.Format("2006-01-02"),
		TimeIn:     timePtrToString(e.TimeIn),
		LunchStart: timePtrToString(e.LunchStart),
		LunchEnd:   timePtrToString(e.LunchEnd),
		TimeOut:    timePtrToString(e.TimeOut),
		TotalHours: e.TotalHours,
		Notes:      e.Notes,
		Status:     string(e.Status),
	}
}

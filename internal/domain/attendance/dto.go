package attendance

import (
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/pkg/validator"
)

// Action is a clock/break event submitted by a client.
type Action string

const (
	ActionClockIn    Action = "clock_in"
	ActionClockOut   Action = "clock_out"
	ActionBreakStart Action = "break_start"
	ActionBreakEnd   Action = "break_end"
)

// ClockActionRequest is the body of the clock/break entry point. The user id
// comes from the authenticated caller, never from the body.
type ClockActionRequest struct {
	UserID string `json:"-"`
	Action Action `json:"action"`
}

func (r *ClockActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "is required"})
	}
	switch r.Action {
	case ActionClockIn, ActionClockOut, ActionBreakStart, ActionBreakEnd:
	default:
		errs = append(errs, validator.ValidationError{Field: "action", Message: "must be one of clock_in, clock_out, break_start, break_end"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ActionResponse reports the outcome of an applied transition together with
// the freshly projected status.
type ActionResponse struct {
	RecordID       int64    `json:"record_id"`
	Status         Status   `json:"status"`
	WorkSeconds    int64    `json:"work_seconds"`
	BreakSeconds   int64    `json:"break_seconds"`
	ClockInTime    *string  `json:"clock_in_time,omitempty"`
	BreakStartTime *string  `json:"break_start_time,omitempty"`
	TotalHours     *float64 `json:"total_hours,omitempty"`
}

// StatusResponse is the status query payload for one user.
type StatusResponse struct {
	UserID         string   `json:"user_id"`
	Status         Status   `json:"status"`
	WorkSeconds    int64    `json:"work_seconds"`
	BreakSeconds   int64    `json:"break_seconds"`
	ClockInTime    *string  `json:"clock_in_time,omitempty"`
	BreakStartTime *string  `json:"break_start_time,omitempty"`
	LastClockOut   *string  `json:"last_clock_out,omitempty"`
	TotalHours     *float64 `json:"total_hours,omitempty"`
}

// HistoryFilter selects completed entries for one user over a closed range.
type HistoryFilter struct {
	UserID    string
	StartDate string
	EndDate   string
}

func (f *HistoryFilter) Validate() (start, end time.Time, err error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "is required"})
	}
	start, ok := validator.IsValidDate(f.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, ok = validator.IsValidDate(f.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

// EntryResponse is a completed entry as returned by history listings.
type EntryResponse struct {
	ID         int64    `json:"id"`
	UserID     string   `json:"user_id"`
	WorkDate   string   `json:"work_date"`
	TimeIn     *string  `json:"time_in,omitempty"`
	LunchStart *string  `json:"lunch_start,omitempty"`
	LunchEnd   *string  `json:"lunch_end,omitempty"`
	TimeOut    *string  `json:"time_out,omitempty"`
	TotalHours *float64 `json:"total_hours,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	Status     string   `json:"status"`
}

// MaintenanceResult summarizes one repair pass.
type MaintenanceResult struct {
	StaleClosed        int `json:"stale_closed"`
	DuplicatesResolved int `json:"duplicates_resolved"`
	CorruptedCompleted int `json:"corrupted_completed"`
}

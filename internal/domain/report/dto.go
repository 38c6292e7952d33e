package report

import (
	"context"
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/pkg/validator"
)

// ExportRow is one completed time entry as consumed by external exporters
// (CSV/XLSX/HTML formatting happens outside this service).
type ExportRow struct {
	UserID     string   `json:"user_id"`
	FullName   string   `json:"full_name"`
	WorkDate   string   `json:"work_date"`
	TimeIn     *string  `json:"time_in,omitempty"`
	LunchStart *string  `json:"lunch_start,omitempty"`
	LunchEnd   *string  `json:"lunch_end,omitempty"`
	TimeOut    *string  `json:"time_out,omitempty"`
	TotalHours *float64 `json:"total_hours,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

type ExportRequest struct {
	UserID    *string
	StartDate string
	EndDate   string
}

func (r *ExportRequest) Validate() (start, end time.Time, err error) {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, ok = validator.IsValidDate(r.EndDate)
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

type AttendanceExport struct {
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	GeneratedAt string      `json:"generated_at"`
	Rows        []ExportRow `json:"rows"`
}

type ReportService interface {
	AttendanceExport(ctx context.Context, req ExportRequest) (AttendanceExport, error)
}

// ExportRepository reads completed entries joined with user names.
type ExportRepository interface {
	GetCompletedEntries(ctx context.Context, userID *string, start, end time.Time) ([]ExportRow, error)
}

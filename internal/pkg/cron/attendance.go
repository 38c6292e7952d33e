package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceSvc: attendanceSvc}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("repair_time_entries", 1*time.Hour, j.RepairTimeEntries)
}

// RepairTimeEntries runs the attendance repair pass: stale actives get
// force-closed, duplicate actives collapse to the newest, corrupted actives
// are completed with zero hours.
func (j *AttendanceJobs) RepairTimeEntries(ctx context.Context) error {
	result, err := j.attendanceSvc.Maintain(ctx)
	if err != nil {
		return err
	}

	if result.StaleClosed+result.DuplicatesResolved+result.CorruptedCompleted == 0 {
		slog.Debug("Cron: no time entries needed repair")
		return nil
	}

	slog.Info("Cron: repaired time entries",
		"stale_closed", result.StaleClosed,
		"duplicates_resolved", result.DuplicatesResolved,
		"corrupted_completed", result.CorruptedCompleted)
	return nil
}

package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftwise/timeclock-backend-go/internal/repository/postgresql"
)

// staleActiveAge is how long an active entry may sit untouched before the
// repair pass assumes the clock-out was lost and force-closes it.
const staleActiveAge = 24 * time.Hour

// Maintain implements attendance.AttendanceService. It runs three repairs,
// each in its own transaction so a failure in one does not roll back the
// others:
//
//  1. active entries untouched for staleActiveAge are closed at their last
//     update time with an explanatory note,
//  2. duplicate active entries for the same (user, work date) collapse to the
//     newest one, the rest are completed,
//  3. active entries with no time_in are completed with zero hours.
func (s *AttendanceServiceImpl) Maintain(ctx context.Context) (attendance.MaintenanceResult, error) {
	var result attendance.MaintenanceResult

	if err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		n, err := s.closeStale(txCtx)
		result.StaleClosed = n
		return err
	}); err != nil {
		return result, fmt.Errorf("failed to close stale entries: %w", err)
	}

	if err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		n, err := s.resolveDuplicates(txCtx)
		result.DuplicatesResolved = n
		return err
	}); err != nil {
		return result, fmt.Errorf("failed to resolve duplicate entries: %w", err)
	}

	if err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		n, err := s.completeCorrupted(txCtx)
		result.CorruptedCompleted = n
		return err
	}); err != nil {
		return result, fmt.Errorf("failed to complete corrupted entries: %w", err)
	}

	return result, nil
}

func (s *AttendanceServiceImpl) closeStale(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-staleActiveAge)
	stale, err := s.entries.FindStaleActive(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, entry := range stale {
		// Close at the last observed activity, not at repair time, so the
		// recorded span never includes the hours the entry sat abandoned.
		closeAt := entry.UpdatedAt
		timeIn := entry.CreatedAt
		if entry.TimeIn != nil {
			timeIn = *entry.TimeIn
		}

		var lunchEnd *time.Time
		if entry.OnBreak() {
			lunchEnd = &closeAt
		}

		found, err := s.entries.CloseActive(ctx, entry.ID, closeAt, lunchEnd, attendance.SpanHours(timeIn, closeAt))
		if err != nil {
			return closed, err
		}
		if !found {
			continue
		}
		note := "auto-closed: no clock-out received within 24 hours"
		if _, err := s.entries.UpdateCompletedNote(ctx, entry.ID, note); err != nil {
			return closed, err
		}
		closed++
	}
	return closed, nil
}

func (s *AttendanceServiceImpl) resolveDuplicates(ctx context.Context) (int, error) {
	groups, err := s.entries.FindDuplicateActive(ctx)
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, group := range groups {
		// Groups come ordered newest first; the newest entry survives.
		for _, loser := range group[1:] {
			closeAt := loser.UpdatedAt
			timeIn := loser.CreatedAt
			if loser.TimeIn != nil {
				timeIn = *loser.TimeIn
			}

			var lunchEnd *time.Time
			if loser.OnBreak() {
				lunchEnd = &closeAt
			}

			found, err := s.entries.CloseActive(ctx, loser.ID, closeAt, lunchEnd, attendance.SpanHours(timeIn, closeAt))
			if err != nil {
				return resolved, err
			}
			if !found {
				continue
			}
			note := "auto-closed: superseded by a newer active entry for the same day"
			if _, err := s.entries.UpdateCompletedNote(ctx, loser.ID, note); err != nil {
				return resolved, err
			}
			resolved++
		}
	}
	return resolved, nil
}

func (s *AttendanceServiceImpl) completeCorrupted(ctx context.Context) (int, error) {
	corrupted, err := s.entries.FindCorruptedActive(ctx)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, entry := range corrupted {
		closeAt := entry.UpdatedAt
		found, err := s.entries.CloseActive(ctx, entry.ID, closeAt, nil, 0)
		if err != nil {
			return completed, err
		}
		if !found {
			continue
		}
		note := "auto-closed: entry had no clock-in time"
		if _, err := s.entries.UpdateCompletedNote(ctx, entry.ID, note); err != nil {
			return completed, err
		}
		completed++
	}
	return completed, nil
}

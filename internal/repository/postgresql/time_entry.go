package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/database"
)

// The time_entries table carries a partial unique index:
//
//	CREATE UNIQUE INDEX uq_time_entries_active
//	    ON time_entries (user_id, work_date) WHERE status = 'active';
//
// which backs the at-most-one-active-entry invariant even when two inserts
// race past their precondition reads.
type timeEntryRepository struct {
	db *database.DB
}

const timeEntryColumns = `
	id, user_id, work_date, time_in, lunch_start, lunch_end, time_out,
	total_hours, notes, status, created_at, updated_at
`

func scanTimeEntry(row pgx.Row) (attendance.TimeEntry, error) {
	var e attendance.TimeEntry
	err := row.Scan(
		&e.ID, &e.UserID, &e.WorkDate, &e.TimeIn, &e.LunchStart, &e.LunchEnd, &e.TimeOut,
		&e.TotalHours, &e.Notes, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// FindActive implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) FindActive(ctx context.Context, userID string, workDate time.Time) (*attendance.TimeEntry, error) {
	return r.findActive(ctx, userID, workDate, false)
}

// FindActiveForUpdate implements attendance.TimeEntryRepository. The lock is
// held until the ambient transaction finishes.
func (r *timeEntryRepository) FindActiveForUpdate(ctx context.Context, userID string, workDate time.Time) (*attendance.TimeEntry, error) {
	return r.findActive(ctx, userID, workDate, true)
}

func (r *timeEntryRepository) findActive(ctx context.Context, userID string, workDate time.Time, forUpdate bool) (*attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1
		  AND work_date = $2
		  AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, userID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no active entry is a normal state, not an error
		}
		return nil, fmt.Errorf("failed to find active time entry: %w", err)
	}

	return &entry, nil
}

// FindLatestCompleted implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) FindLatestCompleted(ctx context.Context, userID string, workDate time.Time) (*attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1
		  AND work_date = $2
		  AND status = 'completed'
		ORDER BY time_out DESC NULLS LAST
		LIMIT 1
	`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, userID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest completed time entry: %w", err)
	}

	return &entry, nil
}

// CreateActive implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) CreateActive(ctx context.Context, userID string, workDate time.Time, timeIn time.Time) (attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	// ON CONFLICT DO NOTHING instead of letting the unique index raise:
	// a raise would abort the surrounding transaction and the caller could
	// no longer converge on the winning row within it.
	query := `
		INSERT INTO time_entries (user_id, work_date, time_in, status)
		VALUES ($1, $2, $3, 'active')
		ON CONFLICT (user_id, work_date) WHERE status = 'active' DO NOTHING
		RETURNING ` + timeEntryColumns

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, userID, workDate, timeIn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeEntry{}, attendance.ErrDuplicateActive
		}
		return attendance.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	return entry, nil
}

// UpdateActive implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) UpdateActive(ctx context.Context, id int64, fields attendance.UpdateActiveFields) (bool, error) {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)
	argIdx := 1

	if fields.LunchStart != nil {
		updates = append(updates, fmt.Sprintf("lunch_start = $%d", argIdx))
		args = append(args, fields.LunchStart)
		argIdx++
	}
	if fields.LunchEnd != nil {
		updates = append(updates, fmt.Sprintf("lunch_end = $%d", argIdx))
		args = append(args, fields.LunchEnd)
		argIdx++
	} else if fields.ClearLunchEnd {
		updates = append(updates, "lunch_end = NULL")
	}
	if fields.Notes != nil {
		updates = append(updates, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, fields.Notes)
		argIdx++
	}

	if len(updates) == 0 {
		return false, fmt.Errorf("no updatable fields provided for time entry update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now().UTC())
	argIdx++

	args = append(args, id)

	query := "UPDATE time_entries SET "
	for i, u := range updates {
		if i > 0 {
			query += ", "
		}
		query += u
	}
	query += fmt.Sprintf(" WHERE id = $%d AND status = 'active' RETURNING id", argIdx)

	var updatedID int64
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update time entry: %w", err)
	}

	return true, nil
}

// CloseActive implements attendance.TimeEntryRepository. The status guard in
// the WHERE clause makes a double close a no-op report, not an overwrite.
func (r *timeEntryRepository) CloseActive(ctx context.Context, id int64, timeOut time.Time, lunchEnd *time.Time, totalHours float64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET time_out = $1,
		    lunch_end = COALESCE($2, lunch_end),
		    total_hours = $3,
		    status = 'completed',
		    updated_at = $4
		WHERE id = $5 AND status = 'active'
		RETURNING id
	`

	var closedID int64
	err := q.QueryRow(ctx, query, timeOut, lunchEnd, totalHours, time.Now().UTC(), id).Scan(&closedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to close time entry: %w", err)
	}

	return true, nil
}

// ListCompleted implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) ListCompleted(ctx context.Context, userID string, start, end time.Time) ([]attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE user_id = $1
		  AND status = 'completed'
		  AND work_date BETWEEN $2 AND $3
		ORDER BY work_date, time_in
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed time entries: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

// FindStaleActive implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) FindStaleActive(ctx context.Context, cutoff time.Time) ([]attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE status = 'active'
		  AND updated_at < $1
		ORDER BY updated_at
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to find stale time entries: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

// FindDuplicateActive implements attendance.TimeEntryRepository. The partial
// unique index makes duplicates impossible going forward; this exists to
// repair rows that predate it or arrived through manual edits.
func (r *timeEntryRepository) FindDuplicateActive(ctx context.Context) ([][]attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE status = 'active'
		  AND (user_id, work_date) IN (
		      SELECT user_id, work_date
		      FROM time_entries
		      WHERE status = 'active'
		      GROUP BY user_id, work_date
		      HAVING COUNT(*) > 1
		  )
		ORDER BY user_id, work_date, created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find duplicate active time entries: %w", err)
	}
	defer rows.Close()

	entries, err := collectTimeEntries(rows)
	if err != nil {
		return nil, err
	}

	return groupDuplicateEntries(entries), nil
}

// groupDuplicateEntries splits entries (ordered by user, work date, newest
// first) into one slice per (user, work date) pair, preserving row order.
func groupDuplicateEntries(entries []attendance.TimeEntry) [][]attendance.TimeEntry {
	var groups [][]attendance.TimeEntry
	for _, e := range entries {
		n := len(groups)
		if n > 0 && groups[n-1][0].UserID == e.UserID && groups[n-1][0].WorkDate.Equal(e.WorkDate) {
			groups[n-1] = append(groups[n-1], e)
			continue
		}
		groups = append(groups, []attendance.TimeEntry{e})
	}
	return groups
}

// FindCorruptedActive implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) FindCorruptedActive(ctx context.Context) ([]attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE status = 'active'
		  AND time_in IS NULL
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find corrupted time entries: %w", err)
	}
	defer rows.Close()

	return collectTimeEntries(rows)
}

// UpdateCompletedNote implements attendance.TimeEntryRepository.
func (r *timeEntryRepository) UpdateCompletedNote(ctx context.Context, id int64, note string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries
		SET notes = CASE WHEN notes IS NULL OR notes = '' THEN $1 ELSE notes || '; ' || $1 END,
		    updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID int64
	err := q.QueryRow(ctx, query, note, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update time entry note: %w", err)
	}
	return true, nil
}

func collectTimeEntries(rows pgx.Rows) ([]attendance.TimeEntry, error) {
	var entries []attendance.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read time entries: %w", err)
	}
	return entries, nil
}

func NewTimeEntryRepository(db *database.DB) attendance.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

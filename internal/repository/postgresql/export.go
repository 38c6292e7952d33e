package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/report"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/database"
)

type exportRepository struct {
	db *database.DB
}

// GetCompletedEntries implements report.ExportRepository. Read-only feed of
// completed entries for the export collaborator.
func (r *exportRepository) GetCompletedEntries(ctx context.Context, userID *string, start, end time.Time) ([]report.ExportRow, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "t.status = 'completed' AND t.work_date BETWEEN $1 AND $2"
	args := []interface{}{start, end}
	if userID != nil && *userID != "" {
		baseWhere += " AND t.user_id = $3"
		args = append(args, *userID)
	}

	query := `
		SELECT t.user_id, u.full_name, t.work_date, t.time_in, t.lunch_start,
		       t.lunch_end, t.time_out, t.total_hours, t.notes
		FROM time_entries t
		JOIN users u ON u.id = t.user_id
		WHERE ` + baseWhere + `
		ORDER BY u.full_name, t.work_date, t.time_in
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query export rows: %w", err)
	}
	defer rows.Close()

	var result []report.ExportRow
	for rows.Next() {
		var row report.ExportRow
		var workDate time.Time
		var timeIn, lunchStart, lunchEnd, timeOut *time.Time
		err := rows.Scan(
			&row.UserID, &row.FullName, &workDate, &timeIn, &lunchStart,
			&lunchEnd, &timeOut, &row.TotalHours, &row.Notes,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		row.WorkDate = workDate.Format("2006-01-02")
		row.TimeIn = formatTimePtr(timeIn)
		row.LunchStart = formatTimePtr(lunchStart)
		row.LunchEnd = formatTimePtr(lunchEnd)
		row.TimeOut = formatTimePtr(timeOut)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read export rows: %w", err)
	}

	return result, nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02 15:04:05")
	return &s
}

func NewExportRepository(db *database.DB) report.ExportRepository {
	return &exportRepository{db: db}
}

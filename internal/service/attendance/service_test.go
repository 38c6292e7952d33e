package attendance

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftwise/timeclock-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

func testInit(t *testing.T) attendance.AttendanceService {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if testDB == nil {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn, 0, 0)
		require.NoError(t, err, "failed to connect to test database")
	}

	return NewAttendanceService(testDB, postgresql.NewTimeEntryRepository(testDB))
}

func createTestUser(t *testing.T, ctx context.Context) string {
	var userID string
	email := fmt.Sprintf("worker-%d-%d@example.com", time.Now().Unix(), time.Now().Nanosecond())
	err := testDB.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, role, hourly_rate)
		VALUES ($1, 'x', 'Test Worker', 'employee', 15.00)
		RETURNING id
	`, email).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func apply(t *testing.T, svc attendance.AttendanceService, userID string, action attendance.Action) (attendance.ActionResponse, error) {
	t.Helper()
	return svc.Apply(context.Background(), attendance.ClockActionRequest{
		UserID: userID,
		Action: action,
	})
}

func TestApply_FullDayLifecycle(t *testing.T) {
	svc := testInit(t)
	ctx := context.Background()
	userID := createTestUser(t, ctx)

	res, err := apply(t, svc, userID, attendance.ActionClockIn)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusIn, res.Status)
	assert.NotZero(t, res.RecordID)
	assert.NotNil(t, res.ClockInTime)

	res, err = apply(t, svc, userID, attendance.ActionBreakStart)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnBreak, res.Status)
	assert.NotNil(t, res.BreakStartTime)

	res, err = apply(t, svc, userID, attendance.ActionBreakEnd)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusIn, res.Status)

	res, err = apply(t, svc, userID, attendance.ActionClockOut)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOut, res.Status)
	require.NotNil(t, res.TotalHours)
	assert.GreaterOrEqual(t, *res.TotalHours, 0.0)

	status, err := svc.Status(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOut, status.Status)
	assert.NotNil(t, status.LastClockOut)
}

func TestApply_RejectsIllegalTransitions(t *testing.T) {
	svc := testInit(t)
	ctx := context.Background()
	userID := createTestUser(t, ctx)

	_, err := apply(t, svc, userID, attendance.ActionBreakStart)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = apply(t, svc, userID, attendance.ActionClockOut)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = apply(t, svc, userID, attendance.ActionClockIn)
	require.NoError(t, err)

	_, err = apply(t, svc, userID, attendance.ActionClockIn)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	_, err = apply(t, svc, userID, attendance.ActionBreakEnd)
	assert.ErrorIs(t, err, attendance.ErrNotOnBreak)

	_, err = apply(t, svc, userID, attendance.ActionBreakStart)
	require.NoError(t, err)

	_, err = apply(t, svc, userID, attendance.ActionBreakStart)
	assert.ErrorIs(t, err, attendance.ErrAlreadyOnBreak)

	// Clock-out closes the open break.
	res, err := apply(t, svc, userID, attendance.ActionClockOut)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOut, res.Status)

	_, err = apply(t, svc, userID, attendance.ActionClockOut)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestApply_RejectsUnknownAction(t *testing.T) {
	svc := testInit(t)
	ctx := context.Background()
	userID := createTestUser(t, ctx)

	_, err := svc.Apply(ctx, attendance.ClockActionRequest{UserID: userID, Action: "teleport"})
	assert.Error(t, err)
}

func TestApply_SecondBreakSameDay(t *testing.T) {
	svc := testInit(t)
	ctx := context.Background()
	userID := createTestUser(t, ctx)

	_, err := apply(t, svc, userID, attendance.ActionClockIn)
	require.NoError(t, err)
	_, err = apply(t, svc, userID, attendance.ActionBreakStart)
	require.NoError(t, err)
	_, err = apply(t, svc, userID, attendance.ActionBreakEnd)
	require.NoError(t, err)

	// A finished break does not block a new one.
	res, err := apply(t, svc, userID, attendance.ActionBreakStart)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnBreak, res.Status)
}

func TestApply_ConcurrentClockInConverges(t *testing.T) {
	svc := testInit(t)
	ctx := context.Background()
	userID := createTestUser(t, ctx)

	const workers = 8
	var wg sync.WaitGroup
	results := make([]attendance.ActionResponse, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = apply(t, svc, userID, attendance.ActionClockIn)
		}(i)
	}
	wg.Wait()

	// Every call either succeeded (converging on the winning row) or was
	// rejected as a duplicate; no other outcome is acceptable.
	var winnerID int64
	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			assert.ErrorIs(t, errs[i], attendance.ErrAlreadyClockedIn)
			continue
		}
		if winnerID == 0 {
			winnerID = results[i].RecordID
		}
		assert.Equal(t, winnerID, results[i].RecordID, "successful calls must agree on one entry")
	}

	var activeCount int
	err := testDB.QueryRow(ctx, `
		SELECT COUNT(*) FROM time_entries WHERE user_id = $1 AND status = 'active'
	`, userID).Scan(&activeCount)
	require.NoError(t, err)
	assert.Equal(t, 1, activeCount)
}

func TestApply_ConcurrentTransitionsKeepTimestampsOrdered(t *testing.T) {
	svc := testInit(t)
	ctx := context.Background()
	userID := createTestUser(t, ctx)

	_, err := apply(t, svc, userID, attendance.ActionClockIn)
	require.NoError(t, err)

	// Race break_start against break_end. Whichever loses the row lock
	// observes the winner's state: it either fails its precondition or
	// stamps a time after the winner's, never before.
	var wg sync.WaitGroup
	for _, action := range []attendance.Action{attendance.ActionBreakStart, attendance.ActionBreakEnd} {
		wg.Add(1)
		go func(a attendance.Action) {
			defer wg.Done()
			_, _ = apply(t, svc, userID, a)
		}(action)
	}
	wg.Wait()

	var lunchStart, lunchEnd *time.Time
	err = testDB.QueryRow(ctx, `
		SELECT lunch_start, lunch_end FROM time_entries
		WHERE user_id = $1 AND status = 'active'
	`, userID).Scan(&lunchStart, &lunchEnd)
	require.NoError(t, err)
	require.NotNil(t, lunchStart, "break_start must have been applied")
	if lunchEnd != nil {
		assert.False(t, lunchEnd.Before(*lunchStart), "lunch_end %v precedes lunch_start %v", lunchEnd, lunchStart)
	}

	// Close the day and check the completed record the same way.
	_, err = apply(t, svc, userID, attendance.ActionClockOut)
	require.NoError(t, err)

	var timeIn, timeOut time.Time
	err = testDB.QueryRow(ctx, `
		SELECT time_in, time_out FROM time_entries
		WHERE user_id = $1 AND status = 'completed'
		ORDER BY id DESC LIMIT 1
	`, userID).Scan(&timeIn, &timeOut)
	require.NoError(t, err)
	assert.False(t, timeOut.Before(timeIn), "time_out %v precedes time_in %v", timeOut, timeIn)
}

func TestHistory_ListsCompletedEntries(t *testing.T) {
	svc := testInit(t)
	ctx := context.Background()
	userID := createTestUser(t, ctx)

	_, err := apply(t, svc, userID, attendance.ActionClockIn)
	require.NoError(t, err)
	_, err = apply(t, svc, userID, attendance.ActionClockOut)
	require.NoError(t, err)

	today := time.Now().Format("2006-01-02")
	entries, err := svc.History(ctx, attendance.HistoryFilter{
		UserID:    userID,
		StartDate: today,
		EndDate:   today,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "completed", entries[0].Status)
	assert.NotNil(t, entries[0].TotalHours)
}

func TestHistory_RejectsInvertedRange(t *testing.T) {
	svc := testInit(t)
	ctx := context.Background()

	_, err := svc.History(ctx, attendance.HistoryFilter{
		UserID:    "some-user",
		StartDate: "2024-03-15",
		EndDate:   "2024-03-01",
	})
	assert.Error(t, err)
}

func TestMaintain_ClosesStaleEntries(t *testing.T) {
	svc := testInit(t)
	ctx := context.Background()
	userID := createTestUser(t, ctx)

	// An active entry last touched two days ago.
	staleTime := time.Now().UTC().Add(-48 * time.Hour)
	var entryID int64
	err := testDB.QueryRow(ctx, `
		INSERT INTO time_entries (user_id, work_date, time_in, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'active', $3, $3)
		RETURNING id
	`, userID, staleTime.Format("2006-01-02"), staleTime).Scan(&entryID)
	require.NoError(t, err)

	result, err := svc.Maintain(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.StaleClosed, 1)

	var status string
	var notes *string
	err = testDB.QueryRow(ctx, `
		SELECT status, notes FROM time_entries WHERE id = $1
	`, entryID).Scan(&status, &notes)
	require.NoError(t, err)
	assert.Equal(t, "completed", status)
	require.NotNil(t, notes)
	assert.Contains(t, *notes, "auto-closed")
}

func TestMaintain_CompletesCorruptedEntries(t *testing.T) {
	svc := testInit(t)
	ctx := context.Background()
	userID := createTestUser(t, ctx)

	// Active but missing its clock-in time entirely.
	var entryID int64
	err := testDB.QueryRow(ctx, `
		INSERT INTO time_entries (user_id, work_date, status)
		VALUES ($1, CURRENT_DATE, 'active')
		RETURNING id
	`, userID).Scan(&entryID)
	require.NoError(t, err)

	result, err := svc.Maintain(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.CorruptedCompleted, 1)

	var status string
	var totalHours float64
	err = testDB.QueryRow(ctx, `
		SELECT status, total_hours FROM time_entries WHERE id = $1
	`, entryID).Scan(&status, &totalHours)
	require.NoError(t, err)
	assert.Equal(t, "completed", status)
	assert.Equal(t, 0.0, totalHours)
}

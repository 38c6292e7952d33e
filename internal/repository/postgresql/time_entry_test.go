package postgresql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/attendance"
)

func dupEntry(id int64, userID string, workDate time.Time) attendance.TimeEntry {
	return attendance.TimeEntry{ID: id, UserID: userID, WorkDate: workDate, Status: attendance.EntryStatusActive}
}

func TestGroupDuplicateEntries(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	t.Run("splits on user and work date boundaries", func(t *testing.T) {
		// Same ordering the query produces: user, work date, newest first.
		entries := []attendance.TimeEntry{
			dupEntry(5, "user-a", day1),
			dupEntry(3, "user-a", day1),
			dupEntry(1, "user-a", day1),
			dupEntry(9, "user-a", day2),
			dupEntry(8, "user-a", day2),
			dupEntry(12, "user-b", day1),
			dupEntry(11, "user-b", day1),
		}

		groups := groupDuplicateEntries(entries)

		require.Len(t, groups, 3)
		assert.Len(t, groups[0], 3)
		assert.Len(t, groups[1], 2)
		assert.Len(t, groups[2], 2)
	})

	t.Run("keeps the newest entry first within each group", func(t *testing.T) {
		entries := []attendance.TimeEntry{
			dupEntry(7, "user-a", day1),
			dupEntry(4, "user-a", day1),
			dupEntry(20, "user-b", day1),
			dupEntry(18, "user-b", day1),
		}

		groups := groupDuplicateEntries(entries)

		require.Len(t, groups, 2)
		assert.Equal(t, int64(7), groups[0][0].ID)
		assert.Equal(t, int64(4), groups[0][1].ID)
		assert.Equal(t, int64(20), groups[1][0].ID)
	})

	t.Run("same date for different users stays separate", func(t *testing.T) {
		entries := []attendance.TimeEntry{
			dupEntry(2, "user-a", day1),
			dupEntry(1, "user-a", day1),
			dupEntry(4, "user-b", day1),
			dupEntry(3, "user-b", day1),
		}

		groups := groupDuplicateEntries(entries)

		require.Len(t, groups, 2)
		assert.Equal(t, "user-a", groups[0][0].UserID)
		assert.Equal(t, "user-b", groups[1][0].UserID)
	})

	t.Run("empty input yields no groups", func(t *testing.T) {
		assert.Empty(t, groupDuplicateEntries(nil))
	})
}

package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) time.Time {
	return time.Date(2024, 3, 11, hour, min, 0, 0, time.UTC)
}

func tsp(hour, min int) *time.Time {
	t := ts(hour, min)
	return &t
}

func TestProject_NeverActive(t *testing.T) {
	snap := Project("u1", nil, nil, ts(9, 0))

	assert.Equal(t, StatusOut, snap.Status)
	assert.EqualValues(t, 0, snap.WorkSeconds)
	assert.EqualValues(t, 0, snap.BreakSeconds)
	assert.Nil(t, snap.ClockInTime)
	assert.Nil(t, snap.LastClockOut)
}

func TestProject_ClockedInNoBreak(t *testing.T) {
	entry := &TimeEntry{
		ID:     7,
		UserID: "u1",
		TimeIn: tsp(9, 0),
		Status: EntryStatusActive,
	}

	snap := Project("u1", entry, nil, ts(11, 30))

	assert.Equal(t, StatusIn, snap.Status)
	assert.EqualValues(t, 9000, snap.WorkSeconds) // 2h30m
	assert.EqualValues(t, 0, snap.BreakSeconds)
	assert.Equal(t, int64(7), *snap.EntryID)
	assert.Equal(t, ts(9, 0), *snap.ClockInTime)
}

func TestProject_MidBreak(t *testing.T) {
	// time_in=09:00, lunch_start=12:00, queried at 12:15:
	// 3h worked, 15m of break so far.
	entry := &TimeEntry{
		UserID:     "u1",
		TimeIn:     tsp(9, 0),
		LunchStart: tsp(12, 0),
		Status:     EntryStatusActive,
	}

	snap := Project("u1", entry, nil, ts(12, 15))

	assert.Equal(t, StatusOnBreak, snap.Status)
	assert.EqualValues(t, 10800, snap.WorkSeconds)
	assert.EqualValues(t, 900, snap.BreakSeconds)
	assert.Equal(t, ts(12, 0), *snap.BreakStartTime)
}

func TestProject_AfterBreak(t *testing.T) {
	entry := &TimeEntry{
		UserID:     "u1",
		TimeIn:     tsp(9, 0),
		LunchStart: tsp(12, 0),
		LunchEnd:   tsp(12, 30),
		Status:     EntryStatusActive,
	}

	snap := Project("u1", entry, nil, ts(15, 0))

	assert.Equal(t, StatusIn, snap.Status)
	// 3h before break + 2h30m after it.
	assert.EqualValues(t, 10800+9000, snap.WorkSeconds)
	assert.EqualValues(t, 1800, snap.BreakSeconds)
	assert.Nil(t, snap.BreakStartTime)
}

func TestProject_CompletedDay(t *testing.T) {
	// Full day 09:00-17:00 with a 30m break: after clock-out the projector
	// reports Out with the frozen total, not live work seconds.
	hours := 8.0
	completed := &TimeEntry{
		UserID:     "u1",
		TimeIn:     tsp(9, 0),
		LunchStart: tsp(12, 0),
		LunchEnd:   tsp(12, 30),
		TimeOut:    tsp(17, 0),
		TotalHours: &hours,
		Status:     EntryStatusCompleted,
	}

	snap := Project("u1", nil, completed, ts(17, 0))

	assert.Equal(t, StatusOut, snap.Status)
	assert.EqualValues(t, 0, snap.WorkSeconds)
	assert.Equal(t, ts(17, 0), *snap.LastClockOut)
	assert.Equal(t, 8.0, *snap.TotalHours)
}

func TestProject_NeverNegative(t *testing.T) {
	// Clock skew: now is before time_in. Seconds floor at zero.
	entry := &TimeEntry{
		UserID: "u1",
		TimeIn: tsp(9, 0),
		Status: EntryStatusActive,
	}

	snap := Project("u1", entry, nil, ts(8, 55))

	assert.Equal(t, StatusIn, snap.Status)
	assert.EqualValues(t, 0, snap.WorkSeconds)
}

func TestProject_CorruptedActiveProjectsOut(t *testing.T) {
	entry := &TimeEntry{
		ID:     3,
		UserID: "u1",
		Status: EntryStatusActive,
	}

	snap := Project("u1", entry, nil, ts(10, 0))

	assert.Equal(t, StatusOut, snap.Status)
	assert.EqualValues(t, 0, snap.WorkSeconds)
	assert.Equal(t, int64(3), *snap.EntryID)
}

func TestSpanHours(t *testing.T) {
	assert.Equal(t, 8.0, SpanHours(ts(9, 0), ts(17, 0)))
	assert.Equal(t, 0.5, SpanHours(ts(9, 0), ts(9, 30)))
	// 7m => 0.12h after rounding to two decimals.
	assert.Equal(t, 0.12, SpanHours(ts(9, 0), ts(9, 7)))
	// Inverted span floors at zero rather than going negative.
	assert.Equal(t, 0.0, SpanHours(ts(17, 0), ts(9, 0)))
}

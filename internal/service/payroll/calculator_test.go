package payroll

import (
	"testing"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func hoursEntry(h float64) attendance.TimeEntry {
	return attendance.TimeEntry{TotalHours: &h}
}

func TestSplitHours_UnderThreshold(t *testing.T) {
	split := splitHours([]attendance.TimeEntry{
		hoursEntry(7.5),
		hoursEntry(8.0),
	})

	assert.Equal(t, 15.5, split.Regular)
	assert.Equal(t, 0.0, split.Overtime)
}

func TestSplitHours_OverThreshold(t *testing.T) {
	split := splitHours([]attendance.TimeEntry{
		hoursEntry(10.0),
	})

	assert.Equal(t, 8.0, split.Regular)
	assert.Equal(t, 2.0, split.Overtime)
}

func TestSplitHours_PerDayNotPerPeriod(t *testing.T) {
	// Two six-hour days never become overtime even though twelve hours in
	// one day would.
	split := splitHours([]attendance.TimeEntry{
		hoursEntry(6.0),
		hoursEntry(6.0),
	})

	assert.Equal(t, 12.0, split.Regular)
	assert.Equal(t, 0.0, split.Overtime)
}

func TestSplitHours_SkipsEntriesWithoutTotal(t *testing.T) {
	split := splitHours([]attendance.TimeEntry{
		{TotalHours: nil},
		hoursEntry(4.0),
	})

	assert.Equal(t, 4.0, split.Regular)
}

func TestComputePay_StandardOvertime(t *testing.T) {
	// 10h day at $15/h with 1.5x overtime:
	// 8 * 15 + 2 * 15 * 1.5 = 120 + 45 = 165.
	split := hoursSplit{Regular: 8, Overtime: 2}
	rate := decimal.NewFromInt(15)

	gross, deductions, net := computePay(split, rate, 1.5)

	assert.True(t, gross.Equal(decimal.NewFromInt(165)), "gross = %s", gross)
	assert.True(t, deductions.Equal(decimal.NewFromFloat(19.80)), "deductions = %s", deductions)
	assert.True(t, net.Equal(decimal.NewFromFloat(145.20)), "net = %s", net)
}

func TestComputePay_DoubleOvertime(t *testing.T) {
	split := hoursSplit{Regular: 8, Overtime: 1}
	rate := decimal.NewFromInt(20)

	gross, _, _ := computePay(split, rate, 2.0)

	// 8 * 20 + 1 * 20 * 2 = 200
	assert.True(t, gross.Equal(decimal.NewFromInt(200)), "gross = %s", gross)
}

func TestComputePay_NoHours(t *testing.T) {
	gross, deductions, net := computePay(hoursSplit{}, decimal.NewFromInt(15), 1.5)

	assert.True(t, gross.IsZero())
	assert.True(t, deductions.IsZero())
	assert.True(t, net.IsZero())
}

func TestComputePay_RoundsToCents(t *testing.T) {
	// 7.33h * $13.37 = 98.0021 -> 98.00 gross.
	split := hoursSplit{Regular: 7.33}
	rate := decimal.NewFromFloat(13.37)

	gross, deductions, net := computePay(split, rate, 1.5)

	assert.True(t, gross.Equal(decimal.NewFromFloat(98.00)), "gross = %s", gross)
	assert.True(t, gross.Sub(deductions).Equal(net))
	assert.Equal(t, int32(-2), deductions.Exponent())
}

func TestOvertimeTypeFor(t *testing.T) {
	assert.Equal(t, "standard", overtimeTypeFor(1.5))
	assert.Equal(t, "double", overtimeTypeFor(2.0))
}

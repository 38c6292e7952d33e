package payroll

import (
	"github.com/shiftwise/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// hoursSplit is the per-period regular/overtime total after the per-day
// threshold split.
type hoursSplit struct {
	Regular  float64
	Overtime float64
}

// splitHours applies the daily overtime threshold to each completed entry
// and sums the results. Entries without total_hours contribute nothing.
func splitHours(entries []attendance.TimeEntry) hoursSplit {
	var split hoursSplit
	for _, e := range entries {
		if e.TotalHours == nil {
			continue
		}
		h := *e.TotalHours
		if h <= payroll.OvertimeThresholdHours {
			split.Regular += h
			continue
		}
		split.Regular += payroll.OvertimeThresholdHours
		split.Overtime += h - payroll.OvertimeThresholdHours
	}
	return split
}

// computePay prices a split at the given hourly rate and overtime
// multiplier. All money math runs in decimal and rounds to cents only at
// the end, so no intermediate float error reaches the stored amounts.
func computePay(split hoursSplit, hourlyRate decimal.Decimal, multiplier float64) (gross, deductions, net decimal.Decimal) {
	regular := decimal.NewFromFloat(split.Regular).Mul(hourlyRate)
	overtime := decimal.NewFromFloat(split.Overtime).Mul(hourlyRate).Mul(decimal.NewFromFloat(multiplier))

	gross = regular.Add(overtime).Round(2)
	deductions = gross.Mul(payroll.TaxRate).Round(2)
	net = gross.Sub(deductions)
	return gross, deductions, net
}

// overtimeTypeFor names the applied multiplier for the stored record.
func overtimeTypeFor(multiplier float64) string {
	if multiplier == payroll.DoubleOvertimeMultiplier {
		return "double"
	}
	return "standard"
}

package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pay policy constants. The overtime threshold applies per day, not per
// period; breaks are paid, so total_hours feeds the split unadjusted.
const (
	OvertimeThresholdHours = 8.0

	DefaultOvertimeMultiplier = 1.5
	DoubleOvertimeMultiplier  = 2.0
)

// TaxRate is the flat deduction rate applied to gross pay.
var TaxRate = decimal.NewFromFloat(0.12)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending  PayrollStatus = "pending"
	PayrollStatusApproved PayrollStatus = "approved"
	PayrollStatusPaid     PayrollStatus = "paid"
)

// PayrollRecord is the aggregation result for one (user, period). Exactly
// one may exist per (user_id, period_start, period_end); the table carries a
// unique constraint on that triple.
type PayrollRecord struct {
	ID                 int64
	UserID             string
	PeriodStart        time.Time
	PeriodEnd          time.Time
	TotalRegularHours  float64
	TotalOvertimeHours float64
	OvertimeType       string
	GrossPay           decimal.Decimal
	Deductions         decimal.Decimal
	NetPay             decimal.Decimal
	Status             PayrollStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

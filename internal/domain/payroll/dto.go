package payroll

import (
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// GeneratePayrollRequest asks for one (user, period) aggregation. A zero
// multiplier selects the default 1.5x.
type GeneratePayrollRequest struct {
	UserID             string  `json:"user_id"`
	PeriodStart        string  `json:"period_start"`
	PeriodEnd          string  `json:"period_end"`
	OvertimeMultiplier float64 `json:"overtime_multiplier,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() (start, end time.Time, err error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "is required"})
	}
	start, ok := validator.IsValidDate(r.PeriodStart)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, ok = validator.IsValidDate(r.PeriodEnd)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}
	switch r.OvertimeMultiplier {
	case 0, DefaultOvertimeMultiplier, DoubleOvertimeMultiplier:
	default:
		errs = append(errs, validator.ValidationError{Field: "overtime_multiplier", Message: "must be 1.5 or 2.0"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

type PayrollRecordResponse struct {
	ID                 int64           `json:"id"`
	UserID             string          `json:"user_id"`
	PeriodStart        string          `json:"period_start"`
	PeriodEnd          string          `json:"period_end"`
	TotalRegularHours  float64         `json:"total_regular_hours"`
	TotalOvertimeHours float64         `json:"total_overtime_hours"`
	OvertimeType       string          `json:"overtime_type"`
	GrossPay           decimal.Decimal `json:"gross_pay"`
	Deductions         decimal.Decimal `json:"deductions"`
	NetPay             decimal.Decimal `json:"net_pay"`
	Status             string          `json:"status"`
}

// PayrollFilter selects records for listing.
type PayrollFilter struct {
	UserID *string
	Status *string
}

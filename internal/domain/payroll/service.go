package payroll

import "context"

// PayrollService aggregates completed attendance into payroll records.
type PayrollService interface {
	// Generate sums the user's completed entries over the period, splits
	// regular/overtime per day, prices them, and persists one pending
	// record. A second call for the same (user, period) is rejected.
	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollRecordResponse, error)

	Get(ctx context.Context, id int64) (PayrollRecordResponse, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecordResponse, error)
	Approve(ctx context.Context, id int64) (PayrollRecordResponse, error)
}

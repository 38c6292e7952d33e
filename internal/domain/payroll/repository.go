package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access for payroll records.
type PayrollRepository interface {
	// Create inserts a pending record. Returns ErrPayrollRecordAlreadyExists
	// when a record for the same (user, period_start, period_end) exists.
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	GetByID(ctx context.Context, id int64) (PayrollRecord, error)
	GetByUserPeriod(ctx context.Context, userID string, periodStart, periodEnd time.Time) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, error)

	// Approve advances pending -> approved. ErrPayrollRecordNotPending when
	// the record is in any other status.
	Approve(ctx context.Context, id int64) error
}

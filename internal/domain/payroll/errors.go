package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollRecordNotPending    = errors.New("payroll record is not pending")
	ErrNoHourlyRate               = errors.New("employee has no hourly rate configured")
)

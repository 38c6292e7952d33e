package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/payroll"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/user"
)

type PayrollServiceImpl struct {
	payrolls payroll.PayrollRepository
	entries  attendance.TimeEntryRepository
	users    user.UserRepository
}

func NewPayrollService(payrolls payroll.PayrollRepository, entries attendance.TimeEntryRepository, users user.UserRepository) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrolls: payrolls,
		entries:  entries,
		users:    users,
	}
}

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollRecordResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	u, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if u.HourlyRate == nil {
		return payroll.PayrollRecordResponse{}, payroll.ErrNoHourlyRate
	}

	multiplier := req.OvertimeMultiplier
	if multiplier == 0 {
		multiplier = u.OvertimeMultiplier
	}
	if multiplier == 0 {
		multiplier = payroll.DefaultOvertimeMultiplier
	}

	// The unique constraint still catches a race between this check and
	// the insert below.
	if _, err := s.payrolls.GetByUserPeriod(ctx, req.UserID, start, end); err == nil {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyExists
	} else if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return payroll.PayrollRecordResponse{}, err
	}

	entries, err := s.entries.ListCompleted(ctx, req.UserID, start, end)
	if err != nil {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to list completed entries: %w", err)
	}

	split := splitHours(entries)
	gross, deductions, net := computePay(split, *u.HourlyRate, multiplier)

	record := payroll.PayrollRecord{
		UserID:             req.UserID,
		PeriodStart:        start,
		PeriodEnd:          end,
		TotalRegularHours:  split.Regular,
		TotalOvertimeHours: split.Overtime,
		OvertimeType:       overtimeTypeFor(multiplier),
		GrossPay:           gross,
		Deductions:         deductions,
		NetPay:             net,
		Status:             payroll.PayrollStatusPending,
	}

	created, err := s.payrolls.Create(ctx, record)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return mapPayrollResponse(created), nil
}

// Get implements payroll.PayrollService.
func (s *PayrollServiceImpl) Get(ctx context.Context, id int64) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrolls.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return mapPayrollResponse(record), nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecordResponse, error) {
	records, err := s.payrolls.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapPayrollResponse(r))
	}
	return result, nil
}

// Approve implements payroll.PayrollService.
func (s *PayrollServiceImpl) Approve(ctx context.Context, id int64) (payroll.PayrollRecordResponse, error) {
	if err := s.payrolls.Approve(ctx, id); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return s.Get(ctx, id)
}

func mapPayrollResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	return payroll.PayrollRecordResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		PeriodStart:        r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:          r.PeriodEnd.Format("2006-01-02"),
		TotalRegularHours:  r.TotalRegularHours,
		TotalOvertimeHours: r.TotalOvertimeHours,
		OvertimeType:       r.OvertimeType,
		GrossPay:           r.GrossPay,
		Deductions:         r.Deductions,
		NetPay:             r.NetPay,
		Status:             string(r.Status),
	}
}

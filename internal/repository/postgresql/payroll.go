package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/payroll"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/database"
)

// payroll_records carries UNIQUE (user_id, period_start, period_end), which
// backs the one-record-per-period rule under concurrent generation.
type payrollRepository struct {
	db *database.DB
}

const payrollColumns = `
	id, user_id, period_start, period_end, total_regular_hours,
	total_overtime_hours, overtime_type, gross_pay, deductions, net_pay,
	status, created_at, updated_at
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.PeriodStart, &rec.PeriodEnd, &rec.TotalRegularHours,
		&rec.TotalOvertimeHours, &rec.OvertimeType, &rec.GrossPay, &rec.Deductions, &rec.NetPay,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			user_id, period_start, period_end, total_regular_hours,
			total_overtime_hours, overtime_type, gross_pay, deductions,
			net_pay, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + payrollColumns

	created, err := scanPayrollRecord(q.QueryRow(ctx, query,
		record.UserID,
		record.PeriodStart,
		record.PeriodEnd,
		record.TotalRegularHours,
		record.TotalOvertimeHours,
		record.OvertimeType,
		record.GrossPay,
		record.Deductions,
		record.NetPay,
		record.Status,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return created, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id int64) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payroll_records WHERE id = $1`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

// GetByUserPeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetByUserPeriod(ctx context.Context, userID string, periodStart, periodEnd time.Time) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE user_id = $1 AND period_start = $2 AND period_end = $3
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, userID, periodStart, periodEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by period: %w", err)
	}

	return rec, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `SELECT ` + payrollColumns + ` FROM payroll_records WHERE ` + baseWhere +
		` ORDER BY period_start DESC, user_id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payroll records: %w", err)
	}

	return records, nil
}

// Approve implements payroll.PayrollRepository.
func (r *payrollRepository) Approve(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = 'approved', updated_at = $1
		WHERE id = $2 AND status = 'pending'
		RETURNING id
	`

	var approvedID int64
	if err := q.QueryRow(ctx, query, time.Now().UTC(), id).Scan(&approvedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish missing from already-processed.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return getErr
			}
			return payroll.ErrPayrollRecordNotPending
		}
		return fmt.Errorf("failed to approve payroll record: %w", err)
	}

	return nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
